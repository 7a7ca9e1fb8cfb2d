package engine

import (
	goerrors "errors"
	"testing"

	"github.com/toddllm/lan-3d-chess-sub000/internal/chess"
	"github.com/toddllm/lan-3d-chess-sub000/internal/errors"
	"github.com/toddllm/lan-3d-chess-sub000/internal/testutil"
)

func TestValidateFENAcceptsWellFormed(t *testing.T) {
	valid := []string{
		InitialFEN,
		"rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w KQkq - 0 2",
		"8/8/8/8/8/8/8/K6k w - - 0 1",
		"r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 12 40",
		"rnbqkbnr/ppp1pppp/8/8/3pP3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 2",
		// Abbreviated forms pick up default trailing fields.
		"8/8/8/8/8/8/8/K6k w",
		"8/8/8/8/8/8/8/K6k b -",
	}
	for _, fen := range valid {
		testutil.AssertNoError(t, ValidateFEN(fen), "fen %q", fen)
	}
}

func TestValidateFENRejectsMalformed(t *testing.T) {
	invalid := []string{
		"",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR",         // one field
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1", // bad side
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQxq - 0 1", // bad castling
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq e4 0 1", // ep rank
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq e3 0 1", // ep side mismatch
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - -1 1", // halfmove
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 0",  // fullmove
		"rnbqkbnr/pppppppp/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",    // 7 rows
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNT w KQkq - 0 1",  // bad letter
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBN1R w KQkq - 0 1", // 9 files
		"rnbqkbnr/pppppppp/8/44/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", // consecutive digits
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNP w KQkq - 0 1",  // pawn on back rank
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQ1BNR w KQkq - 0 1",  // missing king
		"rnbqkbnr/pppppppp/8/7K/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", // two white kings
	}
	for _, fen := range invalid {
		err := ValidateFEN(fen)
		testutil.AssertError(t, err, "fen %q", fen)
		if err != nil && !goerrors.Is(err, errors.ErrInvalidFEN) {
			t.Errorf("fen %q: error %v does not wrap ErrInvalidFEN", fen, err)
		}
	}
}

func TestLoadFENRoundTrip(t *testing.T) {
	fens := []string{
		InitialFEN,
		"rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w KQkq - 0 2",
		"r3k2r/8/8/8/8/8/8/R3K2R b KQkq - 3 17",
		"8/8/8/8/8/4k3/8/4K3 w - - 50 80",
		// En-passant square with a capturing pawn in place survives.
		"rnbqkbnr/ppp1pppp/8/8/3pP3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 2",
	}
	for _, fen := range fens {
		p, err := FromFEN(fen)
		testutil.AssertNoError(t, err, "load %q", fen)
		if err != nil {
			continue
		}
		testutil.AssertEqual(t, p.FEN(), fen)
	}
}

func TestLoadFENAbbreviated(t *testing.T) {
	p, err := FromFEN("8/8/8/8/8/4k3/8/4K3 w")
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, p.CastlingRights(), uint8(0))
	testutil.AssertEqual(t, p.EPSquare(), chess.NoSquare)
	testutil.AssertEqual(t, p.HalfmoveClock(), 0)
	testutil.AssertEqual(t, p.MoveNumber(), 1)
	testutil.AssertEqual(t, p.FEN(), "8/8/8/8/8/4k3/8/4K3 w - - 0 1")
}

func TestLoadFENAtomicOnFailure(t *testing.T) {
	p := New()
	before := p.FEN()
	err := p.LoadFEN("garbage", false)
	testutil.AssertError(t, err)
	testutil.AssertEqual(t, p.FEN(), before, "failed load must not modify the position")
}

func TestFENSuppressesDeadEnPassant(t *testing.T) {
	// The e3 target is syntactically fine but no black pawn can take it.
	fen := "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1"
	p, err := FromFEN(fen)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, p.EPSquare(), chess.E3, "target square is still stored")
	testutil.AssertEqual(t, p.FEN(),
		"rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq - 0 1")
	testutil.AssertEqual(t, p.FENOpts(FENOptions{ForceEnPassant: true}), fen)
}

func TestFENSuppressesPinnedEnPassant(t *testing.T) {
	// The d-pawn could take on e3 geometrically, but the capture would
	// clear the fourth rank and expose the black king to the h4 rook.
	fen := "8/8/8/8/k2pP2R/8/8/4K3 b - e3 0 1"
	p, err := FromFEN(fen)
	testutil.AssertNoError(t, err)
	testutil.AssertContains(t, p.FEN(), " - ")
}

func TestStartingPositionContents(t *testing.T) {
	p := New()
	testutil.AssertEqual(t, p.Turn(), chess.White)
	testutil.AssertEqual(t, p.Piece(chess.E1), chess.MakePiece(chess.White, chess.King))
	testutil.AssertEqual(t, p.Piece(chess.D8), chess.MakePiece(chess.Black, chess.Queen))
	testutil.AssertEqual(t, p.Piece(chess.E4), chess.NoPiece)
	testutil.AssertEqual(t, p.KingSquare(chess.White), chess.E1)
	testutil.AssertEqual(t, p.KingSquare(chess.Black), chess.E8)
	testutil.AssertEqual(t, p.CastlingRights(),
		CastleWhiteKing|CastleWhiteQueen|CastleBlackKing|CastleBlackQueen)
}

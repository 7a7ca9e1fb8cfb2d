package engine

import (
	"testing"

	"github.com/toddllm/lan-3d-chess-sub000/internal/chess"
	"github.com/toddllm/lan-3d-chess-sub000/internal/testutil"
)

func TestPerftInitialPosition(t *testing.T) {
	expected := []int64{1, 20, 400, 8902, 197281}
	maxDepth := 3
	if !testing.Short() {
		maxDepth = 4
	}
	p := New()
	for depth := 0; depth <= maxDepth; depth++ {
		if got := p.Perft(depth); got != expected[depth] {
			t.Errorf("perft(%d) = %d, want %d", depth, got, expected[depth])
		}
	}
	testutil.AssertEqual(t, p.FEN(), InitialFEN, "perft must leave the position unchanged")
}

// The "kiwipete" position exercises castling, en passant, promotions and
// pins in one tree.
func TestPerftKiwipete(t *testing.T) {
	p, err := FromFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	testutil.AssertNoError(t, err)
	for depth, want := range []int64{1, 48, 2039} {
		if got := p.Perft(depth); got != want {
			t.Errorf("perft(%d) = %d, want %d", depth, got, want)
		}
	}
}

func TestPromotionFanOut(t *testing.T) {
	p, err := FromFEN("8/P6k/8/8/8/8/8/K7 w - - 0 1")
	testutil.AssertNoError(t, err)

	moves := p.LegalMovesFrom(chess.A7)
	testutil.AssertEqual(t, len(moves), 4, "one move per promotion piece")
	seen := make(map[chess.PieceType]bool)
	for _, m := range moves {
		testutil.AssertTrue(t, m.IsPromotion())
		testutil.AssertEqual(t, m.To, chess.A8)
		seen[m.Promotion] = true
	}
	for _, pt := range []chess.PieceType{chess.Queen, chess.Rook, chess.Bishop, chess.Knight} {
		testutil.AssertTrue(t, seen[pt], "promotion to %c missing", pt.Letter())
	}
}

func TestCastlingGeneration(t *testing.T) {
	p, err := FromFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	testutil.AssertNoError(t, err)

	var kingside, queenside bool
	for _, m := range p.LegalMoves() {
		if m.IsKingsideCastle() {
			kingside = true
			testutil.AssertEqual(t, m.To, chess.G1)
		}
		if m.IsQueensideCastle() {
			queenside = true
			testutil.AssertEqual(t, m.To, chess.C1)
		}
	}
	testutil.AssertTrue(t, kingside, "O-O should be generated")
	testutil.AssertTrue(t, queenside, "O-O-O should be generated")
}

func TestCastlingRequiresRights(t *testing.T) {
	p, err := FromFEN("r3k2r/8/8/8/8/8/8/R3K2R w - - 0 1")
	testutil.AssertNoError(t, err)
	for _, m := range p.LegalMoves() {
		testutil.AssertFalse(t, m.IsCastle(), "castle generated without rights")
	}
}

func TestCastlingBlockedByAttackedTransit(t *testing.T) {
	// The f3 rook covers f1, so only the queenside castle survives.
	p, err := FromFEN("4k3/8/8/8/8/5r2/8/R3K2R w KQ - 0 1")
	testutil.AssertNoError(t, err)

	var kingside, queenside bool
	for _, m := range p.LegalMoves() {
		if m.IsKingsideCastle() {
			kingside = true
		}
		if m.IsQueensideCastle() {
			queenside = true
		}
	}
	testutil.AssertFalse(t, kingside, "O-O through an attacked square")
	testutil.AssertTrue(t, queenside, "O-O-O should still be legal")
}

func TestPinnedPieceCannotMove(t *testing.T) {
	p, err := FromFEN("k3r3/8/8/8/8/8/4N3/4K3 w - - 0 1")
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, len(p.LegalMovesFrom(chess.E2)), 0, "pinned knight")

	// Pseudo-legal generation still produces the knight moves.
	var knightMoves int
	for _, m := range p.PseudoLegalMoves() {
		if m.From == chess.E2 {
			knightMoves++
		}
	}
	testutil.AssertTrue(t, knightMoves > 0)
}

func TestLegalMovesOfFiltersByPiece(t *testing.T) {
	p := New()
	moves := p.LegalMovesOf(chess.Knight)
	testutil.AssertEqual(t, len(moves), 4)
	for _, m := range moves {
		testutil.AssertEqual(t, m.Piece, chess.Knight)
	}
}

func TestNoMovesForWrongColourSquare(t *testing.T) {
	p := New()
	testutil.AssertEqual(t, len(p.LegalMovesFrom(chess.E7)), 0, "black pawn while white to move")
	testutil.AssertEqual(t, len(p.LegalMovesFrom(chess.E4)), 0, "empty square")
}

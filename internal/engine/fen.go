package engine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/toddllm/lan-3d-chess-sub000/internal/chess"
	"github.com/toddllm/lan-3d-chess-sub000/internal/errors"
)

// InitialFEN is the FEN string for the standard starting position.
const InitialFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// FENOptions controls FEN serialization.
type FENOptions struct {
	// ForceEnPassant emits the stored en-passant square without first
	// re-verifying that a legal en-passant capture exists.
	ForceEnPassant bool
}

// expandFEN pads a 2-5 field FEN with the default castling, en-passant and
// clock fields so that abbreviated strings load. Anything else is returned
// unchanged for validation to reject.
func expandFEN(fen string) []string {
	fields := strings.Fields(fen)
	if len(fields) >= 2 && len(fields) < 6 {
		defaults := []string{"-", "-", "0", "1"}
		fields = append(fields, defaults[len(fields)-2:]...)
	}
	return fields
}

// ValidateFEN checks a FEN string for structural errors without touching
// any position. It accepts the same abbreviated forms LoadFEN does.
func ValidateFEN(fen string) error {
	fields := expandFEN(fen)
	if len(fields) != 6 {
		return errors.Wrapf(errors.ErrInvalidFEN, "expected 6 fields, got %d", len(fields))
	}

	if n, err := strconv.Atoi(fields[5]); err != nil || n <= 0 {
		return errors.Wrapf(errors.ErrInvalidFEN, "fullmove number %q", fields[5])
	}
	if n, err := strconv.Atoi(fields[4]); err != nil || n < 0 {
		return errors.Wrapf(errors.ErrInvalidFEN, "halfmove clock %q", fields[4])
	}

	if ep := fields[3]; ep != "-" {
		if len(ep) != 2 || ep[0] < 'a' || ep[0] > 'h' || (ep[1] != '3' && ep[1] != '6') {
			return errors.Wrapf(errors.ErrInvalidFEN, "en-passant square %q", ep)
		}
		if (ep[1] == '3' && fields[1] == "w") || (ep[1] == '6' && fields[1] == "b") {
			return errors.Wrapf(errors.ErrInvalidFEN, "en-passant square %q unreachable for side %q", ep, fields[1])
		}
	}

	if c := fields[2]; strings.Trim(c, "KQkq") != "" && c != "-" {
		return errors.Wrapf(errors.ErrInvalidFEN, "castling field %q", c)
	}

	if fields[1] != "w" && fields[1] != "b" {
		return errors.Wrapf(errors.ErrInvalidFEN, "side to move %q", fields[1])
	}

	return validatePlacement(fields[0])
}

// validatePlacement checks the piece-placement field: eight rows of eight
// files, valid piece letters, exactly one king per side, and no pawn on a
// back rank.
func validatePlacement(placement string) error {
	rows := strings.Split(placement, "/")
	if len(rows) != 8 {
		return errors.Wrapf(errors.ErrInvalidFEN, "expected 8 rows, got %d", len(rows))
	}

	var whiteKings, blackKings int
	for i, row := range rows {
		files := 0
		prevDigit := false
		for j := 0; j < len(row); j++ {
			c := row[j]
			if c >= '1' && c <= '8' {
				if prevDigit {
					return errors.Wrapf(errors.ErrInvalidFEN, "consecutive digits in row %d", i+1)
				}
				files += int(c - '0')
				prevDigit = true
				continue
			}
			prevDigit = false
			piece := chess.PieceFromFENChar(c)
			if piece.IsEmpty() {
				return errors.Wrapf(errors.ErrInvalidFEN, "piece character %q", string(c))
			}
			if piece.Type() == chess.Pawn && (i == 0 || i == 7) {
				return errors.Wrap(errors.ErrInvalidFEN, "pawn on back rank")
			}
			if piece.Type() == chess.King {
				if piece.Colour() == chess.White {
					whiteKings++
				} else {
					blackKings++
				}
			}
			files++
		}
		if files != 8 {
			return errors.Wrapf(errors.ErrInvalidFEN, "row %d has %d files", i+1, files)
		}
	}

	if whiteKings != 1 || blackKings != 1 {
		return errors.Wrapf(errors.ErrInvalidFEN, "%d white kings, %d black kings", whiteKings, blackKings)
	}
	return nil
}

// LoadFEN parses a FEN string into the position. With validation enabled
// the load is atomic: a malformed string leaves the position untouched.
// Loading clears the history stack and restarts repetition counting at the
// loaded position.
func (p *Position) LoadFEN(fen string, skipValidation bool) error {
	if !skipValidation {
		if err := ValidateFEN(fen); err != nil {
			return err
		}
	}
	fields := expandFEN(fen)
	if len(fields) != 6 {
		return errors.Wrapf(errors.ErrInvalidFEN, "expected 6 fields, got %d", len(fields))
	}

	next := Position{
		epSquare:       chess.NoSquare,
		kings:          [2]chess.Square{chess.NoSquare, chess.NoSquare},
		positionCounts: make(map[uint64]int),
	}

	sq := chess.A8
	for i := 0; i < len(fields[0]); i++ {
		c := fields[0][i]
		switch {
		case c == '/':
			sq += 8 // skip the 0x88 padding to the next row
		case c >= '1' && c <= '8':
			sq += chess.Square(c - '0')
		default:
			piece := chess.PieceFromFENChar(c)
			if piece.IsEmpty() || sq < 0 || sq >= chess.BoardSize || sq.OffBoard() {
				return errors.Wrapf(errors.ErrInvalidFEN, "piece placement %q", fields[0])
			}
			next.board[sq] = piece
			if piece.Type() == chess.King {
				next.kings[piece.Colour()] = sq
			}
			sq++
		}
	}

	if fields[1] == "b" {
		next.turn = chess.Black
	}

	for i := 0; i < len(fields[2]); i++ {
		switch fields[2][i] {
		case 'K':
			next.castling |= CastleWhiteKing
		case 'Q':
			next.castling |= CastleWhiteQueen
		case 'k':
			next.castling |= CastleBlackKing
		case 'q':
			next.castling |= CastleBlackQueen
		}
	}

	if fields[3] != "-" {
		ep, err := chess.ParseSquare(fields[3])
		if err != nil {
			return errors.Wrapf(errors.ErrInvalidFEN, "en-passant square %q", fields[3])
		}
		next.epSquare = ep
	}

	if n, err := strconv.Atoi(fields[4]); err == nil {
		next.halfmoveClock = n
	}
	next.moveNumber = 1
	if n, err := strconv.Atoi(fields[5]); err == nil && n > 0 {
		next.moveNumber = n
	}

	next.hash = next.computeHash()
	next.positionCounts[next.hash] = 1
	*p = next
	return nil
}

// FEN serializes the position. The en-passant field is emitted only when a
// legal en-passant capture actually exists, which FENOpts can override.
func (p *Position) FEN() string {
	return p.FENOpts(FENOptions{})
}

// FENOpts serializes the position with explicit options.
func (p *Position) FENOpts(opts FENOptions) string {
	var sb strings.Builder

	for rank := 8; rank >= 1; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			piece := p.board[chess.MakeSquare(file, rank)]
			if piece.IsEmpty() {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteByte(piece.FENChar())
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if rank > 1 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	sb.WriteByte(p.turn.Char())
	sb.WriteByte(' ')

	if p.castling == 0 {
		sb.WriteByte('-')
	} else {
		for _, r := range []struct {
			flag uint8
			c    byte
		}{
			{CastleWhiteKing, 'K'}, {CastleWhiteQueen, 'Q'},
			{CastleBlackKing, 'k'}, {CastleBlackQueen, 'q'},
		} {
			if p.castling&r.flag != 0 {
				sb.WriteByte(r.c)
			}
		}
	}

	ep := "-"
	if p.epSquare != chess.NoSquare && (opts.ForceEnPassant || p.epCapturable()) {
		ep = p.epSquare.String()
	}
	fmt.Fprintf(&sb, " %s %d %d", ep, p.halfmoveClock, p.moveNumber)
	return sb.String()
}

// epCapturable probes whether a pawn of the side to move can legally
// capture on the stored en-passant square without exposing its own king.
func (p *Position) epCapturable() bool {
	pawn := chess.MakePiece(p.turn, chess.Pawn)
	// The capturing pawn stands beside the passed pawn, one push away
	// from the target square.
	origin := p.epSquare - chess.Square(chess.ColourOffset(p.turn))
	for _, from := range []chess.Square{origin - 1, origin + 1} {
		if from.OffBoard() || p.board[from] != pawn {
			continue
		}
		m := chess.Move{
			Colour: p.turn, From: from, To: p.epSquare,
			Piece: chess.Pawn, Captured: chess.Pawn, Flags: chess.FlagEPCapture,
		}
		p.makeMove(m)
		legal := !p.kingAttacked(m.Colour)
		p.undoMove()
		if legal {
			return true
		}
	}
	return false
}

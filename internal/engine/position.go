// Package engine implements the chess rules engine: the mutable position
// aggregate, attack detection, move generation, make/unmake with full state
// restoration, terminal-state queries, and the FEN and SAN codecs.
package engine

import (
	"fmt"

	"github.com/toddllm/lan-3d-chess-sub000/internal/chess"
	"github.com/toddllm/lan-3d-chess-sub000/internal/errors"
	"github.com/toddllm/lan-3d-chess-sub000/internal/hashing"
)

// Castling-rights mask bits.
const (
	CastleWhiteKing uint8 = 1 << iota
	CastleWhiteQueen
	CastleBlackKing
	CastleBlackQueen
)

// historyEntry snapshots everything makeMove changes besides the board,
// so undoMove can restore the position verbatim.
type historyEntry struct {
	move          chess.Move
	castling      uint8
	epSquare      chess.Square
	halfmoveClock int
	moveNumber    int
	kings         [2]chess.Square
	hash          uint64
}

// Position is the mutable core entity: board contents, side to move,
// castling rights, en-passant target, clocks, cached king squares, an
// incrementally maintained Zobrist hash, the make/unmake history stack and
// the per-hash repetition counts.
type Position struct {
	board         [chess.BoardSize]chess.Piece
	turn          chess.Colour
	castling      uint8
	epSquare      chess.Square
	halfmoveClock int
	moveNumber    int
	kings         [2]chess.Square
	hash          uint64

	history        []historyEntry
	positionCounts map[uint64]int
}

// New creates a position set up for the start of a game.
func New() *Position {
	p, _ := FromFEN(InitialFEN)
	return p
}

// FromFEN creates a position from a validated FEN string.
func FromFEN(fen string) (*Position, error) {
	p := &Position{}
	if err := p.LoadFEN(fen, false); err != nil {
		return nil, err
	}
	return p, nil
}

// Clear empties the board and resets every field to the defaults of an
// empty position (White to move, no rights, clocks at 0 and 1).
func (p *Position) Clear() {
	*p = Position{
		epSquare:       chess.NoSquare,
		moveNumber:     1,
		kings:          [2]chess.Square{chess.NoSquare, chess.NoSquare},
		positionCounts: make(map[uint64]int),
	}
	p.hash = p.computeHash()
	p.positionCounts[p.hash] = 1
}

// Turn returns the colour to move.
func (p *Position) Turn() chess.Colour { return p.turn }

// Hash returns the current position hash.
func (p *Position) Hash() uint64 { return p.hash }

// HalfmoveClock returns the number of half-moves since the last pawn move
// or capture.
func (p *Position) HalfmoveClock() int { return p.halfmoveClock }

// MoveNumber returns the fullmove number, starting at 1.
func (p *Position) MoveNumber() int { return p.moveNumber }

// CastlingRights returns the 4-bit rights mask.
func (p *Position) CastlingRights() uint8 { return p.castling }

// EPSquare returns the en-passant target square, or NoSquare.
func (p *Position) EPSquare() chess.Square { return p.epSquare }

// KingSquare returns the cached square of the given colour's king, or
// NoSquare if that king is absent from a constructed position.
func (p *Position) KingSquare(c chess.Colour) chess.Square { return p.kings[c] }

// Piece returns the piece standing on sq, or NoPiece.
func (p *Position) Piece(sq chess.Square) chess.Piece {
	if sq == chess.NoSquare || sq.OffBoard() {
		return chess.NoPiece
	}
	return p.board[sq]
}

// HistoryLen returns the number of moves on the history stack.
func (p *Position) HistoryLen() int { return len(p.history) }

// HistoryMoves returns the moves played so far, oldest first.
func (p *Position) HistoryMoves() []chess.Move {
	moves := make([]chess.Move, len(p.history))
	for i, h := range p.history {
		moves[i] = h.move
	}
	return moves
}

// Put places a piece on a square, replacing any occupant. It refuses edits
// that make the position unrepresentable: a second king of one colour on a
// different square, or a pawn on rank 1 or 8.
func (p *Position) Put(piece chess.Piece, sq chess.Square) error {
	if piece.IsEmpty() || piece.Type() == chess.NoPieceType {
		return errors.Wrap(errors.ErrInvalidPosition, "no piece given")
	}
	if sq == chess.NoSquare || sq.OffBoard() {
		return errors.Wrapf(errors.ErrInvalidPosition, "square %d off board", sq)
	}
	if piece.Type() == chess.Pawn && (sq.Rank() == 1 || sq.Rank() == 8) {
		return errors.Wrapf(errors.ErrInvalidPosition, "pawn on %s", sq)
	}
	if piece.Type() == chess.King {
		if k := p.kings[piece.Colour()]; k != chess.NoSquare && k != sq {
			return errors.Wrapf(errors.ErrInvalidPosition, "second %s king", piece.Colour())
		}
	}
	if old := p.board[sq]; !old.IsEmpty() && old.Type() == chess.King {
		p.kings[old.Colour()] = chess.NoSquare
	}
	p.board[sq] = piece
	if piece.Type() == chess.King {
		p.kings[piece.Colour()] = sq
	}
	p.rehashAfterEdit()
	return nil
}

// Remove takes the piece off a square and returns it (NoPiece if empty).
func (p *Position) Remove(sq chess.Square) chess.Piece {
	if sq == chess.NoSquare || sq.OffBoard() {
		return chess.NoPiece
	}
	piece := p.board[sq]
	p.board[sq] = chess.NoPiece
	if !piece.IsEmpty() && piece.Type() == chess.King {
		p.kings[piece.Colour()] = chess.NoSquare
	}
	if !piece.IsEmpty() {
		p.rehashAfterEdit()
	}
	return piece
}

// rehashAfterEdit recomputes the hash and restarts repetition counting
// after a direct board edit. Edits invalidate the history stack.
func (p *Position) rehashAfterEdit() {
	p.history = p.history[:0]
	p.hash = p.computeHash()
	p.positionCounts = map[uint64]int{p.hash: 1}
}

// computeHash derives the position hash from scratch.
func (p *Position) computeHash() uint64 {
	var h uint64
	for sq := chess.Square(0); sq < chess.BoardSize; sq++ {
		if sq.OffBoard() {
			sq += 7
			continue
		}
		if piece := p.board[sq]; !piece.IsEmpty() {
			h ^= hashing.PieceKey(piece, sq)
		}
	}
	h ^= hashing.CastlingKey(p.castling)
	h ^= hashing.EPKey(p.epSquare)
	if p.turn == chess.Black {
		h ^= hashing.SideKey()
	}
	return h
}

// String renders the board for debugging, rank 8 first.
func (p *Position) String() string {
	out := ""
	for rank := 8; rank >= 1; rank-- {
		out += fmt.Sprintf("%d ", rank)
		for file := 0; file < 8; file++ {
			piece := p.board[chess.MakeSquare(file, rank)]
			if piece.IsEmpty() {
				out += ". "
			} else {
				out += string(piece.FENChar()) + " "
			}
		}
		out += "\n"
	}
	return out + "  a b c d e f g h\n"
}

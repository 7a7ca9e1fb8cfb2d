package engine

import (
	"github.com/toddllm/lan-3d-chess-sub000/internal/chess"
)

// promotionPieces is the fan-out set for a pawn reaching the far rank.
var promotionPieces = []chess.PieceType{chess.Queen, chess.Rook, chess.Bishop, chess.Knight}

// secondRank gives the 0x88 row index (square >> 4) of each colour's pawn
// starting rank.
var secondRank = [2]int{6, 1}

// LegalMoves returns every legal move for the side to move.
func (p *Position) LegalMoves() []chess.Move {
	return p.moves(true, chess.NoSquare, chess.NoPieceType)
}

// LegalMovesFrom returns the legal moves originating on sq.
func (p *Position) LegalMovesFrom(sq chess.Square) []chess.Move {
	return p.moves(true, sq, chess.NoPieceType)
}

// LegalMovesOf returns the legal moves of one piece type.
func (p *Position) LegalMovesOf(t chess.PieceType) []chess.Move {
	return p.moves(true, chess.NoSquare, t)
}

// PseudoLegalMoves returns the moves before the own-king-safety filter.
func (p *Position) PseudoLegalMoves() []chess.Move {
	return p.moves(false, chess.NoSquare, chess.NoPieceType)
}

// addMove appends a move, expanding a pawn move that reaches the far rank
// into one move per promotion piece.
func addMove(moves []chess.Move, p *Position, us chess.Colour, from, to chess.Square, piece chess.PieceType, flags chess.MoveFlag) []chess.Move {
	var captured chess.PieceType
	if flags.Has(chess.FlagEPCapture) {
		captured = chess.Pawn
	} else if victim := p.board[to]; !victim.IsEmpty() {
		captured = victim.Type()
	}
	m := chess.Move{
		Colour:   us,
		From:     from,
		To:       to,
		Piece:    piece,
		Captured: captured,
		Flags:    flags,
	}
	if piece == chess.Pawn && (to.Rank() == 1 || to.Rank() == 8) {
		for _, promo := range promotionPieces {
			pm := m
			pm.Promotion = promo
			pm.Flags |= chess.FlagPromotion
			moves = append(moves, pm)
		}
		return moves
	}
	return append(moves, m)
}

// moves generates moves for the side to move. forSquare restricts
// generation to one source square (NoSquare for all); forPiece restricts to
// one piece type (NoPieceType for all). With legal set, each pseudo-legal
// move is applied, tested for own-king safety and undone; a position whose
// moving side has no king skips the filter entirely.
func (p *Position) moves(legal bool, forSquare chess.Square, forPiece chess.PieceType) []chess.Move {
	us := p.turn
	them := us.Opposite()

	first, last := chess.Square(0), chess.Square(chess.BoardSize-1)
	singleSquare := false
	if forSquare != chess.NoSquare {
		if forSquare.OffBoard() {
			return nil
		}
		first, last = forSquare, forSquare
		singleSquare = true
	}

	var moves []chess.Move
	for from := first; from <= last; from++ {
		if from.OffBoard() {
			from += 7
			continue
		}
		piece := p.board[from]
		if piece.IsEmpty() || piece.Colour() != us {
			continue
		}
		pt := piece.Type()
		if forPiece != chess.NoPieceType && forPiece != pt {
			continue
		}

		if pt == chess.Pawn {
			moves = p.pawnMoves(moves, us, them, from)
		} else {
			moves = p.pieceMoves(moves, us, from, pt)
		}
	}

	// Castling is generated unless the caller restricted generation to a
	// single square other than the king's.
	if forPiece == chess.NoPieceType || forPiece == chess.King {
		if !singleSquare || forSquare == p.kings[us] {
			moves = p.castlingMoves(moves, us, them)
		}
	}

	if !legal || p.kings[us] == chess.NoSquare {
		return moves
	}

	legalMoves := moves[:0]
	for _, m := range moves {
		p.makeMove(m)
		if !p.kingAttacked(us) {
			legalMoves = append(legalMoves, m)
		}
		p.undoMove()
	}
	return legalMoves
}

// pawnMoves generates pushes, double pushes, captures and en-passant
// captures for the pawn on from.
func (p *Position) pawnMoves(moves []chess.Move, us, them chess.Colour, from chess.Square) []chess.Move {
	offsets := pawnOffsets[us]

	// Single push, and the double push when the single square is clear.
	to := from + chess.Square(offsets[0])
	if !to.OffBoard() && p.board[to].IsEmpty() {
		moves = addMove(moves, p, us, from, to, chess.Pawn, chess.FlagNormal)

		to = from + chess.Square(offsets[1])
		if int(from)>>4 == secondRank[us] && p.board[to].IsEmpty() {
			moves = addMove(moves, p, us, from, to, chess.Pawn, chess.FlagBigPawn)
		}
	}

	// Diagonal captures, including the en-passant square.
	for _, off := range offsets[2:] {
		to := from + chess.Square(off)
		if to.OffBoard() {
			continue
		}
		if victim := p.board[to]; !victim.IsEmpty() && victim.Colour() == them {
			moves = addMove(moves, p, us, from, to, chess.Pawn, chess.FlagCapture)
		} else if to == p.epSquare {
			moves = addMove(moves, p, us, from, to, chess.Pawn, chess.FlagEPCapture)
		}
	}
	return moves
}

// pieceMoves generates knight, bishop, rook, queen and king moves. Knights
// and kings take a single step per offset; sliders walk each ray until
// blocked or off board.
func (p *Position) pieceMoves(moves []chess.Move, us chess.Colour, from chess.Square, pt chess.PieceType) []chess.Move {
	var offsets []int
	switch pt {
	case chess.Knight:
		offsets = knightOffsets
	case chess.Bishop:
		offsets = bishopOffsets
	case chess.Rook:
		offsets = rookOffsets
	default:
		offsets = royalOffsets
	}
	slider := pt == chess.Bishop || pt == chess.Rook || pt == chess.Queen

	for _, off := range offsets {
		to := from
		for {
			to += chess.Square(off)
			if to.OffBoard() {
				break
			}
			victim := p.board[to]
			if victim.IsEmpty() {
				moves = addMove(moves, p, us, from, to, pt, chess.FlagNormal)
			} else {
				if victim.Colour() != us {
					moves = addMove(moves, p, us, from, to, pt, chess.FlagCapture)
				}
				break
			}
			if !slider {
				break
			}
		}
	}
	return moves
}

// castlingMoves generates O-O and O-O-O when the rights remain, the squares
// between king and rook are empty, and the king's current, transit and
// destination squares are all safe. The rook's far square on the queenside
// (b-file) may be attacked.
func (p *Position) castlingMoves(moves []chess.Move, us, them chess.Colour) []chess.Move {
	kingSq := p.kings[us]
	if kingSq == chess.NoSquare {
		return moves
	}

	kingFlag, queenFlag := CastleWhiteKing, CastleWhiteQueen
	if us == chess.Black {
		kingFlag, queenFlag = CastleBlackKing, CastleBlackQueen
	}

	if p.castling&kingFlag != 0 && !(kingSq + 2).OffBoard() {
		to := kingSq + 2
		if p.board[kingSq+1].IsEmpty() && p.board[to].IsEmpty() &&
			!p.Attacked(them, kingSq) && !p.Attacked(them, kingSq+1) && !p.Attacked(them, to) {
			moves = append(moves, chess.Move{
				Colour: us, From: kingSq, To: to,
				Piece: chess.King, Flags: chess.FlagKingsideCastle,
			})
		}
	}
	if p.castling&queenFlag != 0 && !(kingSq - 3).OffBoard() && kingSq >= 3 {
		to := kingSq - 2
		if p.board[kingSq-1].IsEmpty() && p.board[to].IsEmpty() && p.board[kingSq-3].IsEmpty() &&
			!p.Attacked(them, kingSq) && !p.Attacked(them, kingSq-1) && !p.Attacked(them, to) {
			moves = append(moves, chess.Move{
				Colour: us, From: kingSq, To: to,
				Piece: chess.King, Flags: chess.FlagQueensideCastle,
			})
		}
	}
	return moves
}

package engine

import (
	"github.com/toddllm/lan-3d-chess-sub000/internal/chess"
)

// IsCheckmate reports whether the side to move is in check with no legal
// reply.
func (p *Position) IsCheckmate() bool {
	return p.InCheck() && len(p.LegalMoves()) == 0
}

// IsStalemate reports whether the side to move has no legal move while not
// in check.
func (p *Position) IsStalemate() bool {
	return !p.InCheck() && len(p.LegalMoves()) == 0
}

// InsufficientMaterial reports positions where no mate can be forced by
// any sequence of legal moves: bare kings, a lone minor piece, or bishops
// (any number, both sides) all standing on one square colour-class.
func (p *Position) InsufficientMaterial() bool {
	var pieceCount, bishopCount, knightCount int
	var bishopParity [2]int

	for sq := chess.Square(0); sq < chess.BoardSize; sq++ {
		if sq.OffBoard() {
			sq += 7
			continue
		}
		piece := p.board[sq]
		if piece.IsEmpty() {
			continue
		}
		pieceCount++
		switch piece.Type() {
		case chess.Pawn, chess.Rook, chess.Queen:
			return false
		case chess.Knight:
			knightCount++
		case chess.Bishop:
			bishopCount++
			bishopParity[(sq.File()+int(sq)>>4)&1]++
		}
	}

	switch {
	case pieceCount == 2:
		// K vs K.
		return true
	case pieceCount == 3 && (bishopCount == 1 || knightCount == 1):
		// K+minor vs K.
		return true
	case pieceCount == bishopCount+2:
		// Kings plus bishops only: drawn when every bishop, either side,
		// stands on the same colour-class.
		return bishopParity[0] == 0 || bishopParity[1] == 0
	}
	return false
}

// IsThreefoldRepetition reports whether the current position (board, turn,
// castling rights and en-passant file) has occurred at least three times.
func (p *Position) IsThreefoldRepetition() bool {
	return p.positionCounts[p.hash] >= 3
}

// IsFiftyMoveDraw reports whether a hundred half-moves have passed without
// a pawn move or capture.
func (p *Position) IsFiftyMoveDraw() bool {
	return p.halfmoveClock >= 100
}

// IsDraw reports any of the three automatic draw conditions.
func (p *Position) IsDraw() bool {
	return p.IsFiftyMoveDraw() || p.InsufficientMaterial() || p.IsThreefoldRepetition()
}

// IsGameOver reports checkmate, stalemate or a draw.
func (p *Position) IsGameOver() bool {
	return p.IsCheckmate() || p.IsStalemate() || p.IsDraw()
}

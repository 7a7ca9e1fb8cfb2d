package engine

import "github.com/toddllm/lan-3d-chess-sub000/internal/chess"

// Perft counts the leaf nodes of the legal move tree to the given depth.
// It exists to validate the move generator against the well-known
// reference counts (20, 400, 8902, 197281, ... from the start position).
func (p *Position) Perft(depth int) int64 {
	if depth <= 0 {
		return 1
	}
	moves := p.moves(false, chess.NoSquare, chess.NoPieceType)
	us := p.turn
	var nodes int64
	for _, m := range moves {
		p.makeMove(m)
		if !p.kingAttacked(us) {
			if depth == 1 {
				nodes++
			} else {
				nodes += p.Perft(depth - 1)
			}
		}
		p.undoMove()
	}
	return nodes
}

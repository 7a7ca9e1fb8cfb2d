package engine

import (
	"github.com/toddllm/lan-3d-chess-sub000/internal/chess"
)

// Move-generation offset tables over the 0x88 index space. White pawns
// move toward lower indices (rank 8 is index 0).
var (
	pawnOffsets = [2][4]int{
		{-16, -32, -17, -15}, // White: push, double push, captures
		{16, 32, 17, 15},     // Black
	}

	knightOffsets = []int{-18, -33, -31, -14, 18, 33, 31, 14}
	bishopOffsets = []int{-17, -15, 17, 15}
	rookOffsets   = []int{-16, 1, 16, -1}
	royalOffsets  = []int{-17, -16, -15, 1, 17, 16, 15, -1} // queen and king
)

// Attack classification masks for the offset table.
const (
	maskWhitePawn uint8 = 1 << iota
	maskBlackPawn
	maskKnight
	maskBishop
	maskRook
	maskQueen
	maskKing
)

// attackTable is keyed by (from - to + 119) and answers in O(1) whether a
// piece type could reach "to" from "from" on an empty board. rayTable holds
// the per-step offset from "from" toward "to" for sliding pieces, so the
// occlusion walk needs no direction arithmetic.
var (
	attackTable [240]uint8
	rayTable    [240]int
)

func init() {
	set := func(diff int, mask uint8) {
		attackTable[diff+119] |= mask
	}
	for _, d := range knightOffsets {
		set(-d, maskKnight)
	}
	for _, d := range royalOffsets {
		set(-d, maskKing)
	}
	// White pawns attack from below the target (from = to + 17 or + 15).
	set(17, maskWhitePawn)
	set(15, maskWhitePawn)
	set(-17, maskBlackPawn)
	set(-15, maskBlackPawn)

	slide := func(dirs []int, mask uint8) {
		for _, d := range dirs {
			for step := 1; step <= 7; step++ {
				diff := -d * step
				set(diff, mask)
				rayTable[diff+119] = d
			}
		}
	}
	slide(bishopOffsets, maskBishop|maskQueen)
	slide(rookOffsets, maskRook|maskQueen)
}

// attackMask returns the table mask bit for a coloured piece.
func attackMask(piece chess.Piece) uint8 {
	switch piece.Type() {
	case chess.Pawn:
		if piece.Colour() == chess.White {
			return maskWhitePawn
		}
		return maskBlackPawn
	case chess.Knight:
		return maskKnight
	case chess.Bishop:
		return maskBishop
	case chess.Rook:
		return maskRook
	case chess.Queen:
		return maskQueen
	case chess.King:
		return maskKing
	}
	return 0
}

// Attacked reports whether any piece of colour "by" attacks sq. The table
// lookup settles knights, kings and pawns outright; sliding pieces also
// walk the ray toward sq and fail on the first occupied square before it.
func (p *Position) Attacked(by chess.Colour, sq chess.Square) bool {
	return p.attackedFrom(by, sq, nil)
}

// Attackers returns every square from which colour "by" attacks sq.
func (p *Position) Attackers(by chess.Colour, sq chess.Square) []chess.Square {
	var all []chess.Square
	p.attackedFrom(by, sq, func(from chess.Square) {
		all = append(all, from)
	})
	return all
}

// attackedFrom is the shared attack scan. With a nil collector it returns
// on the first attacker; otherwise it visits them all.
func (p *Position) attackedFrom(by chess.Colour, sq chess.Square, collect func(chess.Square)) bool {
	if sq == chess.NoSquare || sq.OffBoard() {
		return false
	}
	found := false
	for from := chess.Square(0); from < chess.BoardSize; from++ {
		if from.OffBoard() {
			from += 7
			continue
		}
		piece := p.board[from]
		if piece.IsEmpty() || piece.Colour() != by {
			continue
		}
		idx := int(from) - int(sq) + 119
		if attackTable[idx]&attackMask(piece) == 0 {
			continue
		}
		switch piece.Type() {
		case chess.Pawn, chess.Knight, chess.King:
			// Contact attacks need no occlusion test.
		default:
			if blocked(p, from, sq, rayTable[idx]) {
				continue
			}
		}
		if collect == nil {
			return true
		}
		collect(from)
		found = true
	}
	return found
}

// blocked reports whether any square strictly between from and to along
// the ray offset is occupied.
func blocked(p *Position, from, to chess.Square, ray int) bool {
	for j := from + chess.Square(ray); j != to; j += chess.Square(ray) {
		if !p.board[j].IsEmpty() {
			return true
		}
	}
	return false
}

// InCheck reports whether the side to move's king is attacked.
func (p *Position) InCheck() bool {
	return p.kingAttacked(p.turn)
}

// kingAttacked reports whether colour c's king is attacked. A kingless
// constructed position is never in check.
func (p *Position) kingAttacked(c chess.Colour) bool {
	k := p.kings[c]
	if k == chess.NoSquare {
		return false
	}
	return p.Attacked(c.Opposite(), k)
}

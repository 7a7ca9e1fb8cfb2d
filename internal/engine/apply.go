package engine

import (
	"github.com/toddllm/lan-3d-chess-sub000/internal/chess"
	"github.com/toddllm/lan-3d-chess-sub000/internal/hashing"
)

// rookHomes maps each castling flag to its rook's home square. Moving off
// the home square, or an enemy capture landing on it, clears that one flag.
var rookHomes = [...]struct {
	sq     chess.Square
	colour chess.Colour
	flag   uint8
}{
	{chess.H1, chess.White, CastleWhiteKing},
	{chess.A1, chess.White, CastleWhiteQueen},
	{chess.H8, chess.Black, CastleBlackKing},
	{chess.A8, chess.Black, CastleBlackQueen},
}

// MakeMove commits a move and records the new position in the repetition
// counts. The move must come from this position's move generator (or be a
// null move); MakeMove performs no legality checking of its own.
func (p *Position) MakeMove(m chess.Move) {
	p.makeMove(m)
	p.positionCounts[p.hash]++
}

// UndoMove reverts the most recent committed move, removing the reverted
// position from the repetition counts. It returns false when the history
// stack is empty.
func (p *Position) UndoMove() (chess.Move, bool) {
	if len(p.history) == 0 {
		return chess.Move{}, false
	}
	if n := p.positionCounts[p.hash] - 1; n > 0 {
		p.positionCounts[p.hash] = n
	} else {
		delete(p.positionCounts, p.hash)
	}
	return p.undoMove(), true
}

// makeMove mutates the position in place and pushes a history snapshot.
// Used both for committed moves and for legality probes, which must not
// touch the repetition counts.
func (p *Position) makeMove(m chess.Move) {
	us := m.Colour
	them := us.Opposite()

	p.history = append(p.history, historyEntry{
		move:          m,
		castling:      p.castling,
		epSquare:      p.epSquare,
		halfmoveClock: p.halfmoveClock,
		moveNumber:    p.moveNumber,
		kings:         p.kings,
		hash:          p.hash,
	})

	// The castling and en-passant hash components are folded out up front
	// and back in at the end, so the body only XORs piece placements.
	h := p.hash
	h ^= hashing.CastlingKey(p.castling)
	h ^= hashing.EPKey(p.epSquare)

	if m.IsNull() {
		p.epSquare = chess.NoSquare
		p.halfmoveClock++
		if us == chess.Black {
			p.moveNumber++
		}
		p.turn = them
		h ^= hashing.CastlingKey(p.castling)
		h ^= hashing.SideKey()
		p.hash = h
		return
	}

	mover := p.board[m.From]

	// Move the piece; a capture overwrites the destination implicitly.
	if victim := p.board[m.To]; !victim.IsEmpty() {
		h ^= hashing.PieceKey(victim, m.To)
	}
	p.board[m.From] = chess.NoPiece
	p.board[m.To] = mover
	h ^= hashing.PieceKey(mover, m.From)
	h ^= hashing.PieceKey(mover, m.To)

	// En passant removes the passed pawn, which sits a rank behind the
	// destination square from the mover's point of view.
	if m.IsEnPassant() {
		capturedSq := m.To - chess.Square(chess.ColourOffset(us))
		h ^= hashing.PieceKey(p.board[capturedSq], capturedSq)
		p.board[capturedSq] = chess.NoPiece
	}

	if m.IsPromotion() {
		promoted := chess.MakePiece(us, m.Promotion)
		h ^= hashing.PieceKey(mover, m.To)
		h ^= hashing.PieceKey(promoted, m.To)
		p.board[m.To] = promoted
	}

	if mover.Type() == chess.King {
		p.kings[us] = m.To
		if m.IsCastle() {
			var rookFrom, rookTo chess.Square
			if m.IsKingsideCastle() {
				rookFrom, rookTo = m.To+1, m.To-1
			} else {
				rookFrom, rookTo = m.To-2, m.To+1
			}
			rook := p.board[rookFrom]
			p.board[rookFrom] = chess.NoPiece
			p.board[rookTo] = rook
			h ^= hashing.PieceKey(rook, rookFrom)
			h ^= hashing.PieceKey(rook, rookTo)
		}
		if us == chess.White {
			p.castling &^= CastleWhiteKing | CastleWhiteQueen
		} else {
			p.castling &^= CastleBlackKing | CastleBlackQueen
		}
	}

	// A rook leaving its home square, or an enemy piece landing on one,
	// clears exactly that flag.
	for _, rh := range rookHomes {
		if rh.colour == us && m.From == rh.sq {
			p.castling &^= rh.flag
		}
		if rh.colour == them && m.To == rh.sq {
			p.castling &^= rh.flag
		}
	}

	// Present an en-passant square only when an opposing pawn stands ready
	// to capture it; a dead ep square would poison the repetition hash.
	p.epSquare = chess.NoSquare
	if m.IsBigPawn() {
		oppPawn := chess.MakePiece(them, chess.Pawn)
		left, right := m.To-1, m.To+1
		if (!left.OffBoard() && p.board[left] == oppPawn) ||
			(!right.OffBoard() && p.board[right] == oppPawn) {
			p.epSquare = (m.From + m.To) / 2
		}
	}

	if mover.Type() == chess.Pawn || m.IsCapture() {
		p.halfmoveClock = 0
	} else {
		p.halfmoveClock++
	}
	if us == chess.Black {
		p.moveNumber++
	}
	p.turn = them

	h ^= hashing.CastlingKey(p.castling)
	h ^= hashing.EPKey(p.epSquare)
	h ^= hashing.SideKey()
	p.hash = h
}

// undoMove pops the history stack and restores the prior position exactly:
// scalar fields and the hash come back verbatim from the snapshot, and the
// board mutation is inverted from the move record.
func (p *Position) undoMove() chess.Move {
	entry := p.history[len(p.history)-1]
	p.history = p.history[:len(p.history)-1]

	m := entry.move
	p.castling = entry.castling
	p.epSquare = entry.epSquare
	p.halfmoveClock = entry.halfmoveClock
	p.moveNumber = entry.moveNumber
	p.kings = entry.kings
	p.hash = entry.hash
	p.turn = m.Colour

	if m.IsNull() {
		return m
	}

	us := m.Colour
	them := us.Opposite()

	// Promotions revert to the pawn that moved.
	p.board[m.From] = chess.MakePiece(us, m.Piece)
	p.board[m.To] = chess.NoPiece

	switch {
	case m.IsEnPassant():
		capturedSq := m.To - chess.Square(chess.ColourOffset(us))
		p.board[capturedSq] = chess.MakePiece(them, chess.Pawn)
	case m.Flags.Has(chess.FlagCapture):
		p.board[m.To] = chess.MakePiece(them, m.Captured)
	}

	if m.IsCastle() {
		var rookFrom, rookTo chess.Square
		if m.IsKingsideCastle() {
			rookFrom, rookTo = m.To+1, m.To-1
		} else {
			rookFrom, rookTo = m.To-2, m.To+1
		}
		p.board[rookFrom] = p.board[rookTo]
		p.board[rookTo] = chess.NoPiece
	}

	return m
}

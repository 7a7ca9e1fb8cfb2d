package engine

import (
	"testing"
)

func BenchmarkLegalMoves(b *testing.B) {
	p := New()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p.LegalMoves()
	}
}

func BenchmarkMakeUndo(b *testing.B) {
	p := New()
	moves := p.LegalMoves()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m := moves[i%len(moves)]
		p.MakeMove(m)
		p.UndoMove()
	}
}

func BenchmarkPerft3(b *testing.B) {
	p := New()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p.Perft(3)
	}
}

func BenchmarkFEN(b *testing.B) {
	p := New()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p.FEN()
	}
}

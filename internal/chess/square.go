package chess

import "fmt"

// Square indexes the 0x88 board: rank 8 occupies indices 0x00-0x07 and
// rank 1 occupies 0x70-0x77, so a8 is 0 and h1 is 0x77. Any index with a
// bit of 0x88 set lies outside the playable area.
type Square int

// NoSquare marks the absence of a square (cleared en-passant target,
// missing king in a constructed position).
const NoSquare Square = -1

// The 64 playable squares.
const (
	A8 Square = iota
	B8
	C8
	D8
	E8
	F8
	G8
	H8
)

const (
	A7 Square = 0x10 + iota
	B7
	C7
	D7
	E7
	F7
	G7
	H7
)

const (
	A6 Square = 0x20 + iota
	B6
	C6
	D6
	E6
	F6
	G6
	H6
)

const (
	A5 Square = 0x30 + iota
	B5
	C5
	D5
	E5
	F5
	G5
	H5
)

const (
	A4 Square = 0x40 + iota
	B4
	C4
	D4
	E4
	F4
	G4
	H4
)

const (
	A3 Square = 0x50 + iota
	B3
	C3
	D3
	E3
	F3
	G3
	H3
)

const (
	A2 Square = 0x60 + iota
	B2
	C2
	D2
	E2
	F2
	G2
	H2
)

const (
	A1 Square = 0x70 + iota
	B1
	C1
	D1
	E1
	F1
	G1
	H1
)

// BoardSize is the length of the padded 0x88 board array.
const BoardSize = 128

// OffBoard reports whether the square lies outside the playable 8x8 area.
func (s Square) OffBoard() bool {
	return s&0x88 != 0
}

// File returns the file index 0-7, where 0 is the a-file.
func (s Square) File() int {
	return int(s) & 0x0f
}

// Rank returns the rank digit 1-8 as an integer.
func (s Square) Rank() int {
	return 8 - int(s)>>4
}

// FileChar returns the file letter 'a'-'h'.
func (s Square) FileChar() byte {
	return byte('a' + s.File())
}

// RankChar returns the rank digit '1'-'8'.
func (s Square) RankChar() byte {
	return byte('0' + s.Rank())
}

// String returns the algebraic name of the square ("e4"), or "-" for
// NoSquare and off-board indices.
func (s Square) String() string {
	if s == NoSquare || s.OffBoard() {
		return "-"
	}
	return string([]byte{s.FileChar(), s.RankChar()})
}

// MakeSquare builds a square from a file index (0-7, a-file is 0) and a
// rank digit (1-8).
func MakeSquare(file, rank int) Square {
	return Square((8-rank)<<4 | file)
}

// ParseSquare converts an algebraic square name ("e4") to a Square.
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 || s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return NoSquare, fmt.Errorf("invalid square %q", s)
	}
	return MakeSquare(int(s[0]-'a'), int(s[1]-'0')), nil
}

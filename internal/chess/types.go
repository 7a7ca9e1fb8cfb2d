// Package chess provides the core value types shared by the engine:
// colours, pieces, squares and move records.
package chess

// Colour represents the colour of a piece or player.
type Colour int8

const (
	White Colour = iota
	Black
)

// String returns the string representation of a colour.
func (c Colour) String() string {
	if c == White {
		return "White"
	}
	return "Black"
}

// Char returns the FEN character for a colour ('w' or 'b').
func (c Colour) Char() byte {
	if c == White {
		return 'w'
	}
	return 'b'
}

// Opposite returns the opposite colour.
func (c Colour) Opposite() Colour {
	return c ^ 1
}

// PieceType identifies a kind of piece independent of colour.
type PieceType int8

const (
	NoPieceType PieceType = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

// String returns the string representation of a piece type.
func (t PieceType) String() string {
	names := []string{"None", "Pawn", "Knight", "Bishop", "Rook", "Queen", "King"}
	if int(t) < len(names) {
		return names[t]
	}
	return "Unknown"
}

// Letter returns the uppercase SAN letter for the piece type.
// Pawns have no SAN letter and report 'P' for FEN use.
func (t PieceType) Letter() byte {
	letters := []byte{'?', 'P', 'N', 'B', 'R', 'Q', 'K'}
	if int(t) < len(letters) {
		return letters[t]
	}
	return '?'
}

// PieceTypeFromLetter converts a SAN/FEN piece letter (either case) to a
// piece type. Unknown letters yield NoPieceType.
func PieceTypeFromLetter(c byte) PieceType {
	switch c {
	case 'P', 'p':
		return Pawn
	case 'N', 'n':
		return Knight
	case 'B', 'b':
		return Bishop
	case 'R', 'r':
		return Rook
	case 'Q', 'q':
		return Queen
	case 'K', 'k':
		return King
	default:
		return NoPieceType
	}
}

// Piece packs a piece type and colour into a single value. The zero value
// is the empty square.
type Piece int8

// NoPiece is the empty square.
const NoPiece Piece = 0

// MakePiece creates a coloured piece value.
func MakePiece(c Colour, t PieceType) Piece {
	return Piece(int8(t)<<1 | int8(c))
}

// W creates a white piece of the given type.
func W(t PieceType) Piece { return MakePiece(White, t) }

// B creates a black piece of the given type.
func B(t PieceType) Piece { return MakePiece(Black, t) }

// IsEmpty reports whether p is the empty square.
func (p Piece) IsEmpty() bool { return p == NoPiece }

// Colour extracts the colour from a piece.
func (p Piece) Colour() Colour {
	return Colour(p & 1)
}

// Type extracts the piece type from a piece.
func (p Piece) Type() PieceType {
	return PieceType(p >> 1)
}

// FENChar returns the FEN letter for the piece: uppercase for White,
// lowercase for Black.
func (p Piece) FENChar() byte {
	letter := p.Type().Letter()
	if p.Colour() == Black {
		letter += 'a' - 'A'
	}
	return letter
}

// PieceFromFENChar converts a FEN letter to a coloured piece. Unknown
// letters yield NoPiece.
func PieceFromFENChar(c byte) Piece {
	t := PieceTypeFromLetter(c)
	if t == NoPieceType {
		return NoPiece
	}
	colour := White
	if c >= 'a' && c <= 'z' {
		colour = Black
	}
	return MakePiece(colour, t)
}

// ColourOffset returns the board-index delta of a single pawn push for the
// given colour: white pawns move toward rank 8 (lower 0x88 indices).
func ColourOffset(c Colour) int {
	if c == White {
		return -16
	}
	return 16
}

package chess

// MoveFlag is a bitset classifying a move. Several flags may combine, e.g.
// a capturing promotion carries both Capture and Promotion.
type MoveFlag uint8

const (
	FlagNormal MoveFlag = 1 << iota
	FlagCapture
	FlagBigPawn // double pawn push
	FlagEPCapture
	FlagPromotion
	FlagKingsideCastle
	FlagQueensideCastle
	FlagNull
)

// Has reports whether all bits of f2 are set in f.
func (f MoveFlag) Has(f2 MoveFlag) bool {
	return f&f2 == f2
}

// Move is the engine's internal move record.
type Move struct {
	Colour    Colour
	From      Square
	To        Square
	Piece     PieceType
	Captured  PieceType // NoPieceType if not a capture
	Promotion PieceType // NoPieceType if not a promotion
	Flags     MoveFlag
}

// NullMove builds a null move for the given side.
func NullMove(c Colour) Move {
	return Move{Colour: c, From: NoSquare, To: NoSquare, Flags: FlagNull}
}

// IsCapture reports whether the move captures, including en passant.
func (m Move) IsCapture() bool {
	return m.Flags&(FlagCapture|FlagEPCapture) != 0
}

// IsEnPassant reports whether the move is an en-passant capture.
func (m Move) IsEnPassant() bool {
	return m.Flags.Has(FlagEPCapture)
}

// IsPromotion reports whether the move promotes a pawn.
func (m Move) IsPromotion() bool {
	return m.Flags.Has(FlagPromotion)
}

// IsBigPawn reports whether the move is a double pawn push.
func (m Move) IsBigPawn() bool {
	return m.Flags.Has(FlagBigPawn)
}

// IsKingsideCastle reports whether the move castles short.
func (m Move) IsKingsideCastle() bool {
	return m.Flags.Has(FlagKingsideCastle)
}

// IsQueensideCastle reports whether the move castles long.
func (m Move) IsQueensideCastle() bool {
	return m.Flags.Has(FlagQueensideCastle)
}

// IsCastle reports whether the move castles on either side.
func (m Move) IsCastle() bool {
	return m.Flags&(FlagKingsideCastle|FlagQueensideCastle) != 0
}

// IsNull reports whether this is a null move.
func (m Move) IsNull() bool {
	return m.Flags.Has(FlagNull)
}

// LAN returns the long algebraic form: from square, to square and an
// optional lowercase promotion letter ("e7e8q").
func (m Move) LAN() string {
	s := m.From.String() + m.To.String()
	if m.Promotion != NoPieceType {
		s += string(m.Promotion.Letter() + ('a' - 'A'))
	}
	return s
}

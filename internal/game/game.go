// Package game provides the user-facing chess game aggregate: a rules
// engine position together with PGN headers, position-keyed comments,
// verbose move records for renderers, and PGN import/export.
package game

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/toddllm/lan-3d-chess-sub000/internal/chess"
	"github.com/toddllm/lan-3d-chess-sub000/internal/engine"
)

// sevenTagRoster is the mandated PGN header order; any other headers
// follow in insertion order.
var sevenTagRoster = []string{"Event", "Site", "Date", "Round", "White", "Black", "Result"}

// VerboseMove is the move record handed to renderers and the network
// layer: algebraic squares, piece letters, derived predicates and the FEN
// on both sides of the move.
type VerboseMove struct {
	Colour    chess.Colour
	From      string
	To        string
	Piece     string // lowercase piece letter
	Captured  string // lowercase piece letter, "" if none
	Promotion string // lowercase piece letter, "" if none

	IsCapture         bool
	IsPromotion       bool
	IsEnPassant       bool
	IsKingsideCastle  bool
	IsQueensideCastle bool
	IsBigPawn         bool

	SAN    string
	LAN    string
	Before string // FEN before the move
	After  string // FEN after the move
}

// LoadOptions controls Game.Load.
type LoadOptions struct {
	// SkipValidation loads the FEN without the structural pre-pass.
	SkipValidation bool
	// PreserveHeaders keeps the current headers and comments.
	PreserveHeaders bool
}

// Game owns one engine position plus the stores whose lifecycle follows
// it: ordered PGN headers and free-text comments keyed by FEN. Comments
// are keyed by position rather than move index so they survive undo/redo
// replay whenever the position recurs.
type Game struct {
	pos *engine.Position

	headerNames []string
	headers     map[string]string

	comments map[string]string
}

// New creates a game at the standard starting position.
func New() *Game {
	return &Game{
		pos:      engine.New(),
		headers:  make(map[string]string),
		comments: make(map[string]string),
	}
}

// NewFromFEN creates a game from a validated FEN string.
func NewFromFEN(fen string) (*Game, error) {
	g := New()
	if err := g.Load(fen, LoadOptions{}); err != nil {
		return nil, err
	}
	return g, nil
}

// Load replaces the position from a FEN string. With validation enabled a
// malformed string leaves the game untouched. Headers and comments are
// cleared unless PreserveHeaders is set.
func (g *Game) Load(fen string, opts LoadOptions) error {
	if err := g.pos.LoadFEN(fen, opts.SkipValidation); err != nil {
		return err
	}
	if !opts.PreserveHeaders {
		g.headerNames = nil
		g.headers = make(map[string]string)
		g.comments = make(map[string]string)
	}
	return nil
}

// Reset returns the game to the standard starting position, clearing
// headers and comments.
func (g *Game) Reset() {
	_ = g.Load(engine.InitialFEN, LoadOptions{})
}

// Clear empties the board. Headers and comments are cleared unless
// preserveHeaders is set.
func (g *Game) Clear(preserveHeaders bool) {
	g.pos.Clear()
	if !preserveHeaders {
		g.headerNames = nil
		g.headers = make(map[string]string)
		g.comments = make(map[string]string)
	}
}

// FEN returns the current position as a FEN string.
func (g *Game) FEN() string { return g.pos.FEN() }

// Turn returns the colour to move.
func (g *Game) Turn() chess.Colour { return g.pos.Turn() }

// Position exposes the underlying engine position for terminal-state
// queries and direct inspection.
func (g *Game) Position() *engine.Position { return g.pos }

// Piece returns the piece on an algebraic square, or NoPiece.
func (g *Game) Piece(square string) chess.Piece {
	sq, err := chess.ParseSquare(square)
	if err != nil {
		return chess.NoPiece
	}
	return g.pos.Piece(sq)
}

// Put places a piece on an algebraic square, subject to the engine's
// constructed-position constraints. Editing invalidates move history.
func (g *Game) Put(piece chess.Piece, square string) error {
	sq, err := chess.ParseSquare(square)
	if err != nil {
		return err
	}
	return g.pos.Put(piece, sq)
}

// Remove takes the piece off an algebraic square and returns it.
func (g *Game) Remove(square string) chess.Piece {
	sq, err := chess.ParseSquare(square)
	if err != nil {
		return chess.NoPiece
	}
	return g.pos.Remove(sq)
}

// SetHeader records a PGN header, preserving first-written order.
func (g *Game) SetHeader(name, value string) {
	if _, seen := g.headers[name]; !seen {
		g.headerNames = append(g.headerNames, name)
	}
	g.headers[name] = value
}

// Header returns a header value and whether it is present.
func (g *Game) Header(name string) (string, bool) {
	value, ok := g.headers[name]
	return value, ok
}

// DeleteHeader removes a header, reporting whether it was present.
func (g *Game) DeleteHeader(name string) bool {
	if _, ok := g.headers[name]; !ok {
		return false
	}
	delete(g.headers, name)
	g.headerNames = slices.DeleteFunc(g.headerNames, func(n string) bool { return n == name })
	return true
}

// Headers returns the headers as an ordered list of name/value pairs:
// the seven-tag roster first, then the rest in insertion order.
func (g *Game) Headers() [][2]string {
	var pairs [][2]string
	for _, name := range g.headerOrder() {
		pairs = append(pairs, [2]string{name, g.headers[name]})
	}
	return pairs
}

// headerOrder returns present header names in output order.
func (g *Game) headerOrder() []string {
	var names []string
	for _, name := range sevenTagRoster {
		if _, ok := g.headers[name]; ok {
			names = append(names, name)
		}
	}
	for _, name := range g.headerNames {
		if slices.Contains(sevenTagRoster, name) {
			continue
		}
		names = append(names, name)
	}
	return names
}

// SetComment attaches a comment to the current position.
func (g *Game) SetComment(text string) {
	g.comments[g.pos.FEN()] = text
}

// Comment returns the comment for the current position, if any.
func (g *Game) Comment() (string, bool) {
	text, ok := g.comments[g.pos.FEN()]
	return text, ok
}

// DeleteComment removes and returns the comment for the current position.
func (g *Game) DeleteComment() (string, bool) {
	fen := g.pos.FEN()
	text, ok := g.comments[fen]
	if ok {
		delete(g.comments, fen)
	}
	return text, ok
}

// Comments returns all comments as FEN/text pairs, sorted by FEN for
// deterministic output.
func (g *Game) Comments() [][2]string {
	fens := maps.Keys(g.comments)
	slices.Sort(fens)
	pairs := make([][2]string, 0, len(fens))
	for _, fen := range fens {
		pairs = append(pairs, [2]string{fen, g.comments[fen]})
	}
	return pairs
}

// Move plays a move given in SAN (strict or lenient per the flag) and
// returns its verbose record. The input is never silently corrected: text
// that does not resolve to exactly one legal move is an error.
func (g *Game) Move(san string, strict bool) (*VerboseMove, error) {
	m, err := g.pos.MoveFromSAN(san, strict)
	if err != nil {
		return nil, err
	}
	return g.commit(m), nil
}

// MoveCoords plays a move given as from/to algebraic squares plus an
// optional promotion letter (the network wire format).
func (g *Game) MoveCoords(from, to, promotion string) (*VerboseMove, error) {
	m, err := g.pos.MoveFromCoords(from, to, promotion)
	if err != nil {
		return nil, err
	}
	return g.commit(m), nil
}

// commit applies a legal move and builds its verbose record.
func (g *Game) commit(m chess.Move) *VerboseMove {
	before := g.pos.FEN()
	san := g.pos.SANFromMove(m)
	g.pos.MakeMove(m)
	return g.verbose(m, san, before, g.pos.FEN())
}

// Undo reverts the last move and returns its verbose record, or nil when
// there is nothing to undo.
func (g *Game) Undo() *VerboseMove {
	m, ok := g.pos.UndoMove()
	if !ok {
		return nil
	}
	// Rebuild the record from the restored position's point of view.
	before := g.pos.FEN()
	san := g.pos.SANFromMove(m)
	g.pos.MakeMove(m)
	after := g.pos.FEN()
	g.pos.UndoMove()
	return g.verbose(m, san, before, after)
}

// Moves returns the SAN of every legal move.
func (g *Game) Moves() []string {
	legal := g.pos.LegalMoves()
	sans := make([]string, len(legal))
	for i, m := range legal {
		sans[i] = g.pos.SANFromMove(m)
	}
	return sans
}

// MovesVerbose returns every legal move as a verbose record, for
// destination highlighting and animation decisions.
func (g *Game) MovesVerbose() []*VerboseMove {
	before := g.pos.FEN()
	legal := g.pos.LegalMoves()
	out := make([]*VerboseMove, len(legal))
	for i, m := range legal {
		san := g.pos.SANFromMove(m)
		g.pos.MakeMove(m)
		after := g.pos.FEN()
		g.pos.UndoMove()
		out[i] = g.verbose(m, san, before, after)
	}
	return out
}

// MovesFrom returns the SAN of the legal moves originating on a square.
func (g *Game) MovesFrom(square string) []string {
	sq, err := chess.ParseSquare(square)
	if err != nil {
		return nil
	}
	legal := g.pos.LegalMovesFrom(sq)
	sans := make([]string, len(legal))
	for i, m := range legal {
		sans[i] = g.pos.SANFromMove(m)
	}
	return sans
}

// History returns the SAN of the moves played, oldest first, by unwinding
// the game and replaying it so each SAN is generated in its own position.
func (g *Game) History() []string {
	var sans []string
	g.replay(func(m chess.Move, san, before, after string) {
		sans = append(sans, san)
	})
	return sans
}

// HistoryVerbose returns the full verbose record of the moves played.
func (g *Game) HistoryVerbose() []*VerboseMove {
	var out []*VerboseMove
	g.replay(func(m chess.Move, san, before, after string) {
		out = append(out, g.verbose(m, san, before, after))
	})
	return out
}

// replay unwinds the whole history and re-makes it move by move, invoking
// visit with each move's SAN and surrounding FENs. The position ends up
// exactly where it started.
func (g *Game) replay(visit func(m chess.Move, san, before, after string)) {
	var undone []chess.Move
	for {
		m, ok := g.pos.UndoMove()
		if !ok {
			break
		}
		undone = append(undone, m)
	}
	for i := len(undone) - 1; i >= 0; i-- {
		m := undone[i]
		before := g.pos.FEN()
		san := g.pos.SANFromMove(m)
		g.pos.MakeMove(m)
		visit(m, san, before, g.pos.FEN())
	}
}

// verbose builds the VerboseMove record for a move.
func (g *Game) verbose(m chess.Move, san, before, after string) *VerboseMove {
	lower := func(t chess.PieceType) string {
		if t == chess.NoPieceType {
			return ""
		}
		return string(t.Letter() + ('a' - 'A'))
	}
	return &VerboseMove{
		Colour:            m.Colour,
		From:              m.From.String(),
		To:                m.To.String(),
		Piece:             lower(m.Piece),
		Captured:          lower(m.Captured),
		Promotion:         lower(m.Promotion),
		IsCapture:         m.IsCapture(),
		IsPromotion:       m.IsPromotion(),
		IsEnPassant:       m.IsEnPassant(),
		IsKingsideCastle:  m.IsKingsideCastle(),
		IsQueensideCastle: m.IsQueensideCastle(),
		IsBigPawn:         m.IsBigPawn(),
		SAN:               san,
		LAN:               m.LAN(),
		Before:            before,
		After:             after,
	}
}

// Terminal-state queries, delegated to the engine.

// InCheck reports whether the side to move is in check.
func (g *Game) InCheck() bool { return g.pos.InCheck() }

// IsCheckmate reports checkmate for the side to move.
func (g *Game) IsCheckmate() bool { return g.pos.IsCheckmate() }

// IsStalemate reports stalemate for the side to move.
func (g *Game) IsStalemate() bool { return g.pos.IsStalemate() }

// IsInsufficientMaterial reports a dead draw by material.
func (g *Game) IsInsufficientMaterial() bool { return g.pos.InsufficientMaterial() }

// IsThreefoldRepetition reports a threefold repetition of the current
// position.
func (g *Game) IsThreefoldRepetition() bool { return g.pos.IsThreefoldRepetition() }

// IsFiftyMoveDraw reports the fifty-move rule.
func (g *Game) IsFiftyMoveDraw() bool { return g.pos.IsFiftyMoveDraw() }

// IsDraw reports any automatic draw condition.
func (g *Game) IsDraw() bool { return g.pos.IsDraw() }

// IsGameOver reports checkmate, stalemate or a draw.
func (g *Game) IsGameOver() bool { return g.pos.IsGameOver() }

package game

import (
	"io"
	"strconv"
	"strings"

	"github.com/toddllm/lan-3d-chess-sub000/internal/chess"
	"github.com/toddllm/lan-3d-chess-sub000/internal/engine"
	"github.com/toddllm/lan-3d-chess-sub000/internal/errors"
	"github.com/toddllm/lan-3d-chess-sub000/internal/pgn"
)

// PGNOptions controls PGN serialization.
type PGNOptions struct {
	// MaxWidth wraps movetext lines at the given column without ever
	// splitting a token; 0 disables wrapping.
	MaxWidth int
	// Newline is the line separator; "\n" when empty.
	Newline string
}

// LoadPGN parses one game from r and replaces this game with it. The move
// tree is built in full before any move is applied, and the moves are
// applied to a scratch game, so a malformed document or an illegal move
// leaves the receiver untouched. Variations are validated by the grammar
// but only the mainline is applied.
func (g *Game) LoadPGN(r io.Reader, strict bool) error {
	parsed, err := pgn.NewParser(r).ParseGame()
	if err != nil {
		return err
	}
	if parsed == nil {
		return errors.Wrap(errors.ErrParseFailure, "no game in input")
	}

	next := New()
	if fen := parsed.Tag("FEN"); fen != "" {
		if err := next.Load(fen, LoadOptions{}); err != nil {
			return errors.Wrap(err, "FEN tag")
		}
	}
	for _, name := range parsed.TagNames {
		next.SetHeader(name, parsed.Tags[name])
	}
	if len(parsed.PrefixComments) > 0 {
		next.comments[next.FEN()] = strings.Join(parsed.PrefixComments, " ")
	}

	for node := parsed.Moves; node != nil; node = node.Next {
		if node.SAN == "--" {
			next.pos.MakeMove(chess.NullMove(next.pos.Turn()))
		} else {
			m, err := next.pos.MoveFromSAN(node.SAN, strict)
			if err != nil {
				return &errors.ParseError{Err: err, Line: node.Line, Got: strconv.Quote(node.SAN)}
			}
			next.pos.MakeMove(m)
		}
		if len(node.Comments) > 0 {
			next.comments[next.FEN()] = strings.Join(node.Comments, " ")
		}
	}

	*g = *next
	return nil
}

// PGN serializes the game: the ordered header block, then movetext
// rebuilt by replaying the history and regenerating SAN at each step,
// with comments keyed by the position they follow and the termination
// marker last.
func (g *Game) PGN(opts PGNOptions) string {
	newline := opts.Newline
	if newline == "" {
		newline = "\n"
	}

	// Collect the movetext tokens by replaying the history.
	var tokens []string
	first := true
	initialFEN := g.FEN()
	g.replay(func(m chess.Move, san, before, after string) {
		if first {
			initialFEN = before
			first = false
			if m.Colour == chess.Black {
				tokens = append(tokens, moveNumberOf(before)+". ...")
			}
		}
		if m.Colour == chess.White {
			tokens = append(tokens, moveNumberOf(before)+".")
		}
		tokens = append(tokens, san)
		if comment, ok := g.comments[after]; ok {
			tokens = append(tokens, "{"+comment+"}")
		}
	})
	if comment, ok := g.comments[initialFEN]; ok {
		tokens = append([]string{"{" + comment + "}"}, tokens...)
	}

	result := "*"
	if r, ok := g.headers["Result"]; ok && r != "" {
		result = r
	}
	tokens = append(tokens, result)

	// A non-standard start carries SetUp and FEN headers in the output.
	names := g.headerOrder()
	headers := g.headers
	if initialFEN != engine.InitialFEN {
		headers = make(map[string]string, len(g.headers)+2)
		for name, value := range g.headers {
			headers[name] = value
		}
		if _, ok := headers["SetUp"]; !ok {
			headers["SetUp"] = "1"
			names = append(names, "SetUp")
		}
		if _, ok := headers["FEN"]; !ok {
			headers["FEN"] = initialFEN
			names = append(names, "FEN")
		}
	}

	var sb strings.Builder
	sb.WriteString(pgn.FormatTags(names, headers, newline))
	if len(names) > 0 {
		sb.WriteString(newline)
	}
	sb.WriteString(pgn.WrapTokens(tokens, opts.MaxWidth, newline))
	sb.WriteString(newline)
	return sb.String()
}

// moveNumberOf extracts the fullmove number field from a FEN string.
func moveNumberOf(fen string) string {
	fields := strings.Fields(fen)
	return fields[len(fields)-1]
}

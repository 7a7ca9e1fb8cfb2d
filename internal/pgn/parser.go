package pgn

import (
	"io"

	"github.com/toddllm/lan-3d-chess-sub000/internal/errors"
)

// Node is one move of parsed movetext. Variations branch off at the node
// they replace: each element of Variations is the head of an alternative
// line to this move.
type Node struct {
	// SAN is the move text as written ("Nf3", "O-O", "--" for a null move).
	SAN string

	// MoveNumber is the number written before the move, or 0.
	MoveNumber int

	// NAGs holds $n glyphs, including those mapped from !/? suffixes.
	NAGs []string

	// Comments holds brace and semicolon comments following the move.
	Comments []string

	// Variations are alternative lines branching at this move.
	Variations []*Node

	// Next is the following move of this line.
	Next *Node

	// Line locates the move in the source for diagnostics.
	Line int
}

// Game is a parsed PGN game: ordered tag pairs, the movetext tree and the
// termination marker.
type Game struct {
	// TagNames preserves tag order as written.
	TagNames []string
	Tags     map[string]string

	// PrefixComments appear between the tags and the first move.
	PrefixComments []string

	Moves  *Node
	Result string

	StartLine int
	EndLine   int
}

// Tag returns a tag value, or the empty string.
func (g *Game) Tag(name string) string {
	return g.Tags[name]
}

// setTag records a tag, keeping first-written order.
func (g *Game) setTag(name, value string) {
	if g.Tags == nil {
		g.Tags = make(map[string]string)
	}
	if _, seen := g.Tags[name]; !seen {
		g.TagNames = append(g.TagNames, name)
	}
	g.Tags[name] = value
}

// MainlineSAN returns the SAN texts of the mainline in order.
func (g *Game) MainlineSAN() []string {
	var sans []string
	for n := g.Moves; n != nil; n = n.Next {
		sans = append(sans, n.SAN)
	}
	return sans
}

// Parser parses PGN input into Game trees. The parser builds the whole
// tree before anything is applied to an engine position, so a syntax error
// never leaves a caller's position half-mutated.
type Parser struct {
	lexer   *Lexer
	current *Token
}

// NewParser creates a parser for the given reader.
func NewParser(r io.Reader) *Parser {
	return &Parser{lexer: NewLexer(r)}
}

// next advances to the next token.
func (p *Parser) next() error {
	token, err := p.lexer.NextToken()
	if err != nil {
		return err
	}
	p.current = token
	return nil
}

// ParseGame parses a single game. It returns (nil, nil) when the input is
// exhausted.
func (p *Parser) ParseGame() (*Game, error) {
	if p.current == nil {
		if err := p.next(); err != nil {
			return nil, err
		}
	}

	game := &Game{StartLine: p.current.Line}

	// Tag section with optional interleaved comments.
	for {
		switch p.current.Type {
		case TagToken:
			name := p.current.Text
			nameLine, nameCol := p.current.Line, p.current.Column
			if err := p.next(); err != nil {
				return nil, err
			}
			if p.current.Type != StringToken {
				return nil, &errors.ParseError{
					Err: errors.ErrParseFailure, Line: nameLine, Column: nameCol,
					Expected: "tag value string", Got: "tag " + name + " without value",
				}
			}
			game.setTag(name, p.current.Text)
			if err := p.next(); err != nil {
				return nil, err
			}
		case CommentToken:
			game.PrefixComments = append(game.PrefixComments, p.current.Text)
			if err := p.next(); err != nil {
				return nil, err
			}
		case EOFToken:
			if len(game.Tags) == 0 {
				return nil, nil
			}
			game.EndLine = p.current.Line
			return game, nil
		default:
			goto movetext
		}
	}

movetext:
	moves, err := p.parseMoveList()
	if err != nil {
		return nil, err
	}
	game.Moves = moves

	if p.current.Type == TerminatingResult {
		game.Result = p.current.Text
		if err := p.next(); err != nil {
			return nil, err
		}
	}
	game.EndLine = p.lexer.LineNumber()

	if game.Moves == nil && len(game.Tags) == 0 && game.Result == "" {
		return nil, nil
	}
	if game.Result != "" {
		if game.Tags["Result"] == "" || game.Tags["Result"] == "?" {
			game.setTag("Result", game.Result)
		}
	}
	return game, nil
}

// parseMoveList parses moves until a result, a variation close or EOF.
func (p *Parser) parseMoveList() (*Node, error) {
	var head, tail *Node
	for {
		node, err := p.parseMove()
		if err != nil {
			return nil, err
		}
		if node == nil {
			return head, nil
		}
		if head == nil {
			head = node
		} else {
			tail.Next = node
		}
		tail = node
	}
}

// parseMove parses one move with its number, NAGs, comments and
// variations. Returns nil at the end of the current move list.
func (p *Parser) parseMove() (*Node, error) {
	node := &Node{}

	for p.current.Type == MoveNumber {
		node.MoveNumber = p.current.MoveNum
		if err := p.next(); err != nil {
			return nil, err
		}
	}

	if p.current.Type != MoveToken {
		switch p.current.Type {
		case EOFToken, TerminatingResult, RAVEnd:
			return nil, nil
		case TagToken:
			// A tag here means the movetext ended without a result and
			// the next game begins.
			return nil, nil
		default:
			return nil, &errors.ParseError{
				Err: errors.ErrParseFailure, Line: p.current.Line, Column: p.current.Column,
				Expected: "move", Got: p.current.Type.String(),
			}
		}
	}

	node.SAN = p.current.Text
	node.Line = p.current.Line
	if err := p.next(); err != nil {
		return nil, err
	}

	// Decorations may interleave in any order after the move.
	for {
		switch p.current.Type {
		case CheckSymbol:
			if err := p.next(); err != nil {
				return nil, err
			}
		case NAGToken:
			node.NAGs = append(node.NAGs, p.current.Text)
			if err := p.next(); err != nil {
				return nil, err
			}
		case CommentToken:
			node.Comments = append(node.Comments, p.current.Text)
			if err := p.next(); err != nil {
				return nil, err
			}
		case RAVStart:
			if err := p.next(); err != nil {
				return nil, err
			}
			variation, err := p.parseMoveList()
			if err != nil {
				return nil, err
			}
			if p.current.Type != RAVEnd {
				return nil, &errors.ParseError{
					Err: errors.ErrParseFailure, Line: p.current.Line, Column: p.current.Column,
					Expected: "')'", Got: p.current.Type.String(),
				}
			}
			if err := p.next(); err != nil {
				return nil, err
			}
			if variation != nil {
				node.Variations = append(node.Variations, variation)
			}
		default:
			return node, nil
		}
	}
}

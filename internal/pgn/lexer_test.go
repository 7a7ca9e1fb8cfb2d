package pgn

import (
	goerrors "errors"
	"strings"
	"testing"

	"github.com/toddllm/lan-3d-chess-sub000/internal/errors"
	"github.com/toddllm/lan-3d-chess-sub000/internal/testutil"
)

// lexAll drains the lexer into (type, text) pairs, excluding EOF.
func lexAll(t *testing.T, input string) []Token {
	t.Helper()
	l := NewLexer(strings.NewReader(input))
	var tokens []Token
	for {
		token, err := l.NextToken()
		if err != nil {
			t.Fatalf("lex %q: %v", input, err)
		}
		if token.Type == EOFToken {
			return tokens
		}
		tokens = append(tokens, *token)
	}
}

func kinds(tokens []Token) []TokenType {
	out := make([]TokenType, len(tokens))
	for i, tk := range tokens {
		out[i] = tk.Type
	}
	return out
}

func TestLexTagPair(t *testing.T) {
	tokens := lexAll(t, `[Event "Casual Game"]`)
	testutil.AssertEqual(t, kinds(tokens), []TokenType{TagToken, StringToken})
	testutil.AssertEqual(t, tokens[0].Text, "Event")
	testutil.AssertEqual(t, tokens[1].Text, "Casual Game")
}

func TestLexStringEscapes(t *testing.T) {
	tokens := lexAll(t, `[Site "His \"Home\" \\ Lab"]`)
	testutil.AssertEqual(t, tokens[1].Text, `His "Home" \ Lab`)
}

func TestLexMovetext(t *testing.T) {
	tokens := lexAll(t, "1. e4 e5 2. Nf3 Nc6 1-0")
	testutil.AssertEqual(t, kinds(tokens), []TokenType{
		MoveNumber, MoveToken, MoveToken,
		MoveNumber, MoveToken, MoveToken,
		TerminatingResult,
	})
	testutil.AssertEqual(t, tokens[0].MoveNum, 1)
	testutil.AssertEqual(t, tokens[1].Text, "e4")
	testutil.AssertEqual(t, tokens[4].Text, "Nf3")
	testutil.AssertEqual(t, tokens[6].Text, "1-0")
}

func TestLexResults(t *testing.T) {
	for _, tt := range []struct{ input, want string }{
		{"1-0", "1-0"},
		{"0-1", "0-1"},
		{"1/2-1/2", "1/2-1/2"},
		{"1/2", "1/2-1/2"},
		{"*", "*"},
	} {
		tokens := lexAll(t, tt.input)
		testutil.AssertEqual(t, len(tokens), 1, "input %q", tt.input)
		testutil.AssertEqual(t, tokens[0].Type, TerminatingResult, "input %q", tt.input)
		testutil.AssertEqual(t, tokens[0].Text, tt.want, "input %q", tt.input)
	}
}

func TestLexCastlingSpellings(t *testing.T) {
	for _, tt := range []struct{ input, want string }{
		{"O-O", "O-O"},
		{"O-O-O", "O-O-O"},
		{"0-0", "O-O"},
		{"0-0-0", "O-O-O"},
	} {
		tokens := lexAll(t, tt.input)
		testutil.AssertEqual(t, len(tokens), 1, "input %q", tt.input)
		testutil.AssertEqual(t, tokens[0].Type, MoveToken, "input %q", tt.input)
		testutil.AssertEqual(t, tokens[0].Text, tt.want, "input %q", tt.input)
	}
}

func TestLexNullMoveSpellings(t *testing.T) {
	for _, input := range []string{"--", "Z0"} {
		tokens := lexAll(t, input)
		testutil.AssertEqual(t, len(tokens), 1, "input %q", input)
		testutil.AssertEqual(t, tokens[0].Type, MoveToken, "input %q", input)
		testutil.AssertEqual(t, tokens[0].Text, "--", "input %q", input)
	}
}

func TestLexBraceComment(t *testing.T) {
	tokens := lexAll(t, "e4 { a fine\nopening } e5")
	testutil.AssertEqual(t, kinds(tokens), []TokenType{MoveToken, CommentToken, MoveToken})
	testutil.AssertEqual(t, tokens[1].Text, "a fine\nopening")
}

func TestLexSemicolonComment(t *testing.T) {
	tokens := lexAll(t, "e4 ; rest of the line\ne5")
	testutil.AssertEqual(t, kinds(tokens), []TokenType{MoveToken, CommentToken, MoveToken})
	testutil.AssertEqual(t, tokens[1].Text, "rest of the line")
}

func TestLexEscapeLine(t *testing.T) {
	tokens := lexAll(t, "%ignored entirely\ne4")
	testutil.AssertEqual(t, kinds(tokens), []TokenType{MoveToken})
}

func TestLexNAGsAndAnnotations(t *testing.T) {
	tokens := lexAll(t, "e4 $12 e5!? Nf3?? Nc6!")
	testutil.AssertEqual(t, kinds(tokens), []TokenType{
		MoveToken, NAGToken, MoveToken, NAGToken, MoveToken, NAGToken, MoveToken, NAGToken,
	})
	testutil.AssertEqual(t, tokens[1].Text, "$12")
	testutil.AssertEqual(t, tokens[3].Text, "$5")
	testutil.AssertEqual(t, tokens[5].Text, "$4")
	testutil.AssertEqual(t, tokens[7].Text, "$1")
}

func TestLexCheckSymbolsAndVariations(t *testing.T) {
	tokens := lexAll(t, "Qxf7+ (Qh5#)")
	testutil.AssertEqual(t, kinds(tokens), []TokenType{
		MoveToken, CheckSymbol, RAVStart, MoveToken, CheckSymbol, RAVEnd,
	})
}

func TestLexErrorsCarryPosition(t *testing.T) {
	tests := []struct {
		input   string
		line    int
		column  int
		message string
	}{
		{"e4 }", 1, 4, "unmatched '}'"},
		{"e4 )", 1, 4, "unmatched ')'"},
		{"e4 $x", 1, 4, "'$' without digits"},
		{"e4 e5\n{never closed", 2, 1, "unterminated comment"},
		{`[Event "open`, 1, 8, "unterminated string"},
		{"e4 - e5", 1, 4, "single '-'"},
	}
	for _, tt := range tests {
		l := NewLexer(strings.NewReader(tt.input))
		var err error
		for err == nil {
			var token *Token
			token, err = l.NextToken()
			if err == nil && token.Type == EOFToken {
				break
			}
		}
		testutil.AssertError(t, err, "input %q", tt.input)
		var pe *errors.ParseError
		if !goerrors.As(err, &pe) {
			t.Errorf("input %q: error %v is not a ParseError", tt.input, err)
			continue
		}
		testutil.AssertEqual(t, pe.Line, tt.line, "input %q", tt.input)
		testutil.AssertEqual(t, pe.Column, tt.column, "input %q", tt.input)
		testutil.AssertContains(t, err.Error(), tt.message, "input %q", tt.input)
	}
}

func TestLexRejectsShapelessMoveText(t *testing.T) {
	l := NewLexer(strings.NewReader("xyzzy"))
	_, err := l.NextToken()
	testutil.AssertError(t, err)
	if !goerrors.Is(err, errors.ErrParseFailure) {
		t.Errorf("error %v does not wrap ErrParseFailure", err)
	}
}

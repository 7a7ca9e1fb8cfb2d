package pgn

import (
	"bufio"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/toddllm/lan-3d-chess-sub000/internal/errors"
)

// Lexer tokenizes PGN input line by line.
type Lexer struct {
	reader   *bufio.Reader
	line     string
	pos      int
	lineNum  int
	ravLevel int
	eof      bool
}

// Character classification table.
var chTab [256]TokenType

// Move character classification table.
var moveChars [256]bool

func init() {
	for i := range chTab {
		chTab[i] = ErrorToken
	}

	for _, c := range []byte{' ', '\t', '\r', '\n'} {
		chTab[c] = Whitespace
	}

	chTab['['] = TagStart
	chTab[']'] = TagEnd
	chTab['"'] = DoubleQuote
	chTab['{'] = CommentStart
	chTab['}'] = CommentEnd
	chTab[';'] = LineComment

	chTab['$'] = NAGToken
	chTab['!'] = Annotate
	chTab['?'] = Annotate
	chTab['+'] = CheckSymbol
	chTab['#'] = CheckSymbol
	chTab['.'] = Dot
	chTab['('] = RAVStart
	chTab[')'] = RAVEnd
	chTab['%'] = Percent
	chTab['\\'] = Escape
	chTab[0] = EOS
	chTab['*'] = Star
	chTab['-'] = Dash
	chTab['='] = Alpha // promotion marker inside move text

	for c := byte('0'); c <= '9'; c++ {
		chTab[c] = Digit
	}
	for c := byte('A'); c <= 'Z'; c++ {
		chTab[c] = Alpha
		chTab[c+32] = Alpha
	}
	chTab['_'] = Alpha

	// Files, ranks and piece letters.
	for c := byte('a'); c <= 'h'; c++ {
		moveChars[c] = true
	}
	for c := byte('1'); c <= '8'; c++ {
		moveChars[c] = true
	}
	for _, c := range []byte{'K', 'Q', 'R', 'N', 'B', 'k', 'q', 'r', 'n', 'b', 'p'} {
		moveChars[c] = true
	}
	// Capture/separator, promotion, castling and en-passant spellings.
	for _, c := range []byte{'x', 'X', ':', '-', '=', 'O', 'o', '0'} {
		moveChars[c] = true
	}
}

// NewLexer creates a new lexer for the given reader.
func NewLexer(r io.Reader) *Lexer {
	return &Lexer{reader: bufio.NewReader(r)}
}

// LineNumber returns the current line number.
func (l *Lexer) LineNumber() int { return l.lineNum }

// RAVLevel returns the current variation nesting level.
func (l *Lexer) RAVLevel() int { return l.ravLevel }

// readLine reads the next line from input.
func (l *Lexer) readLine() bool {
	line, err := l.reader.ReadString('\n')
	if err != nil && (err != io.EOF || len(line) == 0) {
		l.eof = true
		return false
	}
	l.line = line
	l.pos = 0
	l.lineNum++
	return true
}

// currentChar returns the current character or 0 at end of line.
func (l *Lexer) currentChar() byte {
	if l.pos >= len(l.line) {
		return 0
	}
	return l.line[l.pos]
}

// advance moves to the next character.
func (l *Lexer) advance() {
	if l.pos < len(l.line) {
		l.pos++
	}
}

// errorAt builds a located ParseError for the current token start.
func (l *Lexer) errorAt(column int, got string) error {
	return &errors.ParseError{
		Err:    errors.ErrParseFailure,
		Line:   l.lineNum,
		Column: column + 1,
		Got:    got,
	}
}

// NextToken returns the next token from the input.
func (l *Lexer) NextToken() (*Token, error) {
	for {
		token, err := l.nextSymbol()
		if err != nil {
			return nil, err
		}
		if token.Type != NoToken {
			if token.Line == 0 {
				token.Line = l.lineNum
			}
			return token, nil
		}
	}
}

// nextSymbol identifies the next symbol, returning NoToken for skipped
// input (whitespace, dots, escape lines).
func (l *Lexer) nextSymbol() (*Token, error) {
	if l.line == "" || l.pos >= len(l.line) {
		if !l.readLine() {
			return &Token{Type: EOFToken, Line: l.lineNum}, nil
		}
		return &Token{Type: NoToken}, nil
	}

	ch := l.currentChar()
	start := l.pos
	l.advance()

	switch chTab[ch] {
	case Whitespace:
		for l.pos < len(l.line) && chTab[l.currentChar()] == Whitespace {
			l.advance()
		}
		return &Token{Type: NoToken}, nil

	case TagStart:
		return l.gatherTag()

	case TagEnd:
		return &Token{Type: NoToken}, nil

	case DoubleQuote:
		return l.gatherString(start)

	case CommentStart:
		return l.gatherComment(start)

	case CommentEnd:
		return nil, l.errorAt(start, "unmatched '}'")

	case LineComment:
		// Semicolon comments run to the end of the line.
		text := strings.TrimSpace(l.line[l.pos:])
		l.pos = len(l.line)
		return &Token{Type: CommentToken, Text: text, Column: start + 1}, nil

	case NAGToken:
		digits := l.pos
		for l.pos < len(l.line) && unicode.IsDigit(rune(l.currentChar())) {
			l.advance()
		}
		if l.pos == digits {
			return nil, l.errorAt(start, "'$' without digits")
		}
		return &Token{Type: NAGToken, Text: "$" + l.line[digits:l.pos], Column: start + 1}, nil

	case Annotate:
		// Suffix annotations: !, ?, !!, ??, !?, ?! map onto NAGs $1-$6.
		for l.pos < len(l.line) && chTab[l.currentChar()] == Annotate && l.pos-start < 2 {
			l.advance()
		}
		return &Token{Type: NAGToken, Text: annotationToNAG(l.line[start:l.pos]), Column: start + 1}, nil

	case CheckSymbol:
		for l.pos < len(l.line) && chTab[l.currentChar()] == CheckSymbol {
			l.advance()
		}
		return &Token{Type: CheckSymbol, Column: start + 1}, nil

	case Dot:
		for l.pos < len(l.line) && chTab[l.currentChar()] == Dot {
			l.advance()
		}
		return &Token{Type: NoToken}, nil

	case RAVStart:
		l.ravLevel++
		return &Token{Type: RAVStart, Column: start + 1}, nil

	case RAVEnd:
		if l.ravLevel == 0 {
			return nil, l.errorAt(start, "unmatched ')'")
		}
		l.ravLevel--
		return &Token{Type: RAVEnd, Column: start + 1}, nil

	case Percent:
		// An escape line, skipped whole.
		l.pos = len(l.line)
		return &Token{Type: NoToken}, nil

	case Escape:
		if l.pos < len(l.line) {
			l.advance()
		}
		return &Token{Type: NoToken}, nil

	case Alpha:
		return l.gatherMove(ch, start)

	case Digit:
		return l.gatherNumeric(ch, start)

	case Star:
		return &Token{Type: TerminatingResult, Text: "*", Column: start + 1}, nil

	case Dash:
		if l.currentChar() == '-' {
			l.advance()
			return &Token{Type: MoveToken, Text: "--", Column: start + 1}, nil
		}
		return nil, l.errorAt(start, "single '-'")

	case EOS:
		if !l.readLine() {
			return &Token{Type: EOFToken, Line: l.lineNum}, nil
		}
		return &Token{Type: NoToken}, nil

	default:
		return nil, l.errorAt(start, strconv.QuoteRune(rune(ch)))
	}
}

// gatherTag gathers a tag name after '['.
func (l *Lexer) gatherTag() (*Token, error) {
	for l.pos < len(l.line) && chTab[l.currentChar()] == Whitespace {
		l.advance()
	}
	start := l.pos
	for l.pos < len(l.line) {
		ch := rune(l.currentChar())
		if unicode.IsLetter(ch) || unicode.IsDigit(ch) || ch == '_' {
			l.advance()
		} else {
			break
		}
	}
	if l.pos == start {
		return nil, l.errorAt(start, "'[' without tag name")
	}
	return &Token{Type: TagToken, Text: l.line[start:l.pos], Column: start + 1}, nil
}

// gatherString gathers a quoted string with backslash escapes.
func (l *Lexer) gatherString(start int) (*Token, error) {
	var sb strings.Builder
	escaped := false
	for l.pos < len(l.line) {
		ch := l.currentChar()
		l.advance()
		switch {
		case escaped:
			sb.WriteByte(ch)
			escaped = false
		case ch == '\\':
			escaped = true
		case ch == '"':
			return &Token{Type: StringToken, Text: sb.String(), Column: start + 1}, nil
		default:
			sb.WriteByte(ch)
		}
	}
	return nil, l.errorAt(start, "unterminated string")
}

// gatherComment gathers a brace comment, which may span lines.
func (l *Lexer) gatherComment(start int) (*Token, error) {
	var sb strings.Builder
	for {
		for l.pos < len(l.line) {
			ch := l.currentChar()
			l.advance()
			if ch == '}' {
				return &Token{
					Type:   CommentToken,
					Text:   strings.TrimSpace(sb.String()),
					Column: start + 1,
				}, nil
			}
			sb.WriteByte(ch)
		}
		if !l.readLine() {
			return nil, l.errorAt(start, "unterminated comment")
		}
		sb.WriteByte('\n')
	}
}

// gatherMove gathers a run of move characters.
func (l *Lexer) gatherMove(ch byte, start int) (*Token, error) {
	// Z0 is an alternative null-move spelling.
	if ch == 'Z' && l.currentChar() == '0' {
		l.advance()
		return &Token{Type: MoveToken, Text: "--", Column: start + 1}, nil
	}
	if !moveChars[ch] {
		return nil, l.errorAt(start, strconv.QuoteRune(rune(ch)))
	}
	for l.pos < len(l.line) && moveChars[l.currentChar()] {
		l.advance()
	}
	text := l.line[start:l.pos]
	if !moveSeemsValid(text) {
		return nil, l.errorAt(start, "move text "+strconv.Quote(text))
	}
	return &Token{Type: MoveToken, Text: text, Column: start + 1}, nil
}

// gatherNumeric handles tokens starting with a digit: results, castling
// written with zeros, and move numbers.
func (l *Lexer) gatherNumeric(first byte, start int) (*Token, error) {
	remaining := l.line[l.pos:]

	switch first {
	case '0':
		if strings.HasPrefix(remaining, "-1") {
			l.pos += 2
			return &Token{Type: TerminatingResult, Text: "0-1", Column: start + 1}, nil
		}
		if strings.HasPrefix(remaining, "-0-0") {
			l.pos += 4
			return &Token{Type: MoveToken, Text: "O-O-O", Column: start + 1}, nil
		}
		if strings.HasPrefix(remaining, "-0") {
			l.pos += 2
			return &Token{Type: MoveToken, Text: "O-O", Column: start + 1}, nil
		}
	case '1':
		if strings.HasPrefix(remaining, "-0") {
			l.pos += 2
			return &Token{Type: TerminatingResult, Text: "1-0", Column: start + 1}, nil
		}
		if strings.HasPrefix(remaining, "/2") {
			l.pos += 2
			if strings.HasPrefix(l.line[l.pos:], "-1/2") {
				l.pos += 4
			}
			return &Token{Type: TerminatingResult, Text: "1/2-1/2", Column: start + 1}, nil
		}
	}

	for l.pos < len(l.line) && unicode.IsDigit(rune(l.currentChar())) {
		l.advance()
	}
	num, _ := strconv.Atoi(l.line[start:l.pos])
	return &Token{Type: MoveNumber, MoveNum: num, Column: start + 1}, nil
}

// annotationToNAG converts suffix annotation symbols to NAG strings.
func annotationToNAG(text string) string {
	switch text {
	case "!":
		return "$1"
	case "?":
		return "$2"
	case "!!":
		return "$3"
	case "??":
		return "$4"
	case "!?":
		return "$5"
	case "?!":
		return "$6"
	default:
		return "$0"
	}
}

// moveSeemsValid does a cheap shape check on move text before the engine
// sees it: castling spellings pass, anything else needs a file and a rank.
func moveSeemsValid(text string) bool {
	if len(text) < 2 {
		return false
	}
	switch text {
	case "O-O", "O-O-O", "o-o", "o-o-o", "0-0", "0-0-0", "--":
		return true
	}
	hasFile, hasRank := false, false
	for _, c := range text {
		if c >= 'a' && c <= 'h' {
			hasFile = true
		}
		if c >= '1' && c <= '8' {
			hasRank = true
		}
	}
	return hasFile && hasRank
}

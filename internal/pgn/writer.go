package pgn

import (
	"strings"
)

// FormatTags renders a tag section in the given order, one pair per line.
// Quotes and backslashes inside values are escaped.
func FormatTags(names []string, tags map[string]string, newline string) string {
	var sb strings.Builder
	for _, name := range names {
		value, ok := tags[name]
		if !ok {
			continue
		}
		sb.WriteByte('[')
		sb.WriteString(name)
		sb.WriteString(` "`)
		sb.WriteString(escapeTagValue(value))
		sb.WriteString(`"]`)
		sb.WriteString(newline)
	}
	return sb.String()
}

// escapeTagValue escapes backslashes and double quotes in a tag value.
func escapeTagValue(value string) string {
	value = strings.ReplaceAll(value, `\`, `\\`)
	return strings.ReplaceAll(value, `"`, `\"`)
}

// WrapTokens joins movetext tokens with single spaces, breaking lines
// before any token that would push a line past maxWidth. Tokens are never
// split; maxWidth <= 0 disables wrapping. Multi-line tokens (comments with
// embedded newlines) reset the width accounting at their last line.
func WrapTokens(tokens []string, maxWidth int, newline string) string {
	var sb strings.Builder
	lineLen := 0
	for _, token := range tokens {
		if token == "" {
			continue
		}
		if lineLen > 0 {
			if maxWidth > 0 && lineLen+1+len(token) > maxWidth {
				sb.WriteString(newline)
				lineLen = 0
			} else {
				sb.WriteByte(' ')
				lineLen++
			}
		}
		sb.WriteString(token)
		if i := strings.LastIndexByte(token, '\n'); i >= 0 {
			lineLen = len(token) - i - 1
		} else {
			lineLen += len(token)
		}
	}
	return sb.String()
}

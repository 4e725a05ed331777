package llm

import (
	"strings"
	"unicode"
)

// CleanText normalizes raw message content before it is sent: control
// characters are stripped (newlines and tabs survive), carriage returns
// collapse into plain newlines, and surrounding whitespace is trimmed.
// The semantic content is preserved; this is a pure transform.
func CleanText(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r == '\r':
			return '\n'
		case r == '\n', r == '\t':
			return r
		case unicode.IsControl(r):
			return -1
		case r == unicode.ReplacementChar:
			// carries no content
			return -1
		default:
			return r
		}
	}, s)
	return strings.TrimSpace(cleaned)
}

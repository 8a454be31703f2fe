package clean

import "strings"

// Sanitize strips field delimiters that appear inside quoted spans so the
// downstream parser never mis-splits a row. It tracks at most one open quote
// kind (single or double); the other quote character passes through
// unchanged while a span is open. The result is never longer than the input
// and Sanitize is idempotent.
func Sanitize(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	var quote rune // 0 when outside a quoted span
	for _, ch := range text {
		switch {
		case ch == '"' || ch == '\'':
			if quote == 0 {
				quote = ch
			} else if quote == ch {
				quote = 0
			}
		case ch == ',' && quote != 0:
			continue
		}
		b.WriteRune(ch)
	}
	return b.String()
}

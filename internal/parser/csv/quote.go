package csv

import "unicode/utf8"

type quoteState int

const (
	fieldStart quoteState = iota
	unquoted
	quoted
	quoteSeen // a quote inside a quoted field, not yet known to close it
)

// unterminatedQuote scans data with the same quoting rules the lazy reader
// applies and reports whether input ends inside a quoted field, together with
// the line that field started on.
func unterminatedQuote(data []byte, comma rune) (int, bool) {
	state := fieldStart
	line, start := 1, 0
	for i := 0; i < len(data); {
		r, size := utf8.DecodeRune(data[i:])
		i += size
		switch state {
		case fieldStart, unquoted:
			switch {
			case r == '"' && state == fieldStart:
				state, start = quoted, line
			case r == comma || r == '\n':
				state = fieldStart
			default:
				state = unquoted
			}
		case quoted:
			if r == '"' {
				state = quoteSeen
			}
		case quoteSeen:
			switch {
			case r == '"':
				state = quoted
			case r == comma || r == '\n':
				state = fieldStart
			case r == '\r' && i < len(data) && data[i] == '\n':
			default:
				state = quoted
			}
		}
		if r == '\n' {
			line++
		}
	}
	return start, state == quoted
}

package codeinput

import (
	"strings"
	"unicode/utf8"
)

// counts lines the way str.splitlines does: every line boundary ends a
// line, "\r\n" is one boundary, and a trailing boundary adds no empty line
func CountLines(s string) int {
	lines := 0
	open := false

	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])

		if isLineBoundary(r) {
			lines++
			open = false

			if r == '\r' && i+1 < len(s) && s[i+1] == '\n' {
				size++
			}
		} else {
			open = true
		}

		i += size
	}

	if open {
		lines++
	}

	return lines
}

func isLineBoundary(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', 0x1c, 0x1d, 0x1e, 0x85, 0x2028, 0x2029:
		return true
	}

	return false
}

// counts whitespace-separated words
func CountWords(s string) int {
	return len(strings.Fields(s))
}

package css

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// Unescape decodes escapes of an identifier the way browsers do, so "a\:b"
// becomes "a:b" and "\31 0" becomes "10". Null, surrogate and out of range
// code points decode to U+FFFD.
func Unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 == len(s) {
			b.WriteByte(s[i])
			continue
		}
		i++

		j := i
		for j < len(s) && j-i < 6 && isHexByte(s[j]) {
			j++
		}
		if j == i {
			r, size := utf8.DecodeRuneInString(s[i:])
			b.WriteRune(r)
			i += size - 1
			continue
		}

		cp, _ := strconv.ParseUint(s[i:j], 16, 32)
		if r := rune(cp); r != 0 && utf8.ValidRune(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune(utf8.RuneError)
		}

		// single whitespace terminates hex escape and belongs to it
		i = j - 1
		if j < len(s) {
			switch s[j] {
			case ' ', '\t', '\n', '\f':
				i = j
			case '\r':
				i = j
				if j+1 < len(s) && s[j+1] == '\n' {
					i++
				}
			}
		}
	}
	return b.String()
}

func isHexByte(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

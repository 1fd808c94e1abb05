// Package scoper turns parsed stylesheet scopes into hashed scopes: it
// computes scope hash, rewrites selectors in the source text and produces
// table of identifiers usable from host code.
package scoper

import (
	"strings"

	"stylescope/css"
)

// digitMarker is prepended to identifiers which would otherwise start with a digit.
const digitMarker = 'n'

// Sanitize converts arbitrary selector text into identifier safe for host
// languages. Characters other than ASCII letters, digits, dash and underscore
// are dropped, leading and trailing dashes are trimmed, leading digit gets
// marker and every remaining run of dashes is folded into upper-casing of the
// following character. Sanitize never fails, it returns empty string when
// nothing survives.
func Sanitize(raw string) string {
	var kept strings.Builder
	kept.Grow(len(raw))
	for i := 0; i < len(raw); i++ {
		if c := raw[i]; isIdentByte(c) || c == '-' {
			kept.WriteByte(c)
		}
	}

	s := strings.Trim(kept.String(), "-")
	if s == "" {
		return ""
	}

	var out strings.Builder
	out.Grow(len(s) + 1)
	if s[0] >= '0' && s[0] <= '9' {
		out.WriteByte(digitMarker)
	}
	upper := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '-' {
			upper = true
			continue
		}
		if upper && c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		upper = false
		out.WriteByte(c)
	}
	return out.String()
}

func isIdentByte(c byte) bool {
	return c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
}

// Ident returns host identifier for the selector. Global selectors, bare
// parent references and names with nothing left after sanitizing have none.
func Ident(sel css.Selector) (string, bool) {
	base := Sanitize(css.Unescape(sel.Name))
	if base == "" {
		return "", false
	}
	switch sel.Kind {
	case css.KindClass:
		return base, true
	case css.KindID:
		return "the" + base, true
	case css.KindTag:
		return "any" + base, true
	case css.KindNesting:
		return "and" + strings.ToUpper(base[:1]) + base[1:], true
	}
	return "", false
}

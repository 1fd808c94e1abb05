package scoper

import (
	"errors"
	"fmt"
	"strings"

	"stylescope/css"
)

// ErrIdentConflict is returned when two different selectors of a scope map to
// the same host identifier.
var ErrIdentConflict = errors.New("identifier conflict")

// Member is a single named constant of identifier table.
type Member struct {
	Ident string `yaml:"ident"`
	Kind  string `yaml:"kind"`
	HTML  string `yaml:"html"`
	CSS   string `yaml:"css"`
}

// Suffix describes parent reference with literal suffix ("&-dark"). Host code
// builds class name for such rule by appending suffix to the parent class.
type Suffix struct {
	Ident  string `yaml:"ident"`
	Suffix string `yaml:"suffix"`
}

func (s Suffix) Apply(class string) string {
	return class + s.Suffix
}

// IdentTable is what code generators need to know about hashed scope.
type IdentTable struct {
	Scope string `yaml:"scope"`
	// Wrapper is the class which has to be put on element containing scoped
	// tag selectors, it is equal to scope hash.
	Wrapper  string   `yaml:"wrapper"`
	Members  []Member `yaml:"members,omitempty"`
	Suffixes []Suffix `yaml:"suffixes,omitempty"`
}

// Table builds identifier table of the hashed scope. Only selectors which
// could be referenced from markup get a member, repeated selectors are
// reported once.
func (h *HashedScope) Table() (*IdentTable, error) {
	t := &IdentTable{Scope: h.Original.Name, Wrapper: string(h.Hash)}

	seen := make(map[string]string)
	for _, hs := range h.Selectors {
		if !hs.HasHTML() {
			continue
		}
		ident, ok := Ident(hs.Selector)
		if !ok {
			continue
		}
		if html, found := seen[ident]; found {
			if html != hs.HTML {
				return nil, fmt.Errorf("scope %q: %q used for %q and %q: %w", h.Original.Name, ident, html, hs.HTML, ErrIdentConflict)
			}
			continue
		}
		seen[ident] = hs.HTML
		t.Members = append(t.Members, Member{Ident: ident, Kind: hs.Selector.Kind.String(), HTML: hs.HTML, CSS: hs.CSS})
	}

	suffixes := make(map[string]string)
	for _, sel := range h.Nesting {
		ident, ok := Ident(sel)
		if !ok {
			continue
		}
		suffix := css.Unescape(sel.Name)
		if prev, found := suffixes[ident]; found {
			if prev != suffix {
				return nil, fmt.Errorf("scope %q: %q used for suffixes %q and %q: %w", h.Original.Name, ident, prev, suffix, ErrIdentConflict)
			}
			continue
		}
		suffixes[ident] = suffix
		t.Suffixes = append(t.Suffixes, Suffix{Ident: ident, Suffix: suffix})
	}
	return t, nil
}

// Unnamed returns selectors usable from markup which get no identifier,
// each name once.
func (h *HashedScope) Unnamed() []css.Selector {
	var (
		out  []css.Selector
		seen = make(map[string]bool)
	)
	for _, hs := range h.Selectors {
		if !hs.HasHTML() || seen[hs.HTML] {
			continue
		}
		if _, ok := Ident(hs.Selector); !ok {
			seen[hs.HTML] = true
			out = append(out, hs.Selector)
		}
	}
	return out
}

// Lookup finds member by identifier.
func (t *IdentTable) Lookup(ident string) (Member, bool) {
	for _, m := range t.Members {
		if m.Ident == ident {
			return m, true
		}
	}
	return Member{}, false
}

// String renders table in human readable form.
func (t *IdentTable) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "scope %s, wrapper %q\n", t.Scope, t.Wrapper)
	for _, m := range t.Members {
		fmt.Fprintf(&b, "  %-6s %-20s html %q css %q\n", m.Kind, m.Ident, m.HTML, m.CSS)
	}
	for _, s := range t.Suffixes {
		fmt.Fprintf(&b, "  %-6s %-20s %q\n", css.KindNesting, s.Ident, s.Suffix)
	}
	return b.String()
}

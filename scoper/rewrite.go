package scoper

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"stylescope/common"
	"stylescope/css"
)

// ErrOverlappingSpans is returned when two selectors claim the same source bytes.
var ErrOverlappingSpans = errors.New("overlapping selector spans")

// HashedSelector is selector together with its replacement text.
type HashedSelector struct {
	Selector css.Selector
	// CSS is inserted into rewritten source in place of selector span.
	CSS string
	// HTML is what markup has to carry in class or id attribute to match CSS.
	// Empty for selectors which could not be referenced from markup.
	HTML string
}

func (hs HashedSelector) HasHTML() bool {
	return hs.HTML != ""
}

// HashedScope is result of rewriting. Original scope is kept intact.
type HashedScope struct {
	Original  *Scope
	Hash      Hash
	Mode      common.ScopingMode
	Code      string
	Selectors []HashedSelector
	// Nesting keeps parent references with literal suffixes, they are not
	// rewritten but end up in identifier table.
	Nesting []css.Selector
}

// Rewrite splices hashed forms of class, id, tag and global selectors into
// scope source. Replacements are applied in source order, bytes between
// selectors are copied verbatim.
func Rewrite(scope *Scope, hash Hash, mode common.ScopingMode) (*HashedScope, error) {
	if !mode.IsValid() {
		return nil, fmt.Errorf("unable to rewrite scope %q: %w", scope.Name, common.ErrInvalidScopingMode)
	}

	sheet := scope.Stylesheet()

	var sels []HashedSelector
	for _, kind := range []css.SelectorKind{css.KindClass, css.KindID, css.KindTag, css.KindGlobal} {
		for _, sel := range sheet.Selectors(kind) {
			sels = append(sels, hashSelector(sel, hash, mode))
		}
	}
	code, err := splice(scope.Source, sels)
	if err != nil {
		return nil, fmt.Errorf("unable to rewrite scope %q: %w", scope.Name, err)
	}

	return &HashedScope{
		Original:  scope,
		Hash:      hash,
		Mode:      mode,
		Code:      code,
		Selectors: sels,
		Nesting:   sheet.NestingSelectors(),
	}, nil
}

// splice orders selectors by position and replaces their spans in source
// with hashed forms. Nothing is produced when spans overlap.
func splice(source string, sels []HashedSelector) (string, error) {
	slices.SortStableFunc(sels, func(a, b HashedSelector) int {
		return a.Selector.Span.Start - b.Selector.Span.Start
	})

	var (
		b    strings.Builder
		last int
	)
	b.Grow(len(source) + len(sels)*16)
	for i, hs := range sels {
		sp := hs.Selector.Span
		if sp.Start < last {
			prev := sels[i-1].Selector
			return "", fmt.Errorf("%s %q [%d:%d] and %s %q [%d:%d]: %w",
				prev.Kind, prev.Name, prev.Span.Start, prev.Span.End,
				hs.Selector.Kind, hs.Selector.Name, sp.Start, sp.End, ErrOverlappingSpans)
		}
		b.WriteString(source[last:sp.Start])
		b.WriteString(hs.CSS)
		last = sp.End
	}
	b.WriteString(source[last:])
	return b.String(), nil
}

// hashSelector produces replacement text for a selector span. Class and id
// spans do not include "." and "#", tag span is the bare name and global span
// covers whole ":global(...)".
func hashSelector(sel css.Selector, hash Hash, mode common.ScopingMode) HashedSelector {
	// markup carries names with escapes decoded
	h, n, u := string(hash), sel.Name, css.Unescape(sel.Name)
	hs := HashedSelector{Selector: sel}

	switch mode {
	case common.ScopingModeComposition:
		switch sel.Kind {
		case css.KindClass:
			// element carries hash as additional class
			hs.CSS, hs.HTML = h+"."+n, h+" "+u
		case css.KindID:
			// element has single id, so the name itself is modified
			hs.CSS, hs.HTML = h+"-"+n, h+"-"+u
		case css.KindTag:
			// tag has to live under element with wrapper class
			hs.CSS = "." + h + " " + n
		}
	case common.ScopingModeAttachment:
		switch sel.Kind {
		case css.KindClass:
			hs.CSS, hs.HTML = n+"."+h, u+" "+h
		case css.KindID:
			hs.CSS, hs.HTML = n+"."+h, u
		case css.KindTag:
			hs.CSS = n + "." + h
		}
	}
	if sel.Kind == css.KindGlobal {
		hs.CSS = n
	}
	return hs
}

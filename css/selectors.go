package css

import (
	"strings"

	"github.com/tdewolff/parse/v2/css"
)

// parseSelectorList splits prelude tokens into compound selectors and picks
// simple selectors we are interested in. Arguments of pseudo-classes are
// opaque with the exception of :global().
func (s *Stylesheet) parseSelectorList(toks []token) ([]Compound, error) {
	var (
		out      []Compound
		cur      Compound
		open     bool
		boundary = true
	)

	flush := func() {
		if open {
			out = append(out, cur)
		}
		cur, open = Compound{}, false
	}
	touch := func(t token) {
		if !open {
			cur.Span.Start, open = t.pos, true
		}
		cur.Span.End = t.end()
	}
	// skipGroup consumes group opened at toks[i] and returns index of its closing token
	skipGroup := func(i int) (int, error) {
		end := matchClosing(toks, i)
		if end < 0 {
			return 0, s.errorAt(Span{toks[i].pos, toks[len(toks)-1].end()}, "unterminated group in selector", nil)
		}
		touch(toks[end])
		return end, nil
	}

	for i := 0; i < len(toks); i++ {
		t := toks[i]

		switch t.tt {
		case css.WhitespaceToken, css.CommentToken, css.CommaToken:
			flush()
			boundary = true
			continue
		case css.IncludeMatchToken, css.ColumnToken:
			// "~=" and "||" are not valid outside of attribute selectors
			// but we do not want to treat them as names either
			touch(t)
		case css.DelimToken:
			switch t.data {
			case ">", "+", "~":
				flush()
				boundary = true
				continue
			case ".":
				touch(t)
				if i+1 < len(toks) && toks[i+1].ident() {
					i++
					cur.Simple = append(cur.Simple, Selector{Kind: KindClass, Name: toks[i].data, Span: toks[i].span()})
					touch(toks[i])
				}
			case "&":
				touch(t)
				sel := Selector{Kind: KindNesting, Span: t.span()}
				for i+1 < len(toks) && isSuffix(toks[i+1]) {
					i++
					sel.Name += toks[i].data
					sel.Span.End = toks[i].end()
					touch(toks[i])
				}
				cur.Simple = append(cur.Simple, sel)
			case "#":
				touch(t)
				if interpolation(toks, i) {
					end, err := skipGroup(i + 1)
					if err != nil {
						return nil, err
					}
					i = end
				}
			case "%":
				// placeholder selector
				touch(t)
				if i+1 < len(toks) && toks[i+1].ident() {
					i++
					touch(toks[i])
				}
			default:
				touch(t)
			}
		case css.HashToken:
			touch(t)
			cur.Simple = append(cur.Simple, Selector{Kind: KindID, Name: t.data[1:], Span: Span{t.pos + 1, t.end()}})
		case css.IdentToken, css.CustomPropertyNameToken:
			touch(t)
			if boundary {
				cur.Simple = append(cur.Simple, Selector{Kind: KindTag, Name: t.data, Span: t.span()})
			}
		case css.ColonToken:
			touch(t)
			j := i + 1
			element := false
			if j < len(toks) && toks[j].tt == css.ColonToken {
				element = true
				touch(toks[j])
				j++
			}
			if j >= len(toks) {
				i = j - 1
				break
			}
			switch nt := toks[j]; {
			case nt.tt == css.FunctionToken:
				end, err := skipGroup(j)
				if err != nil {
					return nil, err
				}
				name := strings.ToLower(strings.TrimSuffix(nt.data, "("))
				if !element && name == "global" {
					sel, err := s.globalSelector(toks[j+1:end], Span{t.pos, toks[end].end()})
					if err != nil {
						return nil, err
					}
					cur.Simple = append(cur.Simple, sel)
				}
				i = end
			case nt.ident():
				touch(nt)
				i = j
			case interpolation(toks, j):
				end, err := skipGroup(j + 1)
				if err != nil {
					return nil, err
				}
				i = end
			default:
				i = j - 1
			}
		case css.LeftBracketToken, css.LeftParenthesisToken, css.FunctionToken, css.LeftBraceToken:
			end, err := skipGroup(i)
			if err != nil {
				return nil, err
			}
			touch(t)
			i = end
		default:
			touch(t)
		}
		boundary = false
	}
	flush()
	return out, nil
}

// globalSelector builds escape selector out of :global() arguments. Only the
// first (and the only) wrapped selector participates.
func (s *Stylesheet) globalSelector(inner []token, whole Span) (Selector, error) {
	first, last := -1, -1
	depth := 0
	for k, t := range inner {
		switch t.tt {
		case css.LeftParenthesisToken, css.FunctionToken, css.LeftBracketToken, css.LeftBraceToken:
			depth++
		case css.RightParenthesisToken, css.RightBracketToken, css.RightBraceToken:
			depth--
		case css.CommaToken:
			if depth == 0 {
				return Selector{}, s.errorAt(whole, "unable to scope selector", ErrUnsupportedGlobal)
			}
		}
		if !t.trivia() {
			if first < 0 {
				first = k
			}
			last = k
		}
	}
	if first < 0 {
		return Selector{}, s.errorAt(whole, "empty :global() selector", nil)
	}

	var sb strings.Builder
	for _, t := range inner[first : last+1] {
		sb.WriteString(t.data)
	}
	return Selector{Kind: KindGlobal, Name: sb.String(), Span: whole}, nil
}

// isSuffix reports whether token may continue parent selector reference: "&-dark", "&__item", "&1".
func isSuffix(t token) bool {
	switch t.tt {
	case css.IdentToken, css.NumberToken, css.DimensionToken:
		return true
	}
	return false
}

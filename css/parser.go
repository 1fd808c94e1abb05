package css

import (
	"strings"

	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"

	"stylescope/common"
)

// At-rules whose blocks may contain style rules. Everything else (keyframes,
// font-face, page, function, unknown) is skipped as a whole.
var transparentAtRules = map[string]bool{
	"media":          true,
	"supports":       true,
	"container":      true,
	"layer":          true,
	"document":       true,
	"scope":          true,
	"starting-style": true,
	"at-root":        true,
	"include":        true,
	"mixin":          true,
	"if":             true,
	"else":           true,
	"each":           true,
	"for":            true,
	"while":          true,
}

// Parser extracts rules and selectors from SCSS and indented Sass sources.
// It does not evaluate anything: variables, mixins and control directives
// are preserved as they are, only selector positions are recorded.
type Parser struct {
	log *zap.Logger
}

// NewParser creates a new stylesheet parser.
func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log.Named("css-parser")}
}

// Parse parses source text into a Stylesheet. The optional name parameter
// identifies what's being parsed (for debug logging).
func (p *Parser) Parse(source string, syntax common.Syntax, name ...string) (*Stylesheet, error) {
	if len(name) > 0 && name[0] != "" {
		p.log.Debug("Parsing stylesheet", zap.String("source", name[0]), zap.Stringer("syntax", syntax), zap.Int("bytes", len(source)))
	}

	sheet := newStylesheet(source, syntax)
	// line comments are not CSS, lexer has to see them as whitespace
	text := blankLineComments(blankByteOrderMark(source))

	var err error
	switch syntax {
	case common.SyntaxScss:
		err = p.parseScss(sheet, text)
	case common.SyntaxSass:
		err = p.parseSass(sheet, text)
	default:
		err = sheet.errorAt(Span{}, "unsupported syntax "+syntax.String(), nil)
	}
	if err != nil {
		p.log.Debug("Stylesheet parse error", zap.Error(err))
		return nil, err
	}

	p.log.Debug("Parsed stylesheet",
		zap.Int("nodes", sheet.Len()),
		zap.Int("classes", len(sheet.ClassSelectors())),
		zap.Int("ids", len(sheet.IDSelectors())),
		zap.Int("tags", len(sheet.TypeSelectors())))
	return sheet, nil
}

// scss is a block structured parser working on the token stream of the whole
// source.
type scss struct {
	log   *zap.Logger
	sheet *Stylesheet
	toks  []token
	i     int
}

func (p *Parser) parseScss(sheet *Stylesheet, text string) error {
	toks, err := sheet.tokenize(text, 0)
	if err != nil {
		return err
	}
	ps := &scss{log: p.log, sheet: sheet, toks: toks}
	return ps.block(sheet.Root(), -1)
}

// block parses statements until closing brace. open is index of the opening
// brace token or -1 for the top level.
func (ps *scss) block(parent NodeID, open int) error {
	for {
		for ps.i < len(ps.toks) {
			switch t := ps.toks[ps.i]; {
			case t.trivia(), t.tt == css.SemicolonToken, t.tt == css.CDOToken, t.tt == css.CDCToken:
				ps.i++
				continue
			}
			break
		}

		if ps.i >= len(ps.toks) {
			if open >= 0 {
				return ps.sheet.errorAt(ps.toks[open].span(), "unclosed block", nil)
			}
			return nil
		}

		if t := ps.toks[ps.i]; t.tt == css.RightBraceToken {
			if open < 0 {
				return ps.sheet.errorAt(t.span(), "unexpected closing brace", nil)
			}
			ps.i++
			return nil
		}

		start := ps.i
		end, err := ps.statement()
		if err != nil {
			return err
		}
		if end < len(ps.toks) && ps.toks[end].tt == css.LeftBraceToken {
			if err := ps.open(parent, ps.toks[start:end], end); err != nil {
				return err
			}
			continue
		}
		// declaration or block-less at-rule, terminator is handled on the next round
		ps.i = end
	}
}

// statement scans from the current position to the first "{", ";" or "}"
// outside of parentheses, brackets and interpolation. It returns index of
// the terminating token (len(toks) at EOF).
func (ps *scss) statement() (int, error) {
	depth := 0
	for i := ps.i; i < len(ps.toks); i++ {
		t := ps.toks[i]
		switch t.tt {
		case css.LeftParenthesisToken, css.FunctionToken, css.LeftBracketToken:
			depth++
		case css.RightParenthesisToken, css.RightBracketToken:
			if depth > 0 {
				depth--
			}
		case css.DelimToken:
			if interpolation(ps.toks, i) {
				end := matchClosing(ps.toks, i+1)
				if end < 0 {
					return 0, ps.sheet.errorAt(Span{t.pos, ps.toks[len(ps.toks)-1].end()}, "unterminated interpolation", nil)
				}
				i = end
			}
		case css.LeftBraceToken, css.SemicolonToken, css.RightBraceToken:
			if depth == 0 {
				return i, nil
			}
		}
	}
	return len(ps.toks), nil
}

// open handles statement followed by block: rule, at-rule or nested property.
func (ps *scss) open(parent NodeID, prelude []token, brace int) error {
	prelude = trimTrivia(prelude)
	if len(prelude) == 0 {
		return ps.sheet.errorAt(ps.toks[brace].span(), "block without selector", nil)
	}
	sp := Span{prelude[0].pos, prelude[len(prelude)-1].end()}

	switch first := prelude[0]; {
	case first.tt == css.AtKeywordToken:
		name := strings.ToLower(first.data[1:])
		if !transparentAtRules[name] {
			ps.log.Debug("Skipping at-rule block", zap.String("rule", name))
			return ps.skip(brace)
		}
		n := Node{Kind: NodeAtRule, Name: name, Parent: parent, Prelude: sp}
		if name == "at-root" {
			compounds, err := ps.sheet.parseSelectorList(trimTrivia(prelude[1:]))
			if err != nil {
				return err
			}
			n.Compounds = compounds
		}
		id := ps.sheet.add(n)
		ps.i = brace + 1
		return ps.block(id, brace)

	case nestedProperty(prelude):
		return ps.skip(brace)
	}

	compounds, err := ps.sheet.parseSelectorList(prelude)
	if err != nil {
		return err
	}
	id := ps.sheet.add(Node{Kind: NodeRule, Parent: parent, Prelude: sp, Compounds: compounds})
	ps.i = brace + 1
	return ps.block(id, brace)
}

func (ps *scss) skip(brace int) error {
	end := matchClosing(ps.toks, brace)
	if end < 0 {
		return ps.sheet.errorAt(ps.toks[brace].span(), "unclosed block", nil)
	}
	ps.i = end + 1
	return nil
}

// line is a non blank line of indented syntax.
type line struct {
	start, end int // content without leading indentation and trailing whitespace
	indent     int
}

type frame struct {
	indent int
	id     NodeID
	opaque bool
}

func (p *Parser) parseSass(sheet *Stylesheet, text string) error {
	src := sheet.Source()
	lines := splitLines(src)
	// content of each line with line comments removed
	content := func(ln line) string {
		return strings.TrimRight(text[ln.start:ln.end], " \t")
	}

	stack := []frame{{indent: -1, id: sheet.Root()}}
	for k := 0; k < len(lines); k++ {
		ln := lines[k]
		for len(stack) > 1 && stack[len(stack)-1].indent >= ln.indent {
			stack = stack[:len(stack)-1]
		}
		top := stack[len(stack)-1]
		if top.opaque {
			continue
		}

		switch rest := src[ln.start:]; {
		case strings.HasPrefix(rest, "//"), strings.HasPrefix(rest, "/*"):
			stack = append(stack, frame{indent: ln.indent, opaque: true})
			continue
		}
		children := hasChildren(lines, k)
		body := content(ln)
		switch body[0] {
		case '@', '=', '+':
			if !children {
				continue
			}
			toks, err := sheet.tokenize(body, ln.start)
			if err != nil {
				return err
			}
			name := directiveName(body)
			if !transparentAtRules[name] {
				p.log.Debug("Skipping at-rule block", zap.String("rule", name))
				stack = append(stack, frame{indent: ln.indent, opaque: true})
				continue
			}
			n := Node{Kind: NodeAtRule, Name: name, Parent: top.id, Prelude: Span{ln.start, ln.start + len(body)}}
			if name == "at-root" {
				compounds, err := sheet.parseSelectorList(trimTrivia(toks[1:]))
				if err != nil {
					return err
				}
				n.Compounds = compounds
			}
			stack = append(stack, frame{indent: ln.indent, id: sheet.add(n)})
			continue
		case '$':
			if children {
				stack = append(stack, frame{indent: ln.indent, opaque: true})
			}
			continue
		}

		// selector may continue on the following lines after trailing comma
		first := k
		for strings.HasSuffix(content(lines[k]), ",") && k+1 < len(lines) {
			k++
		}
		if !hasChildren(lines, k) {
			// declaration
			continue
		}

		var toks []token
		for j := first; j <= k; j++ {
			lt, err := sheet.tokenize(content(lines[j]), lines[j].start)
			if err != nil {
				return err
			}
			if j > first {
				toks = append(toks, token{tt: css.WhitespaceToken, data: " ", pos: lines[j].start})
			}
			toks = append(toks, lt...)
		}
		if nestedProperty(toks) {
			stack = append(stack, frame{indent: ln.indent, opaque: true})
			continue
		}

		compounds, err := sheet.parseSelectorList(trimTrivia(toks))
		if err != nil {
			return err
		}
		id := sheet.add(Node{Kind: NodeRule, Parent: top.id, Prelude: Span{ln.start, lines[k].start + len(content(lines[k]))}, Compounds: compounds})
		stack = append(stack, frame{indent: ln.indent, id: id})
	}
	return nil
}

func splitLines(text string) []line {
	var out []line
	for pos := 0; pos < len(text); {
		next := strings.IndexByte(text[pos:], '\n')
		end := len(text)
		if next >= 0 {
			end = pos + next
		}

		lead := pos
		if pos == 0 && strings.HasPrefix(text, byteOrderMark) {
			lead = len(byteOrderMark)
		}
		start := lead
		for start < end && (text[start] == ' ' || text[start] == '\t') {
			start++
		}
		stop := end
		for stop > start && (text[stop-1] == ' ' || text[stop-1] == '\t' || text[stop-1] == '\r') {
			stop--
		}
		if stop > start {
			out = append(out, line{start: start, end: stop, indent: start - lead})
		}
		pos = end + 1
	}
	return out
}

// hasChildren reports whether line k is followed by more indented line.
func hasChildren(lines []line, k int) bool {
	return k+1 < len(lines) && lines[k+1].indent > lines[k].indent
}

// directiveName returns lowercased at-rule name of indented syntax directive.
// Mixin shorthands "=" and "+" are recognized.
func directiveName(content string) string {
	switch content[0] {
	case '=':
		return "mixin"
	case '+':
		return "include"
	}
	end := 1
	for end < len(content) && isNameByte(content[end]) {
		end++
	}
	return strings.ToLower(content[1:end])
}

// nestedProperty recognizes "font: {" and "font: 12px {" forms. Pseudo-class
// selectors never have whitespace right after the colon.
func nestedProperty(toks []token) bool {
	toks = trimTrivia(toks)
	if len(toks) < 2 || !toks[0].ident() || toks[1].tt != css.ColonToken {
		return false
	}
	return len(toks) == 2 || toks[2].tt == css.WhitespaceToken
}

func trimTrivia(toks []token) []token {
	for len(toks) > 0 && toks[0].trivia() {
		toks = toks[1:]
	}
	for len(toks) > 0 && toks[len(toks)-1].trivia() {
		toks = toks[:len(toks)-1]
	}
	return toks
}

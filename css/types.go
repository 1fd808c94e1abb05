package css

import (
	"errors"
	"fmt"

	"stylescope/common"
	"stylescope/utils/debug"
)

// ErrUnsupportedGlobal is reported for :global() wrapping more than one
// selector, only a single escaped selector is supported.
var ErrUnsupportedGlobal = errors.New("multiple selectors inside :global() are not supported")

// Span is a half-open byte range into stylesheet source.
type Span struct {
	Start int
	End   int
}

func (s Span) Len() int {
	return s.End - s.Start
}

// Overlaps reports whether two spans share at least one byte.
func (s Span) Overlaps(o Span) bool {
	return s.Start < o.End && o.Start < s.End
}

// SelectorKind distinguishes simple selectors we care about.
type SelectorKind int

const (
	KindClass SelectorKind = iota
	KindID
	KindTag
	// KindGlobal is :global(<selector>) - escape from scoping.
	KindGlobal
	// KindNesting is parent reference with optional literal suffix (&-dark).
	KindNesting
)

func (k SelectorKind) String() string {
	switch k {
	case KindClass:
		return "class"
	case KindID:
		return "id"
	case KindTag:
		return "tag"
	case KindGlobal:
		return "global"
	case KindNesting:
		return "nesting"
	}
	return fmt.Sprintf("SelectorKind(%d)", int(k))
}

// Selector is a single simple selector occurrence.
//
// For class, id and tag selectors Name is the literal name and Span covers
// the name only (without "." or "#"). For global selectors Name is the text of
// the wrapped selector and Span covers whole pseudo-class including
// ":global(" and ")". For nesting selectors Name is the suffix following "&"
// (may be empty) and Span covers "&" and the suffix.
type Selector struct {
	Kind SelectorKind
	Name string
	Span Span
}

// Compound is a sequence of simple selectors not separated by combinators.
type Compound struct {
	Span   Span
	Simple []Selector
}

type NodeID int

// NoNode is parent of the root node.
const NoNode NodeID = -1

type NodeKind int

const (
	NodeRoot NodeKind = iota
	NodeRule
	NodeAtRule
)

// Node is an arena element of parsed stylesheet. Nodes never reference source
// directly, only through spans.
type Node struct {
	Kind      NodeKind
	Name      string // at-rule name without "@"
	Parent    NodeID
	Prelude   Span
	Compounds []Compound
	Children  []NodeID
}

// Stylesheet is parsed stylesheet: arena of nodes over immutable source.
type Stylesheet struct {
	Syntax common.Syntax

	source string
	nodes  []Node
}

func newStylesheet(source string, syntax common.Syntax) *Stylesheet {
	return &Stylesheet{
		Syntax: syntax,
		source: source,
		nodes:  []Node{{Kind: NodeRoot, Parent: NoNode, Prelude: Span{0, 0}}},
	}
}

func (s *Stylesheet) add(n Node) NodeID {
	id := NodeID(len(s.nodes))
	s.nodes = append(s.nodes, n)
	if n.Parent != NoNode {
		s.nodes[n.Parent].Children = append(s.nodes[n.Parent].Children, id)
	}
	return id
}

func (s *Stylesheet) Source() string {
	return s.source
}

func (s *Stylesheet) Root() NodeID {
	return 0
}

// Node returns copy of the node with given id.
func (s *Stylesheet) Node(id NodeID) Node {
	return s.nodes[id]
}

// Len returns number of nodes in the arena, including root.
func (s *Stylesheet) Len() int {
	return len(s.nodes)
}

// Text returns source text covered by span.
func (s *Stylesheet) Text(sp Span) string {
	return s.source[sp.Start:sp.End]
}

// Walk visits nodes depth-first, parents before children.
func (s *Stylesheet) Walk(fn func(id NodeID, n Node, depth int)) {
	var visit func(id NodeID, depth int)
	visit = func(id NodeID, depth int) {
		fn(id, s.nodes[id], depth)
		for _, c := range s.nodes[id].Children {
			visit(c, depth+1)
		}
	}
	visit(s.Root(), 0)
}

// Selectors returns all simple selectors of requested kind in document
// order of their rules. Every compound selector contributes only once, at the
// rule where it occurs.
func (s *Stylesheet) Selectors(kind SelectorKind) []Selector {
	var out []Selector
	s.Walk(func(_ NodeID, n Node, _ int) {
		for _, c := range n.Compounds {
			for _, sel := range c.Simple {
				if sel.Kind == kind {
					out = append(out, sel)
				}
			}
		}
	})
	return out
}

func (s *Stylesheet) ClassSelectors() []Selector {
	return s.Selectors(KindClass)
}

func (s *Stylesheet) IDSelectors() []Selector {
	return s.Selectors(KindID)
}

func (s *Stylesheet) TypeSelectors() []Selector {
	return s.Selectors(KindTag)
}

func (s *Stylesheet) GlobalSelectors() []Selector {
	return s.Selectors(KindGlobal)
}

func (s *Stylesheet) NestingSelectors() []Selector {
	return s.Selectors(KindNesting)
}

// Dump produces human readable tree of the stylesheet for debugging.
func (s *Stylesheet) Dump() string {
	tw := debug.NewTreeWriter()
	s.Walk(func(_ NodeID, n Node, depth int) {
		switch n.Kind {
		case NodeRoot:
			tw.Line(depth, "stylesheet %s (%d bytes)", s.Syntax, len(s.source))
		case NodeAtRule:
			tw.Span(depth, "@"+n.Name, n.Prelude.Start, n.Prelude.End, s.Text(n.Prelude))
		case NodeRule:
			tw.Text(depth, "rule", s.Text(n.Prelude))
		}
		for _, c := range n.Compounds {
			for _, sel := range c.Simple {
				tw.Span(depth+1, sel.Kind.String(), sel.Span.Start, sel.Span.End, sel.Name)
			}
		}
	})
	return tw.String()
}

// ParseError reports malformed stylesheet with offending source span.
type ParseError struct {
	Span Span
	Text string
	Msg  string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s at [%d:%d] %q: %v", e.Msg, e.Span.Start, e.Span.End, e.Text, e.Err)
	}
	return fmt.Sprintf("%s at [%d:%d] %q", e.Msg, e.Span.Start, e.Span.End, e.Text)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func (s *Stylesheet) errorAt(sp Span, msg string, err error) *ParseError {
	sp.Start = max(0, min(sp.Start, len(s.source)))
	sp.End = max(sp.Start, min(sp.End, len(s.source)))
	return &ParseError{Span: sp, Text: s.source[sp.Start:sp.End], Msg: msg, Err: err}
}

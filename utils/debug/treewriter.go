// Package debug renders internal structures for debug reports.
package debug

import (
	"fmt"
	"strconv"
	"strings"
)

// MaxText is the number of runes of a text value shown before it is elided.
const MaxText = 64

// TreeWriter renders indented trees, one node per line.
type TreeWriter struct {
	b      strings.Builder
	indent string
	lines  int
}

func NewTreeWriter() *TreeWriter {
	return &TreeWriter{indent: "  "}
}

// WithIndent replaces indentation unit used for every depth level.
func (tw *TreeWriter) WithIndent(unit string) *TreeWriter {
	tw.indent = unit
	return tw
}

func (tw *TreeWriter) String() string {
	return tw.b.String()
}

// Lines returns number of lines written so far.
func (tw *TreeWriter) Lines() int {
	return tw.lines
}

func (tw *TreeWriter) Line(depth int, format string, args ...any) {
	tw.start(depth)
	fmt.Fprintf(&tw.b, format, args...)
	tw.end()
}

// Text writes labeled text value quoted, so that whitespace and control
// characters are visible.
func (tw *TreeWriter) Text(depth int, label, value string) {
	tw.start(depth)
	tw.b.WriteString(label)
	if value != "" {
		tw.b.WriteString(": ")
		tw.b.WriteString(encodeText(value))
	}
	tw.end()
}

// Span writes labeled byte range of some source together with its text.
func (tw *TreeWriter) Span(depth int, label string, start, end int, text string) {
	tw.start(depth)
	fmt.Fprintf(&tw.b, "%s [%d:%d]", label, start, end)
	if text != "" {
		tw.b.WriteByte(' ')
		tw.b.WriteString(encodeText(text))
	}
	tw.end()
}

func (tw *TreeWriter) start(depth int) {
	for range depth {
		tw.b.WriteString(tw.indent)
	}
}

func (tw *TreeWriter) end() {
	tw.b.WriteByte('\n')
	tw.lines++
}

func encodeText(raw string) string {
	if raw == "" {
		return raw
	}
	runes := []rune(raw)
	if len(runes) <= MaxText {
		return strconv.Quote(raw)
	}
	return fmt.Sprintf("%s... (%d bytes)", strconv.Quote(string(runes[:MaxText])), len(raw))
}

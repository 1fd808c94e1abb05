package scoper

import (
	"fmt"

	"stylescope/common"
	"stylescope/config"
	"stylescope/css"
)

// Scope is named unit of stylesheet source. It is never modified after
// construction, rewriting produces new text in HashedScope.
type Scope struct {
	Name   string
	Syntax common.Syntax
	Source string

	sheet *css.Stylesheet
}

// NewScope parses source and returns ready to hash scope. Parse errors are
// returned as *css.ParseError wrapped with scope name.
func NewScope(name string, syntax common.Syntax, source string, p *css.Parser) (*Scope, error) {
	if p == nil {
		p = css.NewParser(nil)
	}
	sheet, err := p.Parse(source, syntax, name)
	if err != nil {
		return nil, fmt.Errorf("unable to parse scope %q: %w", name, err)
	}
	return &Scope{Name: name, Syntax: syntax, Source: source, sheet: sheet}, nil
}

// Stylesheet gives access to parsed source.
func (s *Scope) Stylesheet() *css.Stylesheet {
	return s.sheet
}

// Hashed calculates scope hash and rewrites the scope with it.
func (s *Scope) Hashed(cfg *config.HashConfig, mode common.ScopingMode) (*HashedScope, error) {
	return Rewrite(s, NewHash(s, cfg), mode)
}

package compiler

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"stylescope/common"
)

// Cached remembers compiled output of identical sources.
type Cached struct {
	Compiler
	memo *lru.Cache[string, string]
}

// NewCached wraps compiler with LRU memo of given size. Zero size disables
// memoization and returns compiler as is.
func NewCached(c Compiler, size int) (Compiler, error) {
	if size <= 0 {
		return c, nil
	}
	memo, err := lru.New[string, string](size)
	if err != nil {
		return nil, fmt.Errorf("unable to create compile cache: %w", err)
	}
	return &Cached{Compiler: c, memo: memo}, nil
}

func (c *Cached) Compile(syntax common.Syntax, source string) (string, error) {
	key := syntax.String() + "\x00" + source
	if out, ok := c.memo.Get(key); ok {
		return out, nil
	}
	out, err := c.Compiler.Compile(syntax, source)
	if err != nil {
		return "", err
	}
	c.memo.Add(key, out)
	return out, nil
}

// Len returns number of memoized results.
func (c *Cached) Len() int {
	return c.memo.Len()
}

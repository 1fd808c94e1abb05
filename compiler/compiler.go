// Package compiler wraps external stylesheet tools: SASS/SCSS to CSS
// expansion and CSS minification.
package compiler

import (
	"fmt"

	"go.uber.org/zap"

	"stylescope/common"
	"stylescope/config"
)

// Compiler expands stylesheet source into plain CSS.
type Compiler interface {
	Compile(syntax common.Syntax, source string) (string, error)
	Close() error
}

// CompileError wraps diagnostic of the underlying compiler.
type CompileError struct {
	Syntax common.Syntax
	Err    error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("unable to compile %s: %v", e.Syntax, e.Err)
}

func (e *CompileError) Unwrap() error {
	return e.Err
}

// New creates compiler selected by configuration. Side modules are resolved
// from moduleDir first and then from configured load paths. When minify is
// requested compiler is asked for compressed output.
func New(cfg *config.CompilerConfig, moduleDir string, minify bool, log *zap.Logger) (Compiler, error) {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("compiler")

	var (
		c   Compiler
		err error
	)
	switch cfg.Kind {
	case common.CompilerKindDartsass:
		paths := make([]string, 0, len(cfg.LoadPaths)+1)
		if moduleDir != "" {
			paths = append(paths, moduleDir)
		}
		paths = append(paths, cfg.LoadPaths...)
		c, err = NewDartSass(cfg.DartSassPath, paths, minify, log)
	case common.CompilerKindPassthrough:
		c = Passthrough{}
	default:
		err = fmt.Errorf("unsupported compiler kind: %w", common.ErrInvalidCompilerKind)
	}
	if err != nil {
		return nil, err
	}
	log.Debug("Compiler ready", zap.Stringer("kind", cfg.Kind), zap.Int("cache", cfg.CacheSize))
	return NewCached(c, cfg.CacheSize)
}

// Passthrough returns source unchanged. It is useful for plain CSS sources and tests.
type Passthrough struct{}

func (Passthrough) Compile(_ common.Syntax, source string) (string, error) {
	return source, nil
}

func (Passthrough) Close() error {
	return nil
}

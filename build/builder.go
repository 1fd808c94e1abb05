package build

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"stylescope/common"
	"stylescope/compiler"
	"stylescope/config"
	"stylescope/css"
	"stylescope/scoper"
)

// Builder drives a single build through its phases:
//
//	init -> preludes-loaded -> scopes-discovered -> compiled -> output-written
//
// Any error moves builder into aborted phase and drops everything
// accumulated so far. Builder is not reusable.
type Builder struct {
	cfg      *config.Config
	log      *zap.Logger
	rpt      *config.Report
	parser   *css.Parser
	compiler compiler.Compiler
	minifier *compiler.Minifier

	phase Phase
	state *State
}

// NewBuilder creates builder for the configuration. Compiler is owned by the
// caller, rpt may be nil.
func NewBuilder(cfg *config.Config, comp compiler.Compiler, rpt *config.Report, log *zap.Logger) *Builder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Builder{
		cfg:      cfg,
		log:      log.Named("build"),
		rpt:      rpt,
		parser:   css.NewParser(log),
		compiler: comp,
		minifier: compiler.NewMinifier(cfg.Output.Minify, cfg.Output.KeepCSS2),
		phase:    PhaseInit,
		state:    newState(NewModuleLoader(cfg.Module.IntermediateDir, cfg.Module.CollisionPolicy, log)),
	}
}

func (b *Builder) Phase() Phase {
	return b.phase
}

// Scopes returns compiled scopes in discovery order.
func (b *Builder) Scopes() []CompiledScope {
	if b.state == nil {
		return nil
	}
	return b.state.compiled
}

// Prelude returns accumulated prelude CSS.
func (b *Builder) Prelude() string {
	if b.state == nil {
		return ""
	}
	return b.state.prelude.String()
}

// Run executes all phases in order. Inline modules are loaded after modules
// from configuration.
func (b *Builder) Run(ctx context.Context, inline ...Module) error {
	steps := []func(context.Context) error{
		func(ctx context.Context) error { return b.LoadPreludes(ctx, inline...) },
		b.Discover,
		b.Compile,
		b.WriteOutput,
	}
	for _, step := range steps {
		if err := step(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (b *Builder) enter(expected Phase, what string) error {
	switch b.phase {
	case PhaseAborted:
		return ErrAborted
	case expected:
		b.log.Info(what)
		return nil
	}
	return fmt.Errorf("%s requires phase %s, builder is in %s: %w", strings.ToLower(what), expected, b.phase, ErrPhase)
}

func (b *Builder) leave(next Phase, start time.Time, err error) error {
	if err != nil {
		b.phase, b.state = PhaseAborted, nil
		return err
	}
	b.phase = next
	b.log.Debug("Phase completed", zap.Stringer("phase", next), zap.Duration("elapsed", time.Since(start)))
	return nil
}

// LoadPreludes loads side modules listed in configuration and passed inline,
// compiles stylesheet preludes and appends raw CSS preludes.
func (b *Builder) LoadPreludes(ctx context.Context, inline ...Module) error {
	if err := b.enter(PhaseInit, "Loading side modules and preludes"); err != nil {
		return err
	}
	return b.leave(PhasePreludesLoaded, time.Now(), b.loadPreludes(ctx, inline))
}

func (b *Builder) loadPreludes(ctx context.Context, inline []Module) error {
	modules := b.state.modules

	for _, path := range b.cfg.Module.ExtraModules {
		data, err := readSource("read side module", path)
		if err != nil {
			return err
		}
		if err := modules.Load(filepath.Base(path), data); err != nil {
			return err
		}
	}
	for _, m := range inline {
		if err := modules.Load(m.Name, m.Code); err != nil {
			return err
		}
	}
	if len(modules.Names()) == 0 {
		b.log.Debug("No side modules loaded")
	}

	var raw []string
	for _, path := range b.cfg.Output.PreludeFiles {
		if err := ctx.Err(); err != nil {
			return err
		}

		ext := filepath.Ext(path)
		if strings.EqualFold(ext, ".css") {
			raw = append(raw, path)
			continue
		}
		syntax, ok := common.SyntaxFromExt(ext)
		if !ok {
			return fmt.Errorf("unknown syntax of prelude %q", path)
		}
		data, err := readSource("read prelude", path)
		if err != nil {
			return err
		}
		out, err := b.compile(syntax, data)
		if err != nil {
			return fmt.Errorf("prelude %q: %w", path, err)
		}
		b.state.prelude.WriteString(out)
	}
	for _, path := range raw {
		data, err := readSource("read prelude", path)
		if err != nil {
			return err
		}
		b.state.prelude.WriteString(data)
	}
	return nil
}

// Discover finds all scopes under configured scan root.
func (b *Builder) Discover(ctx context.Context) error {
	if err := b.enter(PhasePreludesLoaded, "Discovering scopes"); err != nil {
		return err
	}
	start := time.Now()

	sources, err := discover(ctx, b.cfg.Module.ScanRoot, []string{b.cfg.Module.IntermediateDir, b.cfg.Output.ScopesDir}, b.log)
	if err == nil {
		b.state.sources = sources
		if len(sources) == 0 {
			b.log.Warn("No scopes found", zap.String("root", b.cfg.Module.ScanRoot))
		} else {
			b.log.Debug("Scopes discovered", zap.Int("count", len(sources)))
		}
	}
	return b.leave(PhaseScopesDiscovered, start, err)
}

// Compile hashes, rewrites and compiles every discovered scope in discovery
// order.
func (b *Builder) Compile(ctx context.Context) error {
	if err := b.enter(PhaseScopesDiscovered, "Compiling scopes"); err != nil {
		return err
	}
	start := time.Now()

	var err error
	for _, src := range b.state.sources {
		if err = ctx.Err(); err != nil {
			break
		}
		if err = b.compileScope(src); err != nil {
			break
		}
	}
	return b.leave(PhaseCompiled, start, err)
}

func (b *Builder) compileScope(src Source) error {
	data, err := readSource("read scope", src.Path)
	if err != nil {
		return err
	}

	scope, err := scoper.NewScope(src.Name, src.Syntax, data, b.parser)
	if err != nil {
		return fmt.Errorf("%s: %w", src.Path, err)
	}
	b.rpt.StoreData(fmt.Sprintf("scopes/%s.tree", src.Name), []byte(scope.Stylesheet().Dump()))

	hs, err := scope.Hashed(&b.cfg.Hash, b.cfg.Scoping.Mode)
	if err != nil {
		return fmt.Errorf("%s: %w", src.Path, err)
	}
	if other, dup := b.state.recordHash(hs.Hash, src.Name); dup {
		if b.cfg.Hash.CollisionPolicy == common.HashCollisionError {
			return &HashCollisionError{Scope: src.Name, Other: other, Hash: hs.Hash}
		}
		b.log.Warn("Scopes have the same hash", zap.String("scope", src.Name), zap.String("other", other), zap.Stringer("hash", hs.Hash))
	}

	table, err := hs.Table()
	if err != nil {
		return fmt.Errorf("%s: %w", src.Path, err)
	}
	warnUnnamed(b.log, hs)

	out, err := b.compile(src.Syntax, hs.Code)
	if err != nil {
		return fmt.Errorf("scope %q (%s): %w", src.Name, src.Path, err)
	}

	b.log.Debug("Scope compiled", zap.String("scope", src.Name), zap.Stringer("hash", hs.Hash), zap.Int("selectors", len(hs.Selectors)))
	b.state.compiled = append(b.state.compiled, CompiledScope{
		Name:  src.Name,
		Path:  src.Path,
		File:  src.File,
		Hash:  hs.Hash,
		CSS:   out,
		Table: table,
	})
	return nil
}

// warnUnnamed reports selectors which are scoped but cannot be referenced
// from host code since nothing is left of their names after sanitizing.
func warnUnnamed(log *zap.Logger, hs *scoper.HashedScope) {
	for _, sel := range hs.Unnamed() {
		log.Warn("Selector has no identifier and is left out of the manifest",
			zap.String("scope", hs.Original.Name), zap.Stringer("kind", sel.Kind), zap.String("name", sel.Name))
	}
}

// readSource reads stylesheet text. Byte order mark is dropped so it does
// not end up in the middle of the bundle.
func readSource(op, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fsError(op, path, err)
	}
	return css.StripByteOrderMark(string(data)), nil
}

func (b *Builder) compile(syntax common.Syntax, source string) (string, error) {
	out, err := b.compiler.Compile(syntax, source)
	if err != nil {
		return "", err
	}
	return b.minifier.Transform(out)
}

// WriteOutput writes per-scope files, bundle and identifier manifest -
// whatever is configured. Either all of them are written or none.
func (b *Builder) WriteOutput(ctx context.Context) error {
	if err := b.enter(PhaseCompiled, "Writing output"); err != nil {
		return err
	}
	start := time.Now()

	err := ctx.Err()
	if err == nil && len(b.state.compiled) == 0 {
		b.log.Warn("Nothing has been compiled, output will be empty")
	}
	if err == nil {
		err = b.writeOutput()
	}
	return b.leave(PhaseOutputWritten, start, err)
}

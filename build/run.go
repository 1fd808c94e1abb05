package build

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"stylescope/common"
	"stylescope/compiler"
	"stylescope/css"
	"stylescope/scoper"
	"stylescope/state"
)

// Run is "build" command action.
func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Logger("build")
	cfg := env.Cfg

	if root := cmd.Args().Get(0); root != "" {
		cfg.Module.ScanRoot = root
	}
	if cmd.Args().Len() > 1 {
		log.Warn("Malformed command line, too many scan roots", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}
	for flag, dst := range map[string]*string{
		"bundle":   &cfg.Output.BundlePath,
		"scopes":   &cfg.Output.ScopesDir,
		"manifest": &cfg.Output.ManifestPath,
	} {
		if cmd.IsSet(flag) {
			*dst = cmd.String(flag)
		}
	}
	if cfg.Output.BundlePath == "" && cfg.Output.ScopesDir == "" && cfg.Output.ManifestPath == "" {
		log.Warn("No output has been configured, only checking sources")
	}

	comp, err := compiler.New(&cfg.Compiler, cfg.Module.IntermediateDir, cfg.Output.Minify, env.Log)
	if err != nil {
		return fmt.Errorf("unable to prepare compiler: %w", err)
	}
	defer func() {
		if er := comp.Close(); er != nil {
			err = multierr.Append(err, fmt.Errorf("unable to stop compiler: %w", er))
		}
	}()

	log.Info("Build starting", zap.String("root", cfg.Module.ScanRoot), zap.Stringer("mode", cfg.Scoping.Mode))
	defer func(start time.Time) {
		if err == nil {
			log.Info("Build completed", zap.Duration("elapsed", time.Since(start)))
		}
	}(time.Now())

	b := NewBuilder(cfg, comp, env.Rpt, env.Log)
	err = b.Run(ctx)

	// whatever was produced goes into debug report, even partially
	if er := env.Rpt.StoreCopy("intermediate", cfg.Module.IntermediateDir); er != nil {
		log.Debug("Intermediate directory is not in the report", zap.Error(er))
	}
	for name, path := range map[string]string{
		"output/bundle.css":    cfg.Output.BundlePath,
		"output/scopes":        cfg.Output.ScopesDir,
		"output/manifest.yaml": cfg.Output.ManifestPath,
	} {
		if path == "" {
			continue
		}
		if _, er := os.Stat(path); er == nil {
			env.Rpt.Store(name, path)
		}
	}
	if err != nil {
		return fmt.Errorf("build failed in phase %s: %w", b.Phase(), err)
	}
	return nil
}

// RunScope is "scope" command action: it shows how a single file would be
// rewritten without compiling anything.
func RunScope(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Logger("scope")

	path := cmd.Args().Get(0)
	if path == "" {
		return errors.New("no input file has been specified")
	}
	syntax, ok := common.SyntaxFromExt(filepath.Ext(path))
	if !ok {
		return fmt.Errorf("unable to detect stylesheet syntax of %q", path)
	}
	data, err := readSource("read scope", path)
	if err != nil {
		return err
	}

	name := cmd.String("name")
	if name == "" {
		name = ScopeName(filepath.Base(path))
	}

	scope, err := scoper.NewScope(name, syntax, data, css.NewParser(env.Log))
	if err != nil {
		return err
	}
	env.Rpt.StoreData(fmt.Sprintf("scopes/%s.tree", name), []byte(scope.Stylesheet().Dump()))

	hs, err := scope.Hashed(&env.Cfg.Hash, env.Cfg.Scoping.Mode)
	if err != nil {
		return err
	}
	table, err := hs.Table()
	if err != nil {
		return err
	}
	warnUnnamed(log, hs)
	log.Debug("Scope rewritten", zap.String("scope", name), zap.Stringer("hash", hs.Hash))

	out := cmd.Root().Writer
	if out == nil {
		out = os.Stdout
	}
	if _, err := fmt.Fprintf(out, "%s\n\n%s", hs.Code, table); err != nil {
		return fmt.Errorf("unable to write result: %w", err)
	}
	return nil
}

package build

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"stylescope/common"
	"stylescope/config"
	"stylescope/scoper"
)

// Source is a stylesheet file declaring a scope.
type Source struct {
	Name   string
	Path   string
	Syntax common.Syntax
	// File is name of the per-scope output file.
	File string
}

// ScopeName derives scope name from file path relative to scan root:
// "components/card-list.scss" becomes "componentsCardList".
func ScopeName(rel string) string {
	rel = filepath.ToSlash(strings.TrimSuffix(rel, filepath.Ext(rel)))
	return scoper.Sanitize(strings.ReplaceAll(rel, "/", "-"))
}

// discover walks root collecting stylesheet sources in lexical order.
// Partials (names starting with "_") are importable modules and are not
// scopes. Symbolic links are never followed, directories listed in skip are
// not entered.
func discover(ctx context.Context, root string, skip []string, log *zap.Logger) ([]Source, error) {
	skipped := make(map[string]bool, len(skip))
	for _, s := range skip {
		if s == "" {
			continue
		}
		if abs, err := filepath.Abs(s); err == nil {
			skipped[abs] = true
		}
	}

	var (
		sources []Source
		names   = make(map[string]string)
	)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err != nil {
			return fsError("scan", path, err)
		}

		if d.Type()&fs.ModeSymlink != 0 {
			log.Warn("Symbolic links are not followed, skipping", zap.String("path", path))
			return nil
		}
		if d.IsDir() {
			if abs, err := filepath.Abs(path); err == nil && skipped[abs] && path != root {
				log.Debug("Skipping directory", zap.String("path", path))
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		syntax, ok := common.SyntaxFromExt(filepath.Ext(path))
		if !ok || strings.HasPrefix(d.Name(), "_") {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return fsError("resolve", path, err)
		}
		name := ScopeName(rel)
		if name == "" {
			return fmt.Errorf("%q does not produce usable scope name", rel)
		}
		file, err := config.ScopeFileName(name)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		if other, exists := names[name]; exists {
			return fmt.Errorf("scope %q is declared by %q and %q: %w", name, other, path, ErrScopeNameCollision)
		}
		names[name] = path

		log.Debug("Found scope", zap.String("scope", name), zap.String("file", path))
		sources = append(sources, Source{Name: name, Path: path, Syntax: syntax, File: file})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sources, nil
}

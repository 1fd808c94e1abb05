package build

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// artifact is an output file or directory prepared next to its target and
// moved into place when every configured artifact is ready.
type artifact struct {
	what   string
	target string
	tmp    string
	dir    bool
}

// commit moves staged artifact to its target. Existing target directory
// receives staged files one by one, files already there are kept.
func (a artifact) commit() error {
	if a.dir {
		if _, err := os.Stat(a.target); err == nil {
			return a.merge()
		}
	}
	return fsError("move "+a.what, a.target, os.Rename(a.tmp, a.target))
}

func (a artifact) merge() error {
	entries, err := os.ReadDir(a.tmp)
	if err != nil {
		return fsError("read staged "+a.what, a.tmp, err)
	}
	for _, e := range entries {
		target := filepath.Join(a.target, e.Name())
		if err := os.Rename(filepath.Join(a.tmp, e.Name()), target); err != nil {
			return fsError("move "+a.what, target, err)
		}
	}
	return fsError("remove staging directory", a.tmp, os.Remove(a.tmp))
}

// checkTarget fails when target exists and is of the wrong kind.
func checkTarget(path string, dir bool) error {
	info, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil
	case err != nil:
		return fsError("check output", path, err)
	case dir && !info.IsDir():
		return fsError("check output", path, ErrOutputNotDir)
	case !dir && info.IsDir():
		return fsError("check output", path, ErrOutputIsDir)
	}
	return nil
}

func stagingPattern(target string) string {
	return "." + filepath.Base(target) + ".*"
}

func stageFile(what, target string, write func(io.Writer) error) (artifact, error) {
	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return artifact{}, fsError("create directory", dir, err)
	}
	f, err := os.CreateTemp(dir, stagingPattern(target))
	if err != nil {
		return artifact{}, fsError("create "+what, target, err)
	}

	err = write(f)
	err = multierr.Append(err, f.Close())
	if err == nil {
		err = os.Chmod(f.Name(), 0644)
	}
	if err != nil {
		return artifact{}, multierr.Append(fsError("write "+what, target, err), os.Remove(f.Name()))
	}
	return artifact{what: what, target: target, tmp: f.Name()}, nil
}

func (b *Builder) stageScopes(target string) (artifact, error) {
	parent := filepath.Dir(target)
	if err := os.MkdirAll(parent, 0755); err != nil {
		return artifact{}, fsError("create directory", parent, err)
	}
	tmp, err := os.MkdirTemp(parent, stagingPattern(target))
	if err != nil {
		return artifact{}, fsError("create directory", target, err)
	}
	if err := os.Chmod(tmp, 0755); err != nil {
		return artifact{}, multierr.Append(fsError("create directory", target, err), os.RemoveAll(tmp))
	}

	for _, cs := range b.state.compiled {
		path := filepath.Join(tmp, cs.File)
		if err := os.WriteFile(path, []byte(cs.CSS), 0644); err != nil {
			return artifact{}, multierr.Append(fsError("write scope", path, err), os.RemoveAll(tmp))
		}
	}
	return artifact{what: "scope files", target: target, tmp: tmp, dir: true}, nil
}

// writeBundle puts prelude followed by every scope in discovery order.
func (b *Builder) writeBundle(w io.Writer) error {
	if _, err := io.WriteString(w, b.state.prelude.String()); err != nil {
		return err
	}
	for _, cs := range b.state.compiled {
		if _, err := io.WriteString(w, cs.CSS); err != nil {
			return err
		}
	}
	return nil
}

func (b *Builder) writeManifest(w io.Writer) error {
	m := &Manifest{Version: ManifestVersion, Mode: b.cfg.Scoping.Mode}
	for _, cs := range b.state.compiled {
		m.Scopes = append(m.Scopes, cs.Table)
	}
	data, err := m.Marshal()
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// writeOutput stages every configured artifact and only then moves them in
// place. A failure before that leaves output of the previous build intact.
func (b *Builder) writeOutput() (err error) {
	out := b.cfg.Output

	for _, t := range []struct {
		path string
		dir  bool
	}{{out.ScopesDir, true}, {out.BundlePath, false}, {out.ManifestPath, false}} {
		if t.path == "" {
			continue
		}
		if err := checkTarget(t.path, t.dir); err != nil {
			return err
		}
	}

	var staged []artifact
	defer func() {
		// committed artifacts are gone from staging already
		for _, a := range staged {
			err = multierr.Append(err, os.RemoveAll(a.tmp))
		}
	}()
	stage := func(a artifact, err error) error {
		if err == nil {
			staged = append(staged, a)
		}
		return err
	}

	if out.ScopesDir != "" {
		if err := stage(b.stageScopes(out.ScopesDir)); err != nil {
			return err
		}
	}
	if out.BundlePath != "" {
		if err := stage(stageFile("bundle", out.BundlePath, b.writeBundle)); err != nil {
			return err
		}
	}
	if out.ManifestPath != "" {
		if err := stage(stageFile("identifier manifest", out.ManifestPath, b.writeManifest)); err != nil {
			return err
		}
	}

	for _, a := range staged {
		b.log.Info("Writing "+a.what, zap.String("path", a.target))
		if err := a.commit(); err != nil {
			return err
		}
	}
	return nil
}

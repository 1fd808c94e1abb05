package build

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"stylescope/common"
)

// Module is named chunk of side module source. Name is used as file name in
// intermediate directory and should carry extension, so that compiler could
// resolve it by import.
type Module struct {
	Name string
	Code string
}

// ModuleLoader accumulates side modules in intermediate directory. It never
// reads back what was written.
type ModuleLoader struct {
	log    *zap.Logger
	dir    string
	policy common.ModuleCollision
	known  map[string]int
	order  []string
}

func NewModuleLoader(dir string, policy common.ModuleCollision, log *zap.Logger) *ModuleLoader {
	if log == nil {
		log = zap.NewNop()
	}
	return &ModuleLoader{
		log:    log.Named("modules"),
		dir:    dir,
		policy: policy,
		known:  make(map[string]int),
	}
}

// Dir returns intermediate directory modules are stored in.
func (ml *ModuleLoader) Dir() string {
	return ml.dir
}

// Path returns location of module file.
func (ml *ModuleLoader) Path(name string) string {
	return filepath.Join(ml.dir, name)
}

// Names returns names of loaded modules in order of first appearance.
func (ml *ModuleLoader) Names() []string {
	return append([]string(nil), ml.order...)
}

// Load stores module code. First load of a name removes stale file left from
// previous builds, subsequent loads are either appended or rejected depending
// on collision policy.
func (ml *ModuleLoader) Load(name, code string) error {
	if err := validModuleName(name); err != nil {
		return err
	}
	path := ml.Path(name)

	flags := os.O_CREATE | os.O_WRONLY | os.O_APPEND
	if ml.known[name] == 0 {
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fsError("remove stale module", path, err)
		}
		flags |= os.O_EXCL
		ml.log.Debug("Loading side module", zap.String("module", name))
	} else {
		if ml.policy == common.ModuleCollisionError {
			return &ModuleCollisionError{Module: name}
		}
		ml.log.Info("Duplicate side module name, merging code", zap.String("module", name))
	}

	if err := os.MkdirAll(ml.dir, 0755); err != nil {
		return fsError("create directory", ml.dir, err)
	}
	f, err := os.OpenFile(path, flags, 0644)
	if err != nil {
		return fsError("open module", path, err)
	}
	_, err = f.WriteString("\n" + code + "\n")
	if er := f.Close(); err == nil {
		err = er
	}
	if err != nil {
		return fsError("write module", path, err)
	}

	if ml.known[name] == 0 {
		ml.order = append(ml.order, name)
	}
	ml.known[name]++
	return nil
}

// validModuleName makes sure module file stays inside intermediate directory.
func validModuleName(name string) error {
	switch {
	case name == "", name == ".", name == "..":
	case strings.ContainsAny(name, `/\`+string(os.PathSeparator)):
	case filepath.Base(name) != name:
	default:
		return nil
	}
	return fmt.Errorf("%q: %w", name, ErrInvalidModuleName)
}

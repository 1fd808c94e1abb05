package build

import (
	"bytes"
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v3"

	"stylescope/common"
	"stylescope/scoper"
)

const ManifestVersion = 1

// Manifest is hand-off of identifier tables to code generators.
type Manifest struct {
	Version int                  `yaml:"version"`
	Mode    common.ScopingMode   `yaml:"mode"`
	Scopes  []*scoper.IdentTable `yaml:"scopes"`
}

// Scope returns table of the named scope.
func (m *Manifest) Scope(name string) (*scoper.IdentTable, bool) {
	for _, t := range m.Scopes {
		if t.Scope == name {
			return t, true
		}
	}
	return nil, false
}

func (m *Manifest) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("unable to marshal manifest: %w", err)
	}
	return data, nil
}

func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fsError("read manifest", path, err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	m := &Manifest{}
	if err := dec.Decode(m); err != nil {
		return nil, fmt.Errorf("unable to decode manifest %q: %w", path, err)
	}
	if m.Version != ManifestVersion {
		return nil, fmt.Errorf("unsupported manifest version %d", m.Version)
	}
	return m, nil
}

package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"

	"stylescope/common"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	// HashConfig governs which facets of a scope feed the hash function and
	// how duplicate hashes across scopes are treated.
	HashConfig struct {
		Length          int                  `yaml:"length" validate:"min=1,max=64"`
		UseScopeName    bool                 `yaml:"use_scope_name"`
		UseCodeText     bool                 `yaml:"use_code_text"`
		UseCodeSize     bool                 `yaml:"use_code_size"`
		UseItemNames    bool                 `yaml:"use_item_names"`
		CollisionPolicy common.HashCollision `yaml:"collision_policy" validate:"gte=0"`
	}

	ScopingConfig struct {
		Mode common.ScopingMode `yaml:"mode" validate:"gte=0"`
	}

	ModuleConfig struct {
		ScanRoot        string                 `yaml:"scan_root" validate:"required"`
		IntermediateDir string                 `yaml:"intermediate_dir" validate:"required"`
		CollisionPolicy common.ModuleCollision `yaml:"module_name_collision_policy" validate:"gte=0"`
		ExtraModules    []string               `yaml:"extra_modules" validate:"dive,required"`
	}

	CompilerConfig struct {
		Kind         common.CompilerKind `yaml:"kind" validate:"gte=0"`
		DartSassPath string              `yaml:"dart_sass_path" validate:"required_if=Kind 0"`
		LoadPaths    []string            `yaml:"load_paths" validate:"dive,required"`
		CacheSize    int                 `yaml:"cache_size" validate:"gte=0"`
	}

	OutputConfig struct {
		BundlePath   string   `yaml:"bundle_path" validate:"omitempty,filepath"`
		ScopesDir    string   `yaml:"scopes_dir"`
		ManifestPath string   `yaml:"manifest_path" validate:"omitempty,filepath"`
		Minify       bool     `yaml:"minify"`
		KeepCSS2     bool     `yaml:"keep_css2"`
		PreludeFiles []string `yaml:"prelude_files" validate:"dive,required"`
	}

	Config struct {
		Version   int            `yaml:"version" validate:"eq=1"`
		Hash      HashConfig     `yaml:"hash"`
		Scoping   ScopingConfig  `yaml:"scoping"`
		Module    ModuleConfig   `yaml:"module"`
		Compiler  CompilerConfig `yaml:"compiler"`
		Output    OutputConfig   `yaml:"output"`
		Logging   LoggingConfig  `yaml:"logging"`
		Reporting ReporterConfig `yaml:"reporting"`
	}
)

var requiredOptions = []func(*gencfg.ProcessingOptions){}

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// We want to use only fields we defined so we cannot use yaml.Unmarshal
	// directly here
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		// sanitize and validate what has been loaded
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, fmt.Errorf("configuration sanitizing failed: %w", err)
		}
		if err := gencfg.Validate(cfg); err != nil {
			return nil, fmt.Errorf("configuration validation failed: %w", err)
		}
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposes its values on top of expanded configuration tamplate to provide
// sane defaults and performs validation.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, append(requiredOptions, options...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	// overwrite cfg values with values from the file
	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg, haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare generates configuration file from template and returns it as a byte
// slice.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl, requiredOptions...)
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %v", err)
	}
	return data, nil
}

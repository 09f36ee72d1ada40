package project

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"greet/internal/grammar"
)

// Manifest is a loaded greet.toml.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

type Config struct {
	Package     PackageConfig     `toml:"package"`
	Grammar     grammar.Config    `toml:"grammar"`
	Diagnostics DiagnosticsConfig `toml:"diagnostics"`
}

type PackageConfig struct {
	Name string `toml:"name"`
}

type DiagnosticsConfig struct {
	Max    int    `toml:"max"`
	Format string `toml:"format"`
}

// DiagnosticFormats lists the accepted [diagnostics].format values.
var DiagnosticFormats = []string{"pretty", "short", "json", "sarif"}

// Load finds and loads the manifest above startDir. ok is false when there is none.
func Load(startDir string) (*Manifest, bool, error) {
	manifestPath, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := LoadConfig(manifestPath)
	if err != nil {
		return nil, true, err
	}
	return &Manifest{
		Path:   manifestPath,
		Root:   filepath.Dir(manifestPath),
		Config: cfg,
	}, true, nil
}

// LoadConfig decodes and validates greet.toml at path.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return Config{}, fmt.Errorf("%s: missing [package]", path)
	}
	if !meta.IsDefined("package", "name") || strings.TrimSpace(cfg.Package.Name) == "" {
		return Config{}, fmt.Errorf("%s: missing [package].name", path)
	}
	if meta.IsDefined("diagnostics", "max") && cfg.Diagnostics.Max < 0 {
		return Config{}, fmt.Errorf("%s: [diagnostics].max must not be negative", path)
	}
	if meta.IsDefined("diagnostics", "format") && !validFormat(cfg.Diagnostics.Format) {
		return Config{}, fmt.Errorf("%s: [diagnostics].format must be one of %s", path, strings.Join(DiagnosticFormats, ", "))
	}
	if keys := meta.Undecoded(); len(keys) > 0 {
		return Config{}, fmt.Errorf("%s: unknown key %s", path, keys[0].String())
	}
	return cfg, nil
}

func validFormat(f string) bool {
	for _, known := range DiagnosticFormats {
		if f == known {
			return true
		}
	}
	return false
}

// Grammar compiles the [grammar] section; a manifest without one uses the default preset.
func (m *Manifest) Grammar() (*grammar.Grammar, error) {
	g, err := grammar.FromConfig(m.Config.Grammar)
	if err != nil {
		return nil, fmt.Errorf("%s: [grammar]: %w", m.Path, err)
	}
	return g, nil
}

// ErrorPosition extracts the 1-based line of a TOML syntax error, if err carries one.
func ErrorPosition(err error) (line int, ok bool) {
	var pe toml.ParseError
	if errors.As(err, &pe) && pe.Position.Line > 0 {
		return pe.Position.Line, true
	}
	return 0, false
}

package grammar

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"greet/internal/token"
)

// Config is the [grammar] table of greet.toml.
type Config struct {
	Preset       string           `toml:"preset"`
	Layout       string           `toml:"layout"`
	Declarations *bool            `toml:"declarations"`
	Name         string           `toml:"name"`
	NameLiteral  bool             `toml:"name_literal"`
	Salutations  []TerminalConfig `toml:"salutation"`
}

// TerminalConfig describes one [[grammar.salutation]] entry.
type TerminalConfig struct {
	Kind    string `toml:"kind"`
	Pattern string `toml:"pattern"`
	Literal bool   `toml:"literal"`
}

// FromConfig starts from the configured preset and applies overrides on top.
func FromConfig(cfg Config) (*Grammar, error) {
	presetName := strings.TrimSpace(cfg.Preset)
	if presetName == "" {
		presetName = DefaultPreset
	}
	g, err := Preset(presetName)
	if err != nil {
		return nil, err
	}

	if cfg.Layout != "" {
		if g.Layout, err = ParseLayout(cfg.Layout); err != nil {
			return nil, err
		}
	}
	if cfg.Declarations != nil {
		g.Declarations = *cfg.Declarations
	}
	if cfg.Name != "" {
		g.NameTerm = Terminal{Kind: token.Name, Pattern: cfg.Name, Literal: cfg.NameLiteral}
	}
	if len(cfg.Salutations) > 0 {
		g.Salutations = g.Salutations[:0]
		for i, tc := range cfg.Salutations {
			kind, ok := token.ParseKind(tc.Kind)
			if !ok || !kind.IsSalutation() {
				return nil, fmt.Errorf("salutation #%d: unknown kind %q (want hello|goodbye)", i+1, tc.Kind)
			}
			g.Salutations = append(g.Salutations, Terminal{Kind: kind, Pattern: tc.Pattern, Literal: tc.Literal})
		}
		g.Name = presetName + "+custom"
	}
	return g.Compile()
}

type grammarFile struct {
	Grammar Config `toml:"grammar"`
}

// LoadFile reads the [grammar] table from a TOML file.
func LoadFile(path string) (*Grammar, error) {
	var f grammarFile
	meta, err := toml.DecodeFile(path, &f)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("grammar") {
		return nil, fmt.Errorf("%s: missing [grammar]", path)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		for _, key := range undecoded {
			if len(key) > 0 && key[0] == "grammar" {
				return nil, fmt.Errorf("%s: unknown key %s", path, key.String())
			}
		}
	}
	g, err := FromConfig(f.Grammar)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

// Lookup resolves a CLI value: a preset name, or a path to a TOML file.
// The empty string yields the default grammar.
func Lookup(nameOrPath string) (*Grammar, error) {
	if nameOrPath == "" {
		return Default(), nil
	}
	if _, ok := presets[nameOrPath]; ok {
		g, _ := Preset(nameOrPath)
		return g.Compile()
	}
	if filepath.Ext(nameOrPath) == ".toml" {
		if _, err := os.Stat(nameOrPath); err != nil {
			return nil, fmt.Errorf("grammar file: %w", err)
		}
		return LoadFile(nameOrPath)
	}
	return nil, fmt.Errorf("unknown grammar %q: want one of %v or a .toml file", nameOrPath, Presets())
}

package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

const manifestTemplate = `[package]
name = %q

[grammar]
preset = "regex"        # regex | literal | bob | lark
layout = "any"          # any | line

[diagnostics]
max = 100
format = "pretty"       # pretty | short | json | sarif
`

const sampleSource = `Hello World
goodbye World
`

// Init writes greet.toml and hello.greet into dir. Existing files are left
// alone unless force is set. It returns the paths it wrote.
func Init(dir, name string, force bool) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	if strings.TrimSpace(name) == "" {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return nil, err
		}
		name = sanitizeName(filepath.Base(abs))
	}

	files := []struct {
		path    string
		content string
	}{
		{filepath.Join(dir, ManifestName), fmt.Sprintf(manifestTemplate, name)},
		{filepath.Join(dir, "hello.greet"), sampleSource},
	}

	written := make([]string, 0, len(files))
	for _, f := range files {
		if !force {
			if _, err := os.Stat(f.path); err == nil {
				return written, fmt.Errorf("%s already exists (use --force to overwrite)", f.path)
			} else if !errors.Is(err, os.ErrNotExist) {
				return written, err
			}
		}
		if err := os.WriteFile(f.path, []byte(f.content), 0o644); err != nil { // #nosec G306 -- project files are meant to be shared
			return written, err
		}
		written = append(written, f.path)
	}
	return written, nil
}

func sanitizeName(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('-')
		}
	}
	if out := strings.Trim(b.String(), "-"); out != "" {
		return out
	}
	return "greetings"
}

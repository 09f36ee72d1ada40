package project

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"greet/internal/grammar"
)

func writeManifest(t *testing.T, dir, content string) string {
	t.Helper()
	p := filepath.Join(dir, ManifestName)
	if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestFindManifestWalksUp(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "[package]\nname = \"x\"\n")
	deep := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(deep, 0o755); err != nil {
		t.Fatal(err)
	}

	got, ok, err := FindProjectRoot(deep)
	if err != nil || !ok {
		t.Fatalf("ok=%v err=%v", ok, err)
	}
	want, _ := filepath.EvalSymlinks(root)
	if g, _ := filepath.EvalSymlinks(got); g != want {
		t.Fatalf("root = %s, want %s", got, root)
	}
}

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `
[package]
name = "hello-world"

[grammar]
preset = "lark"
declarations = false

[[grammar.salutation]]
kind = "hello"
pattern = "hi"
literal = true

[[grammar.salutation]]
kind = "goodbye"
pattern = "[Bb]ye"

[diagnostics]
max = 5
format = "short"
`)

	m, ok, err := Load(dir)
	if err != nil || !ok {
		t.Fatalf("ok=%v err=%v", ok, err)
	}
	if m.Config.Package.Name != "hello-world" || m.Config.Diagnostics.Max != 5 || m.Config.Diagnostics.Format != "short" {
		t.Fatalf("unexpected config %+v", m.Config)
	}

	g, err := m.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	if g.Declarations || g.Layout != grammar.LayoutLine || len(g.Salutations) != 2 {
		t.Fatalf("unexpected grammar %+v", g)
	}
	if _, n := g.MatchSalutation([]byte("Bye")); n != 3 {
		t.Fatal("custom goodbye pattern not applied")
	}
}

func TestLoadManifestErrors(t *testing.T) {
	tests := []struct {
		name, content, want string
	}{
		{"no package", "[grammar]\npreset = \"regex\"\n", "missing [package]"},
		{"no name", "[package]\n", "missing [package].name"},
		{"bad format", "[package]\nname = \"x\"\n[diagnostics]\nformat = \"xml\"\n", "[diagnostics].format"},
		{"negative max", "[package]\nname = \"x\"\n[diagnostics]\nmax = -1\n", "must not be negative"},
		{"unknown key", "[package]\nname = \"x\"\nversion = 2\n", "unknown key package.version"},
		{"syntax", "[package\nname = \"x\"\n", "failed to parse TOML"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := writeManifest(t, t.TempDir(), tt.content)
			_, err := LoadConfig(p)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("err = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestErrorPosition(t *testing.T) {
	p := writeManifest(t, t.TempDir(), "[package]\nname = \"x\"\nname = = 3\n")
	_, err := LoadConfig(p)
	if err == nil {
		t.Fatal("expected error")
	}
	if line, ok := ErrorPosition(err); !ok || line != 3 {
		t.Fatalf("line=%d ok=%v", line, ok)
	}
}

func TestInit(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "My Project")
	written, err := Init(dir, "", false)
	if err != nil {
		t.Fatal(err)
	}
	if len(written) != 2 {
		t.Fatalf("written = %v", written)
	}
	m, ok, err := Load(dir)
	if err != nil || !ok {
		t.Fatalf("generated manifest does not load: ok=%v err=%v", ok, err)
	}
	if m.Config.Package.Name != "my-project" {
		t.Fatalf("name = %q", m.Config.Package.Name)
	}
	if _, err := Init(dir, "", false); err == nil {
		t.Fatal("second Init without force must fail")
	}
	if _, err := Init(dir, "renamed", true); err != nil {
		t.Fatal(err)
	}
}

package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestParseTriState(t *testing.T) {
	tests := []struct {
		in      string
		want    triState
		wantErr bool
	}{
		{"", stateAuto, false},
		{"auto", stateAuto, false},
		{" ON ", stateOn, false},
		{"never", stateOff, false},
		{"sometimes", "", true},
	}
	for _, tt := range tests {
		got, err := parseTriState("color", tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("parseTriState(%q) err = %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("parseTriState(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
	if !stateOn.resolve(nil) || stateOff.resolve(nil) {
		t.Fatal("explicit states must not consult the terminal")
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestResolveGrammar(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.greet")
	writeFile(t, src, "Hello Bob\n")

	g, manifest, err := resolveGrammar("", src)
	if err != nil {
		t.Fatal(err)
	}
	if manifest != nil || g.Name != "regex" {
		t.Fatalf("no manifest: got grammar %q, manifest %v", g.Name, manifest)
	}

	writeFile(t, filepath.Join(dir, "greet.toml"), "[package]\nname = \"demo\"\n\n[grammar]\npreset = \"lark\"\n")
	g, manifest, err = resolveGrammar("", src)
	if err != nil {
		t.Fatal(err)
	}
	if manifest == nil || g.Name != "lark" {
		t.Fatalf("manifest grammar: got %q", g.Name)
	}

	g, _, err = resolveGrammar("bob", src)
	if err != nil {
		t.Fatal(err)
	}
	if g.Name != "bob" {
		t.Fatalf("--grammar must win over the manifest, got %q", g.Name)
	}

	if _, _, err = resolveGrammar("nope", src); err == nil {
		t.Fatal("unknown preset accepted")
	}
}

func TestResolveGrammar_BrokenManifest(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "greet.toml"), "[package]\nname = \"demo\"\n[grammar\n")

	_, _, err := resolveGrammar("", dir)
	var me *manifestError
	if !errors.As(err, &me) {
		t.Fatalf("want manifestError, got %v", err)
	}
	if filepath.Base(me.path) != "greet.toml" {
		t.Fatalf("manifest path = %q", me.path)
	}
}

package grammar

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"greet/internal/token"
)

func TestPresetsCompile(t *testing.T) {
	for _, name := range Presets() {
		t.Run(name, func(t *testing.T) {
			g, err := Preset(name)
			if err != nil {
				t.Fatal(err)
			}
			cg, err := g.Compile()
			if err != nil {
				t.Fatalf("Compile: %v", err)
			}
			if !cg.Compiled() || g.Compiled() {
				t.Fatal("Compile must return a compiled copy and leave the source untouched")
			}
		})
	}
}

func TestMatchSalutationFirstWins(t *testing.T) {
	g := Default()
	tests := []struct {
		in   string
		kind token.Kind
		n    int
	}{
		{"Hello Alice", token.Hello, 5},
		{"hello", token.Hello, 5},
		{"goodbye Bob", token.Goodbye, 7},
		{"Helloworld", token.Hello, 5},
		{"HEllo", token.Invalid, 0},
		{"Hi", token.Invalid, 0},
		{"", token.Invalid, 0},
		{" Hello", token.Invalid, 0},
	}
	for _, tt := range tests {
		kind, n := g.MatchSalutation([]byte(tt.in))
		if kind != tt.kind || n != tt.n {
			t.Errorf("MatchSalutation(%q) = %s,%d want %s,%d", tt.in, kind, n, tt.kind, tt.n)
		}
	}
}

func TestOrderedChoice(t *testing.T) {
	// оба терминала совпадают; выигрывает первый, даже если второй длиннее
	g := (&Grammar{
		Salutations: []Terminal{
			Regex(token.Goodbye, "[Gg]ood"),
			Regex(token.Hello, "[Gg]oodbye"),
		},
		NameTerm: Regex(token.Name, "[A-Za-z]+"),
	}).MustCompile()
	kind, n := g.MatchSalutation([]byte("goodbye"))
	if kind != token.Goodbye || n != 4 {
		t.Fatalf("got %s,%d want GOODBYE,4", kind, n)
	}
}

func TestLiteralAndFixedName(t *testing.T) {
	lit, err := Lookup("literal")
	if err != nil {
		t.Fatal(err)
	}
	if kind, _ := lit.MatchSalutation([]byte("Hello")); kind != token.Invalid {
		t.Errorf("literal preset accepted %q", "Hello")
	}
	if kind, n := lit.MatchSalutation([]byte("hello")); kind != token.Hello || n != 5 {
		t.Errorf("literal preset rejected hello")
	}

	bob, err := Lookup("bob")
	if err != nil {
		t.Fatal(err)
	}
	if !bob.IsName("Bob") || bob.IsName("Alice") || bob.IsName("Bobby") {
		t.Error("bob preset name terminal is wrong")
	}
}

func TestIsName(t *testing.T) {
	g := Default()
	for in, want := range map[string]bool{"Alice": true, "x": true, "Alice1": false, "": false, "Анна": false} {
		if got := g.IsName(in); got != want {
			t.Errorf("IsName(%q) = %v", in, got)
		}
	}
}

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		name string
		g    *Grammar
		want string
	}{
		{"no salutations", &Grammar{NameTerm: Regex(token.Name, "x")}, "no salutation"},
		{"bad kind", &Grammar{Salutations: []Terminal{Regex(token.Name, "x")}, NameTerm: Regex(token.Name, "x")}, "not a salutation"},
		{"bad regexp", &Grammar{Salutations: []Terminal{Regex(token.Hello, "(")}, NameTerm: Regex(token.Name, "x")}, "terminal hello"},
		{"empty name", &Grammar{Salutations: []Terminal{Lit(token.Hello, "hi")}, NameTerm: Regex(token.Name, "")}, "empty pattern"},
		{"name kind", &Grammar{Salutations: []Terminal{Lit(token.Hello, "hi")}, NameTerm: Regex(token.Hello, "x")}, "name terminal"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.g.Compile()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("err = %v, want substring %q", err, tt.want)
			}
		})
	}
	if err := (&Grammar{}).Check(); err == nil {
		t.Error("Check on an uncompiled grammar must fail")
	}
}

func TestDescribe(t *testing.T) {
	out := Default().Describe()
	for _, want := range []string{
		"source_file     := greeting*",
		"salutation: (hello | goodbye) name: name",
		"/[Hh]ello/",
		"/[A-Za-z]+/",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Describe() missing %q:\n%s", want, out)
		}
	}
	lark, _ := Lookup("lark")
	if !strings.Contains(lark.Describe(), `name_definition := "name:"`) {
		t.Errorf("lark Describe() lacks declarations:\n%s", lark.Describe())
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "greet.toml")
	content := `
[grammar]
preset = "literal"
layout = "line"
name = "Bob"
name_literal = true

[[grammar.salutation]]
kind = "goodbye"
pattern = "ciao"
literal = true
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	g, err := Lookup(path)
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if g.Layout != LayoutLine {
		t.Errorf("layout = %s", g.Layout)
	}
	if kind, n := g.MatchSalutation([]byte("ciao Bob")); kind != token.Goodbye || n != 4 {
		t.Errorf("custom salutation = %s,%d", kind, n)
	}
	if kind, _ := g.MatchSalutation([]byte("hello")); kind != token.Invalid {
		t.Error("preset salutations must be replaced by the override list")
	}
	if !g.IsName("Bob") || g.IsName("Bo") {
		t.Error("name override not applied")
	}
}

func TestLoadFileErrors(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) string {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, []byte(body), 0o600); err != nil {
			t.Fatal(err)
		}
		return p
	}
	cases := map[string]string{
		"missing.toml": "[package]\nname = \"x\"\n",
		"unknown.toml": "[grammar]\nsalutations = 1\n",
		"preset.toml":  "[grammar]\npreset = \"klingon\"\n",
		"layout.toml":  "[grammar]\nlayout = \"diagonal\"\n",
		"kind.toml":    "[grammar]\n[[grammar.salutation]]\nkind = \"name\"\npattern = \"x\"\n",
	}
	for name, body := range cases {
		if _, err := LoadFile(write(name, body)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
	if _, err := Lookup("nope"); err == nil {
		t.Error("Lookup of unknown preset must fail")
	}
}

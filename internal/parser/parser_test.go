package parser

import (
	"context"
	"reflect"
	"testing"

	"greet/internal/ast"
	"greet/internal/diag"
	"greet/internal/grammar"
	"greet/internal/source"
	"greet/internal/testkit"
)

func TestParseGreetings(t *testing.T) {
	tests := []struct {
		name   string
		preset string
		input  string
		decls  string
		diags  string
	}{
		{name: "empty", input: ""},
		{name: "whitespace only", input: " \n\t \n"},
		{name: "single", input: "Hello Alice", decls: "Hello Alice"},
		{name: "sequence", input: "goodbye Bob Hello Carol", decls: "goodbye Bob; Hello Carol"},
		{name: "multiline", input: "  Hello\n\tWorld  \nGoodbye   World\n", decls: "Hello World; Goodbye World"},
		{name: "salutation as name", input: "Goodbye Hello", decls: "Goodbye Hello"},
		{
			name:  "digits instead of name",
			input: "Hello 123",
			diags: "MissingField:name@5 UnrecognizedInput@6",
		},
		{
			name:  "unknown salutation",
			input: "Hi Alice",
			diags: "UnrecognizedInput@0 UnrecognizedInput@3",
		},
		{name: "dangling salutation", input: "Hello Alice Goodbye", decls: "Hello Alice", diags: "MissingField:name@19"},
		{
			name:  "glued name",
			input: "Helloworld",
			diags: "MissingField:name@5 SYN2003@5 UnrecognizedInput@5",
		},
		{name: "trailing junk", input: "Hello Alice!", decls: "Hello Alice", diags: "UnrecognizedInput@11"},
		{name: "adjacent junk is one run", input: "Hi!there Hello Bob", decls: "Hello Bob", diags: "UnrecognizedInput@0"},
		{name: "uppercase is not a salutation", input: "HELLO Bob", diags: "UnrecognizedInput@0 UnrecognizedInput@6"},
		{name: "unicode junk", input: "Hello Zoë", decls: "Hello Zo", diags: "UnrecognizedInput@8"},
		{name: "literal preset", preset: "literal", input: "hello Alice Hello Bob", decls: "hello Alice", diags: "UnrecognizedInput@12 UnrecognizedInput@18"},
		{name: "bob preset", preset: "bob", input: "Hello Bob goodbye Bob", decls: "Hello Bob; goodbye Bob"},
		{name: "bob preset rejects others", preset: "bob", input: "Hello Alice", diags: "MissingField:name@5 UnrecognizedInput@6"},
		{name: "lark definitions", preset: "lark", input: "name: Alice\nHello Alice\nname:Bob\n", decls: "name: Alice; Hello Alice; name: Bob"},
		{
			name:   "lark needs one line",
			preset: "lark",
			input:  "Hello\nAlice",
			diags:  "MissingField:name@5 SYN2003@6 UnrecognizedInput@6",
		},
		{name: "lark definition without name", preset: "lark", input: "name:", diags: "MissingField:name@5"},
		{name: "declarations are off by default", input: "name: Bob", diags: "UnrecognizedInput@0 UnrecognizedInput@6"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			preset := tt.preset
			if preset == "" {
				preset = grammar.DefaultPreset
			}
			p := parseSource(t, preset, tt.input)
			if got := p.decls(); got != tt.decls {
				t.Errorf("decls = %q, want %q", got, tt.decls)
			}
			if got := p.kinds(); got != tt.diags {
				t.Errorf("diagnostics = %q, want %q (%s)", got, tt.diags, diagnosticsSummary(p.diags))
			}
			if err := testkit.CheckDiagnosticOrder(p.diags, uint32(len(tt.input))); err != nil {
				t.Errorf("diagnostic order: %v", err)
			}
		})
	}
}

func TestParseSpans(t *testing.T) {
	p := parseSource(t, "regex", "Hello Alice\n")
	root := p.builder.Tree(p.res.File)
	if root.Span.Start != 0 || root.Span.End != 12 {
		t.Fatalf("source file span = %v, want [0,12)", root.Span)
	}
	if len(root.Children) != 1 {
		t.Fatalf("expected 1 greeting, got %d", len(root.Children))
	}
	g := root.Children[0]
	if g.Kind != ast.NodeGreeting || g.Span.Start != 0 || g.Span.End != 11 {
		t.Fatalf("greeting = %v %v", g.Kind, g.Span)
	}
	sal, _ := g.ChildByField(ast.FieldSalutation)
	name, _ := g.ChildByField(ast.FieldName)
	if sal.Kind != ast.NodeHello || sal.Span.End != 5 {
		t.Errorf("salutation = %+v", sal)
	}
	if name.Kind != ast.NodeName || name.Span.Start != 6 || name.Span.End != 11 {
		t.Errorf("name = %+v", name)
	}
	if p.res.Greetings != 1 {
		t.Errorf("Result.Greetings = %d, want 1", p.res.Greetings)
	}
}

func TestMissingFieldDetails(t *testing.T) {
	p := parseSource(t, "regex", "Goodbye")
	if len(p.diags) != 1 {
		t.Fatalf("expected 1 diagnostic, got %s", diagnosticsSummary(p.diags))
	}
	d := p.diags[0]
	if d.Code != diag.SynMissingField || d.Field != "name" || d.Severity != diag.SevError {
		t.Fatalf("unexpected diagnostic %+v", d)
	}
	if len(d.Notes) != 1 || d.Notes[0].Span.Start != 0 || d.Notes[0].Span.End != 7 {
		t.Fatalf("expected note on the salutation, got %+v", d.Notes)
	}
	if len(p.builder.Tree(p.res.File).Children) != 0 {
		t.Fatal("incomplete greeting must not appear in the tree")
	}
}

func TestSalutationCaseHint(t *testing.T) {
	tests := []struct {
		preset, input, want string
	}{
		{"regex", "HEllo Bob", "Hello"},
		{"regex", "GOODBYE Bob", "Goodbye"},
		{"literal", "Hello Bob", "hello"},
		{"regex", "Hallo Bob", ""},
	}
	for _, tt := range tests {
		t.Run(tt.preset+"/"+tt.input, func(t *testing.T) {
			p := parseSource(t, tt.preset, tt.input)
			if len(p.diags) == 0 || p.diags[0].Code != diag.SynUnrecognizedInput {
				t.Fatalf("expected unrecognized input first, got %s", diagnosticsSummary(p.diags))
			}
			fixes := p.diags[0].Fixes
			if tt.want == "" {
				if len(fixes) != 0 {
					t.Fatalf("unexpected fix %+v", fixes)
				}
				return
			}
			if len(fixes) != 1 || len(fixes[0].Edits) != 1 || fixes[0].Edits[0].NewText != tt.want {
				t.Fatalf("fixes = %+v, want replacement %q", fixes, tt.want)
			}
		})
	}
}

func TestMaxErrors(t *testing.T) {
	p := parseWith(t, "regex", "one! two! three! Hello Alice", Options{MaxErrors: 2})
	if len(p.diags) != 2 {
		t.Fatalf("expected 2 diagnostics, got %s", diagnosticsSummary(p.diags))
	}
	if got := p.decls(); got != "Hello Alice" {
		t.Fatalf("parsing must go on after the limit, got %q", got)
	}
}

func TestCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("c.greet", []byte("Hello Alice")))
	builder := ast.NewBuilder(ast.Hints{})
	res := ParseFile(ctx, fs, lexerFor(t, file), builder, Options{})
	if !res.Cancelled {
		t.Fatal("expected Cancelled")
	}
	if builder.Files.Get(res.File) == nil {
		t.Fatal("a source file must be returned even when cancelled")
	}
}

func TestParseIsIdempotent(t *testing.T) {
	input := []byte("Hello Alice Hi 42 goodbye\nBob Goodbye")
	b1, f1, d1 := Parse(context.Background(), grammar.Default(), "x.greet", input)
	b2, f2, d2 := Parse(context.Background(), grammar.Default(), "x.greet", input)
	if !reflect.DeepEqual(b1.Tree(f1), b2.Tree(f2)) {
		t.Fatal("trees differ between runs")
	}
	if !reflect.DeepEqual(d1, d2) {
		t.Fatalf("diagnostics differ: %s vs %s", diagnosticsSummary(d1), diagnosticsSummary(d2))
	}
}

func TestDiagnosticsGolden(t *testing.T) {
	p := parseSource(t, "regex", "Hello 123\nHi")
	got := diag.FormatShortDiagnostics(p.diags, p.fs, true)
	want := `note SYN2001 test.greet:1:1 greeting starts here
error SYN2001 test.greet:1:6 greeting is missing its name after "Hello"
error SYN2002 test.greet:1:7 unrecognized input "123"
error SYN2002 test.greet:2:1 unrecognized input "Hi"`
	if got != want {
		t.Fatalf("short diagnostics mismatch\n got:\n%s\nwant:\n%s", got, want)
	}
}

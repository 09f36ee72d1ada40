package parser

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"greet/internal/ast"
	"greet/internal/diag"
	"greet/internal/grammar"
	"greet/internal/lexer"
	"greet/internal/source"
)

type parsed struct {
	fs      *source.FileSet
	builder *ast.Builder
	res     Result
	diags   []diag.Diagnostic
}

func parseWith(t *testing.T, preset, input string, opts Options) parsed {
	t.Helper()
	g, err := grammar.Preset(preset)
	if err != nil {
		t.Fatal(err)
	}
	g = g.MustCompile()

	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.greet", []byte(input)))
	bag := diag.NewBag(0)
	opts.Reporter = &diag.BagReporter{Bag: bag}
	builder := ast.NewBuilder(ast.Hints{})
	res := ParseFile(context.Background(), fs, lexer.New(file, g, lexer.Options{}), builder, opts)
	return parsed{fs: fs, builder: builder, res: res, diags: bag.Items()}
}

func parseSource(t *testing.T, preset, input string) parsed {
	t.Helper()
	return parseWith(t, preset, input, Options{})
}

// decls renders the file's children as "Hello Alice; name: Bob".
func (p parsed) decls() string {
	root := p.builder.Tree(p.res.File)
	parts := make([]string, 0, len(root.Children))
	for _, d := range root.Children {
		words := make([]string, 0, len(d.Children))
		for _, c := range d.Children {
			words = append(words, c.Text)
		}
		parts = append(parts, strings.Join(words, " "))
	}
	return strings.Join(parts, "; ")
}

// kinds renders diagnostics as "MissingField:name@5".
func (p parsed) kinds() string {
	out := make([]string, len(p.diags))
	for i, d := range p.diags {
		k := d.Code.Kind()
		if d.Severity != diag.SevError {
			k = d.Code.ID()
		}
		if d.Field != "" {
			k += ":" + d.Field
		}
		out[i] = fmt.Sprintf("%s@%d", k, d.Offset())
	}
	return strings.Join(out, " ")
}

func diagnosticsSummary(diags []diag.Diagnostic) string {
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}

func lexerFor(t *testing.T, file *source.File) *lexer.Lexer {
	t.Helper()
	return lexer.New(file, grammar.Default(), lexer.Options{})
}

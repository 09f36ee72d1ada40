package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"greet/internal/ast"
	"greet/internal/source"
)

// FormatTreePretty prints one node per line, indented by depth:
//
//	SourceFile 1:1-2:1
//	  Greeting 1:1-1:12
//	    salutation: Hello "Hello" 1:1-1:6
func FormatTreePretty(w io.Writer, root ast.Node, fs *source.FileSet) error {
	var b strings.Builder
	root.Walk(func(n ast.Node, depth int) bool {
		b.WriteString(strings.Repeat("  ", depth))
		if n.Field != ast.FieldNone {
			b.WriteString(n.Field.String())
			b.WriteString(": ")
		}
		b.WriteString(n.Kind.String())
		if n.Kind.IsLeaf() {
			fmt.Fprintf(&b, " %q", n.Text)
		}
		start, end := fs.Resolve(n.Span)
		fmt.Fprintf(&b, " %d:%d-%d:%d\n", start.Line, start.Col, end.Line, end.Col)
		return true
	})
	_, err := io.WriteString(w, b.String())
	return err
}

// FormatTreeSExpr renders the tree the way tree-sitter test corpora do:
//
//	(source_file (greeting salutation: (hello) name: (name)))
func FormatTreeSExpr(w io.Writer, root ast.Node) error {
	var b strings.Builder
	writeSExpr(&b, root)
	b.WriteByte('\n')
	_, err := io.WriteString(w, b.String())
	return err
}

// SExpr is FormatTreeSExpr into a string, without the trailing newline.
func SExpr(root ast.Node) string {
	var b strings.Builder
	writeSExpr(&b, root)
	return b.String()
}

func writeSExpr(b *strings.Builder, n ast.Node) {
	b.WriteByte('(')
	b.WriteString(n.Kind.RuleName())
	for _, c := range n.Children {
		b.WriteByte(' ')
		if c.Field != ast.FieldNone {
			b.WriteString(c.Field.String())
			b.WriteString(": ")
		}
		writeSExpr(b, c)
	}
	b.WriteByte(')')
}

// NodeJSON is the serialized form of ast.Node.
type NodeJSON struct {
	Kind     string     `json:"kind"`
	Field    string     `json:"field,omitempty"`
	Text     string     `json:"text,omitempty"`
	Start    uint32     `json:"start"`
	End      uint32     `json:"end"`
	Children []NodeJSON `json:"children,omitempty"`
}

func BuildNodeJSON(n ast.Node) NodeJSON {
	out := NodeJSON{
		Kind:  n.Kind.String(),
		Field: n.Field.String(),
		Text:  n.Text,
		Start: n.Span.Start,
		End:   n.Span.End,
	}
	if len(n.Children) > 0 {
		out.Children = make([]NodeJSON, len(n.Children))
		for i, c := range n.Children {
			out.Children[i] = BuildNodeJSON(c)
		}
	}
	return out
}

func FormatTreeJSON(w io.Writer, root ast.Node) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildNodeJSON(root))
}

package ast

import "greet/internal/source"

// Node is a pointer-free, self-contained view of a subtree, convenient for
// serialization and for tests. It is built from the arenas on demand.
type Node struct {
	Kind     NodeKind
	Field    Field // slot in the parent; FieldNone for the root and anonymous children
	Span     source.Span
	Text     string // leaves only
	Children []Node
}

// Tree materializes the node view of a parsed file.
func (b *Builder) Tree(file FileID) Node {
	f := b.Files.Get(file)
	if f == nil {
		return Node{Kind: NodeSourceFile}
	}
	root := Node{
		Kind:     NodeSourceFile,
		Span:     f.Span,
		Children: make([]Node, 0, len(f.Decls)),
	}
	for _, id := range f.Decls {
		if d := b.Decls.Get(id); d != nil {
			root.Children = append(root.Children, b.declNode(d))
		}
	}
	return root
}

func (b *Builder) declNode(d *Decl) Node {
	n := Node{Kind: d.Kind, Span: d.Span}
	switch d.Kind {
	case NodeGreeting:
		n.Children = []Node{
			b.leafNode(d.Salutation, FieldSalutation),
			b.leafNode(d.Name, FieldName),
		}
	case NodeNameDefinition:
		n.Children = []Node{
			b.leafNode(d.Keyword, FieldNone),
			b.leafNode(d.Name, FieldName),
		}
	}
	return n
}

func (b *Builder) leafNode(id LeafID, field Field) Node {
	l := b.Leaves.Get(id)
	if l == nil {
		return Node{Field: field}
	}
	return Node{Kind: l.Kind, Field: field, Span: l.Span, Text: l.Text}
}

// ChildByField returns the first child filling field.
func (n Node) ChildByField(field Field) (Node, bool) {
	for _, c := range n.Children {
		if c.Field == field {
			return c, true
		}
	}
	return Node{}, false
}

// Walk visits n and its descendants depth-first in document order.
// Returning false from visit skips the children of that node.
func (n Node) Walk(visit func(n Node, depth int) bool) {
	n.walk(visit, 0)
}

func (n Node) walk(visit func(Node, int) bool, depth int) {
	if !visit(n, depth) {
		return
	}
	for _, c := range n.Children {
		c.walk(visit, depth+1)
	}
}

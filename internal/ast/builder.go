package ast

import (
	"greet/internal/source"
)

type Hints struct{ Files, Decls, Leaves uint }

// Builder owns the arenas of one or more parsed files.
// A Builder is not safe for concurrent mutation; each parse uses its own.
type Builder struct {
	Files  *Files
	Decls  *Decls
	Leaves *Leaves
}

func NewBuilder(hints Hints) *Builder {
	if hints.Files == 0 {
		hints.Files = 1
	}
	if hints.Decls == 0 {
		hints.Decls = 1 << 4
	}
	if hints.Leaves == 0 {
		hints.Leaves = 1 << 5
	}
	return &Builder{
		Files:  NewFiles(hints.Files),
		Decls:  NewDecls(hints.Decls),
		Leaves: NewLeaves(hints.Leaves),
	}
}

func (b *Builder) NewFile(sp source.Span) FileID {
	return b.Files.New(sp)
}

// NewLeaf allocates a terminal node.
func (b *Builder) NewLeaf(kind NodeKind, sp source.Span, text string) LeafID {
	return b.Leaves.New(kind, sp, text)
}

// NewGreeting builds a Greeting from its two fields.
// It refuses (NoDeclID, false) unless salutation is a Hello/Goodbye leaf,
// name is a Name leaf, and the salutation ends before the name starts.
func (b *Builder) NewGreeting(salutation, name LeafID) (DeclID, bool) {
	sal, nm := b.Leaves.Get(salutation), b.Leaves.Get(name)
	if sal == nil || nm == nil || !sal.Kind.IsSalutation() || nm.Kind != NodeName {
		return NoDeclID, false
	}
	if !sal.Span.Before(nm.Span) || sal.Span.File != nm.Span.File {
		return NoDeclID, false
	}
	return b.Decls.allocate(Decl{
		Kind:       NodeGreeting,
		Span:       sal.Span.Cover(nm.Span),
		Salutation: salutation,
		Name:       name,
	}), true
}

// NewNameDefinition builds a `name: X` definition; same ordering rules as NewGreeting.
func (b *Builder) NewNameDefinition(keyword, name LeafID) (DeclID, bool) {
	kw, nm := b.Leaves.Get(keyword), b.Leaves.Get(name)
	if kw == nil || nm == nil || kw.Kind != NodeNameKeyword || nm.Kind != NodeName {
		return NoDeclID, false
	}
	if !kw.Span.Before(nm.Span) || kw.Span.File != nm.Span.File {
		return NoDeclID, false
	}
	return b.Decls.allocate(Decl{
		Kind:    NodeNameDefinition,
		Span:    kw.Span.Cover(nm.Span),
		Keyword: keyword,
		Name:    name,
	}), true
}

// PushDecl appends decl to the file's children.
func (b *Builder) PushDecl(file FileID, decl DeclID) {
	f := b.Files.Get(file)
	f.Decls = append(f.Decls, decl)
}

// Greetings returns the Greeting declarations of file in document order.
func (b *Builder) Greetings(file FileID) []*Decl {
	f := b.Files.Get(file)
	if f == nil {
		return nil
	}
	out := make([]*Decl, 0, len(f.Decls))
	for _, id := range f.Decls {
		if d := b.Decls.Get(id); d != nil && d.Kind == NodeGreeting {
			out = append(out, d)
		}
	}
	return out
}

// LeafText returns the text of a leaf, or "" for NoLeafID.
func (b *Builder) LeafText(id LeafID) string {
	if l := b.Leaves.Get(id); l != nil {
		return l.Text
	}
	return ""
}

package ast

import "greet/internal/source"

// Decl is a top-level entry of a source file: a Greeting or a NameDefinition.
//
// Greeting: Salutation and Name are both set, in that order.
// NameDefinition: Keyword and Name are set, Salutation is NoLeafID.
type Decl struct {
	Kind       NodeKind
	Span       source.Span
	Salutation LeafID
	Keyword    LeafID
	Name       LeafID
}

type Decls struct {
	Arena *Arena[Decl]
}

func NewDecls(capHint uint) *Decls {
	return &Decls{Arena: NewArena[Decl](capHint)}
}

func (d *Decls) Get(id DeclID) *Decl {
	return d.Arena.Get(uint32(id))
}

func (d *Decls) allocate(decl Decl) DeclID {
	return DeclID(d.Arena.Allocate(decl))
}

package ast

import "greet/internal/source"

// Leaf is a terminal node: a salutation, a name or the "name:" keyword.
type Leaf struct {
	Kind NodeKind
	Span source.Span
	Text string
}

type Leaves struct {
	Arena *Arena[Leaf]
}

func NewLeaves(capHint uint) *Leaves {
	return &Leaves{Arena: NewArena[Leaf](capHint)}
}

func (l *Leaves) New(kind NodeKind, sp source.Span, text string) LeafID {
	return LeafID(l.Arena.Allocate(Leaf{Kind: kind, Span: sp, Text: text}))
}

func (l *Leaves) Get(id LeafID) *Leaf {
	return l.Arena.Get(uint32(id))
}

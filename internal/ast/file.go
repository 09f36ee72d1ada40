package ast

import "greet/internal/source"

// SourceFile is the root node. Its span covers the whole input.
type SourceFile struct {
	Span  source.Span
	Decls []DeclID
}

type Files struct {
	Arena *Arena[SourceFile]
}

func NewFiles(capHint uint) *Files {
	return &Files{Arena: NewArena[SourceFile](capHint)}
}

func (f *Files) New(sp source.Span) FileID {
	return FileID(f.Arena.Allocate(SourceFile{
		Span:  sp,
		Decls: make([]DeclID, 0),
	}))
}

func (f *Files) Get(id FileID) *SourceFile {
	return f.Arena.Get(uint32(id))
}

package ast

type (
	FileID uint32
	DeclID uint32
	LeafID uint32
)

const (
	NoFileID FileID = 0
	NoDeclID DeclID = 0
	NoLeafID LeafID = 0
)

func (id FileID) IsValid() bool { return id != NoFileID }
func (id DeclID) IsValid() bool { return id != NoDeclID }
func (id LeafID) IsValid() bool { return id != NoLeafID }

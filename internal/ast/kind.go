package ast

// NodeKind enumerates the node types of the syntax tree.
type NodeKind uint8

const (
	NodeSourceFile NodeKind = iota
	NodeGreeting
	NodeHello
	NodeGoodbye
	NodeName
	NodeNameDefinition
	NodeNameKeyword
)

var nodeKindNames = [...]struct{ camel, snake string }{
	NodeSourceFile:     {"SourceFile", "source_file"},
	NodeGreeting:       {"Greeting", "greeting"},
	NodeHello:          {"Hello", "hello"},
	NodeGoodbye:        {"Goodbye", "goodbye"},
	NodeName:           {"Name", "name"},
	NodeNameDefinition: {"NameDefinition", "name_definition"},
	NodeNameKeyword:    {"NameKeyword", "name_keyword"},
}

func (k NodeKind) String() string {
	if int(k) < len(nodeKindNames) {
		return nodeKindNames[k].camel
	}
	return "NodeKind(?)"
}

// RuleName is the snake_case rule name used in S-expression output.
func (k NodeKind) RuleName() string {
	if int(k) < len(nodeKindNames) {
		return nodeKindNames[k].snake
	}
	return "unknown"
}

// IsLeaf reports whether nodes of this kind carry text and no children.
func (k NodeKind) IsLeaf() bool {
	switch k {
	case NodeHello, NodeGoodbye, NodeName, NodeNameKeyword:
		return true
	default:
		return false
	}
}

// IsSalutation reports whether k may fill the salutation field.
func (k NodeKind) IsSalutation() bool {
	return k == NodeHello || k == NodeGoodbye
}

// Field names a child slot of its parent.
type Field uint8

const (
	FieldNone Field = iota
	FieldSalutation
	FieldName
)

func (f Field) String() string {
	switch f {
	case FieldSalutation:
		return "salutation"
	case FieldName:
		return "name"
	default:
		return ""
	}
}

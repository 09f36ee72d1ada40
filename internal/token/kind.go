package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid covers a run of input no terminal matched.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Hello is the "hello" salutation.
	Hello
	// Goodbye is the "goodbye" salutation.
	Goodbye
	// Name is a name word.
	Name
	// NameDecl is the "name:" keyword of name definitions.
	NameDecl
)

var kindNames = [...]string{
	Invalid:  "INVALID",
	EOF:      "EOF",
	Hello:    "HELLO",
	Goodbye:  "GOODBYE",
	Name:     "NAME",
	NameDecl: "NAME_DECL",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(?)"
}

// ParseKind maps a case-insensitive kind name ("hello", "NAME", ...) back to a Kind.
func ParseKind(s string) (Kind, bool) {
	for k, name := range kindNames {
		if equalFoldASCII(name, s) {
			return Kind(k), true // #nosec G115 -- kindNames is tiny
		}
	}
	return Invalid, false
}

// IsSalutation reports whether k can start a greeting.
func (k Kind) IsSalutation() bool {
	return k == Hello || k == Goodbye
}

func equalFoldASCII(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if 'A' <= ca && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if 'A' <= cb && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}

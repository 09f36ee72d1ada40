package token

import "greet/internal/source"

// TriviaKind classifies non-significant input.
type TriviaKind uint8

const (
	// TriviaSpace is a run of spaces, tabs and other non-newline whitespace.
	TriviaSpace TriviaKind = iota
	// TriviaNewline is a run of '\n'.
	TriviaNewline
)

func (k TriviaKind) String() string {
	switch k {
	case TriviaSpace:
		return "Space"
	case TriviaNewline:
		return "Newline"
	default:
		return "Trivia(?)"
	}
}

type Trivia struct {
	Kind TriviaKind
	Span source.Span
	Text string
}

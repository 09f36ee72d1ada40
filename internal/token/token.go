package token

import (
	"greet/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// IsSalutation reports whether the token is a salutation.
func (t Token) IsSalutation() bool { return t.Kind.IsSalutation() }

// HasLeadingSpace reports whether any whitespace precedes the token.
func (t Token) HasLeadingSpace() bool { return len(t.Leading) > 0 }

// HasLeadingNewline reports whether a line break precedes the token.
func (t Token) HasLeadingNewline() bool {
	for _, tr := range t.Leading {
		if tr.Kind == TriviaNewline {
			return true
		}
	}
	return false
}

package token_test

import (
	"testing"

	"greet/internal/source"
	"greet/internal/token"
)

func TestKindString(t *testing.T) {
	tests := map[token.Kind]string{
		token.Invalid:  "INVALID",
		token.EOF:      "EOF",
		token.Hello:    "HELLO",
		token.Goodbye:  "GOODBYE",
		token.Name:     "NAME",
		token.NameDecl: "NAME_DECL",
		token.Kind(99): "Kind(?)",
	}
	for k, want := range tests {
		if got := k.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", k, got, want)
		}
	}
}

func TestParseKind(t *testing.T) {
	for _, in := range []string{"hello", "HELLO", "Hello"} {
		if k, ok := token.ParseKind(in); !ok || k != token.Hello {
			t.Errorf("ParseKind(%q) = %v,%v", in, k, ok)
		}
	}
	if _, ok := token.ParseKind("hi"); ok {
		t.Error("ParseKind(hi) must fail")
	}
}

func TestLeadingTrivia(t *testing.T) {
	tok := token.Token{Kind: token.Name}
	if tok.HasLeadingSpace() || tok.HasLeadingNewline() {
		t.Fatal("token without trivia reports whitespace")
	}
	tok.Leading = []token.Trivia{
		{Kind: token.TriviaSpace, Span: source.Span{Start: 0, End: 1}, Text: " "},
		{Kind: token.TriviaNewline, Span: source.Span{Start: 1, End: 2}, Text: "\n"},
	}
	if !tok.HasLeadingSpace() || !tok.HasLeadingNewline() {
		t.Fatal("trivia not detected")
	}
	if !(token.Token{Kind: token.Goodbye}).IsSalutation() || (token.Token{Kind: token.Name}).IsSalutation() {
		t.Fatal("IsSalutation is wrong")
	}
}

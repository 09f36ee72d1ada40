package grammar

import (
	"fmt"
	"regexp"
	"strings"

	"greet/internal/token"
)

// Terminal is a single token rule.
type Terminal struct {
	Kind    token.Kind
	Pattern string // RE2 syntax, or the exact text when Literal
	Literal bool

	re *regexp.Regexp
}

// Regex builds a regular-expression terminal.
func Regex(kind token.Kind, pattern string) Terminal {
	return Terminal{Kind: kind, Pattern: pattern}
}

// Lit builds an exact-text terminal.
func Lit(kind token.Kind, text string) Terminal {
	return Terminal{Kind: kind, Pattern: text, Literal: true}
}

func (t *Terminal) compile() error {
	if t.Pattern == "" {
		return fmt.Errorf("terminal %s: empty pattern", t.Label())
	}
	if t.Literal {
		t.re = nil
		return nil
	}
	re, err := regexp.Compile(`^(?:` + t.Pattern + `)`)
	if err != nil {
		return fmt.Errorf("terminal %s: %w", t.Label(), err)
	}
	t.re = re
	return nil
}

// Label is the lower-case rule name used in grammar listings.
func (t *Terminal) Label() string {
	return strings.ToLower(t.Kind.String())
}

// Match returns the length of the match anchored at the start of src,
// or 0 when the terminal does not match. Empty matches count as no match.
func (t *Terminal) Match(src []byte) int {
	if t.Literal {
		if len(src) >= len(t.Pattern) && string(src[:len(t.Pattern)]) == t.Pattern {
			return len(t.Pattern)
		}
		return 0
	}
	if t.re == nil {
		return 0
	}
	loc := t.re.FindIndex(src)
	if loc == nil {
		return 0
	}
	return loc[1]
}

// MatchesAll reports whether text as a whole is produced by the terminal.
func (t *Terminal) MatchesAll(text string) bool {
	return text != "" && t.Match([]byte(text)) == len(text)
}

// Notation renders the terminal the way grammar listings show it.
func (t *Terminal) Notation() string {
	if t.Literal {
		return fmt.Sprintf("%q", t.Pattern)
	}
	return "/" + t.Pattern + "/"
}

package grammar

import (
	"errors"
	"fmt"
	"strings"

	"greet/internal/token"
)

// DeclKeyword introduces a name definition when Grammar.Declarations is set.
const DeclKeyword = "name:"

// Layout controls where the separator between salutation and name may break.
type Layout uint8

const (
	// LayoutAny accepts any whitespace, including newlines, between fields.
	LayoutAny Layout = iota
	// LayoutLine requires both fields of a greeting to sit on one line.
	LayoutLine
)

func (l Layout) String() string {
	switch l {
	case LayoutAny:
		return "any"
	case LayoutLine:
		return "line"
	default:
		return "unknown"
	}
}

// ParseLayout parses "any" or "line"; the empty string means LayoutAny.
func ParseLayout(s string) (Layout, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "any":
		return LayoutAny, nil
	case "line":
		return LayoutLine, nil
	default:
		return LayoutAny, fmt.Errorf("unknown layout %q (want any|line)", s)
	}
}

// Grammar is the rule table passed to the lexer and parser.
type Grammar struct {
	Name         string
	Salutations  []Terminal // ordered choice
	NameTerm     Terminal
	Declarations bool
	Layout       Layout

	compiled bool
}

var (
	errNoSalutations = errors.New("grammar has no salutation terminals")
	errNotCompiled   = errors.New("grammar is not compiled")
)

// Compile validates the table and returns a compiled copy; g itself is not modified.
func (g *Grammar) Compile() (*Grammar, error) {
	if g == nil {
		return nil, errors.New("nil grammar")
	}
	out := &Grammar{
		Name:         g.Name,
		Salutations:  append([]Terminal(nil), g.Salutations...),
		NameTerm:     g.NameTerm,
		Declarations: g.Declarations,
		Layout:       g.Layout,
	}
	if out.Name == "" {
		out.Name = "greet"
	}
	if len(out.Salutations) == 0 {
		return nil, errNoSalutations
	}
	for i := range out.Salutations {
		t := &out.Salutations[i]
		if !t.Kind.IsSalutation() {
			return nil, fmt.Errorf("salutation #%d: kind %s is not a salutation", i+1, t.Kind)
		}
		if err := t.compile(); err != nil {
			return nil, err
		}
	}
	if out.NameTerm.Kind != token.Name {
		return nil, fmt.Errorf("name terminal has kind %s, want %s", out.NameTerm.Kind, token.Name)
	}
	if err := out.NameTerm.compile(); err != nil {
		return nil, err
	}
	out.compiled = true
	return out, nil
}

// MustCompile is Compile that panics on error; meant for presets and tests.
func (g *Grammar) MustCompile() *Grammar {
	out, err := g.Compile()
	if err != nil {
		panic(err)
	}
	return out
}

// Compiled reports whether g came out of Compile.
func (g *Grammar) Compiled() bool {
	return g != nil && g.compiled
}

// Check returns an error unless g is ready for use by the lexer.
func (g *Grammar) Check() error {
	if !g.Compiled() {
		return errNotCompiled
	}
	return nil
}

// MatchSalutation tries the salutation terminals in order and returns the
// first one that matches at the start of src. Leftmost-first, not longest.
func (g *Grammar) MatchSalutation(src []byte) (token.Kind, int) {
	for i := range g.Salutations {
		if n := g.Salutations[i].Match(src); n > 0 {
			return g.Salutations[i].Kind, n
		}
	}
	return token.Invalid, 0
}

// IsName reports whether text is a complete name.
func (g *Grammar) IsName(text string) bool {
	return g.NameTerm.MatchesAll(text)
}

// Describe renders the rule table in a compact, tree-sitter-like notation.
func (g *Grammar) Describe() string {
	var b strings.Builder
	fmt.Fprintf(&b, "grammar %s (layout: %s)\n", g.Name, g.Layout)
	if g.Declarations {
		b.WriteString("  source_file     := (greeting | name_definition)*\n")
	} else {
		b.WriteString("  source_file     := greeting*\n")
	}

	labels := make([]string, 0, len(g.Salutations))
	seen := make(map[string]bool, len(g.Salutations))
	for i := range g.Salutations {
		l := g.Salutations[i].Label()
		if !seen[l] {
			seen[l] = true
			labels = append(labels, l)
		}
	}
	fmt.Fprintf(&b, "  greeting        := salutation: (%s) name: name\n", strings.Join(labels, " | "))
	if g.Declarations {
		fmt.Fprintf(&b, "  name_definition := %q name: name\n", DeclKeyword)
	}
	for _, l := range labels {
		alts := make([]string, 0, 2)
		for i := range g.Salutations {
			if g.Salutations[i].Label() == l {
				alts = append(alts, g.Salutations[i].Notation())
			}
		}
		fmt.Fprintf(&b, "  %-15s := %s\n", l, strings.Join(alts, " | "))
	}
	fmt.Fprintf(&b, "  %-15s := %s\n", "name", g.NameTerm.Notation())
	return b.String()
}

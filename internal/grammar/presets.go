package grammar

import (
	"fmt"
	"sort"

	"greet/internal/token"
)

// DefaultPreset is used when nothing else is configured.
const DefaultPreset = "regex"

var presets = map[string]func() *Grammar{
	"regex": func() *Grammar {
		return &Grammar{
			Name: "regex",
			Salutations: []Terminal{
				Regex(token.Hello, "[Hh]ello"),
				Regex(token.Goodbye, "[Gg]oodbye"),
			},
			NameTerm: Regex(token.Name, "[A-Za-z]+"),
		}
	},
	"literal": func() *Grammar {
		return &Grammar{
			Name: "literal",
			Salutations: []Terminal{
				Lit(token.Hello, "hello"),
				Lit(token.Goodbye, "goodbye"),
			},
			NameTerm: Regex(token.Name, "[A-Za-z]+"),
		}
	},
	"bob": func() *Grammar {
		return &Grammar{
			Name: "bob",
			Salutations: []Terminal{
				Regex(token.Hello, "[Hh]ello"),
				Regex(token.Goodbye, "[Gg]oodbye"),
			},
			NameTerm: Lit(token.Name, "Bob"),
		}
	},
	"lark": func() *Grammar {
		return &Grammar{
			Name: "lark",
			Salutations: []Terminal{
				Regex(token.Hello, "[Hh]ello"),
				Regex(token.Goodbye, "[Gg]oodbye"),
			},
			NameTerm:     Regex(token.Name, "[A-Za-z]+"),
			Declarations: true,
			Layout:       LayoutLine,
		}
	},
}

// Presets lists the preset names in sorted order.
func Presets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Preset returns an uncompiled copy of the named preset, ready to be tweaked.
func Preset(name string) (*Grammar, error) {
	mk, ok := presets[name]
	if !ok {
		return nil, fmt.Errorf("unknown grammar preset %q (known: %v)", name, Presets())
	}
	return mk(), nil
}

// Default returns the compiled default grammar.
func Default() *Grammar {
	return presets[DefaultPreset]().MustCompile()
}

// Package grammar holds the rule table of the greeting language as a plain value.
//
// A Grammar lists the salutation terminals in priority order (ordered choice:
// the first terminal that matches at a position wins), the terminal used for
// names, whether "name: X" definitions are accepted and how strictly
// separators are checked. The lexer and parser receive a *Grammar explicitly;
// there is no package-level grammar state.
//
// Presets reproduce the rule shapes the language went through:
//
//	regex    [Hh]ello | [Gg]oodbye, name [A-Za-z]+ (default)
//	literal  "hello" | "goodbye" string literals, name [A-Za-z]+
//	bob      [Hh]ello | [Gg]oodbye, name fixed to "Bob"
//	lark     regex terminals plus "name:" definitions, one entry per line
//
// A compiled Grammar is immutable and safe for concurrent use.
package grammar

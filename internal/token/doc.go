// Package token defines the lexical vocabulary of the greeting language.
//
// The set is deliberately tiny: two salutation kinds, names, the optional
// "name:" declaration keyword and the two sentinels Invalid and EOF.
// Whitespace is not a token; it is attached to the following token as
// leading Trivia so the parser can check separator rules without a second
// pass over the input.
package token

package parser

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// salutationSpelling checks whether text is a salutation written with the
// wrong letter case (HEllo, GOODBYE) and returns a spelling the grammar
// accepts. Only full-length salutation matches count.
// Casers keep state, so each call makes its own.
func (p *Parser) salutationSpelling(text string) (string, bool) {
	folded := cases.Fold().String(text)
	for _, cand := range []string{cases.Title(language.Und).String(folded), folded} {
		if cand == text {
			continue
		}
		if _, n := p.grammar.MatchSalutation([]byte(cand)); n == len(cand) {
			return cand, true
		}
	}
	return "", false
}

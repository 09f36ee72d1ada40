package parser

import (
	"fmt"

	"greet/internal/ast"
	"greet/internal/diag"
	"greet/internal/grammar"
	"greet/internal/source"
	"greet/internal/token"
)

// parseGreeting разбирает `salutation name`.
// Без имени Greeting не строится: репортим MissingField и съедаем только приветствие.
func (p *Parser) parseGreeting() {
	sal := p.advance()
	salLeaf := p.arenas.NewLeaf(leafKind(sal.Kind), sal.Span, sal.Text)

	next := p.lx.Peek()
	if !p.fillsName(next, true) {
		p.reportMissingName(sal, next, "greeting")
		return
	}
	name := p.advance()
	nameLeaf := p.arenas.NewLeaf(ast.NodeName, name.Span, name.Text)

	id, ok := p.arenas.NewGreeting(salLeaf, nameLeaf)
	if !ok {
		// лексер гарантирует порядок спанов; сюда попадать не должны
		p.report(diag.NewError(diag.SynMissingField, sal.Span.Tail(), "malformed greeting").WithField(ast.FieldName.String()))
		return
	}
	p.arenas.PushDecl(p.file, id)
	p.greetings++
}

// parseNameDefinition разбирает `name: X`; пробел после ключевого слова не обязателен.
func (p *Parser) parseNameDefinition() {
	kw := p.advance()
	kwLeaf := p.arenas.NewLeaf(ast.NodeNameKeyword, kw.Span, kw.Text)

	next := p.lx.Peek()
	if !p.fillsName(next, false) {
		p.reportMissingName(kw, next, "name definition")
		return
	}
	name := p.advance()
	nameLeaf := p.arenas.NewLeaf(ast.NodeName, name.Span, name.Text)
	if id, ok := p.arenas.NewNameDefinition(kwLeaf, nameLeaf); ok {
		p.arenas.PushDecl(p.file, id)
	}
}

// fillsName reports whether tok can stand in the name position right after
// the previous token. Any token whose text is a complete name qualifies, so
// `Goodbye Hello` greets someone called Hello.
func (p *Parser) fillsName(tok token.Token, needSeparator bool) bool {
	if tok.Kind == token.EOF || !p.grammar.IsName(tok.Text) {
		return false
	}
	if needSeparator && !tok.HasLeadingSpace() {
		return false
	}
	if p.grammar.Layout == grammar.LayoutLine && tok.HasLeadingNewline() {
		return false
	}
	return true
}

func (p *Parser) reportMissingName(head, next token.Token, what string) {
	at := head.Span.Tail()
	d := diag.NewError(diag.SynMissingField, at, fmt.Sprintf("%s is missing its name after %q", what, head.Text)).
		WithField(ast.FieldName.String()).
		WithNote(head.Span, what+" starts here")
	if !p.report(d) {
		return
	}

	switch {
	case next.Kind == token.EOF:
	case head.IsSalutation() && !next.HasLeadingSpace() && p.grammar.IsName(next.Text):
		// Helloworld: имя приклеено к приветствию
		p.report(diag.New(diag.SevInfo, diag.SynMissingSeparator, at,
			fmt.Sprintf("%q and %q must be separated by whitespace", head.Text, next.Text)).
			WithFix("insert a space", diag.FixEdit{Span: at, NewText: " "}))
	case p.grammar.Layout == grammar.LayoutLine && next.HasLeadingNewline() && p.grammar.IsName(next.Text):
		// пустой спан перед именем: само имя уйдёт в UnrecognizedInput
		p.report(diag.New(diag.SevInfo, diag.SynMissingSeparator, next.Span.Head(),
			fmt.Sprintf("grammar %s expects the name on the same line as %q", p.grammar.Name, head.Text)))
	}
}

// skipUnrecognized consumes the maximal run of adjacent tokens starting at
// the current one and reports it as a single UnrecognizedInput.
func (p *Parser) skipUnrecognized() {
	first := p.advance()
	sp := first.Span
	for {
		next := p.lx.Peek()
		if next.Kind == token.EOF || next.HasLeadingSpace() {
			break
		}
		sp = sp.Cover(p.advance().Span)
	}
	text := p.text(sp)

	d := diag.NewError(diag.SynUnrecognizedInput, sp, fmt.Sprintf("unrecognized input %q", text))
	if canonical, ok := p.salutationSpelling(text); ok {
		d = d.WithNote(sp, fmt.Sprintf("salutations are case-sensitive; did you mean %q?", canonical)).
			WithFix("use "+canonical, diag.FixEdit{Span: sp, NewText: canonical, OldText: text})
	}
	p.report(d)
}

func (p *Parser) text(sp source.Span) string {
	return string(p.lx.File().Content[sp.Start:sp.End])
}

func leafKind(k token.Kind) ast.NodeKind {
	if k == token.Goodbye {
		return ast.NodeGoodbye
	}
	return ast.NodeHello
}

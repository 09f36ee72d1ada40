package parser

import (
	"greet/internal/diag"
	"greet/internal/token"
)

// advance: съедает следующий токен
func (p *Parser) advance() token.Token {
	return p.lx.Next()
}

// report отдаёт диагностику репортеру с учётом MaxErrors.
// Возвращает false, если диагностика отброшена.
func (p *Parser) report(d diag.Diagnostic) bool {
	if p.opts.Reporter == nil || p.opts.Enough() {
		return false
	}
	if d.Severity == diag.SevError {
		p.opts.CurrentErrors++
	}
	p.opts.Reporter.Report(d)
	return true
}

package lexer

import (
	"fmt"

	"greet/internal/diag"
	"greet/internal/source"
)

type Options struct {
	// Reporter receives LexUnknownInput warnings for INVALID tokens.
	// May be nil; the parser reports unrecognized input itself, so the parse
	// pipeline leaves it unset.
	Reporter diag.Reporter
}

func (lx *Lexer) reportInvalid(sp source.Span, text string) {
	if lx.opts.Reporter == nil {
		return
	}
	diag.ReportWarning(lx.opts.Reporter, diag.LexUnknownInput, sp,
		fmt.Sprintf("no terminal of grammar %q matches %q", lx.grammar.Name, text)).Emit()
}

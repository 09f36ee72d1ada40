package lexer

import (
	"greet/internal/token"
)

// collectLeadingTrivia собирает подряд идущие пробелы перед значимым токеном.
//   - ' ', '\t', '\r', '\f', '\v' коалесцируются в один TriviaSpace
//   - подряд идущие '\n' коалесцируются в один TriviaNewline
func (lx *Lexer) collectLeadingTrivia() {
	lx.hold = nil
	for !lx.cursor.EOF() {
		start := lx.cursor.Mark()
		b := lx.cursor.Peek()

		var kind token.TriviaKind
		switch {
		case isInlineSpace(b):
			for isInlineSpace(lx.cursor.Peek()) {
				lx.cursor.Bump()
			}
			kind = token.TriviaSpace
		case b == '\n':
			for lx.cursor.Peek() == '\n' {
				lx.cursor.Bump()
			}
			kind = token.TriviaNewline
		default:
			return
		}

		sp := lx.cursor.SpanFrom(start)
		lx.hold = append(lx.hold, token.Trivia{
			Kind: kind,
			Span: sp,
			Text: string(lx.file.Content[sp.Start:sp.End]),
		})
	}
}

func isInlineSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\f' || b == '\v'
}

// IsSpace reports whether b separates tokens.
func IsSpace(b byte) bool {
	return b == '\n' || isInlineSpace(b)
}

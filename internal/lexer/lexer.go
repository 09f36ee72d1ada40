package lexer

import (
	"bytes"

	"greet/internal/grammar"
	"greet/internal/source"
	"greet/internal/token"
)

// Lexer turns a source file into tokens using the terminals of a Grammar.
type Lexer struct {
	file    *source.File
	grammar *grammar.Grammar
	cursor  Cursor
	opts    Options
	look    *token.Token   // одноэлементный буфер
	hold    []token.Trivia // накопленные leading trivia
}

// New creates a lexer; g must be compiled (see grammar.Grammar.Compile).
func New(file *source.File, g *grammar.Grammar, opts Options) *Lexer {
	if err := g.Check(); err != nil {
		panic(err)
	}
	return &Lexer{
		file:    file,
		grammar: g,
		cursor:  NewCursor(file),
		opts:    opts,
	}
}

// File returns the file being scanned.
func (lx *Lexer) File() *source.File { return lx.file }

// Grammar returns the rule table the lexer was built with.
func (lx *Lexer) Grammar() *grammar.Grammar { return lx.grammar }

// Next returns the next significant token with its leading trivia.
// After EOF it keeps returning EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	lx.collectLeadingTrivia()

	if lx.cursor.EOF() {
		// trivia перед EOF не нужна парсеру, но пригодится tokenize
		return token.Token{Kind: token.EOF, Span: lx.EmptySpan(), Leading: lx.takeHold()}
	}

	tok := lx.scanToken()
	tok.Leading = lx.takeHold()
	return tok
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() token.Token {
	if lx.look != nil {
		return *lx.look
	}
	t := lx.Next()
	lx.look = &t
	return t
}

// EmptySpan is the empty span at the current offset.
func (lx *Lexer) EmptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

// All drains the lexer up to and including EOF.
func (lx *Lexer) All() []token.Token {
	var out []token.Token
	for {
		tok := lx.Next()
		out = append(out, tok)
		if tok.Kind == token.EOF {
			return out
		}
	}
}

func (lx *Lexer) takeHold() []token.Trivia {
	h := lx.hold
	lx.hold = nil
	return h
}

// scanToken classifies the input at the cursor, which is not whitespace.
// Order: salutations (first match wins), "name:" when enabled, the name
// terminal, otherwise an INVALID run up to the next whitespace.
func (lx *Lexer) scanToken() token.Token {
	start := lx.cursor.Mark()
	rest := lx.cursor.Rest()

	kind, n := lx.grammar.MatchSalutation(rest)
	switch {
	case n > 0:
	case lx.grammar.Declarations && bytes.HasPrefix(rest, []byte(grammar.DeclKeyword)):
		kind, n = token.NameDecl, len(grammar.DeclKeyword)
	default:
		if n = lx.grammar.NameTerm.Match(rest); n > 0 {
			kind = token.Name
		}
	}

	if n > 0 {
		lx.cursor.Advance(n)
		return lx.makeToken(kind, start)
	}

	// ничего не подошло, съедаем всё до пробела
	for !lx.cursor.EOF() && !IsSpace(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	tok := lx.makeToken(token.Invalid, start)
	lx.reportInvalid(tok.Span, tok.Text)
	return tok
}

func (lx *Lexer) makeToken(kind token.Kind, start Mark) token.Token {
	sp := lx.cursor.SpanFrom(start)
	return token.Token{
		Kind: kind,
		Span: sp,
		Text: string(lx.file.Content[sp.Start:sp.End]),
	}
}

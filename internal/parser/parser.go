package parser

import (
	"context"

	"fortio.org/safecast"

	"greet/internal/ast"
	"greet/internal/diag"
	"greet/internal/grammar"
	"greet/internal/lexer"
	"greet/internal/source"
	"greet/internal/token"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough - проверить, достигли ли мы максимального количества ошибок
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	File ast.FileID
	Bag  *diag.Bag
	// Greetings is the number of Greeting nodes appended to File.
	Greetings int
	// Cancelled is set when ctx stopped the parse before EOF.
	Cancelled bool
}

// Parser: состояние парсера на один файл
type Parser struct {
	lx        *lexer.Lexer
	grammar   *grammar.Grammar
	arenas    *ast.Builder
	file      ast.FileID
	fs        *source.FileSet // нужен только для путей при надобности
	opts      Options
	greetings int
}

// ParseFile parses the whole file behind lx and always returns a SourceFile,
// even for garbage input. Problems are reported through opts.Reporter.
func ParseFile(
	ctx context.Context,
	fs *source.FileSet,
	lx *lexer.Lexer,
	arenas *ast.Builder,
	opts Options,
) Result {
	p := Parser{
		lx:      lx,
		grammar: lx.Grammar(),
		arenas:  arenas,
		file:    arenas.NewFile(fileSpan(lx.File())),
		fs:      fs,
		opts:    opts,
	}

	cancelled := p.parseDecls(ctx)

	var bag *diag.Bag
	switch r := opts.Reporter.(type) {
	case *diag.BagReporter:
		bag = r.Bag
	case diag.BagReporter:
		bag = r.Bag
	}
	return Result{
		File:      p.file,
		Bag:       bag,
		Greetings: p.greetings,
		Cancelled: cancelled,
	}
}

// Parse is the one-shot entry point: it parses input as a virtual file
// called name and returns the tree together with every diagnostic, in
// source order.
func Parse(ctx context.Context, g *grammar.Grammar, name string, input []byte) (*ast.Builder, ast.FileID, []diag.Diagnostic) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual(name, input)
	file := fs.Get(fileID)

	bag := diag.NewBag(0)
	lx := lexer.New(file, g, lexer.Options{})
	builder := ast.NewBuilder(ast.Hints{})
	res := ParseFile(ctx, fs, lx, builder, Options{Reporter: &diag.BagReporter{Bag: bag}})
	return builder, res.File, bag.Items()
}

func fileSpan(f *source.File) source.Span {
	end, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(err)
	}
	return source.Span{File: f.ID, Start: 0, End: end}
}

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

// parseDecls: основной цикл: пока не EOF выбираем разбор по первому токену.
// Every branch consumes at least one token, so the loop terminates.
func (p *Parser) parseDecls(ctx context.Context) (cancelled bool) {
	for !p.at(token.EOF) {
		if ctx.Err() != nil {
			return true
		}
		switch p.lx.Peek().Kind {
		case token.Hello, token.Goodbye:
			p.parseGreeting()
		case token.NameDecl:
			p.parseNameDefinition()
		default:
			p.skipUnrecognized()
		}
	}
	return false
}

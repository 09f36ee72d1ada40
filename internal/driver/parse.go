package driver

import (
	"context"

	"fortio.org/safecast"

	"greet/internal/ast"
	"greet/internal/diag"
	"greet/internal/grammar"
	"greet/internal/lexer"
	"greet/internal/parser"
	"greet/internal/source"
)

type ParseResult struct {
	FileSet   *source.FileSet
	File      *source.File
	Builder   *ast.Builder
	FileID    ast.FileID
	Bag       *diag.Bag
	Greetings int
}

// Parse loads and parses a single file.
func Parse(ctx context.Context, filePath string, g *grammar.Grammar, maxDiagnostics int) (*ParseResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(filePath)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)

	out, err := parseLoaded(ctx, fs, file, g, maxDiagnostics)
	if err != nil {
		return nil, err
	}
	return &ParseResult{
		FileSet:   fs,
		File:      file,
		Builder:   out.builder,
		FileID:    out.res.File,
		Bag:       out.bag,
		Greetings: out.res.Greetings,
	}, nil
}

type parsedFile struct {
	builder *ast.Builder
	res     parser.Result
	bag     *diag.Bag
}

// parseLoaded parses a file that is already in fs. Each call owns its
// builder and bag, so calls may run concurrently on one FileSet.
func parseLoaded(ctx context.Context, fs *source.FileSet, file *source.File, g *grammar.Grammar, maxDiagnostics int) (parsedFile, error) {
	maxErrors, err := safecast.Conv[uint](max(maxDiagnostics, 0))
	if err != nil {
		return parsedFile{}, err
	}

	bag := diag.NewBag(maxDiagnostics)
	builder := ast.NewBuilder(ast.Hints{})
	lx := lexer.New(file, g, lexer.Options{})
	res := parser.ParseFile(ctx, fs, lx, builder, parser.Options{
		Reporter:  &diag.BagReporter{Bag: bag},
		MaxErrors: maxErrors,
	})
	if res.Cancelled {
		return parsedFile{}, ctx.Err()
	}
	return parsedFile{builder: builder, res: res, bag: bag}, nil
}

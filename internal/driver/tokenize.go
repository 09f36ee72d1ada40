package driver

import (
	"greet/internal/diag"
	"greet/internal/grammar"
	"greet/internal/lexer"
	"greet/internal/source"
	"greet/internal/token"
)

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
}

// Tokenize lexes one file with g. Input that matches no terminal is reported
// as LEX1001 warnings in Bag.
func Tokenize(path string, g *grammar.Grammar, maxDiagnostics int) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)

	bag := diag.NewBag(maxDiagnostics)
	// одинаковые LEX1001 на одном месте сворачиваются в один
	reporter := diag.NewDedupReporter(&diag.BagReporter{Bag: bag})
	lx := lexer.New(file, g, lexer.Options{Reporter: reporter})

	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  lx.All(),
		Bag:     bag,
	}, nil
}

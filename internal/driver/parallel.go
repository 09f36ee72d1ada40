package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"greet/internal/ast"
	"greet/internal/diag"
	"greet/internal/grammar"
	"greet/internal/pipeline"
	"greet/internal/source"
)

// SourceExt is the extension of greeting source files.
const SourceExt = ".greet"

// ParseDirResult содержит результат парсинга одного файла
type ParseDirResult struct {
	Path      string        // путь к файлу
	FileID    source.FileID // ID файла в FileSet
	Builder   *ast.Builder  // nil, если файл не загрузился
	ASTFile   ast.FileID
	Bag       *diag.Bag
	Greetings int
}

// ListGreetFiles возвращает отсортированный список всех *.greet файлов в директории
func ListGreetFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, SourceExt) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// loadAll loads files into a fresh FileSet. Files that fail to load are
// registered as empty virtual files so that the IO4001 diagnostic still has
// a path to point at.
func loadAll(base string, files []string) (*source.FileSet, []source.FileID, []error) {
	fileSet := source.NewFileSetWithBase(base)
	ids := make([]source.FileID, len(files))
	errs := make([]error, len(files))
	for i, path := range files {
		id, err := fileSet.Load(path)
		if err != nil {
			id = fileSet.AddVirtual(path, nil)
			errs[i] = err
		}
		ids[i] = id
	}
	return fileSet, ids, errs
}

func loadErrorBag(fileID source.FileID, maxDiagnostics int, err error) *diag.Bag {
	bag := diag.NewBag(maxDiagnostics)
	bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{File: fileID}, "failed to load file: "+err.Error()))
	return bag
}

func jobLimit(jobs, files int) int {
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	return max(1, min(jobs, files))
}

// ParseDir парсит все *.greet файлы в директории параллельно.
// Results follow the sorted file order. Progress goes to sink, which may be nil.
func ParseDir(
	ctx context.Context,
	dir string,
	g *grammar.Grammar,
	maxDiagnostics, jobs int,
	sink pipeline.ProgressSink,
) (*source.FileSet, []ParseDirResult, error) {
	files, err := ListGreetFiles(dir)
	if err != nil {
		return nil, nil, err
	}
	if len(files) == 0 {
		return source.NewFileSetWithBase(dir), nil, nil
	}

	fileSet, fileIDs, loadErrs := loadAll(dir, files)
	for _, path := range files {
		pipeline.Emit(sink, pipeline.Event{File: path, Stage: pipeline.StageLoad, Status: pipeline.StatusQueued})
	}

	// Результаты (индексы уникальны для каждой горутины, мьютекс не нужен)
	results := make([]ParseDirResult, len(files))

	eg, gctx := errgroup.WithContext(ctx)
	eg.SetLimit(jobLimit(jobs, len(files)))

	for i, path := range files {
		eg.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = ParseDirResult{Path: path, FileID: fileIDs[i]}

			if loadErrs[i] != nil {
				results[i].Bag = loadErrorBag(fileIDs[i], maxDiagnostics, loadErrs[i])
				pipeline.Emit(sink, pipeline.Event{File: path, Stage: pipeline.StageLoad, Status: pipeline.StatusError, Err: loadErrs[i]})
				return nil
			}

			start := time.Now()
			pipeline.Emit(sink, pipeline.Event{File: path, Stage: pipeline.StageParse, Status: pipeline.StatusWorking})
			out, err := parseLoaded(gctx, fileSet, fileSet.Get(fileIDs[i]), g, maxDiagnostics)
			if err != nil {
				pipeline.Emit(sink, pipeline.Event{File: path, Stage: pipeline.StageParse, Status: pipeline.StatusError, Err: err})
				return err
			}

			results[i].Builder = out.builder
			results[i].ASTFile = out.res.File
			results[i].Bag = out.bag
			results[i].Greetings = out.res.Greetings
			pipeline.Emit(sink, pipeline.Event{File: path, Stage: pipeline.StageParse, Status: pipeline.StatusDone, Elapsed: time.Since(start)})
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, nil, err
	}
	return fileSet, results, nil
}

package driver

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"greet/internal/diag"
	"greet/internal/grammar"
	"greet/internal/observ"
	"greet/internal/pipeline"
	"greet/internal/source"
)

// DiagnoseOptions содержит опции для диагностики
type DiagnoseOptions struct {
	MaxDiagnostics int
	Jobs           int
	// Cache may be nil; then every file is parsed.
	Cache         *DiskCache
	EnableTimings bool
	Sink          pipeline.ProgressSink
}

// FileReport is the diagnose outcome for one file.
type FileReport struct {
	Path      string
	FileID    source.FileID
	Bag       *diag.Bag
	Greetings int
	Cached    bool
	Timing    observ.Report
}

type DiagnoseResult struct {
	FileSet *source.FileSet
	Files   []FileReport
}

// HasErrors reports whether any file produced an error diagnostic.
func (r *DiagnoseResult) HasErrors() bool {
	for i := range r.Files {
		if r.Files[i].Bag.HasErrors() {
			return true
		}
	}
	return false
}

// Merged collects every diagnostic into one sorted bag without duplicates.
func (r *DiagnoseResult) Merged() *diag.Bag {
	out := diag.NewBag(0)
	for i := range r.Files {
		out.Merge(r.Files[i].Bag)
	}
	out.Sort()
	out.Dedup()
	return out
}

// Greetings is the total number of greetings over all files.
func (r *DiagnoseResult) Greetings() int {
	n := 0
	for i := range r.Files {
		n += r.Files[i].Greetings
	}
	return n
}

// Diagnose checks a single file or every *.greet file under a directory.
func Diagnose(ctx context.Context, target string, g *grammar.Grammar, opts DiagnoseOptions) (*DiagnoseResult, error) {
	info, err := os.Stat(target)
	if err != nil {
		return nil, err
	}

	var files []string
	base := filepath.Dir(target)
	if info.IsDir() {
		base = target
		if files, err = ListGreetFiles(target); err != nil {
			return nil, err
		}
	} else {
		files = []string{target}
	}

	fileSet, fileIDs, loadErrs := loadAll(base, files)
	reports := make([]FileReport, len(files))
	for _, path := range files {
		pipeline.Emit(opts.Sink, pipeline.Event{File: path, Stage: pipeline.StageLoad, Status: pipeline.StatusQueued})
	}

	eg, gctx := errgroup.WithContext(ctx)
	eg.SetLimit(jobLimit(opts.Jobs, len(files)))
	for i, path := range files {
		eg.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			reports[i] = FileReport{Path: path, FileID: fileIDs[i]}
			if loadErrs[i] != nil {
				reports[i].Bag = loadErrorBag(fileIDs[i], opts.MaxDiagnostics, loadErrs[i])
				pipeline.Emit(opts.Sink, pipeline.Event{File: path, Stage: pipeline.StageLoad, Status: pipeline.StatusError, Err: loadErrs[i]})
				return nil
			}
			return diagnoseFile(gctx, fileSet, fileSet.Get(fileIDs[i]), g, &opts, &reports[i])
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return &DiagnoseResult{FileSet: fileSet, Files: reports}, nil
}

func diagnoseFile(ctx context.Context, fs *source.FileSet, file *source.File, g *grammar.Grammar, opts *DiagnoseOptions, rep *FileReport) error {
	start := time.Now()
	timer := observ.NewTimer()
	key := CacheKey(g, opts.MaxDiagnostics, file)

	if opts.Cache != nil {
		var cached Summary
		idx := timer.Begin("cache")
		hit, err := opts.Cache.Get(key, &cached)
		timer.End(idx, fmt.Sprintf("hit=%t", hit))
		if err == nil && hit {
			rep.Bag = diag.NewBag(opts.MaxDiagnostics)
			cached.replay(file.ID, rep.Bag)
			rep.Greetings = cached.Greetings
			rep.Cached = true
			finishTiming(rep, timer, opts.EnableTimings)
			pipeline.Emit(opts.Sink, pipeline.Event{File: rep.Path, Stage: pipeline.StageCache, Status: pipeline.StatusCached, Elapsed: time.Since(start)})
			return nil
		}
		// битый кэш не мешает разбору
	}

	pipeline.Emit(opts.Sink, pipeline.Event{File: rep.Path, Stage: pipeline.StageParse, Status: pipeline.StatusWorking})
	idx := timer.Begin("parse")
	out, err := parseLoaded(ctx, fs, file, g, opts.MaxDiagnostics)
	if err != nil {
		pipeline.Emit(opts.Sink, pipeline.Event{File: rep.Path, Stage: pipeline.StageParse, Status: pipeline.StatusError, Err: err})
		return err
	}
	timer.End(idx, fmt.Sprintf("%d greetings", out.res.Greetings))
	rep.Bag = out.bag
	rep.Greetings = out.res.Greetings

	if opts.Cache != nil {
		idx = timer.Begin("cache-store")
		err := opts.Cache.Put(key, summarize(g, out.res.Greetings, out.bag))
		timer.End(idx, "")
		if err != nil {
			pipeline.Emit(opts.Sink, pipeline.Event{File: rep.Path, Stage: pipeline.StageCache, Status: pipeline.StatusError, Err: err})
		}
	}

	finishTiming(rep, timer, opts.EnableTimings)
	pipeline.Emit(opts.Sink, pipeline.Event{File: rep.Path, Stage: pipeline.StageParse, Status: pipeline.StatusDone, Elapsed: time.Since(start)})
	return nil
}

func finishTiming(rep *FileReport, timer *observ.Timer, enabled bool) {
	rep.Timing = timer.Report()
	if enabled {
		appendTimingDiagnostic(rep.Bag, rep.FileID, timingPayload{
			Kind:    "file",
			Path:    rep.Path,
			TotalMS: rep.Timing.TotalMS,
			Phases:  rep.Timing.Phases,
		})
	}
}

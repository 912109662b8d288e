package basm

import (
	"context"
	"log/slog"
	"runtime"
	"sync"
)

// FileResult is the outcome of compiling one file.
// Exactly one of Tree and Err is set.
type FileResult struct {
	Path string
	Tree *Node
	Err  error
}

// CompileAll compiles every file of src in parallel. Files are independent
// pipeline runs; a failing file does not stop the others. Results are
// returned in path order. The returned error is only set when the source
// cannot be listed or ctx is cancelled.
//
// Example:
//
//	src, err := basm.DirTree("./projects")
//	results, err := basm.CompileAll(ctx, src)
//	for _, r := range results {
//	    if r.Err != nil {
//	        fmt.Println(r.Path, r.Err)
//	    }
//	}
func CompileAll(ctx context.Context, src Source, opts ...Option) ([]FileResult, error) {
	if src == nil {
		return nil, ErrNoSources
	}
	cfg := newConfig(opts)
	logger := cfg.logger

	files, err := src.ListFiles()
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, nil
	}

	if logEnabled(logger, slog.LevelInfo) {
		logger.LogAttrs(ctx, slog.LevelInfo, "parallel compile",
			slog.Int("files", len(files)))
	}

	workers := cfg.concurrency
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	// Each goroutine owns one slot, so results stay in path order.
	results := make([]FileResult, len(files))
	var wg sync.WaitGroup
	sem := make(chan struct{}, workers)

	for i, file := range files {
		wg.Add(1)
		go func(i int, path string) {
			defer wg.Done()

			select {
			case <-ctx.Done():
				return
			case sem <- struct{}{}:
			}
			defer func() { <-sem }()

			if ctx.Err() != nil {
				return
			}
			results[i] = compileFile(src, path, cfg)
		}(i, file)
	}
	wg.Wait()

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	if logEnabled(logger, slog.LevelInfo) {
		failed := 0
		for _, r := range results {
			if r.Err != nil {
				failed++
			}
		}
		logger.LogAttrs(ctx, slog.LevelInfo, "parallel compile complete",
			slog.Int("files", len(results)),
			slog.Int("failed", failed))
	}
	return results, nil
}

func compileFile(src Source, path string, cfg compileConfig) FileResult {
	fileCfg := cfg
	if cfg.logger != nil {
		fileCfg.logger = cfg.logger.With(slog.String("file", path))
	}

	content, err := ReadSource(src, path)
	if err != nil {
		return FileResult{Path: path, Err: err}
	}
	tree, err := compile(content, fileCfg)
	if err != nil {
		return FileResult{Path: path, Err: err}
	}
	return FileResult{Path: path, Tree: tree}
}

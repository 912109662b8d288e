package basm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/kytekode/basm/internal/lexer"
	"github.com/kytekode/basm/internal/parser"
	"github.com/kytekode/basm/internal/scanner"
	"github.com/kytekode/basm/internal/types"
)

// ErrNoSources is returned when CompileAll is called without a source.
var ErrNoSources = errors.New("no Block-ASM sources provided")

// LevelTrace is a custom log level more verbose than Debug.
// Use for per-item iteration logging (symbols, tokens, context changes).
// Enable with: &slog.HandlerOptions{Level: slog.Level(-8)}
const LevelTrace = types.LevelTrace

// Option configures Scan, Tokenize, Compile and CompileAll.
type Option func(*compileConfig)

type compileConfig struct {
	logger      *slog.Logger
	extensions  []string
	concurrency int
}

func newConfig(opts []Option) compileConfig {
	cfg := compileConfig{
		extensions: DefaultExtensions,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithLogger sets the logger for debug/trace output.
// If not set, no logging occurs (zero overhead).
func WithLogger(logger *slog.Logger) Option {
	return func(c *compileConfig) { c.logger = logger }
}

// WithConcurrency limits how many files CompileAll processes at once.
// Zero or a negative value means one per CPU.
func WithConcurrency(n int) Option {
	return func(c *compileConfig) { c.concurrency = n }
}

// DiagnosticsError reports that a pipeline stage produced diagnostics.
// It carries every diagnostic of the failing stage in source order.
type DiagnosticsError struct {
	Stage       Stage
	Diagnostics []Diagnostic
}

func (e *DiagnosticsError) Error() string {
	if len(e.Diagnostics) == 1 {
		return fmt.Sprintf("%s: %s", e.Stage, e.Diagnostics[0])
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %d diagnostics", e.Stage, len(e.Diagnostics))
	for _, d := range e.Diagnostics {
		b.WriteString("\n  ")
		b.WriteString(d.String())
	}
	return b.String()
}

// Diagnostics extracts the diagnostics carried by err, if any.
func Diagnostics(err error) []Diagnostic {
	var de *DiagnosticsError
	if errors.As(err, &de) {
		return de.Diagnostics
	}
	return nil
}

// Scan splits source into symbols.
//
// Example:
//
//	symbols, err := basm.Scan(`sem_ver "3.0.0"`)
func Scan(source string, opts ...Option) ([]Symbol, error) {
	cfg := newConfig(opts)
	return scan(source, cfg)
}

// Tokenize scans and classifies source.
func Tokenize(source string, opts ...Option) ([]Token, error) {
	cfg := newConfig(opts)
	symbols, err := scan(source, cfg)
	if err != nil {
		return nil, err
	}
	return classify(symbols, cfg)
}

// Compile runs the whole front end over source and returns the syntax tree.
// The first stage that reports diagnostics stops the pipeline; its
// diagnostics are returned in a *DiagnosticsError and no tree is produced.
//
// Example:
//
//	tree, err := basm.Compile(src, basm.WithLogger(slog.Default()))
//	if err != nil {
//	    for _, d := range basm.Diagnostics(err) {
//	        fmt.Println(d)
//	    }
//	}
func Compile(source string, opts ...Option) (*Node, error) {
	cfg := newConfig(opts)
	return compile(source, cfg)
}

func compile(source string, cfg compileConfig) (*Node, error) {
	symbols, err := scan(source, cfg)
	if err != nil {
		return nil, err
	}
	tokens, err := classify(symbols, cfg)
	if err != nil {
		return nil, err
	}

	p := parser.New(tokens, types.ComponentLogger(cfg.logger, "parser"))
	root, diags := p.Parse()
	if len(diags) > 0 {
		return nil, stageError(types.StageParse, diags)
	}
	if logEnabled(cfg.logger, slog.LevelDebug) {
		cfg.logger.LogAttrs(context.Background(), slog.LevelDebug, "compile complete",
			slog.Int("nodes", root.Count()))
	}
	return root, nil
}

func scan(source string, cfg compileConfig) ([]Symbol, error) {
	s := scanner.New(source, types.ComponentLogger(cfg.logger, "scanner"))
	symbols, diags := s.Scan()
	if len(diags) > 0 {
		return nil, stageError(types.StageScan, diags)
	}
	return symbols, nil
}

func classify(symbols []Symbol, cfg compileConfig) ([]Token, error) {
	l := lexer.New(symbols, types.ComponentLogger(cfg.logger, "lexer"))
	tokens, diags := l.Tokenize()
	if len(diags) > 0 {
		return nil, stageError(types.StageClassify, diags)
	}
	return tokens, nil
}

func stageError(stage Stage, diags []Diagnostic) error {
	return &DiagnosticsError{Stage: stage, Diagnostics: diags}
}

// logEnabled returns true if logging is enabled at the given level.
func logEnabled(logger *slog.Logger, level slog.Level) bool {
	return logger != nil && logger.Enabled(context.Background(), level)
}

package main

import (
	"context"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kytekode/basm"
	"github.com/kytekode/basm/cmd/internal/cliutil"
	"github.com/kytekode/basm/internal/render"
	"github.com/kytekode/basm/internal/types"
)

// compileFile runs the pipeline over one file and emits the requested output.
func (c *cli) compileFile(path string, outputType OutputType, opts []basm.Option) error {
	src, err := basm.File(path)
	if err != nil {
		return userErrorf("Could not read source at path `%s`", path)
	}
	source, err := basm.ReadSource(src, path)
	if err != nil {
		return userErrorf("Could not read source at path `%s`", path)
	}

	switch outputType {
	case OutputLexed:
		tokens, err := basm.Tokenize(source, opts...)
		if err != nil {
			return c.report(err)
		}
		return c.emit(func(w io.Writer) error { return render.Tokens(w, tokens, c.cfg.Format) })

	case OutputParsed:
		tree, err := basm.Compile(source, opts...)
		if err != nil {
			return c.report(err)
		}
		return c.emit(func(w io.Writer) error { return render.Tree(w, tree, c.cfg.Format) })

	default:
		if _, err := basm.Compile(source, opts...); err != nil {
			return c.report(err)
		}
		if strings.HasSuffix(strings.ToLower(c.cfg.Output), ".sb3") {
			return userErrorf("Project archive output is not supported yet: `%s`", c.cfg.Output)
		}
		fmt.Fprintf(c.stdout, "%s: ok\n", path)
		return nil
	}
}

// checkTree compiles every Block-ASM file below dir.
func (c *cli) checkTree(cmd *cobra.Command, dir string, opts []basm.Option) error {
	src, err := basm.DirTree(dir, basm.WithExtensions(c.cfg.Extensions...))
	if err != nil {
		return userErrorf("Could not read source at path `%s`", dir)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	results, err := basm.CompileAll(ctx, src, opts...)
	if err != nil {
		return err
	}

	failed := 0
	var reported []basm.Diagnostic
	for _, r := range results {
		if r.Err == nil {
			continue
		}
		failed++
		fmt.Fprintf(c.stderr, "%s:\n", r.Path)
		if diags := basm.Diagnostics(r.Err); diags != nil {
			diags = c.cfg.Visible(diags)
			reported = append(reported, diags...)
			c.errorPrinter().Diagnostics(diags)
		} else {
			c.errorPrinter().Errorf("%s", displayMessage(r.Err))
		}
	}

	fmt.Fprintf(c.stdout, "checked %d files, %d failed\n", len(results), failed)
	writeCodeCounts(c.stdout, reported)
	if failed > 0 {
		return errReported
	}
	return nil
}

// writeCodeCounts writes one "  code: count" line per diagnostic code,
// sorted by code.
func writeCodeCounts(w io.Writer, diags []basm.Diagnostic) {
	counts := types.CountCodes(diags)
	for _, code := range slices.Sorted(maps.Keys(counts)) {
		fmt.Fprintf(w, "  %s: %d\n", code, counts[code])
	}
}

// report prints the diagnostics carried by err.
func (c *cli) report(err error) error {
	diags := basm.Diagnostics(err)
	if diags == nil {
		return err
	}
	c.errorPrinter().Diagnostics(c.cfg.Visible(diags))
	return errReported
}

// emit writes a dump to the configured output.
func (c *cli) emit(write func(w io.Writer) error) error {
	w, closeFn, err := cliutil.GetOutput(c.cfg.Output, c.stdout)
	if err != nil {
		return userErrorf("Could not create output `%s`: %w", c.cfg.Output, err)
	}
	if err := write(w); err != nil {
		_ = closeFn()
		return err
	}
	return closeFn()
}

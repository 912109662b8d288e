// Command basm checks Block-ASM sources and dumps their tokens or syntax tree.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kytekode/basm"
	"github.com/kytekode/basm/cmd/internal/cliutil"
	"github.com/kytekode/basm/internal/config"
	"github.com/kytekode/basm/internal/render"
)

// Exit codes.
const (
	exitOK    = 0 // success
	exitError = 1 // any diagnostic, at any layer
)

// TargetFormat is the project format the compiler targets.
const TargetFormat = "Scratch 3.0"

// OutputType selects what the command emits.
type OutputType int

const (
	OutputSB3 OutputType = iota
	OutputLexed
	OutputParsed
)

func (o OutputType) String() string {
	switch o {
	case OutputSB3:
		return "sb3"
	case OutputLexed:
		return "lexed"
	case OutputParsed:
		return "parsed"
	default:
		return "unknown"
	}
}

// errUndeterminedOutput is reported when both -L and -P are given.
var errUndeterminedOutput = userErrorf("Cannot determine whether to output parsed or lexed data")

type cli struct {
	stdout io.Writer
	stderr io.Writer

	output     string
	version    bool
	verbose    int
	lexed      bool
	parsed     bool
	format     string
	configFile string
	noColor    bool
	only       []string

	cfg     *config.Config
	printer *render.Printer
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	c := &cli{stdout: stdout, stderr: stderr}
	cmd := c.command()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.Execute()
	if err == nil {
		return exitOK
	}
	if !errors.Is(err, errReported) {
		c.errorPrinter().Errorf("%s", displayMessage(err))
	}
	return exitError
}

// errReported marks a failure whose messages were already printed.
var errReported = errors.New("diagnostics reported")

func (c *cli) command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "basm <source> [flags]",
		Short: "Block-ASM compiler front end",
		Long: `basm scans, classifies and parses a Block-ASM source file.

Without -L or -P the source is checked and every diagnostic of the first
failing stage is reported. A directory argument checks every Block-ASM file
below it.`,
		Example: `  basm game.basm
  basm game.basm -L
  basm game.basm -P --format json -o tree.json
  basm ./projects -v`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) > 1 {
				return userErrorf("Unknown terminal argument `%s`", args[1])
			}
			return nil
		},
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.execute(cmd, args)
		},
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return unknownArgument(err)
	})

	flags := cmd.Flags()
	flags.StringVarP(&c.output, "output", "o", "", "output file name (stdout when empty or -)")
	flags.BoolVar(&c.version, "version", false, "print the tool and target format version")
	flags.CountVarP(&c.verbose, "verbose", "v", "increase diagnostic verbosity (-v debug, -vv trace)")
	flags.BoolVarP(&c.lexed, "lexed", "L", false, "emit the token sequence")
	flags.BoolVarP(&c.parsed, "parsed", "P", false, "emit the syntax tree")
	flags.StringVar(&c.format, "format", "", "dump format: text, json or yaml")
	flags.StringVar(&c.configFile, "config", "", "project file (default: basm.toml or basm.yaml next to the source)")
	flags.BoolVar(&c.noColor, "no-color", false, "disable colored output")
	flags.StringSliceVar(&c.only, "only", nil, "report only diagnostic codes matching these globs (e.g. unclosed-*)")
	return cmd
}

// unknownArgument rewrites pflag's unknown flag errors, e.g.
// "unknown flag: --foo" or "unknown shorthand flag: 'x' in -x".
func unknownArgument(err error) error {
	msg := err.Error()
	if arg, ok := strings.CutPrefix(msg, "unknown flag: "); ok {
		return userErrorf("Unknown terminal argument `%s`", arg)
	}
	if strings.HasPrefix(msg, "unknown shorthand flag: ") {
		if i := strings.LastIndex(msg, " in "); i >= 0 {
			return userErrorf("Unknown terminal argument `%s`", msg[i+len(" in "):])
		}
	}
	return err
}

func (c *cli) execute(cmd *cobra.Command, args []string) error {
	if c.version {
		fmt.Fprintf(c.stdout, "basm %s (target: %s)\n", cliutil.Version(), TargetFormat)
		return nil
	}

	outputType, err := c.outputType()
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return userErrorf("Missing source path")
	}

	path, err := cliutil.ResolvePath(args[0])
	if err != nil {
		return userErrorf("Could not canonicalize path `%s`", args[0])
	}

	if err := c.loadConfig(cmd, path); err != nil {
		return err
	}

	var opts []basm.Option
	if logger := c.setupLogger(); logger != nil {
		opts = append(opts, basm.WithLogger(logger))
	}

	info, err := os.Stat(path)
	if err != nil {
		return userErrorf("Could not read source at path `%s`", path)
	}
	if info.IsDir() {
		if outputType != OutputSB3 {
			return userErrorf("Cannot emit %s data for a directory", outputType)
		}
		return c.checkTree(cmd, path, opts)
	}
	return c.compileFile(path, outputType, opts)
}

func (c *cli) outputType() (OutputType, error) {
	switch {
	case c.lexed && c.parsed:
		return OutputSB3, errUndeterminedOutput
	case c.lexed:
		return OutputLexed, nil
	case c.parsed:
		return OutputParsed, nil
	default:
		return OutputSB3, nil
	}
}

// loadConfig reads the project file and applies flag overrides.
func (c *cli) loadConfig(cmd *cobra.Command, sourcePath string) error {
	var (
		cfg *config.Config
		err error
	)
	if c.configFile != "" {
		cfg, err = config.Load(c.configFile)
	} else {
		dir := sourcePath
		if info, statErr := os.Stat(sourcePath); statErr == nil && !info.IsDir() {
			dir = filepath.Dir(sourcePath)
		}
		cfg, err = config.Discover(dir)
	}
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("output") {
		cfg.Output = c.output
	}
	if flags.Changed("verbose") {
		cfg.Verbose = min(c.verbose, config.MaxVerbose)
	}
	if flags.Changed("format") {
		cfg.Format = c.format
	}
	if flags.Changed("only") {
		cfg.Only = c.only
	}
	if c.noColor {
		color := false
		cfg.Color = &color
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	c.cfg = cfg
	return nil
}

func (c *cli) setupLogger() *slog.Logger {
	if c.cfg.Verbose == 0 {
		return nil
	}
	level := slog.LevelDebug
	if c.cfg.Verbose >= 2 {
		level = basm.LevelTrace
	}
	return slog.New(slog.NewTextHandler(c.stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// errorPrinter returns the diagnostics printer, honoring --no-color even
// when the project file could not be loaded.
func (c *cli) errorPrinter() *render.Printer {
	if c.printer == nil {
		color := !c.noColor
		if c.cfg != nil {
			color = c.cfg.ColorEnabled()
		}
		c.printer = render.NewPrinter(c.stderr, color)
	}
	return c.printer
}

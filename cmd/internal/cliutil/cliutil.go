// Package cliutil provides shared CLI utilities for the basm command.
package cliutil

import (
	"io"
	"os"
	"path/filepath"
	"runtime/debug"
)

// GetOutput opens the output file, or returns stdout when outputFile is
// empty or "-". The returned close function must always be called.
func GetOutput(outputFile string, stdout io.Writer) (io.Writer, func() error, error) {
	if outputFile == "" || outputFile == "-" {
		return stdout, func() error { return nil }, nil
	}
	f, err := os.Create(outputFile)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

// ResolvePath resolves path against the working directory and follows
// symlinks. The file must exist.
func ResolvePath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}

// Version returns the module version from the build info, or "(devel)".
func Version() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "(devel)"
}

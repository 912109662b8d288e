package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// LoadSource reads a Block-ASM fixture from the repository testdata directory.
// The name is relative to testdata/, e.g. "sprite.basm".
func LoadSource(t testing.TB, name string) string {
	t.Helper()
	path := filepath.Join(RepoRoot(t), "testdata", name)
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read fixture %s: %v", path, err)
	}
	return string(data)
}

// RepoRoot walks up from the working directory to the directory holding go.mod.
func RepoRoot(t testing.TB) string {
	t.Helper()
	dir, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatalf("go.mod not found above %s", dir)
		}
		dir = parent
	}
}

package cliutil

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/kytekode/basm/internal/testutil"
)

func TestGetOutputStdout(t *testing.T) {
	var buf bytes.Buffer
	for _, name := range []string{"", "-"} {
		w, closeFn, err := GetOutput(name, &buf)
		testutil.NoError(t, err, "GetOutput(%q)", name)
		testutil.True(t, w == &buf, "GetOutput(%q) returns stdout", name)
		testutil.NoError(t, closeFn(), "close")
	}
}

func TestGetOutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	w, closeFn, err := GetOutput(path, nil)
	testutil.NoError(t, err, "GetOutput")
	_, err = w.Write([]byte("hello"))
	testutil.NoError(t, err, "write")
	testutil.NoError(t, closeFn(), "close")

	data, err := os.ReadFile(path)
	testutil.NoError(t, err, "read back")
	testutil.Equal(t, "hello", string(data), "content")

	_, _, err = GetOutput(filepath.Join(t.TempDir(), "missing", "out.txt"), nil)
	testutil.Error(t, err, "missing directory")
}

func TestResolvePath(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "a.basm")
	testutil.NoError(t, os.WriteFile(target, nil, 0o644), "write")
	want, err := filepath.EvalSymlinks(target)
	testutil.NoError(t, err, "EvalSymlinks")

	link := filepath.Join(dir, "link.basm")
	if err := os.Symlink(target, link); err == nil {
		got, err := ResolvePath(link)
		testutil.NoError(t, err, "ResolvePath link")
		testutil.Equal(t, want, got, "symlink resolved")
	}

	_, err = ResolvePath(filepath.Join(dir, "missing.basm"))
	testutil.Error(t, err, "missing file")
}

func TestVersion(t *testing.T) {
	testutil.True(t, Version() != "", "version is never empty")
}

package basm

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCompileAllTree(t *testing.T) {
	src := MustDirTree(projectsDir)

	results, err := CompileAll(context.Background(), src, WithConcurrency(2))
	require.NoError(t, err)
	require.Len(t, results, 3)

	broken, hello, monitor := results[0], results[1], results[2]
	require.Equal(t, filepath.Join(projectsDir, "broken.basm"), broken.Path)
	require.Nil(t, broken.Tree)
	require.Len(t, Diagnostics(broken.Err), 2)
	require.Equal(t, StageClassify, Diagnostics(broken.Err)[0].Stage)

	require.NoError(t, hello.Err)
	require.Len(t, hello.Tree.Find(KindTarget), 1)

	require.NoError(t, monitor.Err)
	require.Len(t, monitor.Tree.Find(KindMonitor), 1)
}

func TestCompileAllNoSource(t *testing.T) {
	_, err := CompileAll(context.Background(), nil)
	require.ErrorIs(t, err, ErrNoSources)
}

func TestCompileAllEmpty(t *testing.T) {
	src := FS("mem", memFS(), WithExtensions(".none"))
	results, err := CompileAll(context.Background(), src)
	require.NoError(t, err)
	require.Empty(t, results)
}

func TestCompileAllReadErrors(t *testing.T) {
	results, err := CompileAll(context.Background(), FS("mem", memFS()))
	require.NoError(t, err)
	require.Len(t, results, 3)
	require.NoError(t, results[0].Err)
	require.ErrorIs(t, results[1].Err, ErrBinaryContent)
	require.NoError(t, results[2].Err)
}

func TestCompileAllCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := CompileAll(ctx, MustDirTree(projectsDir))
	require.ErrorIs(t, err, context.Canceled)
}

package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kytekode/basm/internal/render"
	"github.com/kytekode/basm/internal/testutil"
)

func fixture(t *testing.T, parts ...string) string {
	t.Helper()
	return filepath.Join(append([]string{testutil.RepoRoot(t), "testdata"}, parts...)...)
}

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func resolved(t *testing.T, path string) string {
	t.Helper()
	abs, err := filepath.Abs(path)
	require.NoError(t, err)
	canonical, err := filepath.EvalSymlinks(abs)
	require.NoError(t, err)
	return canonical
}

func TestVersion(t *testing.T) {
	code, stdout, _ := runCLI(t, "--version")
	require.Equal(t, exitOK, code)
	require.True(t, strings.HasPrefix(stdout, "basm "))
	require.Contains(t, stdout, "(target: Scratch 3.0)")
}

func TestUndeterminedOutput(t *testing.T) {
	code, stdout, stderr := runCLI(t, "--no-color", fixture(t, "sprite.basm"), "-L", "-P")
	require.Equal(t, exitError, code)
	require.Empty(t, stdout)
	require.Equal(t, "Error: Cannot determine whether to output parsed or lexed data\n", stderr)
}

func TestUnknownArguments(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"--no-color", "--frob"}, "Error: Unknown terminal argument `--frob`\n"},
		{[]string{"--no-color", "-x"}, "Error: Unknown terminal argument `-x`\n"},
		{[]string{"--no-color", "a.basm", "b.basm"}, "Error: Unknown terminal argument `b.basm`\n"},
	}
	for _, tt := range tests {
		code, _, stderr := runCLI(t, tt.args...)
		require.Equal(t, exitError, code, "args %v", tt.args)
		require.Equal(t, tt.want, stderr, "args %v", tt.args)
	}
}

func TestMissingSource(t *testing.T) {
	code, _, stderr := runCLI(t, "--no-color")
	require.Equal(t, exitError, code)
	require.Equal(t, "Error: Missing source path\n", stderr)

	code, _, stderr = runCLI(t, "--no-color", "does-not-exist.basm")
	require.Equal(t, exitError, code)
	require.Equal(t, "Error: Could not canonicalize path `does-not-exist.basm`\n", stderr)
}

func TestCheckSource(t *testing.T) {
	path := fixture(t, "sprite.basm")
	code, stdout, stderr := runCLI(t, path)
	require.Equal(t, exitOK, code, stderr)
	require.Equal(t, resolved(t, path)+": ok\n", stdout)
	require.Empty(t, stderr)
}

func TestDiagnosticsExitNonZero(t *testing.T) {
	code, stdout, stderr := runCLI(t, "--no-color", fixture(t, "unclosed.basm"))
	require.Equal(t, exitError, code)
	require.Empty(t, stdout)
	require.Equal(t, "Error(line 1): Found unclosed string literal\n"+
		"Error(line 3): Found unclosed target header\n", stderr)
}

func TestLexedOutput(t *testing.T) {
	code, stdout, stderr := runCLI(t, fixture(t, "projects", "hello.basm"), "-L")
	require.Equal(t, exitOK, code, stderr)
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Equal(t, "1\tKeyword\tsem_ver", lines[0])
	require.Equal(t, "1\tLiteral\t\"3.0.0\"", lines[1])
	require.Equal(t, "7\tPunctuator\t!end", lines[len(lines)-1])
}

func TestParsedJSONToFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "tree.json")
	code, stdout, stderr := runCLI(t, fixture(t, "projects", "hello.basm"), "-P", "--format", "json", "-o", out)
	require.Equal(t, exitOK, code, stderr)
	require.Empty(t, stdout)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	var tree render.NodeJSON
	require.NoError(t, json.Unmarshal(data, &tree))
	require.Equal(t, "Root", tree.Kind)
	require.Len(t, tree.Children, 4)
	require.Equal(t, "Target", tree.Children[3].Kind)
}

func TestParsedOutputReportsParseDiagnostics(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.basm")
	require.NoError(t, os.WriteFile(path, []byte("[Stage]\nlayer \"x\"\n"), 0o644))

	code, stdout, stderr := runCLI(t, "--no-color", path, "-P")
	require.Equal(t, exitError, code)
	require.Empty(t, stdout)
	require.Equal(t, "Error(line 2): Expected a non-negative integer for `layer`, found `\"x\"`\n"+
		"Error(line 1): Found unclosed target section `Stage` opened on line 1\n", stderr)
}

func TestProjectArchiveUnsupported(t *testing.T) {
	code, _, stderr := runCLI(t, "--no-color", fixture(t, "sprite.basm"), "-o", "game.sb3")
	require.Equal(t, exitError, code)
	require.Equal(t, "Error: Project archive output is not supported yet: `game.sb3`\n", stderr)
}

func TestCheckDirectory(t *testing.T) {
	code, stdout, stderr := runCLI(t, "--no-color", fixture(t, "projects"))
	require.Equal(t, exitError, code)
	require.Equal(t, "checked 3 files, 1 failed\n  unknown-symbol: 2\n", stdout)
	require.Contains(t, stderr, "broken.basm:\n")
	require.Contains(t, stderr, "Error(line 2): Could not parse unknown symbol `frobnicate`\n")
	require.Contains(t, stderr, "Error(line 4): Could not parse unknown symbol `wibble`\n")

	code, _, stderr = runCLI(t, "--no-color", fixture(t, "projects"), "-L")
	require.Equal(t, exitError, code)
	require.Equal(t, "Error: Cannot emit lexed data for a directory\n", stderr)
}

func TestOnlyFiltersReportedCodes(t *testing.T) {
	code, stdout, stderr := runCLI(t, "--no-color", "--only", "unclosed-target-*", fixture(t, "unclosed.basm"))
	require.Equal(t, exitError, code)
	require.Empty(t, stdout)
	require.Equal(t, "Error(line 3): Found unclosed target header\n", stderr)

	code, stdout, _ = runCLI(t, "--no-color", "--only", "invalid-value", fixture(t, "projects"))
	require.Equal(t, exitError, code, "filtered files still fail")
	require.Equal(t, "checked 3 files, 1 failed\n", stdout)

	code, _, stderr = runCLI(t, "--no-color", "--only", "lint-*", fixture(t, "sprite.basm"))
	require.Equal(t, exitError, code)
	require.Contains(t, stderr, `"lint-*" matches no diagnostic code`)
}

func TestConfigFile(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "basm.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("format: yaml\ncolor: false\n"), 0o644))

	code, stdout, stderr := runCLI(t, "--config", cfgPath, fixture(t, "projects", "hello.basm"), "-L")
	require.Equal(t, exitOK, code, stderr)
	require.Contains(t, stdout, "kind: Keyword")
	require.Contains(t, stdout, "text: sem_ver")

	code, stdout, stderr = runCLI(t, "--config", cfgPath, "--format", "json", fixture(t, "projects", "hello.basm"), "-L")
	require.Equal(t, exitOK, code, stderr)
	require.True(t, strings.HasPrefix(stdout, "["), "flags override the project file")

	bad := filepath.Join(t.TempDir(), "basm.toml")
	require.NoError(t, os.WriteFile(bad, []byte("verbose = 9\n"), 0o644))
	code, _, stderr = runCLI(t, "--no-color", "--config", bad, fixture(t, "sprite.basm"))
	require.Equal(t, exitError, code)
	require.Contains(t, stderr, "invalid configuration")
}

func TestVerboseLogging(t *testing.T) {
	code, _, stderr := runCLI(t, "-vv", fixture(t, "projects", "hello.basm"))
	require.Equal(t, exitOK, code, stderr)
	require.Contains(t, stderr, "component=parser")
	require.Contains(t, stderr, "push context")
}

func TestOutputTypeString(t *testing.T) {
	require.Equal(t, "sb3", OutputSB3.String())
	require.Equal(t, "lexed", OutputLexed.String())
	require.Equal(t, "parsed", OutputParsed.String())
}

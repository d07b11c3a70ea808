package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cyclone1070/shellfs/internal/config"
	"github.com/Cyclone1070/shellfs/internal/shell"
)

type result struct {
	code   int
	stdout string
	stderr string
}

// writeTestConfig pins the locale so ls output is predictable.
func writeTestConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	data := `{"shell": {"env": {"LC_ALL": "C"}, "default_timeout_seconds": 10}}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))
	return path
}

func runCLI(t *testing.T, args ...string) result {
	t.Helper()
	var stdout, stderr bytes.Buffer
	args = append([]string{"--config", writeTestConfig(t)}, args...)
	code := run(context.Background(), args, Dependencies{
		Registry: shell.DefaultRegistry(),
		Loader:   config.NewLoader(),
		Stdout:   &stdout,
		Stderr:   &stderr,
	})
	return result{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func requireUnix(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("uses a POSIX shell")
	}
}

// fixture builds dir/{a.txt, notes.log, sub/b.txt}.
func fixture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("hello"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.log"), []byte("log"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", "b.txt"), []byte("b"), 0o644))
	return dir
}

func TestPlatforms(t *testing.T) {
	r := runCLI(t, "platforms")

	require.Equal(t, exitOK, r.code, r.stderr)
	lines := strings.Split(strings.TrimSpace(r.stdout), "\n")
	assert.Contains(t, lines, "linux")
	assert.Contains(t, lines, "darwin")
	assert.Contains(t, lines, "windows")
}

func TestLs(t *testing.T) {
	requireUnix(t)
	dir := fixture(t)

	r := runCLI(t, "ls", "-o", "names", dir)

	require.Equal(t, exitOK, r.code, r.stderr)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.txt"),
		filepath.Join(dir, "notes.log"),
		filepath.Join(dir, "sub"),
	}, strings.Split(strings.TrimSpace(r.stdout), "\n"))
}

func TestLs_Window(t *testing.T) {
	requireUnix(t)
	dir := fixture(t)

	r := runCLI(t, "ls", "-o", "names", "--offset", "1", "--limit", "1", dir)

	require.Equal(t, exitOK, r.code, r.stderr)
	assert.Equal(t, filepath.Join(dir, "notes.log"), strings.TrimSpace(r.stdout))
	assert.Contains(t, r.stderr, "listing truncated")
}

func TestWorkDir_ResolvesRelativePaths(t *testing.T) {
	requireUnix(t)
	dir := fixture(t)

	r := runCLI(t, "--workdir", dir, "isfile", "a.txt")
	require.Equal(t, exitOK, r.code, r.stderr)
	assert.Equal(t, "true", strings.TrimSpace(r.stdout))

	r = runCLI(t, "--workdir", filepath.Join(dir, "sub"), "isfile", "a.txt")
	assert.Equal(t, exitFalse, r.code, r.stderr)
}

func TestInfo_JSON(t *testing.T) {
	requireUnix(t)
	dir := fixture(t)

	r := runCLI(t, "info", "-o", "json", filepath.Join(dir, "a.txt"), filepath.Join(dir, "sub"))

	require.Equal(t, exitOK, r.code, r.stderr)
	var decoded []map[string]any
	require.NoError(t, json.Unmarshal([]byte(r.stdout), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "file", decoded[0]["type"])
	assert.Equal(t, float64(5), decoded[0]["size"])
	assert.Equal(t, "directory", decoded[1]["type"])
}

func TestInfo_Missing(t *testing.T) {
	requireUnix(t)

	r := runCLI(t, "info", filepath.Join(t.TempDir(), "missing"))

	assert.Equal(t, exitError, r.code)
	assert.Contains(t, r.stderr, "no such file or directory")
}

func TestPredicates(t *testing.T) {
	requireUnix(t)
	dir := fixture(t)
	file := filepath.Join(dir, "a.txt")
	missing := filepath.Join(dir, "missing")

	tests := []struct {
		args []string
		code int
		out  string
	}{
		{[]string{"exists", file}, exitOK, "true"},
		{[]string{"exists", missing}, exitFalse, "false"},
		{[]string{"isfile", file}, exitOK, "true"},
		{[]string{"isfile", dir}, exitFalse, "false"},
		{[]string{"isdir", dir}, exitOK, "true"},
		{[]string{"isdir", file}, exitFalse, "false"},
	}

	for _, tt := range tests {
		t.Run(strings.Join(tt.args[:1], " ")+" "+filepath.Base(tt.args[1]), func(t *testing.T) {
			r := runCLI(t, tt.args...)
			assert.Equal(t, tt.code, r.code, r.stderr)
			assert.Equal(t, tt.out, strings.TrimSpace(r.stdout))
			assert.Empty(t, r.stderr)
		})
	}
}

func TestMutations(t *testing.T) {
	requireUnix(t)
	dir := fixture(t)

	nested := filepath.Join(dir, "x", "y")
	r := runCLI(t, "mkdir", "-p", nested)
	require.Equal(t, exitOK, r.code, r.stderr)
	assert.DirExists(t, nested)

	r = runCLI(t, "mkdir", filepath.Join(dir, "sub"))
	assert.Equal(t, exitError, r.code)

	touched := filepath.Join(nested, "new.txt")
	r = runCLI(t, "touch", touched)
	require.Equal(t, exitOK, r.code, r.stderr)
	assert.FileExists(t, touched)

	copied := filepath.Join(dir, "copy.txt")
	r = runCLI(t, "cp", filepath.Join(dir, "a.txt"), copied)
	require.Equal(t, exitOK, r.code, r.stderr)
	data, err := os.ReadFile(copied)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	r = runCLI(t, "touch", "--truncate", copied)
	require.Equal(t, exitOK, r.code, r.stderr)
	stat, err := os.Stat(copied)
	require.NoError(t, err)
	assert.Zero(t, stat.Size())

	r = runCLI(t, "rm", copied)
	require.Equal(t, exitOK, r.code, r.stderr)
	assert.NoFileExists(t, copied)

	r = runCLI(t, "rm", "-r", filepath.Join(dir, "a.txt"))
	assert.Equal(t, exitError, r.code)
	assert.Contains(t, r.stderr, "not a directory")

	r = runCLI(t, "rm", "-r", filepath.Join(dir, "x"))
	require.Equal(t, exitOK, r.code, r.stderr)
	assert.NoDirExists(t, filepath.Join(dir, "x"))
}

func TestFind(t *testing.T) {
	requireUnix(t)
	dir := fixture(t)
	ignoreFile := filepath.Join(t.TempDir(), "ignore")
	require.NoError(t, os.WriteFile(ignoreFile, []byte("# logs\n*.log\n"), 0o600))

	r := runCLI(t, "find", "-o", "names", "--exclude-from", ignoreFile, dir)

	require.Equal(t, exitOK, r.code, r.stderr)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.txt"),
		filepath.Join(dir, "sub"),
		filepath.Join(dir, "sub", "b.txt"),
	}, strings.Split(strings.TrimSpace(r.stdout), "\n"))

	r = runCLI(t, "find", "-o", "names", "--max-depth", "1", "--exclude", "sub/", dir)

	require.Equal(t, exitOK, r.code, r.stderr)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.txt"),
		filepath.Join(dir, "notes.log"),
	}, strings.Split(strings.TrimSpace(r.stdout), "\n"))
}

func TestFind_Type(t *testing.T) {
	requireUnix(t)
	dir := fixture(t)

	r := runCLI(t, "find", "-o", "names", "--type", "file", dir)
	require.Equal(t, exitOK, r.code, r.stderr)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.txt"),
		filepath.Join(dir, "notes.log"),
		filepath.Join(dir, "sub", "b.txt"),
	}, strings.Split(strings.TrimSpace(r.stdout), "\n"))

	r = runCLI(t, "find", "--type", "fifo", dir)
	assert.Equal(t, exitError, r.code)
	assert.Contains(t, r.stderr, "fifo")
}

func TestShow_RerendersSavedListing(t *testing.T) {
	requireUnix(t)
	dir := fixture(t)

	saved := runCLI(t, "ls", "-o", "yaml", dir)
	require.Equal(t, exitOK, saved.code, saved.stderr)
	listing := filepath.Join(t.TempDir(), "listing.yaml")
	require.NoError(t, os.WriteFile(listing, []byte(saved.stdout), 0o600))

	r := runCLI(t, "show", "-o", "names", listing)

	require.Equal(t, exitOK, r.code, r.stderr)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.txt"),
		filepath.Join(dir, "notes.log"),
		filepath.Join(dir, "sub"),
	}, strings.Split(strings.TrimSpace(r.stdout), "\n"))
}

func TestShow_BadListing(t *testing.T) {
	listing := filepath.Join(t.TempDir(), "listing.json")
	require.NoError(t, os.WriteFile(listing, []byte(`[{"name": "x", "type": "socket"}]`), 0o600))

	r := runCLI(t, "show", listing)

	assert.Equal(t, exitError, r.code)
	assert.Contains(t, r.stderr, "entry 0")
}

func TestUnknownOutputFormat(t *testing.T) {
	r := runCLI(t, "ls", "-o", "xml")

	assert.Equal(t, exitError, r.code)
	assert.Contains(t, r.stderr, `unknown output format "xml"`)
}

func TestInvalidBackendFlag(t *testing.T) {
	r := runCLI(t, "--backend", "ftp", "ls")

	assert.Equal(t, exitError, r.code)
	assert.Contains(t, r.stderr, "config validation failed")
}

type stubLoader struct {
	cfg *config.Config
	err error
}

func (s *stubLoader) Load() (*config.Config, error) {
	return s.cfg, s.err
}

func (s *stubLoader) LoadFile(path string) (*config.Config, error) {
	return s.cfg, s.err
}

func TestResolveConfig_FlagsOverride(t *testing.T) {
	a := &app{deps: Dependencies{Loader: &stubLoader{cfg: config.DefaultConfig()}}}
	root := newRootCmd(a)
	require.NoError(t, root.ParseFlags([]string{
		"--backend", "ssh", "--host", "build.internal", "--user", "deploy",
		"--dialect", "windows", "--timeout", "1500ms", "-v",
	}))

	cfg, err := a.resolveConfig(root)

	require.NoError(t, err)
	assert.Equal(t, "ssh", cfg.Shell.Backend)
	assert.Equal(t, "build.internal", cfg.SSH.Host)
	assert.Equal(t, "deploy", cfg.SSH.User)
	assert.Equal(t, "windows", cfg.Shell.Dialect)
	assert.Equal(t, 2, cfg.Shell.DefaultTimeoutSeconds)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestResolveConfig_UnsetFlagsKeepConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Shell.DefaultTimeoutSeconds = 45
	a := &app{deps: Dependencies{Loader: &stubLoader{cfg: cfg}}}
	root := newRootCmd(a)
	require.NoError(t, root.ParseFlags(nil))

	got, err := a.resolveConfig(root)

	require.NoError(t, err)
	assert.Equal(t, 45, got.Shell.DefaultTimeoutSeconds)
	assert.Equal(t, "local", got.Shell.Backend)
}

func TestResolveConfig_LoaderError(t *testing.T) {
	a := &app{deps: Dependencies{Loader: &stubLoader{err: assert.AnError}}}
	root := newRootCmd(a)

	_, err := a.resolveConfig(root)

	assert.ErrorIs(t, err, assert.AnError)
}

func TestExitCode(t *testing.T) {
	var stderr bytes.Buffer

	assert.Equal(t, exitOK, exitCode(nil, &stderr))
	assert.Equal(t, exitFalse, exitCode(errAnsweredFalse, &stderr))
	assert.Empty(t, stderr.String())
	assert.Equal(t, exitError, exitCode(errors.New("boom"), &stderr))
	assert.Equal(t, "Error: boom\n", stderr.String())
}

func TestNeedsShell(t *testing.T) {
	a := &app{}
	root := newRootCmd(a)

	for _, c := range root.Commands() {
		want := c.Name() != "platforms" && c.Name() != "show"
		assert.Equal(t, want, needsShell(c), c.Name())
	}
	assert.False(t, needsShell(&cobra.Command{Use: "help"}))
}

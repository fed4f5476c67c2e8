package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yacobolo/cssmod"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetKoanf()
	out := &bytes.Buffer{}
	rootCmd.SetOut(out)
	rootCmd.SetErr(&bytes.Buffer{})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestBuildCommand(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	src := filepath.Join(dir, "src")
	require.NoError(t, os.MkdirAll(src, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "a.js"), []byte("const s = css`.btn { color: red }`;\nconst c = s('btn');\n"), 0o600))

	out, err := runCLI(t, "build", "--source", "src", "--out-dir", "out", "--optimised", "--extract-css", "out/app.css", "--color", "never")
	require.NoError(t, err)
	assert.Contains(t, out, "1 literal, 1 lookup")
	assert.Contains(t, out, "out/app.css")

	code, err := os.ReadFile(filepath.Join(dir, "out", "a.js"))
	require.NoError(t, err)
	assert.Equal(t, "const c = \"_0\";", string(code))

	css, err := os.ReadFile(filepath.Join(dir, "out", "app.css"))
	require.NoError(t, err)
	assert.Equal(t, "._0{color:red}", string(css))
}

func TestBuildCommandReportsFailure(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.js"), []byte("const s = css`.a{top:0}`;\ns('b');\n"), 0o600))

	out, err := runCLI(t, "build", "--source", ".", "--out-dir", "out", "--color", "never", "--print-lines")
	require.ErrorIs(t, err, errBuildFailed)
	assert.Contains(t, out, "a.js:2:3:")
	assert.Contains(t, out, "unrecognised class name")
	assert.Contains(t, out, "\ts('b');\n\t  ^\n")
}

func TestCacheShowCommand(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	cache := filepath.Join(dir, "names.json")

	c := cssmod.New(cssmod.Options{Optimised: true, Cache: cache})
	_, err := c.TransformFile(filepath.Join(dir, "a.js"), []byte("const s = css`.a{top:0}.b{top:0}`;"))
	require.NoError(t, err)

	out, err := runCLI(t, "cache", "show", cache)
	require.NoError(t, err)
	assert.Equal(t, "maxID: 2\nentries: 2\n", out)
}

func TestCacheShowRequiresPath(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := runCLI(t, "cache", "show")
	require.Error(t, err)
}

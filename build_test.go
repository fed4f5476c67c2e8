package cssmod_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yacobolo/cssmod"
)

func buildTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "src", "b.js"), "const card = css`.card { top: 0 }`;\nconst c = card('card');\n")
	writeFile(t, filepath.Join(root, "src", "a.js"), "const s = css`.btn { color: red }`;\nconst cls = s('btn');\n")
	writeFile(t, filepath.Join(root, "src", "lib", "plain.js"), "console.log(1);\n")
	writeFile(t, filepath.Join(root, "README.md"), "# app\n")
	return root
}

func TestBuild(t *testing.T) {
	root := buildTree(t)
	out := filepath.Join(root, "dist")
	bundle := filepath.Join(out, "app.css")

	cfg := cssmod.BuildConfig{
		Options: cssmod.Options{Optimised: true, ExtractCSS: bundle},
		Source:  root,
		OutDir:  out,
	}
	result, err := cssmod.Build(cfg)
	require.NoError(t, err)

	assert.Equal(t, 3, result.Discovered)
	assert.Equal(t, 2, result.Literals)
	assert.Equal(t, 2, result.Lookups)
	assert.Equal(t, []string{bundle}, result.Bundles)
	require.Len(t, result.Files, 3)
	assert.Equal(t, filepath.Join(root, "src", "a.js"), result.Files[0].Path)

	code, err := os.ReadFile(filepath.Join(out, "src", "a.js"))
	require.NoError(t, err)
	assert.Equal(t, "const cls = \"_0\";", string(code))

	code, err = os.ReadFile(filepath.Join(out, "src", "b.js"))
	require.NoError(t, err)
	assert.Equal(t, "const c = \"_1\";", string(code))

	css, err := os.ReadFile(bundle)
	require.NoError(t, err)
	assert.Equal(t, "._0{color:red}\n._1{top:0}\n", string(css))

	again, err := cssmod.Build(cfg)
	require.NoError(t, err)
	assert.Equal(t, 3, again.Discovered, "the output directory is not rediscovered")
}

func TestBuildInline(t *testing.T) {
	root := buildTree(t)
	out := filepath.Join(t.TempDir(), "out")

	result, err := cssmod.Build(cssmod.BuildConfig{
		Options: cssmod.Options{Optimised: true},
		Source:  root,
		Exclude: []string{"src/lib/**"},
		OutDir:  out,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Skipped)
	assert.Empty(t, result.Bundles)
	assert.Len(t, result.Outputs, 2)

	code, err := os.ReadFile(filepath.Join(out, "src", "a.js"))
	require.NoError(t, err)
	assert.Equal(t, "css(\"._0{color:red}\");\nconst cls = \"_0\";", string(code))
}

func TestBuildNoInputFiles(t *testing.T) {
	_, err := cssmod.Build(cssmod.BuildConfig{Source: t.TempDir()})
	require.ErrorIs(t, err, cssmod.ErrNoInputFiles)
}

func TestBuildStopsAtFirstFailure(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.js"), "const s = css`.a{top:0}`;\ns('missing');\n")
	writeFile(t, filepath.Join(root, "b.js"), "css`.b{top:0}`;\n")
	bundle := filepath.Join(root, "dist", "app.css")

	_, err := cssmod.Build(cssmod.BuildConfig{
		Options: cssmod.Options{ExtractCSS: bundle},
		Source:  root,
		OutDir:  filepath.Join(root, "dist"),
	})
	require.ErrorIs(t, err, cssmod.ErrUnknownClassName)
	assert.NoFileExists(t, bundle)
	assert.NoFileExists(t, filepath.Join(root, "dist", "b.js"))
}

package cssmod_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yacobolo/cssmod"
	"github.com/yacobolo/cssmod/internal/naming"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestTransformFileInline(t *testing.T) {
	c := cssmod.New(cssmod.Options{Optimised: true})
	path := filepath.Join(t.TempDir(), "button.js")

	res, err := c.TransformFile(path, []byte("const s = css`.btn{color:red;color:red}`;\nconst c = s('btn');\n"))
	require.NoError(t, err)

	assert.Equal(t, path, res.Path)
	assert.Equal(t, "css(\"._0{color:red}\");\nconst c = \"_0\";", res.Code)
	assert.Equal(t, 1, res.Lookups)
	require.Len(t, res.Sites, 1)
	assert.Equal(t, cssmod.Declaration, res.Sites[0].Kind)
	assert.Equal(t, 1, res.Sites[0].Line)
	assert.Equal(t, 14, res.Sites[0].Column)
	assert.Equal(t, []map[string]string{{"btn": "_0"}}, c.Classes(path))
}

func TestTransformFileDebugNames(t *testing.T) {
	c := cssmod.New(cssmod.Options{})
	path := filepath.Join(t.TempDir(), "button.js")

	res, err := c.TransformFile(path, []byte("const s = css`.btn{color:red}`;\nconst c = s('btn');"))
	require.NoError(t, err)

	token := "_btn_" + naming.Hash(".btn{color:red}") + "_1"
	assert.Equal(t, "css(\"."+token+"{color:red}\");\nconst c = \""+token+"\";", res.Code)
}

func TestTransformFilePrefix(t *testing.T) {
	c := cssmod.New(cssmod.Options{Optimised: true, Prefix: "lib"})

	res, err := c.TransformFile(filepath.Join(t.TempDir(), "a.js"), []byte("const s = css`.a{top:0}.b{top:1px}`;\ns('b');"))
	require.NoError(t, err)

	assert.Equal(t, "css(\"._lib_0{top:0}._lib_1{top:1px}\");\n\"_lib_1\";", res.Code)
}

func TestCompressedCacheIsShared(t *testing.T) {
	dir := t.TempDir()
	cache := filepath.Join(dir, "names.json")
	a := filepath.Join(dir, "a.js")
	b := filepath.Join(dir, "b.js")
	src := []byte("const s = css`.btn{top:0}`;\ns('btn');")

	first := cssmod.New(cssmod.Options{Optimised: true, Cache: cache})
	_, err := first.TransformFile(a, src)
	require.NoError(t, err)
	assert.FileExists(t, cache)

	second := cssmod.New(cssmod.Options{Optimised: true, Cache: cache})
	res, err := second.TransformFile(b, src)
	require.NoError(t, err)
	assert.Contains(t, res.Code, "\"_1\";")

	res, err = second.TransformFile(a, src)
	require.NoError(t, err)
	assert.Contains(t, res.Code, "\"_0\";", "ids survive across compilers")
}

func TestExtractionIsOrderIndependent(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.js")
	b := filepath.Join(dir, "b.js")

	for _, order := range [][]string{{a, b}, {b, a}} {
		target := filepath.Join(t.TempDir(), "app.css")
		c := cssmod.New(cssmod.Options{Optimised: true, ExtractCSS: target})
		for _, path := range order {
			_, err := c.TransformFile(path, []byte("css`."+filepath.Base(path)[:1]+" { top: 0 }`;"))
			require.NoError(t, err)
		}

		written, err := c.Finish()
		require.NoError(t, err)
		assert.Equal(t, []string{target}, written)

		data, err := os.ReadFile(target)
		require.NoError(t, err)
		assert.Equal(t, ".a { top: 0 }\n.b { top: 0 }", string(data))
	}
}

func TestFinishWithoutExtraction(t *testing.T) {
	written, err := cssmod.New(cssmod.Options{}).Finish()
	require.NoError(t, err)
	assert.Empty(t, written)
}

func TestTransformFileErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want error
	}{
		{name: "unknown class", src: "const s = css`.a{top:0}`;\ns('b');", want: cssmod.ErrUnknownClassName},
		{name: "non-constant literal", src: "css(name);", want: cssmod.ErrNonConstantLiteral},
		{name: "non-constant lookup", src: "const s = css`.a{top:0}`;\ns(name);", want: cssmod.ErrNonConstantLookupArgument},
		{name: "invalid source", src: "const = ;", want: cssmod.ErrInvalidSource},
		{name: "invalid stylesheet", src: "css`.a{color:red}}`;", want: cssmod.ErrInvalidStylesheet},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := cssmod.New(cssmod.Options{}).TransformFile(filepath.Join(t.TempDir(), "a.js"), []byte(tt.src))
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestParseBareExtract(t *testing.T) {
	mode, err := cssmod.ParseBareExtract("minified")
	require.NoError(t, err)
	assert.Equal(t, cssmod.BareMinified, mode)
}

package naming_test

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yacobolo/cssmod/internal/domain"
	"github.com/yacobolo/cssmod/internal/naming"
)

func TestLineOf(t *testing.T) {
	tests := []struct {
		name  string
		css   string
		local string
		want  int
	}{
		{name: "first line", css: ".btn{color:red}", local: "btn", want: 1},
		{name: "third line", css: "\n  .a{}\n  .btn{}", local: "btn", want: 3},
		{name: "crlf counts once", css: "\r\n.a{}\r\n.btn{}", local: "btn", want: 3},
		{name: "bare carriage return", css: "\r.btn{}", local: "btn", want: 2},
		{name: "first occurrence wins", css: ".btn{}\n.btn:hover{}", local: "btn", want: 1},
		{name: "absent", css: "\n\n.other{}", local: "btn", want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, naming.LineOf(tt.css, tt.local))
		})
	}
}

func TestGenerateDebug(t *testing.T) {
	g := naming.New(naming.Options{})
	css := "\n.normal {\n  color: red;\n}\n"

	first, err := g.Generate("/src/button.js", "normal", css)
	require.NoError(t, err)
	second, err := g.Generate("/src/button.js", "normal", css)
	require.NoError(t, err)

	assert.Equal(t, first, second, "debug names are a pure function of their inputs")
	assert.Equal(t, "_normal_"+naming.Hash(css)+"_2", first)
	assert.Regexp(t, regexp.MustCompile(`^_normal_[0-9a-z]+_2$`), first)

	other, err := g.Generate("/src/button.js", "normal", css+"\n.extra{}")
	require.NoError(t, err)
	assert.NotEqual(t, first, other, "hash follows the stylesheet text")
}

func TestGenerateCompressedInMemory(t *testing.T) {
	g := naming.New(naming.Options{Mode: naming.Compressed})

	a, err := g.Generate("/src/a.js", "btn", "")
	require.NoError(t, err)
	b, err := g.Generate("/src/a.js", "icon", "")
	require.NoError(t, err)
	c, err := g.Generate("/src/b.js", "btn", "")
	require.NoError(t, err)
	again, err := g.Generate("/src/a.js", "btn", "")
	require.NoError(t, err)

	assert.Equal(t, "_0", a)
	assert.Equal(t, "_1", b)
	assert.Equal(t, "_2", c)
	assert.Equal(t, a, again)
}

func TestGenerateCompressedPrefix(t *testing.T) {
	g := naming.New(naming.Options{Mode: naming.Compressed, Prefix: "my-lib"})

	name, err := g.Generate("/src/a.js", "btn", "")
	require.NoError(t, err)
	assert.Equal(t, "_my-lib_0", name)
}

func TestGenerateCompressedIsolatedPerGenerator(t *testing.T) {
	first := naming.New(naming.Options{Mode: naming.Compressed})
	second := naming.New(naming.Options{Mode: naming.Compressed})

	_, err := first.Generate("/src/a.js", "a", "")
	require.NoError(t, err)
	name, err := second.Generate("/src/a.js", "b", "")
	require.NoError(t, err)
	assert.Equal(t, "_0", name, "runs must not share in-memory counters")
}

func TestGenerateCompressedCacheFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".cls-name-cache.json")
	opts := naming.Options{Mode: naming.Compressed, CachePath: path}

	g := naming.New(opts)
	a, err := g.Generate("/src/a.js", "btn", "")
	require.NoError(t, err)
	b, err := g.Generate("/src/a.js", "icon", "")
	require.NoError(t, err)
	assert.Equal(t, "_0", a)
	assert.Equal(t, "_1", b)

	cache, err := naming.LoadCache(path)
	require.NoError(t, err)
	assert.Equal(t, 2, cache.MaxID())
	assert.Equal(t, 2, cache.Len())

	// A fresh run reuses the persisted assignments.
	next := naming.New(opts)
	again, err := next.Generate("/src/a.js", "icon", "")
	require.NoError(t, err)
	assert.Equal(t, "_1", again)
	fresh, err := next.Generate("/src/b.js", "btn", "")
	require.NoError(t, err)
	assert.Equal(t, "_2", fresh)
}

func TestGenerateCompressedReloadsCacheEveryCall(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	g := naming.New(naming.Options{Mode: naming.Compressed, CachePath: path})

	_, err := g.Generate("/src/a.js", "btn", "")
	require.NoError(t, err)

	// Another process advances the cache between two literals.
	external := naming.NewCache()
	external.Assign(naming.Key("/src/a.js", "btn"))
	for i := 0; i < 9; i++ {
		external.Assign(naming.Key("/src/other.js", string(rune('a'+i))))
	}
	require.NoError(t, external.Save(path))

	name, err := g.Generate("/src/a.js", "icon", "")
	require.NoError(t, err)
	assert.Equal(t, "_10", name)
}

func TestGenerateCompressedCacheReadFailure(t *testing.T) {
	dir := t.TempDir()

	t.Run("path is a directory", func(t *testing.T) {
		g := naming.New(naming.Options{Mode: naming.Compressed, CachePath: dir})
		_, err := g.Generate("/src/a.js", "btn", "")
		require.ErrorIs(t, err, domain.ErrCacheReadFailed)
	})

	t.Run("malformed json", func(t *testing.T) {
		path := filepath.Join(dir, "broken.json")
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

		g := naming.New(naming.Options{Mode: naming.Compressed, CachePath: path})
		_, err := g.Generate("/src/a.js", "btn", "")
		require.ErrorIs(t, err, domain.ErrCacheReadFailed)
	})
}

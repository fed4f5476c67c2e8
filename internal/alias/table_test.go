package alias_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tdewolff/parse/v2/js"
	"github.com/yacobolo/cssmod/internal/alias"
	"github.com/yacobolo/cssmod/internal/domain"
	"go.trai.ch/zerr"
)

func TestTable(t *testing.T) {
	outer := &js.Var{Data: []byte("s"), Decl: js.LexicalDecl}
	use := &js.Var{Data: []byte("s"), Link: outer}
	shadow := &js.Var{Data: []byte("s"), Decl: js.ArgumentDecl}

	table := alias.New()
	table.Set(outer, map[string]string{"btn": "_0"})

	got, err := table.Resolve(use, "btn")
	require.NoError(t, err)
	assert.Equal(t, "_0", got)

	_, ok := table.Get(shadow)
	assert.False(t, ok, "a different binding with the same name is not an alias")
	assert.Equal(t, 1, table.Len())
}

func TestTableLastWriterWins(t *testing.T) {
	v := &js.Var{Data: []byte("s"), Decl: js.LexicalDecl}
	table := alias.New()
	table.Set(v, map[string]string{"a": "_0"})
	table.Set(v, map[string]string{"a": "_1"})

	got, err := table.Resolve(v, "a")
	require.NoError(t, err)
	assert.Equal(t, "_1", got)
	assert.Equal(t, 1, table.Len())
}

func TestTableUnknownClass(t *testing.T) {
	v := &js.Var{Data: []byte("s"), Decl: js.LexicalDecl}
	table := alias.New()
	table.Set(v, map[string]string{"a": "_0"})

	_, err := table.Resolve(v, "missing")
	require.ErrorIs(t, err, domain.ErrUnknownClassName)

	var zErr *zerr.Error
	require.ErrorAs(t, err, &zErr)
	assert.Equal(t, "missing", zErr.Metadata()["class"])
}

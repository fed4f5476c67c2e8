package stylesheet_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yacobolo/cssmod/internal/stylesheet"
)

func TestRewriteClasses(t *testing.T) {
	upper := func(local string) (string, error) { return strings.ToUpper(local), nil }

	tests := []struct {
		name     string
		selector string
		want     string
	}{
		{name: "single class", selector: ".btn", want: ".BTN"},
		{name: "compound", selector: "a.btn.primary:hover", want: "a.BTN.PRIMARY:hover"},
		{name: "pseudo element", selector: ".btn::before", want: ".BTN::before"},
		{name: "descendant list", selector: ".a .b,.c>.d", want: ".A .B,.C>.D"},
		{name: "not pseudo class", selector: ".a:not(.b)", want: ".A:not(.B)"},
		{name: "global wrapper", selector: ":global(.app) .a", want: ".app .A"},
		{name: "local wrapper", selector: ":local(.a):hover", want: ".A:hover"},
		{name: "global with nested not", selector: ":global(.x:not(.y)) .z", want: ".x:not(.y) .Z"},
		{name: "bare global", selector: ":global .h", want: ".h"},
		{name: "bare global after local", selector: ".a :global .b .c", want: ".A .b .c"},
		{name: "bare local inside global", selector: ":global .a :local .b", want: ".a .B"},
		{name: "bare global ends at comma", selector: ":global .a,.b", want: ".a,.B"},
		{name: "local wrapper inside bare global", selector: ":global .a :local(.b)", want: ".a .B"},
		{name: "ids and attributes", selector: "#main[data-x=\".nope\"] .a", want: "#main[data-x=\".nope\"] .A"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := stylesheet.RewriteClasses(tt.selector, upper)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRewriteClassesPropagatesError(t *testing.T) {
	boom := errors.New("boom")
	_, err := stylesheet.RewriteClasses(".a", func(string) (string, error) { return "", boom })
	require.ErrorIs(t, err, boom)
}

func TestClasses(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "a"}, stylesheet.Classes(".a.b, :global(.g) .a"))
	assert.Equal(t, []string{"a"}, stylesheet.Classes(".a :global .h"))
	assert.Empty(t, stylesheet.Classes("from"))
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{".a", ".b:is(.c,.d)", "[x=\",\"]"}, stylesheet.SplitList(".a,.b:is(.c,.d),[x=\",\"]", ','))
	assert.Equal(t, []string{"1px", "solid", "rgb(0 0 0)"}, stylesheet.Fields("1px solid rgb(0 0 0)"))
}

func TestRewriteFunctions(t *testing.T) {
	upperArgs := func(name, args string) (string, bool) {
		if name != "rgb" {
			return "", false
		}
		return "RGB[" + args + "]", true
	}

	assert.Equal(t, "RGB[1,2,3] solid", stylesheet.RewriteFunctions("rgb(1,2,3) solid", upperArgs))
	assert.Equal(t, "linear-gradient(red,RGB[0,0,0])", stylesheet.RewriteFunctions("linear-gradient(red,rgb(0,0,0))", upperArgs))
	assert.Equal(t, "url(\"rgb(1,2,3)\")", stylesheet.RewriteFunctions("url(\"rgb(1,2,3)\")", upperArgs))
	assert.Equal(t, "calc((1px + 2px) * 2)", stylesheet.RewriteFunctions("calc((1px + 2px) * 2)", upperArgs))
	assert.Equal(t, []string{"a", "b(c, d)", "e"}, stylesheet.Args(" a , b(c, d),e"))
}

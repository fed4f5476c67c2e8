package passes_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yacobolo/cssmod/internal/domain"
	"github.com/yacobolo/cssmod/internal/passes"
)

func TestPasses(t *testing.T) {
	tests := []struct {
		name string
		pass passes.Pass
		css  string
		want string
	}{
		{
			name: "discard comments keeps license",
			pass: passes.DiscardComments(),
			css:  "/*! keep */.a{color:red}/* drop */",
			want: "/*! keep */.a{color:red}",
		},
		{
			name: "gradient direction and implied stops",
			pass: passes.MinifyGradients(),
			css:  ".a{background-image:linear-gradient(to bottom, red 0%, blue 100%)}",
			want: ".a{background-image:linear-gradient(180deg,red,blue)}",
		},
		{
			name: "translate3d on z only",
			pass: passes.ReduceTransforms(),
			css:  ".a{transform:translate3d(0,0,5px)}",
			want: ".a{transform:translateZ(5px)}",
		},
		{
			name: "scale with equal axes",
			pass: passes.ReduceTransforms(),
			css:  ".a{transform:scale(2,2)}",
			want: ".a{transform:scale(2)}",
		},
		{
			name: "autoprefixer adds vendor declarations",
			pass: passes.Autoprefixer(),
			css:  ".a{user-select:none}",
			want: ".a{-webkit-user-select:none;-moz-user-select:none;-ms-user-select:none;user-select:none}",
		},
		{
			name: "autoprefixer keeps existing prefixes",
			pass: passes.Autoprefixer(),
			css:  ".a{-webkit-backdrop-filter:blur(2px);backdrop-filter:blur(2px)}",
			want: ".a{-webkit-backdrop-filter:blur(2px);backdrop-filter:blur(2px)}",
		},
		{
			name: "convert numbers and times",
			pass: passes.ConvertValues(),
			css:  ".a{margin:0.50em;transition:opacity 500ms}",
			want: ".a{margin:.5em;transition:opacity .5s}",
		},
		{
			name: "convert values leaves custom properties",
			pass: passes.ConvertValues(),
			css:  ".a{--t:0.50em}",
			want: ".a{--t:0.50em}",
		},
		{
			name: "calc folds same units",
			pass: passes.Calc(),
			css:  ".a{width:calc(10px + 5px)}",
			want: ".a{width:15px}",
		},
		{
			name: "calc keeps mixed units",
			pass: passes.Calc(),
			css:  ".a{width:calc(100% - 5px)}",
			want: ".a{width:calc(100% - 5px)}",
		},
		{
			name: "colormin hex to name",
			pass: passes.Colormin(),
			css:  ".a{color:#FF0000}",
			want: ".a{color:red}",
		},
		{
			name: "colormin rgb to hex",
			pass: passes.Colormin(),
			css:  ".a{background:rgb(255, 255, 255)}",
			want: ".a{background:#fff}",
		},
		{
			name: "ordered border values",
			pass: passes.OrderedValues(),
			css:  ".a{border:red solid 1px}",
			want: ".a{border:1px solid red}",
		},
		{
			name: "minify selectors",
			pass: passes.MinifySelectors(),
			css:  ".b::before, .a, .a{color:red}",
			want: ".a,.b:before{color:red}",
		},
		{
			name: "minify keyframe selectors",
			pass: passes.MinifySelectors(),
			css:  "@keyframes k{from{opacity:0}100%{opacity:1}}",
			want: "@keyframes k{0%{opacity:0}to{opacity:1}}",
		},
		{
			name: "minify media params",
			pass: passes.MinifyParams(),
			css:  "@media all and (min-width:100px){.a{color:red}}",
			want: "@media (min-width:100px){.a{color:red}}",
		},
		{
			name: "charset dropped for ascii sheets",
			pass: passes.NormalizeCharset(),
			css:  "@charset \"utf-8\";.a{color:red}",
			want: ".a{color:red}",
		},
		{
			name: "font values",
			pass: passes.MinifyFontValues(),
			css:  ".a{font-weight:bold;font-family:\"Helvetica Neue\", Arial, arial}",
			want: ".a{font-weight:700;font-family:Helvetica Neue,Arial}",
		},
		{
			name: "unused keyframes",
			pass: passes.DiscardUnused(),
			css:  "@keyframes used{to{opacity:0}}@keyframes unused{to{opacity:0}}.a{animation:used 1s}",
			want: "@keyframes used{to{opacity:0}}.a{animation:used 1s}",
		},
		{
			name: "normalize url",
			pass: passes.NormalizeURL(),
			css:  ".a{background:url(\"./img.png\")}",
			want: ".a{background:url(img.png)}",
		},
		{
			name: "merge identical keyframes",
			pass: passes.MergeIdents(),
			css:  "@keyframes a{to{opacity:0}}@keyframes b{to{opacity:0}}.x{animation:b 1s}",
			want: "@keyframes a{to{opacity:0}}.x{animation:a 1s}",
		},
		{
			name: "merge longhand margins",
			pass: passes.MergeLonghand(),
			css:  ".a{margin-top:1px;margin-right:2px;margin-bottom:1px;margin-left:2px}",
			want: ".a{margin:1px 2px}",
		},
		{
			name: "merge longhand skips mixed importance",
			pass: passes.MergeLonghand(),
			css:  ".a{padding-top:1px!important;padding-right:1px;padding-bottom:1px;padding-left:1px}",
			want: ".a{padding-top:1px!important;padding-right:1px;padding-bottom:1px;padding-left:1px}",
		},
		{
			name: "duplicate declarations keep the last",
			pass: passes.DiscardDuplicates(),
			css:  ".a{color:red;color:blue;color:red}",
			want: ".a{color:blue;color:red}",
		},
		{
			name: "duplicate rules keep the last",
			pass: passes.DiscardDuplicates(),
			css:  ".a{color:red}.b{top:0}.a{color:red}",
			want: ".b{top:0}.a{color:red}",
		},
		{
			name: "merge adjacent rules by selector",
			pass: passes.MergeRules(),
			css:  ".a{color:red}.a{top:0}",
			want: ".a{color:red;top:0}",
		},
		{
			name: "merge adjacent rules by body",
			pass: passes.MergeRules(),
			css:  ".a{color:red}.b{color:red}",
			want: ".a,.b{color:red}",
		},
		{
			name: "discard empty",
			pass: passes.DiscardEmpty(),
			css:  ".a{}.b{color:red}@media print{}",
			want: ".b{color:red}",
		},
		{
			name: "unique selectors",
			pass: passes.UniqueSelectors(),
			css:  ".b,.a,.b{color:red}",
			want: ".a,.b{color:red}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.pass.Apply(tt.css)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDefaultOrder(t *testing.T) {
	names := passes.Names(passes.Default(passes.NewCore(nil)))
	require.Len(t, names, 21)
	assert.Equal(t, passes.NameDiscardComments, names[0])
	assert.Equal(t, passes.NameCore, names[14])
	assert.Equal(t, passes.NameUniqueSelectors, names[20])
}

func TestDefaultPipeline(t *testing.T) {
	css := ".btn{color:red;color:red}"
	for _, p := range passes.Default(passes.NewCore(nil)) {
		var err error
		css, err = p.Apply(css)
		require.NoError(t, err, p.Name())
	}
	assert.Equal(t, ".btn{color:red}", css)
}

func TestCoreScopesClassSelectors(t *testing.T) {
	upper := func(local string) (string, error) { return strings.ToUpper(local), nil }

	got, err := passes.NewCore(upper).Apply(".a .b:hover{color:red}@keyframes k{from{opacity:0}}")
	require.NoError(t, err)
	assert.Equal(t, ".A .B:hover{color:red}@keyframes k{from{opacity:0}}", got)
}

func TestTreePassRejectsInvalidStylesheet(t *testing.T) {
	_, err := passes.DiscardEmpty().Apply(".a{color:red}}")
	require.ErrorIs(t, err, domain.ErrInvalidStylesheet)
}

func TestFuncPass(t *testing.T) {
	p := passes.Func{PassName: "upper", Fn: func(css string) (string, error) { return strings.ToUpper(css), nil }}
	got, err := p.Apply("a")
	require.NoError(t, err)
	assert.Equal(t, "upper", p.Name())
	assert.Equal(t, "A", got)
}

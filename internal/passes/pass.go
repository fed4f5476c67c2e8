// Package passes holds the ordered CSS minification passes run over every stylesheet
// literal. Each pass is a pure text-to-text function behind the Pass interface so
// that any single pass can be replaced without touching the others.
package passes

import (
	"github.com/yacobolo/cssmod/internal/stylesheet"
)

// Pass is one step of the stylesheet pipeline.
type Pass interface {
	Name() string
	Apply(css string) (string, error)
}

// Func adapts a plain function to Pass.
type Func struct {
	PassName string
	Fn       func(css string) (string, error)
}

// Name returns the pass name.
func (f Func) Name() string { return f.PassName }

// Apply runs the function.
func (f Func) Apply(css string) (string, error) { return f.Fn(css) }

// treePass runs a rule tree transformation between a parse and a print.
type treePass struct {
	name string
	fn   func(s *stylesheet.Sheet)
}

func (p treePass) Name() string { return p.name }

func (p treePass) Apply(css string) (string, error) {
	sheet, err := stylesheet.Parse(css)
	if err != nil {
		return "", err
	}
	p.fn(sheet)
	return sheet.String(), nil
}

// declPass returns a pass that rewrites declaration values one by one.
func declPass(name string, fn func(decl *stylesheet.Node)) Pass {
	return treePass{name: name, fn: func(s *stylesheet.Sheet) {
		stylesheet.Decls(s.Nodes, fn)
	}}
}

// Pass names in pipeline order.
const (
	NameDiscardComments   = "discard-comments"
	NameMinifyGradients   = "minify-gradients"
	NameReduceTransforms  = "reduce-transforms"
	NameAutoprefixer      = "autoprefixer"
	NameConvertValues     = "convert-values"
	NameCalc              = "calc"
	NameColormin          = "colormin"
	NameOrderedValues     = "ordered-values"
	NameMinifySelectors   = "minify-selectors"
	NameMinifyParams      = "minify-params"
	NameNormalizeCharset  = "normalize-charset"
	NameMinifyFontValues  = "minify-font-values"
	NameDiscardUnused     = "discard-unused"
	NameNormalizeURL      = "normalize-url"
	NameCore              = "core"
	NameMergeIdents       = "merge-idents"
	NameMergeLonghand     = "merge-longhand"
	NameDiscardDuplicates = "discard-duplicates"
	NameMergeRules        = "merge-rules"
	NameDiscardEmpty      = "discard-empty"
	NameUniqueSelectors   = "unique-selectors"
)

// Default returns the full pipeline in its required order with core as the
// generic minifier stage. Passes after core rely on the whitespace and selector
// normalization done before it, so the order must not change.
func Default(core Pass) []Pass {
	return []Pass{
		DiscardComments(),
		MinifyGradients(),
		ReduceTransforms(),
		Autoprefixer(),
		ConvertValues(),
		Calc(),
		Colormin(),
		OrderedValues(),
		MinifySelectors(),
		MinifyParams(),
		NormalizeCharset(),
		MinifyFontValues(),
		DiscardUnused(),
		NormalizeURL(),
		core,
		MergeIdents(),
		MergeLonghand(),
		DiscardDuplicates(),
		MergeRules(),
		DiscardEmpty(),
		UniqueSelectors(),
	}
}

// Names returns the names of passes in order.
func Names(passes []Pass) []string {
	names := make([]string, len(passes))
	for i, p := range passes {
		names[i] = p.Name()
	}
	return names
}

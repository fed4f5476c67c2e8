// Package pipeline runs stylesheet literals through the ordered minification
// passes, with or without the class naming stage.
package pipeline

import (
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/yacobolo/cssmod/internal/naming"
	"github.com/yacobolo/cssmod/internal/passes"
	"github.com/yacobolo/cssmod/internal/stylesheet"
)

const defaultMemoSize = 512

// Result is the outcome of running a stylesheet through the named pipeline.
type Result struct {
	// CSS is the minified, scoped stylesheet.
	CSS string
	// Classes maps every local class name found in a selector to its scoped name.
	Classes map[string]string
}

// Builder assembles the pass list around a core stage.
type Builder func(core passes.Pass) []passes.Pass

// Option configures an Adapter.
type Option func(*Adapter)

// WithPasses replaces the default pass list.
func WithPasses(build Builder) Option {
	return func(a *Adapter) {
		a.build = build
	}
}

// WithMemoSize sets how many unnamed results Minify remembers.
func WithMemoSize(n int) Option {
	return func(a *Adapter) {
		a.memoSize = n
	}
}

// Adapter binds the pass list to a name generator for one run.
type Adapter struct {
	names    *naming.Generator
	build    Builder
	memoSize int
	memo     *lru.Cache[string, string]
	unnamed  []passes.Pass
}

// New returns an Adapter that scopes class names with names.
func New(names *naming.Generator, opts ...Option) *Adapter {
	a := &Adapter{
		names:    names,
		build:    passes.Default,
		memoSize: defaultMemoSize,
	}
	for _, opt := range opts {
		opt(a)
	}

	memo, err := lru.New[string, string](a.memoSize)
	if err != nil {
		// Only a non-positive size fails.
		memo, _ = lru.New[string, string](defaultMemoSize)
	}
	a.memo = memo
	a.unnamed = a.build(passes.NewCore(nil))
	return a
}

// Process minifies source and renames its local classes. Names are generated in
// the order the classes first appear in source, so IDs do not depend on how the
// passes reorder selectors.
func (a *Adapter) Process(file, source string) (*Result, error) {
	sheet, err := stylesheet.Parse(source)
	if err != nil {
		return nil, err
	}

	classes := make(map[string]string)
	var genErr error
	stylesheet.Rules(sheet.Nodes, func(rule *stylesheet.Node, keyframe bool) {
		if keyframe || genErr != nil {
			return
		}
		for _, local := range stylesheet.Classes(rule.Prelude) {
			if _, ok := classes[local]; ok {
				continue
			}
			var scoped string
			scoped, genErr = a.names.Generate(file, local, source)
			if genErr != nil {
				return
			}
			classes[local] = scoped
		}
	})
	if genErr != nil {
		return nil, genErr
	}

	scope := func(local string) (string, error) {
		if scoped, ok := classes[local]; ok {
			return scoped, nil
		}
		scoped, err := a.names.Generate(file, local, source)
		if err != nil {
			return "", err
		}
		classes[local] = scoped
		return scoped, nil
	}

	css, err := run(a.build(passes.NewCore(scope)), source)
	if err != nil {
		return nil, err
	}
	return &Result{CSS: css, Classes: classes}, nil
}

// Minify runs the pipeline without naming. Results are memoized by source text.
func (a *Adapter) Minify(source string) (string, error) {
	if css, ok := a.memo.Get(source); ok {
		return css, nil
	}
	css, err := run(a.unnamed, source)
	if err != nil {
		return "", err
	}
	a.memo.Add(source, css)
	return css, nil
}

func run(pipeline []passes.Pass, css string) (string, error) {
	for _, p := range pipeline {
		var err error
		css, err = p.Apply(css)
		if err != nil {
			return "", err
		}
	}
	return css, nil
}

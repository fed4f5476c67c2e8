// Package transform rewrites one JavaScript file: stylesheet literals are compiled
// and either inlined or extracted, and class name lookups are replaced by the
// scoped names they resolve to.
package transform

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/js"
	"github.com/yacobolo/cssmod/internal/alias"
	"github.com/yacobolo/cssmod/internal/bundle"
	"github.com/yacobolo/cssmod/internal/domain"
	"github.com/yacobolo/cssmod/internal/literal"
	"github.com/yacobolo/cssmod/internal/pipeline"
	"go.trai.ch/zerr"
)

// DefaultMarker is the identifier that marks stylesheet literals.
const DefaultMarker = "css"

// BareExtract selects what an unbound literal contributes to a bundle.
type BareExtract int

const (
	// BareRaw appends the literal text unchanged. Output of an inline build is
	// already minified, so extracting it later needs no second pass.
	BareRaw BareExtract = iota
	// BareMinified appends the minified text.
	BareMinified
)

func (b BareExtract) String() string {
	if b == BareMinified {
		return "minified"
	}
	return "raw"
}

// ParseBareExtract parses "raw" or "minified". The empty string is raw.
func ParseBareExtract(s string) (BareExtract, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "raw":
		return BareRaw, nil
	case "minified":
		return BareMinified, nil
	}
	return BareRaw, errors.New(`bare-extract must be "raw" or "minified", got "` + s + `"`)
}

// Options configures a Transformer.
type Options struct {
	// Marker is the callee or tag name of stylesheet literals.
	Marker string
	// Target is the bundle path. When set, literals are extracted instead of inlined.
	Target      string
	BareExtract BareExtract
}

// Transformer rewrites files for one run. It shares the alias table, the bundle
// aggregator and the pipeline across every file of the run.
type Transformer struct {
	opts    Options
	adapter *pipeline.Adapter
	aliases *alias.Table
	bundles *bundle.Aggregator
	logger  *slog.Logger
}

// New returns a Transformer. A nil logger discards output.
func New(opts Options, adapter *pipeline.Adapter, aliases *alias.Table, bundles *bundle.Aggregator, logger *slog.Logger) *Transformer {
	if opts.Marker == "" {
		opts.Marker = DefaultMarker
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Transformer{
		opts:    opts,
		adapter: adapter,
		aliases: aliases,
		bundles: bundles,
		logger:  logger,
	}
}

// Site describes one compiled literal of a file.
type Site struct {
	Kind literal.Kind
	// Binding is the variable name of a declaration site.
	Binding string
	Line    int
	Column  int
	// Classes is the scoped name table of a declaration site.
	Classes map[string]string
	// Bytes is the size of the emitted stylesheet.
	Bytes int
}

// Result is a rewritten file.
type Result struct {
	Code    string
	Sites   []Site
	Lookups int
}

// File rewrites src. path is the resolved identity of the file and is used for
// naming and bundle ordering.
func (t *Transformer) File(path string, src []byte) (*Result, error) {
	// The spare byte lets the parser use buf in place, so node data aliases buf
	// and offsets can be recovered from the first byte of a token.
	buf := make([]byte, len(src), len(src)+1)
	copy(buf, src)

	ast, err := js.Parse(parse.NewInputBytes(buf), js.Options{})
	if err != nil {
		return nil, parseError(path, err)
	}

	f := &file{
		t:      t,
		path:   path,
		src:    src,
		tokens: tokenOffsets(buf),
		consts: literal.CollectConsts(ast),
		result: &Result{},
	}
	if t.opts.Target != "" {
		t.bundles.Begin(t.opts.Target, path)
	}

	js.Walk(&siteVisitor{f: f}, ast)
	if f.err != nil {
		return nil, f.err
	}
	js.Walk(&lookupVisitor{f: f}, ast)
	if f.err != nil {
		return nil, f.err
	}

	// Printing drops comments, so untouched files keep their source as is.
	if len(f.result.Sites) == 0 && f.result.Lookups == 0 {
		f.result.Code = string(src)
		return f.result, nil
	}
	f.result.Code = ast.JSString()
	return f.result, nil
}

// file is the state of one File call.
type file struct {
	t      *Transformer
	path   string
	src    []byte
	tokens map[*byte]int
	consts literal.Consts
	result *Result
	err    error
}

// offset returns the byte offset of n in the source, or -1 when unknown.
func (f *file) offset(n js.IExpr) int {
	var data []byte
	switch e := n.(type) {
	case *js.LiteralExpr:
		data = e.Data
	case *js.TemplateExpr:
		if len(e.List) > 0 {
			data = e.List[0].Value
		} else {
			data = e.Tail
		}
	case *js.GroupExpr:
		return f.offset(e.X)
	case *js.BinaryExpr:
		return f.offset(e.X)
	case *js.CallExpr:
		if len(e.Args.List) > 0 {
			return f.offset(e.Args.List[0].Value)
		}
	}
	if len(data) == 0 {
		return -1
	}
	if off, ok := f.tokens[&data[0]]; ok {
		return off
	}
	return -1
}

// tokenOffsets lexes buf and maps the first byte of every string and template
// token to its offset. buf must be the buffer the program was parsed from.
func tokenOffsets(buf []byte) map[*byte]int {
	offsets := map[*byte]int{}
	in := parse.NewInputBytes(buf)
	l := js.NewLexer(in)
	prev := js.ErrorToken
	for {
		tt, data := l.Next()
		switch tt {
		case js.ErrorToken:
			return offsets
		case js.WhitespaceToken, js.LineTerminatorToken, js.CommentToken, js.CommentLineTerminatorToken:
			continue
		case js.DivToken, js.DivEqToken:
			if !endsOperand(prev) {
				if tt, _ = l.RegExp(); tt == js.ErrorToken {
					return offsets
				}
			}
		case js.StringToken, js.TemplateToken, js.TemplateStartToken, js.TemplateMiddleToken, js.TemplateEndToken:
			offsets[&data[0]] = in.Offset() - len(data)
		}
		prev = tt
	}
}

// endsOperand reports whether a slash after tt is a division rather than the
// start of a regular expression.
func endsOperand(tt js.TokenType) bool {
	switch tt {
	case js.StringToken, js.TemplateToken, js.TemplateEndToken, js.RegExpToken, js.PrivateIdentifierToken,
		js.CloseParenToken, js.CloseBracketToken, js.CloseBraceToken,
		js.ThisToken, js.SuperToken, js.TrueToken, js.FalseToken, js.NullToken:
		return true
	}
	return js.IsIdentifier(tt) || js.IsNumeric(tt)
}

// position returns the 1-based line and column of n, or zeros when unknown.
func (f *file) position(n js.IExpr) (int, int) {
	off := f.offset(n)
	if off < 0 {
		return 0, 0
	}
	line, col, _ := parse.Position(bytes.NewReader(f.src), off)
	return line, col
}

// fail wraps err with the file and, when known, the position of at.
func (f *file) fail(err error, msg string, at js.IExpr) error {
	err = zerr.With(zerr.Wrap(err, msg), "file", f.path)
	if at != nil {
		if line, col := f.position(at); line > 0 {
			err = zerr.With(zerr.With(err, "line", line), "column", col)
		}
	}
	return err
}

func parseError(path string, err error) error {
	wrapped := zerr.With(zerr.Wrap(domain.ErrInvalidSource, "parse javascript"), "file", path)
	var perr *parse.Error
	if errors.As(err, &perr) {
		return zerr.With(zerr.With(zerr.With(wrapped, "line", perr.Line), "column", perr.Column), "cause", perr.Message)
	}
	return zerr.With(wrapped, "cause", err.Error())
}

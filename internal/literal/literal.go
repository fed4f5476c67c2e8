// Package literal recognizes stylesheet literals in a JavaScript syntax tree and
// folds constant expressions to their string value.
package literal

import (
	"strings"

	"github.com/tdewolff/parse/v2/js"
	"github.com/yacobolo/cssmod/internal/domain"
	"go.trai.ch/zerr"
)

// Kind is the construct a literal was found in.
type Kind int

const (
	// Declaration is a const binding: const s = css`...`.
	Declaration Kind = iota
	// Expression is a bare expression statement: css`...`;
	Expression
)

func (k Kind) String() string {
	if k == Expression {
		return "expression"
	}
	return "declaration"
}

// Match is the result of matching an expression against the marker shapes.
type Match struct {
	OK  bool
	Raw string
	// Tag is the marker identifier used as callee or template tag.
	Tag js.IExpr
	// Node is the argument or template that carries the stylesheet text.
	Node js.IExpr
}

// MatchExpr reports whether expr is marker("...") or marker`...` and returns the
// constant stylesheet text. Constants bound by const declarations are not
// resolved; use Consts.Match for that.
func MatchExpr(expr js.IExpr, marker string) (Match, error) {
	return Consts(nil).Match(expr, marker)
}

// Match is like MatchExpr but resolves identifiers through c.
func (c Consts) Match(expr js.IExpr, marker string) (Match, error) {
	var tag, node js.IExpr
	switch e := expr.(type) {
	case *js.CallExpr:
		if e.Optional || !IsIdent(e.X, marker) || len(e.Args.List) != 1 || e.Args.List[0].Rest {
			return Match{}, nil
		}
		tag, node = e.X, e.Args.List[0].Value
	case *js.TemplateExpr:
		if e.Optional || !IsIdent(e.Tag, marker) {
			return Match{}, nil
		}
		tag, node = e.Tag, &js.TemplateExpr{List: e.List, Tail: e.Tail}
	default:
		return Match{}, nil
	}

	raw, ok := c.Evaluate(node)
	if !ok {
		return Match{}, zerr.With(zerr.Wrap(domain.ErrNonConstantLiteral, "evaluate stylesheet"), "expr", Source(node))
	}
	return Match{OK: true, Raw: raw, Tag: tag, Node: node}, nil
}

// IsIdent reports whether expr is the bare identifier name.
func IsIdent(expr js.IExpr, name string) bool {
	v, ok := expr.(*js.Var)
	return ok && string(v.Name()) == name
}

// Source prints n as JavaScript.
func Source(n js.INode) string {
	var b strings.Builder
	n.JS(&b)
	return b.String()
}

// Binding returns the declaring variable that v refers to.
func Binding(v *js.Var) *js.Var {
	for v.Link != nil {
		v = v.Link
	}
	return v
}

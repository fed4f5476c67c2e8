package transform

import (
	"github.com/tdewolff/parse/v2/js"
	"github.com/yacobolo/cssmod/internal/literal"
)

// siteVisitor compiles stylesheet literals in document order. Statement lists
// are rewritten in place; nested statements are reached by walking the
// statements that are not themselves sites.
type siteVisitor struct {
	f *file
}

func (v *siteVisitor) Enter(n js.INode) js.IVisitor {
	if v.f.err != nil {
		return nil
	}
	switch n := n.(type) {
	case *js.BlockStmt:
		n.List = v.stmts(n.List)
		return nil
	case *js.CaseClause:
		js.Walk(v, n.Cond)
		n.List = v.stmts(n.List)
		return nil
	case *js.IfStmt:
		js.Walk(v, n.Cond)
		n.Body = v.single(n.Body)
		if n.Else != nil {
			n.Else = v.single(n.Else)
		}
		return nil
	case *js.WhileStmt:
		js.Walk(v, n.Cond)
		n.Body = v.single(n.Body)
		return nil
	case *js.DoWhileStmt:
		n.Body = v.single(n.Body)
		js.Walk(v, n.Cond)
		return nil
	case *js.WithStmt:
		js.Walk(v, n.Cond)
		n.Body = v.single(n.Body)
		return nil
	case *js.LabelledStmt:
		n.Value = v.single(n.Value)
		return nil
	}
	return v
}

func (v *siteVisitor) Exit(js.INode) {}

func (v *siteVisitor) stmts(list []js.IStmt) []js.IStmt {
	out := list[:0]
	for _, s := range list {
		if v.f.err != nil {
			return list
		}
		if repl, keep := v.stmt(s); keep {
			out = append(out, repl)
		}
	}
	return out
}

// single handles a statement slot that is not part of a list. A removed
// statement leaves an empty statement behind.
func (v *siteVisitor) single(s js.IStmt) js.IStmt {
	repl, keep := v.stmt(s)
	if !keep {
		return &js.EmptyStmt{}
	}
	return repl
}

// stmt compiles s when it is a literal site and reports its replacement.
func (v *siteVisitor) stmt(s js.IStmt) (js.IStmt, bool) {
	switch s := s.(type) {
	case *js.VarDecl:
		if s.TokenType != js.ConstToken || len(s.List) != 1 || s.List[0].Default == nil {
			break
		}
		binding, ok := s.List[0].Binding.(*js.Var)
		if !ok {
			break
		}
		m, err := v.f.consts.Match(s.List[0].Default, v.f.t.opts.Marker)
		if err != nil {
			v.f.err = v.f.fail(err, "compile stylesheet", s.List[0].Default)
			return s, true
		}
		if m.OK {
			return v.f.declaration(s, binding, m)
		}

	case *js.ExprStmt:
		m, err := v.f.consts.Match(s.Value, v.f.t.opts.Marker)
		if err != nil {
			v.f.err = v.f.fail(err, "compile stylesheet", s.Value)
			return s, true
		}
		if m.OK {
			return v.f.expression(s, m)
		}
	}

	js.Walk(v, s)
	return s, true
}

// declaration compiles a const-bound literal and records its class table.
func (f *file) declaration(s *js.VarDecl, binding *js.Var, m literal.Match) (js.IStmt, bool) {
	res, err := f.t.adapter.Process(f.path, m.Raw)
	if err != nil {
		f.err = f.fail(err, "compile stylesheet", m.Node)
		return s, true
	}
	f.t.aliases.Set(binding, res.Classes)

	line, col := f.position(m.Node)
	f.result.Sites = append(f.result.Sites, Site{
		Kind:    literal.Declaration,
		Binding: string(binding.Name()),
		Line:    line,
		Column:  col,
		Classes: res.Classes,
		Bytes:   len(res.CSS),
	})
	f.t.logger.Debug("compiled stylesheet",
		"file", f.path, "kind", literal.Declaration.String(), "binding", string(binding.Name()),
		"classes", len(res.Classes), "bytes", len(res.CSS))

	if f.t.opts.Target != "" {
		f.t.bundles.Append(f.t.opts.Target, f.path, res.CSS)
		return nil, false
	}
	return markerCall(m.Tag, res.CSS), true
}

// expression minifies an unbound literal statement.
func (f *file) expression(s *js.ExprStmt, m literal.Match) (js.IStmt, bool) {
	css, err := f.t.adapter.Minify(m.Raw)
	if err != nil {
		f.err = f.fail(err, "compile stylesheet", m.Node)
		return s, true
	}

	line, col := f.position(m.Node)
	f.result.Sites = append(f.result.Sites, Site{
		Kind:   literal.Expression,
		Line:   line,
		Column: col,
		Bytes:  len(css),
	})
	f.t.logger.Debug("compiled stylesheet",
		"file", f.path, "kind", literal.Expression.String(), "bytes", len(css))

	if f.t.opts.Target != "" {
		contribution := m.Raw
		if f.t.opts.BareExtract == BareMinified {
			contribution = css
		}
		f.t.bundles.Append(f.t.opts.Target, f.path, contribution)
		return nil, false
	}
	if css == m.Raw {
		return s, true
	}
	return markerCall(m.Tag, css), true
}

// markerCall builds the statement marker("css").
func markerCall(tag js.IExpr, css string) js.IStmt {
	return &js.ExprStmt{Value: &js.CallExpr{
		X: tag,
		Args: js.Args{List: []js.Arg{{
			Value: &js.LiteralExpr{TokenType: js.StringToken, Data: []byte(literal.Quote(css))},
		}}},
	}}
}

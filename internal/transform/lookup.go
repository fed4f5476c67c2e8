package transform

import (
	"github.com/tdewolff/parse/v2/js"
	"github.com/yacobolo/cssmod/internal/domain"
	"github.com/yacobolo/cssmod/internal/literal"
	"go.trai.ch/zerr"
)

// lookupVisitor replaces ident("class") calls on stylesheet bindings with the
// scoped class name.
type lookupVisitor struct {
	f *file
}

func (v *lookupVisitor) Enter(n js.INode) js.IVisitor {
	if v.f.err != nil {
		return nil
	}
	for _, slot := range exprSlots(n) {
		if *slot == nil {
			continue
		}
		repl, err := v.f.lookup(*slot)
		if err != nil {
			v.f.err = err
			return nil
		}
		if repl != nil {
			*slot = repl
		}
	}
	return v
}

func (v *lookupVisitor) Exit(js.INode) {}

// lookup returns the literal replacing expr, or nil when expr is not a lookup.
func (f *file) lookup(expr js.IExpr) (js.IExpr, error) {
	call, ok := expr.(*js.CallExpr)
	if !ok || call.Optional || len(call.Args.List) != 1 {
		return nil, nil
	}
	callee, ok := call.X.(*js.Var)
	if !ok {
		return nil, nil
	}
	if _, bound := f.t.aliases.Get(callee); !bound {
		return nil, nil
	}

	arg := call.Args.List[0]
	class, ok := f.consts.Evaluate(arg.Value)
	if arg.Rest || !ok {
		err := zerr.With(zerr.Wrap(domain.ErrNonConstantLookupArgument, "resolve class name"), "expr", literal.Source(call))
		return nil, f.fail(err, "rewrite lookup", arg.Value)
	}
	scoped, err := f.t.aliases.Resolve(callee, class)
	if err != nil {
		return nil, f.fail(err, "rewrite lookup", arg.Value)
	}

	f.result.Lookups++
	return &js.LiteralExpr{TokenType: js.StringToken, Data: []byte(literal.Quote(scoped))}, nil
}

// exprSlots returns pointers to the expression fields of n that may hold a call.
func exprSlots(n js.INode) []*js.IExpr {
	switch n := n.(type) {
	case *js.ExprStmt:
		return []*js.IExpr{&n.Value}
	case *js.IfStmt:
		return []*js.IExpr{&n.Cond}
	case *js.DoWhileStmt:
		return []*js.IExpr{&n.Cond}
	case *js.WhileStmt:
		return []*js.IExpr{&n.Cond}
	case *js.ForStmt:
		return []*js.IExpr{&n.Init, &n.Cond, &n.Post}
	case *js.ForInStmt:
		return []*js.IExpr{&n.Init, &n.Value}
	case *js.ForOfStmt:
		return []*js.IExpr{&n.Init, &n.Value}
	case *js.CaseClause:
		return []*js.IExpr{&n.Cond}
	case *js.SwitchStmt:
		return []*js.IExpr{&n.Init}
	case *js.ReturnStmt:
		return []*js.IExpr{&n.Value}
	case *js.WithStmt:
		return []*js.IExpr{&n.Cond}
	case *js.ThrowStmt:
		return []*js.IExpr{&n.Value}
	case *js.ExportStmt:
		return []*js.IExpr{&n.Decl}
	case *js.PropertyName:
		return []*js.IExpr{&n.Computed}
	case *js.BindingElement:
		return []*js.IExpr{&n.Default}
	case *js.Field:
		return []*js.IExpr{&n.Init}
	case *js.ClassDecl:
		// Fields are walked by value, so their initializers are rewritten from here.
		slots := []*js.IExpr{&n.Extends}
		for i := range n.List {
			if n.List[i].Method == nil && n.List[i].StaticBlock == nil {
				slots = append(slots, &n.List[i].Field.Init)
			}
		}
		return slots
	case *js.Element:
		return []*js.IExpr{&n.Value}
	case *js.Property:
		return []*js.IExpr{&n.Value, &n.Init}
	case *js.TemplatePart:
		return []*js.IExpr{&n.Expr}
	case *js.TemplateExpr:
		return []*js.IExpr{&n.Tag}
	case *js.GroupExpr:
		return []*js.IExpr{&n.X}
	case *js.IndexExpr:
		return []*js.IExpr{&n.X, &n.Y}
	case *js.DotExpr:
		return []*js.IExpr{&n.X}
	case *js.Arg:
		return []*js.IExpr{&n.Value}
	case *js.NewExpr:
		return []*js.IExpr{&n.X}
	case *js.CallExpr:
		return []*js.IExpr{&n.X}
	case *js.UnaryExpr:
		return []*js.IExpr{&n.X}
	case *js.BinaryExpr:
		return []*js.IExpr{&n.X, &n.Y}
	case *js.CondExpr:
		return []*js.IExpr{&n.Cond, &n.X, &n.Y}
	case *js.YieldExpr:
		return []*js.IExpr{&n.X}
	case *js.CommaExpr:
		slots := make([]*js.IExpr, len(n.List))
		for i := range n.List {
			slots[i] = &n.List[i]
		}
		return slots
	}
	return nil
}

package stylesheet

// Walk calls fn for every node depth-first, parents before their children.
func Walk(nodes []*Node, fn func(n *Node)) {
	for _, n := range nodes {
		fn(n)
		Walk(n.Children, fn)
	}
}

// Filter removes, at every depth, the nodes for which keep returns false.
// Children are filtered before their parent is tested.
func Filter(nodes []*Node, keep func(n *Node) bool) []*Node {
	out := nodes[:0]
	for _, n := range nodes {
		if len(n.Children) > 0 {
			n.Children = Filter(n.Children, keep)
		}
		if keep(n) {
			out = append(out, n)
		}
	}
	return out
}

// Blocks calls fn for the top-level node list and for the children of every
// rule or block at-rule, giving passes a place to rewrite sibling lists.
func Blocks(s *Sheet, fn func(nodes []*Node) []*Node) {
	s.Nodes = fn(s.Nodes)
	var visit func(nodes []*Node)
	visit = func(nodes []*Node) {
		for _, n := range nodes {
			if n.Kind == DeclNode || n.Kind == CommentNode {
				continue
			}
			n.Children = fn(n.Children)
			visit(n.Children)
		}
	}
	visit(s.Nodes)
}

// IsKeyframes reports whether n is a @keyframes at-rule, vendor prefixed or not.
func IsKeyframes(n *Node) bool {
	return n.Kind == AtRuleNode && UnprefixedName(n.Name) == "@keyframes"
}

// UnprefixedName strips a vendor prefix such as "-webkit-" from a property or
// at-keyword ("@-webkit-keyframes" becomes "@keyframes").
func UnprefixedName(name string) string {
	at := ""
	if len(name) > 0 && name[0] == '@' {
		at, name = "@", name[1:]
	}
	if len(name) > 1 && name[0] == '-' && name[1] != '-' {
		for i := 1; i < len(name); i++ {
			if name[i] == '-' {
				return at + name[i+1:]
			}
		}
	}
	return at + name
}

// Rules calls fn for every qualified rule, reporting whether it is a keyframe
// block inside @keyframes.
func Rules(nodes []*Node, fn func(rule *Node, keyframe bool)) {
	var visit func(nodes []*Node, keyframe bool)
	visit = func(nodes []*Node, keyframe bool) {
		for _, n := range nodes {
			switch n.Kind {
			case RuleNode:
				fn(n, keyframe)
			case AtRuleNode:
				visit(n.Children, IsKeyframes(n))
			}
		}
	}
	visit(nodes, false)
}

// Decls calls fn for every declaration at any depth.
func Decls(nodes []*Node, fn func(decl *Node)) {
	Walk(nodes, func(n *Node) {
		if n.Kind == DeclNode {
			fn(n)
		}
	})
}

package passes

import (
	"github.com/yacobolo/cssmod/internal/stylesheet"
)

// DiscardEmpty removes rules and block at-rules without content, and declarations
// without a value.
func DiscardEmpty() Pass {
	return treePass{name: NameDiscardEmpty, fn: func(s *stylesheet.Sheet) {
		s.Nodes = stylesheet.Filter(s.Nodes, func(n *stylesheet.Node) bool {
			switch n.Kind {
			case stylesheet.RuleNode:
				return len(n.Children) > 0
			case stylesheet.AtRuleNode:
				return !n.Block || len(n.Children) > 0 || n.Raw != ""
			case stylesheet.DeclNode:
				return n.Value != ""
			}
			return true
		})
	}}
}

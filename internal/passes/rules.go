package passes

import (
	"github.com/yacobolo/cssmod/internal/stylesheet"
)

// MergeRules joins adjacent rules that share a selector list, and adjacent rules
// that share an identical body.
func MergeRules() Pass {
	return treePass{name: NameMergeRules, fn: func(s *stylesheet.Sheet) {
		stylesheet.Blocks(s, mergeAdjacent)
	}}
}

func mergeAdjacent(nodes []*stylesheet.Node) []*stylesheet.Node {
	out := make([]*stylesheet.Node, 0, len(nodes))
	for _, n := range nodes {
		if len(out) == 0 || n.Kind != stylesheet.RuleNode || !hasOnlyDecls(n) {
			out = append(out, n)
			continue
		}
		prev := out[len(out)-1]
		if prev.Kind != stylesheet.RuleNode || !hasOnlyDecls(prev) {
			out = append(out, n)
			continue
		}

		switch {
		case prev.Prelude == n.Prelude:
			prev.Children = dedupeSiblings(append(prev.Children, n.Children...))
		case stylesheet.Body(prev) == stylesheet.Body(n) && len(n.Children) > 0:
			prev.Prelude = prev.Prelude + "," + n.Prelude
		default:
			out = append(out, n)
		}
	}
	return out
}

func hasOnlyDecls(n *stylesheet.Node) bool {
	for _, c := range n.Children {
		if c.Kind != stylesheet.DeclNode {
			return false
		}
	}
	return true
}

package passes

import (
	"github.com/yacobolo/cssmod/internal/stylesheet"
)

// DiscardDuplicates removes nodes that are exact repeats of a later sibling.
// The last occurrence wins, which keeps the cascade unchanged.
func DiscardDuplicates() Pass {
	return treePass{name: NameDiscardDuplicates, fn: func(s *stylesheet.Sheet) {
		stylesheet.Blocks(s, dedupeSiblings)
	}}
}

func dedupeSiblings(nodes []*stylesheet.Node) []*stylesheet.Node {
	if len(nodes) < 2 {
		return nodes
	}
	seen := make(map[string]bool, len(nodes))
	keep := make([]bool, len(nodes))
	for i := len(nodes) - 1; i >= 0; i-- {
		key := nodeKey(nodes[i])
		if !seen[key] {
			seen[key] = true
			keep[i] = true
		}
	}
	out := nodes[:0]
	for i, n := range nodes {
		if keep[i] {
			out = append(out, n)
		}
	}
	return out
}

// nodeKey prints a node on its own so that equal nodes get equal keys.
func nodeKey(n *stylesheet.Node) string {
	return (&stylesheet.Sheet{Nodes: []*stylesheet.Node{n}}).String()
}

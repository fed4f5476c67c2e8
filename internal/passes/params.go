package passes

import (
	"strings"

	"github.com/yacobolo/cssmod/internal/stylesheet"
)

var mediaKeywords = []string{"and", "not", "only", "or"}

// MinifyParams normalizes at-rule parameters. Media query lists are lowercased
// on their keywords, stripped of a redundant "all and", deduplicated and sorted.
func MinifyParams() Pass {
	return treePass{name: NameMinifyParams, fn: func(s *stylesheet.Sheet) {
		stylesheet.Walk(s.Nodes, func(n *stylesheet.Node) {
			if n.Kind != stylesheet.AtRuleNode {
				return
			}
			switch stylesheet.UnprefixedName(n.Name) {
			case "@media", "@custom-media":
				queries := stylesheet.SplitList(n.Prelude, ',')
				for i, q := range queries {
					queries[i] = minifyMediaQuery(q)
				}
				n.Prelude = strings.Join(sortUnique(queries), ",")
			case "@supports":
				n.Prelude = lowerKeywords(strings.TrimSpace(n.Prelude))
			}
		})
	}}
}

func minifyMediaQuery(q string) string {
	q = lowerKeywords(strings.TrimSpace(q))
	if rest, ok := strings.CutPrefix(q, "all and "); ok {
		q = rest
	}
	return q
}

// lowerKeywords lowercases the logical keywords of a media or supports condition.
func lowerKeywords(q string) string {
	fields := strings.Split(q, " ")
	for i, f := range fields {
		for _, kw := range mediaKeywords {
			if strings.EqualFold(f, kw) {
				fields[i] = kw
			}
		}
	}
	return strings.Join(fields, " ")
}

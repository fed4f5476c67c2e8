package passes

import (
	"github.com/yacobolo/cssmod/internal/stylesheet"
)

// NormalizeCharset removes @charset rules. When the sheet contains non-ASCII text
// the first existing @charset is kept at the top. A missing one is never added.
func NormalizeCharset() Pass {
	return treePass{name: NameNormalizeCharset, fn: func(s *stylesheet.Sheet) {
		var first *stylesheet.Node
		s.Nodes = stylesheet.Filter(s.Nodes, func(n *stylesheet.Node) bool {
			if n.Kind == stylesheet.AtRuleNode && n.Name == "@charset" {
				if first == nil {
					first = n
				}
				return false
			}
			return true
		})
		if first != nil && !isASCII(s.String()) {
			s.Nodes = append([]*stylesheet.Node{first}, s.Nodes...)
		}
	}}
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}

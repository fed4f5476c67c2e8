package passes

import (
	"strings"

	"github.com/yacobolo/cssmod/internal/stylesheet"
)

// DiscardComments removes comments, keeping /*! ... */ license comments.
func DiscardComments() Pass {
	return treePass{name: NameDiscardComments, fn: func(s *stylesheet.Sheet) {
		s.Nodes = stylesheet.Filter(s.Nodes, func(n *stylesheet.Node) bool {
			return n.Kind != stylesheet.CommentNode || strings.HasPrefix(n.Value, "/*!")
		})
	}}
}

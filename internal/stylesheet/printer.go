package stylesheet

import "strings"

// String prints the sheet in minified form.
func (s *Sheet) String() string {
	var b strings.Builder
	writeNodes(&b, s.Nodes)
	return b.String()
}

func writeNodes(b *strings.Builder, nodes []*Node) {
	for i, n := range nodes {
		switch n.Kind {
		case CommentNode:
			b.WriteString(n.Value)

		case DeclNode:
			b.WriteString(n.Name)
			b.WriteByte(':')
			b.WriteString(n.Value)
			if n.Important {
				b.WriteString("!important")
			}
			if i+1 < len(nodes) {
				b.WriteByte(';')
			}

		case RuleNode:
			b.WriteString(n.Prelude)
			b.WriteByte('{')
			writeNodes(b, n.Children)
			b.WriteByte('}')

		case AtRuleNode:
			b.WriteString(n.Name)
			if n.Prelude != "" {
				b.WriteByte(' ')
				b.WriteString(n.Prelude)
			}
			if !n.Block {
				b.WriteByte(';')
				continue
			}
			b.WriteByte('{')
			if n.Raw != "" {
				b.WriteString(strings.TrimSpace(n.Raw))
			} else {
				writeNodes(b, n.Children)
			}
			b.WriteByte('}')
		}
	}
}

// Body prints only the children of n, as they appear between its braces.
func Body(n *Node) string {
	var b strings.Builder
	writeNodes(&b, n.Children)
	return b.String()
}

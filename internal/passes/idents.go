package passes

import (
	"strings"

	"github.com/yacobolo/cssmod/internal/stylesheet"
)

// MergeIdents merges @keyframes rules with identical bodies into the first one
// and points animation references at the surviving name.
func MergeIdents() Pass {
	return treePass{name: NameMergeIdents, fn: func(s *stylesheet.Sheet) {
		type seenKeyframes struct {
			vendor string
			body   string
		}
		first := make(map[seenKeyframes]string)
		renamed := make(map[string]string)

		s.Nodes = stylesheet.Filter(s.Nodes, func(n *stylesheet.Node) bool {
			if !stylesheet.IsKeyframes(n) {
				return true
			}
			key := seenKeyframes{vendor: n.Name, body: stylesheet.Body(n)}
			if name, ok := first[key]; ok && name != n.Prelude {
				renamed[n.Prelude] = name
				return false
			}
			first[key] = n.Prelude
			return true
		})
		if len(renamed) == 0 {
			return
		}

		stylesheet.Decls(s.Nodes, func(d *stylesheet.Node) {
			switch stylesheet.UnprefixedName(d.Name) {
			case "animation", "animation-name":
				d.Value = renameIdents(d.Value, renamed)
			}
		})
	}}
}

// renameIdents replaces whole space or comma separated words of value.
func renameIdents(value string, renamed map[string]string) string {
	parts := stylesheet.SplitList(value, ',')
	for i, part := range parts {
		fields := stylesheet.Fields(part)
		for j, f := range fields {
			if to, ok := renamed[f]; ok {
				fields[j] = to
			}
		}
		parts[i] = strings.Join(fields, " ")
	}
	return strings.Join(parts, ",")
}

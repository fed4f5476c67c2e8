package passes

import (
	"strings"

	"github.com/yacobolo/cssmod/internal/stylesheet"
)

// DiscardUnused removes @keyframes, @counter-style and @font-face rules that no
// declaration of the sheet refers to.
func DiscardUnused() Pass {
	return treePass{name: NameDiscardUnused, fn: func(s *stylesheet.Sheet) {
		animations := make(map[string]bool)
		counters := make(map[string]bool)
		fonts := make(map[string]bool)

		stylesheet.Rules(s.Nodes, func(rule *stylesheet.Node, keyframe bool) {
			if keyframe {
				return
			}
			for _, d := range rule.Children {
				if d.Kind != stylesheet.DeclNode {
					continue
				}
				switch stylesheet.UnprefixedName(d.Name) {
				case "animation", "animation-name":
					addIdents(animations, d.Value)
				case "list-style", "list-style-type", "system":
					addIdents(counters, d.Value)
				case "font", "font-family":
					for _, family := range stylesheet.Args(d.Value) {
						addFamily(fonts, family)
					}
				}
			}
		})

		s.Nodes = stylesheet.Filter(s.Nodes, func(n *stylesheet.Node) bool {
			if n.Kind != stylesheet.AtRuleNode {
				return true
			}
			switch stylesheet.UnprefixedName(n.Name) {
			case "@keyframes":
				return animations[unquote(n.Prelude)]
			case "@counter-style":
				return counters[n.Prelude]
			case "@font-face":
				for _, d := range n.Children {
					if d.Kind == stylesheet.DeclNode && d.Name == "font-family" {
						return fonts[strings.ToLower(unquote(d.Value))]
					}
				}
			}
			return true
		})
	}}
}

func addIdents(set map[string]bool, value string) {
	for _, part := range stylesheet.Args(value) {
		for _, field := range stylesheet.Fields(part) {
			set[unquote(field)] = true
		}
	}
}

// addFamily records a family name. In the font shorthand the family is the
// trailing part of the first comma-separated entry.
func addFamily(set map[string]bool, family string) {
	family = strings.ToLower(unquote(family))
	set[family] = true
	if fields := stylesheet.Fields(family); len(fields) > 1 {
		set[unquote(fields[len(fields)-1])] = true
	}
}

func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}

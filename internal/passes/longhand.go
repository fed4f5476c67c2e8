package passes

import (
	"strings"

	"github.com/yacobolo/cssmod/internal/stylesheet"
)

var boxSides = []string{"top", "right", "bottom", "left"}

// MergeLonghand replaces a complete set of margin-* or padding-* declarations with
// the shortest equivalent shorthand.
func MergeLonghand() Pass {
	return treePass{name: NameMergeLonghand, fn: func(s *stylesheet.Sheet) {
		stylesheet.Rules(s.Nodes, func(rule *stylesheet.Node, _ bool) {
			for _, property := range []string{"margin", "padding"} {
				rule.Children = mergeBox(rule.Children, property)
			}
		})
	}}
}

func mergeBox(decls []*stylesheet.Node, property string) []*stylesheet.Node {
	found := make(map[string]*stylesheet.Node, 4)
	last := -1
	for i, d := range decls {
		if d.Kind != stylesheet.DeclNode {
			continue
		}
		if d.Name == property {
			return decls
		}
		side, ok := strings.CutPrefix(d.Name, property+"-")
		if !ok {
			continue
		}
		if _, dup := found[side]; dup {
			return decls
		}
		found[side] = d
		last = i
	}
	if len(found) != 4 {
		return decls
	}

	values := make([]string, 4)
	important := found["top"].Important
	for i, side := range boxSides {
		d, ok := found[side]
		if !ok || d.Important != important || strings.Contains(d.Value, " ") {
			return decls
		}
		values[i] = d.Value
	}

	merged := &stylesheet.Node{
		Kind:      stylesheet.DeclNode,
		Name:      property,
		Value:     strings.Join(shortenBox(values), " "),
		Important: important,
	}
	out := make([]*stylesheet.Node, 0, len(decls)-3)
	for i, d := range decls {
		if i == last {
			out = append(out, merged)
			continue
		}
		if d.Kind == stylesheet.DeclNode && strings.HasPrefix(d.Name, property+"-") && found[strings.TrimPrefix(d.Name, property+"-")] == d {
			continue
		}
		out = append(out, d)
	}
	return out
}

// shortenBox applies the box shorthand collapsing rules to top right bottom left.
func shortenBox(v []string) []string {
	top, right, bottom, left := v[0], v[1], v[2], v[3]
	switch {
	case top == right && right == bottom && bottom == left:
		return []string{top}
	case top == bottom && right == left:
		return []string{top, right}
	case right == left:
		return []string{top, right, bottom}
	}
	return v
}

package passes

import (
	"github.com/yacobolo/cssmod/internal/stylesheet"
)

// prefixedProperties lists the vendor prefixes still required by the last three
// major versions of the tracked browsers, in the order they are emitted.
var prefixedProperties = map[string][]string{
	"appearance":           {"-webkit-", "-moz-"},
	"backdrop-filter":      {"-webkit-"},
	"backface-visibility":  {"-webkit-"},
	"box-decoration-break": {"-webkit-"},
	"clip-path":            {"-webkit-"},
	"hyphens":              {"-webkit-", "-ms-"},
	"mask":                 {"-webkit-"},
	"mask-image":           {"-webkit-"},
	"mask-size":            {"-webkit-"},
	"mask-position":        {"-webkit-"},
	"mask-repeat":          {"-webkit-"},
	"tab-size":             {"-moz-"},
	"text-size-adjust":     {"-webkit-", "-moz-", "-ms-"},
	"user-select":          {"-webkit-", "-moz-", "-ms-"},
}

// prefixedValues lists values that need a prefixed fallback declaration.
var prefixedValues = map[string]map[string][]string{
	"position": {"sticky": {"-webkit-"}},
}

// Autoprefixer inserts vendor-prefixed declarations before their standard form.
// Output is not cascade-aligned; every declaration is emitted flat.
func Autoprefixer() Pass {
	return treePass{name: NameAutoprefixer, fn: func(s *stylesheet.Sheet) {
		stylesheet.Rules(s.Nodes, func(rule *stylesheet.Node, _ bool) {
			rule.Children = prefixDecls(rule.Children)
		})
	}}
}

func prefixDecls(decls []*stylesheet.Node) []*stylesheet.Node {
	present := make(map[string]bool)
	for _, d := range decls {
		if d.Kind == stylesheet.DeclNode {
			present[d.Name+":"+d.Value] = true
			present[d.Name] = true
		}
	}

	out := make([]*stylesheet.Node, 0, len(decls))
	for _, d := range decls {
		if d.Kind != stylesheet.DeclNode {
			out = append(out, d)
			continue
		}
		for _, prefix := range prefixedProperties[d.Name] {
			if !present[prefix+d.Name] {
				out = append(out, &stylesheet.Node{Kind: stylesheet.DeclNode, Name: prefix + d.Name, Value: d.Value, Important: d.Important})
			}
		}
		for _, prefix := range prefixedValues[d.Name][d.Value] {
			if !present[d.Name+":"+prefix+d.Value] {
				out = append(out, &stylesheet.Node{Kind: stylesheet.DeclNode, Name: d.Name, Value: prefix + d.Value, Important: d.Important})
			}
		}
		out = append(out, d)
	}
	return out
}

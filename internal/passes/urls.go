package passes

import (
	"strings"

	"github.com/tdewolff/parse/v2/css"
	"github.com/yacobolo/cssmod/internal/stylesheet"
)

// NormalizeURL unquotes url() arguments that need no quoting and drops a
// leading "./" from relative references.
func NormalizeURL() Pass {
	return treePass{name: NameNormalizeURL, fn: func(s *stylesheet.Sheet) {
		stylesheet.Walk(s.Nodes, func(n *stylesheet.Node) {
			switch {
			case n.Kind == stylesheet.DeclNode && strings.Contains(n.Value, "url("):
				n.Value = stylesheet.MapTokens(n.Value, normalizeURLToken)
			case n.Kind == stylesheet.AtRuleNode && n.Name == "@import":
				n.Prelude = stylesheet.MapTokens(n.Prelude, normalizeURLToken)
			}
		})
	}}
}

func normalizeURLToken(tt css.TokenType, data string) string {
	if tt != css.URLToken {
		return data
	}
	lower := strings.ToLower(data)
	if !strings.HasPrefix(lower, "url(") || !strings.HasSuffix(data, ")") {
		return data
	}
	inner := strings.TrimSpace(data[4 : len(data)-1])
	unquoted := unquote(inner)
	if unquoted == inner && (strings.HasPrefix(inner, "\"") || strings.HasPrefix(inner, "'")) {
		return data
	}
	if rest, ok := strings.CutPrefix(unquoted, "./"); ok && rest != "" {
		unquoted = rest
	}
	if strings.ContainsAny(unquoted, " \t\n\"'()\\") {
		return "url(" + inner + ")"
	}
	return "url(" + unquoted + ")"
}

package passes

import (
	"strings"

	"github.com/yacobolo/cssmod/internal/stylesheet"
)

var fontWeights = map[string]string{"normal": "400", "bold": "700"}

// genericFamilies must stay unquoted keywords; quoting them changes their meaning.
var genericFamilies = map[string]bool{
	"serif": true, "sans-serif": true, "monospace": true, "cursive": true, "fantasy": true,
	"system-ui": true, "ui-serif": true, "ui-sans-serif": true, "ui-monospace": true,
	"ui-rounded": true, "math": true, "emoji": true, "fangsong": true,
	"inherit": true, "initial": true, "unset": true, "revert": true, "default": true,
}

// MinifyFontValues shortens font weights and font-family lists.
func MinifyFontValues() Pass {
	return declPass(NameMinifyFontValues, func(decl *stylesheet.Node) {
		switch decl.Name {
		case "font-weight":
			if w, ok := fontWeights[strings.ToLower(decl.Value)]; ok {
				decl.Value = w
			}
		case "font-family":
			decl.Value = minifyFamilies(decl.Value)
		}
	})
}

func minifyFamilies(value string) string {
	families := stylesheet.Args(value)
	seen := make(map[string]bool, len(families))
	out := make([]string, 0, len(families))
	for _, family := range families {
		family = unquoteFamily(family)
		key := strings.ToLower(family)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, family)
	}
	return strings.Join(out, ",")
}

// unquoteFamily drops quotes from a family name made of plain identifiers
// that does not collide with a generic family keyword.
func unquoteFamily(family string) string {
	if len(family) < 2 || family[0] != '"' && family[0] != '\'' || family[len(family)-1] != family[0] {
		return family
	}
	inner := family[1 : len(family)-1]
	if genericFamilies[strings.ToLower(inner)] {
		return family
	}
	for _, word := range strings.Split(inner, " ") {
		if !isIdent(word) {
			return family
		}
	}
	return inner
}

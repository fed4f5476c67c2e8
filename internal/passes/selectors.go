package passes

import (
	"sort"
	"strings"

	"github.com/yacobolo/cssmod/internal/stylesheet"
)

var legacyPseudoElements = []string{"before", "after", "first-line", "first-letter"}

var nthReplacements = map[string]string{
	"(2n+1)": "(odd)",
	"(even)": "(2n)",
}

// MinifySelectors normalizes each selector, then sorts and deduplicates the list.
// Keyframe selectors use their shortest form ("from" becomes "0%", "100%" becomes "to").
func MinifySelectors() Pass {
	return treePass{name: NameMinifySelectors, fn: func(s *stylesheet.Sheet) {
		stylesheet.Rules(s.Nodes, func(rule *stylesheet.Node, keyframe bool) {
			if keyframe {
				rule.Prelude = minifyKeyframeSelector(rule.Prelude)
				return
			}
			parts := stylesheet.SplitList(rule.Prelude, ',')
			for i, part := range parts {
				parts[i] = minifySelector(strings.TrimSpace(part))
			}
			rule.Prelude = strings.Join(sortUnique(parts), ",")
		})
	}}
}

// UniqueSelectors sorts and deduplicates the selectors of every rule.
func UniqueSelectors() Pass {
	return treePass{name: NameUniqueSelectors, fn: func(s *stylesheet.Sheet) {
		stylesheet.Rules(s.Nodes, func(rule *stylesheet.Node, keyframe bool) {
			if keyframe {
				return
			}
			parts := stylesheet.SplitList(rule.Prelude, ',')
			for i, part := range parts {
				parts[i] = strings.TrimSpace(part)
			}
			rule.Prelude = strings.Join(sortUnique(parts), ",")
		})
	}}
}

func minifySelector(sel string) string {
	// "*.a" and "*:hover" do not need the universal selector.
	if len(sel) > 1 && sel[0] == '*' && strings.ContainsRune(".#[:", rune(sel[1])) {
		sel = sel[1:]
	}
	for _, pseudo := range legacyPseudoElements {
		sel = strings.ReplaceAll(sel, "::"+pseudo, ":"+pseudo)
	}
	for from, to := range nthReplacements {
		sel = strings.ReplaceAll(sel, from, to)
	}
	return unquoteAttributes(sel)
}

// unquoteAttributes removes quotes from attribute values that are plain identifiers.
func unquoteAttributes(sel string) string {
	if !strings.Contains(sel, "=") {
		return sel
	}
	var b strings.Builder
	for i := 0; i < len(sel); i++ {
		c := sel[i]
		if c == '=' && i+1 < len(sel) && (sel[i+1] == '"' || sel[i+1] == '\'') {
			quote := sel[i+1]
			end := strings.IndexByte(sel[i+2:], quote)
			if end >= 0 {
				inner := sel[i+2 : i+2+end]
				if isIdent(inner) && i+3+end < len(sel) && sel[i+3+end] == ']' {
					b.WriteByte('=')
					b.WriteString(inner)
					i += 2 + end
					continue
				}
			}
		}
		b.WriteByte(c)
	}
	return b.String()
}

func minifyKeyframeSelector(prelude string) string {
	parts := stylesheet.SplitList(prelude, ',')
	for i, part := range parts {
		switch strings.ToLower(strings.TrimSpace(part)) {
		case "from":
			parts[i] = "0%"
		case "100%":
			parts[i] = "to"
		default:
			parts[i] = strings.TrimSpace(part)
		}
	}
	return strings.Join(parts, ",")
}

// isIdent reports whether s is a CSS identifier that needs no quoting.
func isIdent(s string) bool {
	if s == "" || s[0] >= '0' && s[0] <= '9' || strings.HasPrefix(s, "--") {
		return false
	}
	if s[0] == '-' && len(s) > 1 && s[1] >= '0' && s[1] <= '9' {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !(c == '-' || c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c >= 0x80) {
			return false
		}
	}
	return true
}

func sortUnique(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := items[:0]
	for _, item := range items {
		if item == "" || seen[item] {
			continue
		}
		seen[item] = true
		out = append(out, item)
	}
	sort.Strings(out)
	return out
}

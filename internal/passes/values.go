package passes

import (
	"strings"

	"github.com/tdewolff/parse/v2/css"
	"github.com/yacobolo/cssmod/internal/stylesheet"
)

// ConvertValues normalizes numbers and converts times to their shortest unit.
// Length units are never converted.
func ConvertValues() Pass {
	return declPass(NameConvertValues, func(decl *stylesheet.Node) {
		if strings.HasPrefix(decl.Name, "--") {
			return
		}
		decl.Value = stylesheet.MapTokens(decl.Value, func(tt css.TokenType, data string) string {
			switch tt {
			case css.NumberToken, css.PercentageToken, css.DimensionToken:
				return convertNumber(data)
			}
			return data
		})
	})
}

func convertNumber(token string) string {
	num, unit, ok := splitNumber(token)
	if !ok {
		return token
	}
	out := formatNumber(num) + unit

	if strings.EqualFold(unit, "ms") {
		if f, ok := parseNumber(num); ok {
			if seconds := formatFloat(f/1000) + "s"; len(seconds) < len(out) {
				return seconds
			}
		}
	}
	return out
}

var borderStyles = map[string]bool{
	"none": true, "hidden": true, "dotted": true, "dashed": true, "solid": true,
	"double": true, "groove": true, "ridge": true, "inset": true, "outset": true,
}

var borderWidths = map[string]bool{"thin": true, "medium": true, "thick": true}

var orderedShorthands = map[string]bool{
	"border": true, "border-top": true, "border-right": true, "border-bottom": true,
	"border-left": true, "outline": true, "column-rule": true,
}

// OrderedValues rewrites border-like shorthands into the canonical
// width style color order so equal declarations compare equal.
func OrderedValues() Pass {
	return declPass(NameOrderedValues, func(decl *stylesheet.Node) {
		if !orderedShorthands[decl.Name] {
			return
		}
		fields := stylesheet.Fields(decl.Value)
		if len(fields) < 2 || len(fields) > 3 {
			return
		}

		var width, style, color string
		for _, f := range fields {
			lower := strings.ToLower(f)
			switch {
			case borderStyles[lower] && style == "":
				style = f
			case (borderWidths[lower] || isLength(f)) && width == "":
				width = f
			case color == "":
				color = f
			default:
				return
			}
		}

		ordered := make([]string, 0, 3)
		for _, part := range []string{width, style, color} {
			if part != "" {
				ordered = append(ordered, part)
			}
		}
		decl.Value = strings.Join(ordered, " ")
	})
}

// isLength reports whether token is a zero or a number with a unit.
func isLength(token string) bool {
	num, unit, ok := splitNumber(token)
	if !ok {
		return false
	}
	if unit == "" {
		f, ok := parseNumber(num)
		return ok && f == 0
	}
	return unit != "%"
}

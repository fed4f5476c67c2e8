package passes

import (
	"strconv"
	"strings"

	"github.com/tdewolff/parse/v2/css"
	"github.com/yacobolo/cssmod/internal/stylesheet"
)

// hexToName maps hex colors to a named color when the name is shorter.
var hexToName = map[string]string{
	"#f00": "red", "#808080": "gray", "#008000": "green", "#800000": "maroon",
	"#000080": "navy", "#808000": "olive", "#800080": "purple", "#c0c0c0": "silver",
	"#008080": "teal", "#ffa500": "orange", "#ffc0cb": "pink", "#d2b48c": "tan",
	"#ff6347": "tomato", "#f5deb3": "wheat", "#ee82ee": "violet", "#fa8072": "salmon",
	"#a0522d": "sienna", "#fffafa": "snow", "#fffff0": "ivory", "#faf0e6": "linen",
	"#f0e68c": "khaki", "#ffd700": "gold", "#cd853f": "peru", "#dda0dd": "plum",
	"#ff7f50": "coral", "#f5f5dc": "beige", "#ffe4c4": "bisque", "#a52a2a": "brown",
	"#f0ffff": "azure", "#4b0082": "indigo",
}

// nameToHex maps named colors to hex when the hex form is shorter.
var nameToHex = map[string]string{
	"white": "#fff", "black": "#000", "yellow": "#ff0", "fuchsia": "#f0f",
	"magenta": "#f0f", "aqua": "#0ff", "cyan": "#0ff", "aquamarine": "#7fffd4",
	"lightgray": "#d3d3d3", "lightgrey": "#d3d3d3", "darkgray": "#a9a9a9",
	"darkgrey": "#a9a9a9", "lightblue": "#add8e6", "lightgreen": "#90ee90",
	"lightyellow": "#ffffe0", "darkblue": "#00008b", "darkred": "#8b0000",
	"darkgreen": "#006400", "cornflowerblue": "#6495ed", "mediumseagreen": "#3cb371",
	"whitesmoke": "#f5f5f5",
}

// colorProperties are the properties whose identifiers may be color names.
var colorProperties = map[string]bool{
	"color": true, "background": true, "background-color": true, "border": true,
	"border-color": true, "border-top": true, "border-right": true, "border-bottom": true,
	"border-left": true, "border-top-color": true, "border-right-color": true,
	"border-bottom-color": true, "border-left-color": true, "outline": true,
	"outline-color": true, "fill": true, "stroke": true, "box-shadow": true,
	"text-shadow": true, "caret-color": true, "column-rule": true,
	"column-rule-color": true, "text-decoration": true, "text-decoration-color": true,
	"background-image": true, "stop-color": true, "flood-color": true,
}

// Colormin rewrites colors to their shortest equivalent spelling.
func Colormin() Pass {
	return declPass(NameColormin, func(decl *stylesheet.Node) {
		if !colorProperties[stylesheet.UnprefixedName(decl.Name)] {
			return
		}
		value := stylesheet.RewriteFunctions(decl.Value, func(name, args string) (string, bool) {
			if name != "rgb" && name != "rgba" {
				return "", false
			}
			hex, ok := rgbToHex(args)
			if !ok {
				return "", false
			}
			return shortestColor(hex), true
		})
		decl.Value = stylesheet.MapTokens(value, func(tt css.TokenType, data string) string {
			switch tt {
			case css.HashToken:
				return shortestColor(data)
			case css.IdentToken:
				if hex, ok := nameToHex[strings.ToLower(data)]; ok {
					return hex
				}
			}
			return data
		})
	})
}

// shortestColor lowercases a hex color, collapses doubled digits and prefers a
// shorter color name when there is one.
func shortestColor(hex string) string {
	if !isHexColor(hex) {
		return hex
	}
	hex = strings.ToLower(hex)
	if len(hex) == 7 && hex[1] == hex[2] && hex[3] == hex[4] && hex[5] == hex[6] {
		hex = "#" + string(hex[1]) + string(hex[3]) + string(hex[5])
	}
	if name, ok := hexToName[hex]; ok && len(name) < len(hex) {
		return name
	}
	return hex
}

func isHexColor(s string) bool {
	if len(s) != 4 && len(s) != 7 || s[0] != '#' {
		return false
	}
	for i := 1; i < len(s); i++ {
		c := s[i]
		if !(c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F') {
			return false
		}
	}
	return true
}

// rgbToHex converts integer rgb()/rgba() arguments with an opaque alpha to hex.
func rgbToHex(args string) (string, bool) {
	parts := stylesheet.Args(args)
	if len(parts) == 1 {
		parts = stylesheet.Fields(parts[0])
	}
	if len(parts) == 4 {
		if parts[3] != "1" && parts[3] != "100%" {
			return "", false
		}
		parts = parts[:3]
	}
	if len(parts) != 3 {
		return "", false
	}

	hex := "#"
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 || n > 255 {
			return "", false
		}
		hex += strconv.FormatInt(int64(n)/16, 16) + strconv.FormatInt(int64(n)%16, 16)
	}
	return hex, true
}

package passes

import (
	"strings"

	"github.com/yacobolo/cssmod/internal/stylesheet"
)

var gradientDirections = map[string]string{
	"to top":    "0deg",
	"to right":  "90deg",
	"to bottom": "180deg",
	"to left":   "270deg",
}

// MinifyGradients shortens linear gradient directions to angles and drops the
// implied 0% and 100% positions of the first and last color stops.
func MinifyGradients() Pass {
	return declPass(NameMinifyGradients, func(decl *stylesheet.Node) {
		if !strings.Contains(decl.Value, "gradient(") {
			return
		}
		decl.Value = stylesheet.RewriteFunctions(decl.Value, minifyGradient)
	})
}

func minifyGradient(name, args string) (string, bool) {
	if name != "linear-gradient" && name != "repeating-linear-gradient" {
		return "", false
	}
	parts := stylesheet.Args(args)
	if len(parts) < 2 {
		return "", false
	}

	stops := parts
	if angle, ok := gradientDirections[strings.ToLower(parts[0])]; ok {
		parts[0] = angle
		stops = parts[1:]
	} else if isAngle(parts[0]) {
		stops = parts[1:]
	}

	if name == "linear-gradient" && len(stops) >= 2 {
		if f := stylesheet.Fields(stops[0]); len(f) == 2 && isZero(f[1]) {
			stops[0] = f[0]
		}
		last := len(stops) - 1
		if f := stylesheet.Fields(stops[last]); len(f) == 2 && f[1] == "100%" {
			stops[last] = f[0]
		}
	}
	return name + "(" + strings.Join(parts, ",") + ")", true
}

func isAngle(token string) bool {
	_, unit, ok := splitNumber(token)
	if !ok {
		return false
	}
	switch strings.ToLower(unit) {
	case "deg", "grad", "rad", "turn":
		return true
	}
	return false
}

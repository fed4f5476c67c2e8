package passes

import (
	"math"
	"strconv"
	"strings"
)

// splitNumber separates the numeric prefix of a number, dimension or percentage token.
func splitNumber(token string) (num, unit string, ok bool) {
	i := 0
	if i < len(token) && (token[i] == '+' || token[i] == '-') {
		i++
	}
	digits := 0
	for i < len(token) && (token[i] >= '0' && token[i] <= '9' || token[i] == '.') {
		if token[i] != '.' {
			digits++
		}
		i++
	}
	if digits == 0 {
		return "", "", false
	}
	if i+1 < len(token) && (token[i] == 'e' || token[i] == 'E') {
		next := token[i+1]
		if next >= '0' && next <= '9' || (next == '-' || next == '+') && i+2 < len(token) && token[i+2] >= '0' && token[i+2] <= '9' {
			// Scientific notation is left as written.
			return "", "", false
		}
	}
	return token[:i], token[i:], true
}

// formatNumber drops redundant zeros: "0.50" -> ".5", "-0.5" -> "-.5", "1.0" -> "1".
func formatNumber(num string) string {
	sign := ""
	if num != "" && (num[0] == '-' || num[0] == '+') {
		if num[0] == '-' {
			sign = "-"
		}
		num = num[1:]
	}

	intPart, frac, _ := strings.Cut(num, ".")
	frac = strings.TrimRight(frac, "0")
	intPart = strings.TrimLeft(intPart, "0")

	switch {
	case intPart == "" && frac == "":
		return "0"
	case frac == "":
		return sign + intPart
	default:
		return sign + intPart + "." + frac
	}
}

// parseNumber parses a numeric token prefix.
func parseNumber(num string) (float64, bool) {
	f, err := strconv.ParseFloat(num, 64)
	return f, err == nil
}

// formatFloat renders f with at most five decimals and no redundant zeros.
func formatFloat(f float64) string {
	f = math.Round(f*1e5) / 1e5
	if f == 0 {
		return "0"
	}
	return formatNumber(strconv.FormatFloat(f, 'f', -1, 64))
}

// isZero reports whether a token is a zero number or dimension such as "0" or "0px".
func isZero(token string) bool {
	num, _, ok := splitNumber(token)
	if !ok {
		return false
	}
	f, ok := parseNumber(num)
	return ok && f == 0
}

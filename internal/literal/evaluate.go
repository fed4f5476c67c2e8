package literal

import (
	"math"
	"strconv"
	"strings"

	"github.com/tdewolff/parse/v2/js"
)

// maxDepth bounds identifier resolution so self-referencing consts terminate.
const maxDepth = 64

// Consts maps const-declared variables to their initializer.
type Consts map[*js.Var]js.IExpr

// CollectConsts records every single-name const declaration with an initializer in n.
func CollectConsts(n js.INode) Consts {
	c := make(Consts)
	js.Walk(constCollector(c), n)
	return c
}

type constCollector Consts

func (c constCollector) Enter(n js.INode) js.IVisitor {
	if decl, ok := n.(*js.VarDecl); ok && decl.TokenType == js.ConstToken {
		for _, item := range decl.List {
			if v, ok := item.Binding.(*js.Var); ok && item.Default != nil {
				c[Binding(v)] = item.Default
			}
		}
	}
	return c
}

func (c constCollector) Exit(js.INode) {}

// Evaluate folds expr to a string when it is a compile-time constant.
func Evaluate(expr js.IExpr) (string, bool) {
	return Consts(nil).Evaluate(expr)
}

// Evaluate folds expr to a string, resolving const bindings through c.
// A bare number is not a string and is not confident.
func (c Consts) Evaluate(expr js.IExpr) (string, bool) {
	v, ok := c.eval(expr, 0)
	if !ok || v.number {
		return "", false
	}
	return v.str, true
}

// value is a folded constant: either a string or a number. str holds the JS
// rendering of a number.
type value struct {
	str    string
	num    float64
	number bool
}

func numberValue(f float64) value {
	return value{str: formatNumber(f), num: f, number: true}
}

func (c Consts) eval(expr js.IExpr, depth int) (value, bool) {
	if depth > maxDepth {
		return value{}, false
	}
	switch e := expr.(type) {
	case *js.LiteralExpr:
		switch {
		case e.TokenType == js.StringToken:
			s, ok := unescape(string(e.Data[1 : len(e.Data)-1]))
			return value{str: s}, ok
		case js.IsNumeric(e.TokenType):
			f, ok := parseNumber(string(e.Data))
			if !ok {
				return value{}, false
			}
			return numberValue(f), true
		}

	case *js.TemplateExpr:
		if e.Tag != nil {
			return value{}, false
		}
		return c.template(e, depth)

	case *js.GroupExpr:
		return c.eval(e.X, depth+1)

	case *js.BinaryExpr:
		if e.Op != js.AddToken {
			return value{}, false
		}
		x, ok := c.eval(e.X, depth+1)
		if !ok {
			return value{}, false
		}
		y, ok := c.eval(e.Y, depth+1)
		if !ok {
			return value{}, false
		}
		if x.number && y.number {
			return numberValue(x.num + y.num), true
		}
		return value{str: x.str + y.str}, true

	case *js.Var:
		init, ok := c[Binding(e)]
		if !ok {
			return value{}, false
		}
		return c.eval(init, depth+1)
	}
	return value{}, false
}

// template returns the cooked value of an untagged template literal.
func (c Consts) template(e *js.TemplateExpr, depth int) (value, bool) {
	var b strings.Builder
	for _, part := range e.List {
		// Heads are "`text${" and middles are "}text${".
		s, ok := cook(string(part.Value[1 : len(part.Value)-2]))
		if !ok {
			return value{}, false
		}
		b.WriteString(s)
		sub, ok := c.eval(part.Expr, depth+1)
		if !ok {
			return value{}, false
		}
		b.WriteString(sub.str)
	}
	s, ok := cook(string(e.Tail[1 : len(e.Tail)-1]))
	if !ok {
		return value{}, false
	}
	b.WriteString(s)
	return value{str: b.String()}, true
}

// cook turns raw template text into its value: line terminators are normalized
// to LF before escapes are decoded.
func cook(raw string) (string, bool) {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	raw = strings.ReplaceAll(raw, "\r", "\n")
	return unescape(raw)
}

// unescape decodes the escape sequences of a JS string or template body.
func unescape(s string) (string, bool) {
	if !strings.Contains(s, `\`) {
		return s, true
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' {
			b.WriteByte(s[i])
			continue
		}
		i++
		if i >= len(s) {
			return "", false
		}
		switch c := s[i]; c {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'v':
			b.WriteByte('\v')
		case '0':
			if i+1 < len(s) && s[i+1] >= '0' && s[i+1] <= '9' {
				// Legacy octal escapes are rejected in templates and strict code.
				return "", false
			}
			b.WriteByte(0)
		case '\r':
			// Line continuation.
			if i+1 < len(s) && s[i+1] == '\n' {
				i++
			}
		case '\n':
		case 'x':
			if i+2 >= len(s) {
				return "", false
			}
			r, err := strconv.ParseUint(s[i+1:i+3], 16, 8)
			if err != nil {
				return "", false
			}
			b.WriteRune(rune(r))
			i += 2
		case 'u':
			r, n, ok := unicodeEscape(s[i+1:])
			if !ok {
				return "", false
			}
			i += n
			// A high surrogate followed by an escaped low surrogate forms one code point.
			if r >= 0xd800 && r < 0xdc00 && strings.HasPrefix(s[i+1:], `\u`) {
				if lo, m, ok := unicodeEscape(s[i+3:]); ok && lo >= 0xdc00 && lo < 0xe000 {
					r = 0x10000 + (r-0xd800)<<10 + (lo - 0xdc00)
					i += 2 + m
				}
			}
			b.WriteRune(r)
		default:
			if strings.HasPrefix(s[i:], "\u2028") || strings.HasPrefix(s[i:], "\u2029") {
				// Line continuation over LS or PS.
				i += len("\u2028") - 1
				continue
			}
			b.WriteByte(c)
		}
	}
	return b.String(), true
}

// unicodeEscape parses the part after "\u": either four hex digits or {hex}.
// It returns the rune and the number of bytes consumed.
func unicodeEscape(s string) (rune, int, bool) {
	if strings.HasPrefix(s, "{") {
		end := strings.IndexByte(s, '}')
		if end < 2 {
			return 0, 0, false
		}
		r, err := strconv.ParseUint(s[1:end], 16, 32)
		if err != nil || r > 0x10ffff {
			return 0, 0, false
		}
		return rune(r), end + 1, true
	}
	if len(s) < 4 {
		return 0, 0, false
	}
	r, err := strconv.ParseUint(s[:4], 16, 32)
	if err != nil {
		return 0, 0, false
	}
	return rune(r), 4, true
}

// parseNumber returns the value of a numeric literal. BigInt literals are not
// numbers. Legacy octals such as 010 are not folded.
func parseNumber(lit string) (float64, bool) {
	if strings.HasSuffix(lit, "n") {
		return 0, false
	}
	if len(lit) > 1 && lit[0] == '0' && strings.ContainsRune("xXoObB", rune(lit[1])) {
		n, err := strconv.ParseInt(lit, 0, 64)
		if err != nil {
			return 0, false
		}
		return float64(n), true
	}
	if len(lit) > 1 && lit[0] == '0' && lit[1] >= '0' && lit[1] <= '9' {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(lit, "_", ""), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// formatNumber renders f as JavaScript's Number to String would.
func formatNumber(f float64) string {
	if math.IsNaN(f) {
		return "NaN"
	}
	if math.IsInf(f, 0) {
		if f < 0 {
			return "-Infinity"
		}
		return "Infinity"
	}
	abs := math.Abs(f)
	if abs == 0 {
		return "0"
	}
	if abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	s := strconv.FormatFloat(f, 'e', -1, 64)
	// Go pads the exponent to two digits; JS does not.
	mant, exp, _ := strings.Cut(s, "e")
	sign := exp[0]
	exp = strings.TrimLeft(exp[1:], "0")
	return mant + "e" + string(sign) + exp
}

package passes

import (
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"github.com/yacobolo/cssmod/internal/stylesheet"
)

// Calc folds calc() expressions whose operands can be combined statically,
// such as calc(10px + 5px) or calc(2 * 3em). Mixed units are left alone.
func Calc() Pass {
	return declPass(NameCalc, func(decl *stylesheet.Node) {
		if !strings.Contains(strings.ToLower(decl.Value), "calc(") {
			return
		}
		decl.Value = stylesheet.RewriteFunctions(decl.Value, func(name, args string) (string, bool) {
			if name != "calc" {
				return "", false
			}
			q, ok := evalCalc(args)
			if !ok {
				return "", false
			}
			return q.String(), true
		})
	})
}

// quantity is a number with an optional unit.
type quantity struct {
	value float64
	unit  string
}

func (q quantity) String() string {
	return formatFloat(q.value) + q.unit
}

type calcToken struct {
	op  byte
	num quantity
}

type calcParser struct {
	tokens []calcToken
	pos    int
}

// evalCalc evaluates a calc() argument made of numbers, + - * / and parentheses.
func evalCalc(expr string) (quantity, bool) {
	tokens, ok := lexCalc(expr)
	if !ok || len(tokens) == 0 {
		return quantity{}, false
	}
	p := &calcParser{tokens: tokens}
	q, ok := p.sum()
	if !ok || p.pos != len(p.tokens) {
		return quantity{}, false
	}
	return q, true
}

func lexCalc(expr string) ([]calcToken, bool) {
	l := css.NewLexer(parse.NewInputString(expr))
	var tokens []calcToken
	for {
		tt, data := l.Next()
		switch tt {
		case css.ErrorToken:
			return tokens, true
		case css.WhitespaceToken:
		case css.NumberToken, css.DimensionToken, css.PercentageToken:
			num, unit, ok := splitNumber(string(data))
			if !ok {
				return nil, false
			}
			f, ok := parseNumber(num)
			if !ok {
				return nil, false
			}
			tokens = append(tokens, calcToken{num: quantity{value: f, unit: strings.ToLower(unit)}})
		case css.DelimToken:
			if len(data) != 1 || !strings.ContainsRune("+-*/", rune(data[0])) {
				return nil, false
			}
			tokens = append(tokens, calcToken{op: data[0]})
		case css.LeftParenthesisToken:
			tokens = append(tokens, calcToken{op: '('})
		case css.RightParenthesisToken:
			tokens = append(tokens, calcToken{op: ')'})
		default:
			return nil, false
		}
	}
}

func (p *calcParser) peek() (calcToken, bool) {
	if p.pos >= len(p.tokens) {
		return calcToken{}, false
	}
	return p.tokens[p.pos], true
}

func (p *calcParser) sum() (quantity, bool) {
	left, ok := p.product()
	if !ok {
		return quantity{}, false
	}
	for {
		t, more := p.peek()
		if !more || t.op != '+' && t.op != '-' {
			return left, true
		}
		p.pos++
		right, ok := p.product()
		if !ok || left.unit != right.unit {
			return quantity{}, false
		}
		if t.op == '+' {
			left.value += right.value
		} else {
			left.value -= right.value
		}
	}
}

func (p *calcParser) product() (quantity, bool) {
	left, ok := p.operand()
	if !ok {
		return quantity{}, false
	}
	for {
		t, more := p.peek()
		if !more || t.op != '*' && t.op != '/' {
			return left, true
		}
		p.pos++
		right, ok := p.operand()
		if !ok {
			return quantity{}, false
		}
		if t.op == '*' {
			switch {
			case right.unit == "":
				left.value *= right.value
			case left.unit == "":
				left = quantity{value: left.value * right.value, unit: right.unit}
			default:
				return quantity{}, false
			}
			continue
		}
		if right.unit != "" || right.value == 0 {
			return quantity{}, false
		}
		left.value /= right.value
	}
}

func (p *calcParser) operand() (quantity, bool) {
	t, ok := p.peek()
	if !ok {
		return quantity{}, false
	}
	p.pos++
	switch t.op {
	case 0:
		return t.num, true
	case '(':
		q, ok := p.sum()
		if !ok {
			return quantity{}, false
		}
		if closing, more := p.peek(); !more || closing.op != ')' {
			return quantity{}, false
		}
		p.pos++
		return q, true
	}
	return quantity{}, false
}

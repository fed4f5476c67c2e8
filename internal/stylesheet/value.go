package stylesheet

import (
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// MapTokens re-lexes value and replaces each token by the result of fn.
func MapTokens(value string, fn func(tt css.TokenType, data string) string) string {
	l := css.NewLexer(parse.NewInputString(value))
	var b strings.Builder
	for {
		tt, data := l.Next()
		if tt == css.ErrorToken {
			break
		}
		b.WriteString(fn(tt, string(data)))
	}
	return b.String()
}

// RewriteFunctions rewrites every function call in value, innermost first. fn
// receives the lowercased function name and the already rewritten argument text
// and returns the replacement for the whole call, or false to keep it.
// Quoted strings and url(...) contents are left untouched.
func RewriteFunctions(value string, fn func(name, args string) (string, bool)) string {
	var b strings.Builder
	i := 0
	for i < len(value) {
		c := value[i]
		if c == '"' || c == '\'' {
			end := skipString(value, i)
			b.WriteString(value[i:end])
			i = end
			continue
		}
		if c != '(' {
			b.WriteByte(c)
			i++
			continue
		}

		// Find the function name that was already copied to b.
		written := b.String()
		start := len(written)
		for start > 0 && isNameByte(written[start-1]) {
			start--
		}
		name := written[start:]
		end := matchParen(value, i)
		inner := value[i+1 : end]
		if !strings.EqualFold(name, "url") {
			inner = RewriteFunctions(inner, fn)
		}

		b.Reset()
		b.WriteString(written[:start])
		if name != "" {
			if out, ok := fn(strings.ToLower(name), inner); ok {
				b.WriteString(out)
				i = end + 1
				continue
			}
		}
		b.WriteString(name)
		b.WriteByte('(')
		b.WriteString(inner)
		if end < len(value) {
			b.WriteByte(')')
		}
		i = end + 1
	}
	return b.String()
}

// Args splits function arguments on top-level commas and trims each one.
func Args(args string) []string {
	parts := SplitList(args, ',')
	for i, part := range parts {
		parts[i] = strings.TrimSpace(part)
	}
	return parts
}

func isNameByte(c byte) bool {
	return c == '-' || c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}

// skipString returns the index just past the quoted string starting at i.
func skipString(s string, i int) int {
	quote := s[i]
	for j := i + 1; j < len(s); j++ {
		if s[j] == '\\' {
			j++
		} else if s[j] == quote {
			return j + 1
		}
	}
	return len(s)
}

// matchParen returns the index of the parenthesis closing the one at i, or len(s).
func matchParen(s string, i int) int {
	depth := 0
	for j := i; j < len(s); j++ {
		switch s[j] {
		case '"', '\'':
			j = skipString(s, j) - 1
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return j
			}
		}
	}
	return len(s)
}

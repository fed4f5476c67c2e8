package stylesheet

import (
	"bytes"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// SplitList splits s on sep at nesting depth zero, ignoring separators inside
// parentheses, brackets and quoted strings.
func SplitList(s string, sep byte) []string {
	var parts []string
	depth := 0
	var quote byte
	start := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '(' || c == '[':
			depth++
		case c == ')' || c == ']':
			depth--
		case c == sep && depth == 0:
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	return append(parts, s[start:])
}

// Fields splits a normalized value into its space-separated top-level components.
func Fields(value string) []string {
	var out []string
	for _, part := range SplitList(value, ' ') {
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// wrapper tracks an open parenthesis inside a selector.
type wrapper uint8

const (
	plainParen wrapper = iota
	globalParen
	localParen
)

// RewriteClasses passes every class selector in selector through rename and returns
// the rewritten selector. Classes inside :global(...) keep their name; the
// :global(...) and :local(...) wrappers themselves are removed. A bare :global or
// :local switches the mode for the rest of the selector, up to the next comma.
func RewriteClasses(selector string, rename func(local string) (string, error)) (string, error) {
	l := css.NewLexer(parse.NewInputString(selector))

	var out strings.Builder
	var stack []wrapper
	pendingColon := false
	pendingDot := false
	global := false
	skipSpace := false

	inGlobal := func() bool {
		for i := len(stack) - 1; i >= 0; i-- {
			if stack[i] != plainParen {
				return stack[i] == globalParen
			}
		}
		return global
	}

	for {
		tt, data := l.Next()
		if tt == css.ErrorToken {
			break
		}

		if skipSpace {
			skipSpace = false
			if tt == css.WhitespaceToken {
				continue
			}
		}

		if pendingColon {
			pendingColon = false
			if tt == css.IdentToken {
				switch {
				case bytes.EqualFold(data, []byte("global")):
					global = true
					skipSpace = atCompoundStart(out.String())
					continue
				case bytes.EqualFold(data, []byte("local")):
					global = false
					skipSpace = atCompoundStart(out.String())
					continue
				}
			}
			if tt == css.FunctionToken {
				switch {
				case bytes.EqualFold(data, []byte("global(")):
					stack = append(stack, globalParen)
					continue
				case bytes.EqualFold(data, []byte("local(")):
					stack = append(stack, localParen)
					continue
				}
			}
			out.WriteByte(':')
		}

		if pendingDot {
			pendingDot = false
			if tt == css.IdentToken {
				name := string(data)
				if !inGlobal() {
					scoped, err := rename(name)
					if err != nil {
						return "", err
					}
					name = scoped
				}
				out.WriteByte('.')
				out.WriteString(name)
				continue
			}
			out.WriteByte('.')
		}

		switch tt {
		case css.ColonToken:
			pendingColon = true
			continue
		case css.DelimToken:
			if len(data) == 1 && data[0] == '.' {
				pendingDot = true
				continue
			}
		case css.CommaToken:
			if len(stack) == 0 {
				global = false
			}
		case css.FunctionToken, css.LeftParenthesisToken:
			stack = append(stack, plainParen)
		case css.RightParenthesisToken:
			if n := len(stack); n > 0 {
				top := stack[n-1]
				stack = stack[:n-1]
				if top != plainParen {
					continue
				}
			}
		}
		out.Write(data)
	}

	if pendingColon {
		out.WriteByte(':')
	}
	if pendingDot {
		out.WriteByte('.')
	}
	return out.String(), nil
}

// atCompoundStart reports whether nothing of the current compound selector has
// been written yet.
func atCompoundStart(out string) bool {
	if out == "" {
		return true
	}
	switch out[len(out)-1] {
	case ' ', '\t', '\n', '>', '+', '~', ',', '(':
		return true
	}
	return false
}

// Classes returns the class names used in selector, in order of appearance,
// excluding global ones.
func Classes(selector string) []string {
	var names []string
	_, _ = RewriteClasses(selector, func(local string) (string, error) {
		names = append(names, local)
		return local, nil
	})
	return names
}

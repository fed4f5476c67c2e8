// Package stylesheet parses CSS into a flat rule tree and prints it back minified.
//
// The tree is deliberately shallow: selectors, at-rule parameters and declaration
// values are kept as normalized token text so that individual passes can rewrite
// them with plain string and token operations.
package stylesheet

import (
	"errors"
	"io"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"github.com/yacobolo/cssmod/internal/domain"
	"go.trai.ch/zerr"
)

// Kind identifies the type of a Node.
type Kind uint8

const (
	// CommentNode is a top-level comment; Value holds the full /* ... */ text.
	CommentNode Kind = iota
	// AtRuleNode is an at-rule, with or without a block.
	AtRuleNode
	// RuleNode is a qualified rule; Prelude holds the selector list.
	RuleNode
	// DeclNode is a declaration inside a rule or a declaration-list at-rule.
	DeclNode
)

// Node is one element of the rule tree.
type Node struct {
	Kind Kind
	// Name is the lowercased at-keyword including "@" or the property name.
	Name string
	// Prelude is the selector list of a rule or the parameters of an at-rule.
	Prelude string
	// Value is the declaration value without !important, or the comment text.
	Value     string
	Important bool
	// Block reports whether an at-rule has a { } body.
	Block bool
	// Raw is the verbatim body of an at-rule whose contents are not parsed.
	Raw      string
	Children []*Node
}

// Sheet is a parsed stylesheet.
type Sheet struct {
	Nodes []*Node
}

// Parse builds the rule tree of src. Comments inside blocks are dropped by the
// tokenizer; top-level comments are kept as CommentNode.
func Parse(src string) (*Sheet, error) {
	p := css.NewParser(parse.NewInputString(src), false)

	root := &Node{}
	stack := []*Node{root}
	top := func() *Node { return stack[len(stack)-1] }
	appendNode := func(n *Node) {
		parent := top()
		parent.Children = append(parent.Children, n)
	}

	for {
		gt, _, data := p.Next()
		switch gt {
		case css.ErrorGrammar:
			if p.HasParseError() {
				return nil, zerr.With(zerr.Wrap(domain.ErrInvalidStylesheet, "parse css"), "cause", p.Err().Error())
			}
			if err := p.Err(); err != nil && !errors.Is(err, io.EOF) {
				return nil, zerr.With(zerr.Wrap(domain.ErrInvalidStylesheet, "read css"), "cause", err.Error())
			}
			return &Sheet{Nodes: root.Children}, nil

		case css.CommentGrammar:
			appendNode(&Node{Kind: CommentNode, Value: string(data)})

		case css.AtRuleGrammar:
			appendNode(&Node{Kind: AtRuleNode, Name: string(data), Prelude: strings.TrimSpace(joinTokens(p.Values()))})

		case css.BeginAtRuleGrammar:
			n := &Node{Kind: AtRuleNode, Name: string(data), Prelude: strings.TrimSpace(joinTokens(p.Values())), Block: true}
			appendNode(n)
			stack = append(stack, n)

		case css.BeginRulesetGrammar:
			n := &Node{Kind: RuleNode, Prelude: joinTokens(p.Values())}
			appendNode(n)
			stack = append(stack, n)

		case css.EndAtRuleGrammar, css.EndRulesetGrammar:
			if len(stack) > 1 {
				stack = stack[:len(stack)-1]
			}

		case css.DeclarationGrammar:
			value, important := splitImportant(p.Values())
			appendNode(&Node{Kind: DeclNode, Name: string(data), Value: value, Important: important})

		case css.CustomPropertyGrammar:
			var value string
			if values := p.Values(); len(values) > 0 {
				value = strings.TrimSpace(string(values[0].Data))
			}
			appendNode(&Node{Kind: DeclNode, Name: string(data), Value: value})

		case css.TokenGrammar:
			// Unknown at-rule bodies arrive token by token; CDO/CDC at the top level are dropped.
			if n := top(); n != root {
				n.Raw += string(data)
			}
		}
	}
}

// joinTokens concatenates the parser's normalized token buffer into a string.
// The buffer is reused by the parser, so the data is copied here.
func joinTokens(tokens []css.Token) string {
	var b strings.Builder
	for _, t := range tokens {
		b.Write(t.Data)
	}
	return b.String()
}

// splitImportant separates a trailing "!important" from a declaration value.
func splitImportant(tokens []css.Token) (string, bool) {
	n := len(tokens)
	if n >= 2 &&
		tokens[n-1].TokenType == css.IdentToken && strings.EqualFold(string(tokens[n-1].Data), "important") &&
		tokens[n-2].TokenType == css.DelimToken && string(tokens[n-2].Data) == "!" {
		rest := tokens[:n-2]
		for len(rest) > 0 && rest[len(rest)-1].TokenType == css.WhitespaceToken {
			rest = rest[:len(rest)-1]
		}
		return joinTokens(rest), true
	}
	return joinTokens(tokens), false
}

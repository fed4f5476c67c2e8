package passes

import (
	"github.com/tdewolff/minify/v2"
	mincss "github.com/tdewolff/minify/v2/css"
	"github.com/yacobolo/cssmod/internal/domain"
	"github.com/yacobolo/cssmod/internal/stylesheet"
	"go.trai.ch/zerr"
)

const cssMediaType = "text/css"

// Scoper maps a locally written class name to its scoped replacement.
type Scoper func(local string) (string, error)

// Core is the generic structural minifier stage. When a Scoper is set, class
// selectors are renamed on the rule tree before the text is minified.
type Core struct {
	scope    Scoper
	minifier *minify.M
}

// NewCore returns the core stage. A nil scope leaves class names untouched.
func NewCore(scope Scoper) *Core {
	m := minify.New()
	m.Add(cssMediaType, &mincss.Minifier{})
	return &Core{scope: scope, minifier: m}
}

// Name returns the pass name.
func (c *Core) Name() string { return NameCore }

// Apply scopes and minifies css.
func (c *Core) Apply(css string) (string, error) {
	if c.scope != nil {
		sheet, err := stylesheet.Parse(css)
		if err != nil {
			return "", err
		}
		var scopeErr error
		stylesheet.Rules(sheet.Nodes, func(rule *stylesheet.Node, keyframe bool) {
			if keyframe || scopeErr != nil {
				return
			}
			rule.Prelude, scopeErr = stylesheet.RewriteClasses(rule.Prelude, c.scope)
		})
		if scopeErr != nil {
			return "", scopeErr
		}
		css = sheet.String()
	}

	out, err := c.minifier.String(cssMediaType, css)
	if err != nil {
		return "", zerr.With(zerr.Wrap(domain.ErrInvalidStylesheet, "minify css"), "cause", err.Error())
	}
	return out, nil
}

// Package cssmod compiles CSS-in-JS stylesheet literals at build time.
//
// A stylesheet literal is a call or tagged template of the marker identifier
// (css by default). Bound to a const, its class names are scoped and the
// binding becomes a lookup function whose calls are replaced by the scoped
// names. Stylesheets are either inlined as minified marker calls or extracted
// into a CSS bundle.
//
// # Compiling files
//
//	c := cssmod.New(cssmod.Options{ExtractCSS: "dist/app.css", Optimised: true})
//	res, err := c.TransformFile("src/button.js", src)
//	...
//	written, err := c.Finish()
//
// # Building a tree
//
//	result, err := cssmod.Build(cssmod.BuildConfig{
//		Source: "src",
//		OutDir: "dist",
//		Options: cssmod.Options{ExtractCSS: "dist/app.css"},
//	})
//
// # CLI Tool
//
// cssmod also provides a CLI tool. Install with:
//
//	go install github.com/yacobolo/cssmod/cmd/cssmod@latest
package cssmod

import (
	"github.com/yacobolo/cssmod/internal/domain"
	"github.com/yacobolo/cssmod/internal/literal"
	"github.com/yacobolo/cssmod/internal/transform"
)

// Errors returned by the compiler. Match them with errors.Is.
var (
	ErrNonConstantLiteral        = domain.ErrNonConstantLiteral
	ErrNonConstantLookupArgument = domain.ErrNonConstantLookupArgument
	ErrUnknownClassName          = domain.ErrUnknownClassName
	ErrCacheReadFailed           = domain.ErrCacheReadFailed
	ErrCacheWriteFailed          = domain.ErrCacheWriteFailed
	ErrInvalidStylesheet         = domain.ErrInvalidStylesheet
	ErrInvalidSource             = domain.ErrInvalidSource
	ErrBundleWriteFailed         = domain.ErrBundleWriteFailed
	ErrNoInputFiles              = domain.ErrNoInputFiles
)

// DefaultMarker is the marker identifier used when Options.Marker is empty.
const DefaultMarker = transform.DefaultMarker

// BareExtract selects what an unbound literal contributes to a bundle.
type BareExtract = transform.BareExtract

const (
	// BareRaw appends the literal text as written.
	BareRaw = transform.BareRaw
	// BareMinified appends the minified literal.
	BareMinified = transform.BareMinified
)

// ParseBareExtract parses "raw" or "minified".
func ParseBareExtract(s string) (BareExtract, error) {
	return transform.ParseBareExtract(s)
}

// Site describes one compiled literal.
type Site = transform.Site

// Kind tells declaration sites from expression sites.
type Kind = literal.Kind

// Site kinds.
const (
	Declaration = literal.Declaration
	Expression  = literal.Expression
)

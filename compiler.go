package cssmod

import (
	"log/slog"
	"path/filepath"

	"github.com/yacobolo/cssmod/internal/alias"
	"github.com/yacobolo/cssmod/internal/bundle"
	"github.com/yacobolo/cssmod/internal/naming"
	"github.com/yacobolo/cssmod/internal/pipeline"
	"github.com/yacobolo/cssmod/internal/transform"
	"go.trai.ch/zerr"
)

// Options configures a Compiler.
type Options struct {
	// Marker is the stylesheet marker identifier. Defaults to css.
	Marker string
	// ExtractCSS is the bundle path. When set, stylesheets are removed from the
	// program and written to this file by Finish.
	ExtractCSS string
	// Optimised switches from debug names to compressed sequential names.
	Optimised bool
	// Prefix namespaces compressed names.
	Prefix string
	// Cache is the persistent compressed-ID cache file.
	Cache string
	// BareExtract selects what unbound literals contribute to the bundle.
	BareExtract BareExtract
	// Logger receives debug records per literal and info records per bundle.
	Logger *slog.Logger
}

// FileResult is the rewritten form of one file.
type FileResult struct {
	// Path is the resolved path of the file.
	Path    string
	Code    string
	Sites   []Site
	Lookups int
}

// Compiler is the context of one run. Aliases, bundles and the name cache are
// shared by every file it transforms. It is not safe for concurrent use.
type Compiler struct {
	opts    Options
	tr      *transform.Transformer
	bundles *bundle.Aggregator
	classes map[string][]map[string]string
	logger  *slog.Logger
}

// New returns a Compiler for opts.
func New(opts Options) *Compiler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	mode := naming.Debug
	if opts.Optimised {
		mode = naming.Compressed
	}
	names := naming.New(naming.Options{Mode: mode, Prefix: opts.Prefix, CachePath: opts.Cache})

	target := opts.ExtractCSS
	if target != "" {
		if abs, err := filepath.Abs(target); err == nil {
			target = abs
		}
	}

	bundles := bundle.New(logger)
	tr := transform.New(transform.Options{
		Marker:      opts.Marker,
		Target:      target,
		BareExtract: opts.BareExtract,
	}, pipeline.New(names), alias.New(), bundles, logger)

	return &Compiler{
		opts:    opts,
		tr:      tr,
		bundles: bundles,
		classes: make(map[string][]map[string]string),
		logger:  logger,
	}
}

// TransformFile rewrites src, the contents of path. The path is resolved to an
// absolute path, which keys debug hashes, compressed IDs and bundle order.
func (c *Compiler) TransformFile(path string, src []byte) (*FileResult, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "resolve path"), "file", path)
	}

	res, err := c.tr.File(abs, src)
	if err != nil {
		return nil, err
	}

	var tables []map[string]string
	for _, s := range res.Sites {
		if s.Kind == Declaration {
			tables = append(tables, s.Classes)
		}
	}
	c.classes[abs] = tables

	return &FileResult{Path: abs, Code: res.Code, Sites: res.Sites, Lookups: res.Lookups}, nil
}

// Classes returns the class tables of the declaration sites of path, in
// document order, as recorded by the last TransformFile of that path.
func (c *Compiler) Classes(path string) []map[string]string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return c.classes[abs]
}

// Finish writes every extraction bundle and returns the written paths. It is a
// no-op when extraction is disabled.
func (c *Compiler) Finish() ([]string, error) {
	return c.bundles.Flush()
}

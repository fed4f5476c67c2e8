// Package bundle aggregates extracted stylesheets per output target and writes
// each target once, in an order that does not depend on file visiting order.
package bundle

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/yacobolo/cssmod/internal/domain"
	"github.com/yacobolo/cssmod/internal/fsutil"
	"go.trai.ch/zerr"
)

// Bundle holds the stylesheet text contributed by each file to one target.
type Bundle struct {
	entries map[string]string
}

// Files returns the contributing files in sorted order.
func (b *Bundle) Files() []string {
	files := make([]string, 0, len(b.entries))
	for file := range b.entries {
		files = append(files, file)
	}
	sort.Strings(files)
	return files
}

// Render joins the contributions sorted by file with a single newline.
func (b *Bundle) Render() string {
	files := b.Files()
	parts := make([]string, len(files))
	for i, file := range files {
		parts[i] = b.entries[file]
	}
	return strings.Join(parts, "\n")
}

// Aggregator collects bundles keyed by target path.
type Aggregator struct {
	bundles map[string]*Bundle
	logger  *slog.Logger
}

// New returns an empty Aggregator. A nil logger discards output.
func New(logger *slog.Logger) *Aggregator {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Aggregator{bundles: make(map[string]*Bundle), logger: logger}
}

// Begin resets the contribution of file to target. Visiting a file again
// replaces what it contributed before.
func (a *Aggregator) Begin(target, file string) {
	b, ok := a.bundles[target]
	if !ok {
		b = &Bundle{entries: make(map[string]string)}
		a.bundles[target] = b
	}
	b.entries[file] = ""
}

// Append adds css to the contribution of file to target.
func (a *Aggregator) Append(target, file, css string) {
	b, ok := a.bundles[target]
	if !ok {
		a.Begin(target, file)
		b = a.bundles[target]
	}
	b.entries[file] += css
}

// Bundle returns the bundle for target.
func (a *Aggregator) Bundle(target string) (*Bundle, bool) {
	b, ok := a.bundles[target]
	return b, ok
}

// Targets returns every target path in sorted order.
func (a *Aggregator) Targets() []string {
	targets := make([]string, 0, len(a.bundles))
	for target := range a.bundles {
		targets = append(targets, target)
	}
	sort.Strings(targets)
	return targets
}

// Flush writes every bundle to its target and returns the written paths.
func (a *Aggregator) Flush() ([]string, error) {
	targets := a.Targets()
	for _, target := range targets {
		b := a.bundles[target]
		data := b.Render()
		if err := fsutil.WriteFileAtomic(target, []byte(data)); err != nil {
			return nil, zerr.With(zerr.With(zerr.Wrap(domain.ErrBundleWriteFailed, "flush bundle"), "path", target), "cause", err.Error())
		}
		a.logger.Info("wrote stylesheet bundle", "path", target, "files", len(b.entries), "bytes", len(data))
	}
	return targets, nil
}

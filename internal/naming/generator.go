// Package naming generates the scoped class names that replace locally written ones.
//
// Two policies are supported. Debug names keep the local name readable and point back
// at the stylesheet that defined it:
//
//	_btn_1x9k2j7s0d3ql_4
//
// Compressed names are short sequential IDs, optionally namespaced, that stay stable
// across builds when a cache file is configured:
//
//	_0, _1, _mylib_2
package naming

import (
	"strconv"
	"strings"
)

// Mode selects the naming policy.
type Mode int

const (
	// Debug produces _local_hash_line names.
	Debug Mode = iota
	// Compressed produces _[prefix_]id names.
	Compressed
)

// String returns the mode name as used in configuration.
func (m Mode) String() string {
	if m == Compressed {
		return "compressed"
	}
	return "debug"
}

// Options configures a Generator.
type Options struct {
	Mode Mode
	// Prefix namespaces compressed names. Ignored in debug mode.
	Prefix string
	// CachePath enables the persistent ID cache for compressed names.
	CachePath string
}

// Generator produces scoped names for one run. It is not safe for concurrent use.
type Generator struct {
	opts   Options
	memory *Cache
}

// New returns a Generator. Without a cache path, compressed IDs come from an
// in-memory cache owned by the generator.
func New(opts Options) *Generator {
	return &Generator{
		opts:   opts,
		memory: NewCache(),
	}
}

// Options returns the generator configuration.
func (g *Generator) Options() Options {
	return g.opts
}

// Generate returns the scoped name for the class local defined in file.
// css is the raw stylesheet text the class was written in.
func (g *Generator) Generate(file, local, css string) (string, error) {
	if g.opts.Mode != Compressed {
		return "_" + local + "_" + Hash(css) + "_" + strconv.Itoa(lineOf(css, local)), nil
	}

	id, err := g.compressedID(Key(file, local))
	if err != nil {
		return "", err
	}
	if g.opts.Prefix != "" {
		return "_" + g.opts.Prefix + "_" + strconv.Itoa(id), nil
	}
	return "_" + strconv.Itoa(id), nil
}

// compressedID resolves key against the cache file, reloading it on every call so
// edits made by other processes between literals are observed.
func (g *Generator) compressedID(key string) (int, error) {
	if g.opts.CachePath == "" {
		id, _ := g.memory.Assign(key)
		return id, nil
	}

	cache, err := LoadCache(g.opts.CachePath)
	if err != nil {
		return 0, err
	}
	id, created := cache.Assign(key)
	if created {
		if err := cache.Save(g.opts.CachePath); err != nil {
			return 0, err
		}
	}
	return id, nil
}

// lineOf returns the 1-based line of the first ".local" in css, or 1 when absent.
func lineOf(css, local string) int {
	i := strings.Index(css, "."+local)
	if i < 0 {
		i = 0
	}
	prefix := strings.ReplaceAll(css[:i], "\r\n", "\n")
	return 1 + strings.Count(prefix, "\n") + strings.Count(prefix, "\r")
}

// Package discover finds the program sources a build should transform.
package discover

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"
	"go.trai.ch/zerr"
)

// DefaultInclude matches the program sources cssmod understands.
var DefaultInclude = []string{"**/*.js", "**/*.mjs"}

// Options controls a discovery run. Patterns are doublestar globs relative to Root.
type Options struct {
	Root    string
	Include []string
	Exclude []string
	// Prune lists directories, relative to Root in slash form, whose files are
	// left out entirely. They are not counted as discovered or skipped.
	Prune []string
	// NoGitignore disables filtering through Root/.gitignore.
	NoGitignore bool
	Logger      *slog.Logger
}

// Stats tracks file discovery statistics.
type Stats struct {
	Discovered int // files matched by an include pattern
	Matched    int // files returned
	Skipped    int // files dropped by an exclude pattern or .gitignore
}

// Files returns the absolute, sorted, de-duplicated paths under opts.Root that
// match an include pattern and are neither excluded nor gitignored.
func Files(opts Options) ([]string, Stats, error) {
	var stats Stats

	root := opts.Root
	if root == "" {
		root = "."
	}
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, stats, zerr.With(zerr.Wrap(err, "resolve source root"), "root", opts.Root)
	}
	include := opts.Include
	if len(include) == 0 {
		include = DefaultInclude
	}
	for _, p := range append(append([]string{}, include...), opts.Exclude...) {
		if !doublestar.ValidatePattern(p) {
			return nil, stats, zerr.With(zerr.New("invalid glob pattern"), "pattern", p)
		}
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	var gi *ignore.GitIgnore
	if !opts.NoGitignore {
		gi = loadGitIgnore(root)
	}

	fsys := os.DirFS(root)
	seen := make(map[string]bool)
	var files []string
	for _, pattern := range include {
		matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, stats, zerr.With(zerr.Wrap(err, "expand glob"), "pattern", pattern)
		}
		for _, match := range matches {
			if seen[match] || pruned(match, opts.Prune) {
				continue
			}
			seen[match] = true
			stats.Discovered++

			if skip(match, opts.Exclude, gi) {
				stats.Skipped++
				logger.Debug("skipped source", "path", match)
				continue
			}
			files = append(files, filepath.Join(root, filepath.FromSlash(match)))
		}
	}

	sort.Strings(files)
	stats.Matched = len(files)
	return files, stats, nil
}

// pruned reports whether rel lies inside one of the dirs.
func pruned(rel string, dirs []string) bool {
	for _, dir := range dirs {
		if strings.HasPrefix(rel, strings.TrimSuffix(dir, "/")+"/") {
			return true
		}
	}
	return false
}

// skip reports whether the slash-separated relative path rel is excluded.
func skip(rel string, exclude []string, gi *ignore.GitIgnore) bool {
	for _, pattern := range exclude {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return gi != nil && gi.MatchesPath(rel)
}

// loadGitIgnore compiles root/.gitignore. A missing or unreadable file disables filtering.
func loadGitIgnore(root string) *ignore.GitIgnore {
	gi, err := ignore.CompileIgnoreFile(filepath.Join(root, ".gitignore"))
	if err != nil {
		return nil
	}
	return gi
}

// Rel returns path relative to the current working directory when possible.
func Rel(path string) string {
	cwd, err := os.Getwd()
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(cwd, path)
	if err != nil || !fs.ValidPath(filepath.ToSlash(rel)) {
		return path
	}
	return rel
}

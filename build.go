package cssmod

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/yacobolo/cssmod/internal/discover"
	"github.com/yacobolo/cssmod/internal/domain"
	"github.com/yacobolo/cssmod/internal/fsutil"
	"go.trai.ch/zerr"
)

// BuildConfig configures a tree build.
type BuildConfig struct {
	Options

	// Source is the root directory scanned for program sources.
	Source string
	// Include and Exclude are doublestar globs relative to Source.
	Include []string
	Exclude []string
	// NoGitignore disables filtering through Source/.gitignore.
	NoGitignore bool
	// OutDir receives the rewritten files at their path relative to Source.
	// When empty, nothing but the bundles is written.
	OutDir string
}

// BuildResult summarizes a tree build.
type BuildResult struct {
	Files      []*FileResult
	Discovered int
	Skipped    int
	Literals   int
	Lookups    int
	// Bundles are the written extraction bundles.
	Bundles []string
	// Outputs are the written program files.
	Outputs []string
}

// Build discovers, transforms and writes a source tree. Files are processed in
// sorted path order and the first failure stops the build.
func Build(cfg BuildConfig) (*BuildResult, error) {
	source := cfg.Source
	if source == "" {
		source = "."
	}
	root, err := filepath.Abs(source)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "resolve source root"), "root", source)
	}
	logger := cfg.Logger

	// 1. Discover sources, never reading back our own output
	var prune []string
	if cfg.OutDir != "" {
		if rel, ok := within(root, cfg.OutDir); ok {
			prune = append(prune, rel)
		}
	}
	files, stats, err := discover.Files(discover.Options{
		Root:        root,
		Include:     cfg.Include,
		Exclude:     cfg.Exclude,
		Prune:       prune,
		NoGitignore: cfg.NoGitignore,
		Logger:      logger,
	})
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, zerr.With(zerr.Wrap(domain.ErrNoInputFiles, "discover sources"), "root", root)
	}

	result := &BuildResult{Discovered: stats.Discovered, Skipped: stats.Skipped}
	c := New(cfg.Options)

	// 2. Transform every file
	for _, path := range files {
		// #nosec G304 - path comes from discovery under the configured root
		src, err := os.ReadFile(path)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "read source"), "file", path)
		}

		res, err := c.TransformFile(path, src)
		if err != nil {
			return nil, err
		}
		result.Files = append(result.Files, res)
		result.Literals += len(res.Sites)
		result.Lookups += res.Lookups

		// 3. Write the rewritten file
		if cfg.OutDir == "" {
			continue
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "resolve output path"), "file", path)
		}
		out := filepath.Join(cfg.OutDir, rel)
		if err := fsutil.WriteFileAtomic(out, []byte(res.Code)); err != nil {
			return nil, zerr.With(zerr.With(zerr.Wrap(err, "write output"), "file", path), "path", out)
		}
		result.Outputs = append(result.Outputs, out)
	}

	// 4. Flush bundles
	bundles, err := c.Finish()
	if err != nil {
		return nil, err
	}
	result.Bundles = bundles

	return result, nil
}

// within returns dir relative to root in slash form when dir lies inside root.
func within(root, dir string) (string, bool) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", false
	}
	rel, err := filepath.Rel(root, abs)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return filepath.ToSlash(rel), true
}

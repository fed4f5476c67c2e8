package report

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// Config controls the text reporter.
type Config struct {
	// Color is "auto", "always" or "never".
	Color string
	// PrintLines prints the offending source line and a caret under diagnostics.
	PrintLines bool
	// Verbose lists every compiled literal per file.
	Verbose bool
}

// Reporter writes build results as text.
type Reporter struct {
	w          io.Writer
	useColors  bool
	printLines bool
	verbose    bool
}

// NewReporter creates a reporter writing to w.
func NewReporter(w io.Writer, config Config) *Reporter {
	return &Reporter{
		w:          w,
		useColors:  shouldUseColors(w, config.Color),
		printLines: config.PrintLines,
		verbose:    config.Verbose,
	}
}

func shouldUseColors(w io.Writer, mode string) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("FORCE_COLOR") != "" || os.Getenv("GITHUB_ACTIONS") == "true" {
		return true
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}

// UseColors returns whether colors are enabled.
func (r *Reporter) UseColors() bool {
	return r.useColors
}

// PrintDiagnostics writes diagnostics sorted by position.
func (r *Reporter) PrintDiagnostics(diags []Diagnostic) {
	sorted := append([]Diagnostic(nil), diags...)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].Pos, sorted[j].Pos
		if a.Filename != b.Filename {
			return a.Filename < b.Filename
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Column < b.Column
	})
	for _, d := range sorted {
		r.printDiagnostic(d)
	}
}

func (r *Reporter) printDiagnostic(d Diagnostic) {
	location := d.Pos.Filename + ":"
	if d.Pos.Line > 0 {
		location = fmt.Sprintf("%s:%d:%d:", d.Pos.Filename, d.Pos.Line, d.Pos.Column)
	}

	suffix := ""
	if len(d.Metadata) > 0 {
		keys := make([]string, 0, len(d.Metadata))
		for k := range d.Metadata {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, fmt.Sprintf("%s=%v", k, d.Metadata[k]))
		}
		suffix = " (" + strings.Join(parts, " ") + ")"
	}

	fmt.Fprintf(r.w, "%s %s%s\n",
		RenderStyle(StyleCyan, location, r.useColors),
		d.Text,
		RenderStyle(StyleGray, suffix, r.useColors))

	if r.printLines && len(d.SourceLines) > 0 {
		for _, line := range d.SourceLines {
			fmt.Fprintf(r.w, "\t%s\n", line)
		}
		caret := buildCaretIndicator(d.SourceLines[0], d.Pos.Column)
		fmt.Fprintf(r.w, "\t%s\n", RenderStyle(StyleYellow, caret, r.useColors))
	}
}

// buildCaretIndicator creates the "^" indicator aligned with the column.
// Tabs in the prefix are kept so the caret lines up in any tab width.
func buildCaretIndicator(sourceLine string, column int) string {
	if column <= 0 {
		return "^"
	}

	prefixLen := column - 1
	runes := []rune(sourceLine)
	if prefixLen > len(runes) {
		prefixLen = len(runes)
	}

	var padding strings.Builder
	for _, ch := range runes[:prefixLen] {
		if ch == '\t' {
			padding.WriteRune('\t')
		} else {
			padding.WriteRune(' ')
		}
	}
	return padding.String() + "^"
}

// PrintFiles writes one line per transformed file, and one per literal in verbose mode.
func (r *Reporter) PrintFiles(files []File) {
	for _, f := range files {
		if len(f.Sites) == 0 && f.Lookups == 0 && !r.verbose {
			continue
		}
		fmt.Fprintf(r.w, "%s %s, %s\n",
			RenderStyle(StyleCyan, f.Path+":", r.useColors),
			pluralizeCount(len(f.Sites), "literal", "literals"),
			pluralizeCount(f.Lookups, "lookup", "lookups"))
		if !r.verbose {
			continue
		}
		for _, s := range f.Sites {
			name := ""
			if s.Binding != "" {
				name = " " + s.Binding
			}
			fmt.Fprintf(r.w, "  %d:%d %s%s %s\n", s.Line, s.Column, s.Kind, name,
				RenderStyle(StyleGray, fmt.Sprintf("(%s, %d bytes)", pluralizeCount(s.Classes, "class", "classes"), s.Bytes), r.useColors))
		}
	}
}

// PrintSummary writes the build totals.
func (r *Reporter) PrintSummary(s Summary) {
	fmt.Fprintln(r.w, "")
	scanned := pluralizeCount(s.FilesScanned, "file", "files")
	if s.FilesSkipped > 0 {
		scanned += fmt.Sprintf(" (%d skipped)", s.FilesSkipped)
	}
	fmt.Fprintf(r.w, "%s %s, %s, %s\n",
		RenderStyle(StyleGreen, "✓ Built", r.useColors),
		scanned,
		pluralizeCount(s.Literals, "literal", "literals"),
		pluralizeCount(s.Lookups, "lookup", "lookups"))
	for _, b := range s.Bundles {
		fmt.Fprintf(r.w, "* %s\n", b)
	}
}

// PrintFailure writes the build failure headline.
func (r *Reporter) PrintFailure(diags int) {
	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleRed, "✗ Build failed: "+pluralizeCount(diags, "error", "errors"), r.useColors))
}

func pluralizeCount(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}

package main

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/yacobolo/cssmod"
	"github.com/yacobolo/cssmod/internal/discover"
	"github.com/yacobolo/cssmod/internal/logger"
	"github.com/yacobolo/cssmod/internal/report"
	"go.trai.ch/zerr"
)

// errBuildFailed is returned after a failed build has been reported.
var errBuildFailed = errors.New("build failed")

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Compile stylesheet literals in a source tree",
	Long: `Discover JavaScript sources, compile their stylesheet literals and
write the rewritten files to the output directory. With --extract-css every
stylesheet is written to one bundle instead of staying in the program.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runBuild,
}

func init() {
	addBuildFlags(buildCmd.Flags())
}

func addBuildFlags(f *pflag.FlagSet) {
	f.String("source", ".", "Source root directory")
	f.StringSlice("include", nil, "Glob patterns of sources to compile (default **/*.js, **/*.mjs)")
	f.StringSlice("exclude", nil, "Glob patterns of sources to skip (default node_modules/**)")
	f.Bool("no-gitignore", false, "Do not skip files matched by .gitignore")
	f.String("out-dir", "dist", "Output directory for rewritten sources")
	f.String("marker", cssmod.DefaultMarker, "Identifier marking stylesheet literals")
	f.String("extract-css", "", "Write every stylesheet to this bundle instead of inlining")
	f.String("optimised", "", "Compressed class names; --optimised=<prefix> namespaces them")
	f.Lookup("optimised").NoOptDefVal = "true"
	f.String("cache", "", "Persistent cache file for compressed class name IDs")
	f.String("bare-extract", "raw", "What unbound literals add to the bundle: raw|minified")
	f.String("report", "text", "Report format: text|json")
	f.Bool("print-lines", true, "Show the source line of build errors")
}

func runBuild(cmd *cobra.Command, _ []string) error {
	cfg, err := buildCLIConfig()
	if err != nil {
		return err
	}

	log := logger.New(cmd.ErrOrStderr(), logger.Options{Level: cfg.logLevel(), JSON: cfg.LogFormat == "json"})
	cfg.Build.Logger = log

	result, err := cssmod.Build(cfg.Build)
	if err != nil {
		return reportFailure(cmd.Context(), cmd.OutOrStdout(), log, cfg, err)
	}

	res := toReport(result)
	if cfg.Report == "json" {
		return report.WriteJSON(cmd.OutOrStdout(), version, res)
	}
	if cfg.Quiet {
		return nil
	}
	r := report.NewReporter(cmd.OutOrStdout(), report.Config{Color: cfg.Color, Verbose: cfg.Verbose})
	r.PrintFiles(res.Files)
	r.PrintSummary(res.Summary)
	return nil
}

// reportFailure prints err as a diagnostic and logs it, then returns errBuildFailed.
func reportFailure(ctx context.Context, w io.Writer, log *slog.Logger, cfg cliConfig, err error) error {
	if cfg.LogFormat == "json" {
		zerr.Log(ctx, log, err)
	}

	diag := report.FromError(err)
	if diag.Pos.Filename != "" {
		diag.Pos.Filename = discover.Rel(diag.Pos.Filename)
	}
	res := &report.Result{Diagnostics: []report.Diagnostic{diag}}

	if cfg.Report == "json" {
		if werr := report.WriteJSON(w, version, res); werr != nil {
			return werr
		}
		return errBuildFailed
	}
	if diag.Pos.Filename == "" {
		// Not tied to a source file, so the error chain says more than a diagnostic.
		if cfg.LogFormat != "json" {
			logger.LogError(log, err)
		}
		return errBuildFailed
	}
	r := report.NewReporter(w, report.Config{Color: cfg.Color, PrintLines: cfg.PrintLines})
	r.PrintDiagnostics(res.Diagnostics)
	r.PrintFailure(len(res.Diagnostics))
	return errBuildFailed
}

// toReport converts a build result to its report form with paths relative to
// the working directory.
func toReport(result *cssmod.BuildResult) *report.Result {
	res := &report.Result{
		Summary: report.Summary{
			FilesScanned: len(result.Files),
			FilesSkipped: result.Skipped,
			Literals:     result.Literals,
			Lookups:      result.Lookups,
		},
	}
	for _, b := range result.Bundles {
		res.Summary.Bundles = append(res.Summary.Bundles, discover.Rel(b))
	}
	for _, f := range result.Files {
		file := report.File{Path: discover.Rel(f.Path), Lookups: f.Lookups}
		for _, s := range f.Sites {
			file.Sites = append(file.Sites, report.Site{
				Line:    s.Line,
				Column:  s.Column,
				Kind:    s.Kind.String(),
				Binding: s.Binding,
				Classes: len(s.Classes),
				Bytes:   s.Bytes,
			})
		}
		res.Files = append(res.Files, file)
	}
	return res
}

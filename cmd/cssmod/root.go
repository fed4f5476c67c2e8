package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cssmod",
	Short: "Build-time compiler for CSS-in-JS stylesheet literals",
	Long: `Compiles css tagged templates and calls in JavaScript sources.
Class names are scoped, lookups like styles('btn') become string literals,
and stylesheets are minified inline or extracted into one CSS bundle.`,
	// Default behavior: run build when no subcommand is given.
	// loadConfig is called here because PreRunE of buildCmd is not
	// triggered when delegating via rootCmd.RunE.
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := loadConfig(cmd); err != nil {
			return err
		}
		return runBuild(cmd, nil)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags (inherited by all subcommands)
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging and per-literal report lines")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Only log errors and skip the build report")
	rootCmd.PersistentFlags().String("color", "auto", "Color output: auto|always|never")
	rootCmd.PersistentFlags().String("log-format", "text", "Log format: text|json")
	rootCmd.PersistentFlags().String("config", defaultConfigPath, "Config file path")

	addBuildFlags(rootCmd.Flags())

	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(completionCmd)
	rootCmd.AddCommand(versionCmd)
}

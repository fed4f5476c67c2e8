package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.trai.ch/zerr"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default .cssmod.yaml config file",
	Long:  `Create a .cssmod.yaml configuration file in the current directory with sensible defaults.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		force, _ := cmd.Flags().GetBool("force")

		if _, err := os.Stat(defaultConfigPath); err == nil && !force {
			return zerr.With(zerr.New(defaultConfigPath+" already exists (use --force to overwrite)"), "path", defaultConfigPath)
		}

		if err := os.WriteFile(defaultConfigPath, []byte(defaultConfig), 0o644); err != nil {
			return zerr.With(zerr.Wrap(err, "writing config file"), "path", defaultConfigPath)
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Created "+defaultConfigPath)
		return nil
	},
}

const defaultConfig = `# cssmod configuration
# Every key can also be set as CSSMOD_<KEY> (dashes become underscores) or as a flag.

source: .
include:
  - "**/*.js"
  - "**/*.mjs"
exclude:
  - "node_modules/**"
out-dir: dist

# Stylesheet compilation
marker: css
extract-css: ""          # bundle path; empty keeps stylesheets inline
optimised: false         # true, false or a class name prefix
cache: ""                # compressed class name ID cache
bare-extract: raw        # raw | minified

# Output
report: text             # text | json
log-format: text         # text | json
color: auto              # auto | always | never
print-lines: true
verbose: false
`

func init() {
	initCmd.Flags().Bool("force", false, "Overwrite existing config file")
}

package main

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
	"github.com/yacobolo/cssmod"
	"github.com/yacobolo/cssmod/internal/discover"
	"go.trai.ch/zerr"
)

const defaultConfigPath = ".cssmod.yaml"

var k = koanf.New(".")

// loadDotenv loads a .env file into the process environment. Variables that
// are already set win, and a missing file is not an error.
func loadDotenv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return zerr.With(zerr.Wrap(err, "loading dotenv file"), "path", path)
	}
	return nil
}

// loadConfig loads configuration with precedence: flags > env > file > defaults.
// It must be called after cobra parses flags (in PreRunE or RunE).
func loadConfig(cmd *cobra.Command) error {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = defaultConfigPath
	}

	if err := loadConfigFromPath(configPath); err != nil {
		return err
	}

	// 3. CLI flags (highest precedence, only flags that were explicitly set
	// or whose key is still missing)
	if err := k.Load(posflag.Provider(cmd.Flags(), ".", k), nil); err != nil {
		return zerr.Wrap(err, "loading command flags")
	}
	return nil
}

// loadConfigFromPath loads configuration from a file and environment variables.
// This is separated from loadConfig to allow testing without a cobra command.
func loadConfigFromPath(configPath string) error {
	// 1. Config file (lowest precedence among providers)
	if _, err := os.Stat(configPath); err == nil {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return zerr.With(zerr.Wrap(err, "loading config file"), "path", configPath)
		}
	}

	// 2. Environment variables (CSSMOD_* prefix)
	if err := k.Load(env.Provider("CSSMOD_", ".", func(s string) string {
		// CSSMOD_OUT_DIR -> out-dir
		// CSSMOD_EXTRACT_CSS -> extract-css
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, "CSSMOD_")),
			"_", "-",
		)
	}), nil); err != nil {
		return zerr.Wrap(err, "loading environment variables")
	}

	return nil
}

// cliConfig is the resolved configuration of one CLI run.
type cliConfig struct {
	Build      cssmod.BuildConfig
	Report     string
	Color      string
	PrintLines bool
	Verbose    bool
	Quiet      bool
	LogFormat  string
}

// logLevel maps --verbose and --quiet to a slog level.
func (c cliConfig) logLevel() slog.Level {
	switch {
	case c.Quiet:
		return slog.LevelError
	case c.Verbose:
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

// buildCLIConfig constructs the library's BuildConfig and the report settings from koanf state.
func buildCLIConfig() (cliConfig, error) {
	bare, err := cssmod.ParseBareExtract(getString("bare-extract", "raw"))
	if err != nil {
		return cliConfig{}, zerr.With(zerr.Wrap(err, "invalid configuration"), "key", "bare-extract")
	}
	optimised, prefix, err := parseOptimised(k.Get("optimised"))
	if err != nil {
		return cliConfig{}, zerr.With(zerr.Wrap(err, "invalid configuration"), "key", "optimised")
	}

	cfg := cliConfig{
		Build: cssmod.BuildConfig{
			Options: cssmod.Options{
				Marker:      getString("marker", cssmod.DefaultMarker),
				ExtractCSS:  getString("extract-css", ""),
				Optimised:   optimised,
				Prefix:      prefix,
				Cache:       getString("cache", ""),
				BareExtract: bare,
			},
			Source:      getString("source", "."),
			Include:     getStrings("include", discover.DefaultInclude),
			Exclude:     getStrings("exclude", []string{"node_modules/**"}),
			NoGitignore: getBool("no-gitignore", false),
			OutDir:      getString("out-dir", "dist"),
		},
		Report:     getString("report", "text"),
		Color:      getString("color", "auto"),
		PrintLines: getBool("print-lines", true),
		Verbose:    getBool("verbose", false),
		Quiet:      getBool("quiet", false),
		LogFormat:  getString("log-format", "text"),
	}

	switch cfg.Report {
	case "text", "json":
	default:
		return cliConfig{}, zerr.With(zerr.New("report must be text or json"), "report", cfg.Report)
	}
	switch cfg.LogFormat {
	case "text", "json":
	default:
		return cliConfig{}, zerr.With(zerr.New("log-format must be text or json"), "log-format", cfg.LogFormat)
	}
	return cfg, nil
}

// parseOptimised accepts the forms of the optimised setting: a YAML bool, or a
// string that is either a boolean or a name prefix.
func parseOptimised(v any) (bool, string, error) {
	switch v := v.(type) {
	case nil:
		return false, "", nil
	case bool:
		return v, "", nil
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return false, "", nil
		}
		if b, err := strconv.ParseBool(s); err == nil {
			return b, "", nil
		}
		return true, s, nil
	}
	return false, "", zerr.With(zerr.New("optimised must be a bool or a prefix string"), "value", v)
}

// getString returns the value at key, or defaultVal when it is unset or empty.
func getString(key, defaultVal string) string {
	if v := k.String(key); v != "" {
		return v
	}
	return defaultVal
}

// getBool returns the value at key, or defaultVal when it is unset.
func getBool(key string, defaultVal bool) bool {
	if k.Exists(key) {
		return k.Bool(key)
	}
	return defaultVal
}

// getStrings returns the list at key. Environment values are comma-separated.
func getStrings(key string, defaultVal []string) []string {
	if !k.Exists(key) {
		return defaultVal
	}
	if s, ok := k.Get(key).(string); ok {
		var out []string
		for _, part := range strings.Split(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		if len(out) == 0 {
			return defaultVal
		}
		return out
	}
	if v := k.Strings(key); len(v) > 0 {
		return v
	}
	return defaultVal
}

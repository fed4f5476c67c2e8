// Package main provides the cssmod CLI tool for compiling CSS-in-JS stylesheet literals.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/yacobolo/cssmod/internal/logger"
)

func main() {
	if err := loadDotenv(".env"); err != nil {
		fmt.Fprintln(os.Stderr, logger.FormatError(err))
		os.Exit(1)
	}
	if err := rootCmd.Execute(); err != nil {
		// Build failures have already been reported.
		if !errors.Is(err, errBuildFailed) {
			fmt.Fprintln(os.Stderr, logger.FormatError(err))
		}
		os.Exit(1)
	}
}

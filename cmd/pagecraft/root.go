package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "pagecraft",
	Short: "Pagecraft Callisto - template placeholder engine",
	Long: `Pagecraft Callisto is a placeholder extraction and substitution engine
for Elementor-style page templates.

It scans exported template JSON for {{KEY}} tokens and provides:
  - Token extraction with section grouping and type classification
  - Value substitution with unresolved-token reporting
  - Template library with memory and SQLite backends
  - HTTP API with audit recording and Prometheus metrics

For more information, visit: https://github.com/pagecraft-hq/callisto`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global persistent flags (available to all subcommands)
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.CompletionOptions.DisableDefaultCmd = false
}

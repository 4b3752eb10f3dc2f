// Package cli implements the sbcanalyze command line.
package cli

import (
	"github.com/spf13/cobra"

	"sbcanalyzer/internal/service"
)

// version is overridden at build time with -ldflags "-X sbcanalyzer/internal/cli.version=...".
var version = "dev"

var analyzer service.AnalyzerService

var rootCmd = &cobra.Command{
	Use:   "sbcanalyze",
	Short: "Answer benefit questions from a Summary of Benefits and Coverage",
	Long: `sbcanalyze reads an SBC PDF, asks a language model a fixed set of
benefit questions about it and prints the answers.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// SetAnalyzer injects the service used by the analyze command.
func SetAnalyzer(a service.AnalyzerService) {
	analyzer = a
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

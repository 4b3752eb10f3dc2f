package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"sbcanalyzer/internal/app"
	"sbcanalyzer/internal/cli"
	"sbcanalyzer/internal/config"
	"sbcanalyzer/internal/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Logs go to stderr so stdout stays clean for the rendered outcome.
	zl := logger.Must(cfg.Log.Level, cfg.Log.Format)
	defer func() { _ = zl.Sync() }()
	zap.ReplaceGlobals(zl)

	a, err := app.New(cfg, zl)
	if err != nil {
		return err
	}
	cli.SetAnalyzer(a.Analyzer)

	return cli.Execute()
}

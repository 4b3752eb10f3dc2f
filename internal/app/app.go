// Package app wires configuration into a ready AnalyzerService.
package app

import (
	"fmt"

	"go.uber.org/zap"

	"sbcanalyzer/internal/config"
	"sbcanalyzer/internal/extract"
	"sbcanalyzer/internal/generation"
	_ "sbcanalyzer/internal/generation/providers" // registers all backends
	"sbcanalyzer/internal/port"
	"sbcanalyzer/internal/prompt"
	"sbcanalyzer/internal/service"
	s3storage "sbcanalyzer/internal/storage/s3"
)

// App is the assembled analyzer and the collaborators it was built from.
type App struct {
	Analyzer service.AnalyzerService
	Client   port.GenerationClient

	// ClientErr is set when the generation backend could not be configured.
	// Analyzer is still usable for text-less documents in that case.
	ClientErr error
}

// New builds the analyzer from cfg. A backend that fails to configure is
// reported through ClientErr; storage and option errors are fatal.
func New(cfg *config.Config, logger *zap.Logger) (*App, error) {
	a := &App{}

	var invoker *generation.Invoker
	client, err := generation.NewClient(&cfg.Generation)
	if err != nil {
		a.ClientErr = fmt.Errorf("configuring %s backend: %w", cfg.Generation.Provider, err)
		logger.Warn("app.New: generation backend unavailable", zap.Error(a.ClientErr))
	} else {
		opts := generation.OptionsFromConfig(&cfg.Generation)
		invoker, err = generation.NewInvoker(client, cfg.Generation.Provider, opts, logger)
		if err != nil {
			return nil, err
		}
		a.Client = client
		logger.Info("app.New: generation backend ready",
			zap.String("provider", cfg.Generation.Provider), zap.String("model", opts.Model))
	}

	var storage port.ObjectStorage
	if cfg.S3.Enabled {
		storage, err = s3storage.NewS3Client(&cfg.S3, cfg.Upload.MaxBytes())
		if err != nil {
			return nil, fmt.Errorf("initializing S3 client: %w", err)
		}
	}

	a.Analyzer = service.NewAnalyzerService(
		prompt.DefaultBuilder(),
		invoker,
		extract.NewExtractor(logger),
		storage,
		cfg.Upload.MaxBytes(),
		logger,
	)
	return a, nil
}

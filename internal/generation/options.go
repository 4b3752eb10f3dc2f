package generation

import (
	"fmt"

	"sbcanalyzer/internal/config"
	"sbcanalyzer/internal/domain"
)

// Options are the sampling parameters sent with every request.
type Options struct {
	Model       string
	MaxTokens   int
	Temperature float64
	TopP        float64
}

// DefaultOptions returns the parameters the analyzer was tuned with.
func DefaultOptions() Options {
	return Options{
		Model:       "anthropic.claude-3-sonnet-20240229-v1:0",
		MaxTokens:   4000,
		Temperature: 0.5,
		TopP:        0.9,
	}
}

// defaultModels is the model used per provider when none is configured.
var defaultModels = map[string]string{
	"bedrock":   "anthropic.claude-3-sonnet-20240229-v1:0",
	"anthropic": "claude-sonnet-4-20250514",
	"openai":    "gpt-4o",
	"gemini":    "gemini-2.0-flash",
}

// DefaultModel returns the fallback model identifier for a provider.
func DefaultModel(provider string) string {
	return defaultModels[provider]
}

// OptionsFromConfig reads Options out of the generation config.
func OptionsFromConfig(cfg *config.GenerationConfig) Options {
	model := cfg.Model
	if model == "" {
		model = DefaultModel(cfg.Provider)
	}
	return Options{
		Model:       model,
		MaxTokens:   cfg.MaxTokens,
		Temperature: cfg.Temperature,
		TopP:        cfg.TopP,
	}
}

// Validate checks every option is within range.
func (o Options) Validate() error {
	switch {
	case o.Model == "":
		return fmt.Errorf("%w: model is required", domain.ErrInvalidOptions)
	case o.MaxTokens <= 0:
		return fmt.Errorf("%w: max_tokens must be positive, got %d", domain.ErrInvalidOptions, o.MaxTokens)
	case o.Temperature < 0 || o.Temperature > 1:
		return fmt.Errorf("%w: temperature must be in [0,1], got %g", domain.ErrInvalidOptions, o.Temperature)
	case o.TopP <= 0 || o.TopP > 1:
		return fmt.Errorf("%w: top_p must be in (0,1], got %g", domain.ErrInvalidOptions, o.TopP)
	}
	return nil
}

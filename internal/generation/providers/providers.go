// Package providers registers every built-in generation backend with the
// generation factory. Import it for side effects.
package providers

import (
	_ "sbcanalyzer/internal/generation/anthropic"
	_ "sbcanalyzer/internal/generation/bedrock"
	_ "sbcanalyzer/internal/generation/gemini"
	_ "sbcanalyzer/internal/generation/openai"
)

package generation

import (
	"fmt"

	"sbcanalyzer/internal/config"
	"sbcanalyzer/internal/port"
)

// ProviderFactory is a function that creates a GenerationClient from config.
type ProviderFactory func(cfg *config.GenerationConfig) (port.GenerationClient, error)

// registry of provider factories, populated by init() in each provider package
// or explicitly via RegisterProvider.
var providers = map[string]ProviderFactory{}

// RegisterProvider registers a provider factory by name. It panics when the
// factory is nil or the name is already taken, like database/sql.Register.
func RegisterProvider(name string, factory ProviderFactory) {
	if factory == nil {
		panic("generation: RegisterProvider factory is nil for " + name)
	}
	if _, dup := providers[name]; dup {
		panic("generation: RegisterProvider called twice for " + name)
	}
	providers[name] = factory
}

// NewClient creates a GenerationClient from config using the registered factory.
func NewClient(cfg *config.GenerationConfig) (port.GenerationClient, error) {
	factory, ok := providers[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("unknown generation provider: %s", cfg.Provider)
	}
	return factory(cfg)
}

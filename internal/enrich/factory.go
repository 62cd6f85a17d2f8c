package enrich

import (
	"fmt"

	"github.com/jamie-anson/prdgen/internal/config"
)

// defaultCacheCapacity bounds the in-process memoization cache.
const defaultCacheCapacity = 4096

// NewProvider creates a summary provider based on the configuration.
// Every provider is wrapped with an in-memory memoization cache.
func NewProvider(cfg config.GenerationConfig) (Provider, error) {
	var inner Provider

	switch cfg.Provider {
	case "openai":
		inner = NewOpenAIProvider(OpenAIConfig{
			Endpoint:  cfg.Endpoint,
			Model:     cfg.Model,
			APIKeyEnv: cfg.APIKeyEnv,
			MaxTokens: cfg.MaxTokens,
		})
	case "mock":
		inner = NewMockProvider()
	default:
		return nil, fmt.Errorf("unsupported generation provider: %s (supported: openai, mock)", cfg.Provider)
	}

	return NewCachingProvider(inner, defaultCacheCapacity)
}

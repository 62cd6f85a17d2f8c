package config

import (
	"fmt"

	"github.com/gobwas/glob"
)

// supportedProviders lists the generation providers prdgen knows how to build.
var supportedProviders = map[string]bool{
	"openai": true,
	"mock":   true,
}

// Validate checks a configuration for values that would fail later in
// surprising places. It returns the first problem found.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("configuration is nil")
	}

	if !supportedProviders[cfg.Generation.Provider] {
		return fmt.Errorf("unsupported generation provider: %q (supported: openai, mock)", cfg.Generation.Provider)
	}

	if cfg.Generation.Model == "" {
		return fmt.Errorf("generation.model must not be empty")
	}

	if cfg.Generation.Provider == "openai" {
		if cfg.Generation.Endpoint == "" {
			return fmt.Errorf("generation.endpoint must not be empty for the openai provider")
		}
		if cfg.Generation.APIKeyEnv == "" {
			return fmt.Errorf("generation.api_key_env must not be empty for the openai provider")
		}
	}

	if cfg.Generation.MaxTokens <= 0 {
		return fmt.Errorf("generation.max_tokens must be positive, got %d", cfg.Generation.MaxTokens)
	}

	if len(cfg.Paths.Source) == 0 {
		return fmt.Errorf("paths.source must contain at least one glob pattern")
	}

	// Compile every glob now so a typo fails at load time, not mid-scan.
	for _, group := range [][]string{cfg.Paths.Source, cfg.Paths.Docs, cfg.Paths.Ignore} {
		for _, pattern := range group {
			if _, err := glob.Compile(pattern, '/'); err != nil {
				return fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
			}
		}
	}

	if cfg.Output.Dir == "" {
		return fmt.Errorf("output.dir must not be empty")
	}

	if cfg.Cache.MaxAgeDays < 0 {
		return fmt.Errorf("cache.max_age_days must not be negative, got %d", cfg.Cache.MaxAgeDays)
	}

	return nil
}

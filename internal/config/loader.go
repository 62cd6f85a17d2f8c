package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// configDirFor returns the directory searched for config files.
func configDirFor(rootDir string) string {
	return filepath.Join(rootDir, ".prdgen")
}

// Loader provides configuration loading capabilities.
type Loader interface {
	// Load loads configuration from file and environment variables.
	// Priority: defaults → config file → environment variables (env wins)
	Load() (*Config, error)
}

type loader struct {
	rootDir string
}

// NewLoader creates a new configuration loader for the given workspace root.
func NewLoader(rootDir string) Loader {
	return &loader{
		rootDir: rootDir,
	}
}

// Load loads configuration with the following priority (highest to lowest):
// 1. Environment variables (PRDGEN_*)
// 2. Config file (.prdgen/config.yml or .prdgen/config.yaml)
// 3. Default values
func (l *loader) Load() (*Config, error) {
	v := viper.New()

	configDir := configDirFor(l.rootDir)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)

	// Enable environment variable overrides
	v.SetEnvPrefix("PRDGEN")
	v.AutomaticEnv()
	// Replace . with _ in env var names (e.g., PRDGEN_GENERATION_PROVIDER)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Generation configuration
	v.BindEnv("generation.provider")
	v.BindEnv("generation.model")
	v.BindEnv("generation.endpoint")
	v.BindEnv("generation.api_key_env")
	v.BindEnv("generation.max_tokens")

	// Output configuration
	v.BindEnv("output.dir")

	// Cache configuration
	v.BindEnv("cache.location")
	v.BindEnv("cache.max_age_days")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// Config file not found is acceptable - we'll use defaults + env vars
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setDefaults configures viper with default values.
func setDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("generation.provider", defaults.Generation.Provider)
	v.SetDefault("generation.model", defaults.Generation.Model)
	v.SetDefault("generation.endpoint", defaults.Generation.Endpoint)
	v.SetDefault("generation.api_key_env", defaults.Generation.APIKeyEnv)
	v.SetDefault("generation.max_tokens", defaults.Generation.MaxTokens)

	v.SetDefault("paths.source", defaults.Paths.Source)
	v.SetDefault("paths.docs", defaults.Paths.Docs)
	v.SetDefault("paths.ignore", defaults.Paths.Ignore)

	v.SetDefault("output.dir", defaults.Output.Dir)
	v.SetDefault("output.readme", defaults.Output.Readme)
	v.SetDefault("output.prd", defaults.Output.PRD)
	v.SetDefault("output.context_cards", defaults.Output.ContextCards)
	v.SetDefault("output.codebase_map", defaults.Output.CodebaseMap)
	v.SetDefault("output.score_report", defaults.Output.ScoreReport)

	v.SetDefault("cache.location", defaults.Cache.Location)
	v.SetDefault("cache.max_age_days", defaults.Cache.MaxAgeDays)
}

// LoadConfig is a convenience function that creates a loader and loads config.
// It uses the current working directory as the workspace root.
func LoadConfig() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	return NewLoader(wd).Load()
}

// LoadConfigFromDir loads configuration from a specific workspace root.
func LoadConfigFromDir(rootDir string) (*Config, error) {
	return NewLoader(rootDir).Load()
}

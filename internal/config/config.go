package config

// Config represents the complete prdgen configuration.
// It can be loaded from .prdgen/config.yml with environment variable overrides.
type Config struct {
	Generation GenerationConfig `yaml:"generation" mapstructure:"generation"`
	Paths      PathsConfig      `yaml:"paths" mapstructure:"paths"`
	Output     OutputConfig     `yaml:"output" mapstructure:"output"`
	Cache      CacheConfig      `yaml:"cache" mapstructure:"cache"`
}

// GenerationConfig configures the summary-generation provider.
type GenerationConfig struct {
	Provider  string `yaml:"provider" mapstructure:"provider"`       // "openai" or "mock"
	Model     string `yaml:"model" mapstructure:"model"`             // e.g., "gpt-4o-mini"
	Endpoint  string `yaml:"endpoint" mapstructure:"endpoint"`       // chat completions endpoint URL
	APIKeyEnv string `yaml:"api_key_env" mapstructure:"api_key_env"` // env var holding the API key
	MaxTokens int    `yaml:"max_tokens" mapstructure:"max_tokens"`   // per-summary completion budget
}

// PathsConfig defines which files to document and which to ignore.
type PathsConfig struct {
	Source []string `yaml:"source" mapstructure:"source"` // glob patterns for source files
	Docs   []string `yaml:"docs" mapstructure:"docs"`     // glob patterns for existing documentation
	Ignore []string `yaml:"ignore" mapstructure:"ignore"` // glob patterns to ignore
}

// OutputConfig defines where artifacts are written and which ones to produce.
type OutputConfig struct {
	Dir          string `yaml:"dir" mapstructure:"dir"`                     // artifact directory, relative to the workspace root
	Readme       bool   `yaml:"readme" mapstructure:"readme"`               // workspace README
	PRD          bool   `yaml:"prd" mapstructure:"prd"`                     // product requirements document skeleton
	ContextCards bool   `yaml:"context_cards" mapstructure:"context_cards"` // per-file context cards
	CodebaseMap  bool   `yaml:"codebase_map" mapstructure:"codebase_map"`   // dependency map with mermaid diagram
	ScoreReport  bool   `yaml:"score_report" mapstructure:"score_report"`   // comprehension score report
}

// CacheConfig defines summary cache behavior.
type CacheConfig struct {
	Location   string `yaml:"location" mapstructure:"location"`         // Override default .prdgen/cache.db
	MaxAgeDays int    `yaml:"max_age_days" mapstructure:"max_age_days"` // Delete cached summaries older than this
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Generation: GenerationConfig{
			Provider:  "openai",
			Model:     "gpt-4o-mini",
			Endpoint:  "https://api.openai.com/v1/chat/completions",
			APIKeyEnv: "OPENAI_API_KEY",
			MaxTokens: 256,
		},
		Paths: PathsConfig{
			Source: []string{
				"**/*.ts",
				"**/*.tsx",
				"**/*.js",
				"**/*.jsx",
			},
			Docs: []string{
				"**/*.md",
			},
			Ignore: []string{
				"node_modules/**",
				"dist/**",
				"build/**",
				"out/**",
				".git/**",
				"coverage/**",
				"*.d.ts",
			},
		},
		Output: OutputConfig{
			Dir:          "docs",
			Readme:       true,
			PRD:          true,
			ContextCards: true,
			CodebaseMap:  true,
			ScoreReport:  true,
		},
		Cache: CacheConfig{
			Location:   "", // Empty means use default .prdgen/cache.db
			MaxAgeDays: 30,
		},
	}
}

// GetSourceExtensions extracts unique file extensions from source patterns.
// Returns extensions with leading dot (e.g., []string{".ts", ".js"}).
func (c *Config) GetSourceExtensions() []string {
	extMap := make(map[string]bool)

	for _, pattern := range c.Paths.Source {
		if ext := extractExtension(pattern); ext != "" {
			extMap[ext] = true
		}
	}

	extensions := make([]string, 0, len(extMap))
	for ext := range extMap {
		extensions = append(extensions, ext)
	}

	return extensions
}

// extractExtension extracts the file extension from a glob pattern.
// Returns empty string if pattern doesn't match a simple extension pattern.
// Examples: "**/*.ts" -> ".ts", "*.js" -> ".js"
func extractExtension(pattern string) string {
	for i := len(pattern) - 1; i >= 1; i-- {
		if pattern[i] == '.' && pattern[i-1] == '*' {
			return pattern[i:]
		}
	}
	return ""
}

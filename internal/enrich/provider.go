package enrich

import "context"

// Request describes one symbol (or file) to summarize.
type Request struct {
	// FilePath is the workspace-relative path of the source file.
	FilePath string

	// Kind is "function", "class", "method", or "file".
	Kind string

	// Name is the symbol name; empty for file-level summaries.
	Name string

	// Signature is the declaration header produced by the analyzer.
	Signature string

	// Dependencies are the symbol's same-file call targets, included in the
	// prompt so summaries can mention collaborators.
	Dependencies []string
}

// Provider defines the interface for generating human-readable summaries.
// Implementations may call a hosted model or produce deterministic text for
// tests and offline runs.
type Provider interface {
	// Initialize prepares the provider and blocks until ready.
	// For OpenAIProvider: verifies the API key is available.
	// Must be called before Summarize().
	Initialize(ctx context.Context) error

	// Summarize produces a one-paragraph summary for the request.
	// Initialize() must be called first.
	Summarize(ctx context.Context, req Request) (string, error)

	// Close releases any resources held by the provider.
	Close() error
}

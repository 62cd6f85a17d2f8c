package enrich

import (
	"context"
	"crypto/sha256"
	"fmt"
)

// mockProvider is a test implementation that generates deterministic summaries.
type mockProvider struct{}

// NewMockProvider creates a mock summary provider for testing and offline
// runs. Summaries are derived from the request content, so identical inputs
// always produce identical text.
func NewMockProvider() Provider {
	return &mockProvider{}
}

// Initialize is a no-op for the mock provider.
func (p *mockProvider) Initialize(ctx context.Context) error {
	return nil
}

// Summarize generates a deterministic summary from the request hash.
func (p *mockProvider) Summarize(ctx context.Context, req Request) (string, error) {
	hash := sha256.Sum256([]byte(req.FilePath + "|" + req.Kind + "|" + req.Name + "|" + req.Signature))

	if req.Name == "" {
		return fmt.Sprintf("Summary of %s (%x).", req.FilePath, hash[:4]), nil
	}
	return fmt.Sprintf("%s %s: deterministic summary (%x).", req.Kind, req.Name, hash[:4]), nil
}

// Close is a no-op for the mock provider.
func (p *mockProvider) Close() error {
	return nil
}

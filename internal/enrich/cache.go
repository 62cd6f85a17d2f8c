package enrich

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/maypok86/otter"
)

// cachingProvider memoizes summaries from an inner provider. Symbols repeat
// across incremental runs and watch-mode regenerations; identical requests
// should not pay for a second model call within one process.
type cachingProvider struct {
	inner Provider
	cache otter.Cache[string, string]
}

// NewCachingProvider wraps a provider with an in-memory memoization cache of
// the given capacity.
func NewCachingProvider(inner Provider, capacity int) (Provider, error) {
	cache, err := otter.MustBuilder[string, string](capacity).Build()
	if err != nil {
		return nil, err
	}
	return &cachingProvider{
		inner: inner,
		cache: cache,
	}, nil
}

// Initialize delegates to the inner provider.
func (p *cachingProvider) Initialize(ctx context.Context) error {
	return p.inner.Initialize(ctx)
}

// Summarize returns a cached summary when the request content is unchanged,
// otherwise asks the inner provider and caches the result. Errors are never
// cached.
func (p *cachingProvider) Summarize(ctx context.Context, req Request) (string, error) {
	key := requestKey(req)

	if summary, ok := p.cache.Get(key); ok {
		return summary, nil
	}

	summary, err := p.inner.Summarize(ctx, req)
	if err != nil {
		return "", err
	}

	p.cache.Set(key, summary)
	return summary, nil
}

// Close releases the cache and the inner provider.
func (p *cachingProvider) Close() error {
	p.cache.Close()
	return p.inner.Close()
}

// requestKey hashes the request fields that influence the summary.
func requestKey(req Request) string {
	h := sha256.New()
	h.Write([]byte(req.FilePath))
	h.Write([]byte{0})
	h.Write([]byte(req.Kind))
	h.Write([]byte{0})
	h.Write([]byte(req.Name))
	h.Write([]byte{0})
	h.Write([]byte(req.Signature))
	h.Write([]byte{0})
	h.Write([]byte(strings.Join(req.Dependencies, ",")))
	return hex.EncodeToString(h.Sum(nil))
}

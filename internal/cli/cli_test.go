package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jamie-anson/prdgen/internal/config"
)

// Test Plan for CLI helpers:
// - cachePath honors absolute and relative overrides and the default location
// - stripEmphasis removes highlight markers and flattens newlines

func TestCachePath(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	root := filepath.FromSlash("/work/project")

	assert.Equal(t, filepath.Join(root, ".prdgen", "cache.db"), cachePath(root, cfg))

	cfg.Cache.Location = "tmp/cache.db"
	assert.Equal(t, filepath.Join(root, "tmp", "cache.db"), cachePath(root, cfg))

	abs := filepath.FromSlash("/var/cache/prdgen.db")
	cfg.Cache.Location = abs
	assert.Equal(t, abs, cachePath(root, cfg))
}

func TestStripEmphasis(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "user authentication flow",
		stripEmphasis("user <em>authentication</em>\nflow"))
}

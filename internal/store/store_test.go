package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for the summary store:
// - Open creates the database file and parent directory
// - Summaries round-trip per file and validate against the content hash
// - A changed content hash invalidates the cached entry
// - PutSummaries replaces prior rows instead of accumulating them
// - Runs are recorded with generated ids and listed newest first
// - Prune removes entries older than the cutoff

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), ".prdgen", "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_SummariesRoundTrip(t *testing.T) {
	t.Parallel()
	s := openTestStore(t)

	in := map[string]string{
		"function:login":   "Validates credentials.",
		"class:Session":    "Holds session state.",
		"method:Session.refresh": "Extends the session lifetime.",
	}
	require.NoError(t, s.PutSummaries("src/auth.ts", "hash-1", in))

	out, ok, err := s.GetSummaries("src/auth.ts", "hash-1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, in, out)
}

func TestStore_StaleHashInvalidates(t *testing.T) {
	t.Parallel()
	s := openTestStore(t)

	require.NoError(t, s.PutSummaries("src/auth.ts", "hash-1",
		map[string]string{"function:login": "old"}))

	_, ok, err := s.GetSummaries("src/auth.ts", "hash-2")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_MissingFile(t *testing.T) {
	t.Parallel()
	s := openTestStore(t)

	_, ok, err := s.GetSummaries("src/unknown.ts", "hash-1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_PutReplaces(t *testing.T) {
	t.Parallel()
	s := openTestStore(t)

	require.NoError(t, s.PutSummaries("src/auth.ts", "hash-1",
		map[string]string{"function:login": "old", "function:logout": "gone"}))
	require.NoError(t, s.PutSummaries("src/auth.ts", "hash-2",
		map[string]string{"function:login": "new"}))

	out, ok, err := s.GetSummaries("src/auth.ts", "hash-2")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, map[string]string{"function:login": "new"}, out)
}

func TestStore_RecordAndListRuns(t *testing.T) {
	t.Parallel()
	s := openTestStore(t)

	first, err := s.RecordRun(Run{
		StartedAt:   time.Now().Add(-time.Hour),
		Duration:    2 * time.Second,
		SourceFiles: 3,
		Symbols:     12,
		Score:       70,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, first)

	second, err := s.RecordRun(Run{StartedAt: time.Now(), Score: 85})
	require.NoError(t, err)

	runs, err := s.ListRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, second, runs[0].ID)
	assert.Equal(t, first, runs[1].ID)
	assert.Equal(t, 70, runs[1].Score)
	assert.Equal(t, 2*time.Second, runs[1].Duration)
}

func TestStore_Prune(t *testing.T) {
	t.Parallel()
	s := openTestStore(t)

	require.NoError(t, s.PutSummaries("src/auth.ts", "hash-1",
		map[string]string{"function:login": "fresh"}))
	require.NoError(t, s.Prune(time.Hour))

	_, ok, err := s.GetSummaries("src/auth.ts", "hash-1")
	require.NoError(t, err)
	assert.True(t, ok, "recent entries survive pruning")

	require.NoError(t, s.Prune(0))
	_, ok, err = s.GetSummaries("src/auth.ts", "hash-1")
	require.NoError(t, err)
	assert.False(t, ok, "everything older than now is pruned")
}

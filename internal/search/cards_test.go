package search

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for card loading:
// - Cards are parsed into path, summary, symbols, and full text
// - Non-markdown entries are skipped
// - A missing directory returns an error

const sampleCard = `# Context: src/auth.ts

Handles user authentication.

## Functions

### ` + "`login`" + `

Validates credentials.

## Classes

### ` + "`Session`" + `

#### ` + "`refresh`" + `
`

func TestLoadCards(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "src__auth.ts.md"), []byte(sampleCard), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("skip me"), 0644))

	docs, err := LoadCards(dir)
	require.NoError(t, err)
	require.Len(t, docs, 1)

	doc := docs[0]
	assert.Equal(t, "src/auth.ts", doc.Path)
	assert.Equal(t, "Handles user authentication.", doc.Summary)
	assert.Equal(t, []string{"login", "Session", "refresh"}, doc.Symbols)
	assert.Contains(t, doc.Text, "Validates credentials.")
}

func TestLoadCards_MissingDir(t *testing.T) {
	t.Parallel()

	_, err := LoadCards(filepath.Join(t.TempDir(), "does-not-exist"))
	assert.Error(t, err)
}

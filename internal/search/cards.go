package search

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LoadCards reads generated context cards from a directory (the context/
// subdirectory of the output dir) and converts them into indexable documents.
func LoadCards(dir string) ([]Document, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read card directory: %w", err)
	}

	var docs []Document
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}

		content, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read card %s: %w", entry.Name(), err)
		}

		docs = append(docs, parseCard(string(content)))
	}

	return docs, nil
}

// parseCard extracts the indexable fields from one card's markdown. The card
// layout is stable: an "# Context: <path>" title, a summary paragraph, and
// "### `name`" / "#### `name`" symbol headings.
func parseCard(content string) Document {
	doc := Document{Text: content}

	inSummary := false
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)

		switch {
		case strings.HasPrefix(trimmed, "# Context: "):
			doc.Path = strings.TrimPrefix(trimmed, "# Context: ")
			inSummary = true

		case strings.HasPrefix(trimmed, "### `"), strings.HasPrefix(trimmed, "#### `"):
			name := strings.Trim(strings.TrimLeft(trimmed, "# "), "`")
			if name != "" {
				doc.Symbols = append(doc.Symbols, name)
			}

		case strings.HasPrefix(trimmed, "#"):
			inSummary = false

		case inSummary && trimmed != "" && doc.Summary == "":
			doc.Summary = trimmed
		}
	}

	return doc
}

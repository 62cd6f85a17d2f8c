package search

import (
	"context"
	"fmt"
	"sync"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"
)

// Document is one indexed context card.
type Document struct {
	Path    string   `json:"path"`    // source file the card describes
	Text    string   `json:"text"`    // full card markdown
	Summary string   `json:"summary"` // file-level summary
	Symbols []string `json:"symbols"` // exported symbol names for exact lookup
}

// Result is a single search hit with highlighted snippets.
type Result struct {
	Path       string   `json:"path"`
	Summary    string   `json:"summary"`
	Score      float64  `json:"score"`
	Highlights []string `json:"highlights"`
}

// Searcher provides full-text search over generated context cards.
type Searcher interface {
	// Search executes a keyword query using FTS syntax (boolean operators,
	// phrases, wildcards, field scoping like symbols:login).
	Search(ctx context.Context, queryStr string, limit int) ([]Result, error)

	// Close releases resources held by the searcher.
	Close() error
}

// searcher implements Searcher using an in-memory bleve index.
type searcher struct {
	index bleve.Index
	mu    sync.RWMutex
}

// NewSearcher builds an in-memory index over the given documents.
func NewSearcher(ctx context.Context, docs []Document) (Searcher, error) {
	index, err := bleve.NewMemOnly(buildMapping())
	if err != nil {
		return nil, fmt.Errorf("failed to create search index: %w", err)
	}

	if err := indexDocuments(ctx, index, docs); err != nil {
		index.Close()
		return nil, fmt.Errorf("failed to index context cards: %w", err)
	}

	return &searcher{index: index}, nil
}

// buildMapping creates the index mapping for card documents. Text and summary
// use the standard analyzer; symbol names use the keyword analyzer so queries
// like symbols:login match exactly.
func buildMapping() *mapping.IndexMappingImpl {
	textMapping := bleve.NewTextFieldMapping()
	textMapping.Analyzer = "standard"
	textMapping.Store = true
	textMapping.IncludeTermVectors = true

	summaryMapping := bleve.NewTextFieldMapping()
	summaryMapping.Analyzer = "standard"
	summaryMapping.Store = true

	pathMapping := bleve.NewTextFieldMapping()
	pathMapping.Analyzer = "standard"
	pathMapping.Store = true

	symbolsMapping := bleve.NewTextFieldMapping()
	symbolsMapping.Analyzer = "keyword"
	symbolsMapping.Store = true

	docMapping := bleve.NewDocumentMapping()
	docMapping.AddFieldMappingsAt("text", textMapping)
	docMapping.AddFieldMappingsAt("summary", summaryMapping)
	docMapping.AddFieldMappingsAt("path", pathMapping)
	docMapping.AddFieldMappingsAt("symbols", symbolsMapping)

	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultMapping = docMapping
	return indexMapping
}

// indexDocuments adds all documents to the index in one batch.
func indexDocuments(ctx context.Context, index bleve.Index, docs []Document) error {
	batch := index.NewBatch()
	for i := range docs {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		doc := &docs[i]
		fields := map[string]interface{}{
			"path":    doc.Path,
			"text":    doc.Text,
			"summary": doc.Summary,
			"symbols": doc.Symbols,
		}
		if err := batch.Index(doc.Path, fields); err != nil {
			return fmt.Errorf("failed to add %s to batch: %w", doc.Path, err)
		}
	}

	if batch.Size() > 0 {
		if err := index.Batch(batch); err != nil {
			return fmt.Errorf("failed to execute index batch: %w", err)
		}
	}
	return nil
}

// Search executes a bleve QueryStringQuery with highlighting.
func (s *searcher) Search(ctx context.Context, queryStr string, limit int) ([]Result, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	q := bleve.NewQueryStringQuery(queryStr)
	req := bleve.NewSearchRequestOptions(q, limit, 0, false)
	highlightStyle := "html"
	req.Highlight = bleve.NewHighlight()
	req.Highlight.Style = &highlightStyle
	req.Highlight.Fields = []string{"text"}
	req.Fields = []string{"path", "summary"}

	res, err := s.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	results := make([]Result, 0, len(res.Hits))
	for _, hit := range res.Hits {
		path, _ := hit.Fields["path"].(string)
		summary, _ := hit.Fields["summary"].(string)

		var highlights []string
		for _, snippets := range hit.Fragments {
			highlights = append(highlights, snippets...)
		}
		if len(highlights) > 3 {
			highlights = highlights[:3]
		}

		results = append(results, Result{
			Path:       path,
			Summary:    summary,
			Score:      hit.Score,
			Highlights: highlights,
		})
	}

	return results, nil
}

// Close releases the underlying index.
func (s *searcher) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.index != nil {
		return s.index.Close()
	}
	return nil
}

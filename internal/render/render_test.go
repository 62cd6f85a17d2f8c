package render

import (
	"strings"
	"testing"
	"time"

	"github.com/jamie-anson/prdgen/internal/analyzer"
	"github.com/jamie-anson/prdgen/internal/graph"
	"github.com/jamie-anson/prdgen/internal/score"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for markdown rendering:
// - Context cards include signatures, summaries, and dependency lists
// - Empty files render a placeholder instead of empty sections
// - README table escapes pipes and truncates long summaries
// - PRD includes file capabilities and placeholder sections
// - Codebase map renders a mermaid graph with sanitized IDs
// - Score report shows value, grade, and component breakdown

func sampleFileDoc() *FileDoc {
	return &FileDoc{
		Path:    "src/auth.ts",
		Summary: "Handles user authentication.",
		Functions: []SymbolDoc{
			{
				Name:         "login",
				Signature:    "function login(user: string, pass: string): Session",
				Summary:      "Validates credentials and opens a session.",
				Dependencies: []string{"hash", "Session"},
			},
		},
		Classes: []ClassDoc{
			{
				SymbolDoc: SymbolDoc{Name: "Session", Signature: "class Session { ... }"},
				Methods: []SymbolDoc{
					{Name: "refresh", Signature: "refresh(): void"},
				},
			},
		},
	}
}

func TestContextCard(t *testing.T) {
	t.Parallel()

	card := ContextCard(sampleFileDoc())

	assert.Contains(t, card, "# Context: src/auth.ts")
	assert.Contains(t, card, "Handles user authentication.")
	assert.Contains(t, card, "### `login`")
	assert.Contains(t, card, "function login(user: string, pass: string): Session")
	assert.Contains(t, card, "Calls: `hash`, `Session`")
	assert.Contains(t, card, "### `Session`")
	assert.Contains(t, card, "#### `refresh`")
}

func TestContextCard_EmptyFile(t *testing.T) {
	t.Parallel()

	card := ContextCard(&FileDoc{Path: "src/empty.ts"})

	assert.Contains(t, card, "_No extractable symbols._")
	assert.NotContains(t, card, "## Functions")
	assert.NotContains(t, card, "## Classes")
}

func TestReadme(t *testing.T) {
	t.Parallel()

	project := &ProjectDoc{
		Name:        "my-app",
		GeneratedAt: time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC),
		Files: []FileDoc{
			*sampleFileDoc(),
			{Path: "src/table.ts", Summary: "Renders a | separated table.\nSecond line."},
		},
	}

	readme := Readme(project)

	assert.Contains(t, readme, "# my-app")
	assert.Contains(t, readme, "2026-08-23")
	assert.Contains(t, readme, "| src/auth.ts | 3 |")
	// Pipes escaped, newlines flattened.
	assert.Contains(t, readme, "\\|")
	assert.NotContains(t, readme, "table.\nSecond")
}

func TestReadme_LongSummaryTruncated(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("word ", 60)
	cell := tableCell(long)
	assert.LessOrEqual(t, len(cell), 120)
	assert.True(t, strings.HasSuffix(cell, "..."))
}

func TestPRD(t *testing.T) {
	t.Parallel()

	project := &ProjectDoc{
		Name:        "my-app",
		GeneratedAt: time.Now(),
		Files:       []FileDoc{*sampleFileDoc()},
	}

	prd := PRD(project)

	assert.Contains(t, prd, "# Product Requirements: my-app")
	assert.Contains(t, prd, "Handles user authentication.")
	assert.Contains(t, prd, "## Goals")
	assert.Contains(t, prd, "## Non-Goals")
	assert.Contains(t, prd, "## Open Questions")
}

func TestPRD_NoSummaries(t *testing.T) {
	t.Parallel()

	prd := PRD(&ProjectDoc{Name: "bare", GeneratedAt: time.Now(), Files: []FileDoc{{Path: "a.ts"}}})
	assert.Contains(t, prd, "prdgen generate")
}

func TestCodebaseMap(t *testing.T) {
	t.Parallel()

	pg, err := graph.Build(map[string]*analyzer.AnalysisResult{
		"src/app.ts": {
			Functions: []analyzer.FunctionInfo{
				{Name: "main", Dependencies: []string{"setup"}},
				{Name: "setup"},
			},
		},
	})
	require.NoError(t, err)

	doc := CodebaseMap(pg)

	assert.Contains(t, doc, "# Codebase Map")
	assert.Contains(t, doc, "### src/app.ts")
	assert.Contains(t, doc, "```mermaid")
	assert.Contains(t, doc, `src_app_ts_main["main"] --> src_app_ts_setup["setup"]`)
}

func TestCodebaseMap_NoEdges(t *testing.T) {
	t.Parallel()

	pg, err := graph.Build(map[string]*analyzer.AnalysisResult{
		"a.ts": {Functions: []analyzer.FunctionInfo{{Name: "solo"}}},
	})
	require.NoError(t, err)

	doc := CodebaseMap(pg)
	assert.Contains(t, doc, "_No call dependencies detected._")
	assert.NotContains(t, doc, "mermaid")
}

func TestScoreReport(t *testing.T) {
	t.Parallel()

	input := score.Input{
		TotalSymbols:      10,
		SummarizedSymbols: 5,
		GraphNodes:        8,
		GraphEdges:        4,
		SourceFiles:       4,
		DocFiles:          1,
	}
	report := score.Compute(input)

	doc := ScoreReport(report, input)

	assert.Contains(t, doc, "# Code Comprehension Score")
	assert.Contains(t, doc, "5 of 10 symbols summarized")
	assert.Contains(t, doc, "4 edges across 8 symbols")
	assert.Contains(t, doc, "1 doc files for 4 source files")
}

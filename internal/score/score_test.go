package score

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Test Plan for the comprehension score:
// - Full coverage, dense graph, and docs yield 100/A
// - Empty workspace produces a defined score, no division by zero
// - Partial coverage weights correctly
// - Components clamp at 1.0
// - Grade boundaries

func TestCompute_FullMarks(t *testing.T) {
	t.Parallel()

	report := Compute(Input{
		TotalSymbols:      10,
		SummarizedSymbols: 10,
		GraphNodes:        8,
		GraphEdges:        8,
		SourceFiles:       4,
		DocFiles:          1,
	})

	assert.Equal(t, 100, report.Value)
	assert.Equal(t, "A", report.Grade)
	assert.Equal(t, 1.0, report.Coverage)
	assert.Equal(t, 1.0, report.Connectivity)
	assert.Equal(t, 1.0, report.DocPresence)
}

func TestCompute_EmptyWorkspace(t *testing.T) {
	t.Parallel()

	report := Compute(Input{})

	// No symbols means nothing is missing a summary; the other components
	// contribute zero.
	assert.Equal(t, 50, report.Value)
	assert.Equal(t, "F", report.Grade)
	assert.Equal(t, 1.0, report.Coverage)
	assert.Equal(t, 0.0, report.Connectivity)
	assert.Equal(t, 0.0, report.DocPresence)
}

func TestCompute_PartialCoverage(t *testing.T) {
	t.Parallel()

	report := Compute(Input{
		TotalSymbols:      10,
		SummarizedSymbols: 5,
		GraphNodes:        10,
		GraphEdges:        0,
		SourceFiles:       10,
		DocFiles:          0,
	})

	// 0.5*0.5 + 0.3*0 + 0.2*0 = 0.25
	assert.Equal(t, 25, report.Value)
	assert.Equal(t, 0.5, report.Coverage)
}

func TestCompute_ComponentsClamped(t *testing.T) {
	t.Parallel()

	report := Compute(Input{
		TotalSymbols:      4,
		SummarizedSymbols: 8,  // over-reporting clamps at 1.0
		GraphNodes:        2,
		GraphEdges:        10, // dense graph clamps at 1.0
		SourceFiles:       1,
		DocFiles:          5,
	})

	assert.Equal(t, 1.0, report.Coverage)
	assert.Equal(t, 1.0, report.Connectivity)
	assert.Equal(t, 1.0, report.DocPresence)
	assert.Equal(t, 100, report.Value)
}

func TestGradeBoundaries(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value int
		grade string
	}{
		{95, "A"}, {90, "A"}, {89, "B"}, {80, "B"},
		{79, "C"}, {70, "C"}, {69, "D"}, {60, "D"},
		{59, "F"}, {0, "F"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.grade, grade(tt.value), "value %d", tt.value)
	}
}

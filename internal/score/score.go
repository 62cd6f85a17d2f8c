package score

import "math"

// Input carries the measurements the score is computed from.
type Input struct {
	TotalSymbols      int // top-level functions, classes, and methods
	SummarizedSymbols int // symbols with a generated or cached summary
	GraphNodes        int // top-level symbols in the project graph
	GraphEdges        int // call dependency edges
	SourceFiles       int // analyzed source files
	DocFiles          int // existing markdown files found by discovery
}

// Report is the Code Comprehension Score breakdown.
type Report struct {
	Value        int     // 0-100
	Grade        string  // A-F
	Coverage     float64 // share of symbols with a summary
	Connectivity float64 // dependency edges relative to symbols
	DocPresence  float64 // existing docs relative to source size
}

// Component weights. Coverage dominates because the score exists to push
// toward documented symbols; connectivity and existing docs are secondary
// signals of how navigable the codebase already is.
const (
	coverageWeight     = 0.5
	connectivityWeight = 0.3
	docPresenceWeight  = 0.2
)

// Compute derives the comprehension score from the inputs. All components are
// clamped to [0, 1] before weighting, so degenerate inputs (no files, no
// symbols) produce a defined score instead of dividing by zero.
func Compute(in Input) Report {
	coverage := 1.0
	if in.TotalSymbols > 0 {
		coverage = clamp01(float64(in.SummarizedSymbols) / float64(in.TotalSymbols))
	}

	connectivity := 0.0
	if in.GraphNodes > 0 {
		connectivity = clamp01(float64(in.GraphEdges) / float64(in.GraphNodes))
	}

	docPresence := 0.0
	if in.SourceFiles > 0 {
		// One doc file per four source files counts as full marks.
		docPresence = clamp01(4 * float64(in.DocFiles) / float64(in.SourceFiles))
	}

	value := int(math.Round(100 * (coverageWeight*coverage +
		connectivityWeight*connectivity +
		docPresenceWeight*docPresence)))

	return Report{
		Value:        value,
		Grade:        grade(value),
		Coverage:     coverage,
		Connectivity: connectivity,
		DocPresence:  docPresence,
	}
}

// grade maps a score to a letter grade.
func grade(value int) string {
	switch {
	case value >= 90:
		return "A"
	case value >= 80:
		return "B"
	case value >= 70:
		return "C"
	case value >= 60:
		return "D"
	default:
		return "F"
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

package render

import (
	"fmt"
	"strings"

	"github.com/jamie-anson/prdgen/internal/score"
)

// ScoreReport renders the Code Comprehension Score artifact.
func ScoreReport(report score.Report, input score.Input) string {
	var sb strings.Builder

	sb.WriteString("# Code Comprehension Score\n\n")
	fmt.Fprintf(&sb, "## %d / 100 (%s)\n\n", report.Value, report.Grade)

	sb.WriteString("| Component | Score | Detail |\n")
	sb.WriteString("| --- | --- | --- |\n")
	fmt.Fprintf(&sb, "| Summary coverage | %.0f%% | %d of %d symbols summarized |\n",
		report.Coverage*100, input.SummarizedSymbols, input.TotalSymbols)
	fmt.Fprintf(&sb, "| Dependency connectivity | %.0f%% | %d edges across %d symbols |\n",
		report.Connectivity*100, input.GraphEdges, input.GraphNodes)
	fmt.Fprintf(&sb, "| Existing documentation | %.0f%% | %d doc files for %d source files |\n",
		report.DocPresence*100, input.DocFiles, input.SourceFiles)
	sb.WriteString("\n")

	sb.WriteString("## Reading the score\n\n")
	sb.WriteString("- **Summary coverage** rises as more symbols get generated summaries.\n")
	sb.WriteString("- **Dependency connectivity** reflects how much of the call structure the analyzer could link.\n")
	sb.WriteString("- **Existing documentation** counts markdown files already in the workspace.\n")

	return sb.String()
}

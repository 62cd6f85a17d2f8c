package render

import (
	"fmt"
	"strings"
)

// Readme renders the workspace README from the documented project.
func Readme(project *ProjectDoc) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# %s\n\n", project.Name)
	fmt.Fprintf(&sb, "> Generated by prdgen on %s.\n\n", project.GeneratedAt.Format("2006-01-02"))

	totalSymbols := 0
	for i := range project.Files {
		totalSymbols += project.Files[i].SymbolCount()
	}
	fmt.Fprintf(&sb, "%d source files, %d documented symbols.\n\n", len(project.Files), totalSymbols)

	sb.WriteString("## Files\n\n")
	sb.WriteString("| File | Symbols | Summary |\n")
	sb.WriteString("| --- | --- | --- |\n")
	for i := range project.Files {
		file := &project.Files[i]
		fmt.Fprintf(&sb, "| %s | %d | %s |\n",
			file.Path, file.SymbolCount(), tableCell(file.Summary))
	}
	sb.WriteString("\n")

	sb.WriteString("## Documentation\n\n")
	sb.WriteString("- Per-file context cards live under `context/`.\n")
	sb.WriteString("- The dependency map lives in `codebase-map.md`.\n")
	sb.WriteString("- The comprehension score lives in `comprehension-score.md`.\n")

	return sb.String()
}

// tableCell flattens a summary into a single markdown table cell.
func tableCell(text string) string {
	if text == "" {
		return "—"
	}
	text = strings.ReplaceAll(text, "\n", " ")
	text = strings.ReplaceAll(text, "|", "\\|")
	if len(text) > 120 {
		text = text[:117] + "..."
	}
	return text
}

package render

import (
	"fmt"
	"strings"
)

// ContextCard renders the markdown context card for one source file.
func ContextCard(file *FileDoc) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# Context: %s\n\n", file.Path)

	if file.Summary != "" {
		sb.WriteString(file.Summary)
		sb.WriteString("\n\n")
	}

	if len(file.Functions) > 0 {
		sb.WriteString("## Functions\n\n")
		for _, fn := range file.Functions {
			writeSymbol(&sb, "###", fn)
		}
	}

	if len(file.Classes) > 0 {
		sb.WriteString("## Classes\n\n")
		for _, cls := range file.Classes {
			writeSymbol(&sb, "###", cls.SymbolDoc)
			for _, method := range cls.Methods {
				writeSymbol(&sb, "####", method)
			}
		}
	}

	if file.SymbolCount() == 0 {
		sb.WriteString("_No extractable symbols._\n")
	}

	return strings.TrimRight(sb.String(), "\n") + "\n"
}

// writeSymbol renders one symbol section at the given heading level.
func writeSymbol(sb *strings.Builder, heading string, sym SymbolDoc) {
	fmt.Fprintf(sb, "%s `%s`\n\n", heading, sym.Name)

	if sym.Signature != "" {
		fmt.Fprintf(sb, "```typescript\n%s\n```\n\n", sym.Signature)
	}

	if sym.Summary != "" {
		sb.WriteString(sym.Summary)
		sb.WriteString("\n\n")
	}

	if len(sym.Dependencies) > 0 {
		fmt.Fprintf(sb, "Calls: %s\n\n", formatDependencyList(sym.Dependencies))
	}
}

// formatDependencyList renders dependency names as inline code.
func formatDependencyList(deps []string) string {
	quoted := make([]string, len(deps))
	for i, dep := range deps {
		quoted[i] = "`" + dep + "`"
	}
	return strings.Join(quoted, ", ")
}

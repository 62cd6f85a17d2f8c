package render

import (
	"fmt"
	"strings"

	"github.com/jamie-anson/prdgen/internal/graph"
)

// CodebaseMap renders the dependency map artifact: a per-file symbol listing
// plus a mermaid diagram of call edges.
func CodebaseMap(pg *graph.ProjectGraph) string {
	var sb strings.Builder

	sb.WriteString("# Codebase Map\n\n")
	fmt.Fprintf(&sb, "%d symbols, %d call edges.\n\n", len(pg.Nodes()), len(pg.Edges()))

	sb.WriteString("## Symbols\n\n")
	currentFile := ""
	for _, node := range pg.Nodes() {
		if node.File != currentFile {
			currentFile = node.File
			fmt.Fprintf(&sb, "\n### %s\n\n", currentFile)
		}
		switch node.Kind {
		case graph.NodeClass:
			fmt.Fprintf(&sb, "- `%s` (class, %d methods)", node.Name, node.Methods)
		default:
			fmt.Fprintf(&sb, "- `%s` (function)", node.Name)
		}
		if callers := pg.Callers(node.ID); len(callers) > 0 {
			fmt.Fprintf(&sb, " — called by %d", len(callers))
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	sb.WriteString("## Dependency Graph\n\n")
	if len(pg.Edges()) == 0 {
		sb.WriteString("_No call dependencies detected._\n")
		return sb.String()
	}

	sb.WriteString("```mermaid\ngraph TD\n")
	for _, edge := range pg.Edges() {
		fmt.Fprintf(&sb, "    %s[\"%s\"] --> %s[\"%s\"]\n",
			mermaidID(edge.From), mermaidLabel(pg, edge.From),
			mermaidID(edge.To), mermaidLabel(pg, edge.To))
	}
	sb.WriteString("```\n")

	return sb.String()
}

// mermaidID converts a node ID into a mermaid-safe identifier.
func mermaidID(id string) string {
	var sb strings.Builder
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			sb.WriteRune(r)
		default:
			sb.WriteByte('_')
		}
	}
	return sb.String()
}

// mermaidLabel renders the human-readable node label.
func mermaidLabel(pg *graph.ProjectGraph, id string) string {
	node, err := pg.Node(id)
	if err != nil {
		return id
	}
	return node.Name
}

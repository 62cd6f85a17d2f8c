package render

import (
	"fmt"
	"strings"
)

// PRD renders a product requirements document skeleton pre-filled from the
// analyzed workspace. Sections the model cannot infer are left as prompts for
// the author.
func PRD(project *ProjectDoc) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# Product Requirements: %s\n\n", project.Name)
	fmt.Fprintf(&sb, "_Draft generated by prdgen on %s. Review and edit before circulating._\n\n",
		project.GeneratedAt.Format("2006-01-02"))

	sb.WriteString("## Overview\n\n")
	if overview := projectOverview(project); overview != "" {
		sb.WriteString(overview)
		sb.WriteString("\n\n")
	} else {
		sb.WriteString("_Describe the product in one paragraph._\n\n")
	}

	sb.WriteString("## Current Capabilities\n\n")
	wrote := false
	for i := range project.Files {
		file := &project.Files[i]
		if file.Summary == "" {
			continue
		}
		fmt.Fprintf(&sb, "- **%s** — %s\n", file.Path, strings.ReplaceAll(file.Summary, "\n", " "))
		wrote = true
	}
	if !wrote {
		sb.WriteString("_No file summaries available yet; run `prdgen generate` with a configured provider._\n")
	}
	sb.WriteString("\n")

	sb.WriteString("## Goals\n\n_List the outcomes this product must achieve._\n\n")
	sb.WriteString("## Non-Goals\n\n_List what is explicitly out of scope._\n\n")
	sb.WriteString("## Open Questions\n\n_Track unresolved product decisions here._\n")

	return sb.String()
}

// projectOverview picks the first file summary as a seed overview.
func projectOverview(project *ProjectDoc) string {
	for i := range project.Files {
		if project.Files[i].Summary != "" {
			return project.Files[i].Summary
		}
	}
	return ""
}

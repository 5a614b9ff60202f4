package docsync

import (
	"fmt"
	"strings"
	"time"

	"github.com/agentops/recall/internal/models"
)

// Section is an ephemeral parse unit: one "## " headed block of a memory
// document. Sections are never persisted directly, only through the records
// they generate.
type Section struct {
	Header string
	Body   string
}

// ParseSections splits a document on "## " headers. A "# " title line is
// structural noise and is skipped; all other lines accumulate into the
// current section body. Bodies are returned trimmed.
func ParseSections(text string) []Section {
	var sections []Section
	current := Section{}

	flush := func() {
		current.Body = strings.TrimSpace(current.Body)
		if current.Body != "" {
			sections = append(sections, current)
		}
	}

	for _, line := range strings.Split(text, "\n") {
		switch {
		case strings.HasPrefix(line, "## "):
			flush()
			current = Section{Header: strings.TrimSpace(line[3:])}
		case strings.HasPrefix(line, "# "):
			// Document title, not content.
		default:
			current.Body += line + "\n"
		}
	}
	flush()

	return sections
}

const (
	excerptLen = 200
	maxTags    = 5
)

// exportGroups fixes the section order of rendered documents.
var exportGroups = []string{"Semantic Knowledge", "Recent Conversations"}

// RenderExport produces the document form of the grouped records. Groups
// without records are omitted entirely.
func RenderExport(groups map[string][]models.SearchResult, minImportance float64, exportedAt time.Time) string {
	lines := []string{
		"# Memory Export",
		fmt.Sprintf("*Exported: %s*", exportedAt.UTC().Format(time.RFC3339)),
		fmt.Sprintf("*Min importance: %g*", minImportance),
		"",
	}

	for _, group := range exportGroups {
		records := groups[group]
		if len(records) == 0 {
			continue
		}
		lines = append(lines, "## "+group, "")
		for _, rec := range records {
			content := strings.TrimSpace(strings.ReplaceAll(rec.Content, "\n", " "))
			lines = append(lines, fmt.Sprintf("- **[%.1f]** %s", rec.Importance, excerpt(content, excerptLen)))
			if len(rec.Entities) > 0 {
				tags := rec.Entities
				if len(tags) > maxTags {
					tags = tags[:maxTags]
				}
				lines = append(lines, fmt.Sprintf("  - *Tags: %s*", strings.Join(tags, ", ")))
			}
		}
		lines = append(lines, "")
	}

	return strings.Join(lines, "\n")
}

func excerpt(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

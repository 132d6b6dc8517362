package vectordb

import (
	"fmt"
	"strings"
)

// FormatResults renders search results as human-readable text.
func FormatResults(results []SearchResult) string {
	if len(results) == 0 {
		return "No results found."
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d result(s):\n\n", len(results)))

	for i, r := range results {
		sb.WriteString(fmt.Sprintf("--- Result %d (distance: %.4f) ---\n", i+1, r.Distance))

		md := r.Document.Metadata
		if md.DocName != "" {
			sb.WriteString(fmt.Sprintf("Document: %s (chunk %d)\n", md.DocName, md.ChunkIndex))
		}
		if md.HierarchyPath != "" {
			sb.WriteString(fmt.Sprintf("Location: %s\n", md.HierarchyPath))
		}
		if md.Department != "" {
			sb.WriteString(fmt.Sprintf("Department: %s\n", md.Department))
		}
		if md.Strategy != "" {
			sb.WriteString(fmt.Sprintf("Strategy: %s\n", md.Strategy))
		}

		sb.WriteString("\n")
		sb.WriteString(r.Document.Content)
		sb.WriteString("\n\n")
	}

	return sb.String()
}

package segment

import (
	"fmt"
	"strings"

	"github.com/minhokang/docqa/internal/outline"
)

// BuildHierarchyPath renders the human-readable breadcrumb for a chunk's
// structural ancestry, e.g. "Chapter 3 급여 및 수당 > Article 15 (급여의 계산)".
// Either part is omitted when its number is absent. The function is pure:
// identical labels always produce byte-identical strings.
func BuildHierarchyPath(labels outline.Labels) string {
	var parts []string

	if labels.ChapterNumber != "" {
		if labels.ChapterTitle != "" {
			parts = append(parts, fmt.Sprintf("Chapter %s %s", labels.ChapterNumber, labels.ChapterTitle))
		} else {
			parts = append(parts, fmt.Sprintf("Chapter %s", labels.ChapterNumber))
		}
	}

	if labels.ArticleNumber != "" {
		if labels.ArticleTitle != "" {
			parts = append(parts, fmt.Sprintf("Article %s (%s)", labels.ArticleNumber, labels.ArticleTitle))
		} else {
			parts = append(parts, fmt.Sprintf("Article %s", labels.ArticleNumber))
		}
	}

	return strings.Join(parts, " > ")
}

// EnrichAt stamps the structural ancestry of the given text offset onto a
// chunk. It serves externally produced chunks (e.g. from a generic splitter)
// and resolves ancestry through the same Locator the segmenter uses, so the
// two paths cannot produce different hierarchy paths for the same position.
func EnrichAt(c *Chunk, loc *outline.Locator, offset int) {
	applyLabels(c, loc.At(offset))
}

// applyLabels copies structural identifiers and the derived hierarchy path
// onto a chunk.
func applyLabels(c *Chunk, labels outline.Labels) {
	c.ChapterNumber = labels.ChapterNumber
	c.ChapterTitle = labels.ChapterTitle
	c.ArticleNumber = labels.ArticleNumber
	c.ArticleTitle = labels.ArticleTitle
	c.HierarchyPath = BuildHierarchyPath(labels)
}

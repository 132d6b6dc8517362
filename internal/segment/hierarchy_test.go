package segment

import (
	"strings"
	"testing"

	"github.com/minhokang/docqa/internal/outline"
)

func TestBuildHierarchyPath(t *testing.T) {
	cases := []struct {
		labels outline.Labels
		want   string
	}{
		{
			outline.Labels{ChapterNumber: "3", ChapterTitle: "급여 및 수당", ArticleNumber: "15", ArticleTitle: "급여의 계산"},
			"Chapter 3 급여 및 수당 > Article 15 (급여의 계산)",
		},
		{
			outline.Labels{ChapterNumber: "1", ChapterTitle: "총칙"},
			"Chapter 1 총칙",
		},
		{
			outline.Labels{ArticleNumber: "7", ArticleTitle: "휴가"},
			"Article 7 (휴가)",
		},
		{
			outline.Labels{ChapterNumber: "2", ArticleNumber: "4"},
			"Chapter 2 > Article 4",
		},
		{outline.Labels{}, ""},
	}
	for _, c := range cases {
		if got := BuildHierarchyPath(c.labels); got != c.want {
			t.Errorf("BuildHierarchyPath(%+v) = %q, want %q", c.labels, got, c.want)
		}
	}
}

func TestBuildHierarchyPath_Idempotent(t *testing.T) {
	labels := outline.Labels{ChapterNumber: "3", ChapterTitle: "급여", ArticleNumber: "15", ArticleTitle: "계산"}
	if BuildHierarchyPath(labels) != BuildHierarchyPath(labels) {
		t.Error("identical labels produced different strings")
	}
}

// Chunks produced by the structure-first segmenter and chunks enriched
// retroactively by offset must agree on their ancestry, since both go
// through the same locator.
func TestEnrichAt_MatchesForwardSegmentation(t *testing.T) {
	sections := outline.Parse(twoArticleDoc)
	loc := outline.NewLocator(sections)

	s := mustSegmenter(t, Options{MaxSize: 500, MinSize: 50})
	forward := s.Segment(twoArticleDoc, sections, nil)
	if len(forward) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(forward))
	}

	for i, fc := range forward {
		// Find where this chunk's text starts in the source.
		offset := strings.Index(twoArticleDoc, fc.Text)
		if offset < 0 {
			t.Fatalf("chunk %d text not found in source", i)
		}

		var rc Chunk
		EnrichAt(&rc, loc, offset)

		if rc.HierarchyPath != fc.HierarchyPath {
			t.Errorf("chunk %d: retroactive path %q != forward path %q", i, rc.HierarchyPath, fc.HierarchyPath)
		}
		if rc.ChapterNumber != fc.ChapterNumber || rc.ArticleNumber != fc.ArticleNumber {
			t.Errorf("chunk %d: identifiers diverge between enrichment paths", i)
		}
	}
}

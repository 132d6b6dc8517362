package outline

import "sort"

// Labels is the structural ancestry of a position in the document text.
type Labels struct {
	ChapterNumber string
	ChapterTitle  string
	ArticleNumber string
	ArticleTitle  string
}

// boundary is one structural marker with the labels in effect from its start.
type boundary struct {
	start  int
	labels Labels
}

// Locator maps text offsets to their enclosing chapter and article. It is
// the single position-indexed lookup used both by ingestion-time
// segmentation and by retroactive enrichment of externally produced chunks,
// so the two resolution paths cannot diverge.
type Locator struct {
	boundaries []boundary
}

// NewLocator builds a Locator from a Parse result. Sections must be in
// document order, which Parse guarantees.
func NewLocator(sections []Section) *Locator {
	loc := &Locator{}
	var cur Labels
	for _, s := range sections {
		switch s.Kind {
		case KindChapter:
			cur.ChapterNumber = s.Number
			cur.ChapterTitle = s.Title
			// A new chapter closes the previous article.
			cur.ArticleNumber = ""
			cur.ArticleTitle = ""
		case KindArticle:
			cur.ArticleNumber = s.Number
			cur.ArticleTitle = s.Title
		default:
			continue
		}
		loc.boundaries = append(loc.boundaries, boundary{start: s.Start, labels: cur})
	}
	return loc
}

// At returns the labels of the nearest structural marker at or before the
// given offset. Offsets before the first marker have no ancestry.
func (l *Locator) At(offset int) Labels {
	i := sort.Search(len(l.boundaries), func(i int) bool {
		return l.boundaries[i].start > offset
	})
	if i == 0 {
		return Labels{}
	}
	return l.boundaries[i-1].labels
}

// Empty reports whether the locator holds no structural markers.
func (l *Locator) Empty() bool {
	return len(l.boundaries) == 0
}

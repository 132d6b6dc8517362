package outline

// Kind identifies the structural level of a recognized section.
type Kind string

const (
	KindChapter      Kind = "chapter"
	KindArticle      Kind = "article"
	KindParagraph    Kind = "paragraph"
	KindSubItem      Kind = "subparagraph"
)

// Section is a contiguous span of the source text recognized as one
// structural unit. Offsets are byte offsets into the text passed to Parse.
type Section struct {
	Kind   Kind
	Number string // ordinal label as written, normalized to a plain string
	Title  string // free-text caption, empty when absent

	// Back-references to the nearest enclosing units found scanning
	// backward. Empty when no enclosing unit exists.
	ChapterNumber string
	ChapterTitle  string
	ArticleNumber string
	ArticleTitle  string

	Start int
	End   int
	Text  string
}

// Articles returns only the article-level sections, in document order.
func Articles(sections []Section) []Section {
	var out []Section
	for _, s := range sections {
		if s.Kind == KindArticle {
			out = append(out, s)
		}
	}
	return out
}

// Structure summarizes the outline of a parsed document.
type Structure struct {
	TotalChapters int
	TotalArticles int
}

// Summarize counts the chapter and article sections in a parse result.
func Summarize(sections []Section) Structure {
	var st Structure
	for _, s := range sections {
		switch s.Kind {
		case KindChapter:
			st.TotalChapters++
		case KindArticle:
			st.TotalArticles++
		}
	}
	return st
}

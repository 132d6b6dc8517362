package outline

import (
	"regexp"
	"strings"
)

// Anchored patterns for the four structural levels, applied in priority
// order against the trimmed line. First match wins.
var (
	chapterPattern   = regexp.MustCompile(`^제\s*(\d+)\s*장\s*(.*)$`)
	articlePattern   = regexp.MustCompile(`^제\s*(\d+)\s*조\s*(?:\((.+?)\))?(.*)$`)
	paragraphPattern = regexp.MustCompile(`^([①②③④⑤⑥⑦⑧⑨⑩]|\d+\))\s*(.*)$`)
	subItemPattern   = regexp.MustCompile(`^([가나다라마바사아자차카타파하])\.\s+(.*)$`)
)

// circledDigits maps the enumerated paragraph glyphs to plain numerals.
var circledDigits = map[string]string{
	"①": "1", "②": "2", "③": "3", "④": "4", "⑤": "5",
	"⑥": "6", "⑦": "7", "⑧": "8", "⑨": "9", "⑩": "10",
}

// lineClass is the structural classification of a single line.
type lineClass int

const (
	lineContent lineClass = iota
	lineChapter
	lineArticle
	lineParagraph
	lineSubItem
)

// lineMatch is the result of classifying one trimmed line.
type lineMatch struct {
	class  lineClass
	number string
	title  string
}

// classify matches the trimmed line against the structural patterns in
// priority order. Lines matching nothing are plain content.
func classify(line string) lineMatch {
	if line == "" {
		return lineMatch{class: lineContent}
	}
	if m := chapterPattern.FindStringSubmatch(line); m != nil {
		return lineMatch{class: lineChapter, number: m[1], title: strings.TrimSpace(m[2])}
	}
	if m := articlePattern.FindStringSubmatch(line); m != nil {
		return lineMatch{class: lineArticle, number: m[1], title: strings.TrimSpace(m[2])}
	}
	if m := paragraphPattern.FindStringSubmatch(line); m != nil {
		return lineMatch{class: lineParagraph, number: NormalizeParagraphMarker(m[1])}
	}
	if m := subItemPattern.FindStringSubmatch(line); m != nil {
		return lineMatch{class: lineSubItem, number: m[1]}
	}
	return lineMatch{class: lineContent}
}

// NormalizeParagraphMarker converts an enumerated paragraph glyph to its
// plain numeric string. ASCII forms like "3)" lose the closing parenthesis.
func NormalizeParagraphMarker(marker string) string {
	if n, ok := circledDigits[marker]; ok {
		return n
	}
	return strings.TrimSuffix(marker, ")")
}

// IsParagraphStart reports whether the trimmed line opens a new paragraph
// (항) within an article.
func IsParagraphStart(line string) bool {
	return classify(strings.TrimSpace(line)).class == lineParagraph
}

// cursor is the accumulator threaded through the line scan. It carries the
// most recently recognized chapter and article; content lines never clear it.
type cursor struct {
	chapterNumber string
	chapterTitle  string
	articleNumber string
	articleTitle  string
}

// Parse scans the document text line by line and returns the recognized
// chapter and article sections in document order. Paragraph and sub-item
// markers are classified but do not open sections of their own. Malformed
// input never fails: unmatched lines are content, a document with no
// recognizable structure yields an empty slice.
func Parse(text string) []Section {
	var sections []Section
	cur := cursor{}

	position := 0
	for _, line := range strings.Split(text, "\n") {
		lineLen := len(line) + 1 // +1 for the newline
		trimmed := strings.TrimSpace(line)

		switch m := classify(trimmed); m.class {
		case lineChapter:
			cur.chapterNumber = m.number
			cur.chapterTitle = m.title
			end := position + lineLen
			if end > len(text) {
				end = len(text)
			}
			sections = append(sections, Section{
				Kind:          KindChapter,
				Number:        m.number,
				Title:         m.title,
				ChapterNumber: m.number,
				ChapterTitle:  m.title,
				Start:         position,
				End:           end,
				Text:          trimmed,
			})

		case lineArticle:
			cur.articleNumber = m.number
			cur.articleTitle = m.title
			sections = append(sections, Section{
				Kind:          KindArticle,
				Number:        m.number,
				Title:         m.title,
				ChapterNumber: cur.chapterNumber,
				ChapterTitle:  cur.chapterTitle,
				ArticleNumber: m.number,
				ArticleTitle:  m.title,
				Start:         position,
				End:           len(text), // resolved below
			})
		}

		position += lineLen
	}

	// Resolution pass: an article runs until the next article or chapter
	// starts, or to the end of the document.
	for i := range sections {
		if sections[i].Kind != KindArticle {
			continue
		}
		end := len(text)
		if i+1 < len(sections) {
			end = sections[i+1].Start
		}
		sections[i].End = end
		sections[i].Text = strings.TrimSpace(text[sections[i].Start:end])
	}

	return sections
}

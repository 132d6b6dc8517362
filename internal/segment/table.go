package segment

import (
	"strings"

	"github.com/minhokang/docqa/internal/outline"
)

// Table is one table record supplied by the upstream document parser:
// an optional summary line plus ordered rows of cells, header first.
type Table struct {
	Summary string
	Rows    [][]string
}

// FormatTable renders a table as pipe-separated text, one chunk's worth.
func FormatTable(t Table) string {
	var lines []string

	if t.Summary != "" {
		lines = append(lines, "["+t.Summary+"]", "")
	}

	if len(t.Rows) > 0 {
		header := strings.Join(t.Rows[0], " | ")
		lines = append(lines, header)
		lines = append(lines, strings.Repeat("-", len(header)))
		for _, row := range t.Rows[1:] {
			lines = append(lines, strings.Join(row, " | "))
		}
	}

	return strings.Join(lines, "\n")
}

// SegmentWithTables segments the text, then appends one chunk per table with
// indexes continuing after the text chunks. Table chunks never receive
// overlap and carry no hierarchy fields.
func (s *Segmenter) SegmentWithTables(text string, sections []outline.Section, tables []Table, docMeta map[string]string) []Chunk {
	chunks := s.Segment(text, sections, docMeta)
	for _, t := range tables {
		content := FormatTable(t)
		if content == "" {
			continue
		}
		chunks = append(chunks, Chunk{
			Text:     content,
			Index:    len(chunks),
			Size:     runeLen(content),
			Strategy: StrategyTable,
			DocMeta:  docMeta,
		})
	}
	return chunks
}

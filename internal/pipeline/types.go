package pipeline

import (
	"time"

	"github.com/minhokang/docqa/internal/segment"
)

// DocumentMeta is the caller-supplied metadata bag copied verbatim onto
// every chunk of a document.
type DocumentMeta struct {
	Name       string `json:"name"`
	Owner      string `json:"owner,omitempty"`
	Department string `json:"department,omitempty"`
	Project    string `json:"project,omitempty"`
	Category   string `json:"category,omitempty"`
}

// IngestRequest carries one document into the ingestion pipeline. Text is
// the UTF-8 blob produced by the upstream document parser; Tables is its
// optional table extraction.
type IngestRequest struct {
	Text   string
	Tables []segment.Table
	Meta   DocumentMeta
}

// IngestResult summarizes one ingested document.
type IngestResult struct {
	DocID         string `json:"doc_id"`
	DocName       string `json:"doc_name"`
	Chunks        int    `json:"chunks"`
	TotalChapters int    `json:"total_chapters"`
	TotalArticles int    `json:"total_articles"`
	Strategy      string `json:"strategy"`
}

// Source identifies one piece of evidence behind an answer.
type Source struct {
	Index         int     `json:"index"`
	DocName       string  `json:"doc_name"`
	ChunkIndex    int     `json:"chunk_index"`
	HierarchyPath string  `json:"hierarchy_path,omitempty"`
	ChapterNumber string  `json:"chapter_number,omitempty"`
	ArticleNumber string  `json:"article_number,omitempty"`
	Score         float64 `json:"score"`
	Preview       string  `json:"preview"`
}

// Answer is the result of one query: the generated answer plus its ranked
// evidence.
type Answer struct {
	Question string        `json:"question"`
	Answer   string        `json:"answer"`
	Sources  []Source      `json:"sources"`
	Elapsed  time.Duration `json:"-"`
}

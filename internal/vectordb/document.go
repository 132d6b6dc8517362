package vectordb

import (
	"strconv"
	"strings"
	"time"
)

// Document is one chunk as stored in the vector index.
type Document struct {
	ID        string
	Content   string
	Embedding []float32
	Metadata  Metadata
}

// Metadata holds the structural and document-level identifiers attached to
// a stored chunk. String fields are empty when not applicable.
type Metadata struct {
	DocID   string
	DocName string

	Owner      string
	Department string
	Project    string
	Category   string

	ChunkIndex int
	ChunkSize  int
	Strategy   string

	HierarchyPath  string
	ChapterNumber  string
	ChapterTitle   string
	ArticleNumber  string
	ArticleTitle   string
	MergedArticles []string

	UploadedAt time.Time
}

// SearchResult pairs a stored document with its distance from the query
// vector. Lower distance means more similar.
type SearchResult struct {
	Document Document
	Distance float64
}

// Filter narrows a search by metadata equality. Populated fields combine as
// a conjunction; an empty field means no constraint on it.
type Filter struct {
	Department    string
	Project       string
	Category      string
	ChapterNumber string
	ArticleNumber string
}

// And merges two filters into their conjunction. When both set the same
// field the receiver's value wins.
func (f Filter) And(other Filter) Filter {
	merged := f
	if merged.Department == "" {
		merged.Department = other.Department
	}
	if merged.Project == "" {
		merged.Project = other.Project
	}
	if merged.Category == "" {
		merged.Category = other.Category
	}
	if merged.ChapterNumber == "" {
		merged.ChapterNumber = other.ChapterNumber
	}
	if merged.ArticleNumber == "" {
		merged.ArticleNumber = other.ArticleNumber
	}
	return merged
}

// metadataToMap flattens Metadata for chromem storage.
func metadataToMap(m Metadata) map[string]string {
	return map[string]string{
		"doc_id":          m.DocID,
		"doc_name":        m.DocName,
		"owner":           m.Owner,
		"department":      m.Department,
		"project":         m.Project,
		"category":        m.Category,
		"chunk_index":     strconv.Itoa(m.ChunkIndex),
		"chunk_size":      strconv.Itoa(m.ChunkSize),
		"strategy":        m.Strategy,
		"hierarchy_path":  m.HierarchyPath,
		"chapter_number":  m.ChapterNumber,
		"chapter_title":   m.ChapterTitle,
		"article_number":  m.ArticleNumber,
		"article_title":   m.ArticleTitle,
		"merged_articles": strings.Join(m.MergedArticles, ","),
		"uploaded_at":     m.UploadedAt.Format(time.RFC3339),
	}
}

// mapToMetadata restores Metadata from the flat chromem representation.
func mapToMetadata(m map[string]string) Metadata {
	chunkIndex, _ := strconv.Atoi(m["chunk_index"])
	chunkSize, _ := strconv.Atoi(m["chunk_size"])
	uploadedAt, _ := time.Parse(time.RFC3339, m["uploaded_at"])

	var merged []string
	if m["merged_articles"] != "" {
		merged = strings.Split(m["merged_articles"], ",")
	}

	return Metadata{
		DocID:          m["doc_id"],
		DocName:        m["doc_name"],
		Owner:          m["owner"],
		Department:     m["department"],
		Project:        m["project"],
		Category:       m["category"],
		ChunkIndex:     chunkIndex,
		ChunkSize:      chunkSize,
		Strategy:       m["strategy"],
		HierarchyPath:  m["hierarchy_path"],
		ChapterNumber:  m["chapter_number"],
		ChapterTitle:   m["chapter_title"],
		ArticleNumber:  m["article_number"],
		ArticleTitle:   m["article_title"],
		MergedArticles: merged,
		UploadedAt:     uploadedAt,
	}
}

// buildWhereClause converts a Filter to a chromem where clause. Every entry
// in the returned map is an equality constraint; chromem applies them
// conjunctively before the top-k cut.
func buildWhereClause(filter *Filter) map[string]string {
	if filter == nil {
		return nil
	}

	where := make(map[string]string)
	if filter.Department != "" {
		where["department"] = filter.Department
	}
	if filter.Project != "" {
		where["project"] = filter.Project
	}
	if filter.Category != "" {
		where["category"] = filter.Category
	}
	if filter.ChapterNumber != "" {
		where["chapter_number"] = filter.ChapterNumber
	}
	if filter.ArticleNumber != "" {
		where["article_number"] = filter.ArticleNumber
	}

	if len(where) == 0 {
		return nil
	}
	return where
}

package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/minhokang/docqa/internal/catalog"
	"github.com/minhokang/docqa/internal/embeddings"
	"github.com/minhokang/docqa/internal/outline"
	"github.com/minhokang/docqa/internal/segment"
	"github.com/minhokang/docqa/internal/vectordb"
)

// Ingestor runs the full ingestion pipeline for a document: outline
// parsing, structure-aware segmentation, embedding, vector indexing, and
// catalog registration.
type Ingestor struct {
	segmenter *segment.Segmenter
	embedder  embeddings.Embedder
	store     vectordb.VectorStore
	catalog   *catalog.Store
}

// NewIngestor wires an ingestion pipeline. The catalog may be nil when no
// document registry is wanted (e.g. one-off CLI runs against an in-memory
// store).
func NewIngestor(seg *segment.Segmenter, emb embeddings.Embedder, store vectordb.VectorStore, cat *catalog.Store) *Ingestor {
	return &Ingestor{segmenter: seg, embedder: emb, store: store, catalog: cat}
}

// Ingest processes one document end to end and returns a summary of what
// was indexed.
func (in *Ingestor) Ingest(ctx context.Context, req IngestRequest) (*IngestResult, error) {
	if req.Text == "" {
		return nil, fmt.Errorf("ingest %q: empty document text", req.Meta.Name)
	}

	sections := outline.Parse(req.Text)
	structure := outline.Summarize(sections)

	docMeta := map[string]string{
		"doc_name":   req.Meta.Name,
		"owner":      req.Meta.Owner,
		"department": req.Meta.Department,
		"project":    req.Meta.Project,
		"category":   req.Meta.Category,
	}
	chunks := in.segmenter.SegmentWithTables(req.Text, sections, req.Tables, docMeta)
	if len(chunks) == 0 {
		return nil, fmt.Errorf("ingest %q: segmentation produced no chunks", req.Meta.Name)
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}
	vectors, err := in.embedder.Embed(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("ingest %q: embed chunks: %w", req.Meta.Name, err)
	}
	if len(vectors) != len(chunks) {
		return nil, fmt.Errorf("ingest %q: embedder returned %d vectors for %d chunks", req.Meta.Name, len(vectors), len(chunks))
	}

	docID := uuid.NewString()
	now := time.Now()
	docs := make([]vectordb.Document, len(chunks))
	for i, c := range chunks {
		docs[i] = vectordb.Document{
			ID:        fmt.Sprintf("%s:%d", docID, c.Index),
			Content:   c.Text,
			Embedding: vectors[i],
			Metadata: vectordb.Metadata{
				DocID:          docID,
				DocName:        req.Meta.Name,
				Owner:          req.Meta.Owner,
				Department:     req.Meta.Department,
				Project:        req.Meta.Project,
				Category:       req.Meta.Category,
				ChunkIndex:     c.Index,
				ChunkSize:      c.Size,
				Strategy:       string(c.Strategy),
				HierarchyPath:  c.HierarchyPath,
				ChapterNumber:  c.ChapterNumber,
				ChapterTitle:   c.ChapterTitle,
				ArticleNumber:  c.ArticleNumber,
				ArticleTitle:   c.ArticleTitle,
				MergedArticles: c.MergedArticles,
				UploadedAt:     now,
			},
		}
	}
	if err := in.store.AddDocuments(ctx, docs); err != nil {
		return nil, fmt.Errorf("ingest %q: index chunks: %w", req.Meta.Name, err)
	}

	strategy := "structure"
	if structure.TotalArticles == 0 {
		strategy = "general"
	}
	if in.catalog != nil {
		_, err := in.catalog.Insert(ctx, catalog.Document{
			ID:            docID,
			Name:          req.Meta.Name,
			Owner:         req.Meta.Owner,
			Department:    req.Meta.Department,
			Project:       req.Meta.Project,
			Category:      req.Meta.Category,
			ChunkCount:    len(chunks),
			TotalChapters: structure.TotalChapters,
			TotalArticles: structure.TotalArticles,
			Strategy:      strategy,
			UploadedAt:    now,
		})
		if err != nil {
			return nil, fmt.Errorf("ingest %q: register document: %w", req.Meta.Name, err)
		}
	}

	return &IngestResult{
		DocID:         docID,
		DocName:       req.Meta.Name,
		Chunks:        len(chunks),
		TotalChapters: structure.TotalChapters,
		TotalArticles: structure.TotalArticles,
		Strategy:      strategy,
	}, nil
}

// Package catalog tracks the documents that have been ingested into the
// vector index, plus a log of answered queries.
package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/minhokang/docqa/internal/db"
)

// ErrNotFound is returned when a document id is not in the catalog.
var ErrNotFound = errors.New("document not found")

// Document is one catalog record for an ingested document.
type Document struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Owner         string    `json:"owner,omitempty"`
	Department    string    `json:"department,omitempty"`
	Project       string    `json:"project,omitempty"`
	Category      string    `json:"category,omitempty"`
	ChunkCount    int       `json:"chunk_count"`
	TotalChapters int       `json:"total_chapters"`
	TotalArticles int       `json:"total_articles"`
	Strategy      string    `json:"strategy"`
	UploadedAt    time.Time `json:"uploaded_at"`
}

// QueryRecord is one logged question/answer exchange.
type QueryRecord struct {
	ID          string    `json:"id"`
	Question    string    `json:"question"`
	Answer      string    `json:"answer"`
	SourceCount int       `json:"source_count"`
	DurationMS  int64     `json:"duration_ms"`
	AskedAt     time.Time `json:"asked_at"`
}

// Store provides CRUD operations over the catalog tables.
type Store struct {
	db *db.DB
}

// NewStore creates a Store backed by the given database.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Insert records an ingested document. If doc.ID is empty a UUID is generated.
// The stored record (with id and upload time filled in) is returned.
func (s *Store) Insert(ctx context.Context, doc Document) (Document, error) {
	if doc.ID == "" {
		doc.ID = uuid.New().String()
	}
	if doc.UploadedAt.IsZero() {
		doc.UploadedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO documents (
			id, name, owner, department, project, category,
			chunk_count, total_chapters, total_articles, strategy, uploaded_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		doc.ID,
		doc.Name,
		doc.Owner,
		doc.Department,
		doc.Project,
		doc.Category,
		doc.ChunkCount,
		doc.TotalChapters,
		doc.TotalArticles,
		doc.Strategy,
		doc.UploadedAt.Format(time.RFC3339),
	)
	if err != nil {
		return Document{}, fmt.Errorf("inserting document: %w", err)
	}
	return doc, nil
}

// GetByID retrieves a single document record.
func (s *Store) GetByID(ctx context.Context, id string) (*Document, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, owner, department, project, category,
		       chunk_count, total_chapters, total_articles, strategy, uploaded_at
		FROM documents WHERE id = ?`, id)
	return scanDocument(row)
}

// List returns all documents, most recently uploaded first.
func (s *Store) List(ctx context.Context) ([]Document, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, owner, department, project, category,
		       chunk_count, total_chapters, total_articles, strategy, uploaded_at
		FROM documents ORDER BY uploaded_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, *doc)
	}
	return docs, rows.Err()
}

// Delete removes a document record. Returns ErrNotFound when the id is
// unknown.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// LogQuery appends one question/answer exchange to the query log.
func (s *Store) LogQuery(ctx context.Context, rec QueryRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.AskedAt.IsZero() {
		rec.AskedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO query_log (id, question, answer, source_count, duration_ms, asked_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		rec.ID,
		rec.Question,
		rec.Answer,
		rec.SourceCount,
		rec.DurationMS,
		rec.AskedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("logging query: %w", err)
	}
	return nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanDocument(row scanner) (*Document, error) {
	var doc Document
	var uploadedAt string
	err := row.Scan(
		&doc.ID,
		&doc.Name,
		&doc.Owner,
		&doc.Department,
		&doc.Project,
		&doc.Category,
		&doc.ChunkCount,
		&doc.TotalChapters,
		&doc.TotalArticles,
		&doc.Strategy,
		&uploadedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning document: %w", err)
	}
	if t, err := time.Parse(time.RFC3339, uploadedAt); err == nil {
		doc.UploadedAt = t
	}
	return &doc, nil
}

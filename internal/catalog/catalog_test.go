package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/minhokang/docqa/internal/db"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("db.OpenMemory: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return NewStore(database)
}

func TestInsertAndGet(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	inserted, err := store.Insert(ctx, Document{
		Name:          "인사규정",
		Owner:         "김과장",
		Department:    "인사팀",
		Category:      "규정",
		ChunkCount:    12,
		TotalChapters: 3,
		TotalArticles: 24,
		Strategy:      "structure",
	})
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if inserted.ID == "" {
		t.Fatal("Insert did not assign an id")
	}
	if inserted.UploadedAt.IsZero() {
		t.Fatal("Insert did not assign an upload time")
	}

	got, err := store.GetByID(ctx, inserted.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Name != "인사규정" || got.Department != "인사팀" {
		t.Errorf("record = %+v", got)
	}
	if got.ChunkCount != 12 || got.TotalArticles != 24 {
		t.Errorf("counts = %d chunks, %d articles", got.ChunkCount, got.TotalArticles)
	}
}

func TestGetByID_Unknown(t *testing.T) {
	store := newTestStore(t)
	_, err := store.GetByID(context.Background(), "no-such-id")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestList_OrdersByUploadTime(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	older := time.Now().UTC().Add(-time.Hour)
	newer := time.Now().UTC()

	if _, err := store.Insert(ctx, Document{Name: "이전 규정", UploadedAt: older}); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if _, err := store.Insert(ctx, Document{Name: "최신 규정", UploadedAt: newer}); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	docs, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("listed %d documents, want 2", len(docs))
	}
	if docs[0].Name != "최신 규정" {
		t.Errorf("first listed = %q, want the newest", docs[0].Name)
	}
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	doc, err := store.Insert(ctx, Document{Name: "임시 문서"})
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}

	if err := store.Delete(ctx, doc.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.GetByID(ctx, doc.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("document still present after delete: %v", err)
	}

	if err := store.Delete(ctx, doc.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete err = %v, want ErrNotFound", err)
	}
}

func TestLogQuery(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	err := store.LogQuery(ctx, QueryRecord{
		Question:    "연차는 며칠인가요?",
		Answer:      "연차는 15일입니다.",
		SourceCount: 3,
		DurationMS:  420,
	})
	if err != nil {
		t.Fatalf("LogQuery: %v", err)
	}

	var count int
	if err := store.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM query_log`).Scan(&count); err != nil {
		t.Fatalf("counting query_log: %v", err)
	}
	if count != 1 {
		t.Errorf("query_log rows = %d, want 1", count)
	}
}

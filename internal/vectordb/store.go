package vectordb

import "context"

// VectorStore defines the interface for storing and searching chunks by
// embedding vector.
type VectorStore interface {
	// AddDocuments adds or updates documents in the store. Each document
	// must carry a precomputed embedding.
	AddDocuments(ctx context.Context, docs []Document) error

	// SearchVector returns up to topK documents ordered by ascending
	// distance from the query vector. filter, when non-nil, is pushed down
	// so that filtering happens before the top-k cut. An empty store
	// returns an empty result, never an error.
	SearchVector(ctx context.Context, queryVector []float32, topK int, filter *Filter) ([]SearchResult, error)

	// DeleteByDocID removes every chunk belonging to the given document.
	DeleteByDocID(ctx context.Context, docID string) error

	// Persist saves the store's data under the given directory.
	Persist(ctx context.Context, dir string) error

	// Load restores the store's data from the given directory.
	Load(ctx context.Context, dir string) error

	// Count returns the total number of chunks in the store.
	Count() int
}

package pipeline

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/minhokang/docqa/internal/llm"
	"github.com/minhokang/docqa/internal/vectordb"
)

// --- Mock Embedder ---

type mockEmbedder struct {
	calls atomic.Int64
	err   error
}

func (m *mockEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	m.calls.Add(1)
	if m.err != nil {
		return nil, m.err
	}
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{1, 0, 0}
	}
	return out, nil
}

func (m *mockEmbedder) Dimensions() int { return 3 }
func (m *mockEmbedder) Name() string    { return "mock" }

// --- Mock Vector Store ---

type mockStore struct {
	docs       []vectordb.Document
	results    []vectordb.SearchResult
	lastTopK   int
	lastFilter *vectordb.Filter
}

func (m *mockStore) AddDocuments(_ context.Context, docs []vectordb.Document) error {
	m.docs = append(m.docs, docs...)
	return nil
}

func (m *mockStore) SearchVector(_ context.Context, _ []float32, topK int, filter *vectordb.Filter) ([]vectordb.SearchResult, error) {
	m.lastTopK = topK
	m.lastFilter = filter
	if topK > len(m.results) {
		return m.results, nil
	}
	return m.results[:topK], nil
}

func (m *mockStore) DeleteByDocID(_ context.Context, docID string) error {
	var remaining []vectordb.Document
	for _, d := range m.docs {
		if d.Metadata.DocID != docID {
			remaining = append(remaining, d)
		}
	}
	m.docs = remaining
	return nil
}

func (m *mockStore) Persist(_ context.Context, _ string) error { return nil }
func (m *mockStore) Load(_ context.Context, _ string) error    { return nil }
func (m *mockStore) Count() int                                { return len(m.docs) }

// --- Mock LLM Provider ---

type mockProvider struct {
	response   string
	err        error
	lastPrompt string
}

func (m *mockProvider) Complete(_ context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, msg := range req.Messages {
		if msg.Role == llm.RoleUser {
			m.lastPrompt = msg.Content
		}
	}
	return &llm.CompletionResponse{Content: m.response, Model: req.Model}, nil
}

func (m *mockProvider) Name() string { return "mock" }

// --- Mock Rerank Scorer ---

type mockScorer struct {
	scores map[string]float64
	err    error
}

func (m *mockScorer) ScoreBatch(_ context.Context, _ string, texts []string) ([]float64, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]float64, len(texts))
	for i, t := range texts {
		out[i] = m.scores[t]
	}
	return out, nil
}

func (m *mockScorer) ModelName() string { return "mock-reranker" }

func searchResult(id, content string, distance float64) vectordb.SearchResult {
	return vectordb.SearchResult{
		Document: vectordb.Document{
			ID:      id,
			Content: content,
			Metadata: vectordb.Metadata{
				DocID:   "doc-1",
				DocName: "인사규정",
			},
		},
		Distance: distance,
	}
}

func nResults(n int) []vectordb.SearchResult {
	out := make([]vectordb.SearchResult, n)
	for i := range out {
		out[i] = searchResult(fmt.Sprintf("doc-1:%d", i), fmt.Sprintf("chunk-%d", i), float64(i)*0.1)
	}
	return out
}

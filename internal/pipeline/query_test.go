package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/minhokang/docqa/internal/rerank"
)

func TestAnswer_NoCandidates(t *testing.T) {
	store := &mockStore{} // empty search results
	provider := &mockProvider{response: "should never be called"}
	orch := NewOrchestrator(&mockEmbedder{}, store, nil, provider, nil, OrchestratorConfig{})

	ans, err := orch.Answer(context.Background(), "연차는 며칠인가요?", QueryOptions{})
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if ans.Answer != "관련 문서를 찾을 수 없습니다. 다른 질문을 시도해보세요." {
		t.Errorf("answer = %q", ans.Answer)
	}
	if len(ans.Sources) != 0 {
		t.Errorf("expected no sources, got %d", len(ans.Sources))
	}
	if provider.lastPrompt != "" {
		t.Error("generation must not run without candidates")
	}
}

func TestAnswer_GeneratesWithSources(t *testing.T) {
	store := &mockStore{results: nResults(3)}
	provider := &mockProvider{response: "연차는 15일입니다. (제7조)"}
	orch := NewOrchestrator(&mockEmbedder{}, store, nil, provider, nil, OrchestratorConfig{TopK: 3})

	ans, err := orch.Answer(context.Background(), "연차는 며칠인가요?", QueryOptions{})
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if ans.Answer != "연차는 15일입니다. (제7조)" {
		t.Errorf("answer = %q", ans.Answer)
	}
	if len(ans.Sources) != 3 {
		t.Fatalf("sources = %d, want 3", len(ans.Sources))
	}
	if ans.Sources[0].Index != 1 || ans.Sources[0].DocName != "인사규정" {
		t.Errorf("source 0 = %+v", ans.Sources[0])
	}

	// The prompt embeds the evidence and the question.
	if !strings.Contains(provider.lastPrompt, "[문서 1: 인사규정]") {
		t.Errorf("prompt missing evidence header:\n%s", provider.lastPrompt)
	}
	if !strings.Contains(provider.lastPrompt, "chunk-0") {
		t.Error("prompt missing chunk text")
	}
	if !strings.Contains(provider.lastPrompt, "연차는 며칠인가요?") {
		t.Error("prompt missing the question")
	}
}

func TestAnswer_GenerationFailureDegrades(t *testing.T) {
	store := &mockStore{results: nResults(2)}
	provider := &mockProvider{err: errors.New("api timeout")}
	orch := NewOrchestrator(&mockEmbedder{}, store, nil, provider, nil, OrchestratorConfig{TopK: 2})

	ans, err := orch.Answer(context.Background(), "질문", QueryOptions{})
	if err != nil {
		t.Fatalf("a generation failure must not surface as an error: %v", err)
	}
	if !strings.Contains(ans.Answer, "답변 생성 중 오류가 발생했습니다") {
		t.Errorf("answer = %q", ans.Answer)
	}
	if !strings.Contains(ans.Answer, "api timeout") {
		t.Errorf("answer does not embed the failure reason: %q", ans.Answer)
	}
	// The retrieved evidence survives the failed generation.
	if len(ans.Sources) != 2 {
		t.Errorf("sources = %d, want 2", len(ans.Sources))
	}
}

func TestRetrieve_WithoutRerankerUsesTopK(t *testing.T) {
	store := &mockStore{results: nResults(10)}
	orch := NewOrchestrator(&mockEmbedder{}, store, nil, &mockProvider{}, nil,
		OrchestratorConfig{TopK: 5, RerankTopK: 10})

	cands, err := orch.Retrieve(context.Background(), "질문", QueryOptions{})
	if err != nil {
		t.Fatalf("Retrieve: %v", err)
	}
	if store.lastTopK != 5 {
		t.Errorf("fetched %d candidates, want 5", store.lastTopK)
	}
	if len(cands) != 5 {
		t.Errorf("got %d candidates, want 5", len(cands))
	}
	// Ordering passes through from the vector search unchanged.
	for i, c := range cands {
		if c.Score.HigherIsBetter {
			t.Errorf("candidate %d score should keep the distance convention", i)
		}
		if i > 0 && cands[i].Score.Value < cands[i-1].Score.Value {
			t.Errorf("candidate order changed without a reranker")
		}
	}
}

func TestRetrieve_RerankerOverfetchesAndTruncates(t *testing.T) {
	store := &mockStore{results: nResults(10)}
	scores := map[string]float64{}
	for i := 0; i < 10; i++ {
		// Reverse the vector-search order so the rerank is observable.
		scores["chunk-"+string(rune('0'+i))] = float64(i)
	}
	rr := rerank.New(&mockScorer{scores: scores})
	orch := NewOrchestrator(&mockEmbedder{}, store, rr, &mockProvider{}, nil,
		OrchestratorConfig{TopK: 5, RerankTopK: 10, FinalTopK: 3})

	cands, err := orch.Retrieve(context.Background(), "질문", QueryOptions{})
	if err != nil {
		t.Fatalf("Retrieve: %v", err)
	}
	// The first stage fetches the wider rerank pool, not the answer count.
	if store.lastTopK != 10 {
		t.Errorf("fetched %d candidates, want 10", store.lastTopK)
	}
	if len(cands) != 3 {
		t.Fatalf("got %d candidates, want final 3", len(cands))
	}
	if cands[0].Chunk.Content != "chunk-9" {
		t.Errorf("top candidate = %q, want the rerank winner chunk-9", cands[0].Chunk.Content)
	}
	for i, c := range cands {
		if !c.Score.HigherIsBetter {
			t.Errorf("candidate %d kept a distance score after reranking", i)
		}
	}
}

func TestRetrieve_NegativeRerankScoresSurvive(t *testing.T) {
	// Cross-encoder logits are often negative for every candidate; with no
	// threshold configured the full rerank cut must still come back.
	store := &mockStore{results: nResults(4)}
	scores := map[string]float64{
		"chunk-0": -1.5,
		"chunk-1": -2.5,
		"chunk-2": -3.5,
		"chunk-3": -4.5,
	}
	rr := rerank.New(&mockScorer{scores: scores})
	orch := NewOrchestrator(&mockEmbedder{}, store, rr, &mockProvider{}, nil,
		OrchestratorConfig{TopK: 4, RerankTopK: 4, FinalTopK: 3, Threshold: 0})

	cands, err := orch.Retrieve(context.Background(), "질문", QueryOptions{})
	if err != nil {
		t.Fatalf("Retrieve: %v", err)
	}
	if len(cands) != 3 {
		t.Fatalf("got %d candidates, want 3", len(cands))
	}
	if cands[0].Chunk.Content != "chunk-0" || cands[0].Score.Value != -1.5 {
		t.Errorf("top candidate = %q score %v", cands[0].Chunk.Content, cands[0].Score.Value)
	}
}

func TestRetrieve_ConfiguredThresholdFilters(t *testing.T) {
	store := &mockStore{results: nResults(4)}
	scores := map[string]float64{
		"chunk-0": 0.9,
		"chunk-1": 0.6,
		"chunk-2": 0.2,
		"chunk-3": 0.1,
	}
	rr := rerank.New(&mockScorer{scores: scores})
	orch := NewOrchestrator(&mockEmbedder{}, store, rr, &mockProvider{}, nil,
		OrchestratorConfig{TopK: 4, RerankTopK: 4, FinalTopK: 3, Threshold: 0.5})

	cands, err := orch.Retrieve(context.Background(), "질문", QueryOptions{})
	if err != nil {
		t.Fatalf("Retrieve: %v", err)
	}
	if len(cands) != 2 {
		t.Fatalf("got %d candidates, want the 2 above the threshold", len(cands))
	}
	if cands[0].Chunk.Content != "chunk-0" || cands[1].Chunk.Content != "chunk-1" {
		t.Errorf("candidates = %q, %q", cands[0].Chunk.Content, cands[1].Chunk.Content)
	}
}

func TestRetrieve_CallerTopKSetsFinalCut(t *testing.T) {
	store := &mockStore{results: nResults(10)}
	scores := map[string]float64{}
	for i := 0; i < 10; i++ {
		scores["chunk-"+string(rune('0'+i))] = float64(i)
	}
	rr := rerank.New(&mockScorer{scores: scores})
	orch := NewOrchestrator(&mockEmbedder{}, store, rr, &mockProvider{}, nil,
		OrchestratorConfig{TopK: 5, RerankTopK: 10, FinalTopK: 3})

	cands, err := orch.Retrieve(context.Background(), "질문", QueryOptions{TopK: 2})
	if err != nil {
		t.Fatalf("Retrieve: %v", err)
	}
	// The over-fetch pool stays wide; the caller's TopK sets the final count.
	if store.lastTopK != 10 {
		t.Errorf("fetched %d candidates, want 10", store.lastTopK)
	}
	if len(cands) != 2 {
		t.Fatalf("got %d candidates, want the caller's 2", len(cands))
	}
	if cands[0].Chunk.Content != "chunk-9" {
		t.Errorf("top candidate = %q, want chunk-9", cands[0].Chunk.Content)
	}
}

func TestRetrieve_RerankFailurePropagates(t *testing.T) {
	store := &mockStore{results: nResults(5)}
	rr := rerank.New(&mockScorer{err: errors.New("rerank server down")})
	orch := NewOrchestrator(&mockEmbedder{}, store, rr, &mockProvider{}, nil,
		OrchestratorConfig{TopK: 5, RerankTopK: 10, FinalTopK: 3})

	if _, err := orch.Retrieve(context.Background(), "질문", QueryOptions{}); err == nil {
		t.Fatal("a rerank failure must propagate, not silently fall back")
	}
}

func TestRetrieve_EmbedFailure(t *testing.T) {
	orch := NewOrchestrator(&mockEmbedder{err: errors.New("embed down")}, &mockStore{}, nil, &mockProvider{}, nil, OrchestratorConfig{})
	if _, err := orch.Retrieve(context.Background(), "질문", QueryOptions{}); err == nil {
		t.Fatal("expected embed failure to propagate")
	}
}

func TestRetrieve_EmptyQuestion(t *testing.T) {
	orch := NewOrchestrator(&mockEmbedder{}, &mockStore{}, nil, &mockProvider{}, nil, OrchestratorConfig{})
	if _, err := orch.Retrieve(context.Background(), "", QueryOptions{}); err == nil {
		t.Fatal("expected an error for an empty question")
	}
}

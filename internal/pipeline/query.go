package pipeline

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/minhokang/docqa/internal/catalog"
	"github.com/minhokang/docqa/internal/embeddings"
	"github.com/minhokang/docqa/internal/llm"
	"github.com/minhokang/docqa/internal/rerank"
	"github.com/minhokang/docqa/internal/vectordb"
)

const previewRunes = 120

// QueryOptions tunes one query run. Zero values fall back to the
// orchestrator's configured defaults.
type QueryOptions struct {
	TopK   int
	Filter *vectordb.Filter
}

// OrchestratorConfig carries the retrieval and generation knobs for an
// Orchestrator.
type OrchestratorConfig struct {
	Model       string
	TopK        int     // first-pass candidates when reranking is off
	RerankTopK  int     // first-pass over-fetch when reranking is on
	FinalTopK   int     // candidates surviving the rerank cut
	Threshold   float64 // minimum rerank relevance, 0 keeps everything
	MaxTokens   int
	Temperature float64
}

// Orchestrator drives one question through embed, retrieve, optional
// rerank, evidence assembly and generation. The reranker may be nil, which
// keeps the single-stage distance ranking.
type Orchestrator struct {
	embedder embeddings.Embedder
	store    vectordb.VectorStore
	reranker *rerank.Reranker
	provider llm.Provider
	catalog  *catalog.Store
	cfg      OrchestratorConfig
}

// NewOrchestrator wires a query pipeline. catalog may be nil when query
// logging is not wanted.
func NewOrchestrator(emb embeddings.Embedder, store vectordb.VectorStore, rr *rerank.Reranker, provider llm.Provider, cat *catalog.Store, cfg OrchestratorConfig) *Orchestrator {
	if cfg.TopK <= 0 {
		cfg.TopK = 5
	}
	if cfg.RerankTopK <= 0 {
		cfg.RerankTopK = 10
	}
	if cfg.FinalTopK <= 0 {
		cfg.FinalTopK = 3
	}
	return &Orchestrator{embedder: emb, store: store, reranker: rr, provider: provider, catalog: cat, cfg: cfg}
}

// Retrieve runs the retrieval stages only: vector search plus the optional
// rerank cut. Used by search-style callers that want evidence without
// generation.
func (o *Orchestrator) Retrieve(ctx context.Context, question string, opts QueryOptions) ([]rerank.Candidate, error) {
	if question == "" {
		return nil, fmt.Errorf("empty question")
	}

	vecs, err := o.embedder.Embed(ctx, []string{question})
	if err != nil {
		return nil, fmt.Errorf("embed question: %w", err)
	}

	// Over-fetch when a second stage will re-score, so the reranker sees a
	// wider pool than the final answer uses. A caller-supplied TopK sets the
	// final result count in both modes.
	fetch := o.cfg.TopK
	final := o.cfg.FinalTopK
	if opts.TopK > 0 {
		fetch = opts.TopK
		final = opts.TopK
	}
	if o.reranker != nil && fetch < o.cfg.RerankTopK {
		fetch = o.cfg.RerankTopK
	}

	results, err := o.store.SearchVector(ctx, vecs[0], fetch, opts.Filter)
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}
	candidates := rerank.FromSearchResults(results)
	if len(candidates) == 0 {
		return nil, nil
	}

	if o.reranker == nil {
		return candidates, nil
	}
	// Cross-encoder logits are routinely negative, so the threshold cut only
	// applies when one is configured; a zero threshold keeps everything.
	if o.cfg.Threshold != 0 {
		return o.reranker.RerankWithThreshold(ctx, question, candidates, o.cfg.Threshold, final)
	}
	return o.reranker.Rerank(ctx, question, candidates, final)
}

// Answer runs the full question-answering pipeline and returns the
// generated answer with its sources. Retrieval and rerank failures are
// returned as errors; a generation failure after successful retrieval
// degrades into an Answer carrying the failure message and the retrieved
// sources, so the evidence is not lost with the answer.
func (o *Orchestrator) Answer(ctx context.Context, question string, opts QueryOptions) (*Answer, error) {
	start := time.Now()

	candidates, err := o.Retrieve(ctx, question, opts)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		ans := &Answer{Question: question, Answer: noAnswerMessage, Elapsed: time.Since(start)}
		o.logQuery(ctx, ans)
		return ans, nil
	}

	sources := make([]Source, len(candidates))
	texts := make([]string, len(candidates))
	for i, c := range candidates {
		m := c.Chunk.Metadata
		sources[i] = Source{
			Index:         i + 1,
			DocName:       m.DocName,
			ChunkIndex:    m.ChunkIndex,
			HierarchyPath: m.HierarchyPath,
			ChapterNumber: m.ChapterNumber,
			ArticleNumber: m.ArticleNumber,
			Score:         c.Score.Value,
			Preview:       truncateRunes(c.Chunk.Content, previewRunes),
		}
		texts[i] = c.Chunk.Content
	}

	prompt := fmt.Sprintf(userPromptTemplate, buildContext(sources, texts), question)
	resp, err := o.provider.Complete(ctx, llm.CompletionRequest{
		Model: o.cfg.Model,
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: systemPrompt},
			{Role: llm.RoleUser, Content: prompt},
		},
		MaxTokens:   o.cfg.MaxTokens,
		Temperature: o.cfg.Temperature,
	})

	ans := &Answer{Question: question, Sources: sources, Elapsed: time.Since(start)}
	if err != nil {
		ans.Answer = generationFailedMessage(err)
	} else {
		ans.Answer = resp.Content
	}
	o.logQuery(ctx, ans)
	return ans, nil
}

func (o *Orchestrator) logQuery(ctx context.Context, ans *Answer) {
	if o.catalog == nil {
		return
	}
	// Logging is best-effort; a full answer is never failed for it.
	_ = o.catalog.LogQuery(ctx, catalog.QueryRecord{
		Question:    ans.Question,
		Answer:      ans.Answer,
		SourceCount: len(ans.Sources),
		DurationMS:  ans.Elapsed.Milliseconds(),
		AskedAt:     time.Now(),
	})
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n]) + "..."
}

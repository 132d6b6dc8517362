// Package rerank implements the second retrieval stage: cross-encoder
// scoring of (query, chunk) pairs over the first-pass vector search output.
package rerank

import (
	"context"
	"fmt"
	"sort"

	"github.com/minhokang/docqa/internal/vectordb"
)

// RankedScore carries a relevance value together with its sign convention.
// Vector search yields distances (lower is better) while cross-encoder
// scoring yields relevance logits (higher is better); keeping the flag next
// to the value stops the two scales from being compared directly.
type RankedScore struct {
	Value          float64
	HigherIsBetter bool
}

// DistanceScore wraps a vector-search distance.
func DistanceScore(distance float64) RankedScore {
	return RankedScore{Value: distance, HigherIsBetter: false}
}

// RelevanceScore wraps a cross-encoder relevance value.
func RelevanceScore(relevance float64) RankedScore {
	return RankedScore{Value: relevance, HigherIsBetter: true}
}

// Better reports whether s ranks ahead of other. The two scores must share
// a sign convention; mixing scales is a programming error.
func (s RankedScore) Better(other RankedScore) (bool, error) {
	if s.HigherIsBetter != other.HigherIsBetter {
		return false, fmt.Errorf("comparing scores with mixed sign conventions")
	}
	if s.HigherIsBetter {
		return s.Value > other.Value, nil
	}
	return s.Value < other.Value, nil
}

// Candidate is the query-scoped pairing of a stored chunk with its current
// score. Never persisted; it lives for one query.
type Candidate struct {
	Chunk vectordb.Document
	Score RankedScore
}

// FromSearchResults converts first-pass vector search output into
// candidates carrying distance scores.
func FromSearchResults(results []vectordb.SearchResult) []Candidate {
	cands := make([]Candidate, len(results))
	for i, r := range results {
		cands[i] = Candidate{Chunk: r.Document, Score: DistanceScore(r.Distance)}
	}
	return cands
}

// Scorer scores one (query, candidate text) pair with a pairwise relevance
// model. Higher means more relevant.
type Scorer interface {
	ScoreBatch(ctx context.Context, query string, texts []string) ([]float64, error)
	ModelName() string
}

// Reranker reorders retrieval candidates by cross-encoder relevance.
type Reranker struct {
	scorer Scorer
}

// New creates a Reranker over the given scorer.
func New(scorer Scorer) *Reranker {
	return &Reranker{scorer: scorer}
}

// ModelName returns the underlying scoring model's identifier.
func (r *Reranker) ModelName() string {
	return r.scorer.ModelName()
}

// Rerank scores every candidate against the query, sorts by descending
// relevance and truncates to topK (topK <= 0 means no truncation). The
// output is a permutation of the input: same chunks, new scores and order.
// A scorer failure propagates as an error; callers assume the returned
// order reflects the configured ranking policy, so there is no silent
// fall-through to the un-reranked order.
func (r *Reranker) Rerank(ctx context.Context, query string, candidates []Candidate, topK int) ([]Candidate, error) {
	if len(candidates) == 0 {
		return nil, nil
	}

	texts := make([]string, len(candidates))
	for i, c := range candidates {
		texts[i] = c.Chunk.Content
	}

	scores, err := r.scorer.ScoreBatch(ctx, query, texts)
	if err != nil {
		return nil, fmt.Errorf("rerank scoring failed: %w", err)
	}
	if len(scores) != len(candidates) {
		return nil, fmt.Errorf("rerank returned %d scores, expected %d", len(scores), len(candidates))
	}

	reranked := make([]Candidate, len(candidates))
	for i, c := range candidates {
		reranked[i] = Candidate{Chunk: c.Chunk, Score: RelevanceScore(scores[i])}
	}

	sort.SliceStable(reranked, func(i, j int) bool {
		return reranked[i].Score.Value > reranked[j].Score.Value
	})

	if topK > 0 && len(reranked) > topK {
		reranked = reranked[:topK]
	}
	return reranked, nil
}

// RerankWithThreshold reranks, drops candidates scoring below threshold,
// then truncates to topK.
func (r *Reranker) RerankWithThreshold(ctx context.Context, query string, candidates []Candidate, threshold float64, topK int) ([]Candidate, error) {
	reranked, err := r.Rerank(ctx, query, candidates, 0)
	if err != nil {
		return nil, err
	}

	filtered := reranked[:0:0]
	for _, c := range reranked {
		if c.Score.Value >= threshold {
			filtered = append(filtered, c)
		}
	}

	if topK > 0 && len(filtered) > topK {
		filtered = filtered[:topK]
	}
	return filtered, nil
}

package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/minhokang/docqa/internal/catalog"
	"github.com/minhokang/docqa/internal/config"
	"github.com/minhokang/docqa/internal/db"
	"github.com/minhokang/docqa/internal/embeddings"
	"github.com/minhokang/docqa/internal/llm"
	"github.com/minhokang/docqa/internal/pipeline"
	"github.com/minhokang/docqa/internal/rerank"
	"github.com/minhokang/docqa/internal/segment"
	"github.com/minhokang/docqa/internal/vectordb"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `docqa init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// createEmbedderFromConfig creates an embeddings.Embedder based on config.
func createEmbedderFromConfig(cfg *config.Config) (embeddings.Embedder, error) {
	provider := cfg.EmbeddingProvider
	if provider == "" {
		provider = cfg.Provider
	}

	switch provider {
	case config.ProviderOpenAI:
		apiKey := os.Getenv(config.APIKeyEnvVar(config.ProviderOpenAI))
		if apiKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable is required for OpenAI embeddings")
		}
		return embeddings.NewOpenAIEmbedder(apiKey, embeddings.OpenAIModel(cfg.EmbeddingModel)), nil
	case config.ProviderOllama:
		return embeddings.NewOllamaEmbedder(cfg.EmbeddingModel, 1024, ""), nil
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", provider)
	}
}

// createLLMProviderFromConfig creates an LLM provider based on config settings.
func createLLMProviderFromConfig(cfg *config.Config) (llm.Provider, error) {
	switch cfg.Provider {
	case config.ProviderOpenAI:
		apiKey := os.Getenv(config.APIKeyEnvVar(config.ProviderOpenAI))
		if apiKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable is required")
		}
		return llm.NewOpenAIProvider(apiKey, cfg.Model), nil
	case config.ProviderOllama:
		return llm.NewOllamaProvider("", cfg.Model), nil
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}
}

// createRerankerFromConfig returns the configured reranker, or nil when
// reranking is disabled.
func createRerankerFromConfig(cfg *config.Config) *rerank.Reranker {
	if !cfg.Rerank.Enabled {
		return nil
	}
	return rerank.New(rerank.NewCrossEncoderClient(cfg.Rerank.URL, cfg.Rerank.Model))
}

// createSegmenterFromConfig builds a Segmenter from the chunking settings.
func createSegmenterFromConfig(cfg *config.Config) (*segment.Segmenter, error) {
	return segment.New(segment.Options{
		MaxSize:     cfg.Chunking.MaxSize,
		MinSize:     cfg.Chunking.MinSize,
		OverlapSize: cfg.Chunking.OverlapSize,
	})
}

// openStore creates the vector store and loads any persisted index from the
// data directory. A missing index is not an error; the store starts empty.
func openStore(ctx context.Context, cfg *config.Config, embedder embeddings.Embedder) (vectordb.VectorStore, error) {
	store, err := vectordb.NewChromemStore(embedder)
	if err != nil {
		return nil, fmt.Errorf("creating vector store: %w", err)
	}
	if _, statErr := os.Stat(filepath.Join(cfg.DataDir, "chromem.gob.gz")); statErr == nil {
		if err := store.Load(ctx, cfg.DataDir); err != nil {
			return nil, fmt.Errorf("loading vector store from %s: %w", cfg.DataDir, err)
		}
	}
	return store, nil
}

// openCatalog opens the SQLite document catalog under the data directory.
func openCatalog(cfg *config.Config) (*catalog.Store, *db.DB, error) {
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, nil, fmt.Errorf("creating data dir: %w", err)
	}
	database, err := db.Open(filepath.Join(cfg.DataDir, "catalog.db"))
	if err != nil {
		return nil, nil, fmt.Errorf("opening catalog: %w", err)
	}
	return catalog.NewStore(database), database, nil
}

// orchestratorConfig maps config settings onto the query pipeline knobs.
func orchestratorConfig(cfg *config.Config) pipeline.OrchestratorConfig {
	return pipeline.OrchestratorConfig{
		Model:      cfg.Model,
		TopK:       cfg.Search.TopK,
		RerankTopK: cfg.Rerank.TopK,
		FinalTopK:  cfg.Rerank.FinalTopK,
		Threshold:  cfg.Rerank.Threshold,
	}
}

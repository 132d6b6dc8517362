package config

// DefaultIncludes are glob patterns matched against file names during
// batch ingestion.
var DefaultIncludes = []string{
	"**/*.txt",
	"**/*.md",
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Provider:          ProviderOpenAI,
		Model:             "gpt-4o-mini",
		EmbeddingProvider: ProviderOpenAI,
		EmbeddingModel:    "text-embedding-3-small",
		DataDir:           ".docqa",
		Include:           DefaultIncludes,
		Chunking: Chunking{
			MaxSize:     800,
			MinSize:     200,
			OverlapSize: 150,
		},
		Search: Search{
			TopK: 5,
		},
		Rerank: Rerank{
			Enabled:   false,
			URL:       "http://localhost:8082",
			Model:     "BAAI/bge-reranker-v2-m3",
			TopK:      10,
			FinalTopK: 3,
			Threshold: 0,
		},
		Server: Server{
			Port: 8080,
		},
	}
}

// defaultModels maps each provider to its default chat and embedding models.
var defaultModels = map[ProviderType]struct {
	Model          string
	EmbeddingModel string
}{
	ProviderOpenAI: {Model: "gpt-4o-mini", EmbeddingModel: "text-embedding-3-small"},
	ProviderOllama: {Model: "llama3", EmbeddingModel: "bge-m3"},
}

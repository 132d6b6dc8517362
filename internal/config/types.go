package config

// ProviderType identifies an LLM or embedding provider.
type ProviderType string

const (
	ProviderOpenAI ProviderType = "openai"
	ProviderOllama ProviderType = "ollama"
)

// Config is the top-level docqa configuration, corresponding to .docqa.yml.
type Config struct {
	Provider          ProviderType `yaml:"provider" koanf:"provider"`
	Model             string       `yaml:"model" koanf:"model"`
	EmbeddingProvider ProviderType `yaml:"embedding_provider" koanf:"embedding_provider"`
	EmbeddingModel    string       `yaml:"embedding_model" koanf:"embedding_model"`
	DataDir           string       `yaml:"data_dir" koanf:"data_dir"`
	Include           []string     `yaml:"include" koanf:"include"`
	Chunking          Chunking     `yaml:"chunking" koanf:"chunking"`
	Search            Search       `yaml:"search" koanf:"search"`
	Rerank            Rerank       `yaml:"rerank" koanf:"rerank"`
	Server            Server       `yaml:"server" koanf:"server"`
}

// Chunking holds the segmentation size thresholds, in characters.
type Chunking struct {
	MaxSize     int `yaml:"max_size" koanf:"max_size"`
	MinSize     int `yaml:"min_size" koanf:"min_size"`
	OverlapSize int `yaml:"overlap_size" koanf:"overlap_size"`
}

// Search holds first-pass retrieval settings.
type Search struct {
	TopK int `yaml:"top_k" koanf:"top_k"`
}

// Rerank holds second-stage cross-encoder settings.
type Rerank struct {
	Enabled   bool    `yaml:"enabled" koanf:"enabled"`
	URL       string  `yaml:"url" koanf:"url"`
	Model     string  `yaml:"model" koanf:"model"`
	TopK      int     `yaml:"top_k" koanf:"top_k"`
	FinalTopK int     `yaml:"final_top_k" koanf:"final_top_k"`
	Threshold float64 `yaml:"threshold" koanf:"threshold"`
}

// Server holds HTTP API settings.
type Server struct {
	Port            int  `yaml:"port" koanf:"port"`
	AllowAllOrigins bool `yaml:"allow_all_origins" koanf:"allow_all_origins"`
}

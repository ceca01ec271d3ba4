// Package config loads the application configuration from YAML, applying
// defaults for anything left unset.
package config

import (
	"errors"
	"os"

	"gopkg.in/yaml.v3"
)

// ServerConfig configures the HTTP boundary.
type ServerConfig struct {
	Port  int  `yaml:"port"`
	Debug bool `yaml:"debug"`
}

// CleanerConfig tunes the text cleaner heuristics.
type CleanerConfig struct {
	// MinArticleLen is the shortest accepted truncation result before the
	// separator fallback runs. The 300 default is empirical.
	MinArticleLen int `yaml:"min_article_len"`
}

// ChunkerConfig configures how cleaned text is split into passages.
type ChunkerConfig struct {
	MaxChars int `yaml:"max_chars"`
	Overlap  int `yaml:"overlap"`
}

// CorpusConfig locates the corpus artifacts and bounds index batches.
type CorpusConfig struct {
	RawPath     string `yaml:"raw_path"`
	CleanedPath string `yaml:"cleaned_path"`
	BatchSize   int    `yaml:"batch_size"`
}

// EmbedderConfig configures the OpenAI-compatible embeddings collaborator.
type EmbedderConfig struct {
	BaseURL     string `yaml:"base_url"`
	APIKeyEnv   string `yaml:"api_key_env"`
	Model       string `yaml:"model"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// QdrantConfig contains connection details for the Qdrant vector store.
type QdrantConfig struct {
	URL         string `yaml:"url"`
	APIKey      string `yaml:"api_key"`
	Collection  string `yaml:"collection"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// LLMConfig configures the chat-completion collaborator.
type LLMConfig struct {
	BaseURL     string  `yaml:"base_url"`
	APIKeyEnv   string  `yaml:"api_key_env"`
	Model       string  `yaml:"model"`
	Temperature float64 `yaml:"temperature"`
	MaxTokens   int     `yaml:"max_tokens"`
	TimeoutSecs int     `yaml:"timeout_secs"`
}

// AnswererConfig configures retrieval-to-prompt assembly.
type AnswererConfig struct {
	TopK int `yaml:"top_k"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Server   ServerConfig   `yaml:"server"`
	Cleaner  CleanerConfig  `yaml:"cleaner"`
	Chunker  ChunkerConfig  `yaml:"chunker"`
	Corpus   CorpusConfig   `yaml:"corpus"`
	Embedder EmbedderConfig `yaml:"embedder"`
	Qdrant   QdrantConfig   `yaml:"qdrant"`
	LLM      LLMConfig      `yaml:"llm"`
	Answerer AnswererConfig `yaml:"answerer"`
}

// Load reads a config from the given path. A missing file yields the
// defaults rather than an error.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := &AppConfig{}
			applyDefaults(cfg)
			return cfg, nil
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Cleaner.MinArticleLen == 0 {
		cfg.Cleaner.MinArticleLen = 300
	}
	if cfg.Chunker.MaxChars == 0 {
		cfg.Chunker.MaxChars = 1800
	}
	if cfg.Chunker.Overlap == 0 {
		cfg.Chunker.Overlap = 200
	}
	if cfg.Corpus.RawPath == "" {
		cfg.Corpus.RawPath = "dustin_photography_reviews.json"
	}
	if cfg.Corpus.CleanedPath == "" {
		cfg.Corpus.CleanedPath = "dustin_photography_reviews_cleaned.json"
	}
	if cfg.Corpus.BatchSize == 0 {
		cfg.Corpus.BatchSize = 100
	}
	if cfg.Embedder.BaseURL == "" {
		cfg.Embedder.BaseURL = "https://api.openai.com/v1"
	}
	if cfg.Embedder.APIKeyEnv == "" {
		cfg.Embedder.APIKeyEnv = "OPENAI_API_KEY"
	}
	if cfg.Embedder.Model == "" {
		cfg.Embedder.Model = "text-embedding-3-small"
	}
	if cfg.Embedder.TimeoutSecs == 0 {
		cfg.Embedder.TimeoutSecs = 30
	}
	if cfg.Qdrant.URL == "" {
		cfg.Qdrant.URL = "http://localhost:6333"
	}
	if cfg.Qdrant.Collection == "" {
		cfg.Qdrant.Collection = "photography_reviews"
	}
	if cfg.Qdrant.TimeoutSecs == 0 {
		cfg.Qdrant.TimeoutSecs = 15
	}
	if cfg.LLM.BaseURL == "" {
		cfg.LLM.BaseURL = "https://api.openai.com/v1"
	}
	if cfg.LLM.APIKeyEnv == "" {
		cfg.LLM.APIKeyEnv = "OPENAI_API_KEY"
	}
	if cfg.LLM.Model == "" {
		cfg.LLM.Model = "gpt-3.5-turbo"
	}
	if cfg.LLM.Temperature == 0 {
		cfg.LLM.Temperature = 0.2
	}
	if cfg.LLM.MaxTokens == 0 {
		cfg.LLM.MaxTokens = 2000
	}
	if cfg.LLM.TimeoutSecs == 0 {
		cfg.LLM.TimeoutSecs = 60
	}
	if cfg.Answerer.TopK == 0 {
		cfg.Answerer.TopK = 3
	}
}

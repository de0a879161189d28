// Package config provides configuration loading for triviad.
package config

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidConfig indicates invalid configuration.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the top-level triviad configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Logging   LoggingConfig   `koanf:"logging"`
	LLM       LLMConfig       `koanf:"llm"`
	Embedding EmbeddingConfig `koanf:"embedding"`
	Store     StoreConfig     `koanf:"store"`
	Chunking  ChunkingConfig  `koanf:"chunking"`
	Retrieval RetrievalConfig `koanf:"retrieval"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`  // debug, info, warn, error
	Format string `koanf:"format"` // json or console
}

// LLMConfig holds text-generation backend settings.
type LLMConfig struct {
	BaseURL string `koanf:"base_url"`
	Model   string `koanf:"model"`
	// Timeout is the ceiling for a single generation call.
	Timeout time.Duration `koanf:"timeout"`
}

// EmbeddingConfig holds embedding backend settings.
type EmbeddingConfig struct {
	// Provider is "ollama" or "openai" (OpenAI-compatible servers such as TEI).
	Provider string `koanf:"provider"`
	BaseURL  string `koanf:"base_url"`
	Model    string `koanf:"model"`
	APIKey   string `koanf:"api_key"`
}

// StoreConfig holds vector store settings.
type StoreConfig struct {
	// Path is the directory for persistent chromem storage.
	Path     string `koanf:"path"`
	Compress bool   `koanf:"compress"`
}

// ChunkingConfig holds text splitting settings.
type ChunkingConfig struct {
	Size    int `koanf:"size"`
	Overlap int `koanf:"overlap"`
}

// RetrievalConfig holds MMR retrieval settings.
type RetrievalConfig struct {
	K int `koanf:"k"`
	// FetchK is the similarity candidate pool size before MMR selection.
	FetchK int `koanf:"fetch_k"`
	// DiversityWeight is the MMR lambda: 1 = pure relevance, 0 = max diversity.
	DiversityWeight float64 `koanf:"diversity_weight"`
}

// applyDefaults sets default values for missing configuration fields.
func applyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8000
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10 * time.Second
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}

	if cfg.LLM.BaseURL == "" {
		cfg.LLM.BaseURL = "http://localhost:11434"
	}
	if cfg.LLM.Model == "" {
		cfg.LLM.Model = "llama3.1:8b"
	}
	if cfg.LLM.Timeout == 0 {
		cfg.LLM.Timeout = 2 * time.Minute
	}

	if cfg.Embedding.Provider == "" {
		cfg.Embedding.Provider = "ollama"
	}
	if cfg.Embedding.BaseURL == "" {
		cfg.Embedding.BaseURL = "http://localhost:11434"
	}
	if cfg.Embedding.Model == "" {
		cfg.Embedding.Model = "nomic-embed-text"
	}

	if cfg.Store.Path == "" {
		cfg.Store.Path = "/data/chroma"
	}

	if cfg.Chunking.Size == 0 {
		cfg.Chunking.Size = 1100
	}
	if cfg.Chunking.Overlap == 0 {
		cfg.Chunking.Overlap = 120
	}

	if cfg.Retrieval.K == 0 {
		cfg.Retrieval.K = 5
	}
	if cfg.Retrieval.FetchK == 0 {
		cfg.Retrieval.FetchK = 20
	}
	if cfg.Retrieval.DiversityWeight == 0 {
		cfg.Retrieval.DiversityWeight = 0.7
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("%w: server port %d out of range", ErrInvalidConfig, c.Server.Port)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("%w: unknown log format %q", ErrInvalidConfig, c.Logging.Format)
	}
	switch c.Embedding.Provider {
	case "ollama", "openai":
	default:
		return fmt.Errorf("%w: unknown embedding provider %q", ErrInvalidConfig, c.Embedding.Provider)
	}
	if c.Chunking.Size <= 0 {
		return fmt.Errorf("%w: chunk size must be positive", ErrInvalidConfig)
	}
	if c.Chunking.Overlap < 0 || c.Chunking.Overlap >= c.Chunking.Size {
		return fmt.Errorf("%w: chunk overlap must be in [0, size)", ErrInvalidConfig)
	}
	if c.Retrieval.K <= 0 || c.Retrieval.FetchK < c.Retrieval.K {
		return fmt.Errorf("%w: retrieval requires 0 < k <= fetch_k", ErrInvalidConfig)
	}
	if c.Retrieval.DiversityWeight < 0 || c.Retrieval.DiversityWeight > 1 {
		return fmt.Errorf("%w: diversity_weight must be in [0,1]", ErrInvalidConfig)
	}
	return nil
}

// Package embeddings provides embedding generation via langchaingo.
package embeddings

import (
	"context"
	"errors"
	"fmt"

	lcembeddings "github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
)

var (
	// ErrEmptyInput indicates empty or nil input texts.
	ErrEmptyInput = errors.New("empty or nil input texts")

	// ErrInvalidConfig indicates invalid configuration.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrEmbeddingFailed indicates the embedding backend call failed.
	ErrEmbeddingFailed = errors.New("embedding backend failed")
)

// Provider generates vector embeddings from text.
//
// Embeddings are dense numerical representations that capture semantic
// meaning, enabling similarity search. Deterministic-enough for a given
// model/version.
type Provider interface {
	// EmbedDocuments generates embeddings for multiple texts.
	EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error)

	// EmbedQuery generates an embedding for a single query.
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// Config holds configuration for creating an embedding provider.
type Config struct {
	// Provider is "ollama" or "openai" (any OpenAI-compatible server).
	Provider string

	// BaseURL is the backend URL.
	BaseURL string

	// Model is the embedding model name.
	// For Ollama: nomic-embed-text. For OpenAI: text-embedding-3-small.
	Model string

	// APIKey is required for OpenAI, unused for Ollama.
	APIKey string
}

// Validate validates the configuration.
func (c Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("%w: base URL required", ErrInvalidConfig)
	}
	if c.Model == "" {
		return fmt.Errorf("%w: model required", ErrInvalidConfig)
	}
	return nil
}

// NewProvider creates an embedding provider based on the configuration.
func NewProvider(cfg Config) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.Provider {
	case "ollama", "":
		client, err := ollama.New(
			ollama.WithServerURL(cfg.BaseURL),
			ollama.WithModel(cfg.Model),
		)
		if err != nil {
			return nil, fmt.Errorf("creating ollama embedding client: %w", err)
		}
		embedder, err := lcembeddings.NewEmbedder(client)
		if err != nil {
			return nil, fmt.Errorf("creating embedder: %w", err)
		}
		return &service{embedder: embedder}, nil
	case "openai":
		apiKey := cfg.APIKey
		if apiKey == "" {
			// langchaingo requires a token; TEI-style servers ignore it.
			apiKey = "placeholder"
		}
		client, err := openai.New(
			openai.WithBaseURL(cfg.BaseURL),
			openai.WithEmbeddingModel(cfg.Model),
			openai.WithToken(apiKey),
		)
		if err != nil {
			return nil, fmt.Errorf("creating openai embedding client: %w", err)
		}
		embedder, err := lcembeddings.NewEmbedder(client)
		if err != nil {
			return nil, fmt.Errorf("creating embedder: %w", err)
		}
		return &service{embedder: embedder}, nil
	default:
		return nil, fmt.Errorf("%w: unknown provider %q", ErrInvalidConfig, cfg.Provider)
	}
}

// service adapts a langchaingo embedder to the Provider interface.
type service struct {
	embedder *lcembeddings.EmbedderImpl
}

func (s *service) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, fmt.Errorf("%w: texts cannot be empty", ErrEmptyInput)
	}
	vectors, err := s.embedder.EmbedDocuments(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEmbeddingFailed, err)
	}
	return vectors, nil
}

func (s *service) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	vector, err := s.embedder.EmbedQuery(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEmbeddingFailed, err)
	}
	return vector, nil
}

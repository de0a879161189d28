package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"go.uber.org/zap"
)

// OllamaConfig holds configuration for the Ollama generation client.
type OllamaConfig struct {
	// BaseURL is the Ollama server URL (e.g., http://localhost:11434).
	BaseURL string

	// Model is the generation model name (e.g., llama3.1:8b).
	Model string

	// Timeout is the ceiling for a single generation call. Zero means
	// no client-side timeout.
	Timeout time.Duration
}

// OllamaClient implements Client against an Ollama server via langchaingo.
type OllamaClient struct {
	llm    *ollama.LLM
	config OllamaConfig
	logger *zap.Logger
}

// NewOllamaClient creates an Ollama-backed generation client.
func NewOllamaClient(cfg OllamaConfig, logger *zap.Logger) (*OllamaClient, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("ollama base URL is required")
	}
	if cfg.Model == "" {
		return nil, errors.New("ollama model is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	client, err := ollama.New(
		ollama.WithServerURL(cfg.BaseURL),
		ollama.WithModel(cfg.Model),
	)
	if err != nil {
		return nil, fmt.Errorf("creating ollama client: %w", err)
	}

	return &OllamaClient{llm: client, config: cfg, logger: logger}, nil
}

// Generate calls the backend with a system instruction and user content.
// The call is awaited to completion or failure; a timeout surfaces as
// ErrGenerationFailed.
func (c *OllamaClient) Generate(ctx context.Context, system, user string, opts ...Option) (string, error) {
	o := ApplyOptions(opts...)

	if c.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.Timeout)
		defer cancel()
	}

	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, system),
		llms.TextParts(llms.ChatMessageTypeHuman, user),
	}

	callOpts := []llms.CallOption{llms.WithTemperature(o.Temperature)}
	if o.MaxTokens > 0 {
		callOpts = append(callOpts, llms.WithMaxTokens(o.MaxTokens))
	}

	start := time.Now()
	resp, err := c.llm.GenerateContent(ctx, messages, callOpts...)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: empty response", ErrGenerationFailed)
	}

	text := strings.TrimSpace(resp.Choices[0].Content)

	c.logger.Debug("generation call completed",
		zap.String("model", c.config.Model),
		zap.Duration("duration", time.Since(start)),
		zap.Int("response_chars", len(text)),
	)

	return text, nil
}

var _ Client = (*OllamaClient)(nil)

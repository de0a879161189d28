// Package llm provides the text-generation capability consumed by the
// trivia and interview pipelines.
package llm

import (
	"context"
	"errors"
)

// ErrGenerationFailed indicates the generation backend itself failed
// (network, backend down). This is never masked by the pipeline.
var ErrGenerationFailed = errors.New("generation backend failed")

// Client is a blocking, synchronous text-generation capability.
// Implementations must support a low-temperature near-deterministic mode.
type Client interface {
	// Generate sends a system instruction and user content to the
	// backend and returns the raw response text.
	Generate(ctx context.Context, system, user string, opts ...Option) (string, error)
}

// Options holds per-call generation settings.
type Options struct {
	Temperature float64
	MaxTokens   int
}

// Option configures a single generation call.
type Option func(*Options)

// WithTemperature sets the sampling temperature.
func WithTemperature(t float64) Option {
	return func(o *Options) { o.Temperature = t }
}

// WithMaxTokens caps the response length.
func WithMaxTokens(n int) Option {
	return func(o *Options) { o.MaxTokens = n }
}

// ApplyOptions folds a list of options into an Options value.
func ApplyOptions(opts ...Option) Options {
	var o Options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

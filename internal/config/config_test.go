package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "llama3.1:8b", cfg.LLM.Model)
	assert.Equal(t, "ollama", cfg.Embedding.Provider)
	assert.Equal(t, "nomic-embed-text", cfg.Embedding.Model)
	assert.Equal(t, 1100, cfg.Chunking.Size)
	assert.Equal(t, 120, cfg.Chunking.Overlap)
	assert.Equal(t, 5, cfg.Retrieval.K)
	assert.Equal(t, 20, cfg.Retrieval.FetchK)
	assert.Equal(t, 0.7, cfg.Retrieval.DiversityWeight)
}

func TestLoadMissingFileIsNotAnError(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 8000, cfg.Server.Port)
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte(`
server:
  port: 9100
llm:
  model: qwen2.5:7b
retrieval:
  k: 3
  fetch_k: 12
`)
	require.NoError(t, os.WriteFile(path, content, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, "qwen2.5:7b", cfg.LLM.Model)
	assert.Equal(t, 3, cfg.Retrieval.K)
	assert.Equal(t, 12, cfg.Retrieval.FetchK)
	// Unset fields still get defaults.
	assert.Equal(t, "nomic-embed-text", cfg.Embedding.Model)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 9100\n"), 0o644))

	t.Setenv("SERVER_PORT", "9200")
	t.Setenv("EMBEDDING_BASE_URL", "http://embedder:8080")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9200, cfg.Server.Port)
	assert.Equal(t, "http://embedder:8080", cfg.Embedding.BaseURL)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Setenv("SERVER_PORT", "99999")
	_, err := Load("")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := &Config{}
		applyDefaults(cfg)
		return cfg
	}

	cfg := valid()
	assert.NoError(t, cfg.Validate())

	cfg = valid()
	cfg.Logging.Format = "xml"
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)

	cfg = valid()
	cfg.Embedding.Provider = "cohere"
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)

	cfg = valid()
	cfg.Chunking.Overlap = cfg.Chunking.Size
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)

	cfg = valid()
	cfg.Retrieval.FetchK = cfg.Retrieval.K - 1
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)

	cfg = valid()
	cfg.Retrieval.DiversityWeight = 1.5
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
}

package vectorstore

import (
	"context"
	"fmt"
	"os"

	chromem "github.com/philippgille/chromem-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/triviad/internal/embeddings"
)

// chromemTracer for OpenTelemetry instrumentation.
var chromemTracer = otel.Tracer("triviad.vectorstore.chromem")

// ChromemConfig holds configuration for the chromem-go embedded vector
// database.
type ChromemConfig struct {
	// Path is the directory for persistent storage.
	Path string

	// Compress enables gzip compression for stored data.
	Compress bool
}

// Validate validates the configuration.
func (c *ChromemConfig) Validate() error {
	if c.Path == "" {
		return fmt.Errorf("%w: storage path is required", ErrInvalidConfig)
	}
	return nil
}

// ChromemStore implements Store using chromem-go, an embeddable pure-Go
// vector database with gob-file persistence. One collection per topic;
// embeddings are computed in batch before insert so chromem never calls
// the embedder itself during AddDocuments.
type ChromemStore struct {
	db       *chromem.DB
	embedder embeddings.Provider
	config   ChromemConfig
	logger   *zap.Logger
}

// NewChromemStore creates a persistent ChromemStore.
func NewChromemStore(cfg ChromemConfig, embedder embeddings.Provider, logger *zap.Logger) (*ChromemStore, error) {
	if embedder == nil {
		return nil, fmt.Errorf("%w: embedder is required", ErrInvalidConfig)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(cfg.Path, 0o755); err != nil {
		return nil, fmt.Errorf("creating storage directory %s: %w", cfg.Path, err)
	}

	db, err := chromem.NewPersistentDB(cfg.Path, cfg.Compress)
	if err != nil {
		return nil, fmt.Errorf("creating chromem DB: %w", err)
	}

	logger.Info("chromem store initialized",
		zap.String("path", cfg.Path),
		zap.Bool("compress", cfg.Compress),
	)

	return &ChromemStore{db: db, embedder: embedder, config: cfg, logger: logger}, nil
}

// embeddingFunc adapts the embedding provider for chromem.
func (s *ChromemStore) embeddingFunc() chromem.EmbeddingFunc {
	return func(ctx context.Context, text string) ([]float32, error) {
		return s.embedder.EmbedQuery(ctx, text)
	}
}

// AddDocuments embeds and stores documents in the named collection.
func (s *ChromemStore) AddDocuments(ctx context.Context, collection string, docs []Document) error {
	ctx, span := chromemTracer.Start(ctx, "ChromemStore.AddDocuments")
	defer span.End()

	span.SetAttributes(
		attribute.String("collection", collection),
		attribute.Int("document_count", len(docs)),
	)

	if len(docs) == 0 {
		return ErrEmptyDocuments
	}

	col, err := s.db.GetOrCreateCollection(collection, nil, s.embeddingFunc())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("getting/creating collection %s: %w", collection, err)
	}

	texts := make([]string, len(docs))
	for i, doc := range docs {
		texts[i] = doc.Content
	}

	vectors, err := s.embedder.EmbedDocuments(ctx, texts)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("%w: %v", ErrEmbeddingFailed, err)
	}

	chromemDocs := make([]chromem.Document, len(docs))
	for i, doc := range docs {
		chromemDocs[i] = chromem.Document{
			ID:        doc.ID,
			Content:   doc.Content,
			Metadata:  doc.Metadata,
			Embedding: vectors[i],
		}
	}

	// Concurrency of 1: embeddings are already computed.
	if err := col.AddDocuments(ctx, chromemDocs, 1); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("adding documents: %w", err)
	}

	span.SetStatus(codes.Ok, "success")
	s.logger.Debug("added documents to chromem",
		zap.String("collection", collection),
		zap.Int("count", len(docs)),
	)
	return nil
}

// DeleteCollection removes a collection. Missing collections are a no-op.
func (s *ChromemStore) DeleteCollection(ctx context.Context, collection string) error {
	_, span := chromemTracer.Start(ctx, "ChromemStore.DeleteCollection")
	defer span.End()

	span.SetAttributes(attribute.String("collection", collection))

	if err := s.db.DeleteCollection(collection); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("deleting collection %s: %w", collection, err)
	}

	span.SetStatus(codes.Ok, "success")
	s.logger.Debug("deleted chromem collection", zap.String("collection", collection))
	return nil
}

// SearchMMR retrieves up to k chunks by maximal marginal relevance.
func (s *ChromemStore) SearchMMR(ctx context.Context, collection, query string, k, fetchK int, diversityWeight float64) ([]SearchResult, error) {
	ctx, span := chromemTracer.Start(ctx, "ChromemStore.SearchMMR")
	defer span.End()

	span.SetAttributes(
		attribute.String("collection", collection),
		attribute.Int("k", k),
		attribute.Int("fetch_k", fetchK),
		attribute.Float64("diversity_weight", diversityWeight),
	)

	if k <= 0 {
		return nil, fmt.Errorf("k must be positive, got %d", k)
	}
	if fetchK < k {
		fetchK = k
	}
	if query == "" {
		return nil, fmt.Errorf("query cannot be empty")
	}

	// Bind lazily: a topic whose collection was never written gets an
	// empty durable collection rather than an error.
	col, err := s.db.GetOrCreateCollection(collection, nil, s.embeddingFunc())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("getting/creating collection %s: %w", collection, err)
	}

	// chromem requires nResults <= document count.
	docCount := col.Count()
	if docCount == 0 {
		span.SetStatus(codes.Ok, "empty collection")
		return []SearchResult{}, nil
	}
	if fetchK > docCount {
		fetchK = docCount
	}

	queryVec, err := s.embedder.EmbedQuery(ctx, query)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("%w: %v", ErrEmbeddingFailed, err)
	}

	hits, err := col.QueryEmbedding(ctx, queryVec, fetchK, nil, nil)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("querying collection %s: %w", collection, err)
	}

	candidates := make([]candidate, len(hits))
	for i, hit := range hits {
		candidates[i] = candidate{
			result: SearchResult{
				ID:         hit.ID,
				Content:    hit.Content,
				Metadata:   hit.Metadata,
				Similarity: hit.Similarity,
			},
			embedding: hit.Embedding,
		}
	}

	results := selectMMR(candidates, k, diversityWeight)

	span.SetAttributes(attribute.Int("results_count", len(results)))
	span.SetStatus(codes.Ok, "success")

	s.logger.Debug("mmr search completed",
		zap.String("collection", collection),
		zap.Int("candidates", len(candidates)),
		zap.Int("results", len(results)),
	)

	return results, nil
}

// Count returns the number of documents in a collection.
func (s *ChromemStore) Count(ctx context.Context, collection string) int {
	col := s.db.GetCollection(collection, s.embeddingFunc())
	if col == nil {
		return 0
	}
	return col.Count()
}

// Close closes the store. chromem persists automatically.
func (s *ChromemStore) Close() error {
	s.logger.Info("chromem store closed")
	return nil
}

var _ Store = (*ChromemStore)(nil)

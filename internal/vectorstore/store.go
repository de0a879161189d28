// Package vectorstore provides topic-scoped vector storage and
// maximal-marginal-relevance retrieval.
package vectorstore

import (
	"context"
	"errors"
)

// Sentinel errors for vector store operations.
var (
	// ErrInvalidConfig indicates invalid configuration.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrEmptyDocuments indicates empty or nil documents.
	ErrEmptyDocuments = errors.New("empty or nil documents")

	// ErrEmbeddingFailed indicates embedding generation failure.
	ErrEmbeddingFailed = errors.New("failed to generate embeddings")
)

// Document is a chunk to be embedded and stored.
type Document struct {
	// ID is the unique identifier for the document.
	ID string

	// Content is the chunk text.
	Content string

	// Metadata carries topic_id, source_id, title, version, chunk_idx.
	Metadata map[string]string
}

// SearchResult is one retrieved chunk.
type SearchResult struct {
	ID         string
	Content    string
	Metadata   map[string]string
	Similarity float32
}

// Store is the vector similarity store consumed by the indexing and
// retrieval pipeline.
type Store interface {
	// AddDocuments embeds and stores documents in the named collection,
	// creating the collection if needed.
	AddDocuments(ctx context.Context, collection string, docs []Document) error

	// DeleteCollection removes a collection and all its documents.
	// Deleting a nonexistent collection is not an error.
	DeleteCollection(ctx context.Context, collection string) error

	// SearchMMR returns up to k chunks selected by maximal marginal
	// relevance over the top fetchK similarity candidates.
	// diversityWeight is the MMR lambda: 1 = pure relevance, 0 = max
	// diversity. A missing or empty collection yields empty results,
	// not an error; the collection is created lazily on first access.
	SearchMMR(ctx context.Context, collection, query string, k, fetchK int, diversityWeight float64) ([]SearchResult, error)

	// Count returns the number of documents in a collection, zero if
	// the collection does not exist.
	Count(ctx context.Context, collection string) int

	// Close releases store resources.
	Close() error
}

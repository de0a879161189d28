package trivia

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/fyrsmithlabs/triviad/internal/chunker"
	"github.com/fyrsmithlabs/triviad/internal/extract"
	"github.com/fyrsmithlabs/triviad/internal/llm"
	"github.com/fyrsmithlabs/triviad/internal/vectorstore"
)

const (
	// collectionPrefix names the durable per-topic collection.
	collectionPrefix = "trivia_"

	// contextChunks and contextCharBudget bound the generation context.
	contextChunks     = 5
	contextCharBudget = 1200

	// gradeChunks and gradeCharBudget bound per-question grading context.
	gradeChunks     = 3
	gradeCharBudget = 600

	// batchSize is the fixed batch-scoring arity.
	batchSize = 5
)

// RetrievalParams tune MMR retrieval for generation queries.
type RetrievalParams struct {
	K int
	// FetchK is the similarity candidate pool before MMR selection.
	FetchK int
	// DiversityWeight is the MMR lambda: 1 = relevance, 0 = diversity.
	DiversityWeight float64
}

// Service is the retrieval-grounded generation and grading pipeline.
type Service struct {
	topics    *TopicStore
	store     vectorstore.Store
	generator llm.Client
	extractor *extract.Extractor
	splitter  *chunker.Splitter
	retrieval RetrievalParams
	logger    *zap.Logger
}

// NewService wires the pipeline.
func NewService(topics *TopicStore, store vectorstore.Store, generator llm.Client, extractor *extract.Extractor, splitter *chunker.Splitter, retrieval RetrievalParams, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		topics:    topics,
		store:     store,
		generator: generator,
		extractor: extractor,
		splitter:  splitter,
		retrieval: retrieval,
		logger:    logger,
	}
}

// Topics returns the topic registry.
func (s *Service) Topics() *TopicStore {
	return s.topics
}

// CollectionName returns the canonical durable collection name for a topic.
func CollectionName(topicID string) string {
	return collectionPrefix + topicID
}

// Ingest appends sources to a topic and rebuilds its index at the
// resulting version. Returns ErrTopicNotFound for unknown topics and
// ErrNoSources when the topic still has nothing to index.
func (s *Service) Ingest(ctx context.Context, topicID string, sources []NewSource, bumpVersion bool) (Topic, error) {
	topic, err := s.topics.AddSources(topicID, sources, bumpVersion)
	if err != nil {
		return Topic{}, err
	}
	if len(topic.Sources) == 0 {
		return Topic{}, ErrNoSources
	}
	if err := s.IndexTopic(ctx, topic.TopicID, topic.Version, topic.Sources); err != nil {
		return Topic{}, err
	}
	return topic, nil
}

// IndexTopic chunks and embeds every source and replaces the topic's
// collection with the new version's chunks. Delete-then-recreate:
// deleting a collection that does not exist is not an error, and a
// retrieval racing this rebuild may observe a stale or partial
// collection (accepted consistency window). Fails only if the
// embedding backend fails.
func (s *Service) IndexTopic(ctx context.Context, topicID string, version int, sources []Source) error {
	var docs []vectorstore.Document
	for _, src := range sources {
		chunks, err := s.splitter.SplitSource(topicID, version, src.SourceID, src.Title, src.Content)
		if err != nil {
			return fmt.Errorf("chunking source %s: %w", src.SourceID, err)
		}
		for _, ch := range chunks {
			docs = append(docs, vectorstore.Document{
				ID:       ch.ID(),
				Content:  ch.Text,
				Metadata: ch.Metadata(),
			})
		}
	}

	collection := CollectionName(topicID)
	if err := s.store.DeleteCollection(ctx, collection); err != nil {
		return fmt.Errorf("replacing collection %s: %w", collection, err)
	}
	if err := s.store.AddDocuments(ctx, collection, docs); err != nil {
		return fmt.Errorf("indexing topic %s: %w", topicID, err)
	}

	s.logger.Info("topic indexed",
		zap.String("topic_id", topicID),
		zap.Int("version", version),
		zap.Int("sources", len(sources)),
		zap.Int("chunks", len(docs)),
	)
	return nil
}

// ensureIndexed lazily rebuilds a topic's collection when it is empty,
// mirroring the boundary behavior: unknown topic is NotFound, a known
// topic without sources is a precondition failure.
func (s *Service) ensureIndexed(ctx context.Context, topicID string) (Topic, error) {
	topic, ok := s.topics.Get(topicID)
	if !ok {
		return Topic{}, ErrTopicNotFound
	}
	if s.store.Count(ctx, CollectionName(topicID)) > 0 {
		return topic, nil
	}
	if len(topic.Sources) == 0 {
		return Topic{}, ErrNoSources
	}
	if err := s.IndexTopic(ctx, topic.TopicID, topic.Version, topic.Sources); err != nil {
		return Topic{}, err
	}
	return topic, nil
}

// retrieve runs MMR retrieval against the topic's collection.
func (s *Service) retrieve(ctx context.Context, topicID, query string, k int) ([]vectorstore.SearchResult, error) {
	return s.store.SearchMMR(ctx, CollectionName(topicID), query, k, s.retrieval.FetchK, s.retrieval.DiversityWeight)
}

// buildContext concatenates retrieved chunks, each truncated to the
// given character budget, separated by blank lines.
func buildContext(results []vectorstore.SearchResult, limit, budget int) string {
	if len(results) > limit {
		results = results[:limit]
	}
	parts := make([]string, 0, len(results))
	for _, r := range results {
		parts = append(parts, truncate(r.Content, budget))
	}
	return strings.Join(parts, "\n\n")
}

// truncate cuts s to at most n runes.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

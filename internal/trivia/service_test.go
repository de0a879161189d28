package trivia_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/triviad/internal/chunker"
	"github.com/fyrsmithlabs/triviad/internal/extract"
	"github.com/fyrsmithlabs/triviad/internal/llm"
	"github.com/fyrsmithlabs/triviad/internal/trivia"
	"github.com/fyrsmithlabs/triviad/internal/vectorstore"
)

// newTestService wires a Service over a stub store and scripted
// generator. The extractor runs without a repair pass so scripted
// responses are consumed only by the primary calls.
func newTestService(t *testing.T, store vectorstore.Store, generator llm.Client) (*trivia.Service, *trivia.TopicStore) {
	t.Helper()
	splitter, err := chunker.NewSplitter(1100, 120)
	require.NoError(t, err)

	topics := trivia.NewTopicStore()
	svc := trivia.NewService(topics, store, generator, extract.New(nil, zap.NewNop()), splitter, trivia.RetrievalParams{
		K:               5,
		FetchK:          20,
		DiversityWeight: 0.7,
	}, zap.NewNop())
	return svc, topics
}

func TestIngestBumpsVersionAndReindexes(t *testing.T) {
	store := newStubStore()
	svc, topics := newTestService(t, store, &scriptedLLM{})
	topics.EnsureTopic("t1", "Algorithms", "en")

	topic, err := svc.Ingest(context.Background(), "t1", []trivia.NewSource{
		{Title: "search", Content: "Binary search runs in O(log n)."},
	}, true)
	require.NoError(t, err)
	assert.Equal(t, 2, topic.Version)

	collection := trivia.CollectionName("t1")
	assert.Contains(t, store.deleteCalls, collection)

	docs := store.collections[collection]
	require.NotEmpty(t, docs)
	for _, doc := range docs {
		assert.Equal(t, "t1", doc.Metadata["topic_id"])
		assert.Equal(t, "2", doc.Metadata["version"])
		assert.NotEmpty(t, doc.ID)
		assert.NotEmpty(t, doc.Content)
	}
}

func TestIngestUnknownTopic(t *testing.T) {
	svc, _ := newTestService(t, newStubStore(), &scriptedLLM{})
	_, err := svc.Ingest(context.Background(), "ghost", []trivia.NewSource{{Content: "x"}}, true)
	assert.ErrorIs(t, err, trivia.ErrTopicNotFound)
}

func TestReindexReplacesPriorVersion(t *testing.T) {
	store := newStubStore()
	svc, topics := newTestService(t, store, &scriptedLLM{})
	topics.EnsureTopic("t1", "Algorithms", "en")

	_, err := svc.Ingest(context.Background(), "t1", []trivia.NewSource{
		{Title: "v2 source", Content: "First version content."},
	}, true)
	require.NoError(t, err)

	_, err = svc.Ingest(context.Background(), "t1", []trivia.NewSource{
		{Title: "v3 source", Content: "Second version content."},
	}, true)
	require.NoError(t, err)

	// Delete-then-recreate: no chunk tagged with the prior version
	// survives the rebuild.
	for _, doc := range store.collections[trivia.CollectionName("t1")] {
		assert.Equal(t, "3", doc.Metadata["version"])
	}
}

func TestGenerateRequiresSourcesForLazyIndex(t *testing.T) {
	svc, topics := newTestService(t, newStubStore(), &scriptedLLM{})
	topics.EnsureTopic("empty", "Empty", "en")

	_, err := svc.GenerateItems(context.Background(), "empty", 5)
	assert.ErrorIs(t, err, trivia.ErrNoSources)
}

func TestGenerateLazyReindexesWhenCollectionEmpty(t *testing.T) {
	store := newStubStore()
	generator := &scriptedLLM{responses: []string{`{"items":[]}`}}
	svc, topics := newTestService(t, store, generator)
	topics.EnsureTopic("t1", "Algorithms", "en")
	_, err := topics.AddSources("t1", []trivia.NewSource{{Content: "Binary search runs in O(log n)."}}, true)
	require.NoError(t, err)

	items, err := svc.GenerateItems(context.Background(), "t1", 3)
	require.NoError(t, err)
	assert.Len(t, items, 3)
	assert.Positive(t, store.Count(context.Background(), trivia.CollectionName("t1")))
}

package trivia

import (
	"sync"

	"github.com/google/uuid"
)

// NewSource is a source document as submitted for ingestion, before it
// is assigned an ID.
type NewSource struct {
	Title   string
	Content string
}

// TopicStore is the in-process topic registry. Sources are immutable
// once added; the topic version bumps on every AddSources call unless
// suppressed.
type TopicStore struct {
	mu     sync.RWMutex
	topics map[string]*Topic
}

// NewTopicStore creates an empty topic registry.
func NewTopicStore() *TopicStore {
	return &TopicStore{topics: make(map[string]*Topic)}
}

// EnsureTopic registers a topic at version 1 if it does not exist yet.
func (s *TopicStore) EnsureTopic(topicID, name, lang string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.topics[topicID]; ok {
		return
	}
	s.topics[topicID] = &Topic{
		TopicID: topicID,
		Name:    name,
		Lang:    lang,
		Version: 1,
	}
}

// Get returns a copy of the topic.
func (s *TopicStore) Get(topicID string) (Topic, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.topics[topicID]
	if !ok {
		return Topic{}, false
	}
	return copyTopic(t), true
}

// List returns copies of all topics.
func (s *TopicStore) List() []Topic {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Topic, 0, len(s.topics))
	for _, t := range s.topics {
		out = append(out, copyTopic(t))
	}
	return out
}

// AddSources appends sources to a topic, assigning each a fresh source
// ID, and bumps the version unless suppressed. Returns the updated
// topic copy or ErrTopicNotFound.
func (s *TopicStore) AddSources(topicID string, sources []NewSource, bumpVersion bool) (Topic, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.topics[topicID]
	if !ok {
		return Topic{}, ErrTopicNotFound
	}
	for _, src := range sources {
		t.Sources = append(t.Sources, Source{
			SourceID: uuid.NewString(),
			Title:    src.Title,
			Content:  src.Content,
		})
	}
	if bumpVersion {
		t.Version++
	}
	return copyTopic(t), nil
}

func copyTopic(t *Topic) Topic {
	out := *t
	out.Sources = make([]Source, len(t.Sources))
	copy(out.Sources, t.Sources)
	return out
}

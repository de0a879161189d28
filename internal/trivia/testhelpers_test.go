package trivia_test

import (
	"context"
	"sync"

	"github.com/fyrsmithlabs/triviad/internal/llm"
	"github.com/fyrsmithlabs/triviad/internal/vectorstore"
)

// stubStore is an in-memory vectorstore.Store for pipeline tests. It
// records writes and serves canned search results.
type stubStore struct {
	mu            sync.Mutex
	collections   map[string][]vectorstore.Document
	searchResults []vectorstore.SearchResult
	deleteCalls   []string
}

func newStubStore() *stubStore {
	return &stubStore{collections: make(map[string][]vectorstore.Document)}
}

func (s *stubStore) AddDocuments(ctx context.Context, collection string, docs []vectorstore.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(docs) == 0 {
		return vectorstore.ErrEmptyDocuments
	}
	s.collections[collection] = append(s.collections[collection], docs...)
	return nil
}

func (s *stubStore) DeleteCollection(ctx context.Context, collection string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleteCalls = append(s.deleteCalls, collection)
	delete(s.collections, collection)
	return nil
}

func (s *stubStore) SearchMMR(ctx context.Context, collection, query string, k, fetchK int, diversityWeight float64) ([]vectorstore.SearchResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	results := s.searchResults
	if len(results) > k {
		results = results[:k]
	}
	return results, nil
}

func (s *stubStore) Count(ctx context.Context, collection string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.collections[collection])
}

func (s *stubStore) Close() error { return nil }

var _ vectorstore.Store = (*stubStore)(nil)

// scriptedLLM returns queued responses in order; the last response
// repeats once the queue is exhausted.
type scriptedLLM struct {
	mu        sync.Mutex
	responses []string
	calls     int
	systems   []string
	users     []string
	err       error
}

func (s *scriptedLLM) Generate(ctx context.Context, system, user string, opts ...llm.Option) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.systems = append(s.systems, system)
	s.users = append(s.users, user)
	if s.err != nil {
		return "", s.err
	}
	if len(s.responses) == 0 {
		return "", nil
	}
	resp := s.responses[0]
	if len(s.responses) > 1 {
		s.responses = s.responses[1:]
	}
	return resp, nil
}

var _ llm.Client = (*scriptedLLM)(nil)

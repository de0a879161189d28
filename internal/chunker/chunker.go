// Package chunker splits source documents into overlapping passages for
// embedding and retrieval.
package chunker

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"

	"github.com/tmc/langchaingo/textsplitter"
)

// Chunk is a bounded-length slice of a source document together with the
// metadata needed to scope it to a topic version.
type Chunk struct {
	Text     string
	TopicID  string
	SourceID string
	Title    string
	Version  int
	Index    int
}

// ID returns the deterministic chunk identifier used for deduplication.
// Identity is derived from (topic, source, version, index), never from
// the text itself.
func (c Chunk) ID() string {
	sum := sha1.Sum([]byte(fmt.Sprintf("%s:%s:%d:%d", c.TopicID, c.SourceID, c.Version, c.Index)))
	return hex.EncodeToString(sum[:])
}

// Metadata returns the chunk metadata stored alongside the embedding.
func (c Chunk) Metadata() map[string]string {
	return map[string]string{
		"topic_id":  c.TopicID,
		"source_id": c.SourceID,
		"title":     c.Title,
		"version":   fmt.Sprintf("%d", c.Version),
		"chunk_idx": fmt.Sprintf("%d", c.Index),
	}
}

// Splitter produces chunks via recursive character splitting: coarse
// separators first, re-splitting oversized pieces with progressively
// finer ones down to single characters. Adjacent chunks overlap by the
// configured length. Deterministic for identical input and config.
type Splitter struct {
	inner textsplitter.RecursiveCharacter
}

// separators are tried coarsest-first: paragraph, line, sentence,
// clause, word, character.
var separators = []string{"\n\n", "\n", ". ", ", ", " ", ""}

// NewSplitter creates a Splitter with the given chunk size and overlap.
// Overlap must be smaller than size.
func NewSplitter(size, overlap int) (*Splitter, error) {
	if size <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", size)
	}
	if overlap < 0 || overlap >= size {
		return nil, fmt.Errorf("chunk overlap must be in [0, size), got %d", overlap)
	}
	return &Splitter{
		inner: textsplitter.NewRecursiveCharacter(
			textsplitter.WithChunkSize(size),
			textsplitter.WithChunkOverlap(overlap),
			textsplitter.WithSeparators(separators),
		),
	}, nil
}

// Split splits raw text into an ordered sequence of non-empty chunks.
func (s *Splitter) Split(text string) ([]string, error) {
	pieces, err := s.inner.SplitText(text)
	if err != nil {
		return nil, fmt.Errorf("splitting text: %w", err)
	}
	out := pieces[:0]
	for _, p := range pieces {
		if p != "" {
			out = append(out, p)
		}
	}
	return out, nil
}

// SplitSource splits one source document and tags every chunk with the
// topic-scoped metadata.
func (s *Splitter) SplitSource(topicID string, version int, sourceID, title, content string) ([]Chunk, error) {
	pieces, err := s.Split(content)
	if err != nil {
		return nil, err
	}
	chunks := make([]Chunk, 0, len(pieces))
	for i, p := range pieces {
		chunks = append(chunks, Chunk{
			Text:     p,
			TopicID:  topicID,
			SourceID: sourceID,
			Title:    title,
			Version:  version,
			Index:    i,
		})
	}
	return chunks, nil
}

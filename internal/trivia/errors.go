package trivia

import "errors"

var (
	// ErrTopicNotFound is returned for an unknown topic_id.
	ErrTopicNotFound = errors.New("topic not found")

	// ErrNoSources is returned when a topic has no sources to index.
	ErrNoSources = errors.New("topic has no sources to index")

	// ErrBatchSize is returned when batch scoring is called with
	// anything other than exactly 5 items and 5 answers.
	ErrBatchSize = errors.New("batch scoring requires exactly 5 items and 5 answers")

	// ErrBadCount is returned when the requested item count is outside 1..10.
	ErrBadCount = errors.New("item count must be between 1 and 10")
)

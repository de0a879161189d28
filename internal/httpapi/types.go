package httpapi

import (
	"github.com/fyrsmithlabs/triviad/internal/interview"
	"github.com/fyrsmithlabs/triviad/internal/trivia"
)

// HealthResponse reports service liveness.
type HealthResponse struct {
	Status        string `json:"status"`
	Version       string `json:"version"`
	VectorBackend string `json:"vector_backend"`
}

// TopicsResponse lists the registered topics.
type TopicsResponse struct {
	Topics []trivia.Topic `json:"topics"`
}

// IngestSource is one source document submitted for ingestion.
type IngestSource struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// IngestRequest adds sources to a topic and reindexes it.
type IngestRequest struct {
	TopicID string         `json:"topic_id"`
	Sources []IngestSource `json:"sources"`
	// BumpVersion defaults to true when omitted.
	BumpVersion *bool `json:"bump_version"`
}

// IngestResponse confirms a reindex.
type IngestResponse struct {
	Status       string `json:"status"`
	TopicID      string `json:"topic_id"`
	Version      int    `json:"version"`
	SourcesCount int    `json:"sources_count"`
}

// GenerateRequest asks for count grounded items for a topic.
type GenerateRequest struct {
	TopicID string `json:"topic_id"`
	Count   int    `json:"count"`
}

// GenerateResponse returns exactly the requested number of items.
type GenerateResponse struct {
	TopicID string              `json:"topic_id"`
	Version int                 `json:"version"`
	Items   []trivia.TriviaItem `json:"items"`
}

// ScoreRequest grades exactly 5 answers against 5 items.
type ScoreRequest struct {
	TopicID string              `json:"topic_id"`
	Answers []string            `json:"answers"`
	Items   []trivia.TriviaItem `json:"items"`
}

// ScoreResponse is the aggregate percentage.
type ScoreResponse struct {
	Score int `json:"score"`
}

// ScoreOneRequest grades one answer with a full rubric breakdown.
type ScoreOneRequest struct {
	TopicID string            `json:"topic_id"`
	Item    trivia.TriviaItem `json:"item"`
	Answer  string            `json:"answer"`
	// ShowSolution defaults to true when omitted.
	ShowSolution *bool `json:"show_solution"`
}

// InterviewStartRequest creates an interview session.
type InterviewStartRequest struct {
	SessionID string `json:"session_id"`
	Area      string `json:"area"`
	Level     string `json:"level"`
}

// InterviewNextRequest asks for the next question.
type InterviewNextRequest struct {
	SessionID string `json:"session_id"`
}

// InterviewQuestionResponse carries a generated question and the
// session's current level.
type InterviewQuestionResponse struct {
	Question string `json:"question"`
	Level    string `json:"level"`
}

// InterviewGradeRequest grades one free-text answer.
type InterviewGradeRequest struct {
	SessionID string `json:"session_id"`
	Question  string `json:"question"`
	Answer    string `json:"answer"`
}

// InterviewGradeResponse carries the grading result, the possibly
// adjusted level and the running "correct/asked" tally.
type InterviewGradeResponse struct {
	Result interview.GradeResult `json:"result"`
	Level  string                `json:"level"`
	Score  string                `json:"score"`
}

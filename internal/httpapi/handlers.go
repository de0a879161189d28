package httpapi

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fyrsmithlabs/triviad/internal/interview"
	"github.com/fyrsmithlabs/triviad/internal/trivia"
)

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{
		Status:        "ok",
		Version:       ServiceVersion,
		VectorBackend: "chromem",
	})
}

func (s *Server) handleTopics(c echo.Context) error {
	return c.JSON(http.StatusOK, TopicsResponse{Topics: s.trivia.Topics().List()})
}

func (s *Server) handleIngest(c echo.Context) error {
	var req IngestRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if len(req.Sources) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "no sources to index")
	}

	sources := make([]trivia.NewSource, len(req.Sources))
	for i, src := range req.Sources {
		sources[i] = trivia.NewSource{Title: src.Title, Content: src.Content}
	}
	bump := req.BumpVersion == nil || *req.BumpVersion

	topic, err := s.trivia.Ingest(c.Request().Context(), req.TopicID, sources, bump)
	if err != nil {
		return s.mapError(err)
	}

	return c.JSON(http.StatusOK, IngestResponse{
		Status:       "ok",
		TopicID:      topic.TopicID,
		Version:      topic.Version,
		SourcesCount: len(topic.Sources),
	})
}

func (s *Server) handleGenerate(c echo.Context) error {
	req := GenerateRequest{Count: 5}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	items, err := s.trivia.GenerateItems(c.Request().Context(), req.TopicID, req.Count)
	if err != nil {
		return s.mapError(err)
	}

	topic, _ := s.trivia.Topics().Get(req.TopicID)
	return c.JSON(http.StatusOK, GenerateResponse{
		TopicID: req.TopicID,
		Version: topic.Version,
		Items:   items,
	})
}

func (s *Server) handleScore(c echo.Context) error {
	var req ScoreRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	score, err := s.trivia.ScoreBatch(c.Request().Context(), req.TopicID, req.Items, req.Answers)
	if err != nil {
		return s.mapError(err)
	}
	return c.JSON(http.StatusOK, ScoreResponse{Score: score})
}

func (s *Server) handleScoreOne(c echo.Context) error {
	var req ScoreOneRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	show := req.ShowSolution == nil || *req.ShowSolution

	result, err := s.trivia.ScoreOne(c.Request().Context(), req.TopicID, req.Item, req.Answer, show)
	if err != nil {
		return s.mapError(err)
	}
	return c.JSON(http.StatusOK, result)
}

func (s *Server) handleInterviewStart(c echo.Context) error {
	req := InterviewStartRequest{Area: interview.AreaCoding, Level: interview.LevelEasy}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.SessionID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "session_id is required")
	}

	question, level, err := s.interview.Start(c.Request().Context(), req.SessionID, req.Area, req.Level)
	if err != nil {
		return s.mapError(err)
	}
	return c.JSON(http.StatusOK, InterviewQuestionResponse{Question: question, Level: level})
}

func (s *Server) handleInterviewNext(c echo.Context) error {
	var req InterviewNextRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	question, level, err := s.interview.NextQuestion(c.Request().Context(), req.SessionID)
	if err != nil {
		return s.mapError(err)
	}
	return c.JSON(http.StatusOK, InterviewQuestionResponse{Question: question, Level: level})
}

func (s *Server) handleInterviewGrade(c echo.Context) error {
	var req InterviewGradeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	result, level, err := s.interview.GradeAnswer(c.Request().Context(), req.SessionID, req.Question, req.Answer)
	if err != nil {
		return s.mapError(err)
	}
	progress, err := s.interview.Progress(req.SessionID)
	if err != nil {
		return s.mapError(err)
	}
	return c.JSON(http.StatusOK, InterviewGradeResponse{
		Result: result,
		Level:  level,
		Score:  progress,
	})
}

// mapError translates domain errors to HTTP status codes. NotFound and
// precondition failures are client-visible; everything else is a
// backend failure.
func (s *Server) mapError(err error) error {
	switch {
	case errors.Is(err, trivia.ErrTopicNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "topic not found")
	case errors.Is(err, interview.ErrSessionNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "session not found, use /interview/start")
	case errors.Is(err, trivia.ErrNoSources):
		return echo.NewHTTPError(http.StatusNotFound, "topic has no sources yet, use /ingest")
	case errors.Is(err, trivia.ErrBatchSize), errors.Is(err, trivia.ErrBadCount):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "backend failure")
	}
}

// Package httpapi provides the HTTP API for triviad.
package httpapi

import (
	"context"
	"fmt"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/triviad/internal/interview"
	"github.com/fyrsmithlabs/triviad/internal/trivia"
)

// ServiceVersion is reported by the health endpoint.
const ServiceVersion = "1.0"

// TriviaService is the boundary the trivia handlers consume.
type TriviaService interface {
	Topics() *trivia.TopicStore
	Ingest(ctx context.Context, topicID string, sources []trivia.NewSource, bumpVersion bool) (trivia.Topic, error)
	GenerateItems(ctx context.Context, topicID string, count int) ([]trivia.TriviaItem, error)
	ScoreBatch(ctx context.Context, topicID string, items []trivia.TriviaItem, answers []string) (int, error)
	ScoreOne(ctx context.Context, topicID string, item trivia.TriviaItem, answer string, showSolution bool) (trivia.ScoreOneResult, error)
}

// InterviewService is the boundary the interview handlers consume.
type InterviewService interface {
	Start(ctx context.Context, sessionID, area, level string) (string, string, error)
	NextQuestion(ctx context.Context, sessionID string) (string, string, error)
	GradeAnswer(ctx context.Context, sessionID, question, answer string) (interview.GradeResult, string, error)
	Progress(sessionID string) (string, error)
}

// Config holds HTTP server configuration.
type Config struct {
	Host string
	Port int
}

// Server provides the triviad HTTP endpoints.
type Server struct {
	echo      *echo.Echo
	trivia    TriviaService
	interview InterviewService
	logger    *zap.Logger
	config    Config
}

// NewServer creates the HTTP server and registers all routes.
func NewServer(triviaSvc TriviaService, interviewSvc InterviewService, logger *zap.Logger, cfg Config) (*Server, error) {
	if triviaSvc == nil {
		return nil, fmt.Errorf("trivia service is required")
	}
	if interviewSvc == nil {
		return nil, fmt.Errorf("interview service is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.CORS())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			logger.Info("http request",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Int("status", c.Response().Status),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
			)
			return err
		}
	})

	s := &Server{
		echo:      e,
		trivia:    triviaSvc,
		interview: interviewSvc,
		logger:    logger,
		config:    cfg,
	}
	s.registerRoutes()
	return s, nil
}

func (s *Server) registerRoutes() {
	s.echo.GET("/health", s.handleHealth)
	s.echo.GET("/topics", s.handleTopics)
	s.echo.POST("/ingest", s.handleIngest)
	s.echo.POST("/trivia/generate", s.handleGenerate)
	s.echo.POST("/trivia/score", s.handleScore)
	s.echo.POST("/trivia/score-one", s.handleScoreOne)
	s.echo.POST("/interview/start", s.handleInterviewStart)
	s.echo.POST("/interview/question", s.handleInterviewNext)
	s.echo.POST("/interview/answer", s.handleInterviewGrade)
}

// Echo exposes the underlying router, mainly for tests.
func (s *Server) Echo() *echo.Echo {
	return s.echo
}

// Start runs the server until the listener fails or Shutdown is called.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.logger.Info("http server starting", zap.String("addr", addr))
	return s.echo.Start(addr)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

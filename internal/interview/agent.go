package interview

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/fyrsmithlabs/triviad/internal/extract"
	"github.com/fyrsmithlabs/triviad/internal/llm"
)

const (
	// historyTurns bounds the trailing conversation window.
	historyTurns = 2
	// historyCharBudget truncates each remembered turn.
	historyCharBudget = 180

	questionMaxTokens = 128
	gradeMaxTokens    = 320
)

// syllabus lists the themes the question generator draws from per area.
var syllabus = map[string][]string{
	AreaCoding:       {"arrays/strings", "hash maps", "stacks/queues", "trees", "graphs", "backtracking", "basic DP"},
	AreaSystemDesign: {"requirements", "APIs", "SQL/NoSQL data", "caching/partitioning", "consistency", "queues", "observability"},
	AreaBehavioral:   {"STAR", "feedback", "ownership", "learning from failure"},
}

// rubrics summarize the grading criteria per area.
var rubrics = map[string]string{
	AreaCoding:       "Correct approach; complexity; edge cases; clarity and trade-offs. Score >= 0.7 is correct.",
	AreaSystemDesign: "Requirements; APIs/data; scalability; consistency/failures; trade-offs. Score >= 0.7 is correct.",
	AreaBehavioral:   "Clear STAR; results; learning; communication. Score >= 0.7 is correct.",
}

const questionSystem = "You are a SOFTWARE interview coach. Generate ONE short, situational question. " +
	"Maximum 25 words. Do not give the answer."

const gradeSystem = "You are an evaluator. Use the area's rubric. Score in [0,1]; >= 0.7 is correct. " +
	`Return ONLY JSON: {"correct": false, "score": 0.0, "reference_model": "", "missing_key_points": [], "brief_feedback": "", "suggested_next_question": ""}`

// GradeResult is the structured grading outcome for one answer.
type GradeResult struct {
	Correct               bool     `json:"correct"`
	Score                 float64  `json:"score"`
	ReferenceModel        string   `json:"reference_model"`
	MissingKeyPoints      []string `json:"missing_key_points"`
	BriefFeedback         string   `json:"brief_feedback"`
	SuggestedNextQuestion string   `json:"suggested_next_question"`
}

// Agent generates interview questions and grades answers, adjusting the
// session difficulty from rolling performance. It consults only the
// in-memory session state, never an index.
type Agent struct {
	sessions  *SessionStore
	generator llm.Client
	extractor *extract.Extractor
	logger    *zap.Logger
}

// NewAgent creates an interview agent. The extractor is used without a
// repair pass: malformed grading output degrades to a fixed incorrect
// default.
func NewAgent(sessions *SessionStore, generator llm.Client, logger *zap.Logger) *Agent {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Agent{
		sessions:  sessions,
		generator: generator,
		extractor: extract.New(nil, logger),
		logger:    logger,
	}
}

// Start creates a session and returns its first question with the
// session level. Unknown areas and levels fall back to coding/easy.
func (a *Agent) Start(ctx context.Context, sessionID, area, level string) (string, string, error) {
	if !validArea(area) {
		area = AreaCoding
	}
	if !validLevel(level) {
		level = LevelEasy
	}
	session := a.sessions.Start(sessionID, area, level)
	return a.ask(ctx, session)
}

// NextQuestion generates the next question for an existing session.
func (a *Agent) NextQuestion(ctx context.Context, sessionID string) (string, string, error) {
	session, err := a.sessions.Get(sessionID)
	if err != nil {
		return "", "", err
	}
	return a.ask(ctx, session)
}

func (a *Agent) ask(ctx context.Context, session *Session) (string, string, error) {
	session.mu.Lock()
	defer session.mu.Unlock()

	themes := strings.Join(syllabus[session.Area], "; ")
	user := fmt.Sprintf(
		"Area: %s\nLevel: %s\nThemes: %s\nHistory (last %d):\n%s\n\nGenerate the next question.",
		session.Area, session.Level, themes, historyTurns, summarizeHistory(session.History),
	)

	raw, err := a.generator.Generate(ctx, questionSystem, user,
		llm.WithTemperature(0.1), llm.WithMaxTokens(questionMaxTokens))
	if err != nil {
		return "", "", err
	}

	question := strings.TrimSpace(raw)
	if !strings.HasSuffix(question, "?") {
		question += "?"
	}

	session.History = append(session.History, Turn{Role: "agent", Text: question})
	return question, session.Level, nil
}

// GradeAnswer grades one free-text answer, updates the session counters
// and recomputes the difficulty level. Malformed backend output
// degrades to an incorrect, zero-score default instead of failing.
func (a *Agent) GradeAnswer(ctx context.Context, sessionID, question, answer string) (GradeResult, string, error) {
	session, err := a.sessions.Get(sessionID)
	if err != nil {
		return GradeResult{}, "", err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	user := fmt.Sprintf(
		"AREA: %s\nRUBRIC:\n%s\n\nQUESTION: %s\nANSWER: %s\nLEVEL: %s",
		session.Area, rubrics[session.Area], question, answer, session.Level,
	)

	raw, err := a.generator.Generate(ctx, gradeSystem, user,
		llm.WithTemperature(0.1), llm.WithMaxTokens(gradeMaxTokens))
	if err != nil {
		return GradeResult{}, "", err
	}

	result := GradeResult{
		MissingKeyPoints: []string{},
		BriefFeedback:    "Could not evaluate the answer.",
	}
	if a.extractor.Extract(ctx, raw, &result) {
		if result.MissingKeyPoints == nil {
			result.MissingKeyPoints = []string{}
		}
	} else {
		// Fixed degraded default: incorrect, zero score.
		result = GradeResult{
			MissingKeyPoints: []string{},
			BriefFeedback:    "Could not evaluate the answer.",
		}
	}

	session.History = append(session.History, Turn{Role: "user", Text: answer})
	session.QuestionsAsked++
	if result.Correct {
		session.CorrectCount++
	}
	session.adjustLevel()

	a.logger.Debug("answer graded",
		zap.Bool("correct", result.Correct),
		zap.Float64("score", result.Score),
		zap.String("level", session.Level),
	)

	return result, session.Level, nil
}

// Progress returns "correct/asked" for a session.
func (a *Agent) Progress(sessionID string) (string, error) {
	session, err := a.sessions.Get(sessionID)
	if err != nil {
		return "", err
	}
	session.mu.Lock()
	defer session.mu.Unlock()
	return fmt.Sprintf("%d/%d", session.CorrectCount, session.QuestionsAsked), nil
}

// summarizeHistory renders the bounded trailing window of turns.
func summarizeHistory(history []Turn) string {
	if len(history) == 0 {
		return "-"
	}
	start := len(history) - historyTurns
	if start < 0 {
		start = 0
	}
	lines := make([]string, 0, historyTurns)
	for _, turn := range history[start:] {
		role := "A"
		if turn.Role == "user" {
			role = "U"
		}
		text := turn.Text
		if len([]rune(text)) > historyCharBudget {
			text = string([]rune(text)[:historyCharBudget]) + "…"
		}
		lines = append(lines, role+": "+text)
	}
	return strings.Join(lines, "\n")
}

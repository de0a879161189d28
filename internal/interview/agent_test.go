package interview

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/triviad/internal/llm"
)

type scriptedLLM struct {
	mu        sync.Mutex
	responses []string
	calls     int
	users     []string
}

func (s *scriptedLLM) Generate(ctx context.Context, system, user string, opts ...llm.Option) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.users = append(s.users, user)
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

func TestStartFallsBackToCodingEasy(t *testing.T) {
	generator := &scriptedLLM{responses: []string{"Reverse a linked list?"}}
	agent := NewAgent(NewSessionStore(), generator, zap.NewNop())

	question, level, err := agent.Start(context.Background(), "s1", "astrology", "extreme")
	require.NoError(t, err)
	assert.Equal(t, "Reverse a linked list?", question)
	assert.Equal(t, LevelEasy, level)

	session, err := agent.sessions.Get("s1")
	require.NoError(t, err)
	assert.Equal(t, AreaCoding, session.Area)
}

func TestAskAppendsQuestionMarkAndRecordsTurn(t *testing.T) {
	generator := &scriptedLLM{responses: []string{"Design a rate limiter for a public API"}}
	agent := NewAgent(NewSessionStore(), generator, zap.NewNop())

	question, level, err := agent.Start(context.Background(), "s1", AreaSystemDesign, LevelMedium)
	require.NoError(t, err)
	assert.Equal(t, "Design a rate limiter for a public API?", question)
	assert.Equal(t, LevelMedium, level)

	session, err := agent.sessions.Get("s1")
	require.NoError(t, err)
	require.Len(t, session.History, 1)
	assert.Equal(t, "agent", session.History[0].Role)
	assert.Equal(t, question, session.History[0].Text)
}

func TestNextQuestionSeesRecentHistory(t *testing.T) {
	generator := &scriptedLLM{responses: []string{
		"What is a hash map?",
		"How do hash collisions get resolved?",
	}}
	agent := NewAgent(NewSessionStore(), generator, zap.NewNop())

	_, _, err := agent.Start(context.Background(), "s1", AreaCoding, LevelEasy)
	require.NoError(t, err)

	_, _, err = agent.NextQuestion(context.Background(), "s1")
	require.NoError(t, err)

	// The second prompt carries the first question in its history window.
	require.Len(t, generator.users, 2)
	assert.Contains(t, generator.users[1], "A: What is a hash map?")
}

func TestNextQuestionUnknownSession(t *testing.T) {
	agent := NewAgent(NewSessionStore(), &scriptedLLM{}, zap.NewNop())
	_, _, err := agent.NextQuestion(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestGradeAnswerUpdatesCountersAndLevel(t *testing.T) {
	generator := &scriptedLLM{responses: []string{
		`{"correct":true,"score":0.9,"reference_model":"use two pointers","missing_key_points":[],"brief_feedback":"solid","suggested_next_question":""}`,
	}}
	agent := NewAgent(NewSessionStore(), generator, zap.NewNop())
	agent.sessions.Start("s1", AreaCoding, LevelEasy)

	result, level, err := agent.GradeAnswer(context.Background(), "s1", "Reverse a list?", "Walk it with two pointers.")
	require.NoError(t, err)
	assert.True(t, result.Correct)
	assert.Equal(t, 0.9, result.Score)
	assert.Equal(t, LevelMedium, level)

	progress, err := agent.Progress("s1")
	require.NoError(t, err)
	assert.Equal(t, "1/1", progress)

	session, err := agent.sessions.Get("s1")
	require.NoError(t, err)
	require.Len(t, session.History, 1)
	assert.Equal(t, "user", session.History[0].Role)
}

func TestGradeAnswerMalformedOutputDegrades(t *testing.T) {
	generator := &scriptedLLM{responses: []string{"I'd rather chat about the weather"}}
	agent := NewAgent(NewSessionStore(), generator, zap.NewNop())
	agent.sessions.Start("s1", AreaCoding, LevelMedium)

	result, level, err := agent.GradeAnswer(context.Background(), "s1", "q", "a")
	require.NoError(t, err)
	assert.False(t, result.Correct)
	assert.Zero(t, result.Score)
	assert.Equal(t, "Could not evaluate the answer.", result.BriefFeedback)
	assert.NotNil(t, result.MissingKeyPoints)

	// 0/1 is below the down threshold.
	assert.Equal(t, LevelEasy, level)
}

func TestGradeAnswerUnknownSession(t *testing.T) {
	agent := NewAgent(NewSessionStore(), &scriptedLLM{}, zap.NewNop())
	_, _, err := agent.GradeAnswer(context.Background(), "ghost", "q", "a")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestProgressUnknownSession(t *testing.T) {
	agent := NewAgent(NewSessionStore(), &scriptedLLM{}, zap.NewNop())
	_, err := agent.Progress("ghost")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

// Package interview implements the adaptive interview agent: one
// situational question at a time, LLM-as-judge grading, and difficulty
// self-adjustment from the rolling correctness ratio.
package interview

import "sync"

// Interview areas.
const (
	AreaCoding       = "coding"
	AreaSystemDesign = "system_design"
	AreaBehavioral   = "behavioral"
)

// Difficulty levels, ordered.
const (
	LevelEasy   = "easy"
	LevelMedium = "medium"
	LevelHard   = "hard"
)

// Turn is one conversational exchange kept for question context.
type Turn struct {
	Role string `json:"role"` // "user" or "agent"
	Text string `json:"text"`
}

// Session is the per-interview state. Mutated only by the grading step.
// The embedded mutex serializes concurrent requests on the same session.
type Session struct {
	mu sync.Mutex

	Area           string
	Level          string
	History        []Turn
	QuestionsAsked int
	CorrectCount   int
}

// correctRatio is the rolling correctness ratio over graded answers.
func (s *Session) correctRatio() float64 {
	if s.QuestionsAsked == 0 {
		return 0
	}
	return float64(s.CorrectCount) / float64(s.QuestionsAsked)
}

// adjustLevel steps the difficulty one notch: ratio >= 0.8 moves up
// (capped at hard), ratio <= 0.4 moves down (capped at easy), anything
// between leaves the level unchanged.
func (s *Session) adjustLevel() {
	r := s.correctRatio()
	switch {
	case r >= 0.8 && s.Level != LevelHard:
		if s.Level == LevelMedium {
			s.Level = LevelHard
		} else {
			s.Level = LevelMedium
		}
	case r <= 0.4 && s.Level != LevelEasy:
		if s.Level == LevelMedium {
			s.Level = LevelEasy
		} else {
			s.Level = LevelMedium
		}
	}
}

// validArea reports whether the area is one of the known interview areas.
func validArea(area string) bool {
	switch area {
	case AreaCoding, AreaSystemDesign, AreaBehavioral:
		return true
	}
	return false
}

// validLevel reports whether the level is a known difficulty.
func validLevel(level string) bool {
	switch level {
	case LevelEasy, LevelMedium, LevelHard:
		return true
	}
	return false
}

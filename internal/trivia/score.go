package trivia

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"go.uber.org/zap"

	"github.com/fyrsmithlabs/triviad/internal/llm"
)

// packedItem bundles one question with its grading material for the
// batch-scoring call.
type packedItem struct {
	Question  string   `json:"q"`
	Gold      string   `json:"gold"`
	KeyPoints []string `json:"keys"`
	Context   string   `json:"ctx"`
	User      string   `json:"user"`
}

// scoresEnvelope is the JSON shape the batch-scoring prompt demands.
// Entries are decoded loosely so one malformed score degrades to 0.0
// instead of discarding the whole list.
type scoresEnvelope struct {
	Scores []any `json:"scores"`
}

// ScoreBatch grades exactly 5 open-text answers against retrieved
// per-question context in a single generation call and returns one
// aggregate percentage in [0,100]. Missing or malformed scores default
// to 0.0; extra entries are dropped.
func (s *Service) ScoreBatch(ctx context.Context, topicID string, items []TriviaItem, answers []string) (int, error) {
	if len(items) != batchSize || len(answers) != batchSize {
		return 0, ErrBatchSize
	}
	if _, err := s.ensureIndexed(ctx, topicID); err != nil {
		return 0, err
	}

	packed := make([]packedItem, 0, batchSize)
	for i, item := range items {
		hits, err := s.retrieve(ctx, topicID, item.Question, gradeChunks)
		if err != nil {
			return 0, err
		}
		packed = append(packed, packedItem{
			Question:  item.Question,
			Gold:      item.AnswerGold,
			KeyPoints: item.KeyPoints,
			Context:   buildContext(hits, gradeChunks, gradeCharBudget),
			User:      answers[i],
		})
	}

	bundle, err := json.Marshal(packed)
	if err != nil {
		return 0, fmt.Errorf("packing score bundle: %w", err)
	}

	raw, err := s.generator.Generate(ctx, scoreBatchSystem, string(bundle), llm.WithTemperature(0))
	if err != nil {
		return 0, err
	}

	var envelope scoresEnvelope
	s.extractor.Extract(ctx, raw, &envelope)

	scores := make([]float64, batchSize)
	for i := 0; i < batchSize && i < len(envelope.Scores); i++ {
		scores[i] = coerceScore(envelope.Scores[i])
	}

	var sum float64
	for _, sc := range scores {
		sum += sc
	}
	final := int(math.Round(sum / batchSize * 100))
	if final < 0 {
		final = 0
	}
	if final > 100 {
		final = 100
	}

	s.logger.Debug("batch scored",
		zap.String("topic_id", topicID),
		zap.Int("final", final),
	)
	return final, nil
}

// scoreOneEnvelope is the JSON shape the single-item grading prompt
// demands. Zero values double as the degraded defaults.
type scoreOneEnvelope struct {
	ScoreItem float64  `json:"score_item"`
	Rubric    Rubric   `json:"rubric"`
	Feedback  Feedback `json:"feedback"`
	Solution  Solution `json:"solution"`
}

// ScoreOne grades a single open-text answer with a full rubric
// breakdown. The score is clamped to [0,1], rubric and feedback
// sub-fields are defaulted when absent, and the show_solution contract
// is enforced over whatever the backend proposed.
func (s *Service) ScoreOne(ctx context.Context, topicID string, item TriviaItem, answer string, showSolution bool) (ScoreOneResult, error) {
	if _, err := s.ensureIndexed(ctx, topicID); err != nil {
		return ScoreOneResult{}, err
	}

	hits, err := s.retrieve(ctx, topicID, item.Question, gradeChunks)
	if err != nil {
		return ScoreOneResult{}, err
	}
	grounding := buildContext(hits, gradeChunks, gradeCharBudget)

	keys, err := json.Marshal(item.KeyPoints)
	if err != nil {
		keys = []byte("[]")
	}
	user := fmt.Sprintf(
		"CONTEXT:\n%s\n\nQUESTION:\n%s\n\nGOLD (correct summary):\n%s\n\nKEY_POINTS (must be covered):\n%s\n\nUSER_ANSWER:\n%s\n\nshow_solution=%t",
		grounding, item.Question, item.AnswerGold, keys, answer, showSolution,
	)

	raw, err := s.generator.Generate(ctx, scoreOneSystem, user, llm.WithTemperature(0))
	if err != nil {
		return ScoreOneResult{}, err
	}

	var envelope scoreOneEnvelope
	s.extractor.Extract(ctx, raw, &envelope)

	score := envelope.ScoreItem
	if score < 0 || math.IsNaN(score) {
		score = 0
	}
	if score > 1 {
		score = 1
	}

	result := ScoreOneResult{
		ScoreItem:        score,
		ScoreItemPercent: int(math.Round(score * 100)),
		Rubric:           envelope.Rubric,
		Feedback:         envelope.Feedback,
	}
	if result.Feedback.Strengths == nil {
		result.Feedback.Strengths = []string{}
	}
	if result.Feedback.Gaps == nil {
		result.Feedback.Gaps = []string{}
	}
	if result.Feedback.Suggestions == nil {
		result.Feedback.Suggestions = []string{}
	}

	if !showSolution {
		result.Solution = Solution{ShowSolution: false}
	} else {
		gold := item.AnswerGold
		if envelope.Solution.AnswerGold != nil && *envelope.Solution.AnswerGold != "" {
			gold = *envelope.Solution.AnswerGold
		}
		explanation := item.Explanation
		if envelope.Solution.Explanation != nil && *envelope.Solution.Explanation != "" {
			explanation = *envelope.Solution.Explanation
		}
		result.Solution = Solution{
			ShowSolution: true,
			AnswerGold:   &gold,
			Explanation:  &explanation,
		}
	}

	return result, nil
}

// coerceScore converts one backend-proposed score to a float in the
// spirit of "malformed defaults to 0.0". Strings holding numbers are
// accepted; anything else is 0.
func coerceScore(v any) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case string:
		f, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return 0
		}
		return f
	case json.Number:
		f, err := val.Float64()
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// Package trivia implements the retrieval-grounded trivia generation
// and grading pipeline: topic-scoped indexing, context retrieval,
// prompt-driven item generation and LLM-as-judge scoring.
package trivia

// Difficulty levels for generated items.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Source is one immutable source document owned by a topic.
type Source struct {
	SourceID string `json:"source_id"`
	Title    string `json:"title"`
	Content  string `json:"content"`
}

// Topic is a named subject area with a versioned set of sources. The
// version increments whenever sources are added (unless suppressed) and
// keys the topic's index rebuild.
type Topic struct {
	TopicID string   `json:"id"`
	Name    string   `json:"name"`
	Lang    string   `json:"lang"`
	Version int      `json:"version"`
	Sources []Source `json:"-"`
}

// Citation points a generated item back at source material. Populated
// by callers, not required by generation.
type Citation struct {
	SourceID string `json:"source_id"`
	Title    string `json:"title,omitempty"`
	Loc      string `json:"loc,omitempty"`
	Snippet  string `json:"snippet,omitempty"`
}

// TriviaItem is one grounded question with its gold answer.
type TriviaItem struct {
	Question    string     `json:"question"`
	AnswerGold  string     `json:"answer_gold"`
	KeyPoints   []string   `json:"key_points"`
	Explanation string     `json:"explanation"`
	Difficulty  string     `json:"difficulty"`
	Citations   []Citation `json:"citations"`
}

// placeholderItem is the inert item used to pad generation shortfalls.
func placeholderItem() TriviaItem {
	return TriviaItem{
		KeyPoints:  []string{},
		Difficulty: DifficultyMedium,
		Citations:  []Citation{},
	}
}

// Rubric holds the per-criterion scores proposed by the grading
// backend. Each criterion is in [0,1]; the values are not required to
// sum to anything.
type Rubric struct {
	Accuracy float64 `json:"accuracy"`
	Coverage float64 `json:"coverage"`
	Clarity  float64 `json:"clarity"`
}

// Feedback holds the structured grading feedback lists.
type Feedback struct {
	Strengths   []string `json:"strengths"`
	Gaps        []string `json:"gaps"`
	Suggestions []string `json:"suggestions"`
}

// Solution carries conditional disclosure of the gold answer. When
// ShowSolution is false, AnswerGold and Explanation are nil regardless
// of what the grading backend proposed.
type Solution struct {
	ShowSolution bool    `json:"show_solution"`
	AnswerGold   *string `json:"answer_gold"`
	Explanation  *string `json:"explanation"`
}

// ScoreOneResult is the full single-item grading breakdown.
type ScoreOneResult struct {
	ScoreItem        float64  `json:"score_item"`
	ScoreItemPercent int      `json:"score_item_percent"`
	Rubric           Rubric   `json:"rubric"`
	Feedback         Feedback `json:"feedback"`
	Solution         Solution `json:"solution"`
}

package trivia

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/fyrsmithlabs/triviad/internal/llm"
)

// itemsEnvelope is the JSON shape the generation prompt demands.
type itemsEnvelope struct {
	Items []TriviaItem `json:"items"`
}

// GenerateItems produces exactly count grounded question items for a
// topic. A shortfall triggers one retry for the missing amount; any
// remaining deficit is padded with inert placeholder items so the
// caller always receives exactly count items. Overshoot is truncated.
//
// Returns ErrTopicNotFound, ErrBadCount, ErrNoSources, or a backend
// failure; generation malformedness never surfaces as an error.
func (s *Service) GenerateItems(ctx context.Context, topicID string, count int) ([]TriviaItem, error) {
	if count < 1 || count > 10 {
		return nil, ErrBadCount
	}
	if _, err := s.ensureIndexed(ctx, topicID); err != nil {
		return nil, err
	}

	items, err := s.generateOnce(ctx, topicID, count)
	if err != nil {
		return nil, err
	}
	if len(items) < count {
		s.logger.Warn("generation shortfall, retrying",
			zap.String("topic_id", topicID),
			zap.Int("requested", count),
			zap.Int("got", len(items)),
		)
		more, err := s.generateOnce(ctx, topicID, count-len(items))
		if err != nil {
			return nil, err
		}
		items = append(items, more...)
	}

	for len(items) < count {
		items = append(items, placeholderItem())
	}
	items = items[:count]

	for i := range items {
		normalizeItem(&items[i])
	}
	return items, nil
}

// generateOnce issues one generation call and parses up to count items
// from it.
func (s *Service) generateOnce(ctx context.Context, topicID string, count int) ([]TriviaItem, error) {
	hits, err := s.retrieve(ctx, topicID, fmt.Sprintf("Key themes of topic %s", topicID), s.retrieval.K)
	if err != nil {
		return nil, err
	}
	grounding := buildContext(hits, contextChunks, contextCharBudget)

	user := fmt.Sprintf("CONTEXT:\n%s\n\nGenerate exactly %d questions now.", grounding, count)
	raw, err := s.generator.Generate(ctx, generateSystem, user, llm.WithTemperature(0))
	if err != nil {
		return nil, err
	}

	var envelope itemsEnvelope
	s.extractor.Extract(ctx, raw, &envelope)

	items := envelope.Items
	if len(items) > count {
		items = items[:count]
	}
	return items, nil
}

// normalizeItem fills nil collections and clamps difficulty to the
// known levels so results are always well-typed.
func normalizeItem(item *TriviaItem) {
	if item.KeyPoints == nil {
		item.KeyPoints = []string{}
	}
	if item.Citations == nil {
		item.Citations = []Citation{}
	}
	switch item.Difficulty {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
	default:
		item.Difficulty = DifficultyMedium
	}
}

// Package extract recovers well-formed JSON from raw generator text.
//
// Text-generation backends asked for JSON routinely wrap it in markdown
// fences or prose, or emit something almost-parseable. The extractor
// runs an explicit ordered list of strategies, first success wins:
//
//  1. fenced ```json code block
//  2. greedy {...} span over the raw text
//  3. one repair call asking the backend to re-emit strict JSON
//
// If every strategy fails the caller's pre-filled default is left
// untouched. Extraction never returns an error: callers have defined
// degraded fallbacks (padding, zero scores).
package extract

import (
	"context"
	"encoding/json"
	"reflect"
	"regexp"

	"go.uber.org/zap"

	"github.com/fyrsmithlabs/triviad/internal/llm"
)

var (
	fenceRe = regexp.MustCompile("(?s)```json\\s*(\\{.*?\\})\\s*```")
	braceRe = regexp.MustCompile(`(?s)\{.*\}`)
)

const repairSystem = "Return ONLY valid JSON, strictly parseable by a standard JSON parser. " +
	"Reproduce the content of the user message as a single JSON object. " +
	"No markdown, no code fences, no text outside the JSON."

// Extractor recovers structured data from unreliable generator output.
type Extractor struct {
	repairer llm.Client // nil disables the repair pass
	logger   *zap.Logger
}

// New creates an Extractor. A nil repairer skips the repair stage, so
// malformed output degrades straight to the caller's default.
func New(repairer llm.Client, logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{repairer: repairer, logger: logger}
}

// Extract parses one JSON object out of raw into out. It reports
// whether any strategy produced parseable JSON; on false, out keeps
// whatever defaults the caller seeded it with.
func (x *Extractor) Extract(ctx context.Context, raw string, out any) bool {
	type strategy struct {
		name string
		run  func() (string, bool)
	}

	stages := []strategy{
		{"fence", func() (string, bool) {
			m := fenceRe.FindStringSubmatch(raw)
			if m == nil {
				return "", false
			}
			return m[1], true
		}},
		{"brace", func() (string, bool) {
			m := braceRe.FindString(raw)
			if m == "" {
				return "", false
			}
			return m, true
		}},
		{"repair", func() (string, bool) {
			if x.repairer == nil {
				return "", false
			}
			repaired, err := x.repairer.Generate(ctx, repairSystem, raw, llm.WithTemperature(0))
			if err != nil {
				x.logger.Warn("json repair call failed", zap.Error(err))
				return "", false
			}
			return repaired, true
		}},
	}

	for _, stage := range stages {
		candidate, ok := stage.run()
		if !ok {
			continue
		}
		if decode(candidate, out) {
			return true
		}
		x.logger.Debug("extraction stage produced unparseable JSON",
			zap.String("stage", stage.name),
		)
	}

	x.logger.Warn("all extraction stages failed, keeping defaults",
		zap.Int("raw_chars", len(raw)),
	)
	return false
}

// decode parses candidate into out. The candidate is validated against
// a fresh value of out's type first: a type-mismatched field would
// otherwise leave out partially populated, because json.Unmarshal
// writes fields until it hits the bad one.
func decode(candidate string, out any) bool {
	rv := reflect.ValueOf(out)
	if rv.Kind() == reflect.Pointer && !rv.IsNil() {
		fresh := reflect.New(rv.Elem().Type()).Interface()
		if err := json.Unmarshal([]byte(candidate), fresh); err != nil {
			return false
		}
	}
	return json.Unmarshal([]byte(candidate), out) == nil
}

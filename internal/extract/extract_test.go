package extract_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/triviad/internal/extract"
	"github.com/fyrsmithlabs/triviad/internal/llm"
)

type stubRepairer struct {
	response string
	err      error
	calls    int
}

func (s *stubRepairer) Generate(ctx context.Context, system, user string, opts ...llm.Option) (string, error) {
	s.calls++
	return s.response, s.err
}

var _ llm.Client = (*stubRepairer)(nil)

type payload struct {
	Answer string `json:"answer"`
	Score  int    `json:"score"`
}

func TestExtractFencedJSON(t *testing.T) {
	repairer := &stubRepairer{}
	x := extract.New(repairer, zap.NewNop())

	raw := "Here you go:\n```json\n{\"answer\":\"42\",\"score\":7}\n```\nhope that helps"
	var out payload
	require.True(t, x.Extract(context.Background(), raw, &out))
	assert.Equal(t, "42", out.Answer)
	assert.Equal(t, 7, out.Score)
	assert.Zero(t, repairer.calls)
}

func TestExtractBraceSpan(t *testing.T) {
	x := extract.New(nil, zap.NewNop())

	raw := `The grading result is {"answer":"ok","score":3}. Let me know if you need more.`
	var out payload
	require.True(t, x.Extract(context.Background(), raw, &out))
	assert.Equal(t, "ok", out.Answer)
	assert.Equal(t, 3, out.Score)
}

func TestExtractRepairPass(t *testing.T) {
	repairer := &stubRepairer{response: `{"answer":"repaired","score":1}`}
	x := extract.New(repairer, zap.NewNop())

	var out payload
	require.True(t, x.Extract(context.Background(), "score: 1, answer: repaired", &out))
	assert.Equal(t, "repaired", out.Answer)
	assert.Equal(t, 1, repairer.calls)
}

func TestExtractFailureKeepsDefaults(t *testing.T) {
	repairer := &stubRepairer{response: "still not json"}
	x := extract.New(repairer, zap.NewNop())

	out := payload{Answer: "default", Score: -1}
	require.False(t, x.Extract(context.Background(), "total nonsense", &out))
	assert.Equal(t, "default", out.Answer)
	assert.Equal(t, -1, out.Score)
	assert.Equal(t, 1, repairer.calls)
}

func TestExtractTypeMismatchKeepsDefaults(t *testing.T) {
	x := extract.New(nil, zap.NewNop())

	// Syntactically valid JSON whose score field has the wrong type must
	// not leak its good fields into out.
	out := payload{Answer: "default", Score: -1}
	raw := `{"answer":"partial","score":"not-a-number"}`
	require.False(t, x.Extract(context.Background(), raw, &out))
	assert.Equal(t, "default", out.Answer)
	assert.Equal(t, -1, out.Score)
}

func TestExtractTypeMismatchStillRepairs(t *testing.T) {
	repairer := &stubRepairer{response: `{"answer":"fixed","score":4}`}
	x := extract.New(repairer, zap.NewNop())

	var out payload
	raw := `{"answer":"partial","score":"not-a-number"}`
	require.True(t, x.Extract(context.Background(), raw, &out))
	assert.Equal(t, "fixed", out.Answer)
	assert.Equal(t, 4, out.Score)
	assert.Equal(t, 1, repairer.calls)
}

func TestExtractNilRepairerSkipsRepair(t *testing.T) {
	x := extract.New(nil, zap.NewNop())

	out := payload{Answer: "default"}
	require.False(t, x.Extract(context.Background(), "no json anywhere", &out))
	assert.Equal(t, "default", out.Answer)
}

func TestExtractMalformedFenceFallsThroughToBraces(t *testing.T) {
	x := extract.New(nil, zap.NewNop())

	// The fenced block holds no object at all; the brace span over the
	// surrounding text still finds a parseable one.
	raw := "```json\nnot an object\n```\n{\"answer\":\"fallback\",\"score\":2}"
	var out payload
	require.True(t, x.Extract(context.Background(), raw, &out))
	assert.Equal(t, "fallback", out.Answer)
}

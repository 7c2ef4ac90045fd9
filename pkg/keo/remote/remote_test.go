package remote

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cognicore/keo/internal/llm"
	"github.com/cognicore/keo/pkg/keo/analytics"
	"github.com/cognicore/keo/pkg/keo/compose"
	"github.com/cognicore/keo/pkg/keo/journal"
)

type stubCompleter struct {
	out   string
	err   error
	calls int
	last  llm.Request
}

func (s *stubCompleter) Complete(_ context.Context, req llm.Request) (string, error) {
	s.calls++
	s.last = req
	return s.out, s.err
}

func newStrategy(t *testing.T, c llm.Completer, opts ...Option) *Strategy {
	t.Helper()
	s, err := New(c, opts...)
	require.NoError(t, err)
	return s
}

func TestAnalyzeUsesModelOutput(t *testing.T) {
	stub := &stubCompleter{out: `{
		"summary": "A good day at work.",
		"emotions": [{"emotion": "Proud", "intensity": 1.4, "description": "promotion"}],
		"themes": [{"theme": "work", "relevance": 0.9, "description": "job"}],
		"sentiment_score": 0.9,
		"sentiment_trend": "negative",
		"key_insights": ["You celebrated a win."],
		"growth_areas": [],
		"support_suggestions": ["Keep it up."]
	}`}
	s := newStrategy(t, stub)

	related := []journal.Match{{Document: journal.Document{Text: "yesterday I prepared slides"}, Score: 0.4}}
	got := s.Analyze(context.Background(), "I got promoted today", related)

	assert.Equal(t, "A good day at work.", got.Summary)
	require.Len(t, got.Emotions, 1)
	assert.Equal(t, "proud", got.Emotions[0].Name)
	assert.Equal(t, 1.0, got.Emotions[0].Intensity)
	assert.Equal(t, journal.LabelPositive, got.SentimentTrend, "label follows score")
	assert.Equal(t, compose.Fallback("").GrowthAreas, got.GrowthAreas)
	assert.Equal(t, "journal_insight", stub.last.SchemaName)
	assert.Contains(t, stub.last.Input, "yesterday I prepared slides")
	assert.NotNil(t, stub.last.Schema)
}

func TestAnalyzeFallsBack(t *testing.T) {
	cases := []struct {
		name string
		stub *stubCompleter
	}{
		{"transport error", &stubCompleter{err: errors.New("connection refused")}},
		{"not json", &stubCompleter{out: "I'm sorry, I can't help with that."}},
		{"empty summary", &stubCompleter{out: `{"summary": "", "sentiment_score": 0.5}`}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := newStrategy(t, tc.stub)
			text := "Today was long and I feel tired after everything"
			assert.Equal(t, compose.Fallback(text), s.Analyze(context.Background(), text, nil))

			got, err := s.TryAnalyze(context.Background(), text, nil)
			assert.Error(t, err)
			assert.Equal(t, compose.Fallback(text), got)
		})
	}
}

func TestTryAnalyzeReportsSuccess(t *testing.T) {
	s := newStrategy(t, &stubCompleter{out: `{"summary": "ok", "sentiment_score": 0.5}`})
	got, err := s.TryAnalyze(context.Background(), "a calm evening", nil)
	require.NoError(t, err)
	assert.Equal(t, "ok", got.Summary)

	_, err = s.TryAnalyze(context.Background(), "   ", nil)
	assert.NoError(t, err, "blank input is answered, not failed")
}

func TestAnalyzeBlankSkipsModel(t *testing.T) {
	stub := &stubCompleter{}
	s := newStrategy(t, stub)
	assert.Equal(t, compose.Fallback("  "), s.Analyze(context.Background(), "  ", nil))
	assert.Zero(t, stub.calls)
}

func TestAnalyzeFillsMissingSignals(t *testing.T) {
	stub := &stubCompleter{out: `{"summary": "ok", "emotions": [{"emotion": " ", "intensity": 0.3}], "themes": [], "sentiment_score": -2}`}
	got := newStrategy(t, stub).Analyze(context.Background(), "some words here", nil)

	assert.Equal(t, 0.0, got.SentimentScore)
	assert.Equal(t, journal.LabelNegative, got.SentimentTrend)
	require.Len(t, got.Emotions, 1)
	assert.Equal(t, "reflective", got.Emotions[0].Name)
	require.Len(t, got.Themes, 1)
	assert.Equal(t, "personal_reflection", got.Themes[0].Name)
	assert.NotEmpty(t, got.KeyInsights)
}

func docs(n int) []journal.Document {
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	out := make([]journal.Document, n)
	for i := range out {
		out[i] = journal.Document{ID: int64(i + 1), Text: "entry text", Timestamp: base.Add(time.Duration(i) * 24 * time.Hour)}
	}
	return out
}

func TestTrends(t *testing.T) {
	stub := &stubCompleter{out: `{
		"overall_sentiment_trend": "Improving",
		"dominant_themes": [{"name": "work", "frequency": 0.6}, {"name": "health", "frequency": 0.4},
			{"name": "travel", "frequency": 0.2}, {"name": "family", "frequency": 0.2}],
		"emotional_patterns": [{"name": "happy", "frequency": 2}],
		"growth_indicators": ["steady"],
		"areas_of_concern": [],
		"recommendations": ["rest"],
		"insights_summary": "Things are looking up."
	}`}
	got := newStrategy(t, stub).Trends(context.Background(), docs(4))

	assert.Equal(t, journal.TrendImproving, got.OverallSentimentTrend)
	assert.Len(t, got.DominantThemes, 3)
	assert.Equal(t, 1.0, got.EmotionalPatterns[0].Frequency)
	assert.Equal(t, []string{}, got.AreasOfConcern)
	assert.True(t, strings.Contains(stub.last.Input, "[2026-03-01]"))
}

func TestTrendsFallsBack(t *testing.T) {
	stub := &stubCompleter{out: `{"overall_sentiment_trend": "sideways"}`}
	s := newStrategy(t, stub)
	assert.Equal(t, analytics.NotEnoughData(), s.Trends(context.Background(), docs(4)))

	stub = &stubCompleter{}
	s = newStrategy(t, stub)
	assert.Equal(t, analytics.NotEnoughData(), s.Trends(context.Background(), docs(2)))
	assert.Zero(t, stub.calls, "small batches never reach the model")
}

func TestRateLimitHonoursContext(t *testing.T) {
	stub := &stubCompleter{out: `{"summary": "ok", "sentiment_score": 0.5}`}
	s := newStrategy(t, stub, WithRatePerMinute(1))

	// first call takes the only token
	s.Analyze(context.Background(), "first entry", nil)
	require.Equal(t, 1, stub.calls)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	got := s.Analyze(ctx, "second entry", nil)
	assert.Equal(t, compose.Fallback("second entry"), got)
	assert.Equal(t, 1, stub.calls)
}

func TestNewRejectsNilCompleter(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)
}

package analytics

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cognicore/keo/pkg/keo/journal"
	"github.com/cognicore/keo/pkg/keo/stoplist"
)

func texts(ts ...string) []journal.Document {
	docs := make([]journal.Document, len(ts))
	for i, t := range ts {
		docs[i] = journal.Document{ID: int64(i + 1), Text: t}
	}
	return docs
}

func TestTrendsNotEnoughData(t *testing.T) {
	a := NewAggregator(nil, nil, Options{})
	for _, docs := range [][]journal.Document{nil, texts("happy"), texts("happy", "sad")} {
		r := a.Trends(context.Background(), docs)
		assert.Equal(t, journal.TrendNotEnoughData, r.OverallSentimentTrend)
		assert.Empty(t, r.DominantThemes)
		assert.NotNil(t, r.DominantThemes)
		assert.Empty(t, r.EmotionalPatterns)
		assert.Empty(t, r.GrowthIndicators)
		assert.Empty(t, r.AreasOfConcern)
		assert.Equal(t, []string{notEnoughRecommendation}, r.Recommendations)
		assert.Equal(t, notEnoughSummary, r.InsightsSummary)
	}
}

func TestTrendsAllPositiveNeverDeclines(t *testing.T) {
	a := NewAggregator(nil, nil, Options{})
	r := a.Trends(context.Background(), texts("happy", "happy happy", "great"))
	assert.Contains(t, []string{journal.TrendStable, journal.TrendImproving}, r.OverallSentimentTrend)
	assert.Empty(t, r.AreasOfConcern)
	assert.Equal(t, []string{growthIndicator}, r.GrowthIndicators)
	assert.Equal(t, []string{trendRecommendation}, r.Recommendations)
}

func TestTrendsDeclining(t *testing.T) {
	a := NewAggregator(nil, nil, Options{})
	docs := texts("happy", "happy", "happy", "happy", "happy", "sad", "sad", "sad", "sad", "sad")
	r := a.Trends(context.Background(), docs)
	assert.Equal(t, journal.TrendDeclining, r.OverallSentimentTrend)
	assert.Equal(t, []string{decliningConcern}, r.AreasOfConcern)
	assert.True(t, strings.HasPrefix(r.InsightsSummary, "Your recent entries show a declining emotional trend."))
}

func TestTrendsImproving(t *testing.T) {
	a := NewAggregator(nil, nil, Options{})
	docs := texts("sad", "sad", "sad", "sad", "sad", "sad", "happy", "happy", "happy", "happy", "happy")
	r := a.Trends(context.Background(), docs)
	assert.Equal(t, journal.TrendImproving, r.OverallSentimentTrend)
	assert.Empty(t, r.AreasOfConcern)
}

func TestTrendsOrdersByTimestamp(t *testing.T) {
	a := NewAggregator(nil, nil, Options{RecentWindow: 1})
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	docs := []journal.Document{
		{ID: 3, Text: "happy", Timestamp: base.Add(48 * time.Hour)},
		{ID: 1, Text: "sad", Timestamp: base},
		{ID: 2, Text: "sad", Timestamp: base.Add(24 * time.Hour)},
	}
	r := a.Trends(context.Background(), docs)
	assert.Equal(t, journal.TrendImproving, r.OverallSentimentTrend)
}

func TestTrendsFrequencies(t *testing.T) {
	a := NewAggregator(nil, nil, Options{})
	r := a.Trends(context.Background(), texts("Work deadline today.", "Another work meeting.", "Family dinner."))
	require.Len(t, r.DominantThemes, 2)
	assert.Equal(t, "work", r.DominantThemes[0].Name)
	assert.InDelta(t, 2.0/3.0, r.DominantThemes[0].Frequency, 1e-12)
	assert.Equal(t, "relationships", r.DominantThemes[1].Name)
	assert.InDelta(t, 1.0/3.0, r.DominantThemes[1].Frequency, 1e-12)

	require.Len(t, r.EmotionalPatterns, 1)
	assert.Equal(t, "reflective", r.EmotionalPatterns[0].Name)
	assert.InDelta(t, 1.0, r.EmotionalPatterns[0].Frequency, 1e-12)

	assert.Equal(t,
		"Your recent entries show a stable emotional trend. The most common themes are work, relationships, with emotions like reflective appearing often.",
		r.InsightsSummary)
}

func TestTrendsIgnoresCancellation(t *testing.T) {
	a := NewAggregator(nil, nil, Options{})
	batch := texts("Work deadline today.", "Another work meeting.", "Family dinner.")
	want := a.Trends(context.Background(), batch)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	got := a.Trends(ctx, batch)
	assert.NotEqual(t, journal.TrendNotEnoughData, got.OverallSentimentTrend)
	assert.Equal(t, want, got)
}

func TestDirection(t *testing.T) {
	assert.Equal(t, journal.TrendStable, Direction([]float64{0.5, 0.5, 0.5}, 5, 0.05))
	assert.Equal(t, journal.TrendStable, Direction(nil, 5, 0.05))
	// no earlier scores: the series is compared with itself
	assert.Equal(t, journal.TrendStable, Direction([]float64{0.1, 0.9, 0.2}, 5, 0.05))
	assert.Equal(t, journal.TrendImproving, Direction([]float64{0.2, 0.2, 0.8}, 1, 0.05))
	assert.Equal(t, journal.TrendDeclining, Direction([]float64{0.8, 0.8, 0.2}, 1, 0.05))
	// exactly delta apart is still stable
	assert.Equal(t, journal.TrendStable, Direction([]float64{0.5, 0.5625}, 1, 0.0625))
}

func TestKeywordCloud(t *testing.T) {
	docs := texts(
		"Coffee with Sam, then coffee again at 3pm.",
		"More coffee and a long walk in 2024. Walk walk.",
		"The a an of to",
	)
	cloud := KeywordCloud(docs, 10, stoplist.Default())
	require.NotEmpty(t, cloud)
	assert.Equal(t, "coffee", cloud[0].Word)
	assert.Equal(t, 3, cloud[0].Count)
	assert.Equal(t, 1.0, cloud[0].Weight)
	assert.Equal(t, "walk", cloud[1].Word)
	assert.InDelta(t, 1.0, cloud[1].Weight, 1e-12)

	stops := stoplist.Default()
	for _, kw := range cloud {
		assert.GreaterOrEqual(t, len([]rune(kw.Word)), 3, kw.Word)
		assert.False(t, stops.IsStop(kw.Word), kw.Word)
		assert.NotEqual(t, "2024", kw.Word)
		assert.LessOrEqual(t, kw.Weight, 1.0)
		assert.Greater(t, kw.Weight, 0.0)
	}
}

func TestKeywordCloudTopNAndTies(t *testing.T) {
	cloud := KeywordCloud(texts("alpha beta gamma delta"), 2, nil)
	require.Len(t, cloud, 2)
	assert.Equal(t, "alpha", cloud[0].Word)
	assert.Equal(t, "beta", cloud[1].Word)
	assert.Equal(t, 1.0, cloud[1].Weight)
}

func TestKeywordCloudEmpty(t *testing.T) {
	assert.Empty(t, KeywordCloud(nil, 5, nil))
	assert.Empty(t, KeywordCloud(texts("", "a an 12 99"), 5, nil))
}

// Package journal holds the data model shared by the insight engine:
// documents flowing in, and the insight and trend reports flowing out.
package journal

import "time"

// Document is a single journal entry as seen by the analyzer.
// The engine never persists documents; the caller owns them.
type Document struct {
	ID        int64     `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Title     string    `json:"title,omitempty"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
	// Version changes whenever Text changes (last-modified time).
	Version time.Time `json:"version"`
}

// Match is a candidate document scored against a query.
type Match struct {
	Document Document `json:"document"`
	Score    float64  `json:"score"`
}

// Emotion is a detected emotion with its intensity in [0,1].
type Emotion struct {
	Name      string  `json:"emotion"`
	Intensity float64 `json:"intensity"`
	Evidence  string  `json:"description"`
}

// Theme is a detected theme with its relevance in [0,1].
type Theme struct {
	Name      string  `json:"theme"`
	Relevance float64 `json:"relevance"`
	Evidence  string  `json:"description"`
}

// Sentiment labels for a single entry.
const (
	LabelPositive = "positive"
	LabelNeutral  = "neutral"
	LabelNegative = "negative"
)

// Trend directions for a batch of entries.
const (
	TrendImproving     = "improving"
	TrendDeclining     = "declining"
	TrendStable        = "stable"
	TrendNotEnoughData = "not_enough_data"
)

// Insight is the structured report for one entry. Every field is populated.
type Insight struct {
	Summary            string    `json:"summary"`
	Emotions           []Emotion `json:"emotions"`
	Themes             []Theme   `json:"themes"`
	SentimentScore     float64   `json:"sentiment_score"`
	SentimentTrend     string    `json:"sentiment_trend"`
	KeyInsights        []string  `json:"key_insights"`
	GrowthAreas        []string  `json:"growth_areas"`
	SupportSuggestions []string  `json:"support_suggestions"`
}

// Frequency is the share of documents in a batch where a category appeared.
type Frequency struct {
	Name      string  `json:"name"`
	Frequency float64 `json:"frequency"`
}

// TrendReport summarises a batch of entries.
type TrendReport struct {
	OverallSentimentTrend string      `json:"overall_sentiment_trend"`
	DominantThemes        []Frequency `json:"dominant_themes"`
	EmotionalPatterns     []Frequency `json:"emotional_patterns"`
	GrowthIndicators      []string    `json:"growth_indicators"`
	AreasOfConcern        []string    `json:"areas_of_concern"`
	Recommendations       []string    `json:"recommendations"`
	InsightsSummary       string      `json:"insights_summary"`
}

// Keyword is one entry of a keyword cloud.
type Keyword struct {
	Word   string  `json:"word"`
	Count  int     `json:"count"`
	Weight float64 `json:"weight"`
}

// Label maps a sentiment score to its label.
func Label(score float64) string {
	switch {
	case score > 0.6:
		return LabelPositive
	case score < 0.4:
		return LabelNegative
	default:
		return LabelNeutral
	}
}

// Clamp01 bounds v to [0,1].
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

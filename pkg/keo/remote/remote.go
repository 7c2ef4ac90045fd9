// Package remote analyzes entries with a hosted language model. Results are
// validated and clamped into the same shapes the lexical analyzer produces;
// anything unusable degrades to the fixed fallback reports.
package remote

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/cognicore/keo/internal/llm"
	"github.com/cognicore/keo/internal/logger"
	"github.com/cognicore/keo/pkg/keo"
	"github.com/cognicore/keo/pkg/keo/analytics"
	"github.com/cognicore/keo/pkg/keo/compose"
	"github.com/cognicore/keo/pkg/keo/internalerr"
	"github.com/cognicore/keo/pkg/keo/journal"
	"github.com/cognicore/keo/pkg/keo/signals"
)

var _ keo.FallibleStrategy = (*Strategy)(nil)

const (
	maxRelated      = 5
	excerptRunes    = 400
	maxOutputTokens = 1200
	maxListItems    = 5
	topPatterns     = 3
)

const insightInstructions = `You analyze a single private journal entry.
Return the primary emotions (at most 3, intensity 0..1), the themes (at most 5, relevance 0..1),
a sentiment score from 0 (negative) to 1 (positive), a two sentence summary, and short lists of
key insights, growth areas and gentle support suggestions. Earlier entries are context only.`

const trendInstructions = `You analyze a batch of journal entries in chronological order.
Report whether the emotional trend is improving, declining or stable, the dominant themes and
emotional patterns with the share of entries they appear in (0..1), growth indicators, areas of
concern, recommendations and a short summary.`

// Strategy calls a Completer for entry and trend analysis.
type Strategy struct {
	llm          llm.Completer
	limiter      *rate.Limiter
	log          *logger.Logger
	minDocuments int

	insightSchema map[string]any
	trendSchema   map[string]any
}

// Option configures a Strategy.
type Option func(*Strategy)

// WithRatePerMinute paces model calls; n <= 0 disables pacing.
func WithRatePerMinute(n int) Option {
	return func(s *Strategy) {
		if n <= 0 {
			s.limiter = nil
			return
		}
		s.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(n)), 1)
	}
}

// WithLogger sets the logger.
func WithLogger(l *logger.Logger) Option {
	return func(s *Strategy) { s.log = l }
}

// WithMinDocuments sets the batch size below which trends are not requested.
func WithMinDocuments(n int) Option {
	return func(s *Strategy) {
		if n > 0 {
			s.minDocuments = n
		}
	}
}

// New builds a strategy around c.
func New(c llm.Completer, opts ...Option) (*Strategy, error) {
	if c == nil {
		return nil, fmt.Errorf("remote: %w: nil completer", internalerr.ErrInvalidInput)
	}
	insightSchema, err := llm.GenerateSchema[journal.Insight]()
	if err != nil {
		return nil, fmt.Errorf("remote: insight schema: %w", err)
	}
	trendSchema, err := llm.GenerateSchema[journal.TrendReport]()
	if err != nil {
		return nil, fmt.Errorf("remote: trend schema: %w", err)
	}
	s := &Strategy{
		llm:           c,
		minDocuments:  analytics.DefaultMinDocuments,
		insightSchema: insightSchema,
		trendSchema:   trendSchema,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = logger.OrNop(s.log)
	return s, nil
}

// Analyze returns the model's insight for text, or the fallback insight when
// the text is blank or the model output cannot be used.
func (s *Strategy) Analyze(ctx context.Context, text string, related []journal.Match) journal.Insight {
	insight, _ := s.TryAnalyze(ctx, text, related)
	return insight
}

// TryAnalyze is Analyze that also reports why the fallback was used.
func (s *Strategy) TryAnalyze(ctx context.Context, text string, related []journal.Match) (journal.Insight, error) {
	if strings.TrimSpace(text) == "" {
		return compose.Fallback(text), nil
	}
	var out journal.Insight
	err := s.call(ctx, llm.Request{
		Instructions:    insightInstructions,
		Input:           insightInput(text, related),
		SchemaName:      "journal_insight",
		Schema:          s.insightSchema,
		MaxOutputTokens: maxOutputTokens,
	}, &out)
	if err == nil {
		out, err = cleanInsight(out)
	}
	if err != nil {
		s.log.Warn("remote entry analysis unusable, using fallback", "error", err)
		return compose.Fallback(text), err
	}
	return out, nil
}

// Trends returns the model's trend report for docs. Batches smaller than the
// minimum are answered locally.
func (s *Strategy) Trends(ctx context.Context, docs []journal.Document) journal.TrendReport {
	if len(docs) < s.minDocuments {
		return analytics.NotEnoughData()
	}
	var out journal.TrendReport
	err := s.call(ctx, llm.Request{
		Instructions:    trendInstructions,
		Input:           trendInput(docs),
		SchemaName:      "journal_trends",
		Schema:          s.trendSchema,
		MaxOutputTokens: maxOutputTokens,
	}, &out)
	if err == nil {
		out, err = cleanTrends(out)
	}
	if err != nil {
		s.log.Warn("remote trend analysis unusable, using fallback", "error", err, "documents", len(docs))
		return analytics.NotEnoughData()
	}
	return out
}

func (s *Strategy) call(ctx context.Context, req llm.Request, v any) error {
	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return err
		}
	}
	raw, err := s.llm.Complete(ctx, req)
	if err != nil {
		return err
	}
	if err := llm.DecodeJSON(raw, v); err != nil {
		return fmt.Errorf("%w: %v", internalerr.ErrMalformedAnalysis, err)
	}
	return nil
}

func insightInput(text string, related []journal.Match) string {
	var b strings.Builder
	b.WriteString("Entry:\n")
	b.WriteString(strings.TrimSpace(text))
	if len(related) > 0 {
		b.WriteString("\n\nEarlier related entries:\n")
		for i, m := range related {
			if i == maxRelated {
				break
			}
			fmt.Fprintf(&b, "- %s\n", excerpt(m.Document.Text))
		}
	}
	return b.String()
}

func trendInput(docs []journal.Document) string {
	var b strings.Builder
	for i, d := range docs {
		if d.Timestamp.IsZero() {
			fmt.Fprintf(&b, "%d. %s\n", i+1, excerpt(d.Text))
			continue
		}
		fmt.Fprintf(&b, "%d. [%s] %s\n", i+1, d.Timestamp.UTC().Format(time.DateOnly), excerpt(d.Text))
	}
	return b.String()
}

func excerpt(text string) string {
	text = strings.Join(strings.Fields(text), " ")
	r := []rune(text)
	if len(r) <= excerptRunes {
		return text
	}
	return string(r[:excerptRunes]) + "..."
}

func cleanInsight(in journal.Insight) (journal.Insight, error) {
	if strings.TrimSpace(in.Summary) == "" {
		return journal.Insight{}, fmt.Errorf("%w: empty summary", internalerr.ErrMalformedAnalysis)
	}
	if !finite(in.SentimentScore) {
		return journal.Insight{}, fmt.Errorf("%w: sentiment score %v", internalerr.ErrMalformedAnalysis, in.SentimentScore)
	}
	fallback := compose.Fallback("")
	out := journal.Insight{
		Summary:            strings.TrimSpace(in.Summary),
		SentimentScore:     journal.Clamp01(in.SentimentScore),
		KeyInsights:        cleanList(in.KeyInsights, fallback.KeyInsights),
		GrowthAreas:        cleanList(in.GrowthAreas, fallback.GrowthAreas),
		SupportSuggestions: cleanList(in.SupportSuggestions, fallback.SupportSuggestions),
	}
	// the label always follows the score, whatever the model said
	out.SentimentTrend = journal.Label(out.SentimentScore)

	for _, e := range in.Emotions {
		name := normalizeName(e.Name)
		if name == "" || !finite(e.Intensity) || len(out.Emotions) == signals.MaxEmotions {
			continue
		}
		out.Emotions = append(out.Emotions, journal.Emotion{Name: name, Intensity: journal.Clamp01(e.Intensity), Evidence: strings.TrimSpace(e.Evidence)})
	}
	if len(out.Emotions) == 0 {
		out.Emotions = []journal.Emotion{signals.FallbackEmotion()}
	}
	for _, t := range in.Themes {
		name := normalizeName(t.Name)
		if name == "" || !finite(t.Relevance) || len(out.Themes) == signals.MaxThemes {
			continue
		}
		out.Themes = append(out.Themes, journal.Theme{Name: name, Relevance: journal.Clamp01(t.Relevance), Evidence: strings.TrimSpace(t.Evidence)})
	}
	if len(out.Themes) == 0 {
		out.Themes = []journal.Theme{signals.FallbackTheme()}
	}
	return out, nil
}

func cleanTrends(in journal.TrendReport) (journal.TrendReport, error) {
	direction := strings.ToLower(strings.TrimSpace(in.OverallSentimentTrend))
	switch direction {
	case journal.TrendImproving, journal.TrendDeclining, journal.TrendStable:
	default:
		return journal.TrendReport{}, fmt.Errorf("%w: trend %q", internalerr.ErrMalformedAnalysis, in.OverallSentimentTrend)
	}
	return journal.TrendReport{
		OverallSentimentTrend: direction,
		DominantThemes:        cleanFrequencies(in.DominantThemes),
		EmotionalPatterns:     cleanFrequencies(in.EmotionalPatterns),
		GrowthIndicators:      cleanList(in.GrowthIndicators, nil),
		AreasOfConcern:        cleanList(in.AreasOfConcern, nil),
		Recommendations:       cleanList(in.Recommendations, nil),
		InsightsSummary:       strings.TrimSpace(in.InsightsSummary),
	}, nil
}

func cleanFrequencies(in []journal.Frequency) []journal.Frequency {
	out := []journal.Frequency{}
	for _, f := range in {
		name := normalizeName(f.Name)
		if name == "" || !finite(f.Frequency) || len(out) == topPatterns {
			continue
		}
		out = append(out, journal.Frequency{Name: name, Frequency: journal.Clamp01(f.Frequency)})
	}
	return out
}

func cleanList(in, fallback []string) []string {
	out := []string{}
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" || len(out) == maxListItems {
			continue
		}
		out = append(out, s)
	}
	if len(out) == 0 && fallback != nil {
		return append([]string(nil), fallback...)
	}
	return out
}

func normalizeName(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "_")
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// Package analytics aggregates many journal entries into a trend report and
// a keyword cloud.
package analytics

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/cognicore/keo/pkg/keo/journal"
	"github.com/cognicore/keo/pkg/keo/sentiment"
	"github.com/cognicore/keo/pkg/keo/signals"
)

// Defaults for trend aggregation.
const (
	DefaultDelta        = 0.05
	DefaultRecentWindow = 5
	DefaultMinDocuments = 3
	DefaultWorkers      = 8

	topPatterns = 3
)

// Fixed report text.
const (
	notEnoughSummary        = "Not enough data for a trend analysis. Keep journaling to see your patterns emerge!"
	notEnoughRecommendation = "Continue journaling regularly to unlock trends and deeper insights over time."
	growthIndicator         = "Consistent journaling demonstrates a commitment to self-awareness."
	decliningConcern        = "Monitoring the 'declining' sentiment trend is advisable."
	trendRecommendation     = "Reflect on what might be contributing to the recent emotional trend."
)

// Options tune the aggregator. Zero values select defaults.
type Options struct {
	Delta        float64
	RecentWindow int
	MinDocuments int
	Workers      int
}

// Aggregator computes trend reports. Safe for concurrent use.
type Aggregator struct {
	scorer *sentiment.Scorer
	x      *signals.Extractor
	opts   Options
}

// NewAggregator creates an aggregator. Nil collaborators use the defaults.
func NewAggregator(scorer *sentiment.Scorer, x *signals.Extractor, opts Options) *Aggregator {
	if scorer == nil {
		scorer = sentiment.NewScorer(nil, 0)
	}
	if x == nil {
		x = signals.NewExtractor(nil)
	}
	if opts.Delta <= 0 {
		opts.Delta = DefaultDelta
	}
	if opts.RecentWindow <= 0 {
		opts.RecentWindow = DefaultRecentWindow
	}
	if opts.MinDocuments <= 0 {
		opts.MinDocuments = DefaultMinDocuments
	}
	if opts.Workers <= 0 {
		opts.Workers = DefaultWorkers
	}
	return &Aggregator{scorer: scorer, x: x, opts: opts}
}

// NotEnoughData is the report for batches too small to analyse.
func NotEnoughData() journal.TrendReport {
	return journal.TrendReport{
		OverallSentimentTrend: journal.TrendNotEnoughData,
		DominantThemes:        []journal.Frequency{},
		EmotionalPatterns:     []journal.Frequency{},
		GrowthIndicators:      []string{},
		AreasOfConcern:        []string{},
		Recommendations:       []string{notEnoughRecommendation},
		InsightsSummary:       notEnoughSummary,
	}
}

type docSignals struct {
	score    float64
	themes   []journal.Theme
	emotions []journal.Emotion
}

// Trends analyses a batch of entries. Entries are put in chronological order
// when all of them carry a timestamp; otherwise input order is taken as
// oldest first. Scoring is CPU-bound and always runs to completion, so a
// batch of MinDocuments or more always gets a real report.
func (a *Aggregator) Trends(_ context.Context, docs []journal.Document) journal.TrendReport {
	if len(docs) < a.opts.MinDocuments {
		return NotEnoughData()
	}
	docs = chronological(docs)

	per := make([]docSignals, len(docs))
	var g errgroup.Group
	g.SetLimit(a.opts.Workers)
	for i, d := range docs {
		g.Go(func() error {
			per[i] = docSignals{
				score:    a.scorer.Score(d.Text),
				themes:   a.x.Themes(d.Text, []string{d.Text}),
				emotions: a.x.Emotions(d.Text),
			}
			return nil
		})
	}
	_ = g.Wait()

	scores := make([]float64, len(per))
	themes := newTally()
	emotions := newTally()
	for i, s := range per {
		scores[i] = s.score
		for _, t := range s.themes {
			themes.add(t.Name)
		}
		for _, e := range s.emotions {
			emotions.add(e.Name)
		}
	}

	trend := Direction(scores, a.opts.RecentWindow, a.opts.Delta)
	report := journal.TrendReport{
		OverallSentimentTrend: trend,
		DominantThemes:        themes.top(topPatterns, len(docs)),
		EmotionalPatterns:     emotions.top(topPatterns, len(docs)),
		GrowthIndicators:      []string{growthIndicator},
		AreasOfConcern:        []string{},
		Recommendations:       []string{trendRecommendation},
	}
	if trend == journal.TrendDeclining {
		report.AreasOfConcern = append(report.AreasOfConcern, decliningConcern)
	}
	report.InsightsSummary = fmt.Sprintf(
		"Your recent entries show a %s emotional trend. The most common themes are %s, with emotions like %s appearing often.",
		trend, names(report.DominantThemes), names(report.EmotionalPatterns))
	return report
}

// Direction compares the mean of the last window scores with the mean of the
// earlier ones. With no earlier scores the whole series is the baseline.
func Direction(scores []float64, window int, delta float64) string {
	if len(scores) == 0 {
		return journal.TrendStable
	}
	recent := scores
	if len(scores) > window {
		recent = scores[len(scores)-window:]
	}
	earlier := scores
	if len(scores) > window {
		earlier = scores[:len(scores)-window]
	}
	diff := mean(recent) - mean(earlier)
	switch {
	case diff > delta:
		return journal.TrendImproving
	case diff < -delta:
		return journal.TrendDeclining
	default:
		return journal.TrendStable
	}
}

func mean(xs []float64) float64 {
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

func chronological(docs []journal.Document) []journal.Document {
	for _, d := range docs {
		if d.Timestamp.IsZero() {
			return docs
		}
	}
	sorted := append([]journal.Document(nil), docs...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})
	return sorted
}

// tally counts names, remembering first-seen order for ties.
type tally struct {
	order  []string
	counts map[string]int
}

func newTally() *tally { return &tally{counts: make(map[string]int)} }

func (t *tally) add(name string) {
	if _, ok := t.counts[name]; !ok {
		t.order = append(t.order, name)
	}
	t.counts[name]++
}

func (t *tally) top(n, total int) []journal.Frequency {
	ranked := append([]string(nil), t.order...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return t.counts[ranked[i]] > t.counts[ranked[j]]
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	out := make([]journal.Frequency, len(ranked))
	for i, name := range ranked {
		out[i] = journal.Frequency{Name: name, Frequency: float64(t.counts[name]) / float64(total)}
	}
	return out
}

func names(fs []journal.Frequency) string {
	parts := make([]string, len(fs))
	for i, f := range fs {
		parts[i] = f.Name
	}
	return strings.Join(parts, ", ")
}

package keo

import (
	"context"
	"strings"

	"github.com/cognicore/keo/pkg/keo/analytics"
	"github.com/cognicore/keo/pkg/keo/compose"
	"github.com/cognicore/keo/pkg/keo/journal"
	"github.com/cognicore/keo/pkg/keo/lexicon"
	"github.com/cognicore/keo/pkg/keo/sentiment"
	"github.com/cognicore/keo/pkg/keo/signals"
)

// Strategy produces insights and trend reports. Implementations must always
// return a fully populated result.
type Strategy interface {
	Analyze(ctx context.Context, text string, related []journal.Match) journal.Insight
	Trends(ctx context.Context, docs []journal.Document) journal.TrendReport
}

// FallibleStrategy is implemented by strategies whose analysis can fail and
// fall back. TryAnalyze returns the same insight Analyze would, with a
// non-nil error when that insight is a fallback.
type FallibleStrategy interface {
	Strategy
	TryAnalyze(ctx context.Context, text string, related []journal.Match) (journal.Insight, error)
}

// LexicalOptions tune the lexical strategy. Zero values select defaults.
type LexicalOptions struct {
	SentimentScale float64
	Trends         analytics.Options
}

// Lexical analyzes entries with word lists only.
type Lexical struct {
	scorer   *sentiment.Scorer
	x        *signals.Extractor
	composer *compose.Composer
	trends   *analytics.Aggregator
}

var _ Strategy = (*Lexical)(nil)

// NewLexical builds the lexical strategy over tables (nil means the
// built-in lexicon).
func NewLexical(tables *lexicon.Tables, opts LexicalOptions) *Lexical {
	if tables == nil {
		tables = lexicon.Default()
	}
	scorer := sentiment.NewScorer(tables, opts.SentimentScale)
	x := signals.NewExtractor(tables)
	return &Lexical{
		scorer:   scorer,
		x:        x,
		composer: compose.New(x),
		trends:   analytics.NewAggregator(scorer, x, opts.Trends),
	}
}

// Analyze scores text, detects its emotions and themes (themes also drawing
// on the related entries) and composes the insight.
func (l *Lexical) Analyze(_ context.Context, text string, related []journal.Match) journal.Insight {
	if strings.TrimSpace(text) == "" {
		return compose.Fallback(text)
	}
	relatedTexts := make([]string, len(related))
	for i, m := range related {
		relatedTexts[i] = m.Document.Text
	}

	score := l.scorer.Score(text)
	emotions := l.x.Emotions(text)
	themes := l.x.Themes(text, relatedTexts)
	return l.composer.Compose(compose.Input{
		Text:          text,
		Emotions:      emotions,
		Themes:        themes,
		Score:         score,
		Related:       related,
		Cooccurrences: l.x.Cooccurrences(text, emotions, themes),
	})
}

// Trends aggregates docs.
func (l *Lexical) Trends(ctx context.Context, docs []journal.Document) journal.TrendReport {
	return l.trends.Trends(ctx, docs)
}

// Composer exposes the composer for opening prompts.
func (l *Lexical) Composer() *compose.Composer { return l.composer }

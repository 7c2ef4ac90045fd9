// Package keo is the journal insight engine. It ranks a writer's past entries
// against a new one, analyzes the entry through a pluggable strategy and
// memoizes the result per entry version.
//
// None of the Engine's analysis methods return errors. Corpus, cache and
// model failures are logged and degrade to smaller or fallback results.
package keo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cognicore/keo/internal/logger"
	"github.com/cognicore/keo/pkg/keo/analytics"
	"github.com/cognicore/keo/pkg/keo/cache"
	"github.com/cognicore/keo/pkg/keo/compose"
	"github.com/cognicore/keo/pkg/keo/internalerr"
	"github.com/cognicore/keo/pkg/keo/journal"
	"github.com/cognicore/keo/pkg/keo/lexicon"
	"github.com/cognicore/keo/pkg/keo/rank"
)

// DefaultCorpusTimeout bounds a corpus fetch.
const DefaultCorpusTimeout = 2 * time.Second

// DefaultMemories is the number of relevant memories returned by default.
const DefaultMemories = 3

const promptHistory = 3

// CorpusProvider returns an owner's entries newest first, without excludeID.
type CorpusProvider interface {
	FetchRecent(ctx context.Context, ownerID string, excludeID int64, limit int) ([]journal.Document, error)
}

// Options configures an Engine.
type Options struct {
	Tables        *lexicon.Tables
	Corpus        CorpusProvider
	CorpusTimeout time.Duration
	Ranking       rank.Options
	// Strategy defaults to the lexical strategy built from Tables and Lexical.
	Strategy Strategy
	Lexical  LexicalOptions
	// Cache defaults to an in-process map with the default TTL.
	Cache  *cache.Cache
	Logger *logger.Logger
	// Pick chooses among default opening prompts; nil picks at random.
	Pick func(n int) int
}

// Engine is the analysis facade. Safe for concurrent use.
type Engine struct {
	tables        *lexicon.Tables
	corpus        CorpusProvider
	corpusTimeout time.Duration
	ranker        *rank.Engine
	strategy      Strategy
	composer      *compose.Composer
	cache         *cache.Cache
	log           *logger.Logger
	pick          func(int) int
}

// New creates an Engine.
func New(opts Options) *Engine {
	tables := opts.Tables
	if tables == nil {
		tables = lexicon.Default()
	}
	log := logger.OrNop(opts.Logger)
	lexical := NewLexical(tables, opts.Lexical)

	e := &Engine{
		tables:        tables,
		corpus:        opts.Corpus,
		corpusTimeout: opts.CorpusTimeout,
		ranker:        rank.NewEngine(opts.Ranking),
		strategy:      opts.Strategy,
		composer:      lexical.Composer(),
		cache:         opts.Cache,
		log:           log,
		pick:          opts.Pick,
	}
	if e.corpusTimeout <= 0 {
		e.corpusTimeout = DefaultCorpusTimeout
	}
	if e.strategy == nil {
		e.strategy = lexical
	}
	if e.cache == nil {
		e.cache = cache.New(nil, cache.WithLogger(log))
	}
	return e
}

// AnalyzeEntry analyzes text, drawing related entries of ownerID (other
// than id) from the corpus. Blank text yields the fallback insight without
// touching the corpus.
func (e *Engine) AnalyzeEntry(ctx context.Context, text string, id int64, ownerID string) journal.Insight {
	insight, _ := e.analyze(ctx, text, id, ownerID)
	return insight
}

// Related ranks ownerID's recent entries other than id against text.
func (e *Engine) Related(ctx context.Context, text string, id int64, ownerID string) []journal.Match {
	return e.ranker.Rank(text, e.recent(ctx, ownerID, id, e.ranker.PoolSize()))
}

// AnalyzeEntryCached is AnalyzeEntry memoized on (id, version). A new version
// of the same entry is a different key. Insights built without the corpus or
// from a strategy fallback are returned but not memoized.
func (e *Engine) AnalyzeEntryCached(ctx context.Context, text string, id int64, ownerID string, version time.Time) journal.Insight {
	return e.cache.GetOrCompute(ctx, cache.KeyFor(id, version), func(ctx context.Context) (journal.Insight, error) {
		return e.analyze(ctx, text, id, ownerID)
	})
}

// analyze returns the insight and, when it was degraded, why.
func (e *Engine) analyze(ctx context.Context, text string, id int64, ownerID string) (journal.Insight, error) {
	if strings.TrimSpace(text) == "" {
		return compose.Fallback(text), nil
	}
	docs, corpusErr := e.fetchRecent(ctx, ownerID, id, e.ranker.PoolSize())
	related := e.ranker.Rank(text, docs)
	if fs, ok := e.strategy.(FallibleStrategy); ok {
		insight, err := fs.TryAnalyze(ctx, text, related)
		return insight, errors.Join(corpusErr, err)
	}
	return e.strategy.Analyze(ctx, text, related), corpusErr
}

// AnalyzeTrends reports on a batch of entries.
func (e *Engine) AnalyzeTrends(ctx context.Context, docs []journal.Document) journal.TrendReport {
	return e.strategy.Trends(ctx, docs)
}

// ExtractKeywordCloud returns the topN content words across docs.
func (e *Engine) ExtractKeywordCloud(docs []journal.Document, topN int) []journal.Keyword {
	return analytics.KeywordCloud(docs, topN, e.tables.Stopwords())
}

// RelevantMemories returns up to limit past entries of ownerID most similar
// to query, formatted as chat context.
func (e *Engine) RelevantMemories(ctx context.Context, ownerID, query string, limit int) []string {
	if strings.TrimSpace(query) == "" {
		return []string{}
	}
	if limit <= 0 {
		limit = DefaultMemories
	}
	matches := e.ranker.Rank(query, e.recent(ctx, ownerID, 0, e.ranker.PoolSize()))
	out := make([]string, 0, min(limit, len(matches)))
	for _, m := range matches {
		if len(out) == limit {
			break
		}
		out = append(out, "Previous entry: "+m.Document.Text)
	}
	return out
}

// OpeningPrompt suggests how ownerID might start a new entry.
func (e *Engine) OpeningPrompt(ctx context.Context, ownerID string) string {
	docs := e.recent(ctx, ownerID, 0, promptHistory)
	texts := make([]string, len(docs))
	for i, d := range docs {
		texts[i] = d.Text
	}
	return e.composer.OpeningPrompt(texts, e.pick)
}

func (e *Engine) recent(ctx context.Context, ownerID string, excludeID int64, limit int) []journal.Document {
	docs, _ := e.fetchRecent(ctx, ownerID, excludeID, limit)
	return docs
}

// fetchRecent logs and returns corpus failures; the documents are nil then.
func (e *Engine) fetchRecent(ctx context.Context, ownerID string, excludeID int64, limit int) ([]journal.Document, error) {
	if e.corpus == nil || ownerID == "" {
		return nil, nil
	}
	ctx, cancel := context.WithTimeout(ctx, e.corpusTimeout)
	defer cancel()
	docs, err := e.corpus.FetchRecent(ctx, ownerID, excludeID, limit)
	if err != nil {
		e.log.Warn("corpus unavailable, continuing without related entries",
			"owner_id", ownerID, "error", err)
		return nil, fmt.Errorf("%w: %w", internalerr.ErrCorpusUnavailable, err)
	}
	return docs, nil
}

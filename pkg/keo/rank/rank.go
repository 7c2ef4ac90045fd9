// Package rank finds past entries that are lexically related to a query
// entry using TF-IDF weighted cosine similarity.
package rank

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/cognicore/keo/pkg/keo/ingest"
	"github.com/cognicore/keo/pkg/keo/journal"
)

// Default tuning values.
const (
	DefaultLimit     = 5
	DefaultPoolSize  = 100
	DefaultThreshold = 0.1
)

// Options configures an Engine. Zero values fall back to the defaults.
type Options struct {
	Limit     int     // maximum matches returned
	PoolSize  int     // most recent candidates considered
	Threshold float64 // matches must score strictly above this
}

// Engine ranks candidate documents against a query. It holds no state
// between calls and is safe for concurrent use.
type Engine struct {
	limit     int
	poolSize  int
	threshold float64
}

// NewEngine creates an engine with the given options.
func NewEngine(opts Options) *Engine {
	e := &Engine{limit: DefaultLimit, poolSize: DefaultPoolSize, threshold: DefaultThreshold}
	if opts.Limit > 0 {
		e.limit = opts.Limit
	}
	if opts.PoolSize > 0 {
		e.poolSize = opts.PoolSize
	}
	if opts.Threshold > 0 {
		e.threshold = opts.Threshold
	}
	return e
}

// PoolSize returns how many recent candidates the engine considers.
func (e *Engine) PoolSize() int { return e.poolSize }

// Rank scores candidates (newest first, query already excluded) against
// query and returns the best matches above the threshold, best first.
// Ties keep candidate order.
func (e *Engine) Rank(query string, candidates []journal.Document) []journal.Match {
	if len(candidates) > e.poolSize {
		candidates = candidates[:e.poolSize]
	}
	if len(candidates) == 0 {
		return nil
	}

	docTokens := make([][]string, len(candidates))
	for i, c := range candidates {
		docTokens[i] = ingest.Tokenize(c.Text)
	}
	queryTokens := ingest.Tokenize(query)

	corpus := NewCorpus(docTokens, queryTokens)
	q := corpus.Vector(queryTokens)

	matches := make([]journal.Match, 0, len(candidates))
	for i, tokens := range docTokens {
		score := journal.Clamp01(floats.Dot(q, corpus.Vector(tokens)))
		if score <= e.threshold {
			continue
		}
		matches = append(matches, journal.Match{Document: candidates[i], Score: score})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	if len(matches) > e.limit {
		matches = matches[:e.limit]
	}
	return matches
}

// Corpus holds the vocabulary and inverse document frequencies of a
// candidate pool.
type Corpus struct {
	vocab map[string]int
	idf   []float64
}

// NewCorpus builds a corpus from candidate token lists. Extra token lists
// (the query) extend the vocabulary but do not count toward document
// frequency.
func NewCorpus(docs [][]string, extra ...[]string) *Corpus {
	c := &Corpus{vocab: make(map[string]int)}
	add := func(tokens []string) {
		for _, tok := range tokens {
			if _, ok := c.vocab[tok]; !ok {
				c.vocab[tok] = len(c.vocab)
			}
		}
	}
	for _, tokens := range extra {
		add(tokens)
	}
	for _, tokens := range docs {
		add(tokens)
	}

	df := make([]float64, len(c.vocab))
	for _, tokens := range docs {
		seen := make(map[int]struct{}, len(tokens))
		for _, tok := range tokens {
			idx := c.vocab[tok]
			if _, ok := seen[idx]; ok {
				continue
			}
			seen[idx] = struct{}{}
			df[idx]++
		}
	}

	// idf = ln(N / (df+1)); unseen terms get ln(N)
	n := float64(len(docs))
	c.idf = make([]float64, len(df))
	for i, f := range df {
		c.idf[i] = math.Log(n / (f + 1))
	}
	return c
}

// Size returns the vocabulary size.
func (c *Corpus) Size() int { return len(c.vocab) }

// IDF returns the inverse document frequency of term and whether the
// term is in the vocabulary.
func (c *Corpus) IDF(term string) (float64, bool) {
	idx, ok := c.vocab[term]
	if !ok {
		return 0, false
	}
	return c.idf[idx], true
}

// Vector returns the L2-normalised TF-IDF vector of tokens over the
// corpus vocabulary. Empty or out-of-vocabulary input yields the zero vector.
func (c *Corpus) Vector(tokens []string) []float64 {
	v := make([]float64, len(c.vocab))
	if len(tokens) == 0 || len(v) == 0 {
		return v
	}
	for _, tok := range tokens {
		if idx, ok := c.vocab[tok]; ok {
			v[idx]++
		}
	}
	floats.Scale(1/float64(len(tokens)), v)
	floats.Mul(v, c.idf)

	if norm := floats.Norm(v, 2); norm > 0 {
		floats.Scale(1/norm, v)
	}
	return v
}

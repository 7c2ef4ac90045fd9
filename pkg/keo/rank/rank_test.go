package rank

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cognicore/keo/pkg/keo/journal"
)

func docs(texts ...string) []journal.Document {
	out := make([]journal.Document, len(texts))
	for i, text := range texts {
		out[i] = journal.Document{ID: int64(i + 1), Text: text}
	}
	return out
}

func TestRankEmptyPool(t *testing.T) {
	e := NewEngine(Options{})
	assert.Empty(t, e.Rank("anything at all", nil))
}

func TestRankReflexive(t *testing.T) {
	e := NewEngine(Options{})
	query := "long day at work, the deadline moved again"
	matches := e.Rank(query, docs(
		"went hiking with friends on the weekend",
		"the deadline moved again, long day at work",
		"cooked dinner and watched a movie",
	))
	require.NotEmpty(t, matches)
	assert.Equal(t, int64(2), matches[0].Document.ID)
	assert.InDelta(t, 1.0, matches[0].Score, 1e-9)
}

func TestRankSingleIdenticalCandidate(t *testing.T) {
	e := NewEngine(Options{})
	matches := e.Rank("calm morning walk", docs("calm morning walk"))
	require.Len(t, matches, 1)
	assert.InDelta(t, 1.0, matches[0].Score, 1e-9)
}

func TestRankDisjointVocabulary(t *testing.T) {
	e := NewEngine(Options{})
	matches := e.Rank("apples oranges bananas", docs(
		"quarterly budget review meeting",
		"sleep exercise doctor",
	))
	assert.Empty(t, matches)

	c := NewCorpus([][]string{{"budget", "review"}, {"sleep"}}, []string{"apples"})
	q := c.Vector([]string{"apples"})
	d := c.Vector([]string{"budget", "review"})
	dot := 0.0
	for i := range q {
		dot += q[i] * d[i]
	}
	assert.Equal(t, 0.0, dot)
}

func TestRankEmptyQuery(t *testing.T) {
	e := NewEngine(Options{})
	assert.Empty(t, e.Rank("", docs("some text here", "more text")))
	assert.Empty(t, e.Rank("!!! ...", docs("some text here")))
}

func TestRankThresholdLimitAndOrder(t *testing.T) {
	e := NewEngine(Options{Limit: 2})
	candidates := docs(
		"work deadline stress",
		"unrelated gardening tomatoes",
		"work deadline stress",
		"quiet evening reading",
		"work deadline stress",
		"sunny beach holiday",
	)
	matches := e.Rank("work deadline stress", candidates)
	require.Len(t, matches, 2)
	// identical scores keep candidate (recency) order
	assert.Equal(t, int64(1), matches[0].Document.ID)
	assert.Equal(t, int64(3), matches[1].Document.ID)
	for _, m := range matches {
		assert.Greater(t, m.Score, DefaultThreshold)
		assert.LessOrEqual(t, m.Score, 1.0)
	}
}

func TestRankRespectsPoolSize(t *testing.T) {
	e := NewEngine(Options{PoolSize: 3})
	candidates := docs("filler one", "filler two", "filler three", "moonlight sonata piano")
	assert.Empty(t, e.Rank("moonlight sonata piano", candidates))
	assert.Equal(t, 3, e.PoolSize())
}

func TestRankScoresDescending(t *testing.T) {
	e := NewEngine(Options{Limit: 10})
	var texts []string
	for i := 0; i < 8; i++ {
		texts = append(texts, fmt.Sprintf("journal entry %d about work and family", i))
	}
	texts = append(texts, "family dinner family games family night")
	matches := e.Rank("family time", docs(texts...))
	for i := 1; i < len(matches); i++ {
		assert.GreaterOrEqual(t, matches[i-1].Score, matches[i].Score)
	}
}

func TestCorpusIDF(t *testing.T) {
	c := NewCorpus([][]string{{"a", "b"}, {"a"}, {"c"}}, []string{"z"})
	idf, ok := c.IDF("a")
	require.True(t, ok)
	assert.InDelta(t, math.Log(3.0/3.0), idf, 1e-12)

	idf, ok = c.IDF("z")
	require.True(t, ok)
	assert.InDelta(t, math.Log(3.0), idf, 1e-12)

	_, ok = c.IDF("missing")
	assert.False(t, ok)
	assert.Equal(t, 4, c.Size())
}

func TestCorpusVectorNormalized(t *testing.T) {
	c := NewCorpus([][]string{{"x", "y"}, {"y", "w"}, {"w"}}, []string{"x", "q"})
	v := c.Vector([]string{"x", "q", "q"})
	sum := 0.0
	for _, f := range v {
		sum += f * f
	}
	assert.InDelta(t, 1.0, sum, 1e-9)

	zero := c.Vector(nil)
	for _, f := range zero {
		assert.Equal(t, 0.0, f)
	}
}

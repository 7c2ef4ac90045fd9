// Package sentiment scores the polarity of journal text with a word lexicon,
// handling negation and intensifier words that precede a polar word.
package sentiment

import (
	"github.com/cognicore/keo/pkg/keo/ingest"
	"github.com/cognicore/keo/pkg/keo/journal"
	"github.com/cognicore/keo/pkg/keo/lexicon"
)

// DefaultScale stretches the per-token average before mapping to [0,1].
const DefaultScale = 5.0

// Neutral is the score of text without tokens.
const Neutral = 0.5

// Scorer computes polarity scores. Safe for concurrent use.
type Scorer struct {
	tables *lexicon.Tables
	scale  float64
}

// NewScorer creates a scorer. A nil table set uses lexicon.Default and a
// non-positive scale uses DefaultScale.
func NewScorer(tables *lexicon.Tables, scale float64) *Scorer {
	if tables == nil {
		tables = lexicon.Default()
	}
	if scale <= 0 {
		scale = DefaultScale
	}
	return &Scorer{tables: tables, scale: scale}
}

// Raw returns the summed polarity contributions and the token count.
//
// Each positive word contributes +1 and each negative word -1. A negation
// immediately before the word flips the sign; an intensifier immediately
// before it multiplies the contribution by its weight. Both may apply.
func (s *Scorer) Raw(text string) (sum float64, tokens int) {
	prev := ""
	for word := range ingest.Words(text) {
		tokens++
		contribution := 0.0
		switch {
		case s.tables.IsPositive(word):
			contribution = 1
		case s.tables.IsNegative(word):
			contribution = -1
		}
		if contribution != 0 && tokens > 1 {
			if s.tables.IsNegation(prev) {
				contribution = -contribution
			}
			if w, ok := s.tables.Intensifier(prev); ok {
				contribution *= w
			}
		}
		sum += contribution
		prev = word
	}
	return sum, tokens
}

// Score returns the polarity of text in [0,1]; 0.5 is neutral and text
// without tokens scores exactly 0.5.
func (s *Scorer) Score(text string) float64 {
	sum, n := s.Raw(text)
	if n == 0 {
		return Neutral
	}
	normalized := sum / float64(n) * s.scale
	return journal.Clamp01((normalized + 1) / 2)
}

// Label returns the score and its positive/neutral/negative label.
func (s *Scorer) Label(text string) (float64, string) {
	score := s.Score(text)
	return score, journal.Label(score)
}

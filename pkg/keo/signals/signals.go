// Package signals detects emotions and themes in journal text by keyword
// matching against the lexicon categories, and links the two when they
// share a sentence.
package signals

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/cognicore/keo/pkg/keo/journal"
	"github.com/cognicore/keo/pkg/keo/lexicon"
)

// Limits and fallbacks.
const (
	MaxEmotions = 3
	MaxThemes   = 5

	DefaultEmotion          = "reflective"
	DefaultEmotionIntensity = 0.7
	DefaultTheme            = "personal_reflection"
	DefaultThemeRelevance   = 0.8
)

// Extractor detects emotion and theme signals. Safe for concurrent use.
type Extractor struct {
	tables *lexicon.Tables
}

// NewExtractor creates an extractor; nil tables use lexicon.Default.
func NewExtractor(tables *lexicon.Tables) *Extractor {
	if tables == nil {
		tables = lexicon.Default()
	}
	return &Extractor{tables: tables}
}

// Tables returns the lexicon the extractor matches against.
func (x *Extractor) Tables() *lexicon.Tables { return x.tables }

// FallbackEmotion is returned when no emotion keyword matches.
func FallbackEmotion() journal.Emotion {
	return journal.Emotion{
		Name:      DefaultEmotion,
		Intensity: DefaultEmotionIntensity,
		Evidence:  "No strong emotion keywords detected.",
	}
}

// FallbackTheme is returned when no theme keyword matches.
func FallbackTheme() journal.Theme {
	return journal.Theme{
		Name:      DefaultTheme,
		Relevance: DefaultThemeRelevance,
		Evidence:  "General life reflection.",
	}
}

// Emotions returns up to three emotions, strongest first. Intensity grows
// with the number of distinct keywords of the category found in text:
// min(1, sqrt(n)/2). Never empty.
func (x *Extractor) Emotions(text string) []journal.Emotion {
	lower := strings.ToLower(text)
	var found []journal.Emotion
	for _, cat := range x.tables.Emotions() {
		n := cat.Present(lower)
		if n == 0 {
			continue
		}
		found = append(found, journal.Emotion{
			Name:      cat.Name(),
			Intensity: math.Min(1, math.Sqrt(float64(n))/2),
			Evidence:  fmt.Sprintf("Detected based on language patterns like '%s'.", cat.Example()),
		})
	}
	if len(found) == 0 {
		return []journal.Emotion{FallbackEmotion()}
	}
	sort.SliceStable(found, func(i, j int) bool {
		return found[i].Intensity > found[j].Intensity
	})
	if len(found) > MaxEmotions {
		found = found[:MaxEmotions]
	}
	return found
}

// Themes returns up to five themes found across the current text and the
// related texts, most frequent first. Relevance is the category's share of
// all keyword hits. Never empty.
func (x *Extractor) Themes(current string, related []string) []journal.Theme {
	var b strings.Builder
	b.WriteString(strings.ToLower(current))
	for _, r := range related {
		b.WriteByte(' ')
		b.WriteString(strings.ToLower(r))
	}
	all := b.String()

	type hit struct {
		cat   lexicon.Category
		count int
	}
	var hits []hit
	total := 0
	for _, cat := range x.tables.Themes() {
		n := cat.Occurrences(all)
		if n == 0 {
			continue
		}
		hits = append(hits, hit{cat: cat, count: n})
		total += n
	}
	if total == 0 {
		return []journal.Theme{FallbackTheme()}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].count > hits[j].count
	})
	if len(hits) > MaxThemes {
		hits = hits[:MaxThemes]
	}
	themes := make([]journal.Theme, len(hits))
	for i, h := range hits {
		themes[i] = journal.Theme{
			Name:      h.cat.Name(),
			Relevance: float64(h.count) / float64(total),
			Evidence:  "Appears frequently in your reflections.",
		}
	}
	return themes
}

// ThemeIn reports whether any keyword of the named theme occurs in text.
func (x *Extractor) ThemeIn(name, text string) bool {
	cat, ok := x.tables.Theme(name)
	return ok && cat.AnyIn(strings.ToLower(text))
}

package signals

import (
	"fmt"
	"strings"

	"github.com/cognicore/keo/pkg/keo/ingest"
	"github.com/cognicore/keo/pkg/keo/journal"
	"github.com/cognicore/keo/pkg/keo/lexicon"
)

const (
	coTopEmotions = 2
	coTopThemes   = 2
	maxLinks      = 2
)

// Cooccurrences links the top emotions to the top themes when keywords of
// both appear in the same sentence. At most two distinct notes are
// returned, in order of first appearance.
func (x *Extractor) Cooccurrences(text string, emotions []journal.Emotion, themes []journal.Theme) []string {
	emoCats := x.topCategories(emotionNames(emotions, coTopEmotions), x.tables.Emotion)
	themeCats := x.topCategories(themeNames(themes, coTopThemes), x.tables.Theme)
	if len(emoCats) == 0 || len(themeCats) == 0 {
		return nil
	}

	var notes []string
	seen := make(map[string]struct{})
	for _, sentence := range ingest.Sentences(strings.ToLower(text)) {
		for _, e := range emoCats {
			if !e.AnyIn(sentence) {
				continue
			}
			for _, t := range themeCats {
				if !t.AnyIn(sentence) {
					continue
				}
				note := Connection(e.Name(), t.Name())
				if _, ok := seen[note]; ok {
					continue
				}
				seen[note] = struct{}{}
				notes = append(notes, note)
				if len(notes) == maxLinks {
					return notes
				}
			}
		}
	}
	return notes
}

// Connection formats a note linking an emotion to a theme.
func Connection(emotion, theme string) string {
	return fmt.Sprintf("A connection between %s and %s was noted.", emotion, theme)
}

func (x *Extractor) topCategories(names []string, lookup func(string) (lexicon.Category, bool)) []lexicon.Category {
	var cats []lexicon.Category
	for _, name := range names {
		// fallbacks such as "reflective" have no keywords
		if cat, ok := lookup(name); ok {
			cats = append(cats, cat)
		}
	}
	return cats
}

func emotionNames(emotions []journal.Emotion, n int) []string {
	names := make([]string, 0, n)
	for i := 0; i < len(emotions) && i < n; i++ {
		names = append(names, emotions[i].Name)
	}
	return names
}

func themeNames(themes []journal.Theme, n int) []string {
	names := make([]string, 0, n)
	for i := 0; i < len(themes) && i < n; i++ {
		names = append(names, themes[i].Name)
	}
	return names
}

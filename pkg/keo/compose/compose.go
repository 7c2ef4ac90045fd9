// Package compose turns detected signals into the human-readable parts of an
// insight: the summary, key insights, growth areas and support suggestions.
//
// Everything here is deterministic. The only random element is the choice
// among default opening prompts for writers without history.
package compose

import (
	"fmt"
	"strings"

	"github.com/cognicore/keo/pkg/keo/ingest"
	"github.com/cognicore/keo/pkg/keo/journal"
	"github.com/cognicore/keo/pkg/keo/signals"
)

const (
	// DeepReflectionTokens is the entry length above which the writing is
	// called out as deep reflection.
	DeepReflectionTokens = 150

	// MaxExcerptWords caps the first-sentence excerpt in the summary.
	MaxExcerptWords = 25

	minExcerptWords = 5
	recurringMin    = 2
)

// Input is everything the composer needs about one entry.
type Input struct {
	Text          string
	Emotions      []journal.Emotion
	Themes        []journal.Theme
	Score         float64
	Related       []journal.Match
	Cooccurrences []string
}

// Composer assembles insights. Safe for concurrent use.
type Composer struct {
	x           *signals.Extractor
	insights    []Rule
	growth      []Rule
	suggestions []Rule
}

// New creates a composer with the built-in rule tables. A nil extractor uses
// the default lexicon.
func New(x *signals.Extractor) *Composer {
	if x == nil {
		x = signals.NewExtractor(nil)
	}
	return &Composer{
		x:           x,
		insights:    InsightRules(),
		growth:      GrowthRules(),
		suggestions: SuggestionRules(),
	}
}

// Compose builds the full insight for one entry.
func (c *Composer) Compose(in Input) journal.Insight {
	f := c.facts(in)

	emotions := in.Emotions
	if len(emotions) == 0 {
		emotions = []journal.Emotion{signals.FallbackEmotion()}
	}
	themes := in.Themes
	if len(themes) == 0 {
		themes = []journal.Theme{signals.FallbackTheme()}
	}

	keyInsights := append([]string(nil), in.Cooccurrences...)
	keyInsights = append(keyInsights, evaluate(c.insights, f)...)
	if len(keyInsights) == 0 {
		keyInsights = []string{"You are maintaining a consistent and thoughtful journaling practice."}
	}

	growth := evaluate(c.growth, f)
	if len(growth) == 0 {
		growth = []string{"Continuing to engage in regular self-reflection is a powerful growth practice in itself."}
	}

	suggestions := evaluate(c.suggestions, f)
	if len(suggestions) == 0 {
		suggestions = []string{"Continue to use this space to explore your thoughts and feelings. It's a valuable practice."}
	}

	return journal.Insight{
		Summary:            Summary(in.Text, in.Emotions, in.Themes),
		Emotions:           emotions,
		Themes:             themes,
		SentimentScore:     in.Score,
		SentimentTrend:     journal.Label(in.Score),
		KeyInsights:        keyInsights,
		GrowthAreas:        growth,
		SupportSuggestions: suggestions,
	}
}

// Fallback is the fixed insight returned for blank input and for remote
// analyses that could not be used.
func Fallback(text string) journal.Insight {
	return journal.Insight{
		Summary: Summary(text, nil, nil),
		Emotions: []journal.Emotion{{
			Name:      signals.DefaultEmotion,
			Intensity: signals.DefaultEmotionIntensity,
			Evidence:  "Engaging in self-reflection.",
		}},
		Themes:             []journal.Theme{signals.FallbackTheme()},
		SentimentScore:     0.5,
		SentimentTrend:     journal.LabelNeutral,
		KeyInsights:        []string{"You took time for valuable self-reflection."},
		GrowthAreas:        []string{"Maintaining a consistent reflective practice."},
		SupportSuggestions: []string{"Continue exploring your thoughts and feelings in this space."},
	}
}

// Summary names the primary theme and emotion, then quotes the opening
// sentence when it has more than four words.
func Summary(text string, emotions []journal.Emotion, themes []journal.Theme) string {
	emotion := signals.DefaultEmotion
	if len(emotions) > 0 {
		emotion = emotions[0].Name
	}
	theme := "personal matters"
	if len(themes) > 0 {
		theme = themes[0].Name
	}
	summary := fmt.Sprintf("This entry reflects on %s with a tone of %s.", humanize(theme), emotion)
	if excerpt, ok := openingExcerpt(text); ok {
		summary += fmt.Sprintf(" You started by mentioning: \"%s\"", excerpt)
	}
	return summary
}

func openingExcerpt(text string) (string, bool) {
	sentences := ingest.Sentences(text)
	if len(sentences) == 0 {
		return "", false
	}
	words := strings.Fields(sentences[0])
	if len(words) < minExcerptWords {
		return "", false
	}
	if len(words) > MaxExcerptWords {
		return strings.Join(words[:MaxExcerptWords], " ") + "...", true
	}
	return strings.Join(words, " ") + ".", true
}

func humanize(name string) string {
	return strings.ReplaceAll(name, "_", " ")
}

func (c *Composer) facts(in Input) Facts {
	f := Facts{
		Text:   in.Text,
		Lower:  strings.ToLower(in.Text),
		Score:  in.Score,
		Tokens: len(ingest.Tokenize(in.Text)),
		tables: c.x.Tables(),
	}
	if len(in.Emotions) > 0 {
		f.PrimaryEmotion = in.Emotions[0].Name
	}
	if len(in.Themes) > 0 {
		f.PrimaryTheme = in.Themes[0].Name
	}
	for _, e := range in.Emotions {
		f.emotions = append(f.emotions, e.Name)
	}
	for _, t := range in.Themes {
		f.themes = append(f.themes, t.Name)
	}
	if f.PrimaryTheme != "" && len(in.Related) >= recurringMin {
		mentions := 0
		for _, m := range in.Related {
			if c.x.ThemeIn(f.PrimaryTheme, m.Document.Text) {
				mentions++
			}
		}
		f.Recurring = mentions >= recurringMin
	}
	return f
}

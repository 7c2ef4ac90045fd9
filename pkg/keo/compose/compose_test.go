package compose

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cognicore/keo/pkg/keo/journal"
	"github.com/cognicore/keo/pkg/keo/lexicon"
	"github.com/cognicore/keo/pkg/keo/signals"
)

func TestFallbackIsFullyPopulated(t *testing.T) {
	in := Fallback("")
	assert.Equal(t, 0.5, in.SentimentScore)
	assert.Equal(t, journal.LabelNeutral, in.SentimentTrend)
	require.Len(t, in.Emotions, 1)
	assert.Equal(t, "reflective", in.Emotions[0].Name)
	require.Len(t, in.Themes, 1)
	assert.Equal(t, "personal_reflection", in.Themes[0].Name)
	assert.NotEmpty(t, in.KeyInsights)
	assert.NotEmpty(t, in.GrowthAreas)
	assert.NotEmpty(t, in.SupportSuggestions)
	assert.Equal(t, "This entry reflects on personal matters with a tone of reflective.", in.Summary)
}

func TestSummary(t *testing.T) {
	emotions := []journal.Emotion{{Name: "proud"}}
	themes := []journal.Theme{{Name: "personal_growth"}}

	got := Summary("Today I finally finished the marathon training plan. It was hard.", emotions, themes)
	assert.Equal(t, `This entry reflects on personal growth with a tone of proud. You started by mentioning: "Today I finally finished the marathon training plan."`, got)

	got = Summary("Short one. But then a much longer second sentence follows here.", emotions, themes)
	assert.Equal(t, "This entry reflects on personal growth with a tone of proud.", got)

	long := strings.Repeat("word ", 40) + "end."
	got = Summary(long, emotions, themes)
	assert.True(t, strings.HasSuffix(got, `..."`), got)
	excerpt := got[strings.Index(got, `"`)+1 : len(got)-len(`..."`)]
	assert.Len(t, strings.Fields(excerpt), MaxExcerptWords)
}

func TestSuggestionRulesCollectAllMatches(t *testing.T) {
	got := evaluate(SuggestionRules(), Facts{Score: 0.2, PrimaryEmotion: "anxious", PrimaryTheme: "work"})
	assert.Equal(t, []string{
		"When feeling anxious, try a 5-minute breathing exercise to ground yourself.",
		"To manage work stress, could you identify one small boundary to set this week?",
	}, got)

	got = evaluate(SuggestionRules(), Facts{Score: 0.1, PrimaryEmotion: "lonely", PrimaryTheme: "relationships"})
	assert.Equal(t, []string{
		"It might be helpful to acknowledge these difficult feelings and practice self-compassion.",
		"Nurturing connections can be healing. Is there one person you could reach out to for a brief chat?",
	}, got)

	got = evaluate(SuggestionRules(), Facts{Score: 0.9, PrimaryEmotion: "happy", PrimaryTheme: "travel"})
	assert.Equal(t, []string{"Your positive outlook is wonderful. How can you carry this feeling into the rest of your day?"}, got)

	assert.Empty(t, evaluate(SuggestionRules(), Facts{Score: 0.5, PrimaryEmotion: "happy", PrimaryTheme: "travel"}))
}

func TestGrowthRules(t *testing.T) {
	tables := lexicon.Default()
	got := evaluate(GrowthRules(), Facts{Lower: "i want to learn to cook", Score: 0.5, tables: tables})
	assert.Equal(t, []string{"Your writing explicitly shows a commitment to self-improvement and progress."}, got)

	got = evaluate(GrowthRules(), Facts{Lower: "rough day", Score: 0.2, PrimaryTheme: "work", tables: tables})
	assert.Equal(t, []string{"Navigating challenges in work or relationships could be a key area for growth."}, got)

	assert.Empty(t, evaluate(GrowthRules(), Facts{Lower: "rough day", Score: 0.2, PrimaryTheme: "travel", tables: tables}))
}

func TestComposeFallbackLists(t *testing.T) {
	c := New(nil)
	in := c.Compose(Input{
		Text:     "Quiet day.",
		Emotions: []journal.Emotion{signals.FallbackEmotion()},
		Themes:   []journal.Theme{signals.FallbackTheme()},
		Score:    0.5,
	})
	assert.Equal(t, []string{"You are maintaining a consistent and thoughtful journaling practice."}, in.KeyInsights)
	assert.Equal(t, []string{"Continuing to engage in regular self-reflection is a powerful growth practice in itself."}, in.GrowthAreas)
	assert.Equal(t, []string{"Continue to use this space to explore your thoughts and feelings. It's a valuable practice."}, in.SupportSuggestions)
	assert.Equal(t, journal.LabelNeutral, in.SentimentTrend)
}

func TestComposeKeyInsights(t *testing.T) {
	c := New(nil)
	related := []journal.Match{
		{Document: journal.Document{ID: 1, Text: "another deadline at the office"}, Score: 0.4},
		{Document: journal.Document{ID: 2, Text: "my boss wants the project early"}, Score: 0.3},
	}
	in := c.Compose(Input{
		Text:          "Anxious about the deadline.",
		Emotions:      []journal.Emotion{{Name: "anxious", Intensity: 0.5}},
		Themes:        []journal.Theme{{Name: "work", Relevance: 1}},
		Score:         0.3,
		Related:       related,
		Cooccurrences: []string{signals.Connection("anxious", "work")},
	})
	require.Len(t, in.KeyInsights, 2)
	assert.Equal(t, signals.Connection("anxious", "work"), in.KeyInsights[0])
	assert.Equal(t, "The theme of 'work' seems to be a recurring topic for you, similar to past entries.", in.KeyInsights[1])
	assert.Equal(t, journal.LabelNegative, in.SentimentTrend)
	assert.Contains(t, in.SupportSuggestions, "To manage work stress, could you identify one small boundary to set this week?")
	assert.Contains(t, in.GrowthAreas, "Navigating challenges in work or relationships could be a key area for growth.")
}

func TestComposeRecurringNeedsMentions(t *testing.T) {
	c := New(nil)
	related := []journal.Match{
		{Document: journal.Document{Text: "went swimming"}},
		{Document: journal.Document{Text: "the deadline again"}},
	}
	in := c.Compose(Input{
		Text:     "Long meeting.",
		Emotions: []journal.Emotion{signals.FallbackEmotion()},
		Themes:   []journal.Theme{{Name: "work", Relevance: 1}},
		Score:    0.5,
		Related:  related,
	})
	for _, note := range in.KeyInsights {
		assert.NotContains(t, note, "recurring")
	}
}

func TestComposeDeepReflectionAndProud(t *testing.T) {
	c := New(nil)
	text := strings.Repeat("today went well ", 51)
	in := c.Compose(Input{
		Text:     text,
		Emotions: []journal.Emotion{{Name: "proud"}},
		Themes:   []journal.Theme{{Name: "creativity"}, {Name: "personal_growth"}},
		Score:    0.6,
	})
	assert.Equal(t, []string{
		"You seem to be feeling proud of your progress in personal growth.",
		"Your detailed writing suggests you're dedicating significant time to deep self-reflection.",
	}, in.KeyInsights)
}

func TestComposeIsDeterministic(t *testing.T) {
	c := New(nil)
	input := Input{
		Text:     "I learned a lot at work today and felt proud.",
		Emotions: []journal.Emotion{{Name: "proud", Intensity: 0.5}},
		Themes:   []journal.Theme{{Name: "work", Relevance: 1}},
		Score:    0.8,
	}
	assert.Equal(t, c.Compose(input), c.Compose(input))
}

func TestOpeningPrompt(t *testing.T) {
	c := New(nil)
	got := c.OpeningPrompt(nil, func(n int) int {
		assert.Equal(t, len(DefaultPrompts), n)
		return 2
	})
	assert.Equal(t, DefaultPrompts[2], got)
	assert.Contains(t, DefaultPrompts, c.OpeningPrompt(nil, nil))

	got = c.OpeningPrompt([]string{"Stressed about the deadline at work"}, nil)
	assert.Equal(t, "I remember you mentioned feeling anxious around work. How are things looking today?", got)

	got = c.OpeningPrompt([]string{"nothing much"}, nil)
	assert.Equal(t, "It sounds like you've been processing a lot lately. What's on your mind right now?", got)
}

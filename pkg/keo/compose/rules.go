package compose

import (
	"fmt"
	"slices"

	"github.com/cognicore/keo/pkg/keo/lexicon"
)

// Facts are the derived properties of an entry that rules test against.
type Facts struct {
	Text           string
	Lower          string
	Score          float64
	Tokens         int
	PrimaryEmotion string
	PrimaryTheme   string
	// Recurring is set when related entries also mention the primary theme.
	Recurring bool

	emotions []string
	themes   []string
	tables   *lexicon.Tables
}

// HasEmotion reports whether name is among the detected emotions.
func (f Facts) HasEmotion(name string) bool { return slices.Contains(f.emotions, name) }

// HasTheme reports whether name is among the detected themes.
func (f Facts) HasTheme(name string) bool { return slices.Contains(f.themes, name) }

// Rule emits Say(facts) when When(facts) holds.
type Rule struct {
	Name string
	When func(Facts) bool
	Say  func(Facts) string
}

func fixed(msg string) func(Facts) string {
	return func(Facts) string { return msg }
}

// evaluate runs rules top to bottom and collects every match.
func evaluate(rules []Rule, f Facts) []string {
	var out []string
	for _, r := range rules {
		if r.When(f) {
			out = append(out, r.Say(f))
		}
	}
	return out
}

// InsightRules are appended after the co-occurrence notes.
func InsightRules() []Rule {
	return []Rule{
		{
			Name: "recurring-topic",
			When: func(f Facts) bool { return f.Recurring },
			Say: func(f Facts) string {
				return fmt.Sprintf("The theme of '%s' seems to be a recurring topic for you, similar to past entries.", humanize(f.PrimaryTheme))
			},
		},
		{
			Name: "proud-growth",
			When: func(f Facts) bool { return f.HasTheme("personal_growth") && f.HasEmotion("proud") },
			Say:  fixed("You seem to be feeling proud of your progress in personal growth."),
		},
		{
			Name: "deep-reflection",
			When: func(f Facts) bool { return f.Tokens > DeepReflectionTokens },
			Say:  fixed("Your detailed writing suggests you're dedicating significant time to deep self-reflection."),
		},
	}
}

// GrowthRules produce growth-area notes.
func GrowthRules() []Rule {
	return []Rule{
		{
			Name: "growth-language",
			When: func(f Facts) bool { return f.tables != nil && f.tables.HasGrowthLanguage(f.Lower) },
			Say:  fixed("Your writing explicitly shows a commitment to self-improvement and progress."),
		},
		{
			Name: "low-work-or-relationships",
			When: func(f Facts) bool {
				return f.Score < 0.35 && (f.PrimaryTheme == "work" || f.PrimaryTheme == "relationships")
			},
			Say: fixed("Navigating challenges in work or relationships could be a key area for growth."),
		},
	}
}

// SuggestionRules produce support suggestions, keyed on sentiment bucket,
// primary emotion and primary theme.
func SuggestionRules() []Rule {
	low := func(f Facts) bool { return f.Score < 0.4 }
	return []Rule{
		{
			Name: "low-anxious",
			When: func(f Facts) bool { return low(f) && f.PrimaryEmotion == "anxious" },
			Say:  fixed("When feeling anxious, try a 5-minute breathing exercise to ground yourself."),
		},
		{
			Name: "low-sad",
			When: func(f Facts) bool { return low(f) && f.PrimaryEmotion == "sad" },
			Say:  fixed("Consider doing one small activity you usually enjoy, even if you don't feel like it at first."),
		},
		{
			Name: "low-other",
			When: func(f Facts) bool {
				return low(f) && f.PrimaryEmotion != "anxious" && f.PrimaryEmotion != "sad"
			},
			Say: fixed("It might be helpful to acknowledge these difficult feelings and practice self-compassion."),
		},
		{
			Name: "high",
			When: func(f Facts) bool { return f.Score > 0.7 },
			Say:  fixed("Your positive outlook is wonderful. How can you carry this feeling into the rest of your day?"),
		},
		{
			Name: "work-stress",
			When: func(f Facts) bool {
				return f.PrimaryTheme == "work" && slices.Contains([]string{"stressed", "anxious", "overwhelmed"}, f.PrimaryEmotion)
			},
			Say: fixed("To manage work stress, could you identify one small boundary to set this week?"),
		},
		{
			Name: "relationships-low",
			When: func(f Facts) bool {
				return f.PrimaryTheme == "relationships" && slices.Contains([]string{"sad", "lonely", "hurt"}, f.PrimaryEmotion)
			},
			Say: fixed("Nurturing connections can be healing. Is there one person you could reach out to for a brief chat?"),
		},
	}
}

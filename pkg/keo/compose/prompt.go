package compose

import (
	"fmt"
	"math/rand/v2"

	"github.com/cognicore/keo/pkg/keo/signals"
)

// DefaultPrompts greet writers who have no entries yet.
var DefaultPrompts = []string{
	"What's been on your mind lately?",
	"How are you feeling today?",
	"What's one thing that stood out to you today?",
	"I'm here to listen. What would you like to share?",
	"What's bringing you here for reflection today?",
}

const promptContext = 3

// OpeningPrompt suggests how to start a new entry. Without history it picks
// one of DefaultPrompts using pick (rand.IntN when nil); otherwise the prompt
// follows up on the dominant theme and emotion of the newest entries.
func (c *Composer) OpeningPrompt(recent []string, pick func(int) int) string {
	if len(recent) == 0 {
		if pick == nil {
			pick = rand.IntN
		}
		i := pick(len(DefaultPrompts))
		if i < 0 || i >= len(DefaultPrompts) {
			i = 0
		}
		return DefaultPrompts[i]
	}
	if len(recent) > promptContext {
		recent = recent[:promptContext]
	}

	theme := c.x.Themes(recent[0], recent[1:])[0].Name
	emotion := c.x.Emotions(recent[0])[0].Name

	switch {
	case theme == signals.DefaultTheme && emotion == signals.DefaultEmotion:
		return "It sounds like you've been processing a lot lately. What's on your mind right now?"
	case theme == signals.DefaultTheme:
		return fmt.Sprintf("I remember you mentioned feeling %s recently. How are you doing with that today?", emotion)
	case emotion == signals.DefaultEmotion:
		return fmt.Sprintf("You've been writing about %s lately. How are things looking today?", humanize(theme))
	default:
		return fmt.Sprintf("I remember you mentioned feeling %s around %s. How are things looking today?", emotion, humanize(theme))
	}
}

package cards

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/cognicore/keo/pkg/keo/journal"
)

var fixed = time.Date(2026, 4, 2, 8, 30, 0, 0, time.UTC)

func TestEntryCard(t *testing.T) {
	b := NewWithClock(func() time.Time { return fixed })
	doc := journal.Document{ID: 42, OwnerID: "u1", Title: "Tuesday"}
	in := journal.Insight{
		Summary:            "This entry reflects on work with a tone of anxious.",
		Emotions:           []journal.Emotion{{Name: "anxious", Intensity: 0.5}},
		Themes:             []journal.Theme{{Name: "work", Relevance: 1}},
		SentimentScore:     0.3,
		KeyInsights:        []string{"insight"},
		SupportSuggestions: []string{"suggestion"},
	}
	related := []journal.Match{{Document: journal.Document{ID: 7, Timestamp: fixed.Add(-time.Hour)}, Score: 0.4}}

	card, err := b.Entry(doc, in, related)
	if err != nil {
		t.Fatal(err)
	}
	if card.Kind != KindEntry || card.OwnerID != "u1" || card.EntryID != 42 || card.Title != "Tuesday" {
		t.Errorf("unexpected card header: %+v", card)
	}
	if len(card.Bullets) != 3 || card.Bullets[0] != in.Summary {
		t.Errorf("bullets = %v", card.Bullets)
	}
	if card.Scores["sentiment"] != 0.3 || card.Scores["emotion:anxious"] != 0.5 || card.Scores["theme:work"] != 1 {
		t.Errorf("scores = %v", card.Scores)
	}
	if len(card.Sources) != 1 || card.Sources[0].EntryID != 7 {
		t.Errorf("sources = %v", card.Sources)
	}
	if !card.CreatedAt.Equal(fixed) {
		t.Errorf("created at = %s", card.CreatedAt)
	}

	var decoded journal.Insight
	if err := json.Unmarshal(card.Payload, &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded.Summary != in.Summary {
		t.Errorf("payload summary = %q", decoded.Summary)
	}
}

func TestEntryCardUntitled(t *testing.T) {
	card, err := New().Entry(journal.Document{ID: 5}, journal.Insight{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if card.Title != "Entry 5" {
		t.Errorf("title = %q", card.Title)
	}
}

func TestIDsAreUniqueULIDs(t *testing.T) {
	b := NewWithClock(func() time.Time { return fixed })
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		card, err := b.Keywords("u", nil)
		if err != nil {
			t.Fatal(err)
		}
		id, err := ulid.Parse(card.ID)
		if err != nil {
			t.Fatalf("invalid ulid %q: %v", card.ID, err)
		}
		if ulid.Time(id.Time()).UnixMilli() != fixed.UnixMilli() {
			t.Errorf("ulid time = %v", ulid.Time(id.Time()))
		}
		if seen[card.ID] {
			t.Fatalf("duplicate id %s", card.ID)
		}
		seen[card.ID] = true
	}
}

func TestTrendsCard(t *testing.T) {
	b := New()
	r := journal.TrendReport{
		OverallSentimentTrend: journal.TrendDeclining,
		DominantThemes:        []journal.Frequency{{Name: "work", Frequency: 0.6}},
		EmotionalPatterns:     []journal.Frequency{{Name: "tired", Frequency: 0.4}},
		AreasOfConcern:        []string{"concern"},
		Recommendations:       []string{"reflect"},
		InsightsSummary:       "summary",
	}
	docs := []journal.Document{{ID: 1}, {ID: 2}, {ID: 3}}
	card, err := b.Trends("u1", r, docs)
	if err != nil {
		t.Fatal(err)
	}
	if card.Title != "Trends over 3 entries: declining" {
		t.Errorf("title = %q", card.Title)
	}
	want := []string{"summary", "concern", "reflect"}
	if len(card.Bullets) != len(want) {
		t.Fatalf("bullets = %v", card.Bullets)
	}
	for i := range want {
		if card.Bullets[i] != want[i] {
			t.Errorf("bullet %d = %q, want %q", i, card.Bullets[i], want[i])
		}
	}
	if card.Scores["theme:work"] != 0.6 || card.Scores["emotion:tired"] != 0.4 {
		t.Errorf("scores = %v", card.Scores)
	}
	if len(card.Sources) != 3 {
		t.Errorf("sources = %d", len(card.Sources))
	}
}

func TestKeywordsCard(t *testing.T) {
	cloud := []journal.Keyword{{Word: "coffee", Count: 4, Weight: 1}, {Word: "walk", Count: 2, Weight: 0.5}}
	card, err := New().Keywords("u1", cloud)
	if err != nil {
		t.Fatal(err)
	}
	if card.Bullets[0] != "coffee (4), walk (2)" {
		t.Errorf("bullet = %q", card.Bullets[0])
	}
	if card.Scores["walk"] != 0.5 {
		t.Errorf("scores = %v", card.Scores)
	}

	empty, err := New().Keywords("u1", nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(empty.Bullets) != 0 {
		t.Errorf("bullets = %v", empty.Bullets)
	}
}

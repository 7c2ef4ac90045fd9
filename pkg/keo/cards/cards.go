package cards

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/cognicore/keo/pkg/keo/journal"
)

// Kind tells what a card reports on.
type Kind string

const (
	KindEntry    Kind = "entry"
	KindTrends   Kind = "trends"
	KindKeywords Kind = "keywords"
)

// Builder constructs report cards. Safe for concurrent use.
type Builder struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
	now     func() time.Time
}

// New creates a new card builder
func New() *Builder {
	return NewWithClock(time.Now)
}

// NewWithClock creates a builder that stamps cards with now().
func NewWithClock(now func() time.Time) *Builder {
	return &Builder{
		entropy: ulid.Monotonic(rand.Reader, 0),
		now:     now,
	}
}

// Card is a persisted, human-readable snapshot of a report.
type Card struct {
	ID        string             `json:"id"`
	Kind      Kind               `json:"kind"`
	OwnerID   string             `json:"owner_id"`
	EntryID   int64              `json:"entry_id,omitempty"`
	Title     string             `json:"title"`
	Bullets   []string           `json:"bullets"`
	Sources   []SourceRef        `json:"sources,omitempty"`
	Scores    map[string]float64 `json:"scores,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
	// Payload is the full report the card was built from, as JSON.
	Payload json.RawMessage `json:"payload"`
}

// SourceRef references an entry the card draws on.
type SourceRef struct {
	EntryID int64     `json:"entry_id"`
	Time    time.Time `json:"time"`
	Score   float64   `json:"score,omitempty"`
}

func (b *Builder) stamp() (string, time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()
	now := b.now()
	return ulid.MustNew(ulid.Timestamp(now), b.entropy).String(), now
}

// Entry builds a card for one analysed entry and the related entries used.
func (b *Builder) Entry(doc journal.Document, in journal.Insight, related []journal.Match) (Card, error) {
	payload, err := json.Marshal(in)
	if err != nil {
		return Card{}, fmt.Errorf("encode insight: %w", err)
	}
	id, now := b.stamp()

	title := doc.Title
	if title == "" {
		title = fmt.Sprintf("Entry %d", doc.ID)
	}
	card := Card{
		ID:        id,
		Kind:      KindEntry,
		OwnerID:   doc.OwnerID,
		EntryID:   doc.ID,
		Title:     title,
		Bullets:   make([]string, 0, 1+len(in.KeyInsights)+len(in.SupportSuggestions)),
		Sources:   make([]SourceRef, 0, len(related)),
		Scores:    map[string]float64{"sentiment": in.SentimentScore},
		CreatedAt: now,
		Payload:   payload,
	}
	card.Bullets = append(card.Bullets, in.Summary)
	card.Bullets = append(card.Bullets, in.KeyInsights...)
	card.Bullets = append(card.Bullets, in.SupportSuggestions...)
	for _, e := range in.Emotions {
		card.Scores["emotion:"+e.Name] = e.Intensity
	}
	for _, t := range in.Themes {
		card.Scores["theme:"+t.Name] = t.Relevance
	}
	for _, m := range related {
		card.Sources = append(card.Sources, SourceRef{EntryID: m.Document.ID, Time: m.Document.Timestamp, Score: m.Score})
	}
	return card, nil
}

// Trends builds a card for a trend report over docs.
func (b *Builder) Trends(ownerID string, r journal.TrendReport, docs []journal.Document) (Card, error) {
	payload, err := json.Marshal(r)
	if err != nil {
		return Card{}, fmt.Errorf("encode trends: %w", err)
	}
	id, now := b.stamp()
	card := Card{
		ID:        id,
		Kind:      KindTrends,
		OwnerID:   ownerID,
		Title:     fmt.Sprintf("Trends over %d entries: %s", len(docs), r.OverallSentimentTrend),
		Bullets:   []string{r.InsightsSummary},
		Sources:   make([]SourceRef, 0, len(docs)),
		Scores:    make(map[string]float64),
		CreatedAt: now,
		Payload:   payload,
	}
	card.Bullets = append(card.Bullets, r.AreasOfConcern...)
	card.Bullets = append(card.Bullets, r.Recommendations...)
	for _, f := range r.DominantThemes {
		card.Scores["theme:"+f.Name] = f.Frequency
	}
	for _, f := range r.EmotionalPatterns {
		card.Scores["emotion:"+f.Name] = f.Frequency
	}
	for _, d := range docs {
		card.Sources = append(card.Sources, SourceRef{EntryID: d.ID, Time: d.Timestamp})
	}
	return card, nil
}

// Keywords builds a card for a keyword cloud.
func (b *Builder) Keywords(ownerID string, cloud []journal.Keyword) (Card, error) {
	payload, err := json.Marshal(cloud)
	if err != nil {
		return Card{}, fmt.Errorf("encode keywords: %w", err)
	}
	id, now := b.stamp()
	words := make([]string, len(cloud))
	scores := make(map[string]float64, len(cloud))
	for i, k := range cloud {
		words[i] = fmt.Sprintf("%s (%d)", k.Word, k.Count)
		scores[k.Word] = k.Weight
	}
	bullets := []string{}
	if len(words) > 0 {
		bullets = append(bullets, strings.Join(words, ", "))
	}
	return Card{
		ID:        id,
		Kind:      KindKeywords,
		OwnerID:   ownerID,
		Title:     fmt.Sprintf("Top %d keywords", len(cloud)),
		Bullets:   bullets,
		Scores:    scores,
		CreatedAt: now,
		Payload:   payload,
	}, nil
}

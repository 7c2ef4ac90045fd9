package store

import (
	"context"
	"strings"
	"time"

	"github.com/cognicore/keo/pkg/keo/cards"
	"github.com/cognicore/keo/pkg/keo/journal"
)

// Store persists journal entries and report cards. It doubles as the corpus
// provider for the insight engine through FetchRecent.
type Store interface {
	Close() error

	// Entries
	CreateEntry(ctx context.Context, e NewEntry) (journal.Document, error)
	UpdateEntry(ctx context.Context, id int64, text string) (journal.Document, error)
	GetEntry(ctx context.Context, id int64) (journal.Document, error)
	ListEntries(ctx context.Context, ownerID string, limit int) ([]journal.Document, error)
	FetchRecent(ctx context.Context, ownerID string, excludeID int64, limit int) ([]journal.Document, error)

	// Cards
	SaveCard(ctx context.Context, c cards.Card) error
	ListCards(ctx context.Context, ownerID string, kind cards.Kind, limit int) ([]cards.Card, error)
}

// NewEntry is an entry to be created. A zero CreatedAt means now.
type NewEntry struct {
	OwnerID   string
	Title     string
	Text      string
	CreatedAt time.Time
}

// DefaultListLimit applies when a list call passes a non-positive limit.
const DefaultListLimit = 100

// Limit normalises a caller-supplied limit.
func Limit(n int) int {
	if n <= 0 {
		return DefaultListLimit
	}
	return n
}

// Valid reports whether e has an owner.
func (e NewEntry) Valid() bool {
	return strings.TrimSpace(e.OwnerID) != ""
}

// NextVersion returns now, or one nanosecond after prev when the clock has
// not moved past it, so every edit yields a distinct version.
func NextVersion(prev, now time.Time) time.Time {
	if !now.After(prev) {
		return prev.Add(time.Nanosecond)
	}
	return now
}

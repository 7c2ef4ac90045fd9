package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/cognicore/keo/pkg/keo/cards"
	"github.com/cognicore/keo/pkg/keo/internalerr"
	"github.com/cognicore/keo/pkg/keo/journal"
	"github.com/cognicore/keo/pkg/keo/store"
)

// Store is an in-memory implementation of store.Store for tests and
// one-shot CLI runs.
type Store struct {
	mu      sync.RWMutex
	nextID  int64
	entries map[int64]journal.Document
	cards   []cards.Card
	now     func() time.Time
}

var _ store.Store = (*Store)(nil)

// New creates a new in-memory store.
func New() *Store {
	return NewWithClock(time.Now)
}

// NewWithClock creates a store that stamps entries with now().
func NewWithClock(now func() time.Time) *Store {
	return &Store{
		nextID:  1,
		entries: make(map[int64]journal.Document),
		now:     now,
	}
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

func (s *Store) CreateEntry(ctx context.Context, e store.NewEntry) (journal.Document, error) {
	if err := ctx.Err(); err != nil {
		return journal.Document{}, err
	}
	if !e.Valid() {
		return journal.Document{}, fmt.Errorf("%w: entry without owner", internalerr.ErrInvalidInput)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	created := e.CreatedAt
	if created.IsZero() {
		created = s.now()
	}
	d := journal.Document{
		ID:        s.nextID,
		OwnerID:   e.OwnerID,
		Title:     e.Title,
		Text:      e.Text,
		Timestamp: created.UTC(),
		Version:   created.UTC(),
	}
	s.nextID++
	s.entries[d.ID] = d
	return d, nil
}

func (s *Store) UpdateEntry(ctx context.Context, id int64, text string) (journal.Document, error) {
	if err := ctx.Err(); err != nil {
		return journal.Document{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.entries[id]
	if !ok {
		return journal.Document{}, fmt.Errorf("entry %d: %w", id, internalerr.ErrNotFound)
	}
	d.Text = text
	d.Version = store.NextVersion(d.Version, s.now().UTC())
	s.entries[id] = d
	return d, nil
}

func (s *Store) GetEntry(ctx context.Context, id int64) (journal.Document, error) {
	if err := ctx.Err(); err != nil {
		return journal.Document{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.entries[id]
	if !ok {
		return journal.Document{}, fmt.Errorf("entry %d: %w", id, internalerr.ErrNotFound)
	}
	return d, nil
}

func (s *Store) ListEntries(ctx context.Context, ownerID string, limit int) ([]journal.Document, error) {
	return s.FetchRecent(ctx, ownerID, 0, limit)
}

// FetchRecent returns the owner's entries newest first, skipping excludeID.
func (s *Store) FetchRecent(ctx context.Context, ownerID string, excludeID int64, limit int) ([]journal.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	var out []journal.Document
	for _, d := range s.entries {
		if d.OwnerID == ownerID && d.ID != excludeID {
			out = append(out, d)
		}
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].Timestamp.After(out[j].Timestamp)
		}
		return out[i].ID > out[j].ID
	})
	if limit = store.Limit(limit); len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *Store) SaveCard(ctx context.Context, c cards.Card) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.cards {
		if s.cards[i].ID == c.ID {
			s.cards[i] = c
			return nil
		}
	}
	s.cards = append(s.cards, c)
	return nil
}

// ListCards returns the owner's cards of kind newest first; an empty kind
// matches every kind.
func (s *Store) ListCards(ctx context.Context, ownerID string, kind cards.Kind, limit int) ([]cards.Card, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	var out []cards.Card
	for _, c := range s.cards {
		if c.OwnerID == ownerID && (kind == "" || c.Kind == kind) {
			out = append(out, c)
		}
	}
	s.mu.RUnlock()

	// ULIDs sort by creation time
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if limit = store.Limit(limit); len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

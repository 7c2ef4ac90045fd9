// Package storetest holds behaviour tests shared by every store.Store
// implementation.
package storetest

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/cognicore/keo/pkg/keo/cards"
	"github.com/cognicore/keo/pkg/keo/internalerr"
	"github.com/cognicore/keo/pkg/keo/journal"
	"github.com/cognicore/keo/pkg/keo/store"
)

// Clock is a settable clock for stores under test.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

func NewClock(start time.Time) *Clock { return &Clock{now: start} }

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *Clock) Set(t time.Time) {
	c.mu.Lock()
	c.now = t
	c.mu.Unlock()
}

// Opener returns a fresh, empty store using clock for timestamps.
type Opener func(t *testing.T, clock func() time.Time) store.Store

var start = time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)

// Run exercises the store.Store contract.
func Run(t *testing.T, open Opener) {
	t.Run("CreateAndGet", func(t *testing.T) { testCreateAndGet(t, open) })
	t.Run("RejectsMissingOwner", func(t *testing.T) { testRejectsMissingOwner(t, open) })
	t.Run("NotFound", func(t *testing.T) { testNotFound(t, open) })
	t.Run("UpdateBumpsVersion", func(t *testing.T) { testUpdateBumpsVersion(t, open) })
	t.Run("FetchRecent", func(t *testing.T) { testFetchRecent(t, open) })
	t.Run("Cards", func(t *testing.T) { testCards(t, open) })
}

func testCreateAndGet(t *testing.T, open Opener) {
	clock := NewClock(start)
	st := open(t, clock.Now)
	ctx := context.Background()

	d, err := st.CreateEntry(ctx, store.NewEntry{OwnerID: "u1", Title: "Monday", Text: "Long day at work."})
	if err != nil {
		t.Fatalf("CreateEntry: %v", err)
	}
	if d.ID == 0 {
		t.Fatal("expected an id")
	}
	if !d.Timestamp.Equal(start) || !d.Version.Equal(start) {
		t.Errorf("timestamps = %s / %s, want %s", d.Timestamp, d.Version, start)
	}

	got, err := st.GetEntry(ctx, d.ID)
	if err != nil {
		t.Fatalf("GetEntry: %v", err)
	}
	if got.OwnerID != "u1" || got.Title != "Monday" || got.Text != "Long day at work." {
		t.Errorf("got %+v", got)
	}

	at := start.Add(-48 * time.Hour)
	imported, err := st.CreateEntry(ctx, store.NewEntry{OwnerID: "u1", Text: "older", CreatedAt: at})
	if err != nil {
		t.Fatal(err)
	}
	if !imported.Timestamp.Equal(at) {
		t.Errorf("explicit created_at lost: %s", imported.Timestamp)
	}
}

func testRejectsMissingOwner(t *testing.T, open Opener) {
	st := open(t, time.Now)
	_, err := st.CreateEntry(context.Background(), store.NewEntry{OwnerID: "  ", Text: "x"})
	if !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Errorf("err = %v, want ErrInvalidInput", err)
	}
}

func testNotFound(t *testing.T, open Opener) {
	st := open(t, time.Now)
	ctx := context.Background()
	if _, err := st.GetEntry(ctx, 999); !errors.Is(err, internalerr.ErrNotFound) {
		t.Errorf("GetEntry err = %v, want ErrNotFound", err)
	}
	if _, err := st.UpdateEntry(ctx, 999, "x"); !errors.Is(err, internalerr.ErrNotFound) {
		t.Errorf("UpdateEntry err = %v, want ErrNotFound", err)
	}
}

func testUpdateBumpsVersion(t *testing.T, open Opener) {
	clock := NewClock(start)
	st := open(t, clock.Now)
	ctx := context.Background()

	d, err := st.CreateEntry(ctx, store.NewEntry{OwnerID: "u1", Text: "draft"})
	if err != nil {
		t.Fatal(err)
	}
	// clock has not moved: the version must still change
	same, err := st.UpdateEntry(ctx, d.ID, "draft two")
	if err != nil {
		t.Fatal(err)
	}
	if !same.Version.After(d.Version) {
		t.Errorf("version %s not after %s", same.Version, d.Version)
	}
	if !same.Timestamp.Equal(d.Timestamp) {
		t.Error("update changed created time")
	}

	clock.Set(start.Add(time.Hour))
	later, err := st.UpdateEntry(ctx, d.ID, "final")
	if err != nil {
		t.Fatal(err)
	}
	if !later.Version.Equal(start.Add(time.Hour)) || later.Text != "final" {
		t.Errorf("got %+v", later)
	}
}

func testFetchRecent(t *testing.T, open Opener) {
	clock := NewClock(start)
	st := open(t, clock.Now)
	ctx := context.Background()

	var ids []int64
	for i := 0; i < 4; i++ {
		clock.Set(start.Add(time.Duration(i) * time.Hour))
		d, err := st.CreateEntry(ctx, store.NewEntry{OwnerID: "u1", Text: "entry"})
		if err != nil {
			t.Fatal(err)
		}
		ids = append(ids, d.ID)
	}
	if _, err := st.CreateEntry(ctx, store.NewEntry{OwnerID: "u2", Text: "someone else"}); err != nil {
		t.Fatal(err)
	}

	recent, err := st.FetchRecent(ctx, "u1", ids[3], 2)
	if err != nil {
		t.Fatal(err)
	}
	want := []int64{ids[2], ids[1]}
	if got := docIDs(recent); !equal(got, want) {
		t.Errorf("FetchRecent = %v, want %v", got, want)
	}

	all, err := st.ListEntries(ctx, "u1", 0)
	if err != nil {
		t.Fatal(err)
	}
	if got := docIDs(all); !equal(got, []int64{ids[3], ids[2], ids[1], ids[0]}) {
		t.Errorf("ListEntries = %v", got)
	}

	none, err := st.FetchRecent(ctx, "nobody", 0, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(none) != 0 {
		t.Errorf("expected no entries, got %d", len(none))
	}
}

func testCards(t *testing.T, open Opener) {
	clock := NewClock(start)
	st := open(t, clock.Now)
	ctx := context.Background()
	b := cards.NewWithClock(clock.Now)

	entryCard, err := b.Entry(journal.Document{ID: 1, OwnerID: "u1"}, journal.Insight{Summary: "s", SentimentScore: 0.7}, nil)
	if err != nil {
		t.Fatal(err)
	}
	clock.Set(start.Add(time.Minute))
	kwCard, err := b.Keywords("u1", []journal.Keyword{{Word: "coffee", Count: 2, Weight: 1}})
	if err != nil {
		t.Fatal(err)
	}
	otherCard, err := b.Keywords("u2", nil)
	if err != nil {
		t.Fatal(err)
	}
	for _, c := range []cards.Card{entryCard, kwCard, otherCard} {
		if err := st.SaveCard(ctx, c); err != nil {
			t.Fatalf("SaveCard: %v", err)
		}
	}
	// saving again replaces
	entryCard.Title = "renamed"
	if err := st.SaveCard(ctx, entryCard); err != nil {
		t.Fatal(err)
	}

	all, err := st.ListCards(ctx, "u1", "", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 || all[0].ID != kwCard.ID || all[1].ID != entryCard.ID {
		t.Fatalf("ListCards = %+v", all)
	}
	if all[1].Title != "renamed" || all[1].Scores["sentiment"] != 0.7 || all[1].Bullets[0] != "s" {
		t.Errorf("entry card = %+v", all[1])
	}
	if len(all[1].Payload) == 0 {
		t.Error("payload lost")
	}

	onlyKW, err := st.ListCards(ctx, "u1", cards.KindKeywords, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(onlyKW) != 1 || onlyKW[0].Kind != cards.KindKeywords {
		t.Errorf("ListCards(keywords) = %+v", onlyKW)
	}
}

func docIDs(docs []journal.Document) []int64 {
	out := make([]int64, len(docs))
	for i, d := range docs {
		out[i] = d.ID
	}
	return out
}

func equal(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

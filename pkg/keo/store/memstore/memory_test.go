package memstore

import (
	"context"
	"testing"
	"time"

	"github.com/cognicore/keo/pkg/keo/store"
	"github.com/cognicore/keo/pkg/keo/store/storetest"
)

func TestStoreContract(t *testing.T) {
	storetest.Run(t, func(t *testing.T, clock func() time.Time) store.Store {
		return NewWithClock(clock)
	})
}

func TestCancelledContext(t *testing.T) {
	s := New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := s.FetchRecent(ctx, "u1", 0, 10); err == nil {
		t.Error("expected context error")
	}
	if _, err := s.CreateEntry(ctx, store.NewEntry{OwnerID: "u1"}); err == nil {
		t.Error("expected context error")
	}
}

func TestReturnedEntriesAreCopies(t *testing.T) {
	s := New()
	ctx := context.Background()
	d, err := s.CreateEntry(ctx, store.NewEntry{OwnerID: "u1", Text: "original"})
	if err != nil {
		t.Fatal(err)
	}
	list, _ := s.ListEntries(ctx, "u1", 10)
	list[0].Text = "mutated"

	got, _ := s.GetEntry(ctx, d.ID)
	if got.Text != "original" {
		t.Errorf("store mutated through returned slice: %q", got.Text)
	}
}

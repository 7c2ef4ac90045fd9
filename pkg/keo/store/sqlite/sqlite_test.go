package sqlite

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/cognicore/keo/pkg/keo/store"
	"github.com/cognicore/keo/pkg/keo/store/storetest"
)

func open(t *testing.T, clock func() time.Time) store.Store {
	t.Helper()
	st, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "keo.db"), WithClock(clock))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func TestStoreContract(t *testing.T) {
	storetest.Run(t, open)
}

func TestReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "keo.db")

	st, err := OpenSQLite(ctx, path)
	if err != nil {
		t.Fatal(err)
	}
	d, err := st.CreateEntry(ctx, store.NewEntry{OwnerID: "u1", Text: "persist me"})
	if err != nil {
		t.Fatal(err)
	}
	st.Close()

	st, err = OpenSQLite(ctx, path)
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()
	got, err := st.GetEntry(ctx, d.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Text != "persist me" || !got.Version.Equal(d.Version) {
		t.Errorf("got %+v, want %+v", got, d)
	}
}

func TestTimeLayoutOrdersLexically(t *testing.T) {
	a := formatTime(time.Date(2026, 1, 1, 0, 0, 5, 0, time.UTC))
	b := formatTime(time.Date(2026, 1, 1, 0, 0, 5, 100, time.UTC))
	if !(a < b) {
		t.Errorf("%q should sort before %q", a, b)
	}
	parsed, err := parseTime(b)
	if err != nil {
		t.Fatal(err)
	}
	if parsed.Nanosecond() != 100 {
		t.Errorf("nanoseconds lost: %v", parsed)
	}
}

func TestConcurrentWrites(t *testing.T) {
	st := open(t, time.Now)
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := st.CreateEntry(ctx, store.NewEntry{OwnerID: "u1", Text: fmt.Sprintf("entry %d", i)}); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Errorf("CreateEntry: %v", err)
	}

	all, err := st.ListEntries(ctx, "u1", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 20 {
		t.Errorf("got %d entries, want 20", len(all))
	}
}

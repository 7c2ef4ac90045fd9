// Package cache memoizes entry insights by (entry id, version) with a TTL.
//
// The backing store is pluggable: an in-process map (default), a bounded LRU,
// or Redis for sharing across instances. Backing failures never reach the
// caller; the insight is computed directly and memoization is skipped.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/cognicore/keo/internal/logger"
	"github.com/cognicore/keo/pkg/keo/journal"
)

// DefaultTTL is how long a stored insight stays fresh.
const DefaultTTL = time.Hour

// Key identifies one version of one entry. A new version is a new key, so
// edits never need explicit invalidation.
type Key struct {
	ID      int64
	Version string
}

// KeyFor builds a key from an entry's last-modified time.
func KeyFor(id int64, version time.Time) Key {
	return Key{ID: id, Version: version.UTC().Format(time.RFC3339Nano)}
}

func (k Key) String() string { return fmt.Sprintf("%d@%s", k.ID, k.Version) }

// Entry is a stored insight with the time it was computed.
type Entry struct {
	Insight  journal.Insight `json:"insight"`
	StoredAt time.Time       `json:"stored_at"`
}

// Backing is the minimal store behind the cache.
type Backing interface {
	Get(ctx context.Context, key Key) (Entry, bool, error)
	Put(ctx context.Context, key Key, e Entry) error
}

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// Option configures a Cache.
type Option func(*Cache)

// WithTTL sets the freshness window. Non-positive values are ignored.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithClock replaces the wall clock.
func WithClock(clock Clock) Option {
	return func(c *Cache) { c.clock = clock }
}

// WithLogger sets the logger for backing failures.
func WithLogger(l *logger.Logger) Option {
	return func(c *Cache) { c.log = logger.OrNop(l) }
}

// Cache is safe for concurrent use. Concurrent misses on the same key are
// collapsed into a single computation.
type Cache struct {
	backing Backing
	ttl     time.Duration
	clock   Clock
	log     *logger.Logger
	flight  singleflight.Group
}

// New creates a cache over backing; nil uses an in-process map.
func New(backing Backing, opts ...Option) *Cache {
	if backing == nil {
		backing = NewMap()
	}
	c := &Cache{
		backing: backing,
		ttl:     DefaultTTL,
		clock:   ClockFunc(time.Now),
		log:     logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// TTL returns the freshness window.
func (c *Cache) TTL() time.Duration { return c.ttl }

// Compute produces the insight for a key. A non-nil error means the insight
// is a stand-in (missing inputs, failed model call) and is returned to the
// caller without being stored.
type Compute func(ctx context.Context) (journal.Insight, error)

// GetOrCompute returns the stored insight for key when it is still fresh,
// otherwise runs compute, stores the result and returns it. Results computed
// under a cancelled context are never stored, and a live caller that joined a
// cancelled computation computes again on its own.
func (c *Cache) GetOrCompute(ctx context.Context, key Key, compute Compute) journal.Insight {
	if e, ok := c.lookup(ctx, key); ok {
		return e.Insight
	}

	v, err, shared := c.flight.Do(key.String(), func() (any, error) {
		// another caller may have stored it while we waited
		if e, ok := c.lookup(ctx, key); ok {
			return e.Insight, nil
		}
		return c.fill(ctx, key, compute)
	})
	if shared && ctx.Err() == nil && (errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)) {
		insight, _ := c.fill(ctx, key, compute)
		return insight
	}
	return v.(journal.Insight)
}

func (c *Cache) fill(ctx context.Context, key Key, compute Compute) (journal.Insight, error) {
	insight, err := compute(ctx)
	if cerr := ctx.Err(); cerr != nil {
		err = cerr
	}
	if err != nil {
		c.log.Debug("insight not cached", "key", key.String(), "error", err)
		return insight, err
	}
	if err := c.backing.Put(ctx, key, Entry{Insight: insight, StoredAt: c.clock.Now()}); err != nil {
		c.log.Warn("insight cache put failed", "key", key.String(), "error", err)
	}
	return insight, nil
}

func (c *Cache) lookup(ctx context.Context, key Key) (Entry, bool) {
	e, ok, err := c.backing.Get(ctx, key)
	if err != nil {
		c.log.Warn("insight cache get failed", "key", key.String(), "error", err)
		return Entry{}, false
	}
	if !ok || c.clock.Now().Sub(e.StoredAt) > c.ttl {
		return Entry{}, false
	}
	return e, true
}

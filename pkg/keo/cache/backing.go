package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/redis/go-redis/v9"

	"github.com/cognicore/keo/pkg/keo/internalerr"
)

// Map is an unbounded in-process backing. Entries for old versions are
// never evicted; use LRU when memory growth matters.
type Map struct {
	mu      sync.RWMutex
	entries map[Key]Entry
}

func NewMap() *Map {
	return &Map{entries: make(map[Key]Entry)}
}

func (m *Map) Get(_ context.Context, key Key) (Entry, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.entries[key]
	return e, ok, nil
}

func (m *Map) Put(_ context.Context, key Key, e Entry) error {
	m.mu.Lock()
	m.entries[key] = e
	m.mu.Unlock()
	return nil
}

// Len returns the number of stored entries.
func (m *Map) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// LRU is a bounded in-process backing.
type LRU struct {
	entries *lru.Cache[Key, Entry]
}

func NewLRU(size int) (*LRU, error) {
	c, err := lru.New[Key, Entry](size)
	if err != nil {
		return nil, fmt.Errorf("lru backing: %w", err)
	}
	return &LRU{entries: c}, nil
}

func (l *LRU) Get(_ context.Context, key Key) (Entry, bool, error) {
	e, ok := l.entries.Get(key)
	return e, ok, nil
}

func (l *LRU) Put(_ context.Context, key Key, e Entry) error {
	l.entries.Add(key, e)
	return nil
}

func (l *LRU) Len() int { return l.entries.Len() }

// Redis stores entries as JSON so several processes share one cache.
// Keys expire after the TTL on the server side as well.
type Redis struct {
	client redis.UniversalClient
	prefix string
	expiry time.Duration
}

func NewRedis(client redis.UniversalClient, prefix string, expiry time.Duration) *Redis {
	if prefix == "" {
		prefix = "keo:insight:"
	}
	return &Redis{client: client, prefix: prefix, expiry: expiry}
}

func (r *Redis) key(k Key) string { return r.prefix + k.String() }

func (r *Redis) Get(ctx context.Context, key Key) (Entry, bool, error) {
	raw, err := r.client.Get(ctx, r.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, fmt.Errorf("%w: %v", internalerr.ErrCacheBacking, err)
	}
	var e Entry
	if err := json.Unmarshal(raw, &e); err != nil {
		return Entry{}, false, fmt.Errorf("%w: decode %s: %v", internalerr.ErrCacheBacking, r.key(key), err)
	}
	return e, true, nil
}

func (r *Redis) Put(ctx context.Context, key Key, e Entry) error {
	raw, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("%w: encode: %v", internalerr.ErrCacheBacking, err)
	}
	if err := r.client.Set(ctx, r.key(key), raw, r.expiry).Err(); err != nil {
		return fmt.Errorf("%w: %v", internalerr.ErrCacheBacking, err)
	}
	return nil
}

// Package postgres is a store.Store on PostgreSQL via a pgx connection pool.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cognicore/keo/pkg/keo/cards"
	"github.com/cognicore/keo/pkg/keo/internalerr"
	"github.com/cognicore/keo/pkg/keo/journal"
	"github.com/cognicore/keo/pkg/keo/store"
)

type pgStore struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

// Open connects to dsn, verifies the connection and creates the schema.
func Open(ctx context.Context, dsn string) (store.Store, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: parse dsn: %v", internalerr.ErrInvalidConfig, err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", internalerr.ErrStoreUnavailable, err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%w: ping: %v", internalerr.ErrStoreUnavailable, err)
	}
	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return &pgStore{pool: pool, now: time.Now}, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS journal_entries (
	id BIGSERIAL PRIMARY KEY,
	owner_id TEXT NOT NULL,
	title TEXT NOT NULL DEFAULT '',
	content TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_journal_entries_owner_created
	ON journal_entries(owner_id, created_at DESC);

CREATE TABLE IF NOT EXISTS insight_cards (
	id TEXT PRIMARY KEY,
	kind TEXT NOT NULL,
	owner_id TEXT NOT NULL,
	entry_id BIGINT,
	title TEXT NOT NULL DEFAULT '',
	bullets JSONB,
	sources JSONB,
	scores JSONB,
	created_at TIMESTAMPTZ NOT NULL,
	payload JSONB
);

CREATE INDEX IF NOT EXISTS idx_insight_cards_owner_kind ON insight_cards(owner_id, kind);
`

func (s *pgStore) Close() error {
	s.pool.Close()
	return nil
}

const entryColumns = `id, owner_id, title, content, created_at, updated_at`

func scanEntry(row pgx.Row) (journal.Document, error) {
	var d journal.Document
	if err := row.Scan(&d.ID, &d.OwnerID, &d.Title, &d.Text, &d.Timestamp, &d.Version); err != nil {
		return journal.Document{}, err
	}
	d.Timestamp = d.Timestamp.UTC()
	d.Version = d.Version.UTC()
	return d, nil
}

func (s *pgStore) CreateEntry(ctx context.Context, e store.NewEntry) (journal.Document, error) {
	if !e.Valid() {
		return journal.Document{}, fmt.Errorf("%w: entry without owner", internalerr.ErrInvalidInput)
	}
	created := e.CreatedAt
	if created.IsZero() {
		created = s.now()
	}
	// timestamptz keeps microseconds
	created = created.UTC().Truncate(time.Microsecond)
	row := s.pool.QueryRow(ctx, `
INSERT INTO journal_entries (owner_id, title, content, created_at, updated_at)
VALUES ($1, $2, $3, $4, $4)
RETURNING `+entryColumns, e.OwnerID, e.Title, e.Text, created)
	d, err := scanEntry(row)
	if err != nil {
		return journal.Document{}, fmt.Errorf("insert entry: %w", err)
	}
	return d, nil
}

func (s *pgStore) UpdateEntry(ctx context.Context, id int64, text string) (journal.Document, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return journal.Document{}, fmt.Errorf("%w: %v", internalerr.ErrStoreUnavailable, err)
	}
	defer tx.Rollback(ctx)

	var prev time.Time
	err = tx.QueryRow(ctx, `SELECT updated_at FROM journal_entries WHERE id = $1 FOR UPDATE`, id).Scan(&prev)
	if errors.Is(err, pgx.ErrNoRows) {
		return journal.Document{}, fmt.Errorf("entry %d: %w", id, internalerr.ErrNotFound)
	}
	if err != nil {
		return journal.Document{}, err
	}
	version := store.NextVersion(prev, s.now().UTC().Truncate(time.Microsecond))
	if version.Sub(prev) < time.Microsecond {
		version = prev.Add(time.Microsecond)
	}
	d, err := scanEntry(tx.QueryRow(ctx, `
UPDATE journal_entries SET content = $1, updated_at = $2 WHERE id = $3
RETURNING `+entryColumns, text, version, id))
	if err != nil {
		return journal.Document{}, fmt.Errorf("update entry: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return journal.Document{}, err
	}
	return d, nil
}

func (s *pgStore) GetEntry(ctx context.Context, id int64) (journal.Document, error) {
	d, err := scanEntry(s.pool.QueryRow(ctx, `SELECT `+entryColumns+` FROM journal_entries WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return journal.Document{}, fmt.Errorf("entry %d: %w", id, internalerr.ErrNotFound)
	}
	return d, err
}

func (s *pgStore) ListEntries(ctx context.Context, ownerID string, limit int) ([]journal.Document, error) {
	return s.FetchRecent(ctx, ownerID, 0, limit)
}

func (s *pgStore) FetchRecent(ctx context.Context, ownerID string, excludeID int64, limit int) ([]journal.Document, error) {
	rows, err := s.pool.Query(ctx, `
SELECT `+entryColumns+`
FROM journal_entries
WHERE owner_id = $1 AND id <> $2
ORDER BY created_at DESC, id DESC
LIMIT $3`, ownerID, excludeID, store.Limit(limit))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", internalerr.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	var out []journal.Document
	for rows.Next() {
		d, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (s *pgStore) SaveCard(ctx context.Context, c cards.Card) error {
	bullets, err := json.Marshal(c.Bullets)
	if err != nil {
		return err
	}
	sources, err := json.Marshal(c.Sources)
	if err != nil {
		return err
	}
	scores, err := json.Marshal(c.Scores)
	if err != nil {
		return err
	}
	var payload []byte
	if len(c.Payload) > 0 {
		payload = c.Payload
	}
	_, err = s.pool.Exec(ctx, `
INSERT INTO insight_cards (id, kind, owner_id, entry_id, title, bullets, sources, scores, created_at, payload)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
ON CONFLICT (id) DO UPDATE SET
	kind = EXCLUDED.kind,
	owner_id = EXCLUDED.owner_id,
	entry_id = EXCLUDED.entry_id,
	title = EXCLUDED.title,
	bullets = EXCLUDED.bullets,
	sources = EXCLUDED.sources,
	scores = EXCLUDED.scores,
	created_at = EXCLUDED.created_at,
	payload = EXCLUDED.payload`,
		c.ID, string(c.Kind), c.OwnerID, c.EntryID, c.Title, bullets, sources, scores, c.CreatedAt, payload)
	if err != nil {
		return fmt.Errorf("save card %s: %w", c.ID, err)
	}
	return nil
}

func (s *pgStore) ListCards(ctx context.Context, ownerID string, kind cards.Kind, limit int) ([]cards.Card, error) {
	rows, err := s.pool.Query(ctx, `
SELECT id, kind, owner_id, COALESCE(entry_id, 0), title, bullets, sources, scores, created_at, payload
FROM insight_cards
WHERE owner_id = $1 AND ($2 = '' OR kind = $2)
ORDER BY id DESC
LIMIT $3`, ownerID, string(kind), store.Limit(limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []cards.Card
	for rows.Next() {
		var (
			c                                 cards.Card
			kindRaw                           string
			bullets, sources, scores, payload []byte
		)
		if err := rows.Scan(&c.ID, &kindRaw, &c.OwnerID, &c.EntryID, &c.Title, &bullets, &sources, &scores, &c.CreatedAt, &payload); err != nil {
			return nil, err
		}
		c.Kind = cards.Kind(kindRaw)
		c.CreatedAt = c.CreatedAt.UTC()
		for _, f := range []struct {
			raw []byte
			dst any
		}{{bullets, &c.Bullets}, {sources, &c.Sources}, {scores, &c.Scores}} {
			if len(f.raw) == 0 {
				continue
			}
			if err := json.Unmarshal(f.raw, f.dst); err != nil {
				return nil, fmt.Errorf("card %s: %w", c.ID, err)
			}
		}
		if len(payload) > 0 {
			c.Payload = json.RawMessage(payload)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

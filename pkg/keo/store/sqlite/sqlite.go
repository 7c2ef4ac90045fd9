package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cognicore/keo/pkg/keo/cards"
	"github.com/cognicore/keo/pkg/keo/internalerr"
	"github.com/cognicore/keo/pkg/keo/journal"
	"github.com/cognicore/keo/pkg/keo/store"
)

// fixed-width so lexical order matches time order
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// sqliteStore implements the Store interface using SQLite
type sqliteStore struct {
	db  *sql.DB
	now func() time.Time
}

// Option configures OpenSQLite.
type Option func(*sqliteStore)

// WithClock replaces the wall clock used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *sqliteStore) { s.now = now }
}

// OpenSQLite opens a SQLite database with WAL mode enabled and creates the
// schema if needed.
func OpenSQLite(ctx context.Context, path string, opts ...Option) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// one writer at a time; pragmas below then apply to every statement
	db.SetMaxOpenConns(1)

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", internalerr.ErrStoreUnavailable, err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout=5000"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	s := &sqliteStore{db: db, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS entries (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	owner_id TEXT NOT NULL,
	title TEXT NOT NULL DEFAULT '',
	content TEXT NOT NULL,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_entries_owner_created ON entries(owner_id, created_at DESC);

CREATE TABLE IF NOT EXISTS cards (
	id TEXT PRIMARY KEY,
	kind TEXT NOT NULL,
	owner_id TEXT NOT NULL,
	entry_id INTEGER,
	title TEXT,
	bullets TEXT,
	sources TEXT,
	scores TEXT,
	created_at TEXT NOT NULL,
	payload TEXT
);

CREATE INDEX IF NOT EXISTS idx_cards_owner_kind ON cards(owner_id, kind);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

func formatTime(t time.Time) string { return t.UTC().Format(timeLayout) }

func parseTime(s string) (time.Time, error) { return time.Parse(timeLayout, s) }

func (s *sqliteStore) CreateEntry(ctx context.Context, e store.NewEntry) (journal.Document, error) {
	if !e.Valid() {
		return journal.Document{}, fmt.Errorf("%w: entry without owner", internalerr.ErrInvalidInput)
	}
	created := e.CreatedAt
	if created.IsZero() {
		created = s.now()
	}
	ts := formatTime(created)
	res, err := s.db.ExecContext(ctx, `
INSERT INTO entries (owner_id, title, content, created_at, updated_at)
VALUES (?, ?, ?, ?, ?)`, e.OwnerID, e.Title, e.Text, ts, ts)
	if err != nil {
		return journal.Document{}, fmt.Errorf("insert entry: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return journal.Document{}, err
	}
	return s.GetEntry(ctx, id)
}

func (s *sqliteStore) UpdateEntry(ctx context.Context, id int64, text string) (journal.Document, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return journal.Document{}, err
	}
	defer tx.Rollback()

	var prevRaw string
	err = tx.QueryRowContext(ctx, `SELECT updated_at FROM entries WHERE id = ?`, id).Scan(&prevRaw)
	if errors.Is(err, sql.ErrNoRows) {
		return journal.Document{}, fmt.Errorf("entry %d: %w", id, internalerr.ErrNotFound)
	}
	if err != nil {
		return journal.Document{}, err
	}
	prev, err := parseTime(prevRaw)
	if err != nil {
		return journal.Document{}, fmt.Errorf("entry %d: bad updated_at %q: %w", id, prevRaw, err)
	}
	version := store.NextVersion(prev, s.now().UTC())
	if _, err := tx.ExecContext(ctx, `UPDATE entries SET content = ?, updated_at = ? WHERE id = ?`,
		text, formatTime(version), id); err != nil {
		return journal.Document{}, fmt.Errorf("update entry: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return journal.Document{}, err
	}
	return s.GetEntry(ctx, id)
}

const entryColumns = `id, owner_id, title, content, created_at, updated_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (journal.Document, error) {
	var (
		d                journal.Document
		created, updated string
	)
	if err := row.Scan(&d.ID, &d.OwnerID, &d.Title, &d.Text, &created, &updated); err != nil {
		return journal.Document{}, err
	}
	var err error
	if d.Timestamp, err = parseTime(created); err != nil {
		return journal.Document{}, fmt.Errorf("entry %d: bad created_at: %w", d.ID, err)
	}
	if d.Version, err = parseTime(updated); err != nil {
		return journal.Document{}, fmt.Errorf("entry %d: bad updated_at: %w", d.ID, err)
	}
	return d, nil
}

func (s *sqliteStore) GetEntry(ctx context.Context, id int64) (journal.Document, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+entryColumns+` FROM entries WHERE id = ?`, id)
	d, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return journal.Document{}, fmt.Errorf("entry %d: %w", id, internalerr.ErrNotFound)
	}
	return d, err
}

func (s *sqliteStore) ListEntries(ctx context.Context, ownerID string, limit int) ([]journal.Document, error) {
	return s.FetchRecent(ctx, ownerID, 0, limit)
}

// FetchRecent returns the owner's entries newest first, skipping excludeID.
func (s *sqliteStore) FetchRecent(ctx context.Context, ownerID string, excludeID int64, limit int) ([]journal.Document, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT `+entryColumns+`
FROM entries
WHERE owner_id = ? AND id != ?
ORDER BY created_at DESC, id DESC
LIMIT ?`, ownerID, excludeID, store.Limit(limit))
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

func (s *sqliteStore) SaveCard(ctx context.Context, c cards.Card) error {
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
	_, err = s.db.ExecContext(ctx, `
INSERT INTO cards (id, kind, owner_id, entry_id, title, bullets, sources, scores, created_at, payload)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	kind = excluded.kind,
	owner_id = excluded.owner_id,
	entry_id = excluded.entry_id,
	title = excluded.title,
	bullets = excluded.bullets,
	sources = excluded.sources,
	scores = excluded.scores,
	created_at = excluded.created_at,
	payload = excluded.payload`,
		c.ID, string(c.Kind), c.OwnerID, c.EntryID, c.Title,
		string(bullets), string(sources), string(scores), formatTime(c.CreatedAt), string(c.Payload))
	if err != nil {
		return fmt.Errorf("save card %s: %w", c.ID, err)
	}
	return nil
}

// ListCards returns the owner's cards of kind newest first; an empty kind
// matches every kind.
func (s *sqliteStore) ListCards(ctx context.Context, ownerID string, kind cards.Kind, limit int) ([]cards.Card, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id, kind, owner_id, entry_id, title, bullets, sources, scores, created_at, payload
FROM cards
WHERE owner_id = ? AND (? = '' OR kind = ?)
ORDER BY id DESC
LIMIT ?`, ownerID, string(kind), string(kind), store.Limit(limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []cards.Card
	for rows.Next() {
		var (
			c                                 cards.Card
			kindRaw, created                  string
			bullets, sources, scores, payload sql.NullString
			entryID                           sql.NullInt64
			title                             sql.NullString
		)
		if err := rows.Scan(&c.ID, &kindRaw, &c.OwnerID, &entryID, &title, &bullets, &sources, &scores, &created, &payload); err != nil {
			return nil, err
		}
		c.Kind = cards.Kind(kindRaw)
		c.EntryID = entryID.Int64
		c.Title = title.String
		if c.CreatedAt, err = parseTime(created); err != nil {
			return nil, fmt.Errorf("card %s: bad created_at: %w", c.ID, err)
		}
		if err := decodeJSON(bullets, &c.Bullets); err != nil {
			return nil, fmt.Errorf("card %s bullets: %w", c.ID, err)
		}
		if err := decodeJSON(sources, &c.Sources); err != nil {
			return nil, fmt.Errorf("card %s sources: %w", c.ID, err)
		}
		if err := decodeJSON(scores, &c.Scores); err != nil {
			return nil, fmt.Errorf("card %s scores: %w", c.ID, err)
		}
		if payload.Valid && payload.String != "" {
			c.Payload = json.RawMessage(payload.String)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func decodeJSON(raw sql.NullString, v any) error {
	if !raw.Valid || raw.String == "" || raw.String == "null" {
		return nil
	}
	return json.Unmarshal([]byte(raw.String), v)
}

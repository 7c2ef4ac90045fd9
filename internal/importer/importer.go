// Package importer loads journal entries from JSON Lines exports.
package importer

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/cognicore/keo/internal/logger"
	"github.com/cognicore/keo/pkg/keo/ingest"
	"github.com/cognicore/keo/pkg/keo/journal"
	"github.com/cognicore/keo/pkg/keo/store"
)

// maxLine bounds a single JSONL record.
const maxLine = 4 << 20

// ErrNoEntries is returned when a file holds no usable records.
var ErrNoEntries = errors.New("importer: no valid entries")

type record struct {
	OwnerID   string `json:"owner_id"`
	Title     string `json:"title"`
	Text      string `json:"text"`
	CreatedAt string `json:"created_at"`
}

// Creator is the part of store.Store the importer writes to.
type Creator interface {
	CreateEntry(ctx context.Context, e store.NewEntry) (journal.Document, error)
}

// LoadFile reads entries from a JSONL file.
func LoadFile(path string, log *logger.Logger) ([]store.NewEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	entries, err := Load(f, log)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return entries, nil
}

// Load parses one entry per line. Blank lines are ignored; malformed lines,
// lines without an owner and lines with an unparseable created_at are
// skipped with a warning. Markup in text is reduced to plain text.
func Load(r io.Reader, log *logger.Logger) ([]store.NewEntry, error) {
	log = logger.OrNop(log)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLine)

	var entries []store.NewEntry
	line := 0
	for sc.Scan() {
		line++
		raw := strings.TrimSpace(sc.Text())
		if raw == "" {
			continue
		}
		var rec record
		if err := json.Unmarshal([]byte(raw), &rec); err != nil {
			log.Warn("skipping malformed line", "line", line, "error", err)
			continue
		}
		e, err := rec.entry()
		if err != nil {
			log.Warn("skipping invalid entry", "line", line, "error", err)
			continue
		}
		entries = append(entries, e)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, ErrNoEntries
	}
	return entries, nil
}

func (r record) entry() (store.NewEntry, error) {
	e := store.NewEntry{
		OwnerID: strings.TrimSpace(r.OwnerID),
		Title:   strings.TrimSpace(r.Title),
		Text:    r.Text,
	}
	if ingest.LooksLikeMarkup(e.Text) {
		e.Text = ingest.PlainText(e.Text)
	}
	if r.CreatedAt != "" {
		t, err := time.Parse(time.RFC3339, r.CreatedAt)
		if err != nil {
			return store.NewEntry{}, fmt.Errorf("created_at: %w", err)
		}
		e.CreatedAt = t.UTC()
	}
	if !e.Valid() {
		return store.NewEntry{}, errors.New("missing owner_id")
	}
	return e, nil
}

// Import writes entries to dst in order and returns how many were stored.
// It stops at the first store error.
func Import(ctx context.Context, dst Creator, entries []store.NewEntry) (int, error) {
	for i, e := range entries {
		if _, err := dst.CreateEntry(ctx, e); err != nil {
			return i, fmt.Errorf("entry %d: %w", i+1, err)
		}
	}
	return len(entries), nil
}

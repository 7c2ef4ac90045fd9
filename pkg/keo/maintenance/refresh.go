// Package maintenance re-runs analysis over stored entries, e.g. after the
// lexicon or config changed.
package maintenance

import (
	"context"
	"errors"

	"github.com/cognicore/keo/internal/logger"
	"github.com/cognicore/keo/pkg/keo/cards"
	"github.com/cognicore/keo/pkg/keo/journal"
	"github.com/cognicore/keo/pkg/keo/store"
)

// Analyzer is the part of keo.Engine the refresher needs.
type Analyzer interface {
	AnalyzeEntry(ctx context.Context, text string, id int64, ownerID string) journal.Insight
	Related(ctx context.Context, text string, id int64, ownerID string) []journal.Match
}

// Refresher rebuilds entry cards for an owner.
type Refresher struct {
	Store    store.Store
	Analyzer Analyzer
	Cards    *cards.Builder
	Log      *logger.Logger
}

// Result summarizes a refresh run.
type Result struct {
	Processed int
	Saved     int
	Errors    int
}

// Refresh analyzes up to limit of ownerID's newest entries and saves a fresh
// entry card for each. Per-entry failures are counted, not returned.
func (r *Refresher) Refresh(ctx context.Context, ownerID string, limit int) (Result, error) {
	var res Result
	if r.Store == nil || r.Analyzer == nil {
		return res, errors.New("refresher: invalid configuration")
	}
	builder := r.Cards
	if builder == nil {
		builder = cards.New()
	}
	log := logger.OrNop(r.Log)

	docs, err := r.Store.ListEntries(ctx, ownerID, limit)
	if err != nil {
		return res, err
	}
	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		res.Processed++

		insight := r.Analyzer.AnalyzeEntry(ctx, doc.Text, doc.ID, doc.OwnerID)
		card, err := builder.Entry(doc, insight, r.Analyzer.Related(ctx, doc.Text, doc.ID, doc.OwnerID))
		if err == nil {
			err = r.Store.SaveCard(ctx, card)
		}
		if err != nil {
			log.Warn("refresh entry failed", "entry", doc.ID, "error", err)
			res.Errors++
			continue
		}
		res.Saved++
	}
	return res, nil
}

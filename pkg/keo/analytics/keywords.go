package analytics

import (
	"sort"

	"github.com/cognicore/keo/pkg/keo/ingest"
	"github.com/cognicore/keo/pkg/keo/journal"
)

// DefaultTopKeywords is used when the caller asks for a non-positive count.
const DefaultTopKeywords = 30

const minKeywordLength = 3

// KeywordCloud counts content words across docs and returns the topN most
// frequent, weighted against the most frequent one. Words shorter than three
// characters, stopwords and numbers are skipped. Ties keep first-seen order.
func KeywordCloud(docs []journal.Document, topN int, stops ingest.StopSet) []journal.Keyword {
	if topN <= 0 {
		topN = DefaultTopKeywords
	}
	opts := []ingest.Option{ingest.WithMinLength(minKeywordLength), ingest.WithoutNumbers()}
	if stops != nil {
		opts = append(opts, ingest.WithStopwords(stops))
	}
	tok := ingest.NewTokenizer(opts...)

	counts := make(map[string]int)
	var order []string
	for _, d := range docs {
		for word := range tok.Words(d.Text) {
			if counts[word] == 0 {
				order = append(order, word)
			}
			counts[word]++
		}
	}
	if len(order) == 0 {
		return []journal.Keyword{}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > topN {
		order = order[:topN]
	}
	maxCount := counts[order[0]]
	out := make([]journal.Keyword, len(order))
	for i, w := range order {
		out[i] = journal.Keyword{
			Word:   w,
			Count:  counts[w],
			Weight: float64(counts[w]) / float64(maxCount),
		}
	}
	return out
}

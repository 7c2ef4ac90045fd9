// Package stoplist holds the stopword set used when building keyword clouds.
package stoplist

import (
	"sort"
	"strings"
)

// List is an immutable stopword set. Safe for concurrent use.
type List struct {
	stops map[string]struct{}
}

// New creates a list from the given terms (case-insensitive).
func New(terms []string) *List {
	stops := make(map[string]struct{}, len(terms))
	for _, s := range terms {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		stops[s] = struct{}{}
	}
	return &List{stops: stops}
}

// Default returns the built-in English stopword list.
func Default() *List {
	return New(defaultTerms)
}

// DefaultTerms returns a copy of the built-in English stopwords.
func DefaultTerms() []string {
	return append([]string(nil), defaultTerms...)
}

// IsStop checks if a token is a stopword
func (l *List) IsStop(token string) bool {
	if l == nil {
		return false
	}
	_, ok := l.stops[token]
	return ok
}

// Len returns the number of stopwords.
func (l *List) Len() int {
	if l == nil {
		return 0
	}
	return len(l.stops)
}

// All returns all stopwords, sorted.
func (l *List) All() []string {
	if l == nil {
		return nil
	}
	result := make([]string, 0, len(l.stops))
	for s := range l.stops {
		result = append(result, s)
	}
	sort.Strings(result)
	return result
}

var defaultTerms = []string{
	"the", "a", "an", "and", "or", "but", "if", "then", "than", "that", "this", "those", "these",
	"to", "of", "in", "on", "for", "from", "by", "with", "as", "at", "it", "its", "be", "is", "are",
	"was", "were", "am", "i", "you", "he", "she", "they", "we", "me", "him", "her", "them", "my",
	"your", "our", "their", "mine", "yours", "ours", "theirs", "not", "no", "so", "too", "very",
	"just", "about", "into", "over", "under", "again", "once", "also", "been", "being", "do",
	"does", "did", "doing", "have", "has", "had", "having", "can", "could", "should", "would",
	"may", "might", "must", "will", "shall", "up", "down", "out", "off", "more", "most", "some",
	"such", "other", "only", "own", "same", "both", "each", "few", "how", "why", "when", "where",
	"what", "who", "whom", "which",
}

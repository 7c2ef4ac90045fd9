package ingest

import (
	"iter"
	"strings"
	"unicode"
	"unicode/utf8"
)

// StopSet reports whether a token should be dropped.
type StopSet interface {
	IsStop(token string) bool
}

// Tokenizer splits text into lowercase word tokens.
// The zero value keeps every word; filters are opt-in.
type Tokenizer struct {
	stops       StopSet
	minLength   int
	dropNumeric bool
}

// Option configures a Tokenizer.
type Option func(*Tokenizer)

// WithStopwords drops tokens contained in s.
func WithStopwords(s StopSet) Option {
	return func(t *Tokenizer) { t.stops = s }
}

// WithMinLength drops tokens shorter than n runes.
func WithMinLength(n int) Option {
	return func(t *Tokenizer) { t.minLength = n }
}

// WithoutNumbers drops tokens made only of digits.
func WithoutNumbers() Option {
	return func(t *Tokenizer) { t.dropNumeric = true }
}

// NewTokenizer creates a tokenizer with the given filters.
func NewTokenizer(opts ...Option) *Tokenizer {
	t := &Tokenizer{}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

var plain = &Tokenizer{}

// Words yields the unfiltered word tokens of text.
func Words(text string) iter.Seq[string] {
	return plain.Words(text)
}

// Tokenize returns the unfiltered word tokens of text.
func Tokenize(text string) []string {
	return plain.Tokenize(text)
}

// Words lazily yields tokens: runs of letters, digits and underscores,
// lowercased. Everything else separates tokens.
func (t *Tokenizer) Words(text string) iter.Seq[string] {
	return func(yield func(string) bool) {
		var current strings.Builder
		flush := func() bool {
			if current.Len() == 0 {
				return true
			}
			word := current.String()
			current.Reset()
			if !t.keep(word) {
				return true
			}
			return yield(word)
		}

		for _, r := range text {
			if isWordRune(r) {
				current.WriteRune(unicode.ToLower(r))
				continue
			}
			if !flush() {
				return
			}
		}
		flush()
	}
}

// Tokenize collects Words into a slice.
func (t *Tokenizer) Tokenize(text string) []string {
	var tokens []string
	for w := range t.Words(text) {
		tokens = append(tokens, w)
	}
	return tokens
}

func (t *Tokenizer) keep(word string) bool {
	if t.minLength > 0 && utf8.RuneCountInString(word) < t.minLength {
		return false
	}
	if t.dropNumeric && isNumericOnly(word) {
		return false
	}
	if t.stops != nil && t.stops.IsStop(word) {
		return false
	}
	return true
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r) || r == '_'
}

// isNumericOnly returns true if the token contains only digits.
func isNumericOnly(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return s != ""
}

// Sentences splits text on terminal punctuation (. ! ?).
// Empty fragments are kept so callers can index the first sentence.
func Sentences(text string) []string {
	var out []string
	start := 0
	for i, r := range text {
		if r == '.' || r == '!' || r == '?' {
			out = append(out, text[start:i])
			start = i + 1
		}
	}
	return append(out, text[start:])
}

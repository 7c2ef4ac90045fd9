package lexicon

import (
	"fmt"
	"os"
	"slices"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/keo/pkg/keo/stoplist"
)

// Tables stores the reference vocabulary used by the analyzers:
// - Polarity: positive and negative word sets
// - Modifiers: negation words and intensifier weights
// - Categories: emotion and theme keyword phrases, in declaration order
// - Growth vocabulary and stopwords
//
// Tables is immutable once built and is shared by reference across
// goroutines without locking.
type Tables struct {
	positive     map[string]struct{}
	negative     map[string]struct{}
	negations    map[string]struct{}
	intensifiers map[string]float64
	emotions     []Category
	themes       []Category
	growth       []string
	stops        *stoplist.List
}

// Category is a named list of lowercase keyword phrases.
type Category struct {
	name     string
	keywords []string
}

// NewCategory builds a category; keywords are lowercased.
func NewCategory(name string, keywords []string) Category {
	kws := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" {
			kws = append(kws, kw)
		}
	}
	return Category{name: name, keywords: kws}
}

// Name returns the category name.
func (c Category) Name() string { return c.name }

// Keywords returns a copy of the category's keyword phrases.
func (c Category) Keywords() []string { return slices.Clone(c.keywords) }

// Example returns the first keyword, used as human-readable evidence.
func (c Category) Example() string {
	if len(c.keywords) == 0 {
		return c.name
	}
	return c.keywords[0]
}

// Present counts how many distinct keywords occur in lower as substrings.
func (c Category) Present(lower string) int {
	n := 0
	for _, kw := range c.keywords {
		if strings.Contains(lower, kw) {
			n++
		}
	}
	return n
}

// Occurrences counts every non-overlapping occurrence of every keyword in lower.
func (c Category) Occurrences(lower string) int {
	n := 0
	for _, kw := range c.keywords {
		n += strings.Count(lower, kw)
	}
	return n
}

// AnyIn reports whether at least one keyword occurs in lower.
func (c Category) AnyIn(lower string) bool {
	for _, kw := range c.keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

var defaultTables = sync.OnceValue(func() *Tables {
	return build(defaultSpec())
})

// Default returns the built-in tables. The value is built once per process.
func Default() *Tables {
	return defaultTables()
}

// IsPositive reports whether token carries positive polarity.
func (t *Tables) IsPositive(token string) bool {
	_, ok := t.positive[token]
	return ok
}

// IsNegative reports whether token carries negative polarity.
func (t *Tables) IsNegative(token string) bool {
	_, ok := t.negative[token]
	return ok
}

// IsNegation reports whether token flips the polarity of the next token.
func (t *Tables) IsNegation(token string) bool {
	_, ok := t.negations[token]
	return ok
}

// Intensifier returns the weight applied to the token following word.
func (t *Tables) Intensifier(word string) (float64, bool) {
	w, ok := t.intensifiers[word]
	return w, ok
}

// Emotions returns the emotion categories in declaration order.
func (t *Tables) Emotions() []Category { return slices.Clone(t.emotions) }

// Themes returns the theme categories in declaration order.
func (t *Tables) Themes() []Category { return slices.Clone(t.themes) }

// Emotion looks up an emotion category by name.
func (t *Tables) Emotion(name string) (Category, bool) {
	return find(t.emotions, name)
}

// Theme looks up a theme category by name.
func (t *Tables) Theme(name string) (Category, bool) {
	return find(t.themes, name)
}

// HasGrowthLanguage reports whether lower mentions any growth vocabulary.
func (t *Tables) HasGrowthLanguage(lower string) bool {
	for _, w := range t.growth {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

// Stopwords returns the stopword list.
func (t *Tables) Stopwords() *stoplist.List { return t.stops }

// Stats returns statistics about the table contents.
func (t *Tables) Stats() Stats {
	return Stats{
		Positive:     len(t.positive),
		Negative:     len(t.negative),
		Negations:    len(t.negations),
		Intensifiers: len(t.intensifiers),
		Emotions:     len(t.emotions),
		Themes:       len(t.themes),
		Stopwords:    t.stops.Len(),
	}
}

// Stats holds statistics about lexicon contents.
type Stats struct {
	Positive     int
	Negative     int
	Negations    int
	Intensifiers int
	Emotions     int
	Themes       int
	Stopwords    int
}

func find(cats []Category, name string) (Category, bool) {
	for _, c := range cats {
		if c.name == name {
			return c, true
		}
	}
	return Category{}, false
}

// spec is the YAML shape of a lexicon file.
type spec struct {
	Positive     []string           `yaml:"positive"`
	Negative     []string           `yaml:"negative"`
	Negations    []string           `yaml:"negations"`
	Intensifiers map[string]float64 `yaml:"intensifiers"`
	Emotions     []categorySpec     `yaml:"emotions"`
	Themes       []categorySpec     `yaml:"themes"`
	Growth       []string           `yaml:"growth"`
	Stopwords    []string           `yaml:"stopwords"`
}

type categorySpec struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// LoadFromYAML loads tables from a YAML file.
//
// Expected format:
//
//	positive: [happy, calm]
//	negative: [sad, tired]
//	negations: [not, never]
//	intensifiers: {very: 1.5, slightly: 0.7}
//	emotions:
//	  - name: anxious
//	    keywords: [anxious, on edge]
//	themes:
//	  - name: work
//	    keywords: [job, deadline]
//	growth: [learn, improve]
//	stopwords: [the, and]
//
// Sections omitted from the file keep the built-in defaults.
func LoadFromYAML(path string) (*Tables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse builds tables from YAML bytes, falling back to defaults per section.
func Parse(data []byte) (*Tables, error) {
	var in spec
	if err := yaml.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("parse lexicon: %w", err)
	}

	merged := defaultSpec()
	if len(in.Positive) > 0 {
		merged.Positive = in.Positive
	}
	if len(in.Negative) > 0 {
		merged.Negative = in.Negative
	}
	if len(in.Negations) > 0 {
		merged.Negations = in.Negations
	}
	if len(in.Intensifiers) > 0 {
		for word, w := range in.Intensifiers {
			if w <= 0 {
				return nil, fmt.Errorf("parse lexicon: intensifier %q must be positive", word)
			}
		}
		merged.Intensifiers = in.Intensifiers
	}
	if len(in.Emotions) > 0 {
		merged.Emotions = in.Emotions
	}
	if len(in.Themes) > 0 {
		merged.Themes = in.Themes
	}
	if len(in.Growth) > 0 {
		merged.Growth = in.Growth
	}
	if len(in.Stopwords) > 0 {
		merged.Stopwords = in.Stopwords
	}
	for _, c := range append(slices.Clone(merged.Emotions), merged.Themes...) {
		if strings.TrimSpace(c.Name) == "" {
			return nil, fmt.Errorf("parse lexicon: category without name")
		}
	}
	return build(merged), nil
}

func build(s spec) *Tables {
	t := &Tables{
		positive:     toSet(s.Positive),
		negative:     toSet(s.Negative),
		negations:    toSet(s.Negations),
		intensifiers: make(map[string]float64, len(s.Intensifiers)),
		stops:        stoplist.New(s.Stopwords),
	}
	for word, w := range s.Intensifiers {
		t.intensifiers[strings.ToLower(word)] = w
	}
	for _, c := range s.Emotions {
		t.emotions = append(t.emotions, NewCategory(c.Name, c.Keywords))
	}
	for _, c := range s.Themes {
		t.themes = append(t.themes, NewCategory(c.Name, c.Keywords))
	}
	for _, w := range s.Growth {
		if w = strings.ToLower(strings.TrimSpace(w)); w != "" {
			t.growth = append(t.growth, w)
		}
	}
	return t
}

func toSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" {
			set[w] = struct{}{}
		}
	}
	return set
}

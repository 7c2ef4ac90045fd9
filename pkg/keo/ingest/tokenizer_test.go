package ingest

import (
	"reflect"
	"strings"
	"testing"
)

type stopMap map[string]struct{}

func (s stopMap) IsStop(tok string) bool { _, ok := s[tok]; return ok }

func TestTokenizeBasic(t *testing.T) {
	tokens := Tokenize("I am very happy about my new job, but a bit anxious!")
	expected := []string{"i", "am", "very", "happy", "about", "my", "new", "job", "but", "a", "bit", "anxious"}
	if !reflect.DeepEqual(tokens, expected) {
		t.Fatalf("Tokenize mismatch:\n got %v\nwant %v", tokens, expected)
	}
}

func TestTokenizeEmpty(t *testing.T) {
	if got := Tokenize(""); len(got) != 0 {
		t.Fatalf("expected no tokens, got %v", got)
	}
	if got := Tokenize("  ... !!! "); len(got) != 0 {
		t.Fatalf("expected no tokens for punctuation, got %v", got)
	}
}

func TestTokenizeUnderscoreAndDigits(t *testing.T) {
	tokens := Tokenize("snake_case v2 2024-01-05")
	expected := []string{"snake_case", "v2", "2024", "01", "05"}
	if !reflect.DeepEqual(tokens, expected) {
		t.Fatalf("got %v, want %v", tokens, expected)
	}
}

func TestTokenizeSplitsApostrophesAndHyphens(t *testing.T) {
	tokens := Tokenize("don't self-care")
	expected := []string{"don", "t", "self", "care"}
	if !reflect.DeepEqual(tokens, expected) {
		t.Fatalf("got %v, want %v", tokens, expected)
	}
}

func TestTokenizeCaseNormalization(t *testing.T) {
	for _, tok := range Tokenize("HAPPY Monday GRATEFUL") {
		if tok != strings.ToLower(tok) {
			t.Errorf("Token %s should be lowercased", tok)
		}
	}
}

func TestWordsStopsEarly(t *testing.T) {
	var seen []string
	for w := range Words("one two three four") {
		seen = append(seen, w)
		if len(seen) == 2 {
			break
		}
	}
	if !reflect.DeepEqual(seen, []string{"one", "two"}) {
		t.Fatalf("got %v", seen)
	}
}

func TestTokenizerFilters(t *testing.T) {
	tok := NewTokenizer(
		WithStopwords(stopMap{"the": {}, "about": {}}),
		WithMinLength(3),
		WithoutNumbers(),
	)
	tokens := tok.Tokenize("The 2024 trip about us was great fun")
	expected := []string{"trip", "was", "great", "fun"}
	if !reflect.DeepEqual(tokens, expected) {
		t.Fatalf("got %v, want %v", tokens, expected)
	}
}

func TestSentences(t *testing.T) {
	got := Sentences("Work was hard. I felt anxious! Why?")
	expected := []string{"Work was hard", " I felt anxious", " Why", ""}
	if !reflect.DeepEqual(got, expected) {
		t.Fatalf("got %q, want %q", got, expected)
	}
	if got := Sentences("no terminator"); len(got) != 1 || got[0] != "no terminator" {
		t.Fatalf("got %q", got)
	}
}

func TestPlainText(t *testing.T) {
	in := `<p>Today I felt <b>happy</b>.</p><script>alert(1)</script><p>Work &amp; life</p>`
	got := PlainText(in)
	expected := "Today I felt happy.\nWork & life"
	if got != expected {
		t.Fatalf("got %q, want %q", got, expected)
	}

	plain := "3 < 4 is true"
	if PlainText(plain) != plain {
		t.Fatalf("plain text should pass through unchanged")
	}
}

package extract

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"Senior Python Developer", []string{"senior", "python", "developer"}},
		{"C# and C++ engineer", []string{"c#", "and", "c++", "engineer"}},
		{"node.js, react!", []string{"node", "js", "react"}},
		{"", nil},
		{"   ", nil},
	}
	for _, tt := range tests {
		got := Tokenize(tt.in)
		if len(got) != len(tt.want) {
			t.Fatalf("Tokenize(%q) = %v, want %v", tt.in, got, tt.want)
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("Tokenize(%q)[%d] = %q, want %q", tt.in, i, got[i], tt.want[i])
			}
		}
	}
}

func TestYears(t *testing.T) {
	tests := []struct {
		in    string
		want  int
		found bool
	}{
		{"5 years of backend work", 5, true},
		{"3+ years with Go", 3, true},
		{"worked 2 yrs then 8 years", 2, true}, // first match wins
		{"ten years", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := Years(tt.in)
		if ok != tt.found || got != tt.want {
			t.Errorf("Years(%q) = (%d, %v), want (%d, %v)", tt.in, got, ok, tt.want, tt.found)
		}
	}
}

func TestMaxYears(t *testing.T) {
	got, ok := MaxYears("2 years at X, 8+ years total")
	if !ok || got != 8 {
		t.Fatalf("MaxYears = (%d, %v), want (8, true)", got, ok)
	}
	if _, ok := MaxYears("no figures here"); ok {
		t.Error("expected no match")
	}
}

func TestSnippet(t *testing.T) {
	text := "Led a payments team. Built Python services on AWS. Enjoys chess."
	got := Snippet(text, []string{"python"}, 300)
	if !strings.Contains(got, "Python services") {
		t.Errorf("snippet missing matching sentence: %q", got)
	}
	if strings.Contains(got, "chess") {
		t.Errorf("snippet kept non-matching sentence: %q", got)
	}
}

func TestSnippetFallbackAndTruncation(t *testing.T) {
	text := strings.Repeat("x", 500)
	got := Snippet(text, []string{"python"}, 100)
	if len(got) != 103 { // 100 + "..."
		t.Fatalf("snippet length = %d, want 103", len(got))
	}
	if Snippet("", []string{"python"}, 100) != "" {
		t.Error("empty text should yield empty snippet")
	}
}

func TestSnippetTruncatesOnRuneBoundary(t *testing.T) {
	// "é" is 2 bytes; a byte-index cut at an odd offset would split it.
	text := strings.Repeat("é", 100)
	got := Snippet(text, []string{"python"}, 51)
	if !utf8.ValidString(got) {
		t.Fatalf("snippet split a rune: %q", got)
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("expected truncation marker, got %q", got)
	}
}

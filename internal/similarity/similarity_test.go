package similarity

import (
	"strings"
	"testing"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercase", "Hello World", "hello world"},
		{"punctuation stripped", "Hello, world! (2025)", "hello world 2025"},
		{"whitespace collapsed", "  a \t b\n\nc  ", "a b c"},
		{"diacritics folded", "Café Résumé", "cafe resume"},
		{"cyrillic preserved", "Новости дня", "новости дня"},
		{"empty", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Normalize(tc.input); got != tc.want {
				t.Errorf("Normalize(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestNGrams(t *testing.T) {
	grams := NGrams("the quick brown fox jumps", 4)
	if len(grams) != 2 {
		t.Fatalf("expected 2 grams, got %d", len(grams))
	}
	if _, ok := grams["the quick brown fox"]; !ok {
		t.Fatal("missing first gram")
	}
	if _, ok := grams["quick brown fox jumps"]; !ok {
		t.Fatal("missing second gram")
	}
}

func TestNGramsShortText(t *testing.T) {
	if grams := NGrams("too short", 4); len(grams) != 0 {
		t.Fatalf("expected empty set, got %d grams", len(grams))
	}
}

func TestJaccardBounds(t *testing.T) {
	a := NGrams("one two three four five six", 4)
	b := NGrams("completely different words here now yes", 4)
	if score := Jaccard(a, b); score < 0 || score > 1 {
		t.Fatalf("Jaccard out of bounds: %v", score)
	}
	if score := Jaccard(a, a); score != 1 {
		t.Fatalf("Jaccard(A,A) = %v, want 1", score)
	}
	empty := map[string]struct{}{}
	if score := Jaccard(empty, empty); score != 0 {
		t.Fatalf("Jaccard(empty,empty) = %v, want 0", score)
	}
}

func TestCheckScriptShortTextBypass(t *testing.T) {
	checker := NewChecker()
	corpus := []Document{{ID: 1, Title: "Existing", Text: "anything at all in the corpus does not matter"}}
	result := checker.CheckScript("tiny body", corpus)
	if !result.Passed {
		t.Fatal("short candidate must always pass")
	}
}

func TestCheckScriptDuplicateGate(t *testing.T) {
	original := "Artificial intelligence tools for short video creation are rising rapidly this year and every creator should pay close attention to the trend before it peaks"
	nearCopy := "Artificial intelligence tools for short video creation are rising rapidly this year and every creator must pay close attention to the trend before it peaks"

	checker := NewChecker()
	corpus := []Document{{ID: 7, Title: "AI tools", Text: original}}
	result := checker.CheckScript(nearCopy, corpus)
	if result.Passed {
		t.Fatalf("expected duplicate rejection, highest=%v", result.HighestSimilarity)
	}
	if result.HighestSimilarity < 0.35 {
		t.Fatalf("expected similarity >= 0.35, got %v", result.HighestSimilarity)
	}
	if result.MatchID != 7 {
		t.Fatalf("expected match id 7, got %d", result.MatchID)
	}
	if !strings.Contains(result.Reject(), "similar") {
		t.Fatalf("unexpected rejection message: %q", result.Reject())
	}
}

func TestCheckScriptDistinctContentPasses(t *testing.T) {
	checker := NewChecker()
	corpus := []Document{{ID: 1, Title: "Cooking", Text: "How to bake sourdough bread at home with minimal equipment and a simple starter recipe anyone can maintain"}}
	candidate := "The championship game went into double overtime after a dramatic equalizer in the final minute of regular play"
	result := checker.CheckScript(candidate, corpus)
	if !result.Passed {
		t.Fatalf("expected pass for unrelated content, highest=%v", result.HighestSimilarity)
	}
}

func TestCheckTopic(t *testing.T) {
	checker := NewChecker()
	existing := []Document{{ID: 3, Title: "AI video tools rising in 2025"}}

	dup := checker.CheckTopic("AI tools for video rising in 2025", existing)
	if dup.Passed {
		t.Fatalf("expected topic duplicate, highest=%v", dup.HighestSimilarity)
	}

	fresh := checker.CheckTopic("Quantum computing breakthrough announced", existing)
	if !fresh.Passed {
		t.Fatalf("expected unrelated topic to pass, highest=%v", fresh.HighestSimilarity)
	}

	// One qualifying word is below the minimum for comparison.
	tiny := checker.CheckTopic("AI up", existing)
	if !tiny.Passed {
		t.Fatal("expected short title bypass")
	}
}

func TestContentHashStable(t *testing.T) {
	a := ContentHash("AI Video Tools", "tech")
	b := ContentHash("ai  video   tools!", "Tech")
	if a != b {
		t.Fatalf("expected normalization-stable hash, got %q vs %q", a, b)
	}
	c := ContentHash("different title", "tech")
	if a == c {
		t.Fatal("expected different inputs to hash differently")
	}
	if len(a) != 16 {
		t.Fatalf("expected 16 hex chars, got %q", a)
	}
}

func TestWordSetFiltersShortWords(t *testing.T) {
	set := WordSet("an AI is on the rise", 2)
	if _, ok := set["ai"]; ok {
		t.Fatal("two-character words should be filtered")
	}
	if _, ok := set["rise"]; !ok {
		t.Fatal("expected qualifying word in set")
	}
}

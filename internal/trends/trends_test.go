package trends

import (
	"fmt"
	"testing"

	"reelpipe/internal/store"
)

func topic(id int64, title, category string, score float64) *store.Topic {
	return &store.Topic{ID: id, Title: title, CategoryID: category, Score: score}
}

func TestClusterGroupsNearDuplicates(t *testing.T) {
	topics := []*store.Topic{
		topic(1, "AI video tools rising in 2025", "tech", 90),
		topic(2, "AI tools for video are rising in 2025", "tech", 85),
		topic(3, "Unrelated sports score recap", "tech", 40),
	}

	clusters := Cluster(topics, "tech", Options{})
	if len(clusters) != 1 {
		t.Fatalf("expected 1 cluster, got %d", len(clusters))
	}
	cluster := clusters[0]
	if cluster.Size() != 2 {
		t.Fatalf("expected 2 members, got %d", cluster.Size())
	}
	if cluster.SeedTitle != "AI video tools rising in 2025" {
		t.Errorf("expected the highest-scored topic to seed the cluster, got %q", cluster.SeedTitle)
	}
	if cluster.Score != 87.5 {
		t.Errorf("expected mean score 87.5, got %v", cluster.Score)
	}
	if cluster.PacingHint != "fast" {
		t.Errorf("expected fast pacing for score %v, got %q", cluster.Score, cluster.PacingHint)
	}
	if cluster.CategoryID != "tech" {
		t.Errorf("unexpected category %q", cluster.CategoryID)
	}
}

func TestClusterIDIsStableAcrossInputOrder(t *testing.T) {
	forward := []*store.Topic{
		topic(1, "AI video tools rising in 2025", "tech", 90),
		topic(2, "AI tools for video are rising in 2025", "tech", 85),
	}
	reversed := []*store.Topic{forward[1], forward[0]}

	a := Cluster(forward, "tech", Options{})
	b := Cluster(reversed, "tech", Options{})
	if len(a) != 1 || len(b) != 1 {
		t.Fatalf("expected 1 cluster from each order, got %d and %d", len(a), len(b))
	}
	if a[0].ID != b[0].ID {
		t.Errorf("cluster ID changed with input order: %q vs %q", a[0].ID, b[0].ID)
	}
	if a[0].ID == "" {
		t.Error("cluster ID is empty")
	}
}

func TestClusterIDDependsOnCategory(t *testing.T) {
	topics := []*store.Topic{
		topic(1, "AI video tools rising in 2025", "tech", 90),
		topic(2, "AI tools for video are rising in 2025", "tech", 85),
	}

	a := Cluster(topics, "tech", Options{})
	b := Cluster(topics, "gaming", Options{})
	if a[0].ID == b[0].ID {
		t.Error("expected different cluster IDs for different categories")
	}
}

func TestClusterRespectsMaxSize(t *testing.T) {
	var topics []*store.Topic
	for i := 0; i < 12; i++ {
		topics = append(topics, topic(int64(i+1), fmt.Sprintf("Big camera sensor upgrade news part %d", i), "tech", float64(100-i)))
	}

	clusters := Cluster(topics, "tech", Options{MaxClusterSize: 10})
	if len(clusters) != 2 {
		t.Fatalf("expected overflow to form a second cluster, got %d clusters", len(clusters))
	}
	if clusters[0].Size() != 10 {
		t.Errorf("expected first cluster capped at 10, got %d", clusters[0].Size())
	}
	if clusters[1].Size() != 2 {
		t.Errorf("expected remaining 2 members in second cluster, got %d", clusters[1].Size())
	}
}

func TestClusterDropsSingletons(t *testing.T) {
	topics := []*store.Topic{
		topic(1, "Quantum networking milestone reached", "tech", 70),
		topic(2, "Street food festival opens downtown", "food", 60),
	}

	clusters := Cluster(topics, "tech", Options{})
	if len(clusters) != 0 {
		t.Fatalf("expected no clusters from unrelated singletons, got %d", len(clusters))
	}
}

func TestPacingHint(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{95, "fast"},
		{70.5, "fast"},
		{70, "medium"},
		{41, "medium"},
		{40, "slow"},
		{10, "slow"},
	}
	for _, tt := range tests {
		if got := pacingHint(tt.score); got != tt.want {
			t.Errorf("pacingHint(%v) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestClassifyAngles(t *testing.T) {
	titles := []string{
		"Studio caught hiding patch notes after backlash",
		"Why the new update fixes the biggest mistake",
	}

	angles := classifyAngles(titles)
	got := make(map[string]bool, len(angles))
	for _, angle := range angles {
		got[angle] = true
	}
	for _, want := range []string{"scandal", "mistake", "patch", "explanation"} {
		if !got[want] {
			t.Errorf("expected angle %q in %v", want, angles)
		}
	}
}

func TestClassifyHookPatterns(t *testing.T) {
	titles := []string{
		"5 hidden settings nobody talks about",
		"Is this the end of cheap flights?",
	}

	hooks := classifyHookPatterns(titles)
	got := make(map[string]bool, len(hooks))
	for _, hook := range hooks {
		got[hook] = true
	}
	for _, want := range []string{"number", "secret", "question", "demonstrative"} {
		if !got[want] {
			t.Errorf("expected hook %q in %v", want, hooks)
		}
	}
}

func TestTopKeywordsFiltersStopWords(t *testing.T) {
	titles := []string{
		"The camera sensor and the camera lens",
		"Camera sensor prices are falling",
	}

	keywords := topKeywords(titles, 3)
	if len(keywords) == 0 || keywords[0] != "camera" {
		t.Fatalf("expected camera as top keyword, got %v", keywords)
	}
	for _, word := range keywords {
		if _, stop := stopWords[word]; stop {
			t.Errorf("stop word %q leaked into keywords %v", word, keywords)
		}
	}
}

func TestBuildAllGroupsByCategory(t *testing.T) {
	topics := []*store.Topic{
		topic(1, "AI video tools rising in 2025", "tech", 90),
		topic(2, "AI tools for video are rising in 2025", "tech", 85),
		topic(3, "Best budget travel hacks for students", "travel", 60),
		topic(4, "Budget travel hacks every student needs", "travel", 55),
	}

	builder := NewBuilder(Options{})
	clusters := builder.BuildAll(topics)
	if len(clusters) != 2 {
		t.Fatalf("expected 2 clusters, got %d", len(clusters))
	}
	if clusters[0].CategoryID != "tech" || clusters[1].CategoryID != "travel" {
		t.Errorf("expected category-ordered output, got %q then %q", clusters[0].CategoryID, clusters[1].CategoryID)
	}
}

func TestBuildAllIsIdempotent(t *testing.T) {
	topics := []*store.Topic{
		topic(1, "AI video tools rising in 2025", "tech", 90),
		topic(2, "AI tools for video are rising in 2025", "tech", 85),
		topic(3, "Unrelated sports score recap", "tech", 40),
	}

	builder := NewBuilder(Options{})
	first := builder.BuildAll(topics)
	second := builder.BuildAll(topics)
	if len(first) != len(second) {
		t.Fatalf("rebuild changed cluster count: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Errorf("cluster %d ID changed on rebuild: %q vs %q", i, first[i].ID, second[i].ID)
		}
		if first[i].Score != second[i].Score {
			t.Errorf("cluster %d score changed on rebuild: %v vs %v", i, first[i].Score, second[i].Score)
		}
	}
}

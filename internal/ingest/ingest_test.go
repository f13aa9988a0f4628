package ingest

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"reelpipe/internal/store"
	"reelpipe/internal/testsupport"
)

const rssSample = `<?xml version="1.0"?>
<rss version="2.0"><channel>
<item><title>First headline</title><link>https://example.com/1</link><description>Summary one</description><pubDate>Mon, 24 Aug 2026 10:00:00 +0000</pubDate></item>
<item><title>Second headline</title><link>https://example.com/2</link><description>Summary two</description><pubDate>Mon, 24 Aug 2026 09:00:00 +0000</pubDate></item>
</channel></rss>`

const atomSample = `<?xml version="1.0"?>
<feed xmlns="http://www.w3.org/2005/Atom">
<entry><title>Atom headline</title><link rel="alternate" href="https://example.com/a"/><summary>Atom summary</summary><updated>2026-08-24T10:00:00Z</updated></entry>
</feed>`

func TestParseFeedRSS(t *testing.T) {
	items, err := ParseFeed([]byte(rssSample))
	if err != nil {
		t.Fatalf("ParseFeed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].Title != "First headline" || items[0].Link != "https://example.com/1" {
		t.Errorf("unexpected first item: %+v", items[0])
	}
	if items[0].PublishedAt.IsZero() {
		t.Error("expected parsed pubDate")
	}
}

func TestParseFeedAtom(t *testing.T) {
	items, err := ParseFeed([]byte(atomSample))
	if err != nil {
		t.Fatalf("ParseFeed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(items))
	}
	if items[0].Title != "Atom headline" || items[0].Link != "https://example.com/a" {
		t.Errorf("unexpected entry: %+v", items[0])
	}
}

func TestFetchTopicsCreatesAndDeduplicates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, rssSample)
	}))
	defer server.Close()

	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	testsupport.NewSource(t, st, "feed", store.SourceRSS, server.URL)

	ingestor := New(st, nil)
	ctx := context.Background()

	report, err := ingestor.FetchTopics(ctx)
	if err != nil {
		t.Fatalf("FetchTopics: %v", err)
	}
	if report.Created != 2 || report.Duplicates != 0 {
		t.Fatalf("first pass: expected 2 created, got %+v", report)
	}

	report, err = ingestor.FetchTopics(ctx)
	if err != nil {
		t.Fatalf("FetchTopics (second): %v", err)
	}
	if report.Created != 0 || report.Duplicates != 2 {
		t.Errorf("second pass: expected 2 duplicates, got %+v", report)
	}
}

func TestFetchTopicsSeedsWhenNoSources(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	ingestor := New(st, nil)
	report, err := ingestor.FetchTopics(context.Background())
	if err != nil {
		t.Fatalf("FetchTopics: %v", err)
	}
	if !report.Seeded {
		t.Fatal("expected demo seeding with no enabled sources")
	}
	if report.Created == 0 {
		t.Fatal("expected seeded topics")
	}

	topics, err := st.ListTopics(context.Background(), "")
	if err != nil {
		t.Fatalf("ListTopics: %v", err)
	}
	if len(topics) != report.Created {
		t.Errorf("expected %d stored topics, got %d", report.Created, len(topics))
	}
}

func TestFetchTopicsSurvivesBrokenSource(t *testing.T) {
	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer broken.Close()
	good := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, rssSample)
	}))
	defer good.Close()

	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	testsupport.NewSource(t, st, "broken", store.SourceRSS, broken.URL)
	testsupport.NewSource(t, st, "good", store.SourceRSS, good.URL)

	report, err := New(st, nil).FetchTopics(context.Background())
	if err != nil {
		t.Fatalf("FetchTopics: %v", err)
	}
	if report.Failures != 1 {
		t.Errorf("expected 1 failure, got %d", report.Failures)
	}
	if report.Created != 2 {
		t.Errorf("expected good source items created, got %d", report.Created)
	}
}

func TestScoreItemRecency(t *testing.T) {
	now := time.Now()
	fresh := scoreItem(FeedItem{PublishedAt: now}, now)
	old := scoreItem(FeedItem{PublishedAt: now.Add(-14 * 24 * time.Hour)}, now)
	undated := scoreItem(FeedItem{}, now)

	if fresh <= old {
		t.Errorf("expected fresh item to outscore old: %v vs %v", fresh, old)
	}
	if old != 10 {
		t.Errorf("expected floor score 10 for two-week-old item, got %v", old)
	}
	if undated != 50 {
		t.Errorf("expected neutral score for undated item, got %v", undated)
	}
}

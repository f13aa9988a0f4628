package sourcehealth

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

func feedBody(items int, newest time.Time) string {
	body := "<rss><channel>"
	for i := 0; i < items; i++ {
		body += fmt.Sprintf("<item><title>item %d</title><pubDate>%s</pubDate></item>",
			i, newest.Add(-time.Duration(i)*time.Hour).Format(time.RFC1123Z))
	}
	return body + "</channel></rss>"
}

func newTestMonitor(t *testing.T) (*Monitor, *store.Store) {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	cfg.Health.BatchDelayMS = 0
	st := testsupport.MustOpenStore(t, cfg)
	return NewMonitor(st, cfg.Health, nil), st
}

func TestCheckSourceHealthyFeed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, feedBody(3, time.Now().Add(-2*time.Hour)))
	}))
	defer server.Close()

	monitor, st := newTestMonitor(t)
	source := testsupport.NewSource(t, st, "tech feed", store.SourceRSS, server.URL)

	checked, err := monitor.CheckSource(context.Background(), source.ID)
	if err != nil {
		t.Fatalf("CheckSource: %v", err)
	}
	if checked.HealthStatus != store.HealthOK {
		t.Errorf("expected ok, got %s (%s)", checked.HealthStatus, checked.HealthDetail)
	}
	if checked.LastItemCount != 3 {
		t.Errorf("expected 3 items, got %d", checked.LastItemCount)
	}
	if checked.ConsecutiveFailures != 0 {
		t.Errorf("expected failure counter reset, got %d", checked.ConsecutiveFailures)
	}
	if checked.LastCheckAt == nil {
		t.Error("expected LastCheckAt to be recorded")
	}
	if checked.FreshnessHours < 1.5 || checked.FreshnessHours > 2.5 {
		t.Errorf("expected roughly 2h freshness, got %v", checked.FreshnessHours)
	}
}

func TestCheckSourceStaleFeedWarns(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, feedBody(2, time.Now().Add(-100*time.Hour)))
	}))
	defer server.Close()

	monitor, st := newTestMonitor(t)
	source := testsupport.NewSource(t, st, "stale feed", store.SourceRSS, server.URL)

	checked, err := monitor.CheckSource(context.Background(), source.ID)
	if err != nil {
		t.Fatalf("CheckSource: %v", err)
	}
	if checked.HealthStatus != store.HealthWarning {
		t.Errorf("expected warning for stale feed, got %s", checked.HealthStatus)
	}
}

func TestCheckSourceEmptyFeedIsFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<rss><channel><title>empty</title></channel></rss>")
	}))
	defer server.Close()

	monitor, st := newTestMonitor(t)
	source := testsupport.NewSource(t, st, "empty feed", store.SourceRSS, server.URL)

	checked, err := monitor.CheckSource(context.Background(), source.ID)
	if err != nil {
		t.Fatalf("CheckSource: %v", err)
	}
	if checked.ConsecutiveFailures != 1 {
		t.Errorf("expected 1 failure, got %d", checked.ConsecutiveFailures)
	}
	if checked.HealthStatus != store.HealthPending {
		t.Errorf("expected pending after a single blip, got %s", checked.HealthStatus)
	}
	if checked.HealthDetail != "No RSS items found" {
		t.Errorf("unexpected detail %q", checked.HealthDetail)
	}
}

func TestHealthEscalation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	monitor, st := newTestMonitor(t)
	source := testsupport.NewSource(t, st, "broken feed", store.SourceRSS, server.URL)

	expected := []store.HealthStatus{
		store.HealthPending,
		store.HealthWarning,
		store.HealthWarning,
		store.HealthWarning,
		store.HealthWarning,
		store.HealthDead,
	}
	for i, want := range expected {
		checked, err := monitor.CheckSource(context.Background(), source.ID)
		if err != nil {
			t.Fatalf("check %d: %v", i+1, err)
		}
		if checked.HealthStatus != want {
			t.Errorf("after %d failures: expected %s, got %s", i+1, want, checked.HealthStatus)
		}
		if checked.ConsecutiveFailures != i+1 {
			t.Errorf("after check %d: expected %d failures, got %d", i+1, i+1, checked.ConsecutiveFailures)
		}
	}
}

func TestAutoDisableAtCeiling(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	monitor, st := newTestMonitor(t)
	source := testsupport.NewSource(t, st, "dying feed", store.SourceRSS, server.URL)

	var last *store.Source
	for i := 0; i < 12; i++ {
		var err error
		last, err = monitor.CheckSource(context.Background(), source.ID)
		if err != nil {
			t.Fatalf("check %d: %v", i+1, err)
		}
		if i < 11 && !last.IsEnabled {
			t.Fatalf("source disabled too early after %d failures", i+1)
		}
	}
	if last.IsEnabled {
		t.Error("expected source disabled after 12 consecutive failures")
	}
	if last.HealthStatus != store.HealthDead {
		t.Errorf("expected dead, got %s", last.HealthStatus)
	}
}

func TestLatencyTwoPointBlend(t *testing.T) {
	monitor, _ := newTestMonitor(t)

	source := &store.Source{Type: store.SourceRSS, IsEnabled: true}
	monitor.applyResult(source, ProbeResult{OK: true, ItemCount: 1, LatencyMS: 100})
	if source.AvgLatencyMS != 100 {
		t.Fatalf("expected seed with first sample, got %v", source.AvgLatencyMS)
	}
	monitor.applyResult(source, ProbeResult{OK: true, ItemCount: 1, LatencyMS: 300})
	if source.AvgLatencyMS != 200 {
		t.Errorf("expected 50/50 blend 200, got %v", source.AvgLatencyMS)
	}
}

func TestLatencyWarning(t *testing.T) {
	monitor, _ := newTestMonitor(t)

	source := &store.Source{Type: store.SourceRSS, IsEnabled: true}
	monitor.applyResult(source, ProbeResult{OK: true, ItemCount: 5, LatencyMS: 9000})
	if source.HealthStatus != store.HealthWarning {
		t.Errorf("expected warning for slow feed, got %s", source.HealthStatus)
	}
}

func TestNonNetworkableSkipped(t *testing.T) {
	monitor, st := newTestMonitor(t)
	source := testsupport.NewSource(t, st, "manual source", store.SourceManual, "")

	checked, err := monitor.CheckSource(context.Background(), source.ID)
	if err != nil {
		t.Fatalf("CheckSource: %v", err)
	}
	if checked.HealthStatus != store.HealthOK {
		t.Errorf("expected pending manual source to flip to ok, got %s", checked.HealthStatus)
	}
	if checked.ConsecutiveFailures != 0 {
		t.Errorf("expected no failures, got %d", checked.ConsecutiveFailures)
	}
}

func TestCheckSourceMissing(t *testing.T) {
	monitor, _ := newTestMonitor(t)

	if _, err := monitor.CheckSource(context.Background(), 9999); err == nil {
		t.Fatal("expected error for missing source")
	}
}

func TestCheckAllAggregates(t *testing.T) {
	healthy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, feedBody(4, time.Now().Add(-1*time.Hour)))
	}))
	defer healthy.Close()
	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer broken.Close()

	monitor, st := newTestMonitor(t)
	testsupport.NewSource(t, st, "good", store.SourceRSS, healthy.URL)
	testsupport.NewSource(t, st, "bad", store.SourceRSS, broken.URL)
	testsupport.NewSource(t, st, "manual", store.SourceManual, "")

	report, err := monitor.CheckAll(context.Background())
	if err != nil {
		t.Fatalf("CheckAll: %v", err)
	}
	if report.Checked != 2 {
		t.Errorf("expected 2 checked, got %d", report.Checked)
	}
	if report.Skipped != 1 {
		t.Errorf("expected 1 skipped, got %d", report.Skipped)
	}
	if report.Healthy != 1 {
		t.Errorf("expected 1 healthy, got %d", report.Healthy)
	}
}

func TestSourcesNeedingAttention(t *testing.T) {
	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer broken.Close()
	healthy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, feedBody(2, time.Now()))
	}))
	defer healthy.Close()

	monitor, st := newTestMonitor(t)
	bad := testsupport.NewSource(t, st, "bad", store.SourceRSS, broken.URL)
	testsupport.NewSource(t, st, "good", store.SourceRSS, healthy.URL)

	if _, err := monitor.CheckAll(context.Background()); err != nil {
		t.Fatalf("CheckAll: %v", err)
	}

	needy, err := monitor.SourcesNeedingAttention(context.Background())
	if err != nil {
		t.Fatalf("SourcesNeedingAttention: %v", err)
	}
	if len(needy) != 1 || needy[0].ID != bad.ID {
		t.Fatalf("expected only the failing source, got %d entries", len(needy))
	}
}

func TestCategoryHealthStats(t *testing.T) {
	monitor, st := newTestMonitor(t)

	ctx := context.Background()
	for i, category := range []string{"tech", "tech", "gaming"} {
		if _, err := st.NewSource(ctx, &store.Source{
			Name:       fmt.Sprintf("source %d", i),
			Type:       store.SourceRSS,
			URL:        "http://example.invalid/feed",
			CategoryID: category,
			IsEnabled:  i != 1,
		}); err != nil {
			t.Fatalf("NewSource: %v", err)
		}
	}

	stats, err := monitor.CategoryHealthStats(ctx)
	if err != nil {
		t.Fatalf("CategoryHealthStats: %v", err)
	}
	tech := stats["tech"]
	if tech.Total != 2 || tech.Disabled != 1 || tech.Pending != 2 {
		t.Errorf("unexpected tech stats: %+v", tech)
	}
	if stats["gaming"].Total != 1 {
		t.Errorf("unexpected gaming stats: %+v", stats["gaming"])
	}
}

package ingest

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"reelpipe/internal/logging"
	"reelpipe/internal/services"
	"reelpipe/internal/similarity"
	"reelpipe/internal/store"
)

const (
	maxFeedBody      = 4 << 20
	maxItemsPerFetch = 20
	fetchTimeout     = 15 * time.Second
)

// Ingestor pulls candidate topics from the enabled sources.
type Ingestor struct {
	store  *store.Store
	client *http.Client
	logger *slog.Logger
	now    func() time.Time
}

// Report summarizes one ingestion pass.
type Report struct {
	SourcesPolled int
	Created       int
	Duplicates    int
	Failures      int
	Seeded        bool
}

// New returns an Ingestor against the given store.
func New(st *store.Store, logger *slog.Logger) *Ingestor {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Ingestor{
		store:  st,
		client: &http.Client{Timeout: fetchTimeout},
		logger: logger.With(logging.String(logging.FieldComponent, "ingest")),
		now:    time.Now,
	}
}

// FetchTopics polls every enabled networkable source and creates one topic
// per feed item, deduplicating by content hash. When no enabled sources
// exist, a small set of demo topics is seeded instead so the rest of the
// pipeline has material to work with. Per-source failures are logged and
// skipped, never fatal.
func (i *Ingestor) FetchTopics(ctx context.Context) (Report, error) {
	sources, err := i.store.ListSources(ctx, true)
	if err != nil {
		return Report{}, services.Wrap(services.ErrTransient, "ingest", "fetch_topics", "list sources", err)
	}

	var report Report
	for _, source := range sources {
		if !source.Type.IsNetworkable() {
			continue
		}
		report.SourcesPolled++

		items, err := i.fetchSource(ctx, source)
		if err != nil {
			report.Failures++
			i.logger.Warn("source fetch failed",
				logging.Int64(logging.FieldSourceID, source.ID),
				logging.Error(err))
			continue
		}

		created, duplicates := i.storeItems(ctx, source, items)
		report.Created += created
		report.Duplicates += duplicates
	}

	if report.SourcesPolled == 0 {
		seeded, err := i.seedDemoTopics(ctx)
		if err != nil {
			return report, err
		}
		report.Created += seeded
		report.Seeded = true
	}

	i.logger.Info("topic fetch complete",
		logging.Int("sources", report.SourcesPolled),
		logging.Int("created", report.Created),
		logging.Int("duplicates", report.Duplicates),
		logging.Int("failures", report.Failures))
	return report, nil
}

func (i *Ingestor) fetchSource(ctx context.Context, source *store.Source) ([]FeedItem, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "reelpipe-ingest/1.0")

	resp, err := i.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fetch feed: HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFeedBody))
	if err != nil {
		return nil, fmt.Errorf("read feed: %w", err)
	}

	items, err := ParseFeed(body)
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}
	if len(items) > maxItemsPerFetch {
		items = items[:maxItemsPerFetch]
	}
	return items, nil
}

func (i *Ingestor) storeItems(ctx context.Context, source *store.Source, items []FeedItem) (created, duplicates int) {
	for _, item := range items {
		if item.Title == "" {
			continue
		}
		hash := similarity.ContentHash(item.Title, item.Link)

		exists, err := i.store.TopicExistsByHash(ctx, hash)
		if err != nil {
			i.logger.Warn("dedupe lookup failed", logging.Error(err))
			continue
		}
		if exists {
			duplicates++
			continue
		}

		topic := &store.Topic{
			Title:       item.Title,
			URL:         item.Link,
			RawText:     item.Summary,
			Score:       scoreItem(item, i.now()),
			CategoryID:  source.CategoryID,
			SourceID:    source.ID,
			ContentHash: hash,
		}
		if _, err := i.store.NewTopic(ctx, topic); err != nil {
			i.logger.Warn("topic insert failed", logging.Error(err))
			continue
		}
		created++
	}
	return created, duplicates
}

// scoreItem assigns a recency-weighted score in [10, 100]: items published
// within the hour score near 100, decaying to the floor over about a week.
func scoreItem(item FeedItem, now time.Time) float64 {
	if item.PublishedAt.IsZero() {
		return 50
	}
	ageHours := now.Sub(item.PublishedAt).Hours()
	if ageHours < 0 {
		ageHours = 0
	}
	score := 100 - ageHours*(90.0/168.0)
	if score < 10 {
		score = 10
	}
	return score
}

var demoTopics = []struct {
	title    string
	category string
	score    float64
}{
	{"Five editing tricks that make phone footage look cinematic", "tech", 85},
	{"Why short-form video keeps beating long-form for reach", "tech", 78},
	{"The budget microphone setup creators keep recommending", "tech", 72},
	{"Street food tour: the stall locals refuse to tell tourists about", "food", 69},
	{"One-pan dinners that actually survive reheating", "food", 61},
}

func (i *Ingestor) seedDemoTopics(ctx context.Context) (int, error) {
	created := 0
	for _, demo := range demoTopics {
		hash := similarity.ContentHash(demo.title, "")
		exists, err := i.store.TopicExistsByHash(ctx, hash)
		if err != nil {
			return created, services.Wrap(services.ErrTransient, "ingest", "seed", "dedupe lookup", err)
		}
		if exists {
			continue
		}
		if _, err := i.store.NewTopic(ctx, &store.Topic{
			Title:       demo.title,
			Score:       demo.score,
			CategoryID:  demo.category,
			ContentHash: hash,
		}); err != nil {
			return created, services.Wrap(services.ErrTransient, "ingest", "seed", "insert demo topic", err)
		}
		created++
	}
	i.logger.Info("seeded demo topics", logging.Int("created", created))
	return created, nil
}

package testsupport

import (
	"context"
	"testing"

	"reelpipe/internal/config"
	"reelpipe/internal/store"
)

// MustOpenStore opens a store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *store.Store {
	t.Helper()

	st, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() {
		st.Close()
	})
	return st
}

// NewTopic creates a topic for tests using the provided store.
func NewTopic(t testing.TB, st *store.Store, title, categoryID string, score float64) *store.Topic {
	t.Helper()

	topic, err := st.NewTopic(context.Background(), &store.Topic{
		Title:      title,
		CategoryID: categoryID,
		Score:      score,
	})
	if err != nil {
		t.Fatalf("store.NewTopic: %v", err)
	}
	return topic
}

// NewScript creates a draft script for tests using the provided store.
func NewScript(t testing.TB, st *store.Store, topicID int64, title string) *store.Script {
	t.Helper()

	script, err := st.NewScript(context.Background(), &store.Script{
		TopicID: topicID,
		Title:   title,
	})
	if err != nil {
		t.Fatalf("store.NewScript: %v", err)
	}
	return script
}

// NewSource creates an enabled source for tests using the provided store.
func NewSource(t testing.TB, st *store.Store, name string, sourceType store.SourceType, url string) *store.Source {
	t.Helper()

	source, err := st.NewSource(context.Background(), &store.Source{
		Name:      name,
		Type:      sourceType,
		URL:       url,
		IsEnabled: true,
	})
	if err != nil {
		t.Fatalf("store.NewSource: %v", err)
	}
	return source
}

package trends

import (
	"sort"

	"reelpipe/internal/store"
)

// Builder computes trend clusters from topic snapshots.
type Builder struct {
	opts Options
}

// NewBuilder returns a Builder using the given clustering options.
func NewBuilder(opts Options) *Builder {
	return &Builder{opts: opts.withDefaults()}
}

// BuildForCategory clusters the given topics under a single category.
// The caller is expected to pass topics that belong to categoryID.
func (b *Builder) BuildForCategory(topics []*store.Topic, categoryID string) []TrendTopic {
	return Cluster(topics, categoryID, b.opts)
}

// BuildAll groups topics by category and clusters each group independently.
// Results are ordered by category, then by cluster score descending.
func (b *Builder) BuildAll(topics []*store.Topic) []TrendTopic {
	byCategory := make(map[string][]*store.Topic)
	for _, topic := range topics {
		byCategory[topic.CategoryID] = append(byCategory[topic.CategoryID], topic)
	}

	categories := make([]string, 0, len(byCategory))
	for category := range byCategory {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	var all []TrendTopic
	for _, category := range categories {
		clusters := b.BuildForCategory(byCategory[category], category)
		sort.SliceStable(clusters, func(i, j int) bool {
			return clusters[i].Score > clusters[j].Score
		})
		all = append(all, clusters...)
	}
	return all
}

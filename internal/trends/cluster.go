package trends

import (
	"sort"
	"strings"

	"reelpipe/internal/similarity"
	"reelpipe/internal/store"
)

const (
	// DefaultClusterThreshold is the minimum full-text similarity to join a
	// cluster seed.
	DefaultClusterThreshold = 0.3
	// DefaultMinClusterSize discards clusters below this member count.
	DefaultMinClusterSize = 2
	// DefaultMaxClusterSize caps greedy growth of a single cluster.
	DefaultMaxClusterSize = 10

	clusterWordMinLen = 2
)

// Options tunes the clustering pass. Zero values fall back to defaults.
type Options struct {
	Threshold      float64
	MinClusterSize int
	MaxClusterSize int
}

func (o Options) withDefaults() Options {
	if o.Threshold <= 0 {
		o.Threshold = DefaultClusterThreshold
	}
	if o.MinClusterSize < 1 {
		o.MinClusterSize = DefaultMinClusterSize
	}
	if o.MaxClusterSize < o.MinClusterSize {
		o.MaxClusterSize = DefaultMaxClusterSize
	}
	return o
}

// TrendTopic is a derived cluster of near-duplicate topics. It is ephemeral
// and fully reconstructible from the topic set at computation time.
type TrendTopic struct {
	ID           string
	CategoryID   string
	SeedTitle    string
	TopicIDs     []int64
	Titles       []string
	Score        float64
	PacingHint   string
	Angles       []string
	HookPatterns []string
	Keywords     []string
}

// Size returns the cluster's member count.
func (t TrendTopic) Size() int { return len(t.TopicIDs) }

// Cluster groups topics into similarity clusters using greedy single-link
// clustering: topics are processed in score-descending order, each unassigned
// topic seeds a new cluster, and remaining unassigned topics join when their
// full-text similarity to the seed meets the threshold. The seed order is the
// contract: first topic in score-descending order (then insertion order) wins.
func Cluster(topics []*store.Topic, categoryID string, opts Options) []TrendTopic {
	opts = opts.withDefaults()

	sorted := make([]*store.Topic, len(topics))
	copy(sorted, topics)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score > sorted[j].Score
	})

	wordSets := make([]map[string]struct{}, len(sorted))
	for i, topic := range sorted {
		wordSets[i] = similarity.WordSet(topicText(topic), clusterWordMinLen)
	}

	assigned := make([]bool, len(sorted))
	var clusters []TrendTopic

	for i, seed := range sorted {
		if assigned[i] {
			continue
		}
		assigned[i] = true
		members := []*store.Topic{seed}

		for j := i + 1; j < len(sorted); j++ {
			if assigned[j] || len(members) >= opts.MaxClusterSize {
				continue
			}
			if similarity.Jaccard(wordSets[i], wordSets[j]) >= opts.Threshold {
				assigned[j] = true
				members = append(members, sorted[j])
			}
		}

		if len(members) < opts.MinClusterSize {
			continue
		}
		clusters = append(clusters, buildTrend(members, categoryID))
	}

	return clusters
}

func buildTrend(members []*store.Topic, categoryID string) TrendTopic {
	trend := TrendTopic{
		CategoryID: categoryID,
		SeedTitle:  members[0].Title,
	}

	var total float64
	titles := make([]string, 0, len(members))
	for _, member := range members {
		trend.TopicIDs = append(trend.TopicIDs, member.ID)
		titles = append(titles, member.Title)
		total += member.Score
	}
	trend.Titles = titles
	trend.Score = total / float64(len(members))
	trend.PacingHint = pacingHint(trend.Score)

	sortedTitles := make([]string, len(titles))
	copy(sortedTitles, titles)
	sort.Strings(sortedTitles)
	hashParts := append(sortedTitles, categoryID)
	trend.ID = similarity.ContentHash(hashParts...)

	trend.Angles = classifyAngles(titles)
	trend.HookPatterns = classifyHookPatterns(titles)
	trend.Keywords = topKeywords(titles, maxKeywords)

	return trend
}

func pacingHint(score float64) string {
	switch {
	case score > 70:
		return "fast"
	case score > 40:
		return "medium"
	default:
		return "slow"
	}
}

func topicText(topic *store.Topic) string {
	parts := []string{topic.Title}
	if topic.FullContent != "" {
		parts = append(parts, topic.FullContent)
	} else if topic.RawText != "" {
		parts = append(parts, topic.RawText)
	}
	return strings.Join(parts, " ")
}

package store

import "time"

// TopicStatus tracks editorial state for an ingested topic.
type TopicStatus string

const (
	TopicNew      TopicStatus = "new"
	TopicSelected TopicStatus = "selected"
	TopicIgnored  TopicStatus = "ignored"
)

// ExtractionStatus tracks the full-content extraction lifecycle for a topic.
type ExtractionStatus string

const (
	ExtractionPending    ExtractionStatus = "pending"
	ExtractionExtracting ExtractionStatus = "extracting"
	ExtractionDone       ExtractionStatus = "done"
	ExtractionFailed     ExtractionStatus = "failed"
)

// Topic is an ingested content candidate.
type Topic struct {
	ID               int64
	Title            string
	TranslatedTitle  string
	URL              string
	RawText          string
	FullContent      string
	InsightsJSON     string
	ExtractionStatus ExtractionStatus
	Language         string
	Score            float64
	Status           TopicStatus
	CategoryID       string
	SourceID         int64
	ContentHash      string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// HasExtractedContent reports whether context-aware generation can be used
// for this topic.
func (t *Topic) HasExtractedContent() bool {
	if t == nil {
		return false
	}
	return t.FullContent != "" || t.InsightsJSON != ""
}

// ScriptStatus tracks the generation lifecycle of a script.
type ScriptStatus string

const (
	ScriptDraft      ScriptStatus = "draft"
	ScriptGenerating ScriptStatus = "generating"
	ScriptReady      ScriptStatus = "ready"
	ScriptExported   ScriptStatus = "exported"
	ScriptError      ScriptStatus = "error"
)

// Script is a generation target derived from a Topic. Generation steps fill
// its fields incrementally; Status must be generating while any job for the
// script is running.
type Script struct {
	ID             int64
	TopicID        int64
	Title          string
	Hook           string
	VoiceText      string
	OnScreenText   string
	StoryboardJSON string
	MusicJSON      string
	SEOJSON        string
	VoiceAssetRef  string
	ExportRef      string
	StylePreset    string
	Status         ScriptStatus
	Error          string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// SetFailed marks the script as failed with the given error message.
func (s *Script) SetFailed(message string) {
	s.Status = ScriptError
	s.Error = message
}

// HealthStatus is the probe-driven reliability state of a source.
type HealthStatus string

const (
	HealthPending HealthStatus = "pending"
	HealthOK      HealthStatus = "ok"
	HealthWarning HealthStatus = "warning"
	HealthDead    HealthStatus = "dead"
)

// SourceType tags how a source is fetched. Only network-capable types are
// probed by the health monitor.
type SourceType string

const (
	SourceRSS     SourceType = "rss"
	SourceAtom    SourceType = "atom"
	SourceHTML    SourceType = "html"
	SourceYouTube SourceType = "youtube"
	SourceReddit  SourceType = "reddit"
	SourceManual  SourceType = "manual"
)

var networkableTypes = map[SourceType]struct{}{
	SourceRSS:     {},
	SourceAtom:    {},
	SourceHTML:    {},
	SourceYouTube: {},
	SourceReddit:  {},
}

// IsNetworkable reports whether the source type is probed over the network.
func (t SourceType) IsNetworkable() bool {
	_, ok := networkableTypes[t]
	return ok
}

// Source is a feed/provider definition. Health fields are owned exclusively
// by the health monitor.
type Source struct {
	ID                  int64
	Name                string
	Type                SourceType
	URL                 string
	CategoryID          string
	IsEnabled           bool
	Priority            int
	HealthStatus        HealthStatus
	ConsecutiveFailures int
	AvgLatencyMS        float64
	LastCheckAt         *time.Time
	LastItemCount       int
	FreshnessHours      float64
	HealthDetail        string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

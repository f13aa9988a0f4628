package api

import "encoding/json"

// dateTimeFormat is used for RFC3339 timestamps in API payloads.
const dateTimeFormat = "2006-01-02T15:04:05.000Z07:00"

// JobView describes a pipeline job in a transport-friendly format.
type JobView struct {
	ID           int64             `json:"id"`
	Kind         string            `json:"kind"`
	Status       string            `json:"status"`
	Progress     int               `json:"progress"`
	Payload      map[string]string `json:"payload,omitempty"`
	ErrorMessage string            `json:"errorMessage,omitempty"`
	CreatedAt    string            `json:"createdAt,omitempty"`
	UpdatedAt    string            `json:"updatedAt,omitempty"`
}

// ScriptView describes a script and the state of its generated artifacts.
type ScriptView struct {
	ID            int64           `json:"id"`
	TopicID       int64           `json:"topicId"`
	Title         string          `json:"title"`
	Status        string          `json:"status"`
	Hook          string          `json:"hook,omitempty"`
	VoiceText     string          `json:"voiceText,omitempty"`
	OnScreenText  string          `json:"onScreenText,omitempty"`
	Storyboard    json.RawMessage `json:"storyboard,omitempty"`
	Music         json.RawMessage `json:"music,omitempty"`
	SEO           json.RawMessage `json:"seo,omitempty"`
	VoiceAssetRef string          `json:"voiceAssetRef,omitempty"`
	ExportRef     string          `json:"exportRef,omitempty"`
	StylePreset   string          `json:"stylePreset,omitempty"`
	ErrorMessage  string          `json:"errorMessage,omitempty"`
	Artifacts     ArtifactStatus  `json:"artifacts"`
	CreatedAt     string          `json:"createdAt,omitempty"`
	UpdatedAt     string          `json:"updatedAt,omitempty"`
}

// ArtifactStatus flags which generation artifacts a script already carries.
type ArtifactStatus struct {
	Hook       bool `json:"hook"`
	VoiceText  bool `json:"voiceText"`
	Storyboard bool `json:"storyboard"`
	Music      bool `json:"music"`
	SEO        bool `json:"seo"`
	VoiceAsset bool `json:"voiceAsset"`
	Export     bool `json:"export"`
}

// TopicView describes an ingested topic candidate.
type TopicView struct {
	ID               int64   `json:"id"`
	Title            string  `json:"title"`
	TranslatedTitle  string  `json:"translatedTitle,omitempty"`
	URL              string  `json:"url,omitempty"`
	CategoryID       string  `json:"categoryId,omitempty"`
	SourceID         int64   `json:"sourceId,omitempty"`
	Score            float64 `json:"score"`
	Status           string  `json:"status"`
	ExtractionStatus string  `json:"extractionStatus,omitempty"`
	Language         string  `json:"language,omitempty"`
	CreatedAt        string  `json:"createdAt,omitempty"`
}

// SourceView describes a feed definition with its health snapshot.
type SourceView struct {
	ID                  int64   `json:"id"`
	Name                string  `json:"name"`
	Type                string  `json:"type"`
	URL                 string  `json:"url"`
	CategoryID          string  `json:"categoryId,omitempty"`
	Enabled             bool    `json:"enabled"`
	Priority            int     `json:"priority"`
	HealthStatus        string  `json:"healthStatus"`
	ConsecutiveFailures int     `json:"consecutiveFailures"`
	AvgLatencyMS        float64 `json:"avgLatencyMs"`
	LastCheckAt         string  `json:"lastCheckAt,omitempty"`
	LastItemCount       int     `json:"lastItemCount"`
	FreshnessHours      float64 `json:"freshnessHours"`
	HealthDetail        string  `json:"healthDetail,omitempty"`
}

// TrendView describes a clustered topic group.
type TrendView struct {
	ID           string   `json:"id"`
	CategoryID   string   `json:"categoryId"`
	SeedTitle    string   `json:"seedTitle"`
	Size         int      `json:"size"`
	Score        float64  `json:"score"`
	PacingHint   string   `json:"pacingHint"`
	TopicIDs     []int64  `json:"topicIds"`
	Titles       []string `json:"titles"`
	Angles       []string `json:"angles,omitempty"`
	HookPatterns []string `json:"hookPatterns,omitempty"`
	Keywords     []string `json:"keywords,omitempty"`
}

// JobStatsResponse provides a normalized job stats payload.
type JobStatsResponse struct {
	Total   int `json:"total"`
	Queued  int `json:"queued"`
	Running int `json:"running"`
	Done    int `json:"done"`
	Errored int `json:"errored"`
}

// DaemonStatusView aggregates daemon runtime information for API consumers.
type DaemonStatusView struct {
	Running      bool             `json:"running"`
	Processing   bool             `json:"processing"`
	Jobs         JobStatsResponse `json:"jobs"`
	DatabasePath string           `json:"databasePath"`
	LockFilePath string           `json:"lockFilePath"`
}

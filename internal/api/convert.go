package api

import (
	"encoding/json"
	"time"

	"reelpipe/internal/store"
	"reelpipe/internal/trends"
)

// FromJob converts a job record to its API representation.
func FromJob(job *store.Job) JobView {
	if job == nil {
		return JobView{}
	}
	view := JobView{
		ID:           job.ID,
		Kind:         string(job.Kind),
		Status:       string(job.Status),
		Progress:     job.Progress,
		ErrorMessage: job.Error,
		CreatedAt:    FormatTime(job.CreatedAt),
		UpdatedAt:    FormatTime(job.UpdatedAt),
	}
	if len(job.Payload) > 0 {
		payload := make(map[string]string, len(job.Payload))
		for key, value := range job.Payload {
			payload[key] = value
		}
		view.Payload = payload
	}
	return view
}

// FromJobs converts a slice of job records into API views.
func FromJobs(jobs []*store.Job) []JobView {
	if len(jobs) == 0 {
		return nil
	}
	out := make([]JobView, 0, len(jobs))
	for _, job := range jobs {
		out = append(out, FromJob(job))
	}
	return out
}

// FromScript converts a script record to its API representation.
func FromScript(script *store.Script) ScriptView {
	if script == nil {
		return ScriptView{}
	}
	view := ScriptView{
		ID:            script.ID,
		TopicID:       script.TopicID,
		Title:         script.Title,
		Status:        string(script.Status),
		Hook:          script.Hook,
		VoiceText:     script.VoiceText,
		OnScreenText:  script.OnScreenText,
		VoiceAssetRef: script.VoiceAssetRef,
		ExportRef:     script.ExportRef,
		StylePreset:   script.StylePreset,
		ErrorMessage:  script.Error,
		Artifacts: ArtifactStatus{
			Hook:       script.Hook != "",
			VoiceText:  script.VoiceText != "",
			Storyboard: script.StoryboardJSON != "",
			Music:      script.MusicJSON != "",
			SEO:        script.SEOJSON != "",
			VoiceAsset: script.VoiceAssetRef != "",
			Export:     script.ExportRef != "",
		},
		CreatedAt: FormatTime(script.CreatedAt),
		UpdatedAt: FormatTime(script.UpdatedAt),
	}
	if script.StoryboardJSON != "" {
		view.Storyboard = json.RawMessage(script.StoryboardJSON)
	}
	if script.MusicJSON != "" {
		view.Music = json.RawMessage(script.MusicJSON)
	}
	if script.SEOJSON != "" {
		view.SEO = json.RawMessage(script.SEOJSON)
	}
	return view
}

// FromScripts converts a slice of script records into API views.
func FromScripts(scripts []*store.Script) []ScriptView {
	if len(scripts) == 0 {
		return nil
	}
	out := make([]ScriptView, 0, len(scripts))
	for _, script := range scripts {
		out = append(out, FromScript(script))
	}
	return out
}

// FromTopic converts a topic record to its API representation.
func FromTopic(topic *store.Topic) TopicView {
	if topic == nil {
		return TopicView{}
	}
	return TopicView{
		ID:               topic.ID,
		Title:            topic.Title,
		TranslatedTitle:  topic.TranslatedTitle,
		URL:              topic.URL,
		CategoryID:       topic.CategoryID,
		SourceID:         topic.SourceID,
		Score:            topic.Score,
		Status:           string(topic.Status),
		ExtractionStatus: string(topic.ExtractionStatus),
		Language:         topic.Language,
		CreatedAt:        FormatTime(topic.CreatedAt),
	}
}

// FromTopics converts a slice of topic records into API views.
func FromTopics(topics []*store.Topic) []TopicView {
	if len(topics) == 0 {
		return nil
	}
	out := make([]TopicView, 0, len(topics))
	for _, topic := range topics {
		out = append(out, FromTopic(topic))
	}
	return out
}

// FromSource converts a source record to its API representation.
func FromSource(source *store.Source) SourceView {
	if source == nil {
		return SourceView{}
	}
	view := SourceView{
		ID:                  source.ID,
		Name:                source.Name,
		Type:                string(source.Type),
		URL:                 source.URL,
		CategoryID:          source.CategoryID,
		Enabled:             source.IsEnabled,
		Priority:            source.Priority,
		HealthStatus:        string(source.HealthStatus),
		ConsecutiveFailures: source.ConsecutiveFailures,
		AvgLatencyMS:        source.AvgLatencyMS,
		LastItemCount:       source.LastItemCount,
		FreshnessHours:      source.FreshnessHours,
		HealthDetail:        source.HealthDetail,
	}
	if source.LastCheckAt != nil {
		view.LastCheckAt = FormatTime(*source.LastCheckAt)
	}
	return view
}

// FromSources converts a slice of source records into API views.
func FromSources(sources []*store.Source) []SourceView {
	if len(sources) == 0 {
		return nil
	}
	out := make([]SourceView, 0, len(sources))
	for _, source := range sources {
		out = append(out, FromSource(source))
	}
	return out
}

// FromTrend converts a clustered trend topic to its API representation.
func FromTrend(trend trends.TrendTopic) TrendView {
	return TrendView{
		ID:           trend.ID,
		CategoryID:   trend.CategoryID,
		SeedTitle:    trend.SeedTitle,
		Size:         trend.Size(),
		Score:        trend.Score,
		PacingHint:   trend.PacingHint,
		TopicIDs:     trend.TopicIDs,
		Titles:       trend.Titles,
		Angles:       trend.Angles,
		HookPatterns: trend.HookPatterns,
		Keywords:     trend.Keywords,
	}
}

// FromTrends converts clustered trend topics into API views.
func FromTrends(clusters []trends.TrendTopic) []TrendView {
	if len(clusters) == 0 {
		return nil
	}
	out := make([]TrendView, 0, len(clusters))
	for _, trend := range clusters {
		out = append(out, FromTrend(trend))
	}
	return out
}

// FromJobStats converts job counters into the API stats payload.
func FromJobStats(stats store.JobStats) JobStatsResponse {
	return JobStatsResponse{
		Total:   stats.Total,
		Queued:  stats.Queued,
		Running: stats.Running,
		Done:    stats.Done,
		Errored: stats.Errored,
	}
}

// FormatTime converts a time to RFC3339 or returns empty string.
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(dateTimeFormat)
}

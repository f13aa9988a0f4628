package api

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// SortJobsNewestFirst orders jobs by CreatedAt descending, breaking ties by ID descending.
func SortJobsNewestFirst(jobs []JobView) []JobView {
	if len(jobs) == 0 {
		return nil
	}
	sorted := make([]JobView, len(jobs))
	copy(sorted, jobs)
	sort.Slice(sorted, func(i, j int) bool {
		ti := parseViewTime(sorted[i].CreatedAt)
		tj := parseViewTime(sorted[j].CreatedAt)
		if ti.Equal(tj) {
			return sorted[i].ID > sorted[j].ID
		}
		return ti.After(tj)
	})
	return sorted
}

func parseViewTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t
	}
	return time.Time{}
}

// ParseViewTime exposes timestamp parsing for consumers that need display formatting.
func ParseViewTime(value string) time.Time {
	return parseViewTime(value)
}

// JobDisplayLabel renders a short human label for a job.
func JobDisplayLabel(job JobView) string {
	kind := strings.TrimSpace(job.Kind)
	if kind == "" {
		kind = "job"
	}
	if target := JobTargetLabel(job); target != "" {
		return fmt.Sprintf("%s %s", kind, target)
	}
	return kind
}

// JobTargetLabel summarizes the entity a job payload points at.
func JobTargetLabel(job JobView) string {
	if len(job.Payload) == 0 {
		return ""
	}
	if id := job.Payload["scriptId"]; id != "" {
		return "script " + id
	}
	if id := job.Payload["topicId"]; id != "" {
		return "topic " + id
	}
	if id := job.Payload["sourceId"]; id != "" {
		return "source " + id
	}
	if category := job.Payload["categoryId"]; category != "" {
		return "category " + category
	}
	return ""
}

// ScriptArtifactSummary renders a compact artifact checklist, e.g. "hook voice board".
func ScriptArtifactSummary(script ScriptView) string {
	parts := make([]string, 0, 7)
	add := func(present bool, label string) {
		if present {
			parts = append(parts, label)
		}
	}
	add(script.Artifacts.Hook, "hook")
	add(script.Artifacts.VoiceText, "voice")
	add(script.Artifacts.Storyboard, "board")
	add(script.Artifacts.Music, "music")
	add(script.Artifacts.SEO, "seo")
	add(script.Artifacts.VoiceAsset, "audio")
	add(script.Artifacts.Export, "export")
	return strings.Join(parts, " ")
}

// SourceHealthSummary renders a one-line health description for a source.
func SourceHealthSummary(source SourceView) string {
	status := source.HealthStatus
	if status == "" {
		status = "pending"
	}
	var extras []string
	if source.ConsecutiveFailures > 0 {
		extras = append(extras, fmt.Sprintf("%d failures", source.ConsecutiveFailures))
	}
	if source.AvgLatencyMS > 0 {
		extras = append(extras, fmt.Sprintf("%.0fms", source.AvgLatencyMS))
	}
	if source.FreshnessHours > 0 {
		extras = append(extras, fmt.Sprintf("%.1fh old", source.FreshnessHours))
	}
	if len(extras) == 0 {
		return status
	}
	return fmt.Sprintf("%s (%s)", status, strings.Join(extras, ", "))
}

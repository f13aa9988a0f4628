package api

import "testing"

func TestSortJobsNewestFirst(t *testing.T) {
	jobs := []JobView{
		{ID: 1, CreatedAt: "2026-03-01T10:00:00.000Z"},
		{ID: 3, CreatedAt: "2026-03-01T12:00:00.000Z"},
		{ID: 2, CreatedAt: "2026-03-01T12:00:00.000Z"},
	}

	sorted := SortJobsNewestFirst(jobs)
	if sorted[0].ID != 3 || sorted[1].ID != 2 || sorted[2].ID != 1 {
		t.Fatalf("unexpected order: %d %d %d", sorted[0].ID, sorted[1].ID, sorted[2].ID)
	}
	if jobs[0].ID != 1 {
		t.Fatal("input slice must not be reordered")
	}
}

func TestJobDisplayLabel(t *testing.T) {
	cases := []struct {
		name string
		job  JobView
		want string
	}{
		{"script target", JobView{Kind: "generate_all", Payload: map[string]string{"scriptId": "4"}}, "generate_all script 4"},
		{"source target", JobView{Kind: "health_check", Payload: map[string]string{"sourceId": "9"}}, "health_check source 9"},
		{"category target", JobView{Kind: "extract_trends", Payload: map[string]string{"categoryId": "tech"}}, "extract_trends category tech"},
		{"no payload", JobView{Kind: "fetch_topics"}, "fetch_topics"},
		{"empty kind", JobView{}, "job"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := JobDisplayLabel(tc.job); got != tc.want {
				t.Fatalf("JobDisplayLabel = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestScriptArtifactSummary(t *testing.T) {
	script := ScriptView{Artifacts: ArtifactStatus{Hook: true, VoiceText: true, Music: true}}
	if got := ScriptArtifactSummary(script); got != "hook voice music" {
		t.Fatalf("ScriptArtifactSummary = %q", got)
	}
	if got := ScriptArtifactSummary(ScriptView{}); got != "" {
		t.Fatalf("empty summary = %q, want empty", got)
	}
}

func TestSourceHealthSummary(t *testing.T) {
	source := SourceView{HealthStatus: "warning", ConsecutiveFailures: 3, AvgLatencyMS: 250}
	if got := SourceHealthSummary(source); got != "warning (3 failures, 250ms)" {
		t.Fatalf("SourceHealthSummary = %q", got)
	}
	if got := SourceHealthSummary(SourceView{}); got != "pending" {
		t.Fatalf("empty summary = %q, want pending", got)
	}
}

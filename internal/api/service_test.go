package api

import (
	"context"
	"testing"

	"reelpipe/internal/store"
	"reelpipe/internal/testsupport"
)

func newTestService(t *testing.T) (*Service, *store.Store) {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	return NewService(st, st), st
}

func TestServiceJobsNewestFirst(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()

	first, err := st.NewJob(ctx, store.KindFetchTopics, nil)
	if err != nil {
		t.Fatalf("NewJob: %v", err)
	}
	second, err := st.NewJob(ctx, store.KindHealthCheckAll, nil)
	if err != nil {
		t.Fatalf("NewJob: %v", err)
	}

	jobs, err := svc.Jobs(ctx)
	if err != nil {
		t.Fatalf("Jobs: %v", err)
	}
	if len(jobs) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(jobs))
	}
	if jobs[0].ID != second.ID || jobs[1].ID != first.ID {
		t.Fatalf("unexpected order: %d then %d", jobs[0].ID, jobs[1].ID)
	}
}

func TestServiceDescribeMissing(t *testing.T) {
	svc, _ := newTestService(t)

	view, err := svc.Describe(context.Background(), 404)
	if err != nil {
		t.Fatalf("Describe: %v", err)
	}
	if view != nil {
		t.Fatalf("expected nil view for missing job, got %+v", view)
	}
}

func TestServiceRequeueCreatesFreshJob(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()

	job, err := st.NewJob(ctx, store.KindGenerateHook, store.ScriptPayload(8))
	if err != nil {
		t.Fatalf("NewJob: %v", err)
	}
	job.Status = store.JobError
	job.Error = "provider unreachable"
	if err := st.UpdateJob(ctx, job); err != nil {
		t.Fatalf("UpdateJob: %v", err)
	}

	result, err := RequeueFailedJobsByID(ctx, svc, []int64{job.ID, 404})
	if err != nil {
		t.Fatalf("RequeueFailedJobsByID: %v", err)
	}
	if result.RequeuedCount != 1 {
		t.Fatalf("requeued = %d, want 1", result.RequeuedCount)
	}
	if result.Jobs[0].Outcome != RequeueDone || result.Jobs[0].NewJobID == job.ID {
		t.Fatalf("unexpected outcome: %+v", result.Jobs[0])
	}

	created, err := st.GetJob(ctx, result.Jobs[0].NewJobID)
	if err != nil {
		t.Fatalf("GetJob: %v", err)
	}
	if created.Kind != store.KindGenerateHook || created.Status != store.JobQueued {
		t.Fatalf("unexpected new job: %+v", created)
	}
	if id, ok := created.Payload.ScriptID(); !ok || id != 8 {
		t.Fatalf("payload not carried over: %+v", created.Payload)
	}

	original, err := st.GetJob(ctx, job.ID)
	if err != nil {
		t.Fatalf("GetJob original: %v", err)
	}
	if original.Status != store.JobError {
		t.Fatal("original job must keep its failed status")
	}
}

func TestServiceRequeueSkipsNonFailed(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()

	job, err := st.NewJob(ctx, store.KindFetchTopics, nil)
	if err != nil {
		t.Fatalf("NewJob: %v", err)
	}

	result, err := RequeueFailedJobsByID(ctx, svc, []int64{job.ID})
	if err != nil {
		t.Fatalf("RequeueFailedJobsByID: %v", err)
	}
	if result.RequeuedCount != 0 || result.Jobs[0].Outcome != RequeueNotFailed {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestServiceCancelQueuedOnly(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()

	queued, err := st.NewJob(ctx, store.KindFetchTopics, nil)
	if err != nil {
		t.Fatalf("NewJob: %v", err)
	}
	running, err := st.NewJob(ctx, store.KindHealthCheckAll, nil)
	if err != nil {
		t.Fatalf("NewJob: %v", err)
	}
	running.Status = store.JobRunning
	if err := st.UpdateJob(ctx, running); err != nil {
		t.Fatalf("UpdateJob: %v", err)
	}

	result, err := CancelQueuedJobsByID(ctx, svc, []int64{queued.ID, running.ID})
	if err != nil {
		t.Fatalf("CancelQueuedJobsByID: %v", err)
	}
	if result.CanceledCount != 1 {
		t.Fatalf("canceled = %d, want 1", result.CanceledCount)
	}
	if result.Jobs[1].Outcome != CancelNotQueued || result.Jobs[1].PriorStatus != "running" {
		t.Fatalf("unexpected running outcome: %+v", result.Jobs[1])
	}

	updated, err := st.GetJob(ctx, queued.ID)
	if err != nil {
		t.Fatalf("GetJob: %v", err)
	}
	if updated.Status != store.JobError || updated.Error == "" {
		t.Fatalf("canceled job not marked: %+v", updated)
	}
}

func TestServiceScriptsAndSources(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()

	topic := testsupport.NewTopic(t, st, "AI release", "tech", 80)
	testsupport.NewScript(t, st, topic.ID, topic.Title)
	testsupport.NewSource(t, st, "Tech News", store.SourceRSS, "https://example.com/feed")

	scripts, err := svc.Scripts(ctx)
	if err != nil {
		t.Fatalf("Scripts: %v", err)
	}
	if len(scripts) != 1 || scripts[0].Status != "draft" {
		t.Fatalf("unexpected scripts: %+v", scripts)
	}

	sources, err := svc.Sources(ctx, true)
	if err != nil {
		t.Fatalf("Sources: %v", err)
	}
	if len(sources) != 1 || sources[0].HealthStatus != "pending" {
		t.Fatalf("unexpected sources: %+v", sources)
	}
}

func TestServiceSourcesInCategory(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()

	for _, src := range []*store.Source{
		{Name: "Tech Feed", Type: store.SourceRSS, URL: "https://a.example/rss", CategoryID: "tech", IsEnabled: true},
		{Name: "Gaming Feed", Type: store.SourceRSS, URL: "https://b.example/rss", CategoryID: "gaming", IsEnabled: true},
	} {
		if _, err := st.NewSource(ctx, src); err != nil {
			t.Fatalf("NewSource: %v", err)
		}
	}

	sources, err := svc.SourcesInCategory(ctx, "tech")
	if err != nil {
		t.Fatalf("SourcesInCategory: %v", err)
	}
	if len(sources) != 1 || sources[0].Name != "Tech Feed" {
		t.Fatalf("unexpected sources: %+v", sources)
	}
}

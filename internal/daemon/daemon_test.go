package daemon

import (
	"context"
	"testing"

	"reelpipe/internal/notifications"
	"reelpipe/internal/pipeline"
	"reelpipe/internal/providers"
	"reelpipe/internal/store"
	"reelpipe/internal/testsupport"
)

type stubGenerator struct{ providers.Generator }

func newTestDaemon(t *testing.T) *Daemon {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	worker := pipeline.New(cfg, st, stubGenerator{}, providers.UnavailableVoice{}, notifications.NewService(cfg), nil)

	d, err := New(cfg, st, worker, nil)
	if err != nil {
		t.Fatalf("daemon.New: %v", err)
	}
	return d
}

func TestDaemonStartStop(t *testing.T) {
	d := newTestDaemon(t)

	if err := d.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	t.Cleanup(d.Stop)

	status, err := d.Status(context.Background())
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if !status.Running {
		t.Error("expected running status")
	}

	if err := d.Start(context.Background()); err == nil {
		t.Error("expected second Start to fail")
	}

	d.Stop()
	status, err = d.Status(context.Background())
	if err != nil {
		t.Fatalf("Status after stop: %v", err)
	}
	if status.Running {
		t.Error("expected stopped status")
	}
}

func TestDaemonEnqueue(t *testing.T) {
	d := newTestDaemon(t)

	job, err := d.Enqueue(context.Background(), store.KindFetchTopics, nil)
	if err != nil {
		t.Fatalf("Enqueue: %v", err)
	}
	if job.Status != store.JobQueued {
		t.Errorf("expected queued, got %s", job.Status)
	}
}

func TestDaemonTestNotificationWithoutTopic(t *testing.T) {
	d := newTestDaemon(t)

	sent, detail, err := d.TestNotification(context.Background())
	if err != nil {
		t.Fatalf("TestNotification: %v", err)
	}
	if sent {
		t.Error("expected no send without a configured topic")
	}
	if detail == "" {
		t.Error("expected explanatory detail")
	}
}

package notifications

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"reelpipe/internal/config"
)

func TestNewServiceReturnsNoopWithoutTopic(t *testing.T) {
	cfg := config.Default()
	service := NewService(&cfg)
	if _, ok := service.(noopService); !ok {
		t.Fatalf("expected noop service, got %T", service)
	}
	if err := service.NotifyJobFailed(context.Background(), "generate_script", 1, "boom"); err != nil {
		t.Errorf("noop notify returned error: %v", err)
	}
}

func TestNtfyServiceSendsHeadersAndBody(t *testing.T) {
	var gotTitle, gotTags, gotPriority, gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotTitle = r.Header.Get("Title")
		gotTags = r.Header.Get("Tags")
		gotPriority = r.Header.Get("Priority")
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
	}))
	defer server.Close()

	cfg := config.Default()
	cfg.Notifications.NtfyTopic = server.URL
	service := NewService(&cfg)

	if err := service.NotifyJobFailed(context.Background(), "generate_script", 42, "similarity rejected"); err != nil {
		t.Fatalf("NotifyJobFailed: %v", err)
	}
	if gotTitle != "Reelpipe - Job Failed" {
		t.Errorf("unexpected title %q", gotTitle)
	}
	if !strings.Contains(gotTags, "error") {
		t.Errorf("unexpected tags %q", gotTags)
	}
	if gotPriority != "high" {
		t.Errorf("expected high priority, got %q", gotPriority)
	}
	if !strings.Contains(gotBody, "Job 42 (generate_script)") {
		t.Errorf("unexpected body %q", gotBody)
	}
}

func TestNtfyServiceSurfacesHTTPFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	defer server.Close()

	cfg := config.Default()
	cfg.Notifications.NtfyTopic = server.URL
	service := NewService(&cfg)

	if err := service.TestNotification(context.Background()); err == nil {
		t.Fatal("expected error from non-2xx response")
	}
}

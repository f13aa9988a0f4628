package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"reelpipe/internal/config"
)

const userAgent = "reelpipe/0.1.0"

// Service defines the notification surface exposed to pipeline components.
type Service interface {
	NotifyJobFailed(ctx context.Context, kind string, jobID int64, reason string) error
	NotifyScriptReady(ctx context.Context, title string) error
	NotifyQueueDrained(ctx context.Context, processed, failed int) error
	NotifySourceDead(ctx context.Context, sourceName string, failures int) error
	NotifySourceDisabled(ctx context.Context, sourceName string) error
	TestNotification(ctx context.Context) error
}

// NewService builds a notification service backed by ntfy when configured.
// Without an ntfy topic a noop implementation is returned.
func NewService(cfg *config.Config) Service {
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return noopService{}
	}

	timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &ntfyService{
		endpoint: topic,
		client:   &http.Client{Timeout: timeout},
	}
}

type payload struct {
	title    string
	message  string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint string
	client   *http.Client
}

func (n *ntfyService) NotifyJobFailed(ctx context.Context, kind string, jobID int64, reason string) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = "unknown"
	}
	return n.send(ctx, payload{
		title:    "Reelpipe - Job Failed",
		message:  fmt.Sprintf("Job %d (%s) failed: %s", jobID, kind, reason),
		tags:     []string{"reelpipe", "job", "error"},
		priority: "high",
	})
}

func (n *ntfyService) NotifyScriptReady(ctx context.Context, title string) error {
	return n.send(ctx, payload{
		title:   "Reelpipe - Script Ready",
		message: fmt.Sprintf("Script ready for production: %s", strings.TrimSpace(title)),
		tags:    []string{"reelpipe", "script", "ready"},
	})
}

func (n *ntfyService) NotifyQueueDrained(ctx context.Context, processed, failed int) error {
	var message string
	if failed == 0 {
		message = fmt.Sprintf("Queue drained: %d jobs processed", processed)
	} else {
		message = fmt.Sprintf("Queue drained: %d succeeded, %d failed", processed, failed)
	}
	return n.send(ctx, payload{
		title:   "Reelpipe - Queue Drained",
		message: message,
		tags:    []string{"reelpipe", "queue", "completed"},
	})
}

func (n *ntfyService) NotifySourceDead(ctx context.Context, sourceName string, failures int) error {
	return n.send(ctx, payload{
		title:    "Reelpipe - Source Dead",
		message:  fmt.Sprintf("Source %q marked dead after %d consecutive failures", strings.TrimSpace(sourceName), failures),
		tags:     []string{"reelpipe", "source", "dead"},
		priority: "high",
	})
}

func (n *ntfyService) NotifySourceDisabled(ctx context.Context, sourceName string) error {
	return n.send(ctx, payload{
		title:   "Reelpipe - Source Disabled",
		message: fmt.Sprintf("Source %q auto-disabled; re-enable after fixing the feed", strings.TrimSpace(sourceName)),
		tags:    []string{"reelpipe", "source", "disabled"},
	})
}

func (n *ntfyService) TestNotification(ctx context.Context) error {
	return n.send(ctx, payload{
		title:    "Reelpipe - Test",
		message:  "Notification system test",
		tags:     []string{"reelpipe", "test"},
		priority: "low",
	})
}

func (n *ntfyService) send(ctx context.Context, data payload) error {
	if n == nil || n.client == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(data.message))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if data.title != "" {
		req.Header.Set("Title", data.title)
	}
	if len(data.tags) > 0 {
		req.Header.Set("Tags", strings.Join(data.tags, ","))
	}
	if data.priority != "" && data.priority != "default" {
		req.Header.Set("Priority", data.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

type noopService struct{}

func (noopService) NotifyJobFailed(context.Context, string, int64, string) error { return nil }
func (noopService) NotifyScriptReady(context.Context, string) error              { return nil }
func (noopService) NotifyQueueDrained(context.Context, int, int) error           { return nil }
func (noopService) NotifySourceDead(context.Context, string, int) error          { return nil }
func (noopService) NotifySourceDisabled(context.Context, string) error           { return nil }
func (noopService) TestNotification(context.Context) error                       { return nil }

package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"absweep/internal/config"
)

const userAgent = "absweep/0.1.0"

// Service defines the notification surface exposed to the sweep.
type Service interface {
	NotifySweepStarted(ctx context.Context, mediaKind string, dryRun bool) error
	NotifySweepCompleted(ctx context.Context, deleted, failed, skippedRecent int, duration time.Duration, dryRun bool) error
	NotifyError(ctx context.Context, err error, contextLabel string) error
	TestNotification(ctx context.Context) error
}

// NewService builds a notification service backed by ntfy when configured.
// When no ntfy topic is configured, a noop implementation is returned.
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
		endpoint:  topic,
		client:    &http.Client{Timeout: timeout},
		started:   cfg.Notifications.Started,
		completed: cfg.Notifications.Completed,
		errors:    cfg.Notifications.Errors,
	}
}

type payload struct {
	title    string
	message  string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint  string
	client    *http.Client
	started   bool
	completed bool
	errors    bool
}

func (n *ntfyService) NotifySweepStarted(ctx context.Context, mediaKind string, dryRun bool) error {
	if !n.started {
		return nil
	}
	message := fmt.Sprintf("Sweep started (%s)", mediaKind)
	if dryRun {
		message += " [dry run]"
	}
	data := payload{
		title:   "absweep - Sweep Started",
		message: message,
		tags:    []string{"absweep", "sweep", "started"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifySweepCompleted(ctx context.Context, deleted, failed, skippedRecent int, duration time.Duration, dryRun bool) error {
	if !n.completed {
		return nil
	}

	duration = duration.Round(time.Second)
	if duration <= 0 {
		duration = time.Second
	}

	parts := []string{fmt.Sprintf("%d deleted", deleted), fmt.Sprintf("%d failed", failed)}
	if skippedRecent > 0 {
		parts = append(parts, fmt.Sprintf("%d skipped (too recent)", skippedRecent))
	}
	message := fmt.Sprintf("Sweep complete: %s in %s", strings.Join(parts, ", "), duration)
	if dryRun {
		message += " [dry run - nothing was deleted]"
	}

	title := "absweep - Sweep Complete"
	if failed > 0 {
		title = "absweep - Sweep Complete (with errors)"
	}
	data := payload{
		title:   title,
		message: message,
		tags:    []string{"absweep", "sweep", "completed"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyError(ctx context.Context, err error, contextLabel string) error {
	if !n.errors {
		return nil
	}

	var builder strings.Builder
	builder.WriteString("Error")
	if contextLabel = strings.TrimSpace(contextLabel); contextLabel != "" {
		builder.WriteString(" with ")
		builder.WriteString(contextLabel)
	}
	builder.WriteString(": ")
	if err != nil {
		builder.WriteString(strings.TrimSpace(err.Error()))
	} else {
		builder.WriteString("unknown")
	}

	data := payload{
		title:    "absweep - Error",
		message:  builder.String(),
		tags:     []string{"absweep", "error", "alert"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) TestNotification(ctx context.Context) error {
	data := payload{
		title:    "absweep - Test",
		message:  "Notification system test",
		tags:     []string{"absweep", "test"},
		priority: "low",
	}
	return n.send(ctx, data)
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

func (noopService) NotifySweepStarted(context.Context, string, bool) error { return nil }
func (noopService) NotifySweepCompleted(context.Context, int, int, int, time.Duration, bool) error {
	return nil
}
func (noopService) NotifyError(context.Context, error, string) error { return nil }
func (noopService) TestNotification(context.Context) error           { return nil }

// Noop returns a Service that discards every notification.
func Noop() Service { return noopService{} }

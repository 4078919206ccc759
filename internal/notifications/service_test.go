package notifications_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"absweep/internal/config"
	"absweep/internal/notifications"
)

type captured struct {
	title    string
	message  string
	tags     string
	priority string
}

func newCaptureServer(t *testing.T, sink *[]captured) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			t.Errorf("read body: %v", err)
		}
		*sink = append(*sink, captured{
			title:    r.Header.Get("Title"),
			message:  string(body),
			tags:     r.Header.Get("Tags"),
			priority: r.Header.Get("Priority"),
		})
		w.WriteHeader(http.StatusOK)
	}))
}

func TestNewServiceReturnsNoopWhenTopicMissing(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Notifications.NtfyTopic = ""
	svc := notifications.NewService(&cfg)
	if err := svc.NotifySweepCompleted(context.Background(), 3, 0, 0, time.Minute, false); err != nil {
		t.Fatalf("expected noop notifier to return nil, got %v", err)
	}
}

func TestSweepCompletedFormatsSummary(t *testing.T) {
	var got []captured
	server := newCaptureServer(t, &got)
	defer server.Close()

	cfg := config.Default()
	cfg.Notifications.NtfyTopic = server.URL
	svc := notifications.NewService(&cfg)

	if err := svc.NotifySweepCompleted(context.Background(), 4, 1, 2, 90*time.Second, false); err != nil {
		t.Fatalf("NotifySweepCompleted: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected one request, got %d", len(got))
	}
	if got[0].title != "absweep - Sweep Complete (with errors)" {
		t.Fatalf("unexpected title %q", got[0].title)
	}
	want := "Sweep complete: 4 deleted, 1 failed, 2 skipped (too recent) in 1m30s"
	if got[0].message != want {
		t.Fatalf("unexpected message %q want %q", got[0].message, want)
	}
	if got[0].tags != "absweep,sweep,completed" {
		t.Fatalf("unexpected tags %q", got[0].tags)
	}
}

func TestSweepCompletedDryRunSuffix(t *testing.T) {
	var got []captured
	server := newCaptureServer(t, &got)
	defer server.Close()

	cfg := config.Default()
	cfg.Notifications.NtfyTopic = server.URL
	svc := notifications.NewService(&cfg)

	if err := svc.NotifySweepCompleted(context.Background(), 2, 0, 0, time.Second, true); err != nil {
		t.Fatalf("NotifySweepCompleted: %v", err)
	}
	want := "Sweep complete: 2 deleted, 0 failed in 1s [dry run - nothing was deleted]"
	if got[0].message != want {
		t.Fatalf("unexpected message %q", got[0].message)
	}
}

func TestStartedGatedByConfig(t *testing.T) {
	var got []captured
	server := newCaptureServer(t, &got)
	defer server.Close()

	cfg := config.Default()
	cfg.Notifications.NtfyTopic = server.URL
	cfg.Notifications.Started = false
	svc := notifications.NewService(&cfg)

	if err := svc.NotifySweepStarted(context.Background(), "podcasts", false); err != nil {
		t.Fatalf("NotifySweepStarted: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected started notification suppressed, got %d requests", len(got))
	}
}

func TestErrorNotificationHighPriority(t *testing.T) {
	var got []captured
	server := newCaptureServer(t, &got)
	defer server.Close()

	cfg := config.Default()
	cfg.Notifications.NtfyTopic = server.URL
	svc := notifications.NewService(&cfg)

	if err := svc.NotifyError(context.Background(), errors.New("connection refused"), "progress fetch"); err != nil {
		t.Fatalf("NotifyError: %v", err)
	}
	if got[0].priority != "high" {
		t.Fatalf("expected high priority, got %q", got[0].priority)
	}
	if got[0].message != "Error with progress fetch: connection refused" {
		t.Fatalf("unexpected message %q", got[0].message)
	}
}

func TestSendSurfacesServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "topic unavailable", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	cfg := config.Default()
	cfg.Notifications.NtfyTopic = server.URL
	svc := notifications.NewService(&cfg)

	if err := svc.TestNotification(context.Background()); err == nil {
		t.Fatal("expected error from failing ntfy endpoint")
	}
}

package history_test

import (
	"context"
	"testing"
	"time"

	"absweep/internal/history"
	"absweep/internal/sweep"
)

func mustOpenStore(t *testing.T) *history.Store {
	t.Helper()
	store, err := history.Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("Close failed: %v", err)
		}
	})
	return store
}

func sampleSummary(id string, started time.Time) *sweep.Summary {
	return &sweep.Summary{
		RunID:            id,
		Started:          started,
		Finished:         started.Add(42 * time.Second),
		Kind:             sweep.KindEverything,
		AgeFiltered:      true,
		FinishedEpisodes: 3,
		Deleted:          2,
		Failed:           1,
		SkippedRecent:    1,
		Results: []sweep.ItemResult{
			{
				Kind:          sweep.ItemKindEpisode,
				LibraryItemID: "pod_news",
				EpisodeID:     "ep_1",
				Title:         "Monday",
				Detail:        "Daily News",
				AddedAt:       1000,
				Status:        sweep.StatusDeleted,
			},
			{
				Kind:          sweep.ItemKindEpisode,
				LibraryItemID: "pod_news",
				EpisodeID:     "ep_2",
				Title:         "Tuesday",
				Detail:        "Daily News",
				AddedAt:       2000,
				Status:        sweep.StatusFailed,
				Error:         "server error",
			},
		},
	}
}

func TestRecordAndListRuns(t *testing.T) {
	store := mustOpenStore(t)
	ctx := context.Background()

	base := time.Date(2025, time.March, 1, 6, 0, 0, 0, time.UTC)
	if err := store.RecordRun(ctx, sampleSummary("run-old", base)); err != nil {
		t.Fatalf("RecordRun failed: %v", err)
	}
	if err := store.RecordRun(ctx, sampleSummary("run-new", base.Add(24*time.Hour))); err != nil {
		t.Fatalf("RecordRun failed: %v", err)
	}

	runs, err := store.RecentRuns(ctx, 10)
	if err != nil {
		t.Fatalf("RecentRuns failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].ID != "run-new" {
		t.Fatalf("expected newest run first, got %q", runs[0].ID)
	}
	run := runs[0]
	if run.Deleted != 2 || run.Failed != 1 || run.SkippedRecent != 1 {
		t.Fatalf("unexpected counters: %+v", run)
	}
	if !run.AgeFiltered || run.DryRun {
		t.Fatalf("unexpected flags: %+v", run)
	}
	if run.Duration() != 42*time.Second {
		t.Fatalf("unexpected duration: %v", run.Duration())
	}
}

func TestRecentRunsHonorsLimit(t *testing.T) {
	store := mustOpenStore(t)
	ctx := context.Background()

	base := time.Date(2025, time.March, 1, 6, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		summary := sampleSummary("", base.Add(time.Duration(i)*time.Hour))
		summary.RunID = summary.Started.Format("run-15-04-05")
		if err := store.RecordRun(ctx, summary); err != nil {
			t.Fatalf("RecordRun failed: %v", err)
		}
	}

	runs, err := store.RecentRuns(ctx, 3)
	if err != nil {
		t.Fatalf("RecentRuns failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("expected 3 runs, got %d", len(runs))
	}
}

func TestRecentRunsOrdersSubsecondStarts(t *testing.T) {
	store := mustOpenStore(t)
	ctx := context.Background()

	// A run starting on a whole second must sort before one starting a
	// fraction of a second later.
	base := time.Date(2025, time.March, 1, 6, 0, 0, 0, time.UTC)
	if err := store.RecordRun(ctx, sampleSummary("run-whole", base)); err != nil {
		t.Fatalf("RecordRun failed: %v", err)
	}
	if err := store.RecordRun(ctx, sampleSummary("run-frac", base.Add(250*time.Millisecond))); err != nil {
		t.Fatalf("RecordRun failed: %v", err)
	}

	runs, err := store.RecentRuns(ctx, 10)
	if err != nil {
		t.Fatalf("RecentRuns failed: %v", err)
	}
	if len(runs) != 2 || runs[0].ID != "run-frac" || runs[1].ID != "run-whole" {
		t.Fatalf("unexpected order: %+v", runs)
	}
	if !runs[0].Started.After(runs[1].Started) {
		t.Fatalf("expected round-trip to preserve sub-second precision: %v vs %v",
			runs[0].Started, runs[1].Started)
	}

	pruned, err := store.PruneOlderThan(ctx, base.Add(100*time.Millisecond))
	if err != nil {
		t.Fatalf("PruneOlderThan failed: %v", err)
	}
	if pruned != 1 {
		t.Fatalf("expected only the whole-second run pruned, got %d", pruned)
	}
}

func TestRunItemsRoundTrip(t *testing.T) {
	store := mustOpenStore(t)
	ctx := context.Background()

	started := time.Date(2025, time.March, 1, 6, 0, 0, 0, time.UTC)
	if err := store.RecordRun(ctx, sampleSummary("run-1", started)); err != nil {
		t.Fatalf("RecordRun failed: %v", err)
	}

	items, err := store.RunItems(ctx, "run-1")
	if err != nil {
		t.Fatalf("RunItems failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].Title != "Monday" || items[0].Status != sweep.StatusDeleted {
		t.Fatalf("unexpected first item: %+v", items[0])
	}
	if items[1].Error != "server error" {
		t.Fatalf("expected recorded error, got %+v", items[1])
	}

	none, err := store.RunItems(ctx, "missing")
	if err != nil {
		t.Fatalf("RunItems failed: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("expected no items for unknown run, got %d", len(none))
	}
}

func TestPruneOlderThan(t *testing.T) {
	store := mustOpenStore(t)
	ctx := context.Background()

	base := time.Date(2025, time.March, 1, 6, 0, 0, 0, time.UTC)
	if err := store.RecordRun(ctx, sampleSummary("run-old", base)); err != nil {
		t.Fatalf("RecordRun failed: %v", err)
	}
	if err := store.RecordRun(ctx, sampleSummary("run-new", base.Add(30*24*time.Hour))); err != nil {
		t.Fatalf("RecordRun failed: %v", err)
	}

	pruned, err := store.PruneOlderThan(ctx, base.Add(24*time.Hour))
	if err != nil {
		t.Fatalf("PruneOlderThan failed: %v", err)
	}
	if pruned != 1 {
		t.Fatalf("expected 1 pruned run, got %d", pruned)
	}

	runs, err := store.RecentRuns(ctx, 10)
	if err != nil {
		t.Fatalf("RecentRuns failed: %v", err)
	}
	if len(runs) != 1 || runs[0].ID != "run-new" {
		t.Fatalf("expected only run-new to remain, got %+v", runs)
	}

	items, err := store.RunItems(ctx, "run-old")
	if err != nil {
		t.Fatalf("RunItems failed: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected cascade delete of items, got %d", len(items))
	}
}

func TestSchemaVersionMismatch(t *testing.T) {
	dir := t.TempDir()
	store, err := history.Open(dir)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	// Reopening the same directory must accept the recorded version.
	store, err = history.Open(dir)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
}

package sweep

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"absweep/internal/notifications"
	"absweep/internal/services/audiobookshelf"
)

// Kind selects which media types a sweep processes.
type Kind string

const (
	KindPodcasts   Kind = "podcasts"
	KindAudiobooks Kind = "audiobooks"
	KindEverything Kind = "everything"
)

// IncludesPodcasts reports whether the sweep processes podcast episodes.
func (k Kind) IncludesPodcasts() bool { return k == KindPodcasts || k == KindEverything }

// IncludesAudiobooks reports whether the sweep processes audiobooks.
func (k Kind) IncludesAudiobooks() bool { return k == KindAudiobooks || k == KindEverything }

// Options configures a sweep run.
type Options struct {
	Kind       Kind
	MinAge     time.Duration
	KeepTag    string
	HardDelete bool
	DryRun     bool
}

// Item result statuses. Planned marks a dry-run deletion that was counted
// but not issued.
const (
	StatusDeleted       = "deleted"
	StatusPlanned       = "planned"
	StatusFailed        = "failed"
	StatusSkippedRecent = "skipped_recent"
)

// Media kinds recorded per item result.
const (
	ItemKindEpisode   = "episode"
	ItemKindAudiobook = "audiobook"
)

// ItemResult records the outcome for one deletion candidate.
type ItemResult struct {
	Kind          string
	LibraryItemID string
	EpisodeID     string
	Title         string
	Detail        string
	AddedAt       int64
	Status        string
	Error         string
}

// Summary describes one completed sweep run.
type Summary struct {
	RunID              string
	Started            time.Time
	Finished           time.Time
	Kind               Kind
	DryRun             bool
	AgeFiltered        bool
	FinishedEpisodes   int
	FinishedAudiobooks int
	Deleted            int
	Failed             int
	SkippedRecent      int
	Results            []ItemResult
}

// Runner executes the reconciliation pipeline against one server.
type Runner struct {
	client   audiobookshelf.Client
	notifier notifications.Service
	logger   *slog.Logger
	opts     Options
	now      func() time.Time
}

// NewRunner constructs a sweep runner. A nil notifier disables notifications.
func NewRunner(client audiobookshelf.Client, notifier notifications.Service, logger *slog.Logger, opts Options) *Runner {
	if notifier == nil {
		notifier = notifications.Noop()
	}
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Kind == "" {
		opts.Kind = KindEverything
	}
	return &Runner{
		client:   client,
		notifier: notifier,
		logger:   logger,
		opts:     opts,
		now:      time.Now,
	}
}

// Run performs one sweep: collect finished identifiers, build the eligible
// catalog, intersect, and delete. Deletion failures are isolated per item;
// only failures before any deletion starts abort the run.
func (r *Runner) Run(ctx context.Context) (*Summary, error) {
	summary := &Summary{
		RunID:       uuid.NewString(),
		Started:     r.now(),
		Kind:        r.opts.Kind,
		DryRun:      r.opts.DryRun,
		AgeFiltered: r.opts.MinAge > 0,
	}
	logger := r.logger.With("run_id", summary.RunID)

	logger.Info("fetching user progress")
	user, err := r.client.CurrentUser(ctx)
	if err != nil {
		_ = r.notifier.NotifyError(ctx, err, "progress fetch")
		return nil, fmt.Errorf("fetch user progress: %w", err)
	}

	finishedEpisodes, finishedAudiobooks := FinishedSets(user)
	summary.FinishedEpisodes = len(finishedEpisodes)
	summary.FinishedAudiobooks = len(finishedAudiobooks)

	if r.opts.Kind.IncludesPodcasts() {
		logger.Info("finished podcast episodes in progress data", "count", len(finishedEpisodes))
	}
	if r.opts.Kind.IncludesAudiobooks() {
		logger.Info("finished audiobooks in progress data", "count", len(finishedAudiobooks))
	}

	_ = r.notifier.NotifySweepStarted(ctx, string(r.opts.Kind), r.opts.DryRun)

	if r.opts.Kind.IncludesPodcasts() && len(finishedEpisodes) > 0 {
		if err := r.sweepEpisodes(ctx, logger, finishedEpisodes, summary); err != nil {
			_ = r.notifier.NotifyError(ctx, err, "podcast sweep")
			return nil, err
		}
	}
	if r.opts.Kind.IncludesAudiobooks() && len(finishedAudiobooks) > 0 {
		if err := r.sweepAudiobooks(ctx, logger, finishedAudiobooks, summary); err != nil {
			_ = r.notifier.NotifyError(ctx, err, "audiobook sweep")
			return nil, err
		}
	}

	summary.Finished = r.now()
	logger.Info("sweep complete",
		"deleted", summary.Deleted,
		"failed", summary.Failed,
		"skipped_recent", summary.SkippedRecent,
		"dry_run", summary.DryRun,
	)
	_ = r.notifier.NotifySweepCompleted(ctx, summary.Deleted, summary.Failed, summary.SkippedRecent,
		summary.Finished.Sub(summary.Started), summary.DryRun)
	return summary, nil
}

func (r *Runner) sweepEpisodes(ctx context.Context, logger *slog.Logger, finished map[string]struct{}, summary *Summary) error {
	logger.Info("building episode index from podcast libraries")
	index, err := BuildEpisodeIndex(ctx, r.client, r.opts.KeepTag, logger)
	if err != nil {
		return fmt.Errorf("build episode index: %w", err)
	}
	logger.Info("episode index built", "episodes", len(index))

	now := r.now()
	var candidates []ItemResult
	for episodeID := range finished {
		ref, ok := index[episodeID]
		if !ok {
			continue
		}
		result := ItemResult{
			Kind:          ItemKindEpisode,
			LibraryItemID: ref.LibraryItemID,
			EpisodeID:     episodeID,
			Title:         ref.EpisodeTitle,
			Detail:        ref.PodcastTitle,
			AddedAt:       ref.AddedAt,
		}
		if !OldEnough(ref.AddedAt, r.opts.MinAge, now) {
			logger.Debug("skipping episode, too recent", "podcast", ref.PodcastTitle, "episode", ref.EpisodeTitle)
			result.Status = StatusSkippedRecent
			summary.SkippedRecent++
			summary.Results = append(summary.Results, result)
			continue
		}
		candidates = append(candidates, result)
	}
	sortResults(candidates)

	if len(candidates) == 0 {
		logger.Info("no finished podcast episodes need deletion")
		return nil
	}
	logger.Info("finished episodes to delete", "count", len(candidates))

	for _, candidate := range candidates {
		r.deleteOne(ctx, logger, candidate, summary, func() error {
			return r.client.DeleteEpisode(ctx, candidate.LibraryItemID, candidate.EpisodeID, r.opts.HardDelete)
		})
	}
	return nil
}

func (r *Runner) sweepAudiobooks(ctx context.Context, logger *slog.Logger, finished map[string]struct{}, summary *Summary) error {
	logger.Info("building audiobook index from book libraries")
	index, err := BuildAudiobookIndex(ctx, r.client, finished, r.opts.KeepTag, logger)
	if err != nil {
		return fmt.Errorf("build audiobook index: %w", err)
	}
	logger.Info("finished audiobooks eligible for deletion", "count", len(index))

	now := r.now()
	var candidates []ItemResult
	for _, ref := range index {
		result := ItemResult{
			Kind:          ItemKindAudiobook,
			LibraryItemID: ref.LibraryItemID,
			Title:         ref.Title,
			Detail:        ref.Author,
			AddedAt:       ref.AddedAt,
		}
		if !OldEnough(ref.AddedAt, r.opts.MinAge, now) {
			logger.Debug("skipping audiobook, too recent", "audiobook", ref.Title)
			result.Status = StatusSkippedRecent
			summary.SkippedRecent++
			summary.Results = append(summary.Results, result)
			continue
		}
		candidates = append(candidates, result)
	}
	sortResults(candidates)

	if len(candidates) == 0 {
		logger.Info("no finished audiobooks need deletion")
		return nil
	}
	logger.Info("audiobooks to delete", "count", len(candidates))

	for _, candidate := range candidates {
		r.deleteOne(ctx, logger, candidate, summary, func() error {
			return r.client.DeleteLibraryItem(ctx, candidate.LibraryItemID, r.opts.HardDelete)
		})
	}
	return nil
}

// deleteOne applies a single deletion with per-item error isolation. Dry runs
// count the item as deleted without issuing the request, so the summary
// reflects what a real run would do.
func (r *Runner) deleteOne(ctx context.Context, logger *slog.Logger, item ItemResult, summary *Summary, del func() error) {
	if r.opts.DryRun {
		logger.Info("dry run, would delete", "title", item.Title, "detail", item.Detail)
		item.Status = StatusPlanned
		summary.Deleted++
		summary.Results = append(summary.Results, item)
		return
	}

	logger.Info("deleting", "title", item.Title, "detail", item.Detail)
	if err := del(); err != nil {
		logger.Error("delete failed", "title", item.Title, "error", err)
		item.Status = StatusFailed
		item.Error = err.Error()
		summary.Failed++
		summary.Results = append(summary.Results, item)
		return
	}
	item.Status = StatusDeleted
	summary.Deleted++
	summary.Results = append(summary.Results, item)
}

func sortResults(results []ItemResult) {
	sort.Slice(results, func(i, j int) bool {
		if results[i].Detail != results[j].Detail {
			return results[i].Detail < results[j].Detail
		}
		if results[i].Title != results[j].Title {
			return results[i].Title < results[j].Title
		}
		return results[i].EpisodeID < results[j].EpisodeID
	})
}

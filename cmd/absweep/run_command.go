package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"absweep/internal/config"
	"absweep/internal/history"
	"absweep/internal/logging"
	"absweep/internal/notifications"
	"absweep/internal/services/audiobookshelf"
	"absweep/internal/sweep"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var dryRun bool
	var mediaFlag string
	var ageFlag string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run one sweep and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if err := applyOverrides(cfg, dryRun, mediaFlag, ageFlag); err != nil {
				return err
			}

			logger, err := logging.NewFromConfig(cfg)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}

			lock, err := acquireLock(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = lock.Unlock() }()

			// Per-item delete failures are counted in the summary, not
			// treated as command failure.
			_, err = executeSweep(cmd.Context(), cfg, logger, cmd.OutOrStdout())
			return err
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report what would be deleted without deleting")
	cmd.Flags().StringVar(&mediaFlag, "media", "", "Media to sweep: podcasts, audiobooks, or everything")
	cmd.Flags().StringVar(&ageFlag, "age", "", "Only delete items added at least this long ago (e.g. 30d, 4w, 6m, 1y)")
	return cmd
}

// applyOverrides layers command-line flags over the loaded configuration.
func applyOverrides(cfg *config.Config, dryRun bool, media, age string) error {
	if dryRun {
		cfg.Cleanup.DryRun = true
	}
	if media = strings.ToLower(strings.TrimSpace(media)); media != "" {
		switch media {
		case config.MediaTypePodcasts, config.MediaTypeAudiobooks, config.MediaTypeEverything:
			cfg.Cleanup.MediaType = media
		default:
			return fmt.Errorf("invalid --media value %q (expected podcasts, audiobooks, or everything)", media)
		}
	}
	if age = strings.TrimSpace(age); age != "" {
		if _, err := sweep.ParseAge(age); err != nil {
			return fmt.Errorf("invalid --age value: %w", err)
		}
		cfg.Cleanup.MinAge = age
	}
	return nil
}

func acquireLock(cfg *config.Config) (*flock.Flock, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.LockPath()), 0o755); err != nil {
		return nil, fmt.Errorf("ensure lock directory: %w", err)
	}
	lock := flock.New(cfg.LockPath())
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire sweep lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("another absweep instance is already running (lock %s)", cfg.LockPath())
	}
	return lock, nil
}

// executeSweep builds the client stack from the configuration, runs one
// sweep, records it in the history store, and prints the outcome.
func executeSweep(ctx context.Context, cfg *config.Config, logger *slog.Logger, out io.Writer) (*sweep.Summary, error) {
	minAge, err := sweep.ParseAge(cfg.Cleanup.MinAge)
	if err != nil {
		return nil, fmt.Errorf("parse min_age: %w", err)
	}

	opts := []audiobookshelf.Option{
		audiobookshelf.WithPageSize(cfg.Cleanup.PageSize),
		audiobookshelf.WithTimeout(time.Duration(cfg.Server.RequestTimeout) * time.Second),
	}
	if !cfg.Server.VerifySSL {
		opts = append(opts, audiobookshelf.WithInsecureTLS())
	}
	client := audiobookshelf.NewHTTPClient(cfg.Server.URL, cfg.Server.Token, opts...)

	notifier := notifications.NewService(cfg)
	runner := sweep.NewRunner(client, notifier, logging.WithComponent(logger, "sweep"), sweep.Options{
		Kind:       sweep.Kind(cfg.Cleanup.MediaType),
		MinAge:     minAge,
		KeepTag:    cfg.Cleanup.KeepTag,
		HardDelete: cfg.Cleanup.HardDelete,
		DryRun:     cfg.Cleanup.DryRun,
	})

	summary, err := runner.Run(ctx)
	if err != nil {
		return nil, err
	}

	recordHistory(ctx, cfg, logger, summary)
	printSummary(out, summary)
	return summary, nil
}

func recordHistory(ctx context.Context, cfg *config.Config, logger *slog.Logger, summary *sweep.Summary) {
	if !cfg.History.Enabled {
		return
	}
	store, err := history.Open(cfg.History.Dir)
	if err != nil {
		logger.Warn("history store unavailable", "error", err)
		return
	}
	defer func() { _ = store.Close() }()

	if err := store.RecordRun(ctx, summary); err != nil {
		logger.Warn("record run history", "error", err)
	}
}

func printSummary(out io.Writer, summary *sweep.Summary) {
	colorize := colorEnabled(out)

	label := mediaKindLabel(string(summary.Kind))
	if summary.DryRun {
		fmt.Fprintf(out, "Dry run (%s): %d deletion(s) planned, %d skipped as too recent\n",
			label, summary.Deleted, summary.SkippedRecent)
	} else {
		fmt.Fprintf(out, "Sweep (%s): %d deleted, %d failed, %d skipped as too recent\n",
			label, summary.Deleted, summary.Failed, summary.SkippedRecent)
	}
	fmt.Fprintf(out, "Finished in progress data: %d episode(s), %d audiobook(s)\n",
		summary.FinishedEpisodes, summary.FinishedAudiobooks)

	if len(summary.Results) > 0 {
		fmt.Fprintln(out, resultsTable(summary.Results))
	}

	for _, result := range summary.Results {
		if result.Status == sweep.StatusFailed {
			fmt.Fprintln(out, checkLine(result.Title, false, result.Error, colorize))
		}
	}
}

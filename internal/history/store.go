package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"absweep/internal/sweep"
)

// Store persists sweep run history backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the history database under dir.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure history dir: %w", err)
	}

	dbPath := filepath.Join(dir, "history.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// RecordRun stores a completed sweep summary and its per-item results.
func (s *Store) RecordRun(ctx context.Context, summary *sweep.Summary) error {
	if summary == nil {
		return fmt.Errorf("nil summary")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin run tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (
            id, started_at, finished_at, media_kind, dry_run, age_filtered,
            finished_episodes, finished_audiobooks, deleted, failed, skipped_recent
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		summary.RunID,
		summary.Started.UnixMilli(),
		summary.Finished.UnixMilli(),
		string(summary.Kind),
		boolToInt(summary.DryRun),
		boolToInt(summary.AgeFiltered),
		summary.FinishedEpisodes,
		summary.FinishedAudiobooks,
		summary.Deleted,
		summary.Failed,
		summary.SkippedRecent,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for _, item := range summary.Results {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO run_items (
                run_id, media_kind, library_item_id, episode_id,
                title, detail, added_at, status, error
            ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			summary.RunID,
			item.Kind,
			item.LibraryItemID,
			nullableString(item.EpisodeID),
			item.Title,
			item.Detail,
			item.AddedAt,
			item.Status,
			nullableString(item.Error),
		)
		if err != nil {
			return fmt.Errorf("insert run item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit run: %w", err)
	}
	return nil
}

// RecentRuns returns up to limit runs, newest first.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, finished_at, media_kind, dry_run, age_filtered,
                finished_episodes, finished_audiobooks, deleted, failed, skipped_recent
         FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []Run
	for rows.Next() {
		var run Run
		var started, finished int64
		var dryRun, ageFiltered int
		if err := rows.Scan(&run.ID, &started, &finished, &run.MediaKind, &dryRun, &ageFiltered,
			&run.FinishedEpisodes, &run.FinishedAudiobooks, &run.Deleted, &run.Failed, &run.SkippedRecent); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		run.Started = time.UnixMilli(started).UTC()
		run.Finished = time.UnixMilli(finished).UTC()
		run.DryRun = dryRun != 0
		run.AgeFiltered = ageFiltered != 0
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// RunItems returns the per-item results recorded for one run.
func (s *Store) RunItems(ctx context.Context, runID string) ([]RunItem, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT media_kind, library_item_id, episode_id, title, detail, added_at, status, error
         FROM run_items WHERE run_id = ? ORDER BY detail, title`, runID)
	if err != nil {
		return nil, fmt.Errorf("query run items: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var items []RunItem
	for rows.Next() {
		var item RunItem
		var episodeID, itemErr sql.NullString
		if err := rows.Scan(&item.MediaKind, &item.LibraryItemID, &episodeID,
			&item.Title, &item.Detail, &item.AddedAt, &item.Status, &itemErr); err != nil {
			return nil, fmt.Errorf("scan run item: %w", err)
		}
		item.EpisodeID = episodeID.String
		item.Error = itemErr.String
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate run items: %w", err)
	}
	return items, nil
}

// PruneOlderThan removes runs started before the cutoff along with their items.
func (s *Store) PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM runs WHERE started_at < ?", cutoff.UnixMilli())
	if err != nil {
		return 0, fmt.Errorf("prune runs: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return affected, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

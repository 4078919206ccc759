package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"absweep/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var showItems string
	var pruneOlder string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded sweep runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if !cfg.History.Enabled {
				return fmt.Errorf("run history is disabled in configuration")
			}

			store, err := history.Open(cfg.History.Dir)
			if err != nil {
				return fmt.Errorf("open history store: %w", err)
			}
			defer func() { _ = store.Close() }()

			out := cmd.OutOrStdout()

			if pruneOlder != "" {
				days, err := strconv.Atoi(pruneOlder)
				if err != nil || days <= 0 {
					return fmt.Errorf("invalid --prune value %q (expected a positive day count)", pruneOlder)
				}
				cutoff := time.Now().Add(-time.Duration(days) * 24 * time.Hour)
				pruned, err := store.PruneOlderThan(cmd.Context(), cutoff)
				if err != nil {
					return fmt.Errorf("prune history: %w", err)
				}
				fmt.Fprintf(out, "Pruned %d run(s) older than %d day(s)\n", pruned, days)
				return nil
			}

			if showItems != "" {
				return printRunItems(cmd, store, showItems)
			}

			runs, err := store.RecentRuns(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("list runs: %w", err)
			}
			if len(runs) == 0 {
				fmt.Fprintln(out, "No sweep runs recorded yet")
				return nil
			}

			fmt.Fprintln(out, runsTable(runs))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of runs to show")
	cmd.Flags().StringVar(&showItems, "items", "", "Show the per-item results for the given run ID")
	cmd.Flags().StringVar(&pruneOlder, "prune", "", "Delete runs older than this many days")
	return cmd
}

func printRunItems(cmd *cobra.Command, store *history.Store, runID string) error {
	items, err := store.RunItems(cmd.Context(), runID)
	if err != nil {
		return fmt.Errorf("list run items: %w", err)
	}
	out := cmd.OutOrStdout()
	if len(items) == 0 {
		fmt.Fprintf(out, "No items recorded for run %s\n", runID)
		return nil
	}

	fmt.Fprintln(out, runItemsTable(items))
	return nil
}

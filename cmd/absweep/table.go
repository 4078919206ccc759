package main

import (
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"absweep/internal/history"
	"absweep/internal/sweep"
)

func newTableWriter(headers ...any) table.Writer {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row(headers))
	return tw
}

// resultsTable lists the per-item outcome of a sweep, in catalog order.
func resultsTable(results []sweep.ItemResult) string {
	tw := newTableWriter("Kind", "Title", "Source", "Status")
	for _, result := range results {
		tw.AppendRow(table.Row{
			mediaKindLabel(result.Kind),
			result.Title,
			result.Detail,
			result.Status,
		})
	}
	return tw.Render()
}

// runsTable lists recorded sweep runs, newest first.
func runsTable(runs []history.Run) string {
	tw := newTableWriter("Run", "Started", "Media", "Dry Run", "Deleted", "Failed", "Skipped", "Duration")
	for _, run := range runs {
		tw.AppendRow(table.Row{
			run.ID,
			run.Started.Local().Format("2006-01-02 15:04"),
			mediaKindLabel(run.MediaKind),
			yesNo(run.DryRun),
			run.Deleted,
			run.Failed,
			run.SkippedRecent,
			run.Duration().Round(time.Second),
		})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 5, Align: text.AlignRight},
		{Number: 6, Align: text.AlignRight},
		{Number: 7, Align: text.AlignRight},
		{Number: 8, Align: text.AlignRight},
	})
	return tw.Render()
}

// runItemsTable lists the recorded per-item results of one run; failures
// carry their error inline in the status column.
func runItemsTable(items []history.RunItem) string {
	tw := newTableWriter("Kind", "Title", "Source", "Status")
	for _, item := range items {
		status := item.Status
		if item.Error != "" {
			status = fmt.Sprintf("%s (%s)", item.Status, item.Error)
		}
		tw.AppendRow(table.Row{
			mediaKindLabel(item.MediaKind),
			item.Title,
			item.Detail,
			status,
		})
	}
	return tw.Render()
}

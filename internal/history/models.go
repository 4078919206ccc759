package history

import "time"

// Run is one recorded sweep run.
type Run struct {
	ID                 string
	Started            time.Time
	Finished           time.Time
	MediaKind          string
	DryRun             bool
	AgeFiltered        bool
	FinishedEpisodes   int
	FinishedAudiobooks int
	Deleted            int
	Failed             int
	SkippedRecent      int
}

// Duration returns the wall-clock time the run took.
func (r Run) Duration() time.Duration {
	return r.Finished.Sub(r.Started)
}

// RunItem is one per-item result recorded for a run.
type RunItem struct {
	MediaKind     string
	LibraryItemID string
	EpisodeID     string
	Title         string
	Detail        string
	AddedAt       int64
	Status        string
	Error         string
}

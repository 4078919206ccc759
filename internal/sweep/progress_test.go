package sweep_test

import (
	"testing"

	"absweep/internal/services/audiobookshelf"
	"absweep/internal/sweep"
)

func TestFinishedSetsClassifiesProgress(t *testing.T) {
	t.Parallel()

	user := &audiobookshelf.User{
		MediaProgress: []audiobookshelf.MediaProgress{
			{LibraryItemID: "li_pod", EpisodeID: "ep_1", IsFinished: true},
			{LibraryItemID: "li_pod", EpisodeID: "ep_2", IsFinished: false},
			{LibraryItemID: "li_book", IsFinished: true},
			{LibraryItemID: "li_unfinished", IsFinished: false},
			{IsFinished: true},
		},
	}

	episodes, audiobooks := sweep.FinishedSets(user)

	if len(episodes) != 1 {
		t.Fatalf("expected 1 finished episode, got %d", len(episodes))
	}
	if _, ok := episodes["ep_1"]; !ok {
		t.Fatal("expected ep_1 in finished episodes")
	}
	if len(audiobooks) != 1 {
		t.Fatalf("expected 1 finished audiobook, got %d", len(audiobooks))
	}
	if _, ok := audiobooks["li_book"]; !ok {
		t.Fatal("expected li_book in finished audiobooks")
	}
}

func TestFinishedSetsNilUser(t *testing.T) {
	t.Parallel()

	episodes, audiobooks := sweep.FinishedSets(nil)
	if len(episodes) != 0 || len(audiobooks) != 0 {
		t.Fatal("expected empty sets for nil user")
	}
}

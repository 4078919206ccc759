package sweep

import (
	"absweep/internal/services/audiobookshelf"
)

// FinishedSets extracts the identifiers of finished media from a user's
// progress records. Progress entries carrying an episode ID are podcast
// episodes; entries with only a library item ID are audiobooks.
func FinishedSets(user *audiobookshelf.User) (episodes, audiobooks map[string]struct{}) {
	episodes = make(map[string]struct{})
	audiobooks = make(map[string]struct{})
	if user == nil {
		return episodes, audiobooks
	}

	for _, progress := range user.MediaProgress {
		if !progress.IsFinished {
			continue
		}
		switch {
		case progress.EpisodeID != "":
			episodes[progress.EpisodeID] = struct{}{}
		case progress.LibraryItemID != "":
			audiobooks[progress.LibraryItemID] = struct{}{}
		}
	}
	return episodes, audiobooks
}

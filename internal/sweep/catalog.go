package sweep

import (
	"context"
	"fmt"
	"log/slog"

	"absweep/internal/services/audiobookshelf"
)

// EpisodeRef locates a podcast episode for deletion and reporting.
type EpisodeRef struct {
	LibraryItemID string
	PodcastTitle  string
	EpisodeTitle  string
	AddedAt       int64
}

// AudiobookRef locates an audiobook for deletion and reporting.
type AudiobookRef struct {
	LibraryItemID string
	Title         string
	Author        string
	AddedAt       int64
}

// BuildEpisodeIndex scans every podcast library and maps episode ID to its
// location. Items carrying the keep tag are skipped entirely. Failures to
// fetch a single item's details are logged and do not abort the scan.
func BuildEpisodeIndex(ctx context.Context, client audiobookshelf.Client, keepTag string, logger *slog.Logger) (map[string]EpisodeRef, error) {
	index := make(map[string]EpisodeRef)

	libraries, err := client.Libraries(ctx)
	if err != nil {
		return nil, fmt.Errorf("list libraries: %w", err)
	}

	for _, library := range libraries {
		if library.MediaType != audiobookshelf.MediaTypePodcast {
			continue
		}
		logger.Info("scanning podcast library", "library", library.Name)

		items, err := client.LibraryItems(ctx, library.ID)
		if err != nil {
			return nil, fmt.Errorf("list items in library %q: %w", library.Name, err)
		}
		logger.Debug("listed podcasts", "library", library.Name, "count", len(items))

		for _, item := range items {
			full, err := client.LibraryItem(ctx, item.ID)
			if err != nil {
				logger.Warn("failed to fetch item details", "item", item.ID, "error", err)
				continue
			}

			title := itemTitle(full, "Unknown Podcast")
			if hasTag(full.Media.Tags, keepTag) {
				logger.Info("skipping keep-tagged podcast", "podcast", title, "tag", keepTag)
				continue
			}

			logger.Debug("indexed podcast", "podcast", title, "episodes", len(full.Media.Episodes))
			for _, episode := range full.Media.Episodes {
				if episode.ID == "" {
					continue
				}
				index[episode.ID] = EpisodeRef{
					LibraryItemID: full.ID,
					PodcastTitle:  title,
					EpisodeTitle:  episodeTitle(episode),
					AddedAt:       episode.AddedAt,
				}
			}
		}
	}
	return index, nil
}

// BuildAudiobookIndex scans every book library and maps library item ID to
// audiobook details, but only for items already in the finished set; other
// items are not fetched. Items carrying the keep tag are skipped.
func BuildAudiobookIndex(ctx context.Context, client audiobookshelf.Client, finished map[string]struct{}, keepTag string, logger *slog.Logger) (map[string]AudiobookRef, error) {
	index := make(map[string]AudiobookRef)

	libraries, err := client.Libraries(ctx)
	if err != nil {
		return nil, fmt.Errorf("list libraries: %w", err)
	}

	for _, library := range libraries {
		if library.MediaType != audiobookshelf.MediaTypeBook {
			continue
		}
		logger.Info("scanning audiobook library", "library", library.Name)

		items, err := client.LibraryItems(ctx, library.ID)
		if err != nil {
			return nil, fmt.Errorf("list items in library %q: %w", library.Name, err)
		}
		logger.Debug("listed audiobooks", "library", library.Name, "count", len(items))

		for _, item := range items {
			if _, ok := finished[item.ID]; !ok {
				continue
			}

			full, err := client.LibraryItem(ctx, item.ID)
			if err != nil {
				logger.Warn("failed to fetch item details", "item", item.ID, "error", err)
				continue
			}

			title := itemTitle(full, "Unknown Audiobook")
			if hasTag(full.Media.Tags, keepTag) {
				logger.Info("skipping keep-tagged audiobook", "audiobook", title, "tag", keepTag)
				continue
			}

			author := full.Media.Metadata.AuthorName
			if author == "" {
				author = "Unknown Author"
			}

			logger.Debug("found finished audiobook", "audiobook", title)
			index[full.ID] = AudiobookRef{
				LibraryItemID: full.ID,
				Title:         title,
				Author:        author,
				AddedAt:       full.AddedAt,
			}
		}
	}
	return index, nil
}

func hasTag(tags []string, tag string) bool {
	if tag == "" {
		return false
	}
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}

func itemTitle(item *audiobookshelf.LibraryItem, fallback string) string {
	if item.Media.Metadata.Title != "" {
		return item.Media.Metadata.Title
	}
	return fallback
}

func episodeTitle(episode audiobookshelf.Episode) string {
	if episode.Title != "" {
		return episode.Title
	}
	return "Unknown Episode"
}

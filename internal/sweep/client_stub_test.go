package sweep_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"absweep/internal/services/audiobookshelf"
)

// stubClient is an in-memory audiobookshelf.Client for pipeline tests.
type stubClient struct {
	user    *audiobookshelf.User
	userErr error

	libraries []audiobookshelf.Library
	items     map[string][]audiobookshelf.LibraryItem
	details   map[string]*audiobookshelf.LibraryItem
	detailErr map[string]error

	fetchedDetails  []string
	deletedEpisodes []string
	deletedItems    []string
	deleteErr       map[string]error
}

func (s *stubClient) CurrentUser(ctx context.Context) (*audiobookshelf.User, error) {
	if s.userErr != nil {
		return nil, s.userErr
	}
	return s.user, nil
}

func (s *stubClient) Libraries(ctx context.Context) ([]audiobookshelf.Library, error) {
	return s.libraries, nil
}

func (s *stubClient) LibraryItems(ctx context.Context, libraryID string) ([]audiobookshelf.LibraryItem, error) {
	return s.items[libraryID], nil
}

func (s *stubClient) LibraryItem(ctx context.Context, itemID string) (*audiobookshelf.LibraryItem, error) {
	s.fetchedDetails = append(s.fetchedDetails, itemID)
	if err, ok := s.detailErr[itemID]; ok {
		return nil, err
	}
	item, ok := s.details[itemID]
	if !ok {
		return nil, fmt.Errorf("unknown item %s", itemID)
	}
	return item, nil
}

func (s *stubClient) DeleteEpisode(ctx context.Context, libraryItemID, episodeID string, hard bool) error {
	if err, ok := s.deleteErr[episodeID]; ok {
		return err
	}
	s.deletedEpisodes = append(s.deletedEpisodes, episodeID)
	return nil
}

func (s *stubClient) DeleteLibraryItem(ctx context.Context, libraryItemID string, hard bool) error {
	if err, ok := s.deleteErr[libraryItemID]; ok {
		return err
	}
	s.deletedItems = append(s.deletedItems, libraryItemID)
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func podcastItem(id, title string, tags []string, episodes ...audiobookshelf.Episode) *audiobookshelf.LibraryItem {
	return &audiobookshelf.LibraryItem{
		ID: id,
		Media: audiobookshelf.Media{
			Metadata: audiobookshelf.Metadata{Title: title},
			Tags:     tags,
			Episodes: episodes,
		},
	}
}

func bookItem(id, title, author string, addedAt int64, tags []string) *audiobookshelf.LibraryItem {
	return &audiobookshelf.LibraryItem{
		ID:      id,
		AddedAt: addedAt,
		Media: audiobookshelf.Media{
			Metadata: audiobookshelf.Metadata{Title: title, AuthorName: author},
			Tags:     tags,
		},
	}
}

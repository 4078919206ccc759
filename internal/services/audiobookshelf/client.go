package audiobookshelf

import (
	"context"
	"errors"
)

// ErrUnauthorized indicates the server rejected the API token.
var ErrUnauthorized = errors.New("audiobookshelf: unauthorized (check api token)")

// Client defines the Audiobookshelf operations used by the sweep.
type Client interface {
	// CurrentUser returns the token's user including media progress.
	CurrentUser(ctx context.Context) (*User, error)
	// Libraries returns all libraries on the server.
	Libraries(ctx context.Context) ([]Library, error)
	// LibraryItems returns every item in a library, following pagination.
	LibraryItems(ctx context.Context, libraryID string) ([]LibraryItem, error)
	// LibraryItem returns a single item with expanded media details.
	LibraryItem(ctx context.Context, itemID string) (*LibraryItem, error)
	// DeleteEpisode deletes a podcast episode; hard also removes the file.
	DeleteEpisode(ctx context.Context, libraryItemID, episodeID string, hard bool) error
	// DeleteLibraryItem deletes a library item; hard also removes the files.
	DeleteLibraryItem(ctx context.Context, libraryItemID string, hard bool) error
}

package audiobookshelf

// Library media types as reported by the server.
const (
	MediaTypePodcast = "podcast"
	MediaTypeBook    = "book"
)

// User is the authenticated user returned by /api/me, reduced to the fields
// the sweep needs.
type User struct {
	ID            string          `json:"id"`
	Username      string          `json:"username"`
	MediaProgress []MediaProgress `json:"mediaProgress"`
}

// MediaProgress is one progress record. Podcast episode progress carries an
// EpisodeID; audiobook progress carries only the LibraryItemID.
type MediaProgress struct {
	ID            string `json:"id"`
	LibraryItemID string `json:"libraryItemId"`
	EpisodeID     string `json:"episodeId"`
	IsFinished    bool   `json:"isFinished"`
}

// Library is a single server library.
type Library struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	MediaType string `json:"mediaType"`
}

// LibraryItem is a catalog entry. List endpoints return a shallow form; the
// expanded item endpoint fills Media with metadata, tags, and episodes.
type LibraryItem struct {
	ID      string `json:"id"`
	AddedAt int64  `json:"addedAt"`
	Media   Media  `json:"media"`
}

// Media holds the item payload of a library item.
type Media struct {
	Metadata Metadata  `json:"metadata"`
	Tags     []string  `json:"tags"`
	Episodes []Episode `json:"episodes"`
}

// Metadata is the subset of item metadata used for reporting.
type Metadata struct {
	Title      string `json:"title"`
	AuthorName string `json:"authorName"`
}

// Episode is a podcast episode within an expanded library item.
type Episode struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	AddedAt int64  `json:"addedAt"`
}

type librariesResponse struct {
	Libraries []Library `json:"libraries"`
}

type itemsPage struct {
	Results []LibraryItem `json:"results"`
	Total   int           `json:"total"`
	Page    int           `json:"page"`
	Limit   int           `json:"limit"`
}

// Package audiobookshelf provides a typed client for the subset of the
// Audiobookshelf REST API that the sweep uses: user progress, library
// listings, expanded items, and hard deletes.
package audiobookshelf

// Package sweep implements the reconciliation pipeline: it intersects the
// user's finished-progress identifiers with the catalog of eligible library
// items and deletes the overlap, honoring keep tags, the media-type selector,
// and an optional minimum-age filter.
package sweep

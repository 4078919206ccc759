// Package preflight validates server connectivity and local directories
// before a sweep runs.
package preflight

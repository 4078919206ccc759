// Package history persists sweep run summaries in a local SQLite database
// so past runs can be inspected from the CLI.
package history

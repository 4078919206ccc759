package preflight

import (
	"context"

	"absweep/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes all applicable preflight checks for the given config.
// Checks are only run when the corresponding feature is enabled.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result

	results = append(results, CheckServer(ctx, cfg.Server.URL, cfg.Server.Token, !cfg.Server.VerifySSL))

	if cfg.History.Enabled {
		results = append(results, CheckDirectoryAccess("History directory", cfg.History.Dir))
		results = append(results, CheckHistoryStore(cfg.History.Dir))
	}

	if cfg.Logging.LogDir != "" {
		results = append(results, CheckDirectoryAccess("Log directory", cfg.Logging.LogDir))
	}

	return results
}

// Passed reports whether every result in the set succeeded.
func Passed(results []Result) bool {
	for _, result := range results {
		if !result.Passed {
			return false
		}
	}
	return true
}

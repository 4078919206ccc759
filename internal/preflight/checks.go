package preflight

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"absweep/internal/history"
	"absweep/internal/services/audiobookshelf"
)

// CheckServer verifies Audiobookshelf connectivity and token validity by
// fetching the authenticated user.
func CheckServer(ctx context.Context, baseURL, token string, insecure bool) Result {
	const name = "Audiobookshelf"

	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if base == "" {
		return Result{Name: name, Detail: "missing url"}
	}
	if strings.TrimSpace(token) == "" {
		return Result{Name: name, Detail: "missing api token"}
	}

	checkCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := []audiobookshelf.Option{audiobookshelf.WithTimeout(5 * time.Second)}
	if insecure {
		opts = append(opts, audiobookshelf.WithInsecureTLS())
	}
	client := audiobookshelf.NewHTTPClient(base, strings.TrimSpace(token), opts...)

	user, err := client.CurrentUser(checkCtx)
	if err != nil {
		if errors.Is(err, audiobookshelf.ErrUnauthorized) {
			return Result{Name: name, Detail: "auth failed (invalid api token)"}
		}
		return Result{Name: name, Detail: fmt.Sprintf("auth check failed (%v)", err)}
	}
	if user.Username != "" {
		return Result{Name: name, Passed: true, Detail: fmt.Sprintf("Reachable (user %s)", user.Username)}
	}
	return Result{Name: name, Passed: true, Detail: "Reachable"}
}

// CheckDirectoryAccess verifies that the directory exists and is writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}

	probe, err := os.CreateTemp(path, ".absweep-preflight-*")
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	probePath := probe.Name()
	_ = probe.Close()
	_ = os.Remove(probePath)
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckHistoryStore verifies the run-history database can be opened.
func CheckHistoryStore(dir string) Result {
	const name = "History database"

	store, err := history.Open(dir)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("open failed: %v", err)}
	}
	path := store.Path()
	if err := store.Close(); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("close failed: %v", err)}
	}
	return Result{Name: name, Passed: true, Detail: filepath.ToSlash(path)}
}

package preflight

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckServer_OK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer good-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"usr_1","username":"admin","mediaProgress":[]}`))
	}))
	defer srv.Close()

	result := CheckServer(context.Background(), srv.URL, "good-token", false)
	if !result.Passed {
		t.Fatalf("expected pass, got: %s", result.Detail)
	}
}

func TestCheckServer_BadToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	result := CheckServer(context.Background(), srv.URL, "bad-token", false)
	if result.Passed {
		t.Fatal("expected failure for bad token")
	}
}

func TestCheckServer_MissingURL(t *testing.T) {
	result := CheckServer(context.Background(), "", "token", false)
	if result.Passed {
		t.Fatal("expected failure for missing URL")
	}
}

func TestCheckServer_MissingToken(t *testing.T) {
	result := CheckServer(context.Background(), "http://localhost", "", false)
	if result.Passed {
		t.Fatal("expected failure for missing token")
	}
}

func TestCheckHistoryStore(t *testing.T) {
	result := CheckHistoryStore(t.TempDir())
	if !result.Passed {
		t.Fatalf("expected pass, got: %s", result.Detail)
	}
}

func TestPassed(t *testing.T) {
	all := []Result{{Passed: true}, {Passed: true}}
	if !Passed(all) {
		t.Fatal("expected all-passed set to pass")
	}
	mixed := []Result{{Passed: true}, {Passed: false}}
	if Passed(mixed) {
		t.Fatal("expected mixed set to fail")
	}
}

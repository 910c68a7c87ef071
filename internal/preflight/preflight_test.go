package preflight

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"leadmirror/internal/testsupport"
)

func TestCheckDirectoryAccess(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("Staging directory", dir)
	if !result.Passed {
		t.Fatalf("expected pass: %+v", result)
	}

	missing := CheckDirectoryAccess("Staging directory", filepath.Join(dir, "missing"))
	if missing.Passed {
		t.Fatalf("expected failure: %+v", missing)
	}
	if !strings.Contains(missing.Detail, "does not exist") {
		t.Fatalf("detail = %q", missing.Detail)
	}
}

func TestCheckDirectoryAccessOnFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "plain")
	testsupport.WriteFile(t, file, 1)

	result := CheckDirectoryAccess("Staging directory", file)
	if result.Passed {
		t.Fatalf("expected failure: %+v", result)
	}
	if !strings.Contains(result.Detail, "not a directory") {
		t.Fatalf("detail = %q", result.Detail)
	}
}

func TestCheckDiskSpace(t *testing.T) {
	// A test temp dir is on a real filesystem; assume it has the headroom.
	result := CheckDiskSpace("Staging disk space", t.TempDir())
	if !result.Passed {
		t.Skipf("test filesystem below headroom threshold: %+v", result)
	}
}

func TestCheckTranscriberReachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/models" {
			http.NotFound(w, r)
			return
		}
		if r.Header.Get("Authorization") != "Bearer test" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	cfg := testsupport.NewConfig(t, testsupport.WithTranscriberURL(server.URL))
	result := CheckTranscriber(context.Background(), cfg)
	if !result.Passed {
		t.Fatalf("expected pass: %+v", result)
	}
}

func TestCheckTranscriberAuthFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	cfg := testsupport.NewConfig(t, testsupport.WithTranscriberURL(server.URL))
	result := CheckTranscriber(context.Background(), cfg)
	if result.Passed {
		t.Fatalf("expected failure: %+v", result)
	}
	if !strings.Contains(result.Detail, "auth failed") {
		t.Fatalf("detail = %q", result.Detail)
	}
}

func TestCheckTranscriberMissingKey(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Transcriber.APIKey = ""
	result := CheckTranscriber(context.Background(), cfg)
	if result.Passed || result.Detail != "API key missing" {
		t.Fatalf("result = %+v", result)
	}
}

func TestCheckSystemDepsSkipsFFmpegWhenDisabled(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithOptimizerDisabled())
	statuses := CheckSystemDeps(cfg)
	for _, status := range statuses {
		if status.Name == "FFmpeg" {
			t.Fatalf("ffmpeg checked with optimizer disabled: %+v", statuses)
		}
	}
}

func TestPassed(t *testing.T) {
	all := []Result{{Passed: true}, {Passed: true}}
	if !Passed(all) {
		t.Fatal("expected pass")
	}
	if Passed([]Result{{Passed: true}, {Passed: false}}) {
		t.Fatal("expected failure")
	}
	if !Passed(nil) {
		t.Fatal("empty result set should pass")
	}
}

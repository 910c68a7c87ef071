package staging

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"leadmirror/internal/logging"
)

func TestNewWorkspaceCreatesHashDir(t *testing.T) {
	base := t.TempDir()
	ws, err := NewWorkspace(base, "abc123")
	if err != nil {
		t.Fatalf("NewWorkspace: %v", err)
	}
	if ws.Dir != filepath.Join(base, "abc123") {
		t.Fatalf("dir = %q", ws.Dir)
	}
	info, err := os.Stat(ws.Dir)
	if err != nil || !info.IsDir() {
		t.Fatalf("workspace not created: %v", err)
	}

	// Idempotent for the same hash.
	again, err := NewWorkspace(base, "abc123")
	if err != nil {
		t.Fatalf("NewWorkspace rerun: %v", err)
	}
	if again.Dir != ws.Dir {
		t.Fatalf("rerun dir = %q", again.Dir)
	}
}

func TestWorkspaceRemove(t *testing.T) {
	base := t.TempDir()
	ws, err := NewWorkspace(base, "abc123")
	if err != nil {
		t.Fatalf("NewWorkspace: %v", err)
	}
	if err := os.WriteFile(filepath.Join(ws.Dir, "audio.wav"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := ws.Remove(); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := os.Stat(ws.Dir); !os.IsNotExist(err) {
		t.Fatalf("workspace still exists: %v", err)
	}
}

func TestWorkspaceRemoveNil(t *testing.T) {
	var ws *Workspace
	if err := ws.Remove(); err != nil {
		t.Fatalf("nil Remove: %v", err)
	}
}

func TestNewWorkspaceRejectsEmptyInputs(t *testing.T) {
	if _, err := NewWorkspace("", "hash"); err == nil {
		t.Fatal("expected error for empty staging dir")
	}
	if _, err := NewWorkspace(t.TempDir(), ""); err == nil {
		t.Fatal("expected error for empty hash")
	}
}

func TestCleanStaleRemovesOldDirectories(t *testing.T) {
	base := t.TempDir()
	oldDir := filepath.Join(base, "old-hash")
	newDir := filepath.Join(base, "new-hash")
	for _, dir := range []string{oldDir, newDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
	}
	past := time.Now().Add(-2 * time.Hour)
	if err := os.Chtimes(oldDir, past, past); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	result := CleanStale(base, time.Hour, logging.NewNop())
	if len(result.Errors) != 0 {
		t.Fatalf("errors: %v", result.Errors)
	}
	if len(result.Removed) != 1 || result.Removed[0] != oldDir {
		t.Fatalf("removed = %v", result.Removed)
	}
	if _, err := os.Stat(newDir); err != nil {
		t.Fatalf("fresh dir should survive: %v", err)
	}
}

func TestCleanStaleIgnoresMissingDir(t *testing.T) {
	result := CleanStale(filepath.Join(t.TempDir(), "missing"), time.Hour, nil)
	if len(result.Removed) != 0 || len(result.Errors) != 0 {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestCleanStaleSkipsFiles(t *testing.T) {
	base := t.TempDir()
	file := filepath.Join(base, "leadmirror.lock")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	past := time.Now().Add(-2 * time.Hour)
	_ = os.Chtimes(file, past, past)

	result := CleanStale(base, time.Hour, nil)
	if len(result.Removed) != 0 {
		t.Fatalf("files must not be swept: %v", result.Removed)
	}
	if _, err := os.Stat(file); err != nil {
		t.Fatalf("lock file removed: %v", err)
	}
}

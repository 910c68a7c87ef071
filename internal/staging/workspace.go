package staging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Workspace is the per-invocation scratch directory holding optimized audio.
// It is named by content hash so reruns of the same upload are idempotent and
// stale directories are easy to attribute.
type Workspace struct {
	Dir  string
	Hash string
}

// NewWorkspace creates (or reuses) the scratch directory for the given content
// hash under stagingDir.
func NewWorkspace(stagingDir, contentHash string) (*Workspace, error) {
	stagingDir = strings.TrimSpace(stagingDir)
	contentHash = strings.TrimSpace(contentHash)
	if stagingDir == "" {
		return nil, fmt.Errorf("workspace: staging dir required")
	}
	if contentHash == "" {
		return nil, fmt.Errorf("workspace: content hash required")
	}

	dir := filepath.Join(stagingDir, contentHash)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("workspace: create %s: %w", dir, err)
	}
	return &Workspace{Dir: dir, Hash: contentHash}, nil
}

// Remove deletes the workspace directory and everything in it.
func (w *Workspace) Remove() error {
	if w == nil || strings.TrimSpace(w.Dir) == "" {
		return nil
	}
	if err := os.RemoveAll(w.Dir); err != nil {
		return fmt.Errorf("workspace: remove %s: %w", w.Dir, err)
	}
	return nil
}

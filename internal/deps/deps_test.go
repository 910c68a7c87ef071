package deps

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCheckBinariesReportsMissing(t *testing.T) {
	statuses := CheckBinaries([]Requirement{
		{Name: "FFmpeg", Command: "definitely-not-a-real-binary-xyz", Optional: true},
	})
	if len(statuses) != 1 {
		t.Fatalf("expected 1 status, got %d", len(statuses))
	}
	if statuses[0].Available {
		t.Fatal("expected binary to be unavailable")
	}
	if statuses[0].Detail == "" {
		t.Fatal("expected detail for missing binary")
	}
}

func TestCheckBinariesFindsStub(t *testing.T) {
	dir := t.TempDir()
	stub := filepath.Join(dir, "ffmpeg")
	if err := os.WriteFile(stub, []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	t.Setenv("PATH", dir)

	statuses := CheckBinaries(Defaults("ffmpeg", "ffprobe"))
	if len(statuses) != 2 {
		t.Fatalf("expected 2 statuses, got %d", len(statuses))
	}
	if !statuses[0].Available {
		t.Fatalf("expected ffmpeg stub to be found: %+v", statuses[0])
	}
	if statuses[1].Available {
		t.Fatal("expected ffprobe to be missing")
	}
}

func TestCheckBinariesEmptyCommand(t *testing.T) {
	statuses := CheckBinaries([]Requirement{{Name: "FFmpeg"}})
	if statuses[0].Available {
		t.Fatal("expected unavailable for empty command")
	}
	if statuses[0].Detail != "command not configured" {
		t.Fatalf("detail = %q", statuses[0].Detail)
	}
}

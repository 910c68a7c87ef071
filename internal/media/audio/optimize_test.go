package audio

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"leadmirror/internal/testsupport"
)

func TestOptimizeUsesCommandRunner(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "input.mp3")
	testsupport.WriteFile(t, input, 2048)

	var gotArgs []string
	opt := NewOptimizer("ffmpeg", true)
	opt.WithCommandRunner(func(ctx context.Context, name string, args ...string) error {
		gotArgs = args
		// Simulate ffmpeg writing the output file.
		testsupport.WriteFile(t, args[len(args)-1], 1024)
		return nil
	})

	result, err := opt.Optimize(context.Background(), input, "cafe01", dir)
	if err != nil {
		t.Fatalf("Optimize: %v", err)
	}
	if result.Degraded {
		t.Fatalf("unexpected degradation: %s", result.Reason)
	}
	if len(result.Labels) != 1 || result.Labels[0] != LabelResampled {
		t.Fatalf("labels = %v", result.Labels)
	}
	if !strings.HasSuffix(result.Path, "cafe01_optimized.wav") {
		t.Fatalf("output path = %q", result.Path)
	}
	joined := strings.Join(gotArgs, " ")
	if !strings.Contains(joined, "-ar 16000") || !strings.Contains(joined, "-ac 1") {
		t.Fatalf("missing resample args: %v", gotArgs)
	}
}

func TestOptimizeFallsBackWhenToolFails(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "input.mp3")
	testsupport.WriteFile(t, input, 2048)

	opt := NewOptimizer("ffmpeg", true)
	opt.WithCommandRunner(func(ctx context.Context, name string, args ...string) error {
		return errors.New("codec not supported")
	})

	result, err := opt.Optimize(context.Background(), input, "cafe02", dir)
	if err != nil {
		t.Fatalf("Optimize: %v", err)
	}
	if !result.Degraded {
		t.Fatal("expected degraded result")
	}
	if result.Labels[0] != LabelOriginal {
		t.Fatalf("labels = %v", result.Labels)
	}
	info, err := os.Stat(result.Path)
	if err != nil {
		t.Fatalf("stat fallback copy: %v", err)
	}
	if info.Size() != 2048 {
		t.Fatalf("fallback copy size = %d", info.Size())
	}
}

func TestOptimizeFallsBackWhenBinaryMissing(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "input.wav")
	testsupport.WriteFile(t, input, 4096)

	opt := NewOptimizer(filepath.Join(dir, "no-such-ffmpeg"), true)

	result, err := opt.Optimize(context.Background(), input, "cafe03", dir)
	if err != nil {
		t.Fatalf("Optimize: %v", err)
	}
	if !result.Degraded {
		t.Fatal("expected degraded result for missing binary")
	}
	if !strings.Contains(result.Reason, "not found") {
		t.Fatalf("reason = %q", result.Reason)
	}
	if filepath.Ext(result.Path) != ".wav" {
		t.Fatalf("fallback keeps original extension, got %q", result.Path)
	}
}

func TestOptimizeDisabled(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "input.mp3")
	testsupport.WriteFile(t, input, 2048)

	opt := NewOptimizer("ffmpeg", false)
	result, err := opt.Optimize(context.Background(), input, "cafe04", dir)
	if err != nil {
		t.Fatalf("Optimize: %v", err)
	}
	if !result.Degraded || result.Reason != "optimization disabled" {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestOptimizeCanceledContext(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "input.mp3")
	testsupport.WriteFile(t, input, 2048)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	opt := NewOptimizer("ffmpeg", true)
	opt.WithCommandRunner(func(ctx context.Context, name string, args ...string) error {
		return ctx.Err()
	})

	if _, err := opt.Optimize(ctx, input, "cafe05", dir); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

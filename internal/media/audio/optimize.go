package audio

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"leadmirror/internal/fileutil"
)

// Optimization labels recorded in the pipeline result. The fallback label is
// the exact string the product surfaces to users when no optimization ran.
const (
	LabelResampled = "resampled to 16kHz mono PCM"
	LabelOriginal  = "fichier original utilisé"
)

// OptimizeResult reports the outcome of the best-effort optimization step.
// Degradation is carried as a value instead of an intercepted error so the
// "never fail" contract is visible in the signature.
type OptimizeResult struct {
	// Path is the audio file to transcribe: the resampled output, or a copy of
	// the input when optimization was unavailable.
	Path string
	// Labels describes what was applied.
	Labels []string
	// Degraded is true when the external tool was missing or failed.
	Degraded bool
	// Reason holds the degradation cause when Degraded is set.
	Reason string
}

// Optimizer resamples uploads to the empirically optimal transcription input
// (16 kHz mono PCM) via an optional external ffmpeg binary.
type Optimizer struct {
	binary        string
	enabled       bool
	commandRunner func(ctx context.Context, name string, args ...string) error
}

// NewOptimizer constructs an optimizer around the given ffmpeg binary. An
// empty binary name resolves to "ffmpeg" on PATH.
func NewOptimizer(binary string, enabled bool) *Optimizer {
	if strings.TrimSpace(binary) == "" {
		binary = "ffmpeg"
	}
	return &Optimizer{binary: binary, enabled: enabled}
}

// WithCommandRunner sets a custom command runner (for testing).
func (o *Optimizer) WithCommandRunner(runner func(ctx context.Context, name string, args ...string) error) {
	o.commandRunner = runner
}

// Optimize produces a transcription-ready audio file in workDir. The output
// path derives from the content hash so repeated runs are idempotent and
// collision-free. Optimization is strictly best-effort: tool absence or
// failure falls back to a verified copy of the input.
func (o *Optimizer) Optimize(ctx context.Context, input, contentHash, workDir string) (OptimizeResult, error) {
	if !o.enabled {
		return o.fallback(input, contentHash, workDir, "optimization disabled")
	}

	if o.commandRunner == nil {
		if _, err := exec.LookPath(o.binary); err != nil {
			return o.fallback(input, contentHash, workDir, fmt.Sprintf("binary %q not found", o.binary))
		}
	}

	output := filepath.Join(workDir, contentHash+"_optimized.wav")
	args := buildResampleArgs(input, output)
	if err := o.run(ctx, o.binary, args...); err != nil {
		if ctx.Err() != nil {
			return OptimizeResult{}, ctx.Err()
		}
		return o.fallback(input, contentHash, workDir, fmt.Sprintf("resample failed: %v", err))
	}

	return OptimizeResult{
		Path:   output,
		Labels: []string{LabelResampled},
	}, nil
}

func (o *Optimizer) fallback(input, contentHash, workDir, reason string) (OptimizeResult, error) {
	output := filepath.Join(workDir, contentHash+"_original"+filepath.Ext(input))
	if err := fileutil.CopyFileVerified(input, output); err != nil {
		return OptimizeResult{}, fmt.Errorf("fallback copy: %w", err)
	}
	return OptimizeResult{
		Path:     output,
		Labels:   []string{LabelOriginal},
		Degraded: true,
		Reason:   reason,
	}, nil
}

func (o *Optimizer) run(ctx context.Context, name string, args ...string) error {
	if o.commandRunner != nil {
		return o.commandRunner(ctx, name, args...)
	}
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(output)))
	}
	return nil
}

func buildResampleArgs(input, output string) []string {
	return []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-i", input,
		"-vn",
		"-sn",
		"-dn",
		"-ac", "1",
		"-ar", "16000",
		"-c:a", "pcm_s16le",
		output,
	}
}

package preflight

import (
	"context"

	"leadmirror/internal/config"
	"leadmirror/internal/deps"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes all applicable preflight checks for the given config.
// Optional tool checks report availability without failing the run.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result

	results = append(results, CheckDirectoryAccess("Staging directory", cfg.Paths.StagingDir))
	results = append(results, CheckDirectoryAccess("Log directory", cfg.Paths.LogDir))
	results = append(results, CheckDiskSpace("Staging disk space", cfg.Paths.StagingDir))
	results = append(results, CheckTranscriber(ctx, cfg))

	for _, status := range CheckSystemDeps(cfg) {
		result := Result{Name: status.Name, Passed: status.Available}
		if status.Available {
			result.Detail = "found"
		} else {
			result.Detail = status.Detail
			if status.Optional {
				// Missing optional tools degrade quality, never block serving.
				result.Passed = true
				result.Detail = status.Detail + " (optional)"
			}
		}
		results = append(results, result)
	}

	return results
}

// Passed reports whether every check in results passed.
func Passed(results []Result) bool {
	for _, result := range results {
		if !result.Passed {
			return false
		}
	}
	return true
}

// CheckSystemDeps evaluates the external binaries for the given config. Both
// the serve loop and the check command use this to avoid duplicating the
// requirements list.
func CheckSystemDeps(cfg *config.Config) []deps.Status {
	requirements := deps.Defaults(cfg.FFmpegBinary(), cfg.FFprobeBinary())
	if !cfg.Optimizer.Enabled {
		// Keep ffprobe only; resampling is off.
		filtered := requirements[:0]
		for _, req := range requirements {
			if req.Name != "FFmpeg" {
				filtered = append(filtered, req)
			}
		}
		requirements = filtered
	}
	return deps.CheckBinaries(requirements)
}

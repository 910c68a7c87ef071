// Package ffprobe wraps the optional ffprobe binary for audio metadata
// extraction (duration, sample rate, channels, bitrate, container).
//
// The binary is optional: callers must treat Inspect failures as a degraded
// path and fall back to size-based estimates, never as a fatal error.
package ffprobe

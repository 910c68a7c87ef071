package audio

import (
	"context"
	"os"
	"strings"

	"leadmirror/internal/media/ffprobe"
)

// estimateBitRateBps is the assumed average bitrate when the prober is
// unavailable and duration must be estimated from file size alone.
const estimateBitRateBps = 128_000

// Metadata describes the audio characteristics the quality scorer consumes.
type Metadata struct {
	DurationSeconds float64
	SampleRate      int
	Channels        int
	BitRate         int64
	Container       string
	SizeBytes       int64
	// Estimated is true when the values derive from file size instead of a
	// probe, and should be treated as conservative guesses.
	Estimated bool
}

// ProbeMetadata extracts audio metadata via the optional ffprobe binary,
// degrading to size-based estimation when the tool is missing or fails.
func ProbeMetadata(ctx context.Context, binary, path string) Metadata {
	info, statErr := os.Stat(path)
	var size int64
	if statErr == nil {
		size = info.Size()
	}

	result, err := ffprobe.Inspect(ctx, binary, path)
	if err != nil {
		return EstimateFromSize(path, size)
	}

	meta := Metadata{
		DurationSeconds: result.DurationSeconds(),
		SampleRate:      result.SampleRate(),
		Channels:        result.ChannelCount(),
		BitRate:         result.BitRate(),
		Container:       firstFormatName(result.Format.FormatName),
		SizeBytes:       size,
	}
	if meta.DurationSeconds == 0 && size > 0 {
		est := EstimateFromSize(path, size)
		meta.DurationSeconds = est.DurationSeconds
		meta.Estimated = true
	}
	return meta
}

// EstimateFromSize derives conservative metadata from file size alone,
// assuming a fixed average bitrate.
func EstimateFromSize(path string, size int64) Metadata {
	meta := Metadata{
		SizeBytes: size,
		Container: strings.TrimPrefix(strings.ToLower(extOf(path)), "."),
		Estimated: true,
	}
	if size > 0 {
		meta.DurationSeconds = float64(size*8) / float64(estimateBitRateBps)
		meta.BitRate = estimateBitRateBps
	}
	return meta
}

func firstFormatName(name string) string {
	// ffprobe reports comma-separated aliases ("mov,mp4,m4a,3gp,3g2,mj2").
	if idx := strings.IndexByte(name, ','); idx >= 0 {
		return name[:idx]
	}
	return name
}

func extOf(path string) string {
	if idx := strings.LastIndexByte(path, '.'); idx >= 0 {
		return path[idx:]
	}
	return ""
}

package transcribe

import (
	"fmt"

	"leadmirror/internal/media/audio"
)

const (
	qualityBaseline = 1.0

	shortDurationSeconds = 10.0
	shortDurationPenalty = 0.2

	longDurationSeconds = 3600.0
	longDurationPenalty = 0.1

	lowSampleRateHz      = 16000
	lowSampleRatePenalty = 0.3

	lowBitRateBps     = 64000
	lowBitRatePenalty = 0.2
)

// lossyContainers attract a re-recording recommendation but no score penalty;
// compression artifacts degrade recognition less than low capture quality.
var lossyContainers = map[string]struct{}{
	"mp3":  {},
	"mp4":  {},
	"m4a":  {},
	"webm": {},
	"ogg":  {},
	"opus": {},
	"aac":  {},
	"mpeg": {},
	"mpga": {},
}

// QualityReport is the scorer's advisory output. It never blocks processing.
type QualityReport struct {
	Score           float64
	Issues          []string
	Recommendations []string
}

// ScoreQuality rates the input audio for transcription suitability, starting
// from a baseline of 1.0 and deducting for characteristics known to hurt
// recognition. The score is clamped to [0, 1].
func ScoreQuality(meta audio.Metadata) QualityReport {
	report := QualityReport{Score: qualityBaseline}

	if meta.DurationSeconds > 0 && meta.DurationSeconds < shortDurationSeconds {
		report.Score -= shortDurationPenalty
		report.Issues = append(report.Issues,
			fmt.Sprintf("very short recording (%.1fs): little context for recognition", meta.DurationSeconds))
	}
	if meta.DurationSeconds > longDurationSeconds {
		report.Score -= longDurationPenalty
		report.Issues = append(report.Issues,
			fmt.Sprintf("long recording (%.0fs): accuracy may drift over time", meta.DurationSeconds))
		report.Recommendations = append(report.Recommendations,
			"split recordings over an hour into shorter sections")
	}
	if meta.SampleRate > 0 && meta.SampleRate < lowSampleRateHz {
		report.Score -= lowSampleRatePenalty
		report.Issues = append(report.Issues,
			fmt.Sprintf("low sample rate (%d Hz): speech detail is lost below %d Hz", meta.SampleRate, lowSampleRateHz))
		report.Recommendations = append(report.Recommendations,
			"record at 16 kHz or higher")
	}
	if meta.BitRate > 0 && meta.BitRate < lowBitRateBps {
		report.Score -= lowBitRatePenalty
		report.Issues = append(report.Issues,
			fmt.Sprintf("low bitrate (%d bps): heavy compression degrades recognition", meta.BitRate))
		report.Recommendations = append(report.Recommendations,
			"use at least 64 kbps for voice recordings")
	}
	if _, lossy := lossyContainers[meta.Container]; lossy {
		report.Recommendations = append(report.Recommendations,
			"prefer a lossless format (wav, flac) for best accuracy")
	}
	if meta.Estimated {
		report.Issues = append(report.Issues,
			"audio characteristics estimated from file size; score is approximate")
	}

	if report.Score < 0 {
		report.Score = 0
	}
	return report
}

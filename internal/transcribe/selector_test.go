package transcribe

import (
	"strings"
	"testing"

	"leadmirror/internal/services/whisper"
)

func makeSegments(n int) []whisper.Segment {
	segments := make([]whisper.Segment, n)
	for i := range segments {
		segments[i] = whisper.Segment{ID: i, Start: float64(i), End: float64(i + 1), Text: "seg"}
	}
	return segments
}

func TestScoreCandidate(t *testing.T) {
	tests := []struct {
		name string
		c    Candidate
		want float64
	}{
		{
			name: "below minimum text scores zero",
			c:    Candidate{Strategy: StrategyDomainPrimed, Text: "short", Segments: makeSegments(50)},
			want: 0,
		},
		{
			name: "nine characters still zero",
			c:    Candidate{Strategy: StrategyDomainPrimed, Text: "123456789"},
			want: 0,
		},
		{
			name: "ten characters scores",
			c:    Candidate{Strategy: StrategyAutoDetect, Text: "1234567890"},
			want: 0.01,
		},
		{
			name: "length component capped at five",
			c:    Candidate{Strategy: StrategyAutoDetect, Text: strings.Repeat("a", 10_000)},
			want: 5,
		},
		{
			name: "segment component capped at three",
			c:    Candidate{Strategy: StrategyAutoDetect, Text: strings.Repeat("a", 1000), Segments: makeSegments(100)},
			want: 4,
		},
		{
			name: "domain primed bonus",
			c:    Candidate{Strategy: StrategyDomainPrimed, Text: strings.Repeat("a", 1000)},
			want: 3,
		},
		{
			name: "forced language bonus",
			c:    Candidate{Strategy: StrategyForcedLanguage, Text: strings.Repeat("a", 1000)},
			want: 2,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ScoreCandidate(tt.c); got != tt.want {
				t.Fatalf("ScoreCandidate = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSelectBestPrefersHighestScore(t *testing.T) {
	candidates := []Candidate{
		{Strategy: StrategyForcedLanguage, Text: strings.Repeat("a", 500)},
		{Strategy: StrategyAutoDetect, Text: strings.Repeat("a", 9000)},
		{Strategy: StrategyDomainPrimed, Text: strings.Repeat("a", 100)},
	}
	best, ok := SelectBest(candidates)
	if !ok {
		t.Fatal("expected a winner")
	}
	// auto-detect: 5.0 length cap beats forced (0.5+1) and domain (0.1+2).
	if best.Strategy != StrategyAutoDetect {
		t.Fatalf("winner = %s", best.Strategy)
	}
}

func TestSelectBestTieBreaksOnIssueOrder(t *testing.T) {
	text := strings.Repeat("a", 1000)
	candidates := []Candidate{
		{Strategy: StrategyForcedLanguage, Text: text + strings.Repeat("b", 1000)},
		{Strategy: StrategyDomainPrimed, Text: text},
	}
	// forced: 2.0 + 1 = 3.0; domain: 1.0 + 2 = 3.0. Earlier candidate wins.
	best, ok := SelectBest(candidates)
	if !ok {
		t.Fatal("expected a winner")
	}
	if best.Strategy != StrategyForcedLanguage {
		t.Fatalf("tie should keep first candidate, got %s", best.Strategy)
	}
}

func TestSelectBestEmpty(t *testing.T) {
	if _, ok := SelectBest(nil); ok {
		t.Fatal("empty input must not produce a winner")
	}
}

func TestSelectBestAllZeroScores(t *testing.T) {
	candidates := []Candidate{
		{Strategy: StrategyForcedLanguage, Text: "hm"},
		{Strategy: StrategyAutoDetect, Text: "ok"},
	}
	best, ok := SelectBest(candidates)
	if !ok {
		t.Fatal("expected a winner even when all scores are zero")
	}
	if best.Strategy != StrategyForcedLanguage {
		t.Fatalf("zero-score tie should keep first candidate, got %s", best.Strategy)
	}
}

package transcribe

import "leadmirror/internal/services/whisper"

// Strategy identifies one of the three fixed transcription pass configurations.
type Strategy string

const (
	// StrategyForcedLanguage pins the configured language at the most
	// deterministic temperature.
	StrategyForcedLanguage Strategy = "forced-language"
	// StrategyAutoDetect lets the service detect the language, at a slightly
	// higher temperature, to catch code-switching missed by the pinned pass.
	StrategyAutoDetect Strategy = "auto-detect"
	// StrategyDomainPrimed pins the language and primes recognition with sales
	// vocabulary to bias jargon recognition.
	StrategyDomainPrimed Strategy = "domain-primed"
)

// passOrder is the fixed issue order; the selector tie-breaks by it.
var passOrder = []Strategy{StrategyForcedLanguage, StrategyAutoDetect, StrategyDomainPrimed}

// Candidate is the raw outcome of one transcription pass prior to selection.
type Candidate struct {
	Strategy Strategy
	Text     string
	Duration float64
	Segments []whisper.Segment
}

// Result is the consolidated pipeline output handed to the caller.
type Result struct {
	Text       string            `json:"text"`
	Duration   float64           `json:"duration"`
	Confidence float64           `json:"confidence"`
	Segments   []whisper.Segment `json:"segments,omitempty"`
	Metadata   ResultMetadata    `json:"metadata"`
}

// ResultMetadata carries processing details alongside the winning transcript.
type ResultMetadata struct {
	FileSizeBytes      int64    `json:"file_size_bytes"`
	Format             string   `json:"format"`
	ContentHash        string   `json:"content_hash"`
	ProcessingMillis   int64    `json:"processing_ms"`
	QualityScore       float64  `json:"quality_score"`
	Strategy           Strategy `json:"winning_strategy"`
	OptimizationLabels []string `json:"optimization_labels,omitempty"`
	QualityIssues      []string `json:"quality_issues,omitempty"`
	Recommendations    []string `json:"recommendations,omitempty"`
	// Degradations records absorbed partial failures (failed passes, missing
	// tools) so a best-effort result is never presented as fully confident.
	Degradations []string `json:"degradations,omitempty"`
	PassesSucceeded int `json:"passes_succeeded"`
}

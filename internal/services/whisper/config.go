package whisper

import "time"

// Config captures the runtime settings required to talk to the transcription
// service.
type Config struct {
	APIKey         string
	BaseURL        string
	Model          string
	TimeoutSeconds int
	RetryAttempts  int
}

// Transcription service constants.
const (
	DefaultBaseURL       = "https://api.openai.com/v1"
	DefaultModel         = "whisper-1"
	transcriptionsPath   = "/audio/transcriptions"
	modelsPath           = "/models"
	responseFormat       = "verbose_json"
	defaultHTTPTimeout   = 120 * time.Second
	defaultRetryAttempts = 2
	retryBaseDelay       = 1 * time.Second
	retryMaxDelay        = 10 * time.Second
)

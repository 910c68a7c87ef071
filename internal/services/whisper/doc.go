// Package whisper provides the HTTP client for the external speech-to-text
// service (OpenAI-compatible audio/transcriptions endpoint).
//
// # Entry Points
//
// NewClient: construct client from Config.
// Client.Transcribe: upload one audio file with per-pass parameters
// (language, temperature, priming prompt) and receive the verbose transcript
// with timed segments.
//
// # Retry Behaviour
//
// The client retries on HTTP 408/429/5xx errors and network timeouts with
// exponential backoff (base 1s, max 10s), honouring Retry-After headers.
// Context cancellation aborts retries immediately.
//
// Each pipeline invocation issues three independent Transcribe calls with
// different parameters; the client is stateless across calls and safe for
// concurrent use.
package whisper

// Command leadmirror runs the sales call transcription service: an HTTP API
// (serve), one-shot processing (process), run history, environment checks,
// staging cleanup, and configuration utilities.
package main

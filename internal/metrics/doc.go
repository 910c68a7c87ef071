// Package metrics exposes Prometheus counters and histograms for the
// transcription service.
package metrics

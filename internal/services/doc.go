// Package services defines shared utilities consumed by the transcription
// pipeline and external integrations.
//
// Key responsibilities:
//   - Context helpers that stamp request IDs, stage names, and asset hashes for
//     logging and tracing.
//   - Structured error markers plus the Wrap helper that keep failure
//     classification consistent: only validation failures and total
//     transcription failure surface to callers, everything else degrades.
//
// Use these helpers when wiring new pipeline logic so operational behaviour
// (error handling, observability, retries) stays uniform across the service.
package services

// Package history records completed transcription runs in a local SQLite
// database. Only run metadata is kept (hashes, scores, sizes); transcript
// text and audio are never persisted.
package history

// Package ingest validates uploaded audio files before any external call is
// made: size bounds, format allow-list, and content hashing.
//
// Validation collects every violation instead of failing fast so the caller
// can present the full rejection reason to the user in one pass.
package ingest

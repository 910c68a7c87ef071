// Package staging manages per-invocation scratch directories for the
// transcription pipeline.
//
// Each pipeline run owns one workspace named by the upload's content hash;
// the workspace is removed on every exit path. A periodic sweep reclaims
// directories left behind by interrupted runs once they exceed a fixed age.
package staging

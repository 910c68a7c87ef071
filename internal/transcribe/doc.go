// Package transcribe implements the multi-pass transcription consolidation
// pipeline.
//
// Every upload is transcribed three times with different parameters
// (forced-language, auto-detect, domain-primed), the candidates are scored by
// heuristics, and the winner ships with a cross-pass agreement confidence and
// an advisory audio quality report. Single-pass failures degrade the result;
// only validation failures and total transcription failure abort a run.
package transcribe

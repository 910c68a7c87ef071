// Package audio performs best-effort upload optimization and metadata
// extraction ahead of transcription.
//
// Both concerns wrap optional external tools (ffmpeg, ffprobe). Their absence
// is never fatal: optimization degrades to a verified copy of the original
// file and metadata degrades to size-based estimates, with the degradation
// recorded as values the pipeline folds into its quality reporting.
package audio

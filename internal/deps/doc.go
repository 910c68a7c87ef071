// Package deps reports availability of the optional external binaries
// (ffmpeg, ffprobe) used by the transcription pipeline.
package deps

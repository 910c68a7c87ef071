// Package language provides unified language code normalization.
//
// The transcription service pins a language on two of its three passes; this
// package converts whatever identifier the configuration carries (ISO codes,
// BCP 47 tags, full names) into the two-letter code the service expects.
package language

// Package api exposes the transcription pipeline over HTTP: multipart upload,
// run history, health, and metrics endpoints behind optional bearer-token
// authentication.
package api

// Package config loads, validates, and normalizes the TOML configuration for
// the transcription service.
//
// Configuration resolves from an explicit path, then ~/.config/leadmirror/config.toml,
// then ./leadmirror.toml, falling back to embedded defaults when no file exists.
// All path fields are tilde-expanded and made absolute during normalization.
package config

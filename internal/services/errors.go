package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrValidation marks upload rejections (size/format bounds). Surfaced to the
	// caller as a user-facing rejection, never retried.
	ErrValidation = errors.New("validation error")
	// ErrTranscription marks a single failed transcription pass. Absorbed as long
	// as at least one pass survives.
	ErrTranscription = errors.New("transcription service error")
	// ErrAllPassesFailed marks total transcription failure. Surfaced to the caller.
	ErrAllPassesFailed = errors.New("all transcription passes failed")
	// ErrOptimization marks an unavailable or failed media optimization tool.
	// Never surfaced; the pipeline degrades to a plain copy.
	ErrOptimization = errors.New("optimization unavailable")
	// ErrMetadata marks an unavailable metadata prober. Never surfaced; quality
	// scoring degrades to size-based estimates.
	ErrMetadata = errors.New("metadata unavailable")
	// ErrCleanup marks a failed temp-file removal. Logged, never escalated.
	ErrCleanup = errors.New("cleanup error")
	// ErrExternalTool marks a failed external command invocation.
	ErrExternalTool = errors.New("external tool error")
	// ErrConfiguration marks unusable service configuration.
	ErrConfiguration = errors.New("configuration error")
	// ErrTransient marks failures worth retrying.
	ErrTransient = errors.New("transient failure")
)

// Wrap builds an error message that includes stage context while tagging it with
// the provided marker for later classification. The marker should be one of the
// exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrTransient
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Fatal reports whether an error must surface to the caller instead of being
// absorbed into degraded pipeline metadata.
func Fatal(err error) bool {
	return errors.Is(err, ErrValidation) || errors.Is(err, ErrAllPassesFailed)
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}

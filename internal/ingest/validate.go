package ingest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"leadmirror/internal/fileutil"
)

// Size bounds imposed by the transcription service: it rejects payloads above
// 25 MiB, and anything under 1 KiB is too short to carry usable speech.
const (
	MinFileBytes = 1024
	MaxFileBytes = 25 * 1024 * 1024
)

// allowedExtensions is the container/codec allow-list accepted by the
// transcription service.
var allowedExtensions = map[string]struct{}{
	".mp3":  {},
	".mp4":  {},
	".mpeg": {},
	".mpga": {},
	".m4a":  {},
	".wav":  {},
	".webm": {},
	".flac": {},
	".ogg":  {},
	".opus": {},
	".aac":  {},
}

// Report is the outcome of upload validation. Issues lists every violated
// bound; a non-empty list blocks the rest of the pipeline.
type Report struct {
	OK        bool
	Issues    []string
	SizeBytes int64
	Extension string
	// Hash is the SHA-256 content digest, computed for dedup and traceability.
	Hash string
}

// Validate checks the uploaded file against size and format bounds and computes
// its content hash. Expected violations are reported in the Issues list, not as
// errors; only I/O failures (file missing, unreadable) return an error.
func Validate(path, declaredName string) (Report, error) {
	var report Report

	info, err := os.Stat(path)
	if err != nil {
		return report, fmt.Errorf("stat upload: %w", err)
	}
	report.SizeBytes = info.Size()

	name := strings.TrimSpace(declaredName)
	if name == "" {
		name = filepath.Base(path)
	}
	report.Extension = strings.ToLower(filepath.Ext(name))

	if report.SizeBytes < MinFileBytes {
		report.Issues = append(report.Issues,
			fmt.Sprintf("file too small: %d bytes (minimum %d)", report.SizeBytes, MinFileBytes))
	}
	if report.SizeBytes > MaxFileBytes {
		report.Issues = append(report.Issues,
			fmt.Sprintf("file too large: %d bytes (maximum %d)", report.SizeBytes, MaxFileBytes))
	}

	if report.Extension == "" {
		report.Issues = append(report.Issues, "file has no extension")
	} else if _, ok := allowedExtensions[report.Extension]; !ok {
		report.Issues = append(report.Issues,
			fmt.Sprintf("unsupported format %q (supported: %s)", report.Extension, supportedList()))
	}

	hash, err := fileutil.HashFile(path)
	if err != nil {
		return report, fmt.Errorf("hash upload: %w", err)
	}
	report.Hash = hash

	report.OK = len(report.Issues) == 0
	return report, nil
}

// Supported reports whether the extension (with or without leading dot) is on
// the allow-list.
func Supported(ext string) bool {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	_, ok := allowedExtensions[ext]
	return ok
}

func supportedList() string {
	exts := make([]string, 0, len(allowedExtensions))
	for ext := range allowedExtensions {
		exts = append(exts, strings.TrimPrefix(ext, "."))
	}
	sortStrings(exts)
	return strings.Join(exts, ", ")
}

func sortStrings(values []string) {
	for i := 1; i < len(values); i++ {
		for j := i; j > 0 && values[j] < values[j-1]; j-- {
			values[j], values[j-1] = values[j-1], values[j]
		}
	}
}

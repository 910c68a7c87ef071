package api

import (
	"time"

	"leadmirror/internal/history"
)

type errorResponse struct {
	Error string `json:"error"`
}

type healthResponse struct {
	Status       string             `json:"status"`
	Dependencies []DependencyStatus `json:"dependencies,omitempty"`
}

type historyResponse struct {
	Runs []historyRun `json:"runs"`
}

type historyRun struct {
	ID              int64     `json:"id"`
	RequestID       string    `json:"request_id"`
	FileName        string    `json:"file_name,omitempty"`
	ContentHash     string    `json:"content_hash"`
	SizeBytes       int64     `json:"size_bytes"`
	Format          string    `json:"format,omitempty"`
	Strategy        string    `json:"strategy,omitempty"`
	Confidence      float64   `json:"confidence"`
	QualityScore    float64   `json:"quality_score"`
	DurationSeconds float64   `json:"duration_seconds"`
	TextChars       int       `json:"text_chars"`
	ProcessingMS    int64     `json:"processing_ms"`
	Degraded        bool      `json:"degraded"`
	Error           string    `json:"error,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

func fromEntry(entry history.Entry) historyRun {
	return historyRun{
		ID:              entry.ID,
		RequestID:       entry.RequestID,
		FileName:        entry.FileName,
		ContentHash:     entry.ContentHash,
		SizeBytes:       entry.SizeBytes,
		Format:          entry.Format,
		Strategy:        entry.Strategy,
		Confidence:      entry.Confidence,
		QualityScore:    entry.QualityScore,
		DurationSeconds: entry.DurationSeconds,
		TextChars:       entry.TextChars,
		ProcessingMS:    entry.ProcessingMS,
		Degraded:        entry.Degraded,
		Error:           entry.ErrorMessage,
		CreatedAt:       entry.CreatedAt,
	}
}

package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"leadmirror/internal/config"
	"leadmirror/internal/history"
	"leadmirror/internal/logging"
	"leadmirror/internal/services"
	"leadmirror/internal/transcribe"
)

// Processor runs the transcription pipeline on one upload.
type Processor interface {
	Process(ctx context.Context, path, declaredName string) (*transcribe.Result, error)
}

// DependencyStatus describes one external tool in the health payload.
type DependencyStatus struct {
	Name      string `json:"name"`
	Available bool   `json:"available"`
	Optional  bool   `json:"optional"`
	Detail    string `json:"detail,omitempty"`
}

type transcriptionHandler struct {
	cfg       *config.Config
	pipeline  Processor
	history   HistoryStore
	logger    *slog.Logger
	depsCheck func() []DependencyStatus
}

func newTranscriptionHandler(h Handlers) *transcriptionHandler {
	return &transcriptionHandler{
		cfg:       h.Config,
		pipeline:  h.Pipeline,
		history:   h.History,
		logger:    h.Logger,
		depsCheck: h.DepsCheck,
	}
}

func (h *transcriptionHandler) maxUploadBytes() int64 {
	mib := h.cfg.API.MaxUploadMiB
	if mib <= 0 {
		mib = 26
	}
	return int64(mib) * 1024 * 1024
}

// handleTranscribe accepts a multipart upload under the "file" field, runs the
// pipeline, records the run, and returns the consolidated result. The handler
// owns the spooled upload and removes it when the request completes.
func (h *transcriptionHandler) handleTranscribe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.WithContext(ctx, h.logger)

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes())
	file, header, err := r.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.writeError(w, http.StatusRequestEntityTooLarge, "upload exceeds size limit")
			return
		}
		h.writeError(w, http.StatusBadRequest, `multipart "file" field required`)
		return
	}
	defer file.Close()

	uploadPath, err := h.spoolUpload(file, header.Filename)
	if err != nil {
		logger.Error("spool upload failed", logging.Error(err))
		h.writeError(w, http.StatusInternalServerError, "failed to store upload")
		return
	}
	defer func() {
		if removeErr := os.Remove(uploadPath); removeErr != nil && !os.IsNotExist(removeErr) {
			logging.WarnWithContext(logger, "upload cleanup failed", "upload_cleanup_failed",
				logging.String("path", uploadPath),
				logging.Error(removeErr),
				logging.String(logging.FieldImpact, "staging disk space not reclaimed"),
			)
		}
	}()

	result, err := h.pipeline.Process(ctx, uploadPath, header.Filename)
	h.recordRun(ctx, header.Filename, result, err)
	if err != nil {
		h.writePipelineError(w, logger, err)
		return
	}
	h.writeJSON(w, http.StatusOK, result)
}

// spoolUpload copies the multipart part to a private file so the pipeline can
// stat, hash, and probe it by path.
func (h *transcriptionHandler) spoolUpload(src io.Reader, declaredName string) (string, error) {
	uploadDir := filepath.Join(h.cfg.Paths.StagingDir, "uploads")
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}
	ext := filepath.Ext(declaredName)
	tmp, err := os.CreateTemp(uploadDir, "upload-*"+ext)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	if _, err := io.Copy(tmp, src); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("write upload: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("close upload: %w", err)
	}
	return tmp.Name(), nil
}

func (h *transcriptionHandler) recordRun(ctx context.Context, fileName string, result *transcribe.Result, runErr error) {
	if h.history == nil {
		return
	}
	entry := history.Entry{FileName: fileName}
	if requestID, ok := services.RequestIDFromContext(ctx); ok {
		entry.RequestID = requestID
	}
	if result != nil {
		entry.ContentHash = result.Metadata.ContentHash
		entry.SizeBytes = result.Metadata.FileSizeBytes
		entry.Format = result.Metadata.Format
		entry.Strategy = string(result.Metadata.Strategy)
		entry.Confidence = result.Confidence
		entry.QualityScore = result.Metadata.QualityScore
		entry.DurationSeconds = result.Duration
		entry.TextChars = len(result.Text)
		entry.ProcessingMS = result.Metadata.ProcessingMillis
		entry.Degraded = len(result.Metadata.Degradations) > 0
	}
	if runErr != nil {
		entry.ErrorMessage = runErr.Error()
	}
	if _, err := h.history.Record(ctx, entry); err != nil {
		logging.WarnWithContext(logging.WithContext(ctx, h.logger), "history record failed", "history_record_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "run missing from history"),
		)
	}
}

func (h *transcriptionHandler) handleHistory(w http.ResponseWriter, r *http.Request) {
	if h.history == nil {
		h.writeJSON(w, http.StatusOK, historyResponse{Runs: []historyRun{}})
		return
	}
	limit := 0
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			h.writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = parsed
	}
	entries, err := h.history.List(r.Context(), limit)
	if err != nil {
		logging.WithContext(r.Context(), h.logger).Error("history list failed", logging.Error(err))
		h.writeError(w, http.StatusInternalServerError, "history unavailable")
		return
	}
	runs := make([]historyRun, 0, len(entries))
	for _, entry := range entries {
		runs = append(runs, fromEntry(entry))
	}
	h.writeJSON(w, http.StatusOK, historyResponse{Runs: runs})
}

func (h *transcriptionHandler) handleHealth(w http.ResponseWriter, r *http.Request) {
	payload := healthResponse{Status: "ok"}
	if h.depsCheck != nil {
		payload.Dependencies = h.depsCheck()
		for _, dep := range payload.Dependencies {
			if !dep.Available && !dep.Optional {
				payload.Status = "degraded"
			}
		}
	}
	h.writeJSON(w, http.StatusOK, payload)
}

// writePipelineError maps the pipeline error taxonomy onto HTTP statuses:
// validation rejections are the client's fault, total transcription failure is
// an upstream fault, anything else is internal.
func (h *transcriptionHandler) writePipelineError(w http.ResponseWriter, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		h.writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, services.ErrAllPassesFailed):
		logging.ErrorWithContext(logger, "transcription failed", "transcription_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check transcription API status and key"),
		)
		h.writeError(w, http.StatusBadGateway, err.Error())
	case errors.Is(err, context.Canceled):
		// Client went away; nothing useful to send.
		h.writeError(w, 499, "request canceled")
	default:
		logger.Error("pipeline error", logging.Error(err))
		h.writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func (h *transcriptionHandler) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil && h.logger != nil {
		h.logger.Error("encode response", logging.Error(err))
	}
}

func (h *transcriptionHandler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, errorResponse{Error: message})
}

package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"leadmirror/internal/config"
	"leadmirror/internal/history"
	"leadmirror/internal/logging"
)

// Handlers bundles the collaborators the router serves. Metrics may be nil;
// the /metrics route is omitted in that case.
type Handlers struct {
	Config    *config.Config
	Pipeline  Processor
	History   HistoryStore
	Metrics   http.Handler
	Logger    *slog.Logger
	DepsCheck func() []DependencyStatus
}

// HistoryStore is the subset of the history store the API consumes.
type HistoryStore interface {
	Record(ctx context.Context, entry history.Entry) (int64, error)
	List(ctx context.Context, limit int) ([]history.Entry, error)
}

// NewRouter assembles the HTTP API.
func NewRouter(h Handlers) *chi.Mux {
	if h.Logger == nil {
		h.Logger = logging.NewNop()
	}

	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)
	r.Use(requestIDMiddleware)

	origins := h.Config.API.AllowedOrigins
	if len(origins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   origins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders:   []string{"Authorization", "Content-Type"},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}

	handler := newTranscriptionHandler(h)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handler.handleHealth)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware(h.Config.Paths.APIToken))
			r.Post("/transcriptions", handler.handleTranscribe)
			r.Get("/transcriptions", handler.handleHistory)
		})
	})

	if h.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", h.Metrics)
	}

	return r
}

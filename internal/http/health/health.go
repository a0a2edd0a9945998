package health

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler exposes liveness and readiness endpoints.
type Handler struct {
	log       *slog.Logger
	pinger    Pinger
	opTimeout time.Duration
}

func New(log *slog.Logger, p Pinger, opTimeout time.Duration) *Handler {
	return &Handler{log: log, pinger: p, opTimeout: opTimeout}
}

func (h *Handler) Mount(r chi.Router) {
	// Liveness: process is up
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Readiness: the rating store is reachable
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), h.opTimeout)
		defer cancel()

		if err := h.pinger.Ping(ctx); err != nil {
			if h.log != nil {
				h.log.Warn("readiness failed", "err", err)
			}
			http.Error(w, "not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})
}

package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrKriegler/motor-rating/internal/core"
	"github.com/MrKriegler/motor-rating/pkg/problem"
)

type QuoteHandler struct {
	Svc core.QuoteService
	Log *slog.Logger
}

func NewQuoteHandler(svc core.QuoteService, log *slog.Logger) *QuoteHandler {
	return &QuoteHandler{Svc: svc, Log: log}
}

func (h *QuoteHandler) Mount(r chi.Router) {
	r.Post("/quotes:price", h.Price)
}

// Price computes a full motor quote from the request body.
// 200: JSON quote; 400: malformed body or validation failure;
// 422: pricing failed (no rate band, discount out of range); 500: internal error.
func (h *QuoteHandler) Price(w http.ResponseWriter, r *http.Request) {
	var in core.QuoteInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		problem.Write(w, http.StatusBadRequest, "Malformed Request", "Request body is not valid JSON.")
		return
	}

	quote, err := h.Svc.Price(r.Context(), in)
	if err != nil {
		writeError(r.Context(), h.Log, w, err, err.Error())
		return
	}

	if err := json.NewEncoder(w).Encode(quote); err != nil {
		h.Log.Error("failed to encode quote", "quote_id", quote.ID, "err", err)
	}
}

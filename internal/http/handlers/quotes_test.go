package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrKriegler/motor-rating/internal/core"
	"github.com/MrKriegler/motor-rating/pkg/problem"
)

type stubQuoteService struct {
	q   core.Quote
	err error
}

func (s stubQuoteService) Price(_ context.Context, _ core.QuoteInput) (core.Quote, error) {
	return s.q, s.err
}

func newQuoteRouter(svc core.QuoteService) http.Handler {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	r := chi.NewRouter()
	NewQuoteHandler(svc, log).Mount(r)
	return r
}

func postQuote(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/quotes:price", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestQuoteHandlerPriceSuccess(t *testing.T) {
	want := core.Quote{
		ID:           "q-123",
		Addons:       []core.AddonPrice{},
		AddonBundles: []core.AddonPrice{},
		NetPremium:   8399,
		TotalTax:     1511.82,
		TotalPremium: 9910.82,
	}
	h := newQuoteRouter(stubQuoteService{q: want})

	rec := postQuote(t, h, `{"insurer_id":7,"variant_id":101,"vehicle_cover_id":1,"rto_id":11,"idv":500000}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var got core.Quote
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.TotalPremium, got.TotalPremium)
	assert.NotNil(t, got.Addons)
}

func TestQuoteHandlerPriceMalformedBody(t *testing.T) {
	h := newQuoteRouter(stubQuoteService{})

	rec := postQuote(t, h, `{"insurer_id":`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
}

func TestQuoteHandlerPriceErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantTitle  string
	}{
		{
			name:       "validation failure",
			err:        fmt.Errorf("%w: missing insurer", core.ErrValidation),
			wantStatus: http.StatusBadRequest,
			wantTitle:  "Validation Error",
		},
		{
			name:       "pricing failure",
			err:        fmt.Errorf("%w: od rate: not found", core.ErrPricing),
			wantStatus: http.StatusUnprocessableEntity,
			wantTitle:  "Pricing Failed",
		},
		{
			name:       "store timeout",
			err:        context.DeadlineExceeded,
			wantStatus: http.StatusGatewayTimeout,
			wantTitle:  "Timeout",
		},
		{
			name:       "unexpected error",
			err:        fmt.Errorf("connection reset"),
			wantStatus: http.StatusInternalServerError,
			wantTitle:  "Internal Server Error",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := newQuoteRouter(stubQuoteService{err: tc.err})

			rec := postQuote(t, h, `{"insurer_id":7,"variant_id":101,"vehicle_cover_id":1,"rto_id":11,"idv":500000}`)

			require.Equal(t, tc.wantStatus, rec.Code)
			var p problem.Problem
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&p))
			assert.Equal(t, tc.wantTitle, p.Title)
			assert.Equal(t, tc.wantStatus, p.Status)
		})
	}
}

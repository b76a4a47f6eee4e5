package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/bibbank/fraudshield/internal/application/dto"
	"github.com/bibbank/fraudshield/internal/application/usecase"
	"github.com/bibbank/fraudshield/internal/domain/model"
	"github.com/bibbank/fraudshield/internal/domain/port"
)

// maxBodyBytes caps the size of a scoring request body.
const maxBodyBytes = 1 << 20

// ScoringHandler exposes the scoring use cases over HTTP.
type ScoringHandler struct {
	scoreTransaction *usecase.ScoreTransaction
	scoreBatch       *usecase.ScoreBatch
	logger           *slog.Logger
}

// NewScoringHandler creates a new HTTP scoring handler.
func NewScoringHandler(
	scoreTransaction *usecase.ScoreTransaction,
	scoreBatch *usecase.ScoreBatch,
	logger *slog.Logger,
) *ScoringHandler {
	return &ScoringHandler{
		scoreTransaction: scoreTransaction,
		scoreBatch:       scoreBatch,
		logger:           logger,
	}
}

// ErrorResponse is the JSON body of every non-2xx scoring response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// RegisterRoutes registers scoring endpoints on the provided ServeMux.
func (h *ScoringHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.Home)
	mux.HandleFunc("POST /check-transaction", h.CheckTransaction)
	mux.HandleFunc("GET /auto-check", h.AutoCheck)
}

// Home returns the service banner.
func (h *ScoringHandler) Home(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "FraudShield risk scoring API is running"})
}

// CheckTransaction scores the transaction in the request body.
func (h *ScoringHandler) CheckTransaction(w http.ResponseWriter, r *http.Request) {
	var req dto.ScoreTransactionRequest

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		h.writeError(w, fmt.Errorf("%w: malformed request body: %v", model.ErrInvalidTransaction, err))
		return
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		h.writeError(w, fmt.Errorf("%w: malformed request body: unexpected data after JSON object", model.ErrInvalidTransaction))
		return
	}

	result, err := h.scoreTransaction.Execute(r.Context(), req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result.Response())
}

// AutoCheck scores every transaction of the configured source.
func (h *ScoringHandler) AutoCheck(w http.ResponseWriter, r *http.Request) {
	results, err := h.scoreBatch.FromSource(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}

	items := make([]dto.BatchItem, 0, len(results))
	for _, res := range results {
		items = append(items, res.BatchItem())
	}
	writeJSON(w, http.StatusOK, items)
}

// writeError maps use case errors onto HTTP statuses.
func (h *ScoringHandler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrInvalidTransaction):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, port.ErrSourceUnavailable):
		h.logger.Error("transaction source unavailable", "error", err)
		writeJSON(w, http.StatusBadGateway, ErrorResponse{Error: "transaction source unavailable"})
	default:
		h.logger.Error("scoring failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

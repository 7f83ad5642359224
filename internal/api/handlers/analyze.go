package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/cahrendt0815/alphahandle/internal/contracts"
	"github.com/cahrendt0815/alphahandle/pkg/logger"
)

// Analyzer runs the analysis pipeline for one author.
type Analyzer interface {
	Analyze(ctx context.Context, handle string) (*contracts.Scorecard, error)
}

// AnalyzeHandler handles on-demand analysis requests.
type AnalyzeHandler struct {
	analyzer Analyzer
	logger   *logger.Logger
}

// NewAnalyzeHandler creates a new analyze handler.
func NewAnalyzeHandler(analyzer Analyzer, log *logger.Logger) *AnalyzeHandler {
	return &AnalyzeHandler{analyzer: analyzer, logger: log}
}

// AnalyzeRequest is the analyze request body.
type AnalyzeRequest struct {
	Handle string `json:"handle"`
}

// Analyze runs the full pipeline for a handle and returns the stored
// scorecard.
// POST /api/analyze
func (h *AnalyzeHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Handle == "" {
		respondError(w, http.StatusBadRequest, "handle is required")
		return
	}

	sc, err := h.analyzer.Analyze(ctx, req.Handle)
	switch {
	case errors.Is(err, contracts.ErrInvalidHandle):
		respondError(w, http.StatusBadRequest, "Invalid handle")
		return
	case errors.Is(err, contracts.ErrNoTrades):
		respondError(w, http.StatusUnprocessableEntity, "No trades with valid market data for this handle")
		return
	case err != nil:
		h.logger.WithError(err).WithField("handle", req.Handle).Error("Analysis run failed")
		respondError(w, http.StatusInternalServerError, "Analysis failed")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    sc,
	})
}

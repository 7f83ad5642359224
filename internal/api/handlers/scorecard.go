package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/cahrendt0815/alphahandle/internal/contracts"
	"github.com/cahrendt0815/alphahandle/pkg/logger"
)

// ScorecardHandler serves stored scorecards.
type ScorecardHandler struct {
	store  contracts.ScorecardStore
	logger *logger.Logger
}

// NewScorecardHandler creates a new scorecard handler.
func NewScorecardHandler(store contracts.ScorecardStore, log *logger.Logger) *ScorecardHandler {
	return &ScorecardHandler{store: store, logger: log}
}

// Get returns the stored scorecard for a handle.
// GET /api/scorecards/{handle}
func (h *ScorecardHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	vars := mux.Vars(r)

	handle, err := contracts.NormalizeHandle(vars["handle"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid handle")
		return
	}

	sc, err := h.store.Get(ctx, handle)
	switch {
	case errors.Is(err, contracts.ErrNotFound):
		respondError(w, http.StatusNotFound, "Scorecard not found")
		return
	case err != nil:
		h.logger.WithError(err).WithField("handle", handle).Error("Failed to get scorecard")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve scorecard")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    sc,
	})
}

// Helper functions

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}

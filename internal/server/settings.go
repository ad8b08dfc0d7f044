package server

import (
	"encoding/json"
	"net/http"

	"github.com/pocketledger/pocketledger/internal/service"
)

// GetSettings handles GET /api/settings
func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.ledger.Settings())
}

// UpdateSettings handles PATCH /api/settings
func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var patch service.SettingsPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	settings, err := h.ledger.UpdateSettings(r.Context(), patch)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	respondJSON(w, http.StatusOK, settings)
}

// GetStreak handles GET /api/streak
func (h *Handler) GetStreak(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.ledger.StreakState())
}

// ResetData handles POST /api/reset, replacing all state with seed data.
func (h *Handler) ResetData(w http.ResponseWriter, r *http.Request) {
	if err := h.ledger.Reset(r.Context()); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

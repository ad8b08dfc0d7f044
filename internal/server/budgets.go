package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/pocketledger/pocketledger/internal/database/repository"
)

// ListBudgets handles GET /api/budgets, returning computed lines for the
// current period.
func (h *Handler) ListBudgets(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.budgets.Lines(time.Now()))
}

// CreateBudget handles POST /api/budgets. A budget for an already-budgeted
// category replaces the existing one.
func (h *Handler) CreateBudget(w http.ResponseWriter, r *http.Request) {
	var b repository.Budget
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if !b.LimitAmount.IsPositive() {
		http.Error(w, "budget limit must be positive", http.StatusBadRequest)
		return
	}
	if err := h.ledger.AddBudget(r.Context(), b); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, b)
}

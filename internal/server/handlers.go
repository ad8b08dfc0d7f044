package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/pocketledger/pocketledger/internal/service"
)

// Handler bundles the services behind the HTTP surface.
type Handler struct {
	ledger    *service.LedgerService
	budgets   *service.BudgetService
	assistant *service.AssistantService
}

func New(ledger *service.LedgerService) *Handler {
	return &Handler{
		ledger:    ledger,
		budgets:   &service.BudgetService{Ledger: ledger},
		assistant: &service.AssistantService{Ledger: ledger},
	}
}

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			log.Printf("encoding response: %v", err)
		}
	}
}

func respondError(w http.ResponseWriter, err error) {
	if errors.Is(err, service.ErrNonPositiveAmount) || errors.Is(err, service.ErrMissingTransferDest) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	log.Printf("request failed: %v", err)
	http.Error(w, "internal error", http.StatusInternalServerError)
}

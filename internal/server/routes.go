package server

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Routes assembles the full API surface.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/api/transactions", h.ListTransactions)
	r.Post("/api/transactions", h.CreateTransaction)
	r.Put("/api/transactions/{id}", h.UpdateTransaction)
	r.Delete("/api/transactions/{id}", h.DeleteTransaction)

	r.Get("/api/accounts", h.ListAccounts)
	r.Post("/api/accounts", h.CreateAccount)
	r.Put("/api/accounts/{id}", h.UpdateAccount)
	r.Delete("/api/accounts/{id}", h.DeleteAccount)

	r.Get("/api/categories", h.ListCategories)
	r.Post("/api/categories", h.CreateCategory)
	r.Put("/api/categories/{id}", h.UpdateCategory)
	r.Delete("/api/categories/{id}", h.DeleteCategory)

	r.Get("/api/budgets", h.ListBudgets)
	r.Post("/api/budgets", h.CreateBudget)

	r.Get("/api/settings", h.GetSettings)
	r.Patch("/api/settings", h.UpdateSettings)
	r.Get("/api/streak", h.GetStreak)
	r.Post("/api/reset", h.ResetData)

	r.Get("/api/assistant/tools", h.ListTools)
	r.Post("/api/assistant/tools/{name}", h.ExecuteTool)

	return r
}

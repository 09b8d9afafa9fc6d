package handlers

import (
	"net/http"
	"runtime"
	"time"

	"fleetstock/models"
	"fleetstock/repository"
	"fleetstock/response"
)

type DashboardHandler struct {
	Accounts repository.AccountRepository
	Products repository.ProductRepository
	Cars     repository.CarRepository
	Expenses repository.ExpenseRepository

	StartedAt time.Time
	Version   string
}

// Summary aggregates the counts and expense totals shown on the admin
// dashboard.
func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	accounts, err := h.Accounts.CountActive(ctx)
	if err != nil {
		response.WriteError(w, err)
		return
	}
	products, err := h.Products.CountActive(ctx)
	if err != nil {
		response.WriteError(w, err)
		return
	}
	cars, err := h.Cars.CountActive(ctx)
	if err != nil {
		response.WriteError(w, err)
		return
	}
	total, err := h.Expenses.TotalAmount(ctx)
	if err != nil {
		response.WriteError(w, err)
		return
	}
	byCategory, err := h.Expenses.TotalsByCategory(ctx)
	if err != nil {
		response.WriteError(w, err)
		return
	}

	response.WriteSuccess(w, http.StatusOK, models.DashboardSummary{
		ActiveProducts: products,
		ActiveCars:     cars,
		ActiveAccounts: accounts,
		TotalExpenses:  total,
		ByCategory:     byCategory,
	}, "")
}

// Overview is the single super_admin-only read endpoint, returning runtime
// information about the server itself.
func (h *DashboardHandler) Overview(w http.ResponseWriter, r *http.Request) {
	response.WriteSuccess(w, http.StatusOK, map[string]any{
		"version":     h.Version,
		"started_at":  h.StartedAt.UTC(),
		"uptime":      time.Since(h.StartedAt).Round(time.Second).String(),
		"go_version":  runtime.Version(),
		"goroutines":  runtime.NumGoroutine(),
		"server_time": time.Now().UTC(),
	}, "")
}

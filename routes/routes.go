package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"fleetstock/gate"
	"fleetstock/handlers"
	"fleetstock/models"
)

// CORS middleware
func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*") // Replace * with your domain in production
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		// Handle preflight request
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// Handlers bundles everything SetupRoutes mounts.
type Handlers struct {
	Auth      *handlers.AuthHandler
	Accounts  *handlers.AccountHandler
	Products  *handlers.ProductHandler
	Cars      *handlers.CarHandler
	Expenses  *handlers.ExpenseHandler
	Dashboard *handlers.DashboardHandler
	Reports   *handlers.ReportHandler
}

// SetupRoutes declares each route's authorization policy and mounts it.
// The policy table is fixed here, before the server starts serving.
func SetupRoutes(g *gate.Gate, h Handlers) http.Handler {
	r := chi.NewRouter()
	r.Use(withCORS)

	mount := func(method, pattern string, fn http.HandlerFunc) {
		r.Method(method, pattern, handlers.RecoverWrapper(g.Protect(method+" "+pattern, fn)))
	}
	public := func(method, pattern string, fn http.HandlerFunc) {
		g.MarkPublic(method + " " + pattern)
		mount(method, pattern, fn)
	}
	restricted := func(method, pattern string, fn http.HandlerFunc, roles ...models.Role) {
		g.RequireRoles(method+" "+pattern, roles...)
		mount(method, pattern, fn)
	}

	// Auth
	public(http.MethodPost, "/api/auth/login", h.Auth.Login)
	public(http.MethodPost, "/api/auth/register", h.Auth.Register)
	restricted(http.MethodGet, "/api/auth/profile", h.Auth.Profile) // any authenticated role

	// Accounts
	restricted(http.MethodGet, "/api/users", h.Accounts.List, models.RoleAdmin, models.RoleSuperAdmin)
	restricted(http.MethodGet, "/api/users/drivers", h.Accounts.ListDrivers, models.RoleAdmin, models.RoleSuperAdmin)
	restricted(http.MethodGet, "/api/users/{id}", h.Accounts.Get, models.RoleAdmin, models.RoleSuperAdmin)
	restricted(http.MethodPut, "/api/users/{id}", h.Accounts.Update, models.RoleAdmin, models.RoleSuperAdmin)
	restricted(http.MethodDelete, "/api/users/{id}", h.Accounts.Deactivate, models.RoleAdmin, models.RoleSuperAdmin)

	// Products
	restricted(http.MethodPost, "/api/products", h.Products.Create, models.RoleAdmin, models.RoleInventoryManager)
	restricted(http.MethodGet, "/api/products", h.Products.List) // any authenticated role
	restricted(http.MethodGet, "/api/products/{id}", h.Products.Get)
	restricted(http.MethodPut, "/api/products/{id}", h.Products.Update, models.RoleAdmin, models.RoleInventoryManager)
	restricted(http.MethodPut, "/api/products/{id}/stock", h.Products.AdjustStock, models.RoleAdmin, models.RoleInventoryManager)
	restricted(http.MethodDelete, "/api/products/{id}", h.Products.Deactivate, models.RoleAdmin)

	// Cars
	restricted(http.MethodPost, "/api/cars", h.Cars.Create, models.RoleAdmin)
	restricted(http.MethodGet, "/api/cars", h.Cars.List, models.RoleAdmin, models.RoleDriver)
	restricted(http.MethodGet, "/api/cars/{id}", h.Cars.Get, models.RoleAdmin, models.RoleDriver)
	restricted(http.MethodPut, "/api/cars/{id}", h.Cars.Update, models.RoleAdmin)
	restricted(http.MethodPut, "/api/cars/{id}/driver", h.Cars.AssignDriver, models.RoleAdmin)
	restricted(http.MethodDelete, "/api/cars/{id}", h.Cars.Deactivate, models.RoleAdmin)

	// Expenses
	restricted(http.MethodPost, "/api/expenses", h.Expenses.Create, models.RoleAdmin, models.RoleDriver)
	restricted(http.MethodGet, "/api/expenses", h.Expenses.List, models.RoleAdmin)
	restricted(http.MethodGet, "/api/expenses/{id}", h.Expenses.Get, models.RoleAdmin, models.RoleDriver)
	restricted(http.MethodPut, "/api/expenses/{id}", h.Expenses.Update, models.RoleAdmin)
	restricted(http.MethodPost, "/api/expenses/{id}/receipt", h.Expenses.UploadReceipt, models.RoleAdmin, models.RoleDriver)
	restricted(http.MethodDelete, "/api/expenses/{id}", h.Expenses.Deactivate, models.RoleAdmin)

	// Dashboard & reports
	restricted(http.MethodGet, "/api/dashboard/summary", h.Dashboard.Summary, models.RoleAdmin, models.RoleSuperAdmin)
	restricted(http.MethodGet, "/api/admin/overview", h.Dashboard.Overview, models.RoleSuperAdmin)
	restricted(http.MethodGet, "/api/reports/expenses", h.Reports.ExpensesPDF, models.RoleAdmin)

	return r
}

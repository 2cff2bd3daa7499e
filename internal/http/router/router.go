package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/labforge/labstock/internal/authz"
	"github.com/labforge/labstock/internal/http/handlers"
	mw "github.com/labforge/labstock/internal/http/middleware"
)

// NewRouter wires every route through the centralized authorization
// middleware; no handler re-derives permissions on its own.
func NewRouter() http.Handler {
	r := chi.NewRouter()

	r.With(mw.RateLimit).Post("/login", handlers.LoginHandler)
	r.Post("/refresh", handlers.RefreshHandler)
	r.Get("/swagger/*", httpSwagger.Handler())

	r.Group(func(r chi.Router) {
		r.Use(mw.Auth)

		r.Post("/logout", handlers.LogoutHandler)

		// Every authenticated role may record and browse movements.
		r.With(mw.RequireCapability(authz.RecordTransactions)).Post("/transactions", handlers.RecordTransactionHandler)
		r.With(mw.RequireCapability(authz.RecordTransactions)).Get("/transactions", handlers.GetTransactionsHandler)

		r.Get("/components", handlers.FilterComponentsHandler)
		r.Get("/components/{id}", handlers.GetComponentByIDHandler)
		r.Get("/categories", handlers.GetCategoriesHandler)

		r.Group(func(r chi.Router) {
			r.Use(mw.RequireCapability(authz.ManageInventory))
			r.Post("/components", handlers.CreateComponentHandler)
			r.Put("/components/{id}", handlers.UpdateComponentHandler)
			r.Delete("/components/{id}", handlers.DeleteComponentHandler)
			r.Post("/components/import", handlers.ImportComponentsHandler)
			r.Post("/categories", handlers.CreateCategoryHandler)
			r.Put("/categories/{id}", handlers.UpdateCategoryHandler)
			r.Delete("/categories/{id}", handlers.DeleteCategoryHandler)
		})

		r.Group(func(r chi.Router) {
			r.Use(mw.RequireCapability(authz.ViewReports))
			r.Get("/reports/low-stock", handlers.GetLowStockHandler)
			r.Get("/reports/old-stock", handlers.GetOldStockHandler)
			r.Get("/metrics/dashboard", handlers.GetDashboardMetricsHandler)
		})

		r.Group(func(r chi.Router) {
			r.Use(mw.RequireCapability(authz.ManageUsers))
			r.Post("/users", handlers.CreateUserHandler)
			r.Get("/users", handlers.ListUsersHandler)
			r.Put("/users/{id}", handlers.UpdateUserHandler)
			r.Delete("/users/{id}", handlers.DeactivateUserHandler)
		})
	})

	return r
}

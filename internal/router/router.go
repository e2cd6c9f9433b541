// Package router sets up all HTTP routes and middleware chains for the
// pricecheck API. It organizes routes into public and admin groups with
// appropriate middleware stacks.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"pricecheck/internal/handlers"
	"pricecheck/internal/middleware"
	"pricecheck/internal/session"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(sessionStore *session.Store, public *handlers.Public, auth *handlers.Auth, admin *handlers.Admin, loginLimiter *middleware.RateLimiter) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.LoadSession(sessionStore))

	// Health check — no auth.
	r.Get("/health", healthHandler)

	r.Route("/api", func(r chi.Router) {
		// Public browsing + quick search.
		r.Get("/categories", public.Categories)
		r.Get("/categories/{id}", public.Category)
		r.Get("/search/sku", public.SearchSKU)

		r.Route("/admin", func(r chi.Router) {
			// Auth endpoints — accessible without a session. Login is
			// rate-limited to slow down password guessing.
			r.With(loginLimiter.Middleware).Post("/login", auth.Login)
			r.Post("/logout", auth.Logout)
			r.Get("/session", auth.Session)

			// Management endpoints — require an active admin session.
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdmin)

				r.Route("/categories", func(r chi.Router) {
					r.Get("/", admin.CategoriesList)
					r.Post("/", admin.CategoryCreate)
					r.Put("/{id}", admin.CategoryUpdate)
					r.Delete("/{id}", admin.CategoryDelete)
				})

				r.Route("/products", func(r chi.Router) {
					r.Get("/", admin.ProductsList)
					r.Post("/", admin.ProductCreate)
					r.Post("/image", admin.ProductImage)
					r.Put("/{id}", admin.ProductUpdate)
					r.Delete("/{id}", admin.ProductDelete)
				})
			})
		})
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

package router

import (
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	mw "github.com/inkwell-blog/inkwell/internal/middleware"
	"github.com/inkwell-blog/inkwell/internal/middleware/metrics"
	"github.com/inkwell-blog/inkwell/internal/setup"
)

// New wires all routes. Public pages carry OptionalAuth only so the
// navigation knows who is looking; mutating routes sit behind RequireAuth,
// and post management behind RequireAdmin (403 for everyone but user 1).
func New(deps *setup.Dependencies) *chi.Mux {
	r := chi.NewRouter()

	r.Use(metrics.Middleware)
	r.Use(mw.SecurityHeaders(deps.Public.SecureCookies))
	r.Use(deps.Auth.OptionalAuth())

	h := deps.Handler

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/health", h.Health)

	// Public pages
	r.Get("/", h.IndexGetHandler)
	r.Get("/about", h.AboutGetHandler)
	r.Get("/contact", h.ContactGetHandler)

	r.Get("/register", h.RegisterGetHandler)
	r.Post("/register", h.RegisterPostHandler)
	r.Get("/login", h.LoginGetHandler)
	r.Post("/login", h.LoginPostHandler)

	// Anyone may read a post; the comment POST checks authentication
	// itself so it can flash a message instead of silently rejecting.
	r.Get("/post/{id}", h.ShowPostGetHandler)
	r.Post("/post/{id}", h.ShowPostPostHandler)

	// Authenticated routes
	r.Group(func(r chi.Router) {
		r.Use(deps.Auth.RequireAuth())
		r.Get("/logout", h.LogoutHandler)

		// Admin routes
		r.Group(func(r chi.Router) {
			r.Use(deps.Auth.RequireAdmin())
			r.Get("/new-post", h.NewPostGetHandler)
			r.Post("/new-post", h.NewPostPostHandler)
			r.Get("/edit-post/{id}", h.EditPostGetHandler)
			r.Post("/edit-post/{id}", h.EditPostPostHandler)
			r.Get("/delete/{id}", h.DeletePostHandler)
		})
	})

	return r
}

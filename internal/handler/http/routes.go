package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/register", h.register)
		r.Post("/api/login", h.login)
		r.Post("/api/logout", h.logout)
	})

	// routes behind the session gate: the acting user's identity comes only
	// from the verified bearer token
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Get("/api/user", h.currentUser)
		r.Put("/api/user", h.updateProfile)

		r.Post("/api/user/watchlist", h.appendEntry)
		r.Put("/api/user/watchlist/{entryID}", h.updateEntry)
		r.Delete("/api/user/watchlist/{entryID}", h.removeEntry)
	})

	return router
}

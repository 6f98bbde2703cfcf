package auth

import (
	"net/http"

	"github.com/PrivatePlace/PP-Backend/internal/middleware"
	"github.com/go-chi/chi/v5"
)

func SetupRoutes(h *Handler, limiter *middleware.RateLimiter) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequireAgeVerified)

	r.Post("/register", h.Register)
	r.With(middleware.RateLimit(limiter)).Post("/login", h.Login)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireLogin)
		r.Post("/logout", h.Logout)
		r.Get("/me", h.Me)
	})

	return r
}

func SetupSessionRoutes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.Session)
	r.Post("/age-verification", h.VerifyAge)
	return r
}

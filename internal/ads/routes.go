package ads

import (
	"net/http"

	"github.com/PrivatePlace/PP-Backend/internal/middleware"
	"github.com/go-chi/chi/v5"
)

func SetupRoutes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequireAgeVerified)

	r.Get("/", h.Browse)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireLogin)
		r.Get("/defaults", h.Defaults)
		r.Get("/mine", h.Mine)
		r.Post("/", h.Submit)
	})

	return r
}

// SetupAdminRoutes mounts the moderation endpoints under /admin/ads.
func SetupAdminRoutes(h *Handler, roles middleware.RoleFetcher) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequireAgeVerified)
	r.Use(middleware.AdminMiddleware(roles))

	r.Get("/pending", h.Pending)
	r.Post("/{id}/approve", h.Approve)
	r.Post("/{id}/reject", h.Reject)
	r.Get("/{id}/reviews", h.Reviews)

	return r
}

package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/PrivatePlace/PP-Backend/internal/ads"
	"github.com/PrivatePlace/PP-Backend/internal/auth"
	"github.com/PrivatePlace/PP-Backend/internal/config"
	"github.com/PrivatePlace/PP-Backend/internal/media"
	"github.com/PrivatePlace/PP-Backend/internal/middleware"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// Backends are the stores the router runs on. Blobs and MediaDir are
// optional.
type Backends struct {
	Sessions middleware.SessionStore
	Users    auth.UserStore
	Ads      ads.Store
	Blobs    media.BlobStore
	// MediaDir is served under /media when set.
	MediaDir string
}

func RootHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprintln(w, "Server is up!")
}

// NewRouter assembles every route of the service.
func NewRouter(cfg config.Config, b Backends) http.Handler {
	sessionMgr := middleware.NewSessionManager(b.Sessions, cfg.Session.TTL, cfg.Session.CookieSecure)

	authSvc := auth.NewService(b.Users, cfg.AdminUsername, cfg.BcryptCost)
	authHandler := auth.NewHandler(authSvc, sessionMgr, cfg.DonateURL)

	var uploader ads.Uploader
	if b.Blobs != nil {
		uploader = media.NewUploader(b.Blobs, cfg.Media.MaxDimension)
	}
	adsHandler := ads.NewHandler(ads.NewService(b.Ads, uploader), authSvc, cfg.Media.MaxUploadBytes)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	r.Get("/", RootHandler)

	if b.MediaDir != "" {
		prefix := media.DefaultLocalBaseURL
		if p := cfg.Media.PublicBaseURL; strings.HasPrefix(p, "/") {
			prefix = strings.TrimRight(p, "/")
		}
		r.Handle(prefix+"/*", http.StripPrefix(prefix+"/", http.FileServer(http.Dir(b.MediaDir))))
	}

	r.Group(func(r chi.Router) {
		r.Use(middleware.SessionMiddleware(sessionMgr))

		r.Mount("/session", auth.SetupSessionRoutes(authHandler))
		r.Mount("/auth", auth.SetupRoutes(authHandler, middleware.NewRateLimiter(cfg.LoginPerMinute)))
		r.Mount("/ads", ads.SetupRoutes(adsHandler))
		r.Mount("/admin/ads", ads.SetupAdminRoutes(adsHandler, authSvc))
	})

	return r
}

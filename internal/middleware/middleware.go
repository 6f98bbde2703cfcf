package middleware

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/PrivatePlace/PP-Backend/internal/common"
	"github.com/PrivatePlace/PP-Backend/internal/utils"
	"github.com/google/uuid"
)

const SessionCookieName = "session_id"

// SessionStore persists per-connection sessions. FindSessionByID returns
// common.ErrNotFound for unknown ids.
type SessionStore interface {
	FindSessionByID(ctx context.Context, id string) (utils.SessionData, error)
	SaveSession(ctx context.Context, s utils.SessionData) error
	DeleteSession(ctx context.Context, id string) error
}

// SessionManager starts, rotates and ends sessions and keeps the cookie in sync.
type SessionManager struct {
	store  SessionStore
	ttl    time.Duration
	secure bool
	now    func() time.Time
}

func NewSessionManager(store SessionStore, ttl time.Duration, secure bool) *SessionManager {
	return &SessionManager{store: store, ttl: ttl, secure: secure, now: time.Now}
}

// Start issues a fresh session id, copying the age gate flag and username
// from carry. The old session, if any, is deleted.
func (m *SessionManager) Start(ctx context.Context, w http.ResponseWriter, carry utils.SessionData) (utils.SessionData, error) {
	s := utils.SessionData{
		SessionID:   uuid.New().String(),
		Username:    carry.Username,
		AgeVerified: carry.AgeVerified,
		ExpiresAt:   m.now().Add(m.ttl),
	}
	if err := m.store.SaveSession(ctx, s); err != nil {
		return utils.SessionData{}, err
	}
	if carry.SessionID != "" {
		if err := m.store.DeleteSession(ctx, carry.SessionID); err != nil && !errors.Is(err, common.ErrNotFound) {
			log.Printf("[session] delete %s: %v", carry.SessionID, err)
		}
	}
	m.setCookie(w, s)
	return s, nil
}

// Update stores changed session fields without rotating the id.
func (m *SessionManager) Update(ctx context.Context, s utils.SessionData) error {
	return m.store.SaveSession(ctx, s)
}

// End deletes the session and expires the cookie.
func (m *SessionManager) End(ctx context.Context, w http.ResponseWriter, s utils.SessionData) error {
	err := m.store.DeleteSession(ctx, s.SessionID)
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		MaxAge:   -1,
		Path:     "/",
		HttpOnly: true,
	})
	if err != nil && !errors.Is(err, common.ErrNotFound) {
		return err
	}
	return nil
}

func (m *SessionManager) setCookie(w http.ResponseWriter, s utils.SessionData) {
	sameSite := http.SameSiteLaxMode
	if m.secure {
		sameSite = http.SameSiteNoneMode
	}
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    s.SessionID,
		Path:     "/",
		Expires:  s.ExpiresAt,
		HttpOnly: true,
		SameSite: sameSite,
		Secure:   m.secure,
	})
}

// SessionMiddleware loads the session named by the cookie, or starts an
// anonymous one on first contact, and puts it in the request context.
func SessionMiddleware(m *SessionManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
				session, err := m.store.FindSessionByID(ctx, cookie.Value)
				switch {
				case err == nil && !session.Expired(m.now()):
					next.ServeHTTP(w, r.WithContext(utils.WithSession(ctx, session)))
					return
				case err == nil:
					_ = m.store.DeleteSession(ctx, session.SessionID)
				case !errors.Is(err, common.ErrNotFound):
					log.Printf("[session] lookup failed: %v", err)
					http.Error(w, "Couldn't load session", http.StatusInternalServerError)
					return
				}
			}

			session, err := m.Start(ctx, w, utils.SessionData{})
			if err != nil {
				log.Printf("[session] start failed: %v", err)
				http.Error(w, "Couldn't start session", http.StatusInternalServerError)
				return
			}
			next.ServeHTTP(w, r.WithContext(utils.WithSession(ctx, session)))
		})
	}
}

func RequireAgeVerified(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, ok := utils.GetSessionFromContext(r.Context())
		if !ok || !session.AgeVerified {
			http.Error(w, "Age verification required", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func RequireLogin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := utils.GetUsernameFromContext(r.Context()); !ok {
			http.Error(w, "Login required", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RoleFetcher resolves the current role of a user.
type RoleFetcher interface {
	RoleOf(ctx context.Context, username string) (string, error)
}

const RoleAdmin = "admin"

func AdminMiddleware(fetcher RoleFetcher) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			username, ok := utils.GetUsernameFromContext(r.Context())
			if !ok {
				http.Error(w, "Unauthorized: login required", http.StatusUnauthorized)
				return
			}

			role, err := fetcher.RoleOf(r.Context(), username)
			if err != nil {
				http.Error(w, "Unauthorized: user not found", http.StatusUnauthorized)
				return
			}

			if role != RoleAdmin {
				http.Error(w, "Forbidden: admin access required", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func CORSMiddleware(origins []string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		allowed[o] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			// Echo the origin back only if it's on our allow-list
			if _, ok := allowed[origin]; ok {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Vary", "Origin")
				w.Header().Set("Access-Control-Allow-Credentials", "true")
				w.Header().Set("Access-Control-Allow-Methods",
					"GET, POST, PUT, PATCH, DELETE, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers",
					"Content-Type, Authorization")
			}

			w.Header().Set("Access-Control-Expose-Headers", "Retry-After")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

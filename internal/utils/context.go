package utils

import (
	"context"
	"time"
)

type contextKey string

const ContextSessionKey contextKey = "session"

// SessionData is the per-connection state carried by every request.
// An empty Username means the visitor has not logged in.
type SessionData struct {
	SessionID   string
	Username    string
	AgeVerified bool
	ExpiresAt   time.Time
}

func (s SessionData) LoggedIn() bool {
	return s.Username != ""
}

func (s SessionData) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && s.ExpiresAt.Before(now)
}

func WithSession(ctx context.Context, s SessionData) context.Context {
	return context.WithValue(ctx, ContextSessionKey, s)
}

func GetSessionFromContext(ctx context.Context) (SessionData, bool) {
	s, ok := ctx.Value(ContextSessionKey).(SessionData)
	return s, ok
}

// GetUsernameFromContext returns the logged-in username, if any.
func GetUsernameFromContext(ctx context.Context) (string, bool) {
	s, ok := GetSessionFromContext(ctx)
	if !ok || !s.LoggedIn() {
		return "", false
	}
	return s.Username, true
}

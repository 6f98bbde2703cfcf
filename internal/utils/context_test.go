package utils_test

import (
	"context"
	"testing"
	"time"

	"github.com/PrivatePlace/PP-Backend/internal/utils"
	"github.com/stretchr/testify/assert"
)

func TestGetUsernameFromContext_Anonymous(t *testing.T) {
	ctx := utils.WithSession(context.Background(), utils.SessionData{SessionID: "s1"})

	_, ok := utils.GetUsernameFromContext(ctx)
	assert.False(t, ok)

	s, ok := utils.GetSessionFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, "s1", s.SessionID)
}

func TestGetUsernameFromContext_LoggedIn(t *testing.T) {
	ctx := utils.WithSession(context.Background(), utils.SessionData{SessionID: "s1", Username: "alice"})

	name, ok := utils.GetUsernameFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, "alice", name)
}

func TestSessionData_Expired(t *testing.T) {
	now := time.Now()
	assert.False(t, utils.SessionData{}.Expired(now))
	assert.True(t, utils.SessionData{ExpiresAt: now.Add(-time.Minute)}.Expired(now))
	assert.False(t, utils.SessionData{ExpiresAt: now.Add(time.Minute)}.Expired(now))
}

package sessions

import (
	"context"
	"testing"
	"time"

	"github.com/PrivatePlace/PP-Backend/internal/common"
	"github.com/PrivatePlace/PP-Backend/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_SaveFindDelete(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	s := utils.SessionData{SessionID: "abc", Username: "alice", AgeVerified: true, ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, store.SaveSession(ctx, s))

	got, err := store.FindSessionByID(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, s, got)

	require.NoError(t, store.DeleteSession(ctx, "abc"))
	_, err = store.FindSessionByID(ctx, "abc")
	assert.ErrorIs(t, err, common.ErrNotFound)
	assert.ErrorIs(t, store.DeleteSession(ctx, "abc"), common.ErrNotFound)
}

func TestMemoryStore_ExpiredIsDropped(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	now := time.Now()
	store.now = func() time.Time { return now }
	require.NoError(t, store.SaveSession(ctx, utils.SessionData{SessionID: "old", ExpiresAt: now.Add(-time.Second)}))

	_, err := store.FindSessionByID(ctx, "old")
	assert.ErrorIs(t, err, common.ErrNotFound)
	assert.Equal(t, 0, store.Len())
}

package seeds

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/PrivatePlace/PP-Backend/internal/ads"
	"github.com/PrivatePlace/PP-Backend/internal/auth"
	"github.com/PrivatePlace/PP-Backend/internal/filestore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestSeedAll_DemoFileIsIdempotent(t *testing.T) {
	ctx := context.Background()
	f, err := Load(filepath.Join("data", "demo.yaml"))
	require.NoError(t, err)

	store, err := filestore.Open(t.TempDir())
	require.NoError(t, err)
	svc := auth.NewService(store, "admin", bcrypt.MinCost)

	c, err := SeedAll(ctx, f, svc, store)
	require.NoError(t, err)
	assert.Equal(t, Counts{Users: 2, Ads: 2}, c)
	assert.True(t, svc.IsAdmin(ctx, "admin"))

	approved, err := store.ListByStatus(ctx, ads.StatusApproved)
	require.NoError(t, err)
	require.Len(t, approved, 1)
	assert.Equal(t, "Hello", approved[0].Title)

	c, err = SeedAll(ctx, f, svc, store)
	require.NoError(t, err)
	assert.Equal(t, Counts{SkippedUsers: 2, SkippedAds: 2}, c)
}

func TestSeedAll_RejectsBadStatus(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ads:\n  - id: x\n    status: archived\n"), 0o600))

	f, err := Load(path)
	require.NoError(t, err)

	store, err := filestore.Open(t.TempDir())
	require.NoError(t, err)
	_, err = SeedAll(ctx, f, auth.NewService(store, "", bcrypt.MinCost), store)
	assert.Error(t, err)
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

package sessions

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/PrivatePlace/PP-Backend/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newGormWithMock(t *testing.T) (*GormStore, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	return NewGormStore(gdb), mock
}

func TestGormStore_FindSessionByID(t *testing.T) {
	store, mock := newGormWithMock(t)
	exp := time.Now().Add(time.Hour).UTC()

	rows := sqlmock.NewRows([]string{"session_id", "username", "age_verified", "expires_at"}).
		AddRow("sid", "alice", true, exp)
	mock.ExpectQuery(`SELECT \* FROM "privateplace"\."sessions" WHERE session_id = \$1`).
		WillReturnRows(rows)

	got, err := store.FindSessionByID(context.Background(), "sid")
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)
	assert.True(t, got.AgeVerified)
	assert.True(t, got.ExpiresAt.Equal(exp))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStore_FindSessionByID_NotFound(t *testing.T) {
	store, mock := newGormWithMock(t)

	mock.ExpectQuery(`SELECT \* FROM "privateplace"\."sessions"`).
		WillReturnRows(sqlmock.NewRows([]string{"session_id"}))

	_, err := store.FindSessionByID(context.Background(), "missing")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestGormStore_DeleteSession_NotFound(t *testing.T) {
	store, mock := newGormWithMock(t)

	mock.ExpectExec(`DELETE FROM "privateplace"\."sessions" WHERE session_id = \$1`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := store.DeleteSession(context.Background(), "missing")
	assert.ErrorIs(t, err, common.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

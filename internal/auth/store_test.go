package auth

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/PrivatePlace/PP-Backend/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockUserStore(t *testing.T) (*GormUserStore, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	require.NoError(t, err)
	return NewGormUserStore(gdb), mock
}

func TestGormUserStore_FindUser(t *testing.T) {
	store, mock := newMockUserStore(t)

	mock.ExpectQuery(`SELECT \* FROM "privateplace"\."users" WHERE username = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"username", "name", "age", "location", "looking_for", "password_hash", "role"}).
			AddRow("alice", "Alice", 25, "Paris", "friends", "hash", "user"))

	u, err := store.FindUser(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "Paris", u.Location)
	assert.False(t, u.IsAdmin())

	mock.ExpectQuery(`SELECT \* FROM "privateplace"\."users"`).
		WillReturnRows(sqlmock.NewRows([]string{"username"}))
	_, err = store.FindUser(context.Background(), "bob")
	assert.ErrorIs(t, err, common.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGormUserStore_SetRole(t *testing.T) {
	store, mock := newMockUserStore(t)

	mock.ExpectExec(`UPDATE "privateplace"\."users" SET "role"=\$1 WHERE username = \$2`).
		WithArgs("admin", "alice").
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, store.SetRole(context.Background(), "alice", RoleAdmin))

	mock.ExpectExec(`UPDATE "privateplace"\."users"`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, store.SetRole(context.Background(), "ghost", RoleAdmin), common.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGormUserStore_CreateUser(t *testing.T) {
	store, mock := newMockUserStore(t)

	mock.ExpectExec(`INSERT INTO "privateplace"\."users"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, store.CreateUser(context.Background(), &User{Username: "alice", Role: RoleUser}))
	require.NoError(t, mock.ExpectationsWereMet())
}

package main

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/PrivatePlace/PP-Backend/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetRole(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT role FROM privateplace\.users WHERE username = \$1 FOR UPDATE`).
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"role"}).AddRow("user"))
	mock.ExpectExec(`UPDATE privateplace\.users SET role = \$1 WHERE username = \$2`).
		WithArgs("admin", "alice").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	prev, err := setRole(context.Background(), conn, "alice", "admin")
	require.NoError(t, err)
	assert.Equal(t, "user", prev)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSetRole_UnknownUser(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT role FROM`).
		WillReturnRows(sqlmock.NewRows([]string{"role"}))
	mock.ExpectRollback()

	_, err = setRole(context.Background(), conn, "ghost", "admin")
	assert.ErrorIs(t, err, common.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

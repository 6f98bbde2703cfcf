// Command promote grants or revokes the admin role for an existing user.
//
//	go run ./cmd/promote --user alice
//	go run ./cmd/promote --user alice --revoke
//	go run ./cmd/promote --user alice --data-dir ./data
package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/PrivatePlace/PP-Backend/internal/auth"
	"github.com/PrivatePlace/PP-Backend/internal/common"
	"github.com/PrivatePlace/PP-Backend/internal/db"
	"github.com/PrivatePlace/PP-Backend/internal/filestore"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
)

var (
	username = flag.String("user", "", "Username to change (required)")
	revoke   = flag.Bool("revoke", false, "Demote to a regular user instead of promoting")
	dsn      = flag.String("dsn", "", "Postgres DSN (default: env DATABASE_URL)")
	dataDir  = flag.String("data-dir", "", "Use the flat-file store in this directory instead of postgres")
)

func main() {
	_ = godotenv.Load(".env.local")
	flag.Parse()
	if *username == "" {
		fatalf("--user is required")
	}

	role := auth.RoleAdmin
	if *revoke {
		role = auth.RoleUser
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if *dataDir != "" {
		store, err := filestore.Open(*dataDir)
		if err != nil {
			fatalf("open data dir: %v", err)
		}
		if err := store.SetRole(ctx, *username, role); err != nil {
			fatalf("set role: %v", err)
		}
		fmt.Printf("%s is now %s\n", *username, role)
		return
	}

	if *dsn == "" {
		*dsn = os.Getenv("DATABASE_URL")
	}
	if *dsn == "" {
		fatalf("--dsn not provided and DATABASE_URL not set")
	}

	conn, err := sql.Open("pgx", *dsn)
	if err != nil {
		fatalf("connect: %v", err)
	}
	defer conn.Close()

	if err := conn.PingContext(ctx); err != nil {
		fatalf("ping: %v", err)
	}

	prev, err := setRole(ctx, conn, *username, role)
	if errors.Is(err, common.ErrNotFound) {
		fatalf("no user named %q", *username)
	}
	if err != nil {
		fatalf("set role: %v", err)
	}
	fmt.Printf("%s: %s -> %s\n", *username, prev, role)
}

// setRole updates the role in one transaction and returns the previous value.
func setRole(ctx context.Context, conn *sql.DB, username, role string) (string, error) {
	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback() // no-op if already committed
	}()

	var prev string
	err = tx.QueryRowContext(ctx,
		`SELECT role FROM `+db.Schema+`.users WHERE username = $1 FOR UPDATE`, username).Scan(&prev)
	if errors.Is(err, sql.ErrNoRows) {
		return "", common.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("lookup: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE `+db.Schema+`.users SET role = $1 WHERE username = $2`, role, username); err != nil {
		return "", fmt.Errorf("update: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}
	return prev, nil
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}

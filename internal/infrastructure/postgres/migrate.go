package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ErlanBelekov/grocery-api/internal/infrastructure/postgres/migrations"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// goose entry points, swapped out in tests.
var (
	gooseUp = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return goose.UpContext(ctx, db, dir, opts...)
	}
	gooseDown = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return goose.DownContext(ctx, db, dir, opts...)
	}
	gooseStatus = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return goose.StatusContext(ctx, db, dir, opts...)
	}
)

var openDB = stdlib.OpenDBFromPool

// Migrate applies all pending migrations using a database/sql view of the pool.
// The view is closed before returning; the pool itself stays open.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	db := openDB(pool)
	defer db.Close()
	return RunMigrations(ctx, db, "up")
}

// RunMigrations runs a goose command ("up", "down" or "status") against the embedded migrations.
func RunMigrations(ctx context.Context, db *sql.DB, command string) error {
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	var err error
	switch command {
	case "up":
		err = gooseUp(ctx, db, ".")
	case "down":
		err = gooseDown(ctx, db, ".")
	case "status":
		err = gooseStatus(ctx, db, ".")
	default:
		return fmt.Errorf("unknown migration command %q", command)
	}
	if err != nil {
		return fmt.Errorf("migrate %s: %w", command, err)
	}
	return nil
}

package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/ErlanBelekov/grocery-api/internal/infrastructure/postgres/migrations"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

func newMockDB(t *testing.T) *sql.DB {
	t.Helper()
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func stubGoose(t *testing.T, called *string, err error) {
	t.Helper()
	origUp, origDown, origStatus := gooseUp, gooseDown, gooseStatus
	t.Cleanup(func() { gooseUp, gooseDown, gooseStatus = origUp, origDown, origStatus })

	stub := func(name string) func(context.Context, *sql.DB, string, ...goose.OptionsFunc) error {
		return func(_ context.Context, _ *sql.DB, dir string, _ ...goose.OptionsFunc) error {
			if dir != "." {
				return errors.New("unexpected dir " + dir)
			}
			*called = name
			return err
		}
	}
	gooseUp, gooseDown, gooseStatus = stub("up"), stub("down"), stub("status")
}

func TestRunMigrations_Dispatch(t *testing.T) {
	for _, cmd := range []string{"up", "down", "status"} {
		t.Run(cmd, func(t *testing.T) {
			var called string
			stubGoose(t, &called, nil)

			if err := RunMigrations(context.Background(), newMockDB(t), cmd); err != nil {
				t.Fatalf("RunMigrations(%q): %v", cmd, err)
			}
			if called != cmd {
				t.Fatalf("called %q, want %q", called, cmd)
			}
		})
	}
}

func TestRunMigrations_UnknownCommand(t *testing.T) {
	var called string
	stubGoose(t, &called, nil)

	if err := RunMigrations(context.Background(), newMockDB(t), "redo"); err == nil {
		t.Fatal("expected error for unknown command")
	}
	if called != "" {
		t.Fatalf("goose should not run, got %q", called)
	}
}

func TestRunMigrations_Error(t *testing.T) {
	var called string
	boom := errors.New("boom")
	stubGoose(t, &called, boom)

	err := RunMigrations(context.Background(), newMockDB(t), "up")
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
}

func TestMigrate_ClosesDB(t *testing.T) {
	var called string
	stubGoose(t, &called, nil)

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	mock.ExpectClose()

	origOpen := openDB
	t.Cleanup(func() { openDB = origOpen })
	openDB = func(*pgxpool.Pool, ...stdlib.OptionOpenDB) *sql.DB { return db }

	if err := Migrate(context.Background(), nil); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	if called != "up" {
		t.Fatalf("called %q, want up", called)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("db not closed: %v", err)
	}
}

func TestMigrationsEmbedded(t *testing.T) {
	goose.SetBaseFS(migrations.FS)
	t.Cleanup(func() { goose.SetBaseFS(nil) })

	found, err := goose.CollectMigrations(".", 0, goose.MaxVersion)
	if err != nil {
		t.Fatalf("collect migrations: %v", err)
	}
	if len(found) != 2 {
		t.Fatalf("got %d migrations, want 2", len(found))
	}
}

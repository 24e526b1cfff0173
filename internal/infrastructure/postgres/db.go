package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/ErlanBelekov/grocery-api/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewPool(ctx context.Context, databaseURL string, maxConns int32) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse db config: %w", err)
	}

	cfg.MaxConns = maxConns
	cfg.MinConns = min(2, maxConns)
	cfg.MaxConnLifetime = 1 * time.Hour
	cfg.MaxConnIdleTime = 30 * time.Minute
	cfg.HealthCheckPeriod = 30 * time.Second
	cfg.ConnConfig.ConnectTimeout = 5 * time.Second

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}

	return pool, nil
}

// Querier is the subset of pgx shared by *pgxpool.Conn, *pgxpool.Pool and pgx.Tx.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Runner executes fn on a pooled connection. Rows must be fully read before fn returns.
type Runner interface {
	Run(ctx context.Context, fn func(ctx context.Context, q Querier) error) error
}

// DB bounds the wait for a free connection and detaches dispatched statements from
// request cancellation: a caller can give up waiting for the pool, but not abort a
// statement that is already running.
type DB struct {
	pool           *pgxpool.Pool
	acquireTimeout time.Duration
}

func NewDB(pool *pgxpool.Pool, acquireTimeout time.Duration) *DB {
	return &DB{pool: pool, acquireTimeout: acquireTimeout}
}

func (db *DB) Run(ctx context.Context, fn func(ctx context.Context, q Querier) error) error {
	acquireCtx, cancel := context.WithTimeout(ctx, db.acquireTimeout)
	conn, err := db.pool.Acquire(acquireCtx)
	cancel()
	if err != nil {
		return domain.NewDatabaseError("acquire connection", err)
	}
	defer conn.Release()

	return fn(context.WithoutCancel(ctx), conn)
}

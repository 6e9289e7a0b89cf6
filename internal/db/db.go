// Package db owns the Postgres connection pool and the schema the service
// expects at startup.
package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"blogapi/internal/apperr"
)

// Querier is the subset of pgx shared by *pgxpool.Pool and pgx.Tx, so
// repositories can run inside or outside a transaction.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// ClassifyError maps low-level store failures onto the service error taxonomy:
// timeouts and cancellations are transient and worth a caller-level retry,
// anything else surfaces as an internal failure.
func ClassifyError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return apperr.New(apperr.ErrTransient, "store unavailable")
	}
	return fmt.Errorf("db error: %w", err)
}

// New connects to Postgres, verifies the connection, and ensures the schema.
func New(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := ensureSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

func ensureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if err := ensureUsersTable(ctx, pool); err != nil {
		return err
	}
	return ensurePostsTable(ctx, pool)
}

func ensureUsersTable(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS users (
			id         UUID PRIMARY KEY,
			firstname  TEXT NOT NULL,
			lastname   TEXT NOT NULL,
			email      TEXT NOT NULL UNIQUE,
			password   TEXT NOT NULL,
			post_ids   UUID[] NOT NULL DEFAULT '{}',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`)
	if err != nil {
		return fmt.Errorf("ensure users table: %w", err)
	}
	return nil
}

func ensurePostsTable(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS posts (
			id          UUID PRIMARY KEY,
			seq         BIGSERIAL,
			title       TEXT NOT NULL,
			description TEXT NOT NULL,
			tags        TEXT[] NOT NULL DEFAULT '{}',
			body        TEXT NOT NULL,
			author      TEXT NOT NULL,
			author_id   UUID NOT NULL REFERENCES users(id),
			state       TEXT NOT NULL DEFAULT 'draft' CHECK (state IN ('draft', 'published')),
			read_count  INTEGER NOT NULL DEFAULT 0,
			read_time   INTEGER NOT NULL DEFAULT 0,
			created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
		)`)
	if err != nil {
		return fmt.Errorf("ensure posts table: %w", err)
	}
	_, err = pool.Exec(ctx, `
		CREATE INDEX IF NOT EXISTS idx_posts_state_seq ON posts(state, seq);
		CREATE INDEX IF NOT EXISTS idx_posts_author ON posts(author_id)`)
	if err != nil {
		return fmt.Errorf("ensure posts indexes: %w", err)
	}
	return nil
}

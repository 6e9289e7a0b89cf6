package users

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"blogapi/internal/apperr"
	"blogapi/internal/db"
)

// Postgres error codes: unique_violation, invalid_text_representation.
const (
	uniqueViolation = "23505"
	invalidTextRep  = "22P02"
)

type PostgresRepository struct {
	db db.Querier
}

func NewPostgresRepository(q db.Querier) *PostgresRepository {
	return &PostgresRepository{db: q}
}

func (r *PostgresRepository) Create(ctx context.Context, user *User) (*User, error) {
	err := r.db.QueryRow(ctx, `
		INSERT INTO users (id, firstname, lastname, email, password)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at`,
		user.ID, user.Firstname, user.Lastname, user.Email, user.Password,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, apperr.New(apperr.ErrConflict, "user already exists")
		}
		return nil, db.ClassifyError(err)
	}
	return user, nil
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	return r.get(ctx, `WHERE email = $1`, email)
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*User, error) {
	return r.get(ctx, `WHERE id = $1`, id)
}

func (r *PostgresRepository) get(ctx context.Context, where string, arg any) (*User, error) {
	user := &User{}
	err := r.db.QueryRow(ctx, `
		SELECT id, firstname, lastname, email, password, post_ids, created_at, updated_at
		FROM users `+where,
		arg,
	).Scan(&user.ID, &user.Firstname, &user.Lastname, &user.Email, &user.Password,
		&user.PostIDs, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.New(apperr.ErrNotFound, "user not found")
		}
		// A malformed id can never match a row; report it like an absent one.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == invalidTextRep {
			return nil, apperr.New(apperr.ErrNotFound, "user not found")
		}
		return nil, db.ClassifyError(err)
	}
	return user, nil
}

package postgres

import (
	"context"
	"errors"

	"github.com/ErlanBelekov/grocery-api/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	uniqueViolation = "23505"
	userColumns     = `id, email, password_hash, created_at, updated_at`
)

type UserRepository struct {
	db Runner
}

func NewUserRepository(db Runner) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, email, passwordHash string) (*domain.User, error) {
	var u *domain.User
	err := r.db.Run(ctx, func(ctx context.Context, q Querier) error {
		var err error
		u, err = scanUser(q.QueryRow(ctx,
			`INSERT INTO users (email, password_hash) VALUES ($1, $2) RETURNING `+userColumns,
			email, passwordHash,
		))
		return err
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrEmailTaken
		}
		return nil, dbError("create user", err)
	}
	return u, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, "find user by email",
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.findOne(ctx, "find user by id",
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *UserRepository) findOne(ctx context.Context, op, query string, arg any) (*domain.User, error) {
	var u *domain.User
	err := r.db.Run(ctx, func(ctx context.Context, q Querier) error {
		var err error
		u, err = scanUser(q.QueryRow(ctx, query, arg))
		return err
	})
	if err != nil {
		return nil, dbError(op, err)
	}
	return u, nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// dbError passes domain errors through and wraps anything else as a database error.
func dbError(op string, err error) error {
	var de *domain.Error
	if errors.As(err, &de) {
		return err
	}
	return domain.NewDatabaseError(op, err)
}

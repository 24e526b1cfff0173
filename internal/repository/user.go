package repository

import (
	"context"

	"github.com/ErlanBelekov/grocery-api/internal/domain"
)

type UserRepository interface {
	// Create persists a new user. Returns domain.ErrEmailTaken on a unique violation.
	Create(ctx context.Context, email, passwordHash string) (*domain.User, error)
	// FindByEmail returns the user including its password hash, or domain.ErrUserNotFound.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
}

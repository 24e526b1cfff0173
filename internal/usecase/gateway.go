package usecase

import (
	"context"

	"github.com/ErlanBelekov/grocery-api/internal/domain"
	"github.com/ErlanBelekov/grocery-api/internal/token"
)

type TokenVerifier interface {
	Verify(raw string) (*token.Claims, error)
}

type UserValidator interface {
	ValidateUser(ctx context.Context, id int64) (*domain.User, error)
}

// AuthGateway resolves an Authorization header to a live user.
type AuthGateway struct {
	verifier TokenVerifier
	users    UserValidator
}

func NewAuthGateway(verifier TokenVerifier, users UserValidator) *AuthGateway {
	return &AuthGateway{verifier: verifier, users: users}
}

// Authenticate returns one of the domain authentication sentinels on any token problem,
// domain.ErrAuthenticationFailed when the subject no longer exists, or a wrapped
// storage error.
func (g *AuthGateway) Authenticate(ctx context.Context, header string) (*domain.User, error) {
	raw, err := token.ExtractBearer(header)
	if err != nil {
		return nil, err
	}
	claims, err := g.verifier.Verify(raw)
	if err != nil {
		return nil, err
	}
	return g.users.ValidateUser(ctx, claims.UserID)
}

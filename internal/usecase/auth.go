package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ErlanBelekov/grocery-api/internal/domain"
	"github.com/ErlanBelekov/grocery-api/internal/email"
	"github.com/ErlanBelekov/grocery-api/internal/metrics"
	"github.com/ErlanBelekov/grocery-api/internal/password"
	"github.com/ErlanBelekov/grocery-api/internal/repository"
	"github.com/ErlanBelekov/grocery-api/internal/token"
)

const welcomeEmailTimeout = 10 * time.Second

type PasswordHasher interface {
	Hash(plain string) (string, error)
	Compare(hash, plain string) error
	CompareDummy(plain string)
}

type TokenIssuer interface {
	Issue(userID int64, email string) (token.Pair, error)
}

// AuthResult is returned by Register and Login. User never leaves the service with
// its password hash set.
type AuthResult struct {
	User   *domain.User
	Tokens token.Pair
}

type AuthUsecase struct {
	users  repository.UserRepository
	hasher PasswordHasher
	tokens TokenIssuer
	email  email.Sender
	logger *slog.Logger

	// welcomeSent, when set, receives the result of each welcome email attempt.
	welcomeSent chan<- error
}

func NewAuthUsecase(
	users repository.UserRepository,
	hasher PasswordHasher,
	tokens TokenIssuer,
	sender email.Sender,
	logger *slog.Logger,
) *AuthUsecase {
	return &AuthUsecase{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		email:  sender,
		logger: logger.With("component", "auth"),
	}
}

type registerInput struct {
	Email    string `json:"email" validate:"required,email_shape"`
	Password string `json:"password" validate:"required,min=8,bcrypt_len"`
}

type loginInput struct {
	Email    string `json:"email" validate:"required,email_shape"`
	Password string `json:"password" validate:"required"`
}

func (u *AuthUsecase) Register(ctx context.Context, emailAddr, plain string) (*AuthResult, error) {
	if err := validateStruct(registerInput{Email: emailAddr, Password: plain}); err != nil {
		return nil, err
	}

	_, err := u.users.FindByEmail(ctx, emailAddr)
	switch {
	case err == nil:
		return nil, domain.ErrEmailTaken
	case !errors.Is(err, domain.ErrUserNotFound):
		return nil, fmt.Errorf("find user: %w", err)
	}

	hash, err := u.hasher.Hash(plain)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	user, err := u.users.Create(ctx, emailAddr, hash)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	result, err := u.issue(user)
	if err != nil {
		return nil, err
	}

	metrics.UsersRegisteredTotal.Inc()
	u.logger.InfoContext(ctx, "user registered", "user_id", user.ID)
	go u.sendWelcome(context.WithoutCancel(ctx), user.Email)

	return result, nil
}

// Login answers unknown email and wrong password with the same error, and spends one
// bcrypt comparison on either path.
func (u *AuthUsecase) Login(ctx context.Context, emailAddr, plain string) (*AuthResult, error) {
	if err := validateStruct(loginInput{Email: emailAddr, Password: plain}); err != nil {
		return nil, err
	}

	user, err := u.users.FindByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			u.hasher.CompareDummy(plain)
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if err := u.hasher.Compare(user.PasswordHash, plain); err != nil {
		if errors.Is(err, password.ErrMismatch) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login: %w", err)
	}

	return u.issue(user)
}

// ValidateUser confirms a token subject still exists.
func (u *AuthUsecase) ValidateUser(ctx context.Context, id int64) (*domain.User, error) {
	user, err := u.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrAuthenticationFailed
		}
		return nil, fmt.Errorf("validate user: %w", err)
	}
	user.PasswordHash = ""
	return user, nil
}

func (u *AuthUsecase) issue(user *domain.User) (*AuthResult, error) {
	pair, err := u.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("issue tokens: %w", err)
	}
	user.PasswordHash = ""
	return &AuthResult{User: user, Tokens: pair}, nil
}

func (u *AuthUsecase) sendWelcome(ctx context.Context, addr string) {
	ctx, cancel := context.WithTimeout(ctx, welcomeEmailTimeout)
	defer cancel()

	err := email.SendWelcome(ctx, u.email, addr)
	if err != nil {
		u.logger.WarnContext(ctx, "welcome email failed", "error", err)
	}
	if u.welcomeSent != nil {
		u.welcomeSent <- err
	}
}

// Package token issues and verifies the signed bearer tokens handed out at login.
package token

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ErlanBelekov/grocery-api/internal/domain"
	"github.com/golang-jwt/jwt/v5"
)

const bearerScheme = "Bearer"

// Claims is the payload shared by access and refresh tokens.
type Claims struct {
	UserID int64  `json:"userId"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// Pair is produced on every successful register/login. Both tokens carry the same claims
// and differ only in expiry.
type Pair struct {
	AccessToken  string
	RefreshToken string
}

type Service struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewService(secret []byte, accessTTL, refreshTTL time.Duration) *Service {
	return &Service{secret: secret, accessTTL: accessTTL, refreshTTL: refreshTTL}
}

func (s *Service) Issue(userID int64, email string) (Pair, error) {
	now := time.Now()

	access, err := s.sign(userID, email, now, s.accessTTL)
	if err != nil {
		return Pair{}, fmt.Errorf("sign access token: %w", err)
	}
	refresh, err := s.sign(userID, email, now, s.refreshTTL)
	if err != nil {
		return Pair{}, fmt.Errorf("sign refresh token: %w", err)
	}
	return Pair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *Service) sign(userID int64, email string, issuedAt time.Time, ttl time.Duration) (string, error) {
	claims := Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify checks signature and expiry. It returns domain.ErrTokenExpired for an expired but
// otherwise valid token and domain.ErrTokenInvalid for everything else.
func (s *Service) Verify(raw string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}
	if claims.UserID <= 0 || claims.Subject != strconv.FormatInt(claims.UserID, 10) {
		return nil, domain.ErrTokenInvalid
	}
	return claims, nil
}

// ExtractBearer returns the token from an Authorization header of the exact form "Bearer <token>".
func ExtractBearer(header string) (string, error) {
	if header == "" {
		return "", domain.ErrAuthHeaderMissing
	}
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != bearerScheme || parts[1] == "" {
		return "", domain.ErrAuthHeaderMalformed
	}
	return parts[1], nil
}

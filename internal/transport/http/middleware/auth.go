package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/ErlanBelekov/grocery-api/internal/domain"
	ctxlog "github.com/ErlanBelekov/grocery-api/internal/log"
	"github.com/ErlanBelekov/grocery-api/internal/metrics"
	"github.com/gin-gonic/gin"
)

const errUnauthorized = "Unauthorized"

// Keys under which Auth stores the resolved user in the gin context.
const (
	UserKey   = "user"
	UserIDKey = "userID"
)

type Authenticator interface {
	Authenticate(ctx context.Context, header string) (*domain.User, error)
}

// Auth resolves the bearer token to a user and sets "user" and "userID" in the gin context.
// Every failure is answered with the same 401 body; the reason is only logged and counted.
func Auth(auth Authenticator, logger *slog.Logger) gin.HandlerFunc {
	logger = logger.With("component", "auth_middleware")

	return func(c *gin.Context) {
		ctx := c.Request.Context()

		user, err := auth.Authenticate(ctx, c.GetHeader("Authorization"))
		if err != nil {
			reason := failureReason(err)
			metrics.AuthFailuresTotal.WithLabelValues(reason).Inc()
			if reason == "error" {
				logger.ErrorContext(ctx, "authenticate request", "error", err)
			} else {
				logger.DebugContext(ctx, "request rejected", "reason", reason)
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errUnauthorized})
			return
		}

		c.Set(UserKey, user)
		c.Set(UserIDKey, user.ID)
		c.Request = c.Request.WithContext(ctxlog.WithUserID(ctx, user.ID))
		c.Next()
	}
}

// UserID returns the id stored by Auth. Only valid behind Auth.
func UserID(c *gin.Context) int64 {
	return c.GetInt64(UserIDKey)
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrAuthHeaderMissing):
		return "missing_header"
	case errors.Is(err, domain.ErrAuthHeaderMalformed):
		return "malformed_header"
	case errors.Is(err, domain.ErrTokenExpired):
		return "token_expired"
	case errors.Is(err, domain.ErrTokenInvalid):
		return "token_invalid"
	case errors.Is(err, domain.ErrAuthenticationFailed):
		return "unknown_user"
	default:
		return "error"
	}
}

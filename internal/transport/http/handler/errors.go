package handler

import (
	"log/slog"
	"net/http"

	"github.com/ErlanBelekov/grocery-api/internal/domain"
	"github.com/gin-gonic/gin"
)

const (
	errInternalServer = "Internal server error"
	errInvalidBody    = "Invalid request body"
	errInvalidItemID  = "Invalid item ID"
	errInvalidBool    = "isPurchased must be true or false"
)

var kindStatus = map[domain.Kind]int{
	domain.KindValidation:     http.StatusBadRequest,
	domain.KindAuthentication: http.StatusUnauthorized,
	domain.KindConflict:       http.StatusConflict,
	domain.KindNotFound:       http.StatusNotFound,
	domain.KindDatabase:       http.StatusInternalServerError,
	domain.KindInternal:       http.StatusInternalServerError,
}

// StatusFor maps an error kind to its HTTP status.
func StatusFor(kind domain.Kind) int {
	if status, ok := kindStatus[kind]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// respondError writes err as {"error": ...}. Server-side failures are logged with
// detail and answered with a generic message.
func respondError(c *gin.Context, logger *slog.Logger, op string, err error) {
	kind := domain.KindOf(err)
	status := StatusFor(kind)
	if status >= http.StatusInternalServerError {
		logger.ErrorContext(c.Request.Context(), op, "kind", kind.String(), "error", err)
		c.JSON(status, gin.H{"error": errInternalServer})
		return
	}
	c.JSON(status, gin.H{"error": domain.MessageOf(err)})
}

package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/ErlanBelekov/grocery-api/internal/transport/http/handler"
	"github.com/ErlanBelekov/grocery-api/internal/transport/http/middleware"
	"github.com/gin-gonic/gin"

	sloggin "github.com/samber/slog-gin"
)

func NewRouter(
	logger *slog.Logger,
	isDevelopment bool,
	authenticator middleware.Authenticator,
	authHandler *handler.AuthHandler,
	itemHandler *handler.ItemHandler,
	healthHandler *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.ErrorContext(c.Request.Context(), "panic recovered", "panic", recovered)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}))
	r.Use(middleware.RequestID())
	r.Use(middleware.Security(middleware.SecureOptions(isDevelopment)))
	r.Use(sloggin.New(logger))
	r.Use(middleware.Metrics())

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
	})

	api := r.Group("/api")
	api.GET("/health", healthHandler.Check)

	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	// Protected item routes
	items := api.Group("/grocery-items", middleware.Auth(authenticator, logger))
	items.GET("", itemHandler.List)
	items.POST("", itemHandler.Create)
	items.GET("/:id", itemHandler.GetByID)
	items.PUT("/:id", itemHandler.Update)
	items.DELETE("/:id", itemHandler.Delete)
	items.POST("/:id/purchased", itemHandler.MarkPurchased)
	items.DELETE("/:id/purchased", itemHandler.MarkNotPurchased)

	return r
}

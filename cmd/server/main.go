package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ErlanBelekov/grocery-api/config"
	"github.com/ErlanBelekov/grocery-api/internal/email"
	"github.com/ErlanBelekov/grocery-api/internal/health"
	"github.com/ErlanBelekov/grocery-api/internal/infrastructure/postgres"
	ctxlog "github.com/ErlanBelekov/grocery-api/internal/log"
	"github.com/ErlanBelekov/grocery-api/internal/metrics"
	"github.com/ErlanBelekov/grocery-api/internal/password"
	"github.com/ErlanBelekov/grocery-api/internal/token"
	httptransport "github.com/ErlanBelekov/grocery-api/internal/transport/http"
	"github.com/ErlanBelekov/grocery-api/internal/transport/http/handler"
	"github.com/ErlanBelekov/grocery-api/internal/usecase"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := ctxlog.New(os.Stdout, cfg.Env, cfg.SlogLevel())

	if cfg.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns)
	if err != nil {
		stop()
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()

	if cfg.AutoMigrate {
		if err := postgres.Migrate(ctx, pool); err != nil {
			stop()
			pool.Close()
			log.Fatalf("migrate: %v", err)
		}
		logger.Info("migrations applied")
	}

	db := postgres.NewDB(pool, cfg.DBAcquireTimeout)

	// Users
	userRepo := postgres.NewUserRepository(db)
	tokens := token.NewService([]byte(cfg.JWTSecret), cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	sender := email.NewSender(cfg.Env, cfg.ResendAPIKey, cfg.ResendFrom, logger)
	authUsecase := usecase.NewAuthUsecase(userRepo, password.NewBcryptHasher(cfg.BcryptCost), tokens, sender, logger)
	authHandler := handler.NewAuthHandler(authUsecase, logger)
	gateway := usecase.NewAuthGateway(tokens, authUsecase)

	// Items
	itemRepo := postgres.NewItemRepository(db)
	itemUsecase := usecase.NewItemUsecase(itemRepo)
	itemHandler := handler.NewItemHandler(itemUsecase, logger)

	metrics.Register()
	checker := health.NewChecker(pool, logger, prometheus.DefaultRegisterer)
	healthHandler := handler.NewHealthHandler(checker)

	srv := http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           httptransport.NewRouter(logger, cfg.Env == "local", gateway, authHandler, itemHandler, healthHandler),
		ReadHeaderTimeout: 10 * time.Second,
	}

	metricsSrv := metrics.NewServer(":" + cfg.MetricsPort)

	go func() {
		logger.Info("server started", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	go func() {
		logger.Info("metrics server started", "port", cfg.MetricsPort)
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", "error", err)
		}
	}()

	<-ctx.Done()
	stop()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "error", err)
	}
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics server shutdown", "error", err)
	}
}

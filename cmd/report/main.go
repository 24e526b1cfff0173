// report prints usage analytics across all users: the most frequently added items,
// the store distribution and per-user statistics.
// Run: go run ./cmd/report [-format text|json] [-top 5] [-schedule "0 6 * * *"]
package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ErlanBelekov/grocery-api/internal/analytics"
	"github.com/ErlanBelekov/grocery-api/internal/infrastructure/postgres"
	ctxlog "github.com/ErlanBelekov/grocery-api/internal/log"
	"github.com/ErlanBelekov/grocery-api/internal/metrics"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
)

func main() {
	var (
		format      = flag.String("format", "text", "output format: text or json")
		top         = flag.Int("top", analytics.DefaultTopN, "number of top items to include")
		schedule    = flag.String("schedule", "", "cron expression; when set, run periodically until interrupted")
		metricsAddr = flag.String("metrics-addr", ":9091", "metrics listen address in -schedule mode")
	)
	flag.Parse()

	if *format != "text" && *format != "json" {
		log.Fatalf("unknown format %q", *format)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("load .env: %v", err)
	}
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}
	env := os.Getenv("ENV")
	if env == "" {
		env = "local"
	}
	logger := ctxlog.New(os.Stderr, env, ctxlog.ParseLevel(os.Getenv("LOG_LEVEL")))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, dbURL, 2)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer pool.Close()

	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	reporter := analytics.NewReporter(analytics.NewStore(db), *top)
	write := analytics.WriteText
	if *format == "json" {
		write = analytics.WriteJSON
	}
	run := func(ctx context.Context) error {
		rep, err := reporter.Build(ctx)
		if err != nil {
			return err
		}
		return write(os.Stdout, rep)
	}

	if *schedule == "" {
		if err := run(ctx); err != nil {
			logger.Error("build report", "error", err)
			os.Exit(1)
		}
		return
	}

	sched, err := analytics.NewScheduler(*schedule, run, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	metrics.Register()
	metricsSrv := metrics.NewServer(*metricsAddr)
	go func() {
		logger.Info("metrics server started", "addr", *metricsAddr)
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", "error", err)
		}
	}()

	sched.Start(ctx)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics server shutdown", "error", err)
	}
}

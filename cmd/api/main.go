// Package main is the entry point for the Centsible API server.
// Its sole responsibility is wiring dependencies together and starting the
// server. No business logic belongs here.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/centsible/backend/internal/config"
	"github.com/centsible/backend/internal/handler"
	"github.com/centsible/backend/internal/middleware"
	"github.com/centsible/backend/internal/repo"
	"github.com/centsible/backend/internal/service"
	"github.com/centsible/backend/internal/tagsync"
)

// maxBodySize caps incoming request bodies at 1 MiB — generous for JSON
// expense payloads, small enough to shrug off abuse.
const maxBodySize = 1 << 20

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	// log/slog JSON handler writes machine-readable output suitable for log
	// aggregators.
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- Database ---------------------------------------------------------
	// Two pools: the identity-scoped one carries all normal traffic, the
	// elevated one exists only for the tag sync fallback path. When no
	// elevated DSN is configured both point at the same database role.
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := pool.Ping(context.Background()); err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	elevatedPool := pool
	if cfg.ElevatedDatabaseURL != cfg.DatabaseURL {
		elevatedPool, err = pgxpool.New(context.Background(), cfg.ElevatedDatabaseURL)
		if err != nil {
			slog.Error("failed to create elevated database pool", "error", err)
			os.Exit(1)
		}
		defer elevatedPool.Close()
	}
	slog.Info("database connection established")

	// --- Tag sync ---------------------------------------------------------
	executor := tagsync.NewExecutor(
		repo.NewTagStore(pool),
		repo.NewTagStore(elevatedPool),
		tagsync.Policy{MaxRetries: cfg.TagSyncMaxRetries, InitialDelay: cfg.TagSyncInitialDelay},
		logger,
	)
	syncer := tagsync.NewSyncer(executor, logger)

	// --- Services ---------------------------------------------------------
	expenseRepo := repo.NewExpenseRepo(pool)
	categoryRepo := repo.NewCategoryRepo(pool)
	tagRepo := repo.NewTagRepo(pool)

	server := handler.NewServer(
		service.NewExpenseService(expenseRepo, categoryRepo, syncer),
		service.NewCategoryService(categoryRepo),
		service.NewTagService(tagRepo),
		service.NewSummaryService(repo.NewSummaryRepo(pool)),
		service.NewExportService(expenseRepo, categoryRepo, tagRepo),
	)

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger → Recoverer.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(maxBodySize))

	r.Mount("/", server.Routes())

	// --- HTTP Server ------------------------------------------------------
	// Explicit timeouts prevent slowloris and resource exhaustion attacks.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

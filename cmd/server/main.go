package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ozcitizen/backend/internal/api"
	"github.com/ozcitizen/backend/internal/auth"
	"github.com/ozcitizen/backend/internal/infrastructure/bootstrap"
	"github.com/ozcitizen/backend/internal/infrastructure/config"
	"github.com/ozcitizen/backend/internal/scheduler"

	_ "github.com/ozcitizen/backend/docs" // generated swagger docs
)

// @title           OzCitizen API
// @version         1.0
// @description     Australian citizenship test practice: quizzes, progress statistics, term lookups.

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey  DeviceToken
// @in                          header
// @name                        Authorization

// @securityDefinitions.apikey  AdminToken
// @in                          header
// @name                        Authorization

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	// ── Dependencies ────────────────────────────────────────────────
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	deps, err := bootstrap.Open(ctx, cfg, logger)
	cancel()
	if err != nil {
		logger.Error("failed to start", "error", err)
		os.Exit(1)
	}
	defer deps.Close()

	authSvc, err := auth.NewService(cfg.TokenSecret, cfg.TokenTTL)
	if err != nil {
		logger.Error("TOKEN_SECRET must be set", "error", err)
		os.Exit(1)
	}

	sched := scheduler.New(cfg.Timezone, logger)
	if deps.KVCache != nil {
		if err := sched.AddSweep("analysis-cache", cfg.CacheSweep, deps.KVCache, time.Minute); err != nil {
			logger.Error("failed to schedule cache sweep", "error", err)
			os.Exit(1)
		}
	}
	sched.Start()

	handler := api.NewHandler(deps.Registry, deps.Terms, deps.Analysis, authSvc, logger)
	router := api.NewRouter(handler, api.RouterOptions{CORSOrigins: cfg.CORSOrigins, Timeout: 60 * time.Second}, logger)

	// ── Server ──────────────────────────────────────────────────────
	server := &http.Server{
		Addr:              cfg.ServerAddress,
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      90 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		logger.Info("shutting down server")
		sched.Stop(ctx)
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("server forced to shutdown", "error", err)
		}
	}()

	logger.Info("starting server", "address", cfg.ServerAddress, "db_driver", cfg.DBDriver)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server failed to start", "error", err)
		os.Exit(1)
	}
}

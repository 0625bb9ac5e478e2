// Command api is the Scoracle Scout API server.
//
// Usage:
//
//	scoracle-scout-api
//	STORE_DRIVER=postgres DATABASE_URL=postgres://... scoracle-scout-api

// @title Scoracle Scout API
// @version 1.0.0
// @description Match scouting API. Stores per-team match records, aggregates them into team summaries, and serves ranked leaderboards, comparisons and team drill-downs.
// @host localhost:8000
// @BasePath /api/v1
// @schemes http https
// @contact.name Scoracle
// @license.name MIT
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"

	"github.com/albapepper/scoracle-scout/internal/api"
	"github.com/albapepper/scoracle-scout/internal/cache"
	"github.com/albapepper/scoracle-scout/internal/config"
	"github.com/albapepper/scoracle-scout/internal/dashboard"
	"github.com/albapepper/scoracle-scout/internal/listener"
	"github.com/albapepper/scoracle-scout/internal/maintenance"
	"github.com/albapepper/scoracle-scout/internal/scoring"
	"github.com/albapepper/scoracle-scout/internal/store"

	_ "github.com/albapepper/scoracle-scout/docs" // swagger docs
)

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	// Context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	// Point table
	table, err := scoring.LoadPointTable(cfg.PointTableFile)
	if err != nil {
		logger.Error("Failed to load point table", "error", err)
		os.Exit(1)
	}
	logger.Info("Point table loaded", "version", table.Version, "file", cfg.PointTableFile)

	// Open record store
	logger.Info("Opening record store...", "driver", cfg.StoreDriver)
	st, pool, err := store.Open(ctx, cfg)
	if err != nil {
		logger.Error("Failed to open record store", "error", err)
		os.Exit(1)
	}
	defer st.Close()
	if pool != nil {
		defer pool.Close()
		logger.Info("Database connected",
			"min_conns", cfg.DBPoolMinConns,
			"max_conns", cfg.DBPoolMaxConns)
	}

	// Initialize cache
	appCache := cache.New(cfg.CacheEnabled)
	logger.Info("Cache initialized", "enabled", cfg.CacheEnabled)

	// Start LISTEN/NOTIFY consumer so writes from other instances purge the cache
	if pool != nil && cfg.ListenEnabled {
		go listener.New(appCache, logger).Start(ctx, cfg.DatabaseURL)
	}

	// Start maintenance tickers (periodic backups)
	if cfg.BackupDir != "" {
		go maintenance.Start(ctx, st, maintenance.FromConfig(cfg), logger)
	}

	// Create router
	router := api.NewRouter(api.Deps{
		Store:  st,
		Engine: dashboard.New(table),
		Cache:  appCache,
		Pool:   pool,
		Logger: logger,
	}, cfg)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.APIHost, cfg.APIPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in background
	go func() {
		logger.Info("Starting Scoracle Scout API",
			"addr", addr,
			"environment", cfg.Environment,
			"store", cfg.StoreDriver,
			"docs", fmt.Sprintf("http://localhost:%d/docs/", cfg.APIPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt
	<-ctx.Done()
	logger.Info("Shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", "error", err)
	}
	logger.Info("Server stopped")
}

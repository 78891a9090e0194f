package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/vietddude/stylelog"

	"github.com/vietddude/storekit/internal/core/config"
	"github.com/vietddude/storekit/internal/infra/storage"
	"github.com/vietddude/storekit/internal/infra/storage/memory"
	"github.com/vietddude/storekit/internal/infra/storage/postgres"
	"github.com/vietddude/storekit/internal/server"
)

func main() {
	// Parse flags
	configPath := flag.String("config", "config.yaml", "Path to configuration file")
	demoMode := flag.Bool("demo", false, "Serve from in-memory storage instead of PostgreSQL")
	isDebug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	_ = godotenv.Load()

	// Load Configuration first (before setting up logger)
	cfg, err := config.Load(*configPath)
	if err != nil {
		// Fall back to default logger for config load errors
		stylelog.InitDefault()
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	slogLevel := slog.LevelInfo
	if *isDebug || cfg.Logging.Level == "debug" {
		slogLevel = slog.LevelDebug
	}

	stylelog.InitDefault(
		&tint.Options{
			Level:      slogLevel,
			TimeFormat: time.RFC3339,
		})
	slog.Info("Logger initialized", "level", slogLevel.String())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Storage
	var (
		products storage.ProductRepository
		orders   storage.OrderRepository
	)
	if *demoMode {
		store := memory.NewMemoryStorage()
		products = memory.NewProductRepo(store)
		orders = memory.NewOrderRepo(store)
		slog.Info("Using in-memory storage")
	} else {
		db, err := postgres.NewDB(ctx, cfg.Database)
		if err != nil {
			slog.Error("Failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		if err := db.Migrate(); err != nil {
			slog.Error("Failed to apply migrations", "error", err)
			os.Exit(1)
		}
		db.StartMetricsCollector(ctx)

		products = postgres.NewProductRepo(db)
		orders = postgres.NewOrderRepo(db)
		slog.Info("Using PostgreSQL storage")
	}

	srv := server.New(server.Config{Port: cfg.Server.Port}, products, orders)

	// Handle OS Signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("API server listening", "port", cfg.Server.Port)
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for Signal
	sig := <-sigChan
	slog.Info("Received signal, shutting down...", "signal", sig)

	// Graceful Shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		slog.Error("Error during shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("API server stopped gracefully")
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdugdh24/glicosaude/internal/config"
	"github.com/gdugdh24/glicosaude/internal/infrastructure/container"
	"github.com/gdugdh24/glicosaude/internal/logger"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize dependency injection container
	app, err := container.NewContainer(ctx, cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize application", zap.Error(err))
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.Error("Error closing application", zap.Error(err))
		}
	}()

	// Start server in a goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Server.Start()
	}()

	log.Info("Server started", zap.String("addr", app.Server.Addr()), zap.String("env", cfg.Server.Env))

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			log.Error("Server error", zap.Error(err))
		}
	}

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := app.Server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
		return
	}

	log.Info("Server exited properly")
}

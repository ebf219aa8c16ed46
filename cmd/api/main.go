package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"inventory-api/internal/config"
	"inventory-api/internal/database"
	"inventory-api/internal/logger"
	"inventory-api/internal/server"

	"go.uber.org/zap"
)

// gracefulShutdown waits for SIGINT or SIGTERM, drains in-flight requests and
// then closes the database pool that main handed to the server. The pool must
// outlive Shutdown.
func gracefulShutdown(apiServer *server.Server, logger *zap.Logger, done chan<- struct{}) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	logger.Info("Shutdown signal received, draining requests")
	stop() // a second signal kills the process

	drainCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := apiServer.Shutdown(drainCtx); err != nil {
		logger.Error("Drain window expired, closing remaining connections", zap.Error(err))
	}

	if err := apiServer.Close(); err != nil {
		logger.Error("Failed to close database pool", zap.Error(err))
	} else {
		logger.Info("Database pool closed")
	}

	close(done)
}

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.Server.Env)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting inventory API",
		zap.String("env", cfg.Server.Env),
		zap.String("port", cfg.Server.Port),
		zap.String("db_host", cfg.Database.Host),
		zap.String("db_name", cfg.Database.Name),
	)

	dbService, err := database.New(cfg.Database)
	if err != nil {
		log.Fatal("Failed to open database", zap.Error(err))
	}

	// Schema and seed data must be in place before the first request.
	// Failures are logged and startup continues.
	bootstrapCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.Bootstrap(bootstrapCtx, dbService.DB(), log); err != nil {
		log.Error("Database bootstrap failed", zap.Error(err))
	} else {
		log.Info("Database bootstrap completed")
	}
	cancel()

	srv := server.NewServer(cfg, log, dbService)

	done := make(chan struct{})
	go gracefulShutdown(srv, log, done)

	log.Info("Server listening", zap.String("addr", srv.Addr))

	err = srv.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		log.Fatal("HTTP server error", zap.Error(err))
	}

	<-done
	log.Info("Graceful shutdown complete")
}

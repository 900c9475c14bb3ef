package bootstrap

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"news-explainer/config"
	logger "news-explainer/utils/logger"
)

// Run is the main application entry point. It initializes all dependencies,
// starts the HTTP server, then waits for a shutdown signal.
func Run(ctx context.Context) error {
	loggerConfig := logger.LoadLoggerConfigFromEnv()
	log := logger.New(loggerConfig)
	logger.Logger = log

	log.Info("Starting news-explainer service",
		"log_level", loggerConfig.Level,
		"log_format", loggerConfig.Format)

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	deps, cleanup, err := BuildDependencies(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to build dependencies: %w", err)
	}
	defer cleanup()

	httpServer := NewHTTPServer(deps)
	StartHTTPServer(httpServer, deps, log)

	log.Info("News-explainer service started successfully", "port", cfg.Server.Port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down news-explainer service")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("Error shutting down HTTP server", "error", err)
	}

	log.Info("News-explainer service stopped")

	return nil
}

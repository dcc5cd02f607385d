package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"safety-worker-go/internal/api"
	"safety-worker-go/internal/config"
	"safety-worker-go/internal/logging"
	"safety-worker-go/internal/metrics"
	"safety-worker-go/internal/services"
)

// @title Safety Worker API
// @version 1.0.0
// @description Women's safety worker: fuses person and hazard detections into a risk score and dispatches cooled-down alerts
// @BasePath /
func main() {
	// Console logging until the configured level and sinks are known
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg := config.Load()
	logging.Setup(cfg)
	metrics.Init()

	log.Info().
		Str("worker_id", cfg.WorkerID).
		Str("version", cfg.Version).
		Str("environment", cfg.Environment).
		Int("port", cfg.Port).
		Bool("ai_enabled", cfg.AIEnabled).
		Bool("nats_enabled", cfg.NatsEnabled).
		Int("cameras", len(cfg.Cameras)).
		Msg("Starting Safety Worker")

	container, err := services.NewServiceContainer(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize services")
	}

	server, err := api.NewServer(cfg, container)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create server")
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()
	container.StartCameras(ctx)

	go func() {
		if err := server.Start(); err != nil {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	} else {
		log.Info().Msg("Server shutdown complete")
	}
}

package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"safety-worker-go/internal/api/handlers"
	"safety-worker-go/internal/api/middleware"
	"safety-worker-go/internal/api/ws"
	"safety-worker-go/internal/config"
	"safety-worker-go/internal/services"
)

type Server struct {
	config    *config.Config
	container *services.ServiceContainer
	router    *gin.Engine
	server    *http.Server

	healthHandler  *handlers.HealthHandler
	analyzeHandler *handlers.AnalyzeHandler
	alertHandler   *handlers.AlertHandler
	cameraHandler  *handlers.CameraHandler
	systemHandler  *handlers.SystemHandler
	wsHandler      *ws.Handler
}

func NewServer(cfg *config.Config, container *services.ServiceContainer) (*Server, error) {
	if container == nil {
		return nil, fmt.Errorf("service container is required")
	}
	if cfg.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	var reader handlers.AlertReader
	if container.Database != nil {
		reader = container.Database
	}

	s := &Server{
		config:         cfg,
		container:      container,
		router:         gin.New(),
		healthHandler:  handlers.NewHealthHandler(cfg.WorkerID, cfg.Version, healthChecks(container)),
		analyzeHandler: handlers.NewAnalyzeHandler(container.Scorer),
		alertHandler:   handlers.NewAlertHandler(reader, container.Alerts),
		cameraHandler:  handlers.NewCameraHandler(container.CameraManager),
		systemHandler:  handlers.NewSystemHandler(cfg.WorkerID, container.AlertHub.ClientCount),
		wsHandler:      ws.NewHandler(container.AlertHub),
	}

	s.setupMiddleware()
	s.setupRoutes()
	s.setupSwagger()

	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s, nil
}

func healthChecks(c *services.ServiceContainer) map[string]handlers.Check {
	checks := map[string]handlers.Check{
		"database":  func() bool { return c.Database != nil && c.Database.PingContext(context.Background()) == nil },
		"snapshots": func() bool { return c.Snapshots != nil },
	}
	if c.Config.NatsEnabled {
		checks["nats"] = func() bool { return c.Messaging != nil && c.Messaging.IsConnected() }
	}
	if c.Config.AIEnabled {
		checks["ai"] = func() bool { return c.Detection != nil && c.Detection.IsConnected() }
	}
	return checks
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID())
	s.router.Use(middleware.RequestContext())
	s.router.Use(middleware.Logger())
	s.router.Use(middleware.Recovery())
	s.router.Use(middleware.CORS())
}

// Handler exposes the router; used by tests.
func (s *Server) Handler() http.Handler { return s.router }

// Start serves until Shutdown is called
func (s *Server) Start() error {
	log.Info().Int("port", s.config.Port).Msg("🚀 Starting Safety Worker API")
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests, then stops every service
func (s *Server) Shutdown(ctx context.Context) error {
	log.Info().Msg("🛑 Stopping Safety Worker API")

	var errs []error
	if err := s.server.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("http shutdown: %w", err))
	}
	if err := s.container.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("services shutdown: %w", err))
	}
	return errors.Join(errs...)
}

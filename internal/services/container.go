package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"safety-worker-go/internal/api/ws"
	"safety-worker-go/internal/config"
	"safety-worker-go/internal/database"
	"safety-worker-go/internal/helpers"
	"safety-worker-go/internal/models"
	"safety-worker-go/internal/services/camera"
	"safety-worker-go/internal/services/detection"
	"safety-worker-go/internal/services/frameprocessing"
	"safety-worker-go/internal/services/messaging"
	"safety-worker-go/internal/services/postprocessing"
	"safety-worker-go/internal/services/snapshot"
)

// ServiceContainer holds all services. Database, Snapshots, Messaging and
// Detection are nil when their backend is disabled or unavailable.
type ServiceContainer struct {
	Config        *config.Config
	Scorer        *frameprocessing.Service
	Database      *database.DB
	Snapshots     *snapshot.Store
	Messaging     *messaging.Service
	AlertHub      *ws.AlertHub
	Alerts        *postprocessing.Service
	Detection     *detection.Client
	CameraManager *camera.Manager
}

// NewServiceContainer wires the pipeline. Optional backends that fail to
// start are logged and left out; only an unusable alert dispatcher is fatal.
func NewServiceContainer(cfg *config.Config) (*ServiceContainer, error) {
	sc := &ServiceContainer{
		Config:   cfg,
		Scorer:   frameprocessing.NewService(cfg.Scoring),
		AlertHub: ws.NewAlertHub(),
	}

	encoder := helpers.NewJPEGEncoder(cfg.SnapshotQuality)

	var store models.AlertStore
	if db, err := database.Open(cfg.DatabasePath); err != nil {
		log.Error().Err(err).Str("path", cfg.DatabasePath).Msg("Alert database unavailable, alerts will not be persisted")
	} else {
		sc.Database = db
		store = db
	}

	var snapshots postprocessing.Snapshotter
	if snaps, err := snapshot.NewStore(cfg.SnapshotDir, encoder); err != nil {
		log.Error().Err(err).Str("dir", cfg.SnapshotDir).Msg("Snapshot store unavailable, alerts will carry no snapshot")
	} else {
		sc.Snapshots = snaps
		snapshots = snaps
	}

	publishers := []models.MessagePublisher{sc.AlertHub}
	if cfg.NatsEnabled {
		if nc, err := messaging.NewService(cfg); err != nil {
			log.Warn().Err(err).Msg("NATS unavailable, alerts go to websocket subscribers only")
		} else {
			sc.Messaging = nc
			publishers = append(publishers, nc)
		}
	}

	alerts, err := postprocessing.NewService(cfg, nil, store, snapshots, messaging.NewMultiPublisher(publishers...))
	if err != nil {
		sc.closeDatabase()
		return nil, fmt.Errorf("failed to create alert dispatcher: %w", err)
	}
	sc.Alerts = alerts

	var detector models.Detector
	if cfg.AIEnabled {
		client := detection.NewClient(cfg.AIGRPCURL, cfg.AITimeout, encoder)
		if err := client.Connect(); err != nil {
			log.Warn().Err(err).Str("endpoint", cfg.AIGRPCURL).Msg("AI service not reachable yet, will retry per frame")
		}
		sc.Detection = client
		detector = client
	}

	sc.CameraManager = camera.NewManager(cfg, openCapture(cfg), detector, sc.Scorer, sc.Alerts)

	log.Info().
		Bool("database", sc.Database != nil).
		Bool("snapshots", sc.Snapshots != nil).
		Bool("nats", sc.Messaging != nil).
		Bool("ai_enabled", sc.Detection != nil).
		Int("cameras", len(cfg.Cameras)).
		Msg("✅ Service container ready")

	return sc, nil
}

func openCapture(cfg *config.Config) camera.SourceFactory {
	return func(cam config.CameraConfig) (models.FrameSource, error) {
		src, err := helpers.OpenCapture(cam.ID, cam.URL, 0, 0, cfg.SnapshotQuality)
		if err != nil {
			return nil, err
		}
		return src, nil
	}
}

// StartCameras starts every enabled camera. Without a detector there is
// nothing to feed, so no camera is started.
func (sc *ServiceContainer) StartCameras(ctx context.Context) int {
	if sc.Detection == nil {
		log.Warn().Msg("AI disabled, camera workers not started")
		return 0
	}
	started := sc.CameraManager.StartAll(ctx)
	log.Info().Int("started", started).Msg("Camera workers started")
	return started
}

// Shutdown gracefully shuts down all services
func (sc *ServiceContainer) Shutdown(ctx context.Context) error {
	var errs []error

	if sc.CameraManager != nil {
		if err := sc.CameraManager.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if sc.Alerts != nil {
		if err := sc.Alerts.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if sc.AlertHub != nil {
		sc.AlertHub.Close()
	}
	if sc.Messaging != nil {
		if err := sc.Messaging.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if sc.Detection != nil {
		if err := sc.Detection.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := sc.closeDatabase(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

func (sc *ServiceContainer) closeDatabase() error {
	if sc.Database == nil {
		return nil
	}
	err := sc.Database.Close()
	sc.Database = nil
	return err
}

package camera

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"safety-worker-go/internal/config"
	"safety-worker-go/internal/logging"
	"safety-worker-go/internal/metrics"
	"safety-worker-go/internal/models"
)

var (
	ErrCameraNotFound = errors.New("camera not found")
	ErrCameraRunning  = errors.New("camera is already running")
	ErrNoDetector     = errors.New("no detector configured")
)

// SourceFactory opens the frame source for a camera
type SourceFactory func(cam config.CameraConfig) (models.FrameSource, error)

type entry struct {
	worker *Worker
	cancel context.CancelFunc
	done   chan struct{}
}

// Manager owns one worker per running camera
type Manager struct {
	cfg        *config.Config
	open       SourceFactory
	detector   models.Detector
	scorer     FrameScorer
	dispatcher AlertDispatcher
	logger     zerolog.Logger

	mu      sync.RWMutex
	workers map[string]*entry
}

func NewManager(cfg *config.Config, open SourceFactory, detector models.Detector, scorer FrameScorer, dispatcher AlertDispatcher) *Manager {
	log.Info().
		Int("configured_cameras", len(cfg.Cameras)).
		Int("processing_fps", cfg.ProcessingFPS).
		Msg("Camera manager initialized")

	return &Manager{
		cfg:        cfg,
		open:       open,
		detector:   detector,
		scorer:     scorer,
		dispatcher: dispatcher,
		logger:     logging.NewServiceLogger(cfg, "camera"),
		workers:    make(map[string]*entry),
	}
}

// StartAll starts every enabled camera from the profile. Failures are
// logged and do not prevent other cameras from starting.
func (m *Manager) StartAll(ctx context.Context) int {
	started := 0
	for _, cam := range m.cfg.Cameras {
		if !cam.Enabled {
			continue
		}
		if err := m.Start(ctx, cam.ID); err != nil {
			log.Error().Err(err).Str("camera_id", cam.ID).Msg("Failed to start camera")
			continue
		}
		started++
	}
	return started
}

// Start launches the worker for a configured camera
func (m *Manager) Start(ctx context.Context, cameraID string) error {
	cam, ok := m.cfg.Camera(cameraID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrCameraNotFound, cameraID)
	}
	if m.detector == nil {
		return fmt.Errorf("%w: camera %s", ErrNoDetector, cameraID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if e, exists := m.workers[cameraID]; exists {
		select {
		case <-e.done:
		default:
			return fmt.Errorf("%w: %s", ErrCameraRunning, cameraID)
		}
	}

	source, err := m.open(cam)
	if err != nil {
		return fmt.Errorf("failed to open camera %s: %w", cameraID, err)
	}

	runCtx, cancel := context.WithCancel(ctx)
	e := &entry{
		worker: NewWorker(cam, m.cfg.LocationFor(cam.ID), source, m.detector, m.scorer, m.dispatcher, m.cfg.ProcessingFPS).
			WithLogger(logging.WithCamera(m.logger, cam.ID)),
		cancel: cancel,
		done:   make(chan struct{}),
	}
	m.workers[cameraID] = e
	metrics.SetActiveCameras(m.activeLocked())

	go m.supervise(runCtx, cam, e, source)

	log.Info().
		Str("camera_id", cam.ID).
		Str("camera_name", cam.Name).
		Str("url", cam.URL).
		Msg("Camera started")
	return nil
}

// supervise runs the worker and reopens the source after a persistent
// failure, waiting PanicRestartDelay between attempts.
func (m *Manager) supervise(ctx context.Context, cam config.CameraConfig, e *entry, source models.FrameSource) {
	defer close(e.done)
	defer func() {
		if source != nil {
			if err := source.Close(); err != nil {
				log.Warn().Err(err).Str("camera_id", cam.ID).Msg("Failed to close frame source")
			}
		}
	}()

	for {
		err := e.worker.Run(ctx)
		if err == nil || ctx.Err() != nil || e.worker.State() == StateStopping {
			return
		}

		log.Error().
			Err(err).
			Str("camera_id", cam.ID).
			Dur("restart_delay", m.cfg.PanicRestartDelay).
			Msg("Camera worker failed, restarting")

		if err := source.Close(); err != nil {
			log.Warn().Err(err).Str("camera_id", cam.ID).Msg("Failed to close frame source")
		}
		source = m.reopen(ctx, cam)
		if source == nil {
			return
		}
		e.worker.source = source
	}
}

// reopen retries the camera every PanicRestartDelay until a source opens.
// It returns nil once ctx is cancelled.
func (m *Manager) reopen(ctx context.Context, cam config.CameraConfig) models.FrameSource {
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(m.cfg.PanicRestartDelay):
		}

		source, err := m.open(cam)
		if err == nil {
			return source
		}
		log.Error().Err(err).Str("camera_id", cam.ID).Msg("Failed to reopen camera")
	}
}

// Stop stops one camera and waits for its worker to exit
func (m *Manager) Stop(ctx context.Context, cameraID string) error {
	m.mu.Lock()
	e, ok := m.workers[cameraID]
	if ok {
		delete(m.workers, cameraID)
	}
	metrics.SetActiveCameras(m.activeLocked())
	m.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrCameraNotFound, cameraID)
	}

	e.worker.Stop()
	e.cancel()

	select {
	case <-e.done:
		log.Info().Str("camera_id", cameraID).Msg("Camera stopped")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("timed out stopping camera %s: %w", cameraID, ctx.Err())
	}
}

// Shutdown stops every camera, bounded by ctx
func (m *Manager) Shutdown(ctx context.Context) error {
	m.mu.Lock()
	entries := make(map[string]*entry, len(m.workers))
	for id, e := range m.workers {
		entries[id] = e
	}
	m.workers = make(map[string]*entry)
	metrics.SetActiveCameras(0)
	m.mu.Unlock()

	for _, e := range entries {
		e.worker.Stop()
		e.cancel()
	}

	var pending []string
	for id, e := range entries {
		select {
		case <-e.done:
		case <-ctx.Done():
			pending = append(pending, id)
		}
	}
	if len(pending) > 0 {
		sort.Strings(pending)
		return fmt.Errorf("cameras still running at shutdown %v: %w", pending, ctx.Err())
	}

	log.Info().Int("cameras", len(entries)).Msg("All camera workers stopped")
	return nil
}

func (m *Manager) activeLocked() int {
	n := 0
	for _, e := range m.workers {
		select {
		case <-e.done:
		default:
			n++
		}
	}
	return n
}

// Status returns the live status of a camera, or its configured idle state
func (m *Manager) Status(cameraID string) (models.CameraResponse, error) {
	m.mu.RLock()
	e, ok := m.workers[cameraID]
	m.mu.RUnlock()
	if ok {
		return e.worker.Status(), nil
	}

	cam, ok := m.cfg.Camera(cameraID)
	if !ok {
		return models.CameraResponse{}, fmt.Errorf("%w: %s", ErrCameraNotFound, cameraID)
	}
	return m.idle(cam), nil
}

// List returns every configured camera ordered by id
func (m *Manager) List() []models.CameraResponse {
	out := make([]models.CameraResponse, 0, len(m.cfg.Cameras))
	for _, cam := range m.cfg.Cameras {
		if status, err := m.Status(cam.ID); err == nil {
			out = append(out, status)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CameraID < out[j].CameraID })
	return out
}

func (m *Manager) idle(cam config.CameraConfig) models.CameraResponse {
	loc := m.cfg.LocationFor(cam.ID)
	return models.CameraResponse{
		CameraID:   cam.ID,
		Name:       cam.Name,
		URL:        cam.URL,
		Latitude:   loc.Latitude,
		Longitude:  loc.Longitude,
		Status:     models.CameraStatusStop,
		LastThreat: models.ThreatSafe,
	}
}

package camera

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"safety-worker-go/internal/config"
	"safety-worker-go/internal/metrics"
	"safety-worker-go/internal/models"
)

// maxConsecutiveReadErrors marks the source as failed so the manager reopens it
const maxConsecutiveReadErrors = 20

var ErrSourceFailed = errors.New("frame source failed")

// State represents the atomic run state of a worker
type State int32

const (
	StateStopped State = iota
	StateRunning
	StateStopping
)

func (s State) String() string {
	switch s {
	case StateStopped:
		return "stopped"
	case StateRunning:
		return "running"
	case StateStopping:
		return "stopping"
	default:
		return "unknown"
	}
}

// FrameScorer runs the scoring pipeline on one detection set
type FrameScorer interface {
	ProcessFrame(dets models.FrameDetections, now time.Time) models.FrameAssessment
}

// AlertDispatcher turns an assessment into alerts
type AlertDispatcher interface {
	ProcessAssessment(ctx context.Context, a models.FrameAssessment, frame *models.Frame) models.DispatchResult
}

// Worker pulls frames from one camera at a throttled rate and runs them
// through detection, scoring and alert dispatch on its own goroutine.
type Worker struct {
	camera     config.CameraConfig
	location   config.Location
	source     models.FrameSource
	detector   models.Detector
	scorer     FrameScorer
	dispatcher AlertDispatcher
	interval   time.Duration
	logger     zerolog.Logger

	state int32

	mu            sync.RWMutex
	startedAt     time.Time
	lastFrameTime time.Time
	frameCount    int64
	errorCount    int64
	readErrors    int
	lastScore     float64
	lastThreat    models.ThreatLevel
	alertsSent    int64
	lastError     string
	degraded      bool
}

func NewWorker(camera config.CameraConfig, location config.Location, source models.FrameSource, detector models.Detector,
	scorer FrameScorer, dispatcher AlertDispatcher, fps int) *Worker {
	if fps <= 0 {
		fps = 2
	}
	return &Worker{
		camera:     camera,
		location:   location,
		source:     source,
		detector:   detector,
		scorer:     scorer,
		dispatcher: dispatcher,
		interval:   time.Second / time.Duration(fps),
		logger:     log.With().Str("camera_id", camera.ID).Logger(),
		lastThreat: models.ThreatSafe,
	}
}

// WithLogger replaces the worker's camera-scoped logger
func (w *Worker) WithLogger(logger zerolog.Logger) *Worker {
	w.logger = logger
	return w
}

func (w *Worker) setState(s State) { atomic.StoreInt32(&w.state, int32(s)) }

func (w *Worker) State() State { return State(atomic.LoadInt32(&w.state)) }

// Stop asks the loop to exit before its next frame
func (w *Worker) Stop() {
	atomic.CompareAndSwapInt32(&w.state, int32(StateRunning), int32(StateStopping))
}

// Run processes frames until ctx is cancelled, Stop is called or the source
// fails persistently. The in-flight frame always completes.
func (w *Worker) Run(ctx context.Context) error {
	w.setState(StateRunning)
	defer w.setState(StateStopped)

	w.mu.Lock()
	w.startedAt = time.Now()
	w.mu.Unlock()

	w.logger.Info().
		Str("camera_name", w.camera.Name).
		Dur("interval", w.interval).
		Msg("📹 Camera worker started")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		if w.State() != StateRunning {
			w.logger.Info().Msg("Camera worker stopped")
			return nil
		}

		select {
		case <-ctx.Done():
			w.logger.Info().Msg("Camera worker stopping due to context cancel")
			return nil
		case <-ticker.C:
		}

		if err := w.step(ctx); err != nil {
			return err
		}
	}
}

// step processes one frame. A panic anywhere in the frame path is treated
// as no signal for that frame.
func (w *Worker) step(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			w.recordError(fmt.Sprintf("panic: %v", r))
			w.logger.Error().
				Interface("panic", r).
				Msg("Frame processing panic recovered")
			err = nil
		}
	}()

	frame, err := w.source.Read(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		w.mu.Lock()
		w.readErrors++
		failed := w.readErrors >= maxConsecutiveReadErrors
		w.mu.Unlock()
		w.recordError(err.Error())
		w.logger.Warn().Err(err).Msg("Failed to read frame")
		if failed {
			return fmt.Errorf("%w: camera %s: %v", ErrSourceFailed, w.camera.ID, err)
		}
		return nil
	}
	frame.CameraID = w.camera.ID

	start := time.Now()
	dets, err := w.detector.Detect(ctx, frame)
	if err != nil {
		metrics.IncDetectorError(w.camera.ID)
		w.recordError(err.Error())
		w.logger.Warn().
			Err(err).
			Int64("frame_id", frame.FrameID).
			Msg("Detection failed, skipping frame")
		return nil
	}
	dets.CameraID = w.camera.ID

	assessment := w.scorer.ProcessFrame(dets, time.Now())
	metrics.ObserveFrame(w.camera.ID, assessment.RiskScore, time.Since(start))

	result := w.dispatcher.ProcessAssessment(ctx, assessment, frame)

	w.mu.Lock()
	w.readErrors = 0
	w.degraded = assessment.Degraded
	w.frameCount++
	w.lastFrameTime = time.Now()
	w.lastScore = assessment.RiskScore
	w.lastThreat = assessment.Analysis.OverallThreatLevel
	w.alertsSent += int64(len(result.Triggered))
	w.mu.Unlock()

	if assessment.RiskScore > 40 {
		w.logger.Debug().
			Int64("frame_id", frame.FrameID).
			Float64("risk_score", assessment.RiskScore).
			Str("risk_band", assessment.RiskBand).
			Str("threat_level", string(assessment.Analysis.OverallThreatLevel)).
			Msg("Elevated frame risk")
	}
	return nil
}

func (w *Worker) recordError(msg string) {
	w.mu.Lock()
	w.errorCount++
	w.lastError = msg
	w.degraded = true
	w.mu.Unlock()
}

// Status returns a snapshot of the worker's statistics
func (w *Worker) Status() models.CameraResponse {
	w.mu.RLock()
	defer w.mu.RUnlock()

	status := models.CameraStatusStop
	if w.State() == StateRunning {
		status = models.CameraStatusStart
		if w.degraded {
			status = models.CameraStatusDegraded
		}
	}

	return models.CameraResponse{
		CameraID:      w.camera.ID,
		Name:          w.camera.Name,
		URL:           w.camera.URL,
		Latitude:      w.location.Latitude,
		Longitude:     w.location.Longitude,
		Status:        status,
		StartedAt:     w.startedAt,
		LastFrameTime: w.lastFrameTime,
		FrameCount:    w.frameCount,
		ErrorCount:    w.errorCount,
		LastRiskScore: w.lastScore,
		LastThreat:    w.lastThreat,
		AlertsSent:    w.alertsSent,
		LastError:     w.lastError,
	}
}

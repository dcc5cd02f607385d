package postprocessing

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"safety-worker-go/internal/config"
	"safety-worker-go/internal/metrics"
	"safety-worker-go/internal/models"
	"safety-worker-go/internal/services/postprocessing/alerts"
)

// Snapshotter stores alert evidence frames
type Snapshotter interface {
	Save(cameraID string, alertType models.AlertType, at time.Time, frame *models.Frame) (string, error)
	Cleanup(limit int) (int, error)
	Stats() (count int, bytes int64, err error)
}

type alertCounter interface {
	CountAlerts(ctx context.Context) (int64, error)
}

// Service gates, records and publishes alerts
type Service struct {
	cfg       *config.Config
	cooldowns *CooldownStore
	store     models.AlertStore
	snapshots Snapshotter
	publisher models.MessagePublisher
	now       func() time.Time
}

// NewService creates a new postprocessing service. Store, snapshots and
// publisher are optional; a nil cooldown store gets one sized from cfg.
func NewService(cfg *config.Config, cooldowns *CooldownStore, store models.AlertStore, snapshots Snapshotter, publisher models.MessagePublisher) (*Service, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if cooldowns == nil {
		cooldowns = NewCooldownStore(cfg.AlertsCooldown)
	}

	s := &Service{
		cfg:       cfg,
		cooldowns: cooldowns,
		store:     store,
		snapshots: snapshots,
		publisher: publisher,
		now:       time.Now,
	}

	log.Info().
		Dur("cooldown", cooldowns.Window()).
		Float64("risk_threshold", cfg.RiskAlertThreshold).
		Int("max_stored_alerts", cfg.MaxStoredAlerts).
		Bool("store", store != nil).
		Bool("snapshots", snapshots != nil).
		Bool("publisher", publisher != nil).
		Msg("Post-processing service initialized")

	return s, nil
}

// WithClock replaces the record timestamp source; used by tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) Cooldowns() *CooldownStore { return s.cooldowns }

// Shutdown stops the service gracefully
func (s *Service) Shutdown(ctx context.Context) error {
	log.Info().Msg("Post-processing service shutdown")
	return nil
}

// ProcessAssessment evaluates every alert condition of a scored frame and
// triggers those that qualify. frame may be nil when no pixels are available.
func (s *Service) ProcessAssessment(ctx context.Context, a models.FrameAssessment, frame *models.Frame) models.DispatchResult {
	result := models.DispatchResult{Triggered: []models.AlertType{}, Suppressed: []models.AlertType{}}

	for _, decision := range s.ShouldCreateAlerts(a) {
		result.Evaluated++
		if s.TriggerAlert(ctx, a.CameraID, decision, a.RiskScore, frame) {
			result.Triggered = append(result.Triggered, decision.AlertType)
		} else {
			result.Suppressed = append(result.Suppressed, decision.AlertType)
		}
	}

	if result.Evaluated > 0 {
		log.Debug().
			Str("camera_id", a.CameraID).
			Int64("frame_id", a.FrameID).
			Int("evaluated", result.Evaluated).
			Int("triggered", len(result.Triggered)).
			Int("suppressed", len(result.Suppressed)).
			Msg("Alert evaluation completed")
	}
	return result
}

// ShouldCreateAlerts returns one decision per qualifying condition, most severe first
func (s *Service) ShouldCreateAlerts(a models.FrameAssessment) []models.AlertDecision {
	candidates := []models.AlertDecision{
		alerts.HandleWomenInDanger(a, alerts.NewDecision()),
		alerts.HandleSurrounded(a, alerts.NewDecision()),
		alerts.HandleDistressSignal(a, alerts.NewDecision()),
		alerts.HandleLoneWoman(a, alerts.NewDecision()),
		alerts.HandleHighRisk(a, s.cfg.RiskAlertThreshold, alerts.NewDecision()),
	}

	out := make([]models.AlertDecision, 0, len(candidates))
	for _, d := range candidates {
		if d.ShouldAlert {
			out = append(out, d)
		}
	}
	return out
}

// TriggerAlert fires an alert unless its (camera, type) key is cooling down.
// Snapshot, store and publish are independent best-effort steps; their
// failures are logged and never reported to the caller.
func (s *Service) TriggerAlert(ctx context.Context, cameraID string, decision models.AlertDecision, score float64, frame *models.Frame) bool {
	key := models.AlertCooldownKey{CameraID: cameraID, AlertType: decision.AlertType}
	if !s.cooldowns.TryAcquire(key) {
		metrics.IncAlert(string(decision.AlertType), metrics.ResultCooldown)
		log.Debug().
			Str("camera_id", cameraID).
			Str("alert_type", string(decision.AlertType)).
			Dur("remaining", s.cooldowns.Remaining(key)).
			Msg("Alert blocked by cooldown")
		return false
	}

	start := time.Now()
	at := s.now()
	cameraName := s.cfg.CameraName(cameraID)

	log.Warn().
		Str("camera_id", cameraID).
		Str("camera_name", cameraName).
		Str("alert_type", string(decision.AlertType)).
		Str("severity", string(decision.Severity)).
		Float64("threat_score", score).
		Str("details", decision.Description).
		Msg("🚨 ALERT")

	rec := alerts.BuildAlertRecord(cameraID, s.cfg.LocationFor(cameraID), decision, score, at)
	rec.SnapshotPath = s.saveSnapshot(cameraID, decision.AlertType, at, frame)

	if s.store != nil {
		if err := s.store.InsertAlert(ctx, rec); err != nil {
			metrics.IncWrite("store", metrics.ResultError)
			log.Error().
				Err(err).
				Str("camera_id", cameraID).
				Str("alert_id", rec.ID).
				Str("alert_type", string(rec.AlertType)).
				Msg("Failed to persist alert")
		} else {
			metrics.IncWrite("store", metrics.ResultSuccess)
		}
	}

	if s.publisher != nil {
		event := alerts.BuildAlertEvent(rec, cameraName, decision)
		if err := s.publisher.Publish(s.cfg.AlertsSubject, event); err != nil {
			metrics.IncWrite("publish", metrics.ResultError)
			log.Error().
				Err(err).
				Str("camera_id", cameraID).
				Str("alert_type", string(rec.AlertType)).
				Msg("Failed to publish alert")
		} else {
			metrics.IncWrite("publish", metrics.ResultSuccess)
		}
	}

	s.cleanupSnapshots()
	metrics.IncAlert(string(decision.AlertType), metrics.ResultTriggered)

	log.Info().
		Str("camera_id", cameraID).
		Str("alert_id", rec.ID).
		Str("alert_type", string(rec.AlertType)).
		Str("snapshot", rec.SnapshotPath).
		Dur("processing_time", time.Since(start)).
		Msg("🚀 Alert dispatched")
	return true
}

func (s *Service) saveSnapshot(cameraID string, alertType models.AlertType, at time.Time, frame *models.Frame) string {
	if s.snapshots == nil || frame == nil {
		return ""
	}
	path, err := s.snapshots.Save(cameraID, alertType, at, frame)
	if err != nil {
		metrics.IncWrite("snapshot", metrics.ResultError)
		log.Error().
			Err(err).
			Str("camera_id", cameraID).
			Str("alert_type", string(alertType)).
			Msg("Failed to save alert snapshot")
		return ""
	}
	metrics.IncWrite("snapshot", metrics.ResultSuccess)
	return path
}

func (s *Service) cleanupSnapshots() {
	if s.snapshots == nil || s.cfg.MaxStoredAlerts <= 0 {
		return
	}
	removed, err := s.snapshots.Cleanup(s.cfg.MaxStoredAlerts)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to clean up old alert snapshots")
		return
	}
	if removed > 0 {
		log.Info().Int("removed", removed).Int("max", s.cfg.MaxStoredAlerts).Msg("🧹 Removed old alert snapshots")
	}
}

// Stats reports stored snapshots, live cooldowns and persisted alert count
func (s *Service) Stats(ctx context.Context) models.AlertStats {
	stats := models.AlertStats{ActiveCooldowns: s.cooldowns.Active()}

	if s.snapshots != nil {
		count, bytes, err := s.snapshots.Stats()
		if err != nil {
			log.Warn().Err(err).Msg("Failed to read snapshot statistics")
		} else {
			stats.StoredSnapshots = count
			stats.StorageUsedMB = float64(bytes) / (1024 * 1024)
		}
	}

	if counter, ok := s.store.(alertCounter); ok {
		n, err := counter.CountAlerts(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to count persisted alerts")
		} else {
			stats.PersistedAlerts = n
		}
	}
	return stats
}

// ResetCooldowns clears cooldowns for one camera, or all when cameraID is empty
func (s *Service) ResetCooldowns(cameraID string) int {
	var n int
	if cameraID == "" {
		n = s.cooldowns.Reset()
	} else {
		n = s.cooldowns.ResetCamera(cameraID)
	}
	log.Info().Str("camera_id", cameraID).Int("cleared", n).Msg("Alert cooldowns cleared")
	return n
}

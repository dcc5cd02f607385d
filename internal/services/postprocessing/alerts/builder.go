package alerts

import (
	"time"

	"github.com/google/uuid"

	"safety-worker-go/internal/config"
	"safety-worker-go/internal/models"
)

// NewDecision returns an empty decision ready for a handler
func NewDecision() models.AlertDecision {
	return models.AlertDecision{Metadata: make(map[string]interface{})}
}

// BuildAlertRecord builds the persisted record for a triggered decision
func BuildAlertRecord(cameraID string, loc config.Location, decision models.AlertDecision, score float64, at time.Time) models.AlertRecord {
	return models.AlertRecord{
		ID:          uuid.NewString(),
		CameraID:    cameraID,
		Latitude:    loc.Latitude,
		Longitude:   loc.Longitude,
		Timestamp:   at.UTC(),
		AlertType:   decision.AlertType,
		ThreatScore: score,
		Details:     decision.Description,
	}
}

// BuildAlertEvent wraps a record for the message bus
func BuildAlertEvent(rec models.AlertRecord, cameraName string, decision models.AlertDecision) models.AlertEvent {
	return models.AlertEvent{
		Record:     rec,
		CameraName: cameraName,
		Severity:   decision.Severity,
		Title:      decision.Title,
		RiskBand:   models.RiskBand(rec.ThreatScore),
		Metadata:   decision.Metadata,
	}
}

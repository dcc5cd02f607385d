package models

import (
	"context"
	"time"
)

// AlertType represents the scenario that produced an alert
type AlertType string

const (
	AlertTypeLoneWoman      AlertType = "lone_woman"
	AlertTypeSurrounded     AlertType = "surrounded"
	AlertTypeWomenInDanger  AlertType = "women_in_danger"
	AlertTypeDistressSignal AlertType = "distress_signal"
	AlertTypeHighRisk       AlertType = "high_risk"
)

// AlertSeverity represents the severity level of alerts
type AlertSeverity string

const (
	AlertSeverityLow      AlertSeverity = "LOW"
	AlertSeverityMedium   AlertSeverity = "MEDIUM"
	AlertSeverityHigh     AlertSeverity = "HIGH"
	AlertSeverityCritical AlertSeverity = "CRITICAL"
)

// AlertRecord is a persisted alert. Records are never mutated after insert.
type AlertRecord struct {
	ID           string    `json:"id"`
	CameraID     string    `json:"camera_id"`
	Latitude     float64   `json:"latitude"`
	Longitude    float64   `json:"longitude"`
	Timestamp    time.Time `json:"timestamp"`
	AlertType    AlertType `json:"alert_type"`
	ThreatScore  float64   `json:"threat_score"`
	Details      string    `json:"details"`
	SnapshotPath string    `json:"snapshot_path,omitempty"`
}

// AlertCooldownKey represents a unique key for alert cooldown tracking
type AlertCooldownKey struct {
	CameraID  string
	AlertType AlertType
}

// AlertDecision represents the decision whether to create an alert
type AlertDecision struct {
	ShouldAlert bool
	AlertType   AlertType
	Severity    AlertSeverity
	Title       string
	Description string
	Metadata    map[string]interface{}
}

// AlertEvent is the message published on the bus for every triggered alert
type AlertEvent struct {
	Record     AlertRecord            `json:"record"`
	CameraName string                 `json:"camera_name"`
	Severity   AlertSeverity          `json:"severity"`
	Title      string                 `json:"title"`
	RiskBand   string                 `json:"risk_band"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
}

// DispatchResult summarises what the dispatcher did for one assessment
type DispatchResult struct {
	Evaluated  int         `json:"evaluated"`
	Triggered  []AlertType `json:"triggered"`
	Suppressed []AlertType `json:"suppressed"`
}

// AlertStats mirrors the alert subsystem's runtime statistics
type AlertStats struct {
	StoredSnapshots int     `json:"total_alerts"`
	ActiveCooldowns int     `json:"active_cooldowns"`
	StorageUsedMB   float64 `json:"storage_used_mb"`
	PersistedAlerts int64   `json:"persisted_alerts"`
}

// MessagePublisher interface for publishing alerts
type MessagePublisher interface {
	Publish(subject string, data interface{}) error
}

// AlertStore is the long-term alert sink
type AlertStore interface {
	InsertAlert(ctx context.Context, rec AlertRecord) error
}

package models

import (
	"context"
	"time"
)

// CameraStatus represents the camera operational status
type CameraStatus string

const (
	CameraStatusStart    CameraStatus = "start"
	CameraStatusStop     CameraStatus = "stop"
	CameraStatusDegraded CameraStatus = "degraded"
)

// String returns the string representation of CameraStatus
func (cs CameraStatus) String() string {
	return string(cs)
}

// IsValid checks if the camera status is valid
func (cs CameraStatus) IsValid() bool {
	switch cs {
	case CameraStatusStart, CameraStatusStop, CameraStatusDegraded:
		return true
	default:
		return false
	}
}

// Frame is a decoded video frame handed to the detector
type Frame struct {
	CameraID  string
	FrameID   int64
	Data      []byte // JPEG or raw BGR pixels
	Width     int
	Height    int
	Timestamp time.Time
}

// FrameSource yields frames for a single camera
type FrameSource interface {
	Read(ctx context.Context) (*Frame, error)
	Close() error
}

// Detector converts a frame into a detection set
type Detector interface {
	Detect(ctx context.Context, frame *Frame) (FrameDetections, error)
}

// CameraResponse for API
type CameraResponse struct {
	CameraID      string       `json:"camera_id"`
	Name          string       `json:"name"`
	URL           string       `json:"url"`
	Latitude      float64      `json:"latitude"`
	Longitude     float64      `json:"longitude"`
	Status        CameraStatus `json:"status"`
	StartedAt     time.Time    `json:"started_at"`
	LastFrameTime time.Time    `json:"last_frame_time"`
	FrameCount    int64        `json:"frame_count"`
	ErrorCount    int64        `json:"error_count"`
	LastRiskScore float64      `json:"last_risk_score"`
	LastThreat    ThreatLevel  `json:"last_threat_level"`
	AlertsSent    int64        `json:"alerts_sent"`
	LastError     string       `json:"last_error,omitempty"`
}

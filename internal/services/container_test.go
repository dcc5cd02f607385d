package services

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"safety-worker-go/internal/config"
	"safety-worker-go/internal/models"
)

func containerConfig(t *testing.T) *config.Config {
	dir := t.TempDir()
	return &config.Config{
		WorkerID:           "test-worker",
		AIEnabled:          false,
		NatsEnabled:        false,
		ProcessingFPS:      2,
		AlertsSubject:      "alerts.safety",
		AlertsCooldown:     300 * time.Second,
		RiskAlertThreshold: 70,
		MaxStoredAlerts:    10,
		SnapshotDir:        filepath.Join(dir, "alerts"),
		SnapshotQuality:    90,
		DatabasePath:       filepath.Join(dir, "alerts.db"),
		Scoring:            config.DefaultScoringConfig(),
		DefaultLocation:    config.FallbackLocation,
		Cameras: []config.CameraConfig{
			{ID: "cam1", Name: "Gate", URL: "rtsp://cam1/stream", Enabled: true},
		},
	}
}

func TestContainerWithoutAI(t *testing.T) {
	sc, err := NewServiceContainer(containerConfig(t))
	require.NoError(t, err)

	assert.NotNil(t, sc.Database)
	assert.NotNil(t, sc.Snapshots)
	assert.Nil(t, sc.Messaging)
	assert.Nil(t, sc.Detection)
	assert.Zero(t, sc.StartCameras(context.Background()))

	cams := sc.CameraManager.List()
	require.Len(t, cams, 1)
	assert.Equal(t, models.CameraStatusStop, cams[0].Status)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	assert.NoError(t, sc.Shutdown(ctx))
	assert.Nil(t, sc.Database)
}

func TestContainerSurvivesMissingDatabase(t *testing.T) {
	cfg := containerConfig(t)
	cfg.DatabasePath = filepath.Join(t.TempDir(), "missing", "dir", "alerts.db")

	sc, err := NewServiceContainer(cfg)
	require.NoError(t, err)
	assert.Nil(t, sc.Database)
	assert.NotNil(t, sc.Alerts)

	stats := sc.Alerts.Stats(context.Background())
	assert.Zero(t, stats.PersistedAlerts)
	assert.NoError(t, sc.Shutdown(context.Background()))
}

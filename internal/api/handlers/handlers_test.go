package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"safety-worker-go/internal/config"
	"safety-worker-go/internal/models"
	"safety-worker-go/internal/services/camera"
	"safety-worker-go/internal/services/frameprocessing"
)

type fakeReader struct {
	records   []models.AlertRecord
	err       error
	lastLimit int
	lastSince time.Time
}

func (f *fakeReader) ListAlerts(_ context.Context, limit int) ([]models.AlertRecord, error) {
	f.lastLimit = limit
	return f.records, f.err
}

func (f *fakeReader) RecentAlerts(_ context.Context, since time.Time) ([]models.AlertRecord, error) {
	f.lastSince = since
	return f.records, f.err
}

type fakeController struct {
	stats     models.AlertStats
	resetWith []string
}

func (f *fakeController) Stats(context.Context) models.AlertStats { return f.stats }

func (f *fakeController) ResetCooldowns(cameraID string) int {
	f.resetWith = append(f.resetWith, cameraID)
	if cameraID == "" {
		return 5
	}
	return 2
}

type fakeCameras struct{}

func (fakeCameras) List() []models.CameraResponse {
	return []models.CameraResponse{{CameraID: "cam1", Status: models.CameraStatusStart}}
}

func (fakeCameras) Status(id string) (models.CameraResponse, error) {
	switch id {
	case "cam1":
		return models.CameraResponse{CameraID: "cam1", FrameCount: 7}, nil
	case "broken":
		return models.CameraResponse{}, errors.New("boom")
	}
	return models.CameraResponse{}, fmt.Errorf("%w: %s", camera.ErrCameraNotFound, id)
}

func do(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func init() { gin.SetMode(gin.TestMode) }

func TestHealthReportsDegradedComponents(t *testing.T) {
	h := NewHealthHandler("w-1", "1.2.3", map[string]Check{
		"database": func() bool { return true },
		"nats":     func() bool { return false },
	})
	router := gin.New()
	router.GET("/", h.WorkerInfo)
	router.GET("/health", h.HealthCheck)

	w := do(t, router, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, w.Code)
	var health HealthResponse
	decode(t, w, &health)
	assert.Equal(t, "degraded", health.Status)
	assert.Equal(t, map[string]bool{"database": true, "nats": false}, health.Components)

	w = do(t, router, http.MethodGet, "/", "")
	var info WorkerInfoResponse
	decode(t, w, &info)
	assert.Equal(t, "1.2.3", info.Version)
	assert.Equal(t, []string{"database", "nats"}, info.Components)
}

func TestHealthWithoutChecksIsHealthy(t *testing.T) {
	router := gin.New()
	router.GET("/health", NewHealthHandler("w-1", "1.0.0", nil).HealthCheck)

	var health HealthResponse
	decode(t, do(t, router, http.MethodGet, "/health", ""), &health)
	assert.Equal(t, "healthy", health.Status)
}

func TestAnalyzeScoresWithoutDispatch(t *testing.T) {
	h := NewAnalyzeHandler(frameprocessing.NewService(config.DefaultScoringConfig()))
	h.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }
	router := gin.New()
	router.POST("/analyze", h.Analyze)

	body := `{
		"frame_id": 3,
		"width": 640,
		"height": 480,
		"persons": [
			{"bbox": [10, 10, 50, 90], "confidence": 0.9, "gender": "female"}
		],
		"hazards": []
	}`
	w := do(t, router, http.MethodPost, "/analyze", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var a models.FrameAssessment
	decode(t, w, &a)
	assert.Equal(t, "api", a.CameraID)
	assert.Equal(t, int64(3), a.FrameID)
	require.Len(t, a.Persons, 1)
	assert.Equal(t, models.GenderWoman, a.Persons[0].Gender)
	assert.Len(t, a.Analysis.LoneWomen, 1)
	assert.Equal(t, models.RiskBand(a.RiskScore), a.RiskBand)
}

func TestAnalyzeRejectsBadBody(t *testing.T) {
	router := gin.New()
	router.POST("/analyze", NewAnalyzeHandler(frameprocessing.NewService(config.DefaultScoringConfig())).Analyze)

	w := do(t, router, http.MethodPost, "/analyze", `{"persons": "nope"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = do(t, router, http.MethodPost, "/analyze", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func alertRouter(h *AlertHandler) *gin.Engine {
	router := gin.New()
	router.GET("/alerts", h.ListAlerts)
	router.GET("/alerts/recent", h.RecentAlerts)
	router.GET("/alerts/stats", h.Stats)
	router.DELETE("/alerts/cooldowns", h.ResetCooldowns)
	router.DELETE("/alerts/cooldowns/:camera_id", h.ResetCooldowns)
	return router
}

func TestAlertQueries(t *testing.T) {
	reader := &fakeReader{records: []models.AlertRecord{{ID: "a1", CameraID: "cam1"}, {ID: "a2", CameraID: "cam2"}}}
	h := NewAlertHandler(reader, &fakeController{})
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	h.now = func() time.Time { return now }
	router := alertRouter(h)

	w := do(t, router, http.MethodGet, "/alerts", "")
	require.Equal(t, http.StatusOK, w.Code)
	var list AlertListResponse
	decode(t, w, &list)
	assert.Equal(t, 2, list.Count)
	assert.Equal(t, defaultAlertLimit, reader.lastLimit)

	do(t, router, http.MethodGet, "/alerts?limit=5000", "")
	assert.Equal(t, maxAlertLimit, reader.lastLimit)

	assert.Equal(t, http.StatusBadRequest, do(t, router, http.MethodGet, "/alerts?limit=-1", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(t, router, http.MethodGet, "/alerts/recent?hours=abc", "").Code)

	w = do(t, router, http.MethodGet, "/alerts/recent?hours=6", "")
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &list)
	assert.Equal(t, 6, list.Hours)
	assert.Equal(t, now.Add(-6*time.Hour), reader.lastSince)

	do(t, router, http.MethodGet, "/alerts/recent", "")
	assert.Equal(t, now.Add(-24*time.Hour), reader.lastSince)
}

func TestAlertQueryFailures(t *testing.T) {
	router := alertRouter(NewAlertHandler(nil, &fakeController{}))
	assert.Equal(t, http.StatusServiceUnavailable, do(t, router, http.MethodGet, "/alerts", "").Code)
	assert.Equal(t, http.StatusServiceUnavailable, do(t, router, http.MethodGet, "/alerts/recent", "").Code)

	router = alertRouter(NewAlertHandler(&fakeReader{err: errors.New("disk full")}, &fakeController{}))
	assert.Equal(t, http.StatusInternalServerError, do(t, router, http.MethodGet, "/alerts", "").Code)
}

func TestAlertStatsAndCooldowns(t *testing.T) {
	ctrl := &fakeController{stats: models.AlertStats{StoredSnapshots: 3, ActiveCooldowns: 2, StorageUsedMB: 1.5, PersistedAlerts: 9}}
	router := alertRouter(NewAlertHandler(&fakeReader{}, ctrl))

	var stats models.AlertStats
	decode(t, do(t, router, http.MethodGet, "/alerts/stats", ""), &stats)
	assert.Equal(t, ctrl.stats, stats)

	var reset CooldownResetResponse
	decode(t, do(t, router, http.MethodDelete, "/alerts/cooldowns", ""), &reset)
	assert.Equal(t, 5, reset.Cleared)
	decode(t, do(t, router, http.MethodDelete, "/alerts/cooldowns/cam1", ""), &reset)
	assert.Equal(t, CooldownResetResponse{CameraID: "cam1", Cleared: 2}, reset)
	assert.Equal(t, []string{"", "cam1"}, ctrl.resetWith)
}

func TestCameraEndpoints(t *testing.T) {
	h := NewCameraHandler(fakeCameras{})
	router := gin.New()
	router.GET("/cameras", h.ListCameras)
	router.GET("/cameras/:id/status", h.GetCameraStatus)

	var list CameraListResponse
	decode(t, do(t, router, http.MethodGet, "/cameras", ""), &list)
	assert.Equal(t, 1, list.Count)

	w := do(t, router, http.MethodGet, "/cameras/cam1/status", "")
	require.Equal(t, http.StatusOK, w.Code)
	var status models.CameraResponse
	decode(t, w, &status)
	assert.Equal(t, int64(7), status.FrameCount)

	assert.Equal(t, http.StatusNotFound, do(t, router, http.MethodGet, "/cameras/nope/status", "").Code)
	assert.Equal(t, http.StatusInternalServerError, do(t, router, http.MethodGet, "/cameras/broken/status", "").Code)
}

func TestSystemStats(t *testing.T) {
	router := gin.New()
	router.GET("/system/stats", NewSystemHandler("w-1", func() int { return 4 }).GetStats)

	var stats SystemStatsResponse
	decode(t, do(t, router, http.MethodGet, "/system/stats", ""), &stats)
	assert.Equal(t, "w-1", stats.WorkerID)
	assert.Equal(t, 4, stats.WebsocketClients)
	assert.Positive(t, stats.Goroutines)
}

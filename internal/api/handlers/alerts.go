package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"safety-worker-go/internal/logging"
	"safety-worker-go/internal/models"
)

const (
	defaultAlertLimit  = 100
	maxAlertLimit      = 1000
	defaultRecentHours = 24
	maxRecentHours     = 24 * 30
)

// AlertReader queries persisted alerts
type AlertReader interface {
	ListAlerts(ctx context.Context, limit int) ([]models.AlertRecord, error)
	RecentAlerts(ctx context.Context, since time.Time) ([]models.AlertRecord, error)
}

// AlertController exposes the dispatcher's runtime state
type AlertController interface {
	Stats(ctx context.Context) models.AlertStats
	ResetCooldowns(cameraID string) int
}

type AlertHandler struct {
	reader AlertReader
	alerts AlertController
	now    func() time.Time
}

// NewAlertHandler creates the alert handler. reader may be nil when no
// alert store is available; queries then answer 503.
func NewAlertHandler(reader AlertReader, alerts AlertController) *AlertHandler {
	return &AlertHandler{reader: reader, alerts: alerts, now: time.Now}
}

type AlertListResponse struct {
	Count  int                  `json:"count" example:"2"`
	Hours  int                  `json:"hours,omitempty" example:"24"`
	Alerts []models.AlertRecord `json:"alerts"`
}

type CooldownResetResponse struct {
	CameraID string `json:"camera_id,omitempty" example:"cam1"`
	Cleared  int    `json:"cleared" example:"3"`
}

func boundedQueryInt(c *gin.Context, key string, def, ceiling int) (int, bool) {
	raw := c.Query(key)
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, false
	}
	if n > ceiling {
		n = ceiling
	}
	return n, true
}

// @Summary List alerts
// @Description Most recent persisted alerts, newest first
// @Tags alerts
// @Produce json
// @Param limit query int false "Maximum alerts to return (default 100, max 1000)"
// @Success 200 {object} AlertListResponse
// @Failure 400 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /alerts [get]
func (h *AlertHandler) ListAlerts(c *gin.Context) {
	if h.reader == nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "alert store unavailable"})
		return
	}
	limit, ok := boundedQueryInt(c, "limit", defaultAlertLimit, maxAlertLimit)
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "limit must be a positive integer"})
		return
	}

	records, err := h.reader.ListAlerts(c.Request.Context(), limit)
	if err != nil {
		logging.Error(c).Err(err).Int("limit", limit).Msg("Failed to list alerts")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to list alerts"})
		return
	}
	c.JSON(http.StatusOK, AlertListResponse{Count: len(records), Alerts: records})
}

// @Summary Recent alerts
// @Description Alerts raised within the last N hours, newest first
// @Tags alerts
// @Produce json
// @Param hours query int false "Look-back window in hours (default 24)"
// @Success 200 {object} AlertListResponse
// @Failure 400 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /alerts/recent [get]
func (h *AlertHandler) RecentAlerts(c *gin.Context) {
	if h.reader == nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "alert store unavailable"})
		return
	}
	hours, ok := boundedQueryInt(c, "hours", defaultRecentHours, maxRecentHours)
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "hours must be a positive integer"})
		return
	}

	since := h.now().Add(-time.Duration(hours) * time.Hour)
	records, err := h.reader.RecentAlerts(c.Request.Context(), since)
	if err != nil {
		logging.Error(c).Err(err).Int("hours", hours).Msg("Failed to query recent alerts")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to query recent alerts"})
		return
	}
	c.JSON(http.StatusOK, AlertListResponse{Count: len(records), Hours: hours, Alerts: records})
}

// @Summary Alert statistics
// @Description Stored snapshots, active cooldowns, snapshot storage and persisted alert count
// @Tags alerts
// @Produce json
// @Success 200 {object} models.AlertStats
// @Router /alerts/stats [get]
func (h *AlertHandler) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, h.alerts.Stats(c.Request.Context()))
}

// @Summary Reset alert cooldowns
// @Description Clear every cooldown, or only those of one camera
// @Tags alerts
// @Produce json
// @Param camera_id path string false "Camera ID"
// @Success 200 {object} CooldownResetResponse
// @Router /alerts/cooldowns [delete]
// @Router /alerts/cooldowns/{camera_id} [delete]
func (h *AlertHandler) ResetCooldowns(c *gin.Context) {
	cameraID := c.Param("camera_id")
	cleared := h.alerts.ResetCooldowns(cameraID)
	logging.Info(c).Str("camera_id", cameraID).Int("cleared", cleared).Msg("Cooldowns reset via API")
	c.JSON(http.StatusOK, CooldownResetResponse{CameraID: cameraID, Cleared: cleared})
}

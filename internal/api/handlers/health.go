package handlers

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
)

// Check reports whether one dependency is usable
type Check func() bool

type HealthHandler struct {
	WorkerID string
	Version  string
	checks   map[string]Check
}

func NewHealthHandler(workerID, version string, checks map[string]Check) *HealthHandler {
	if checks == nil {
		checks = map[string]Check{}
	}
	return &HealthHandler{WorkerID: workerID, Version: version, checks: checks}
}

type HealthResponse struct {
	Status     string          `json:"status" example:"healthy"`
	WorkerID   string          `json:"worker_id" example:"safety-worker-1"`
	Components map[string]bool `json:"components"`
}

type WorkerInfoResponse struct {
	WorkerID     string   `json:"worker_id" example:"safety-worker-1"`
	Status       string   `json:"status" example:"running"`
	Version      string   `json:"version" example:"1.0.0"`
	Capabilities []string `json:"capabilities"`
	Components   []string `json:"components"`
}

// @Summary Health check
// @Description Worker liveness plus the state of optional backends. Reports degraded, never fails, when a backend is down.
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	status := "healthy"
	components := make(map[string]bool, len(h.checks))
	for name, check := range h.checks {
		ok := check()
		components[name] = ok
		if !ok {
			status = "degraded"
		}
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status:     status,
		WorkerID:   h.WorkerID,
		Components: components,
	})
}

// @Summary Worker information
// @Description Basic worker information and capabilities
// @Tags health
// @Produce json
// @Success 200 {object} WorkerInfoResponse
// @Router / [get]
func (h *HealthHandler) WorkerInfo(c *gin.Context) {
	components := make([]string, 0, len(h.checks))
	for name := range h.checks {
		components = append(components, name)
	}
	sort.Strings(components)

	c.JSON(http.StatusOK, WorkerInfoResponse{
		WorkerID: h.WorkerID,
		Status:   "running",
		Version:  h.Version,
		Capabilities: []string{
			"risk_scoring",
			"alert_dispatch",
			"live_alert_feed",
		},
		Components: components,
	})
}

package handlers

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
)

// SystemHandler handles system-related endpoints
type SystemHandler struct {
	WorkerID  string
	startedAt time.Time
	clients   func() int
}

// NewSystemHandler creates a new system handler. clients reports live
// websocket subscribers and may be nil.
func NewSystemHandler(workerID string, clients func() int) *SystemHandler {
	return &SystemHandler{
		WorkerID:  workerID,
		startedAt: time.Now(),
		clients:   clients,
	}
}

type SystemStatsResponse struct {
	WorkerID         string  `json:"worker_id" example:"safety-worker-1"`
	UptimeSeconds    float64 `json:"uptime_seconds" example:"3600"`
	MemoryMB         uint64  `json:"memory_mb" example:"42"`
	CPUCores         int     `json:"cpu_cores" example:"8"`
	Goroutines       int     `json:"goroutines" example:"24"`
	GoVersion        string  `json:"go_version" example:"go1.24.5"`
	WebsocketClients int     `json:"websocket_clients" example:"1"`
	Timestamp        int64   `json:"timestamp" example:"1760400000"`
}

// @Summary Get system stats
// @Description Process statistics of the worker
// @Tags system
// @Produce json
// @Success 200 {object} SystemStatsResponse
// @Router /system/stats [get]
func (h *SystemHandler) GetStats(c *gin.Context) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	stats := SystemStatsResponse{
		WorkerID:      h.WorkerID,
		UptimeSeconds: time.Since(h.startedAt).Seconds(),
		MemoryMB:      m.Alloc / 1024 / 1024,
		CPUCores:      runtime.NumCPU(),
		Goroutines:    runtime.NumGoroutine(),
		GoVersion:     runtime.Version(),
		Timestamp:     time.Now().Unix(),
	}
	if h.clients != nil {
		stats.WebsocketClients = h.clients()
	}
	c.JSON(http.StatusOK, stats)
}

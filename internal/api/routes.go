package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) setupRoutes() {
	s.router.GET("/", s.healthHandler.WorkerInfo)
	s.router.GET("/health", s.healthHandler.HealthCheck)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	s.router.POST("/analyze", s.analyzeHandler.Analyze)

	alerts := s.router.Group("/alerts")
	{
		alerts.GET("", s.alertHandler.ListAlerts)
		alerts.GET("/recent", s.alertHandler.RecentAlerts)
		alerts.GET("/stats", s.alertHandler.Stats)
		alerts.DELETE("/cooldowns", s.alertHandler.ResetCooldowns)
		alerts.DELETE("/cooldowns/:camera_id", s.alertHandler.ResetCooldowns)
	}

	cameras := s.router.Group("/cameras")
	{
		cameras.GET("", s.cameraHandler.ListCameras)
		cameras.GET("/:id/status", s.cameraHandler.GetCameraStatus)
	}

	system := s.router.Group("/system")
	{
		system.GET("/stats", s.systemHandler.GetStats)
	}

	s.router.GET("/ws/alerts", s.wsHandler.Alerts)
}

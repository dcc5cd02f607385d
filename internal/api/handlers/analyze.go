package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"safety-worker-go/internal/logging"
	"safety-worker-go/internal/models"
)

const analyzeCameraID = "api"

// FrameScorer runs the scoring pipeline over one detection set
type FrameScorer interface {
	ProcessFrame(dets models.FrameDetections, now time.Time) models.FrameAssessment
}

type AnalyzeHandler struct {
	scorer FrameScorer
	now    func() time.Time
}

func NewAnalyzeHandler(scorer FrameScorer) *AnalyzeHandler {
	return &AnalyzeHandler{scorer: scorer, now: time.Now}
}

// Analyze scores a detection set without dispatching alerts
// @Summary Score detections
// @Description Run the risk pipeline over a posted detection set. No alert is stored or published.
// @Tags analysis
// @Accept json
// @Produce json
// @Param request body models.FrameDetections true "Detections of one frame"
// @Success 200 {object} models.FrameAssessment
// @Failure 400 {object} ErrorResponse
// @Router /analyze [post]
func (h *AnalyzeHandler) Analyze(c *gin.Context) {
	var dets models.FrameDetections
	if err := c.ShouldBindJSON(&dets); err != nil {
		logging.Warn(c).Err(err).Msg("Invalid detections body")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	if dets.CameraID == "" {
		dets.CameraID = analyzeCameraID
	}

	assessment := h.scorer.ProcessFrame(dets, h.now())

	logging.Debug(c).
		Str("camera_id", dets.CameraID).
		Int("persons", len(assessment.Persons)).
		Float64("risk_score", assessment.RiskScore).
		Str("risk_band", assessment.RiskBand).
		Msg("Analyzed posted detections")

	c.JSON(http.StatusOK, assessment)
}

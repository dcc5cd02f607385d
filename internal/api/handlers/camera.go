package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"safety-worker-go/internal/logging"
	"safety-worker-go/internal/models"
	"safety-worker-go/internal/services/camera"
)

// CameraDirectory lists configured cameras and their live state
type CameraDirectory interface {
	List() []models.CameraResponse
	Status(cameraID string) (models.CameraResponse, error)
}

type CameraHandler struct {
	cameras CameraDirectory
}

func NewCameraHandler(cameras CameraDirectory) *CameraHandler {
	return &CameraHandler{cameras: cameras}
}

type CameraListResponse struct {
	Count   int                     `json:"count" example:"1"`
	Cameras []models.CameraResponse `json:"cameras"`
}

// ListCameras lists all cameras
// @Summary List cameras
// @Description Every configured camera with its live worker state
// @Tags cameras
// @Produce json
// @Success 200 {object} CameraListResponse
// @Router /cameras [get]
func (h *CameraHandler) ListCameras(c *gin.Context) {
	cams := h.cameras.List()
	c.JSON(http.StatusOK, CameraListResponse{Count: len(cams), Cameras: cams})
}

// GetCameraStatus gets camera status
// @Summary Camera status
// @Description Frame, error and risk statistics of one camera
// @Tags cameras
// @Produce json
// @Param id path string true "Camera ID"
// @Success 200 {object} models.CameraResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /cameras/{id}/status [get]
func (h *CameraHandler) GetCameraStatus(c *gin.Context) {
	cameraID := c.Param("id")

	status, err := h.cameras.Status(cameraID)
	if errors.Is(err, camera.ErrCameraNotFound) {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "camera not found"})
		return
	}
	if err != nil {
		logging.Error(c).Err(err).Str("camera_id", cameraID).Msg("Failed to read camera status")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, status)
}

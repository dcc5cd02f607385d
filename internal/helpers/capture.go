package helpers

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/rs/zerolog/log"
	"gocv.io/x/gocv"

	"safety-worker-go/internal/models"
)

const maxConsecutiveErrors = 10

// CaptureSource reads frames from an RTSP/HTTP stream, a file or a webcam
// index through OpenCV and hands them out as JPEG.
type CaptureSource struct {
	cameraID string
	url      string
	width    int
	height   int
	quality  int

	cap     *gocv.VideoCapture
	img     gocv.Mat
	frameID int64
	errors  int
}

// OpenCapture opens url with the FFmpeg backend. width/height of zero keep
// the native stream size.
func OpenCapture(cameraID, url string, width, height, quality int) (*CaptureSource, error) {
	cap, err := openVideoCapture(url, width, height)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("camera_id", cameraID).
		Str("url", url).
		Float64("actual_fps", cap.Get(gocv.VideoCaptureFPS)).
		Float64("actual_width", cap.Get(gocv.VideoCaptureFrameWidth)).
		Float64("actual_height", cap.Get(gocv.VideoCaptureFrameHeight)).
		Msg("VideoCapture opened")

	return &CaptureSource{
		cameraID: cameraID,
		url:      url,
		width:    width,
		height:   height,
		quality:  quality,
		cap:      cap,
		img:      gocv.NewMat(),
	}, nil
}

func openVideoCapture(url string, width, height int) (*gocv.VideoCapture, error) {
	cap, err := gocv.OpenVideoCaptureWithAPI(url, gocv.VideoCaptureFFmpeg)
	if err != nil {
		return nil, fmt.Errorf("failed to open stream %s: %w", url, err)
	}
	if !cap.IsOpened() {
		cap.Close()
		return nil, fmt.Errorf("video capture is not opened for %s", url)
	}
	if width > 0 && height > 0 {
		cap.Set(gocv.VideoCaptureFrameWidth, float64(width))
		cap.Set(gocv.VideoCaptureFrameHeight, float64(height))
	}
	cap.Set(gocv.VideoCaptureBufferSize, 1)
	return cap, nil
}

// Read returns the next frame, backing off between failed reads. Every
// maxConsecutiveErrors failures the capture is reopened; only a failed reopen
// is returned to the caller.
func (s *CaptureSource) Read(ctx context.Context) (*models.Frame, error) {
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if s.cap != nil && s.cap.Read(&s.img) && !s.img.Empty() {
			s.errors = 0
			return s.frame()
		}

		s.errors++
		if s.errors >= maxConsecutiveErrors {
			if err := s.reset(); err != nil {
				return nil, fmt.Errorf("failed to reset capture after %d consecutive errors: %w", s.errors, err)
			}
			s.errors = 0
			continue
		}

		delay := time.Duration(s.errors*50) * time.Millisecond
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
	}
}

func (s *CaptureSource) frame() (*models.Frame, error) {
	src := s.img
	if s.width > 0 && s.height > 0 && (s.img.Cols() != s.width || s.img.Rows() != s.height) {
		resized := gocv.NewMat()
		defer resized.Close()
		gocv.Resize(s.img, &resized, image.Pt(s.width, s.height), 0, 0, gocv.InterpolationLinear)
		src = resized
	}

	data, err := encodeMat(src, s.quality)
	if err != nil {
		return nil, err
	}

	s.frameID++
	return &models.Frame{
		CameraID:  s.cameraID,
		FrameID:   s.frameID,
		Data:      data,
		Width:     src.Cols(),
		Height:    src.Rows(),
		Timestamp: time.Now(),
	}, nil
}

func (s *CaptureSource) reset() error {
	log.Warn().
		Str("camera_id", s.cameraID).
		Int("consecutive_errors", s.errors).
		Msg("Resetting VideoCapture")

	if s.cap != nil {
		s.cap.Close()
		s.cap = nil
	}
	cap, err := openVideoCapture(s.url, s.width, s.height)
	if err != nil {
		return err
	}
	s.cap = cap
	return nil
}

// Close releases the capture and its frame buffer
func (s *CaptureSource) Close() error {
	if s.cap != nil {
		s.cap.Close()
		s.cap = nil
	}
	return s.img.Close()
}

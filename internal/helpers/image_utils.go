package helpers

import (
	"fmt"

	"gocv.io/x/gocv"

	"safety-worker-go/internal/models"
)

const (
	HighQuality   = 95
	MediumQuality = 75
	LowQuality    = 50
)

// JPEGEncoder turns captured frames into JPEG bytes for snapshots and
// inference requests. Frames that are already JPEG pass through untouched.
type JPEGEncoder struct {
	Quality int
}

func NewJPEGEncoder(quality int) *JPEGEncoder {
	if quality <= 0 || quality > 100 {
		quality = HighQuality
	}
	return &JPEGEncoder{Quality: quality}
}

// Encode implements snapshot.Encoder
func (e *JPEGEncoder) Encode(frame *models.Frame) ([]byte, error) {
	if frame == nil {
		return nil, fmt.Errorf("nil frame")
	}
	return convertFrameToJPEG(frame.Data, frame.Width, frame.Height, e.Quality)
}

// isJPEGData checks if the byte slice contains JPEG data by checking magic bytes
func isJPEGData(data []byte) bool {
	if len(data) < 2 {
		return false
	}
	// JPEG magic bytes: FF D8
	return data[0] == 0xFF && data[1] == 0xD8
}

// convertBGRToJPEG converts BGR raw bytes to JPEG format
func convertBGRToJPEG(bgrData []byte, width, height int, quality int) ([]byte, error) {
	if len(bgrData) == 0 {
		return nil, fmt.Errorf("empty BGR data")
	}

	totalBytes := len(bgrData)
	if width <= 0 || height <= 0 || width*height*3 != totalBytes {
		if w, h, ok := guessDimensionsFromLength(totalBytes); ok {
			width, height = w, h
		} else {
			return nil, fmt.Errorf("unable to infer frame dimensions from BGR length=%d", totalBytes)
		}
	}

	mat, err := gocv.NewMatFromBytes(height, width, gocv.MatTypeCV8UC3, bgrData)
	if err != nil {
		return nil, fmt.Errorf("failed to create Mat from BGR data: %w", err)
	}
	defer mat.Close()

	return encodeMat(mat, quality)
}

func encodeMat(mat gocv.Mat, quality int) ([]byte, error) {
	buf, err := gocv.IMEncodeWithParams(gocv.JPEGFileExt, mat, []int{gocv.IMWriteJpegQuality, quality})
	if err != nil {
		return nil, fmt.Errorf("failed to encode frame as JPEG: %w", err)
	}
	defer buf.Close()

	// GetBytes aliases native memory released by Close
	out := make([]byte, buf.Len())
	copy(out, buf.GetBytes())
	return out, nil
}

func convertFrameToJPEG(frameData []byte, width, height int, quality int) ([]byte, error) {
	if len(frameData) == 0 {
		return nil, fmt.Errorf("empty frame data")
	}
	if isJPEGData(frameData) {
		return frameData, nil
	}
	return convertBGRToJPEG(frameData, width, height, quality)
}

// guessDimensionsFromLength tries to infer width/height from BGR byte length
func guessDimensionsFromLength(totalBytes int) (int, int, bool) {
	if totalBytes <= 0 || totalBytes%3 != 0 {
		return 0, 0, false
	}
	pixels := totalBytes / 3

	common := [][2]int{
		{3840, 2160}, {2560, 1440}, {1920, 1080}, {1600, 900},
		{1366, 768}, {1280, 960}, {1280, 720}, {1024, 768},
		{854, 480}, {800, 600}, {720, 480}, {640, 480},
		{640, 360}, {480, 360}, {426, 240}, {320, 240},
	}
	for _, wh := range common {
		if wh[0]*wh[1] == pixels {
			return wh[0], wh[1], true
		}
	}

	plausible := []int{1920, 1600, 1366, 1280, 1024, 960, 854, 800, 768, 720, 640, 480, 426, 400, 352, 320}
	for _, w := range plausible {
		if pixels%w == 0 {
			return w, pixels / w, true
		}
	}

	return 0, 0, false
}

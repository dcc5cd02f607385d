package detection

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"google.golang.org/protobuf/types/known/structpb"

	"safety-worker-go/internal/models"
)

type wireResponse struct {
	Width   int                `json:"width,omitempty"`
	Height  int                `json:"height,omitempty"`
	Persons []models.RawPerson `json:"persons"`
	Hazards []models.RawHazard `json:"hazards"`
}

// EncodeRequest builds the Detect request for a frame and its JPEG bytes
func EncodeRequest(frame *models.Frame, jpeg []byte) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]interface{}{
		"camera_id": frame.CameraID,
		"frame_id":  frame.FrameID,
		"width":     frame.Width,
		"height":    frame.Height,
		"timestamp": frame.Timestamp.UTC().Format(time.RFC3339Nano),
		"image":     base64.StdEncoding.EncodeToString(jpeg),
	})
}

// DecodeRequest is the server-side inverse of EncodeRequest
func DecodeRequest(req *structpb.Struct) (*models.Frame, error) {
	fields := req.GetFields()
	img, err := base64.StdEncoding.DecodeString(fields["image"].GetStringValue())
	if err != nil {
		return nil, fmt.Errorf("invalid image encoding: %w", err)
	}
	frame := &models.Frame{
		CameraID: fields["camera_id"].GetStringValue(),
		FrameID:  int64(fields["frame_id"].GetNumberValue()),
		Width:    int(fields["width"].GetNumberValue()),
		Height:   int(fields["height"].GetNumberValue()),
		Data:     img,
	}
	if ts := fields["timestamp"].GetStringValue(); ts != "" {
		if t, err := time.Parse(time.RFC3339Nano, ts); err == nil {
			frame.Timestamp = t
		}
	}
	return frame, nil
}

// DecodeResponse converts a Detect response into the frame's detection set.
// Frame size defaults to the request frame when the detector omits it.
func DecodeResponse(resp *structpb.Struct, frame *models.Frame) (models.FrameDetections, error) {
	raw, err := json.Marshal(resp.AsMap())
	if err != nil {
		return models.FrameDetections{}, fmt.Errorf("failed to read detection response: %w", err)
	}
	var wire wireResponse
	if err := json.Unmarshal(raw, &wire); err != nil {
		return models.FrameDetections{}, fmt.Errorf("malformed detection response: %w", err)
	}

	dets := models.FrameDetections{
		CameraID:  frame.CameraID,
		FrameID:   frame.FrameID,
		Width:     wire.Width,
		Height:    wire.Height,
		Timestamp: frame.Timestamp,
		Persons:   wire.Persons,
		Hazards:   wire.Hazards,
	}
	if dets.Width <= 0 {
		dets.Width = frame.Width
	}
	if dets.Height <= 0 {
		dets.Height = frame.Height
	}
	if dets.Persons == nil {
		dets.Persons = []models.RawPerson{}
	}
	if dets.Hazards == nil {
		dets.Hazards = []models.RawHazard{}
	}
	return dets, nil
}

// EncodeResponse is the server-side inverse of DecodeResponse
func EncodeResponse(dets models.FrameDetections) (*structpb.Struct, error) {
	raw, err := json.Marshal(wireResponse{
		Width:   dets.Width,
		Height:  dets.Height,
		Persons: dets.Persons,
		Hazards: dets.Hazards,
	})
	if err != nil {
		return nil, err
	}
	var m map[string]interface{}
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return structpb.NewStruct(m)
}

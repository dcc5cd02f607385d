package models

import (
	"fmt"
	"math"
	"time"
)

// COCO-17 keypoint indices used by the distress detector
const (
	KeypointNose          = 0
	KeypointLeftShoulder  = 5
	KeypointRightShoulder = 6
	KeypointLeftWrist     = 9
	KeypointRightWrist    = 10

	// MinKeypoints is the shortest skeleton that covers both wrists
	MinKeypoints = KeypointRightWrist + 1
)

// Gender is the canonical demographic label of a person
type Gender string

const (
	GenderMan     Gender = "man"
	GenderWoman   Gender = "woman"
	GenderUnknown Gender = "unknown"
)

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Distance returns the Euclidean distance between two points
func (p Point) Distance(o Point) float64 {
	return math.Hypot(p.X-o.X, p.Y-o.Y)
}

// BoundingBox is an axis-aligned box in pixel coordinates
type BoundingBox struct {
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
}

func (b BoundingBox) Width() float64  { return b.X2 - b.X1 }
func (b BoundingBox) Height() float64 { return b.Y2 - b.Y1 }
func (b BoundingBox) Area() float64   { return b.Width() * b.Height() }

// Valid reports whether the box has positive width and height
func (b BoundingBox) Valid() bool {
	return b.Width() > 0 && b.Height() > 0
}

func (b BoundingBox) Center() Point {
	return Point{X: (b.X1 + b.X2) / 2, Y: (b.Y1 + b.Y2) / 2}
}

// Contains reports whether p lies inside the box, edges included
func (b BoundingBox) Contains(p Point) bool {
	return p.X >= b.X1 && p.X <= b.X2 && p.Y >= b.Y1 && p.Y <= b.Y2
}

type Keypoint struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Confidence float64 `json:"confidence"`
}

// NearbyHazard is a hazard associated with a person
type NearbyHazard struct {
	Type       string  `json:"type"`
	Confidence float64 `json:"confidence"`
	Distance   float64 `json:"distance"`
}

// Person is a normalized person detection
type Person struct {
	ID            string         `json:"id"`
	BBox          BoundingBox    `json:"bbox"`
	Confidence    float64        `json:"confidence"`
	Gender        Gender         `json:"gender"`
	Age           int            `json:"age,omitempty"`
	AgeKnown      bool           `json:"age_known"`
	Keypoints     []Keypoint     `json:"keypoints,omitempty"` // nil when pose is unavailable
	HasHazard     bool           `json:"has_hazard"`
	NearbyHazards []NearbyHazard `json:"nearby_hazards,omitempty"`
	Area          int            `json:"area"`
}

// PersonID derives the stable per-frame identifier from the integer box centre
func PersonID(b BoundingBox) string {
	c := b.Center()
	return fmt.Sprintf("person_%d_%d", int(c.X), int(c.Y))
}

func (p Person) Center() Point { return p.BBox.Center() }

func (p Person) HasKeypoints() bool { return len(p.Keypoints) >= MinKeypoints }

// HazardObject is a normalized hazardous object detection
type HazardObject struct {
	BBox       BoundingBox `json:"bbox"`
	Confidence float64     `json:"confidence"`
	ClassLabel string      `json:"class_label"`
	Center     Point       `json:"center"`
}

// RawPerson is a person record as produced by the upstream detector
type RawPerson struct {
	BBox       []float64   `json:"bbox"`
	Confidence float64     `json:"confidence"`
	Gender     string      `json:"gender,omitempty"`
	Age        *int        `json:"age,omitempty"`
	Keypoints  [][]float64 `json:"keypoints,omitempty"` // [x, y, confidence] per joint
}

// RawHazard is a non-person object record as produced by the upstream detector
type RawHazard struct {
	BBox       []float64 `json:"bbox"`
	Confidence float64   `json:"confidence"`
	ClassLabel string    `json:"class_label"`
}

// FrameDetections is the full detection set for a single frame
type FrameDetections struct {
	CameraID  string      `json:"camera_id"`
	FrameID   int64       `json:"frame_id"`
	Width     int         `json:"width"`
	Height    int         `json:"height"`
	Timestamp time.Time   `json:"timestamp"`
	Persons   []RawPerson `json:"persons"`
	Hazards   []RawHazard `json:"hazards"`
}

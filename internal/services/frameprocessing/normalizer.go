package frameprocessing

import (
	"math"
	"strings"

	"safety-worker-go/internal/config"
	"safety-worker-go/internal/models"
)

// NormalizedFrame is the canonical detection set produced by the normalizer
type NormalizedFrame struct {
	Persons  []models.Person
	Hazards  []models.HazardObject
	Width    int
	Height   int
	Rejected int
}

// Normalize converts raw detector output into canonical persons and hazards.
// Malformed records are dropped and counted, never returned as errors.
func Normalize(dets models.FrameDetections, cfg config.ScoringConfig) NormalizedFrame {
	out := NormalizedFrame{
		Persons: make([]models.Person, 0, len(dets.Persons)),
		Hazards: make([]models.HazardObject, 0, len(dets.Hazards)),
	}

	var maxX, maxY float64
	for _, raw := range dets.Persons {
		box, ok := parseBox(raw.BBox)
		if !ok {
			out.Rejected++
			continue
		}
		conf := clamp01(raw.Confidence)
		if conf < cfg.PersonMinConfidence {
			out.Rejected++
			continue
		}

		p := models.Person{
			ID:         models.PersonID(box),
			BBox:       box,
			Confidence: conf,
			Gender:     NormalizeGender(raw.Gender),
			Keypoints:  parseKeypoints(raw.Keypoints),
			Area:       int(box.Area()),
		}
		if raw.Age != nil && *raw.Age >= 0 {
			p.Age = *raw.Age
			p.AgeKnown = true
		}
		out.Persons = append(out.Persons, p)
		maxX, maxY = math.Max(maxX, box.X2), math.Max(maxY, box.Y2)
	}

	for _, raw := range dets.Hazards {
		box, ok := parseBox(raw.BBox)
		if !ok {
			out.Rejected++
			continue
		}
		conf := clamp01(raw.Confidence)
		if conf < cfg.HazardMinConfidence {
			out.Rejected++
			continue
		}
		out.Hazards = append(out.Hazards, models.HazardObject{
			BBox:       box,
			Confidence: conf,
			ClassLabel: strings.ToLower(strings.TrimSpace(raw.ClassLabel)),
			Center:     box.Center(),
		})
		maxX, maxY = math.Max(maxX, box.X2), math.Max(maxY, box.Y2)
	}

	out.Width, out.Height = dets.Width, dets.Height
	if out.Width <= 0 {
		out.Width = int(math.Ceil(maxX))
	}
	if out.Height <= 0 {
		out.Height = int(math.Ceil(maxY))
	}
	return out
}

// NormalizeGender maps free-form detector labels onto the canonical set
func NormalizeGender(raw string) models.Gender {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "woman", "female", "f":
		return models.GenderWoman
	case "man", "male", "m":
		return models.GenderMan
	default:
		return models.GenderUnknown
	}
}

// maxCoordinate bounds box coordinates so pixel ids and areas stay exact ints
const maxCoordinate = 1e6

func parseBox(v []float64) (models.BoundingBox, bool) {
	if len(v) != 4 {
		return models.BoundingBox{}, false
	}
	for _, c := range v {
		if math.IsNaN(c) || math.Abs(c) > maxCoordinate {
			return models.BoundingBox{}, false
		}
	}
	box := models.BoundingBox{X1: v[0], Y1: v[1], X2: v[2], Y2: v[3]}
	return box, box.Valid()
}

// parseKeypoints returns nil unless every joint is a well-formed triple
func parseKeypoints(raw [][]float64) []models.Keypoint {
	if len(raw) == 0 {
		return nil
	}
	kps := make([]models.Keypoint, len(raw))
	for i, kp := range raw {
		if len(kp) < 3 {
			return nil
		}
		for _, c := range kp[:3] {
			if math.IsNaN(c) || math.IsInf(c, 0) {
				return nil
			}
		}
		kps[i] = models.Keypoint{X: kp[0], Y: kp[1], Confidence: clamp01(kp[2])}
	}
	return kps
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(1, v))
}

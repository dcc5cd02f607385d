package frameprocessing

import (
	"time"

	"safety-worker-go/internal/config"
	"safety-worker-go/internal/models"
)

var noon = time.Date(2024, 5, 14, 12, 0, 0, 0, time.UTC)

func rawPerson(gender string, conf float64, box ...float64) models.RawPerson {
	return models.RawPerson{BBox: box, Confidence: conf, Gender: gender}
}

func rawHazard(label string, conf float64, box ...float64) models.RawHazard {
	return models.RawHazard{BBox: box, Confidence: conf, ClassLabel: label}
}

// boxAt builds a w×h box centred on (cx, cy)
func boxAt(cx, cy, w, h float64) models.BoundingBox {
	return models.BoundingBox{X1: cx - w/2, Y1: cy - h/2, X2: cx + w/2, Y2: cy + h/2}
}

func personAt(gender models.Gender, cx, cy float64) models.Person {
	box := boxAt(cx, cy, 40, 80)
	return models.Person{ID: models.PersonID(box), BBox: box, Confidence: 0.9, Gender: gender}
}

// surroundedScene places one woman at (300,300) with three men 100px away
func surroundedScene() models.FrameDetections {
	return models.FrameDetections{
		CameraID:  "cam-1",
		FrameID:   7,
		Width:     640,
		Height:    640,
		Timestamp: noon,
		Persons: []models.RawPerson{
			rawPerson("female", 0.9, 280, 260, 320, 340),
			rawPerson("male", 0.9, 380, 260, 420, 340),
			rawPerson("male", 0.9, 280, 360, 320, 440),
			rawPerson("male", 0.9, 180, 260, 220, 340),
		},
	}
}

func defaultScoring() config.ScoringConfig {
	return config.DefaultScoringConfig()
}

// skeleton returns a 17-joint pose with every joint at zero confidence
func skeleton() []models.Keypoint {
	return make([]models.Keypoint, 17)
}

package frameprocessing

import (
	"math"

	"safety-worker-go/internal/config"
	"safety-worker-go/internal/models"
)

// Distress indicator names and weights
const (
	IndicatorHandsUp    = "hands_up"
	IndicatorDefensive  = "defensive_posture"
	IndicatorArmsSpread = "arms_spread"
	IndicatorFalling    = "falling"

	handsUpWeight    = 0.4
	defensiveWeight  = 0.3
	armsSpreadWeight = 0.2
	fallingWeight    = 0.3
)

// DetectDistress scores pose-based distress indicators for one person.
// Persons without a usable skeleton never report distress.
func DetectDistress(p models.Person, cfg config.ScoringConfig) models.DistressResult {
	res := models.DistressResult{PersonID: p.ID, Indicators: []string{}}
	if !p.HasKeypoints() {
		return res
	}

	kp := p.Keypoints
	nose := kp[models.KeypointNose]
	lw, rw := kp[models.KeypointLeftWrist], kp[models.KeypointRightWrist]
	ls, rs := kp[models.KeypointLeftShoulder], kp[models.KeypointRightShoulder]
	ok := func(pts ...models.Keypoint) bool {
		for _, k := range pts {
			if k.Confidence <= cfg.KeypointMinConfidence {
				return false
			}
		}
		return true
	}
	near := func(w models.Keypoint) bool {
		return ok(w, nose) && math.Hypot(w.X-nose.X, w.Y-nose.Y) <= cfg.DefensiveRadius
	}

	var score float64
	if ok(nose, lw, rw) && lw.Y < nose.Y-cfg.HandsUpMargin && rw.Y < nose.Y-cfg.HandsUpMargin {
		score += handsUpWeight
		res.Indicators = append(res.Indicators, IndicatorHandsUp)
	}
	if near(lw) || near(rw) {
		score += defensiveWeight
		res.Indicators = append(res.Indicators, IndicatorDefensive)
	}
	if ok(lw, rw, ls, rs) {
		shoulders := math.Abs(ls.X - rs.X)
		if shoulders > 0 && math.Abs(lw.X-rw.X)/shoulders > cfg.ArmsSpreadRatio {
			score += armsSpreadWeight
			res.Indicators = append(res.Indicators, IndicatorArmsSpread)
		}
	}
	if h := p.BBox.Height(); h > 0 && p.BBox.Width()/h > cfg.FallingAspectRatio {
		score += fallingWeight
		res.Indicators = append(res.Indicators, IndicatorFalling)
	}

	res.Confidence = math.Min(1, score)
	res.HasDistress = score > cfg.DistressThreshold
	return res
}

// DetectAllDistress returns only the persons showing distress
func DetectAllDistress(persons []models.Person, cfg config.ScoringConfig) []models.DistressResult {
	out := []models.DistressResult{}
	for _, p := range persons {
		if r := DetectDistress(p, cfg); r.HasDistress {
			out = append(out, r)
		}
	}
	return out
}

package frameprocessing

import (
	"math"
	"time"

	"safety-worker-go/internal/config"
	"safety-worker-go/internal/models"
)

// Aggregate folds person, group and distress contributions into the
// normalized [0,100] score. A frame with no persons always scores 0.
func Aggregate(personRisks []models.PersonRisk, group models.GroupRisk, distressCount int, at time.Time, cfg config.ScoringConfig) models.RiskBreakdown {
	b := models.RiskBreakdown{
		PersonRisks:        personRisks,
		Group:              group,
		NightMultiplier:    1,
		CrowdingMultiplier: 1,
	}
	if len(personRisks) == 0 {
		return b
	}

	for _, r := range personRisks {
		b.RawTotal += r.Total
	}
	b.DistressRisk = float64(distressCount) * cfg.DistressImpact
	b.RawTotal += group.Total() + b.DistressRisk

	if cfg.IsNight(at.Hour()) {
		b.NightMultiplier = cfg.NightMultiplier
	}
	if n := len(personRisks); n > cfg.CrowdingOnset {
		b.CrowdingMultiplier = 1 + cfg.CrowdingStep*float64(n-cfg.CrowdingOnset)
	}
	b.AdjustedTotal = b.RawTotal * b.NightMultiplier * b.CrowdingMultiplier
	b.Score = Normalize100(b.AdjustedTotal, cfg.LogisticMidpoint, cfg.LogisticSlope)
	return b
}

// Normalize100 maps an unbounded total onto [0,100] with a logistic curve
func Normalize100(total, midpoint, slope float64) float64 {
	score := 100 / (1 + math.Exp(-slope*(total-midpoint)))
	if math.IsNaN(score) {
		return 0
	}
	return math.Max(0, math.Min(100, score))
}

package alerts

import (
	"fmt"

	"safety-worker-go/internal/models"
)

// HandleHighRisk raises an alert once the frame score reaches threshold
func HandleHighRisk(a models.FrameAssessment, threshold float64, decision models.AlertDecision) models.AlertDecision {
	if a.RiskScore < threshold {
		return decision
	}

	decision.ShouldAlert = true
	decision.AlertType = models.AlertTypeHighRisk
	decision.Severity = models.AlertSeverityHigh
	if a.Analysis.OverallThreatLevel == models.ThreatCritical {
		decision.Severity = models.AlertSeverityCritical
	}
	decision.Title = "Risk threshold exceeded"
	decision.Description = fmt.Sprintf("Risk threshold (%.0f%%) exceeded: score %.1f, %d person(s), threat %s",
		threshold, a.RiskScore, len(a.Persons), a.Analysis.OverallThreatLevel)
	decision.Metadata["threshold"] = threshold
	decision.Metadata["persons"] = len(a.Persons)
	return decision
}

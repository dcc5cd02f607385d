package alerts

import (
	"fmt"
	"strings"

	"safety-worker-go/internal/models"
)

// HandleDistressSignal raises an alert when a woman's pose indicates distress
func HandleDistressSignal(a models.FrameAssessment, decision models.AlertDecision) models.AlertDecision {
	signals := a.Analysis.DistressSignals
	if len(signals) == 0 {
		return decision
	}

	strongest := signals[0]
	for _, s := range signals[1:] {
		if s.Confidence > strongest.Confidence {
			strongest = s
		}
	}

	decision.ShouldAlert = true
	decision.AlertType = models.AlertTypeDistressSignal
	decision.Severity = models.AlertSeverityHigh
	decision.Title = "Distress signal detected"
	decision.Description = fmt.Sprintf("%d distress signal(s), strongest %.2f (%s)",
		len(signals), strongest.Confidence, strings.Join(strongest.Indicators, ", "))
	decision.Metadata["signals"] = len(signals)
	decision.Metadata["confidence"] = strongest.Confidence
	decision.Metadata["indicators"] = strongest.Indicators
	return decision
}

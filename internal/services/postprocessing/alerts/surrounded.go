package alerts

import (
	"fmt"

	"safety-worker-go/internal/models"
)

// HandleSurrounded raises a high-severity alert when a woman is encircled by men
func HandleSurrounded(a models.FrameAssessment, decision models.AlertDecision) models.AlertDecision {
	women := a.Analysis.SurroundedWomen
	if len(women) == 0 {
		return decision
	}

	men := 0
	for _, w := range women {
		if len(w.NearbyMen) > men {
			men = len(w.NearbyMen)
		}
	}

	decision.ShouldAlert = true
	decision.AlertType = models.AlertTypeSurrounded
	decision.Severity = models.AlertSeverityHigh
	decision.Title = "Woman surrounded"
	decision.Description = fmt.Sprintf("%d woman(s) surrounded, up to %d men nearby", len(women), men)
	decision.Metadata["women"] = len(women)
	decision.Metadata["max_nearby_men"] = men
	return decision
}

package alerts

import (
	"fmt"

	"safety-worker-go/internal/models"
)

// HandleLoneWoman raises a low-severity alert when an isolated woman is in frame
func HandleLoneWoman(a models.FrameAssessment, decision models.AlertDecision) models.AlertDecision {
	women := a.Analysis.LoneWomen
	if len(women) == 0 {
		return decision
	}

	peak := women[0]
	for _, w := range women[1:] {
		if w.IsolationRisk > peak.IsolationRisk {
			peak = w
		}
	}

	decision.ShouldAlert = true
	decision.AlertType = models.AlertTypeLoneWoman
	decision.Severity = models.AlertSeverityLow
	decision.Title = "Lone woman detected"
	decision.Description = fmt.Sprintf("%d lone woman(s) in frame, highest isolation risk %.2f with %d escape route(s)",
		len(women), peak.IsolationRisk, peak.EscapeRoutes)
	decision.Metadata["women"] = len(women)
	decision.Metadata["isolation_risk"] = peak.IsolationRisk
	decision.Metadata["woman_id"] = peak.WomanID
	return decision
}

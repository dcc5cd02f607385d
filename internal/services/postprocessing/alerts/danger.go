package alerts

import (
	"fmt"
	"sort"
	"strings"

	"safety-worker-go/internal/models"
)

// HandleWomenInDanger raises a critical alert when a hazard is on or next to a woman
func HandleWomenInDanger(a models.FrameAssessment, decision models.AlertDecision) models.AlertDecision {
	women := a.Analysis.WomenInDanger
	if len(women) == 0 {
		return decision
	}

	decision.ShouldAlert = true
	decision.AlertType = models.AlertTypeWomenInDanger
	decision.Severity = models.AlertSeverityCritical
	decision.Title = "Woman in immediate danger"

	hazards := hazardTypes(a.Persons)
	if len(hazards) > 0 {
		decision.Description = fmt.Sprintf("%d woman(s) in danger, hazards: %s", len(women), strings.Join(hazards, ", "))
	} else {
		decision.Description = fmt.Sprintf("%d woman(s) in danger", len(women))
	}
	decision.Metadata["women"] = len(women)
	decision.Metadata["hazards"] = hazards
	return decision
}

func hazardTypes(persons []models.Person) []string {
	seen := map[string]bool{}
	for _, p := range persons {
		for _, h := range p.NearbyHazards {
			seen[h.Type] = true
		}
	}
	out := make([]string, 0, len(seen))
	for t := range seen {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

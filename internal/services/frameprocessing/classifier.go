package frameprocessing

import (
	"safety-worker-go/internal/models"
)

const (
	loneWomanIsolationMin = 0.7
	surroundedThreatMin   = 0.6
)

// Classify buckets analysed women into scenario categories and derives the
// overall threat level by strict priority.
func Classify(persons []models.Person, women []models.WomanAnalysis, distress []models.DistressResult) models.SafetyAnalysis {
	armed := make(map[string]bool, len(persons))
	for _, p := range persons {
		armed[p.ID] = p.HasHazard
	}

	a := models.SafetyAnalysis{
		LoneWomen:       []models.WomanAnalysis{},
		SurroundedWomen: []models.WomanAnalysis{},
		WomenInDanger:   []models.WomanAnalysis{},
		DistressSignals: distress,
	}
	if a.DistressSignals == nil {
		a.DistressSignals = []models.DistressResult{}
	}

	for _, w := range women {
		if w.IsAlone && w.IsolationRisk > loneWomanIsolationMin {
			a.LoneWomen = append(a.LoneWomen, w)
		}
		// threat level 0.6 (three nearby men) counts as surrounded
		if w.IsSurrounded && w.ThreatLevel >= surroundedThreatMin {
			a.SurroundedWomen = append(a.SurroundedWomen, w)
		}
		if w.ImmediateDanger || armed[w.WomanID] {
			a.WomenInDanger = append(a.WomenInDanger, w)
		}
	}

	switch {
	case len(a.WomenInDanger) > 0:
		a.OverallThreatLevel = models.ThreatCritical
	case len(a.SurroundedWomen) > 0:
		a.OverallThreatLevel = models.ThreatHigh
	case len(a.DistressSignals) > 0:
		a.OverallThreatLevel = models.ThreatModerate
	case len(a.LoneWomen) > 0:
		a.OverallThreatLevel = models.ThreatLow
	default:
		a.OverallThreatLevel = models.ThreatSafe
	}
	return a
}

// EmptyAnalysis is the analysis of a frame with nothing in it
func EmptyAnalysis() models.SafetyAnalysis {
	return Classify(nil, nil, nil)
}

package frameprocessing

import (
	"safety-worker-go/internal/config"
	"safety-worker-go/internal/models"
)

// Associate links hazards to persons. A hazard belongs to every person whose
// box contains its centre or whose centre lies within AssociationDistance.
// Persons are updated in place; a hazard may attach to several persons.
func Associate(persons []models.Person, hazards []models.HazardObject, cfg config.ScoringConfig) {
	for i := range persons {
		p := &persons[i]
		center := p.Center()
		for _, h := range hazards {
			dist := center.Distance(h.Center)
			if !p.BBox.Contains(h.Center) && dist > cfg.AssociationDistance {
				continue
			}
			p.HasHazard = true
			p.NearbyHazards = append(p.NearbyHazards, models.NearbyHazard{
				Type:       h.ClassLabel,
				Confidence: h.Confidence,
				Distance:   dist,
			})
		}
	}
}

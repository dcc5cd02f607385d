package frameprocessing

import (
	"safety-worker-go/internal/config"
	"safety-worker-go/internal/models"
)

// Risk component names reported in PersonRisk.Components
const (
	ComponentPresence     = "presence"
	ComponentFemale       = "female_vulnerability"
	ComponentYouth        = "youth"
	ComponentElderly      = "elderly"
	ComponentHazard       = "hazard"
	ComponentUncertainty  = "low_confidence"
	ComponentUnidentified = "unidentified"
)

// WeighPerson computes the additive risk contribution of a single person
func WeighPerson(p models.Person, cfg config.ScoringConfig) models.PersonRisk {
	r := models.PersonRisk{PersonID: p.ID, Components: map[string]float64{}}
	add := func(name string, v float64) {
		if v == 0 {
			return
		}
		r.Components[name] += v
		r.Total += v
	}

	add(ComponentPresence, cfg.BasePresenceRisk)

	switch p.Gender {
	case models.GenderWoman:
		add(ComponentFemale, cfg.FemaleVulnerability)
		if p.AgeKnown {
			if p.Age >= cfg.YouthAgeMin && p.Age <= cfg.YouthAgeMax {
				add(ComponentYouth, cfg.YouthRisk)
			} else if p.Age > cfg.ElderlyAgeMin {
				add(ComponentElderly, cfg.ElderlyRisk)
			}
		}
	case models.GenderUnknown:
		add(ComponentUnidentified, cfg.UnidentifiedRisk)
	}

	for _, h := range p.NearbyHazards {
		add(ComponentHazard, cfg.HazardImpactBase*cfg.HazardMultiplier(h.Type)*h.Confidence)
	}

	if p.Confidence < cfg.LowConfidenceThreshold {
		add(ComponentUncertainty, cfg.UncertaintyRisk)
	}

	return r
}

// WeighPersons weighs every person in detection order
func WeighPersons(persons []models.Person, cfg config.ScoringConfig) []models.PersonRisk {
	out := make([]models.PersonRisk, len(persons))
	for i, p := range persons {
		out[i] = WeighPerson(p, cfg)
	}
	return out
}

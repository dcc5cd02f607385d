package frameprocessing

import (
	"math"

	"safety-worker-go/internal/config"
	"safety-worker-go/internal/models"
)

var escapeDirections = [4]models.Point{{X: 0, Y: -1}, {X: 0, Y: 1}, {X: -1, Y: 0}, {X: 1, Y: 0}}

// GroupAnalysis is the output of the group dynamics stage
type GroupAnalysis struct {
	Women []models.WomanAnalysis
	Group models.GroupRisk
}

// AnalyzeGroups evaluates every woman's surroundings and the frame-level
// gender ratio. Frame dimensions are required for isolation and escape routes.
func AnalyzeGroups(persons []models.Person, width, height int, cfg config.ScoringConfig) GroupAnalysis {
	var out GroupAnalysis
	men, women := 0, 0
	for _, p := range persons {
		switch p.Gender {
		case models.GenderMan:
			men++
		case models.GenderWoman:
			women++
		}
	}

	for i, p := range persons {
		if p.Gender != models.GenderWoman {
			continue
		}
		out.Women = append(out.Women, analyzeWoman(i, persons, width, height, cfg))
	}

	if women > 0 {
		ratio := float64(men) / float64(women)
		out.Group.MaleToFemaleRatio = ratio
		if ratio > cfg.RatioThreshold {
			out.Group.RatioRisk = cfg.RatioImpact * (ratio - 1)
		}
		if women == 1 && men >= 2 {
			out.Group.LoneWomanRisk = cfg.LoneWomanInGroupRisk
		}
	}
	return out
}

func analyzeWoman(idx int, persons []models.Person, width, height int, cfg config.ScoringConfig) models.WomanAnalysis {
	woman := persons[idx]
	center := woman.Center()
	wa := models.WomanAnalysis{
		WomanID:         woman.ID,
		Position:        center,
		NearbyMen:       []models.NearbyPerson{},
		ImmediateDanger: woman.HasHazard,
	}

	surrounding := 0
	for j, other := range persons {
		if j == idx {
			continue
		}
		dist := center.Distance(other.Center())
		if dist > cfg.NearbyRadius {
			continue
		}
		wa.NearbyPeople++
		if other.Gender != models.GenderMan {
			continue
		}
		wa.NearbyMen = append(wa.NearbyMen, models.NearbyPerson{
			PersonID:  other.ID,
			Distance:  dist,
			HasHazard: other.HasHazard,
		})
		if dist <= cfg.SurroundingRadius {
			surrounding++
		}
		if other.HasHazard {
			wa.ImmediateDanger = true
		}
	}

	wa.IsAlone = wa.NearbyPeople == 0
	wa.IsSurrounded = surrounding >= cfg.SurroundingThreshold
	wa.ThreatLevel = math.Min(1, float64(len(wa.NearbyMen))/float64(cfg.ThreatMenSaturation))
	if wa.ImmediateDanger {
		wa.ThreatLevel = 1
	}
	if wa.IsAlone {
		wa.IsolationRisk = isolationRisk(center, width, height, cfg.MinIsolationRisk)
	}
	wa.EscapeRoutes = escapeRoutes(idx, persons, width, height, cfg.EscapeRaySteps)
	return wa
}

// isolationRisk grows as the woman nears the frame edge, floored at floor
func isolationRisk(c models.Point, width, height int, floor float64) float64 {
	short := math.Min(float64(width), float64(height))
	if short <= 0 {
		return floor
	}
	edge := math.Min(math.Min(c.X, c.Y), math.Min(float64(width)-c.X, float64(height)-c.Y))
	edge = math.Max(0, edge)
	return math.Max(floor, 1-edge/short*2)
}

// escapeRoutes counts the cardinal directions not blocked by another person's box
func escapeRoutes(idx int, persons []models.Person, width, height, steps int) int {
	if width <= 0 || height <= 0 || steps < 2 {
		return 0
	}
	c := persons[idx].Center()
	stepX := float64(width) / float64(steps)
	stepY := float64(height) / float64(steps)

	open := 0
	for _, d := range escapeDirections {
		blocked := false
		for s := 1; s < steps && !blocked; s++ {
			sample := models.Point{X: c.X + d.X*stepX*float64(s), Y: c.Y + d.Y*stepY*float64(s)}
			if sample.X < 0 || sample.Y < 0 || sample.X > float64(width) || sample.Y > float64(height) {
				break
			}
			for j, other := range persons {
				if j != idx && other.BBox.Contains(sample) {
					blocked = true
					break
				}
			}
		}
		if !blocked {
			open++
		}
	}
	return open
}

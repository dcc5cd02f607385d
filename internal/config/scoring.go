package config

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidScoring is wrapped by every ScoringConfig validation failure.
var ErrInvalidScoring = errors.New("invalid scoring config")

// ScoringConfig holds every tunable of the risk pipeline.
type ScoringConfig struct {
	// Detection normalizer
	PersonMinConfidence float64 `yaml:"person_min_confidence"`
	HazardMinConfidence float64 `yaml:"hazard_min_confidence"`

	// Spatial association
	AssociationDistance float64 `yaml:"association_distance"`

	// Per-person weighting
	BasePresenceRisk        float64            `yaml:"base_presence_risk"`
	FemaleVulnerability     float64            `yaml:"female_vulnerability"`
	YouthAgeMin             int                `yaml:"youth_age_min"`
	YouthAgeMax             int                `yaml:"youth_age_max"`
	YouthRisk               float64            `yaml:"youth_risk"`
	ElderlyAgeMin           int                `yaml:"elderly_age_min"`
	ElderlyRisk             float64            `yaml:"elderly_risk"`
	HazardImpactBase        float64            `yaml:"hazard_impact_base"`
	HazardMultipliers       map[string]float64 `yaml:"hazard_multipliers"`
	DefaultHazardMultiplier float64            `yaml:"default_hazard_multiplier"`
	LowConfidenceThreshold  float64            `yaml:"low_confidence_threshold"`
	UncertaintyRisk         float64            `yaml:"uncertainty_risk"`
	UnidentifiedRisk        float64            `yaml:"unidentified_risk"`

	// Group dynamics
	NearbyRadius         float64 `yaml:"nearby_radius"`
	SurroundingRadius    float64 `yaml:"surrounding_radius"`
	SurroundingThreshold int     `yaml:"surrounding_threshold"`
	ThreatMenSaturation  int     `yaml:"threat_men_saturation"`
	EscapeRaySteps       int     `yaml:"escape_ray_steps"`
	MinIsolationRisk     float64 `yaml:"min_isolation_risk"`
	RatioThreshold       float64 `yaml:"ratio_threshold"`
	RatioImpact          float64 `yaml:"ratio_impact"`
	LoneWomanInGroupRisk float64 `yaml:"lone_woman_in_group_risk"`

	// Distress detector
	HandsUpMargin         float64 `yaml:"hands_up_margin"`
	KeypointMinConfidence float64 `yaml:"keypoint_min_confidence"`
	DefensiveRadius       float64 `yaml:"defensive_radius"`
	ArmsSpreadRatio       float64 `yaml:"arms_spread_ratio"`
	FallingAspectRatio    float64 `yaml:"falling_aspect_ratio"`
	DistressThreshold     float64 `yaml:"distress_threshold"`
	DistressImpact        float64 `yaml:"distress_impact"`

	// Aggregation
	NightStartHour   int     `yaml:"night_start_hour"`
	NightEndHour     int     `yaml:"night_end_hour"`
	NightMultiplier  float64 `yaml:"night_multiplier"`
	CrowdingOnset    int     `yaml:"crowding_onset"`
	CrowdingStep     float64 `yaml:"crowding_step"`
	LogisticMidpoint float64 `yaml:"logistic_midpoint"`
	LogisticSlope    float64 `yaml:"logistic_slope"`
}

// DefaultHazardMultipliers returns a fresh copy of the built-in hazard severity table.
func DefaultHazardMultipliers() map[string]float64 {
	return map[string]float64{
		"gun":          3.0,
		"firearm":      3.0,
		"pistol":       3.0,
		"rifle":        3.5,
		"sword":        2.5,
		"knife":        2.0,
		"scissors":     2.0,
		"club":         1.5,
		"baseball bat": 1.5,
	}
}

func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		PersonMinConfidence: 0.25,
		HazardMinConfidence: 0.08,

		AssociationDistance: 100,

		BasePresenceRisk:        0.05,
		FemaleVulnerability:     0.2,
		YouthAgeMin:             16,
		YouthAgeMax:             30,
		YouthRisk:               0.15,
		ElderlyAgeMin:           60,
		ElderlyRisk:             0.1,
		HazardImpactBase:        2.0,
		HazardMultipliers:       DefaultHazardMultipliers(),
		DefaultHazardMultiplier: 2.0,
		LowConfidenceThreshold:  0.5,
		UncertaintyRisk:         0.1,
		UnidentifiedRisk:        0.1,

		NearbyRadius:         200,
		SurroundingRadius:    150,
		SurroundingThreshold: 2,
		ThreatMenSaturation:  5,
		EscapeRaySteps:       10,
		MinIsolationRisk:     0.5,
		RatioThreshold:       2.0,
		RatioImpact:          0.3,
		LoneWomanInGroupRisk: 1.5,

		HandsUpMargin:         0,
		KeypointMinConfidence: 0.5,
		DefensiveRadius:       100,
		ArmsSpreadRatio:       1.8,
		FallingAspectRatio:    1.5,
		DistressThreshold:     0.4,
		DistressImpact:        1.0,

		NightStartHour:   22,
		NightEndHour:     6,
		NightMultiplier:  1.2,
		CrowdingOnset:    5,
		CrowdingStep:     0.05,
		LogisticMidpoint: 10,
		LogisticSlope:    0.1,
	}
}

// HazardMultiplier returns the severity multiplier for a hazard class label.
func (s ScoringConfig) HazardMultiplier(label string) float64 {
	if m, ok := s.HazardMultipliers[strings.ToLower(strings.TrimSpace(label))]; ok {
		return m
	}
	return s.DefaultHazardMultiplier
}

// IsNight reports whether hour falls in the night window. The window may wrap midnight.
func (s ScoringConfig) IsNight(hour int) bool {
	if s.NightStartHour == s.NightEndHour {
		return false
	}
	if s.NightStartHour > s.NightEndHour {
		return hour >= s.NightStartHour || hour < s.NightEndHour
	}
	return hour >= s.NightStartHour && hour < s.NightEndHour
}

func (s ScoringConfig) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidScoring}, args...)...))
		}
	}

	check(s.PersonMinConfidence >= 0 && s.PersonMinConfidence <= 1, "person_min_confidence %v out of [0,1]", s.PersonMinConfidence)
	check(s.HazardMinConfidence >= 0 && s.HazardMinConfidence <= 1, "hazard_min_confidence %v out of [0,1]", s.HazardMinConfidence)
	check(s.AssociationDistance >= 0, "association_distance must be non-negative")
	check(s.NearbyRadius > 0, "nearby_radius must be positive")
	check(s.SurroundingRadius > 0, "surrounding_radius must be positive")
	check(s.SurroundingThreshold > 0, "surrounding_threshold must be positive")
	check(s.ThreatMenSaturation > 0, "threat_men_saturation must be positive")
	check(s.EscapeRaySteps > 1, "escape_ray_steps must be greater than 1")
	check(s.YouthAgeMin <= s.YouthAgeMax, "youth age band is inverted (%d > %d)", s.YouthAgeMin, s.YouthAgeMax)
	check(s.NightStartHour >= 0 && s.NightStartHour < 24, "night_start_hour %d out of range", s.NightStartHour)
	check(s.NightEndHour >= 0 && s.NightEndHour < 24, "night_end_hour %d out of range", s.NightEndHour)
	check(s.LogisticSlope > 0, "logistic_slope must be positive")
	check(s.DistressThreshold >= 0, "distress_threshold must be non-negative")
	for label, m := range s.HazardMultipliers {
		check(m >= 0, "hazard multiplier for %q is negative", label)
	}

	return errors.Join(errs...)
}

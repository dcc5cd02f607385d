package models

import "time"

// ThreatLevel is the overall categorical assessment of a frame
type ThreatLevel string

const (
	ThreatSafe     ThreatLevel = "SAFE"
	ThreatLow      ThreatLevel = "LOW"
	ThreatModerate ThreatLevel = "MODERATE"
	ThreatHigh     ThreatLevel = "HIGH"
	ThreatCritical ThreatLevel = "CRITICAL"
)

// Rank orders threat levels, SAFE being 0
func (t ThreatLevel) Rank() int {
	switch t {
	case ThreatLow:
		return 1
	case ThreatModerate:
		return 2
	case ThreatHigh:
		return 3
	case ThreatCritical:
		return 4
	default:
		return 0
	}
}

// NearbyPerson is another person inside a woman's nearby radius
type NearbyPerson struct {
	PersonID  string  `json:"person_id"`
	Distance  float64 `json:"distance"`
	HasHazard bool    `json:"has_hazard"`
}

// WomanAnalysis is the group-dynamics result for one woman
type WomanAnalysis struct {
	WomanID         string         `json:"woman_id"`
	Position        Point          `json:"position"`
	IsAlone         bool           `json:"is_alone"`
	IsSurrounded    bool           `json:"is_surrounded"`
	NearbyMen       []NearbyPerson `json:"nearby_men"`
	NearbyPeople    int            `json:"nearby_people"`
	IsolationRisk   float64        `json:"isolation_risk"`
	ThreatLevel     float64        `json:"threat_level"`
	ImmediateDanger bool           `json:"immediate_danger"`
	EscapeRoutes    int            `json:"escape_routes"`
}

type DistressResult struct {
	PersonID    string   `json:"person_id"`
	HasDistress bool     `json:"has_distress"`
	Confidence  float64  `json:"confidence"`
	Indicators  []string `json:"indicators"`
}

// SafetyAnalysis groups women by scenario for one frame
type SafetyAnalysis struct {
	LoneWomen          []WomanAnalysis  `json:"lone_women"`
	SurroundedWomen    []WomanAnalysis  `json:"surrounded_women"`
	WomenInDanger      []WomanAnalysis  `json:"women_in_danger"`
	DistressSignals    []DistressResult `json:"distress_signals"`
	OverallThreatLevel ThreatLevel      `json:"overall_threat_level"`
}

// PersonRisk is the additive risk contribution of one person
type PersonRisk struct {
	PersonID   string             `json:"person_id"`
	Total      float64            `json:"total"`
	Components map[string]float64 `json:"components"`
}

// GroupRisk holds frame-level group increments
type GroupRisk struct {
	MaleToFemaleRatio float64 `json:"male_to_female_ratio"`
	RatioRisk         float64 `json:"ratio_risk"`
	LoneWomanRisk     float64 `json:"lone_woman_risk"`
}

func (g GroupRisk) Total() float64 { return g.RatioRisk + g.LoneWomanRisk }

// RiskBreakdown explains how the normalized score was reached
type RiskBreakdown struct {
	PersonRisks        []PersonRisk `json:"person_risks"`
	Group              GroupRisk    `json:"group"`
	DistressRisk       float64      `json:"distress_risk"`
	RawTotal           float64      `json:"raw_total"`
	NightMultiplier    float64      `json:"night_multiplier"`
	CrowdingMultiplier float64      `json:"crowding_multiplier"`
	AdjustedTotal      float64      `json:"adjusted_total"`
	Score              float64      `json:"score"`
}

// FrameAssessment is the pipeline output for one frame
type FrameAssessment struct {
	CameraID  string         `json:"camera_id"`
	FrameID   int64          `json:"frame_id"`
	Timestamp time.Time      `json:"timestamp"`
	RiskScore float64        `json:"risk_score"`
	RiskBand  string         `json:"risk_band"`
	Analysis  SafetyAnalysis `json:"analysis"`
	Persons   []Person       `json:"persons"`
	Hazards   []HazardObject `json:"hazards"`
	Breakdown RiskBreakdown  `json:"breakdown"`
	Rejected  int            `json:"rejected"`
	Degraded  bool           `json:"degraded,omitempty"`
}

// RiskBand maps a normalized score to its display label
func RiskBand(score float64) string {
	switch {
	case score > 70:
		return "HIGH RISK"
	case score > 40:
		return "MODERATE"
	case score > 15:
		return "LOW RISK"
	default:
		return "SAFE"
	}
}

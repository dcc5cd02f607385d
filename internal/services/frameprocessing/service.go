package frameprocessing

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"safety-worker-go/internal/config"
	"safety-worker-go/internal/models"
)

// Service runs the scoring pipeline over one frame's detections. It holds no
// per-frame state and is safe for concurrent use by several camera workers.
type Service struct {
	scoring config.ScoringConfig
	logger  zerolog.Logger
}

func NewService(scoring config.ScoringConfig) *Service {
	return &Service{
		scoring: scoring,
		logger:  log.With().Str("service", "frameprocessing").Logger(),
	}
}

func (s *Service) Scoring() config.ScoringConfig { return s.scoring }

// ProcessFrame normalizes, associates, weighs, analyses and classifies a
// detection set. now is used only when the detections carry no timestamp.
// A panic inside any stage is recovered and reported as a degraded SAFE frame.
func (s *Service) ProcessFrame(dets models.FrameDetections, now time.Time) (out models.FrameAssessment) {
	at := dets.Timestamp
	if at.IsZero() {
		at = now
	}

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error().
				Str("camera_id", dets.CameraID).
				Int64("frame_id", dets.FrameID).
				Str("panic", fmt.Sprint(r)).
				Msg("🔥 Recovered from panic in scoring pipeline, treating frame as no signal")
			out = degradedAssessment(dets, at)
		}
	}()

	nf := Normalize(dets, s.scoring)
	Associate(nf.Persons, nf.Hazards, s.scoring)

	risks := WeighPersons(nf.Persons, s.scoring)
	groups := AnalyzeGroups(nf.Persons, nf.Width, nf.Height, s.scoring)

	women := make([]models.Person, 0, len(groups.Women))
	for _, p := range nf.Persons {
		if p.Gender == models.GenderWoman {
			women = append(women, p)
		}
	}
	distress := DetectAllDistress(women, s.scoring)

	breakdown := Aggregate(risks, groups.Group, len(distress), at, s.scoring)
	analysis := Classify(nf.Persons, groups.Women, distress)

	if nf.Rejected > 0 {
		s.logger.Debug().
			Str("camera_id", dets.CameraID).
			Int64("frame_id", dets.FrameID).
			Int("rejected", nf.Rejected).
			Msg("Dropped malformed or low-confidence detections")
	}

	return models.FrameAssessment{
		CameraID:  dets.CameraID,
		FrameID:   dets.FrameID,
		Timestamp: at,
		RiskScore: breakdown.Score,
		RiskBand:  models.RiskBand(breakdown.Score),
		Analysis:  analysis,
		Persons:   nf.Persons,
		Hazards:   nf.Hazards,
		Breakdown: breakdown,
		Rejected:  nf.Rejected,
	}
}

func degradedAssessment(dets models.FrameDetections, at time.Time) models.FrameAssessment {
	return models.FrameAssessment{
		CameraID:  dets.CameraID,
		FrameID:   dets.FrameID,
		Timestamp: at,
		RiskBand:  models.RiskBand(0),
		Analysis:  EmptyAnalysis(),
		Persons:   []models.Person{},
		Hazards:   []models.HazardObject{},
		Breakdown: models.RiskBreakdown{NightMultiplier: 1, CrowdingMultiplier: 1},
		Degraded:  true,
	}
}

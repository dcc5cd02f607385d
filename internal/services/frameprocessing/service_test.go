package frameprocessing

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"safety-worker-go/internal/models"
)

func TestProcessFrameEmpty(t *testing.T) {
	svc := NewService(defaultScoring())
	res := svc.ProcessFrame(models.FrameDetections{CameraID: "cam-0"}, noon)

	assert.Equal(t, 0.0, res.RiskScore)
	assert.Equal(t, "SAFE", res.RiskBand)
	assert.Equal(t, models.ThreatSafe, res.Analysis.OverallThreatLevel)
	assert.Equal(t, noon, res.Timestamp)
	assert.False(t, res.Degraded)
}

func TestProcessFrameIsIdempotent(t *testing.T) {
	svc := NewService(defaultScoring())
	dets := surroundedScene()
	dets.Hazards = []models.RawHazard{rawHazard("knife", 0.9, 415, 295, 425, 305)}
	dets.Persons[0].Keypoints = [][]float64{
		{300, 280, 0.9}, {0, 0, 0}, {0, 0, 0}, {0, 0, 0}, {0, 0, 0},
		{290, 290, 0.9}, {310, 290, 0.9}, {0, 0, 0}, {0, 0, 0},
		{295, 250, 0.9}, {305, 250, 0.9},
	}

	first := svc.ProcessFrame(dets, noon)
	second := svc.ProcessFrame(dets, noon.Add(3*time.Hour))

	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("pipeline is not a pure function of its input (-first +second):\n%s", diff)
	}
	require.Len(t, first.Analysis.DistressSignals, 1)
	assert.Greater(t, first.RiskScore, 0.0)
}

func TestProcessFrameUsesClockWhenUnstamped(t *testing.T) {
	svc := NewService(defaultScoring())
	dets := models.FrameDetections{Persons: []models.RawPerson{rawPerson("female", 0.9, 0, 0, 40, 80)}}

	day := svc.ProcessFrame(dets, noon)
	night := svc.ProcessFrame(dets, time.Date(2024, 5, 14, 2, 0, 0, 0, time.UTC))

	assert.Equal(t, 1.0, day.Breakdown.NightMultiplier)
	assert.Equal(t, 1.2, night.Breakdown.NightMultiplier)
	assert.Greater(t, night.RiskScore, day.RiskScore)
}

func TestProcessFrameLoneWoman(t *testing.T) {
	svc := NewService(defaultScoring())
	dets := models.FrameDetections{
		CameraID:  "cam-2",
		Width:     640,
		Height:    480,
		Timestamp: noon,
		Persons:   []models.RawPerson{rawPerson("female", 0.9, 0, 0, 40, 80)},
	}

	res := svc.ProcessFrame(dets, noon)
	require.Len(t, res.Analysis.LoneWomen, 1)
	assert.Equal(t, models.ThreatLow, res.Analysis.OverallThreatLevel)
	assert.InDelta(t, Normalize100(0.25, 10, 0.1), res.RiskScore, 1e-9)
}

func TestDegradedAssessment(t *testing.T) {
	res := degradedAssessment(models.FrameDetections{CameraID: "cam-3", FrameID: 9}, noon)
	assert.True(t, res.Degraded)
	assert.Zero(t, res.RiskScore)
	assert.Equal(t, models.ThreatSafe, res.Analysis.OverallThreatLevel)
	assert.Equal(t, "cam-3", res.CameraID)
}

package frameprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"safety-worker-go/internal/models"
)

func posedPerson(box models.BoundingBox, joints map[int]models.Keypoint) models.Person {
	kps := skeleton()
	for idx, kp := range joints {
		kps[idx] = kp
	}
	return models.Person{ID: models.PersonID(box), BBox: box, Confidence: 0.9, Gender: models.GenderWoman, Keypoints: kps}
}

func TestDistressWristsAboveNose(t *testing.T) {
	p := posedPerson(models.BoundingBox{X1: 50, Y1: 20, X2: 150, Y2: 300}, map[int]models.Keypoint{
		models.KeypointNose:       {X: 100, Y: 100, Confidence: 0.9},
		models.KeypointLeftWrist:  {X: 90, Y: 40, Confidence: 0.9},
		models.KeypointRightWrist: {X: 110, Y: 40, Confidence: 0.9},
	})

	res := DetectDistress(p, defaultScoring())
	assert.True(t, res.HasDistress)
	assert.Equal(t, []string{IndicatorHandsUp, IndicatorDefensive}, res.Indicators)
	assert.InDelta(t, 0.7, res.Confidence, 1e-9)
	assert.Equal(t, p.ID, res.PersonID)
}

func TestDistressThresholdIsStrict(t *testing.T) {
	p := posedPerson(models.BoundingBox{X1: 0, Y1: 0, X2: 200, Y2: 400}, map[int]models.Keypoint{
		models.KeypointNose:       {X: 100, Y: 200, Confidence: 0.9},
		models.KeypointLeftWrist:  {X: 0, Y: 50, Confidence: 0.9},
		models.KeypointRightWrist: {X: 200, Y: 50, Confidence: 0.9},
	})

	res := DetectDistress(p, defaultScoring())
	assert.Equal(t, []string{IndicatorHandsUp}, res.Indicators)
	assert.InDelta(t, 0.4, res.Confidence, 1e-9)
	assert.False(t, res.HasDistress, "hands up alone sits exactly on the threshold")
}

func TestDistressLowConfidenceJoints(t *testing.T) {
	p := posedPerson(models.BoundingBox{X1: 50, Y1: 20, X2: 150, Y2: 300}, map[int]models.Keypoint{
		models.KeypointNose:       {X: 100, Y: 100, Confidence: 0.9},
		models.KeypointLeftWrist:  {X: 90, Y: 40, Confidence: 0.5},
		models.KeypointRightWrist: {X: 110, Y: 40, Confidence: 0.3},
	})

	res := DetectDistress(p, defaultScoring())
	assert.False(t, res.HasDistress)
	assert.Empty(t, res.Indicators)
}

func TestDistressArmsSpreadAndFalling(t *testing.T) {
	p := posedPerson(models.BoundingBox{X1: 0, Y1: 0, X2: 300, Y2: 100}, map[int]models.Keypoint{
		models.KeypointNose:          {X: 100, Y: 0, Confidence: 0.9},
		models.KeypointLeftShoulder:  {X: 90, Y: 100, Confidence: 0.9},
		models.KeypointRightShoulder: {X: 110, Y: 100, Confidence: 0.9},
		models.KeypointLeftWrist:     {X: 40, Y: 120, Confidence: 0.9},
		models.KeypointRightWrist:    {X: 160, Y: 120, Confidence: 0.9},
	})

	res := DetectDistress(p, defaultScoring())
	assert.True(t, res.HasDistress)
	assert.Equal(t, []string{IndicatorArmsSpread, IndicatorFalling}, res.Indicators)
	assert.InDelta(t, 0.5, res.Confidence, 1e-9)
}

func TestDistressWithoutKeypoints(t *testing.T) {
	box := models.BoundingBox{X1: 0, Y1: 0, X2: 300, Y2: 100}
	cases := map[string][]models.Keypoint{
		"absent": nil,
		"short":  make([]models.Keypoint, 5),
	}
	for name, kps := range cases {
		t.Run(name, func(t *testing.T) {
			p := models.Person{ID: "p", BBox: box, Keypoints: kps}
			res := DetectDistress(p, defaultScoring())
			assert.False(t, res.HasDistress)
			assert.Zero(t, res.Confidence)
			assert.Empty(t, res.Indicators, "falling needs a skeleton too")
		})
	}
}

func TestHandsUpMargin(t *testing.T) {
	cfg := defaultScoring()
	cfg.HandsUpMargin = 80
	p := posedPerson(models.BoundingBox{X1: 50, Y1: 20, X2: 150, Y2: 300}, map[int]models.Keypoint{
		models.KeypointNose:       {X: 100, Y: 100, Confidence: 0.9},
		models.KeypointLeftWrist:  {X: 90, Y: 40, Confidence: 0.9},
		models.KeypointRightWrist: {X: 110, Y: 40, Confidence: 0.9},
	})

	res := DetectDistress(p, cfg)
	assert.NotContains(t, res.Indicators, IndicatorHandsUp)
}

func TestDetectAllDistressFiltersNegatives(t *testing.T) {
	raised := posedPerson(models.BoundingBox{X1: 50, Y1: 20, X2: 150, Y2: 300}, map[int]models.Keypoint{
		models.KeypointNose:       {X: 100, Y: 100, Confidence: 0.9},
		models.KeypointLeftWrist:  {X: 90, Y: 40, Confidence: 0.9},
		models.KeypointRightWrist: {X: 110, Y: 40, Confidence: 0.9},
	})
	calm := personAt(models.GenderWoman, 400, 400)

	out := DetectAllDistress([]models.Person{calm, raised}, defaultScoring())
	require.Len(t, out, 1)
	assert.Equal(t, raised.ID, out[0].PersonID)

	assert.NotNil(t, DetectAllDistress(nil, defaultScoring()))
}

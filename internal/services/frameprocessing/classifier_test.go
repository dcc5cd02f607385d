package frameprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"safety-worker-go/internal/models"
)

func TestClassifyEmpty(t *testing.T) {
	a := EmptyAnalysis()
	assert.Equal(t, models.ThreatSafe, a.OverallThreatLevel)
	assert.NotNil(t, a.LoneWomen)
	assert.Empty(t, a.LoneWomen)
	assert.Empty(t, a.SurroundedWomen)
	assert.Empty(t, a.WomenInDanger)
	assert.Empty(t, a.DistressSignals)
}

func TestClassifyPriority(t *testing.T) {
	lone := models.WomanAnalysis{WomanID: "lone", IsAlone: true, IsolationRisk: 0.9}
	edgeLone := models.WomanAnalysis{WomanID: "edge", IsAlone: true, IsolationRisk: 0.7}
	surrounded := models.WomanAnalysis{WomanID: "sur", IsSurrounded: true, ThreatLevel: 0.6}
	weakSurround := models.WomanAnalysis{WomanID: "weak", IsSurrounded: true, ThreatLevel: 0.4}
	danger := models.WomanAnalysis{WomanID: "dng", ImmediateDanger: true, ThreatLevel: 1}
	distress := []models.DistressResult{{PersonID: "x", HasDistress: true, Confidence: 0.7}}

	cases := []struct {
		name     string
		women    []models.WomanAnalysis
		distress []models.DistressResult
		want     models.ThreatLevel
	}{
		{"nothing qualifies", []models.WomanAnalysis{edgeLone, weakSurround}, nil, models.ThreatSafe},
		{"lone", []models.WomanAnalysis{lone}, nil, models.ThreatLow},
		{"distress beats lone", []models.WomanAnalysis{lone}, distress, models.ThreatModerate},
		{"surrounded beats distress", []models.WomanAnalysis{lone, surrounded}, distress, models.ThreatHigh},
		{"danger beats all", []models.WomanAnalysis{lone, surrounded, danger}, distress, models.ThreatCritical},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := Classify(nil, tc.women, tc.distress)
			assert.Equal(t, tc.want, a.OverallThreatLevel)
		})
	}
}

func TestClassifyArmedWoman(t *testing.T) {
	woman := personAt(models.GenderWoman, 100, 100)
	woman.HasHazard = true
	wa := models.WomanAnalysis{WomanID: woman.ID}

	a := Classify([]models.Person{woman}, []models.WomanAnalysis{wa}, nil)
	require.Len(t, a.WomenInDanger, 1)
	assert.Equal(t, models.ThreatCritical, a.OverallThreatLevel)
}

func TestSurroundedScenario(t *testing.T) {
	svc := NewService(defaultScoring())

	res := svc.ProcessFrame(surroundedScene(), noon)
	require.Len(t, res.Analysis.SurroundedWomen, 1)
	w := res.Analysis.SurroundedWomen[0]
	assert.True(t, w.IsSurrounded)
	assert.GreaterOrEqual(t, w.ThreatLevel, 0.6)
	assert.LessOrEqual(t, w.ThreatLevel, 1.0)
	assert.Empty(t, res.Analysis.WomenInDanger)
	assert.Equal(t, models.ThreatHigh, res.Analysis.OverallThreatLevel)
}

func TestSurroundedByArmedMan(t *testing.T) {
	svc := NewService(defaultScoring())
	dets := surroundedScene()
	dets.Hazards = []models.RawHazard{rawHazard("knife", 0.9, 415, 295, 425, 305)}

	res := svc.ProcessFrame(dets, noon)
	require.Len(t, res.Analysis.SurroundedWomen, 1)
	assert.Equal(t, 1.0, res.Analysis.SurroundedWomen[0].ThreatLevel)
	require.Len(t, res.Analysis.WomenInDanger, 1)
	assert.Equal(t, res.Analysis.SurroundedWomen[0].WomanID, res.Analysis.WomenInDanger[0].WomanID)
	assert.Equal(t, models.ThreatCritical, res.Analysis.OverallThreatLevel)

	for _, p := range res.Persons {
		if p.Gender == models.GenderWoman {
			assert.False(t, p.HasHazard, "the knife belongs to the man only")
		}
	}
}

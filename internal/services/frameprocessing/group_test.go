package frameprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"safety-worker-go/internal/models"
)

func TestLoneWoman(t *testing.T) {
	cfg := defaultScoring()

	cases := []struct {
		name      string
		cx, cy    float64
		isolation float64
	}{
		{name: "frame centre hits the floor", cx: 320, cy: 240, isolation: 0.5},
		{name: "off centre", cx: 100, cy: 100, isolation: 1 - 100.0/480*2},
		{name: "corner", cx: 10, cy: 20, isolation: 1 - 10.0/480*2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			persons := []models.Person{personAt(models.GenderWoman, tc.cx, tc.cy)}
			ga := AnalyzeGroups(persons, 640, 480, cfg)

			require.Len(t, ga.Women, 1)
			w := ga.Women[0]
			assert.True(t, w.IsAlone)
			assert.False(t, w.IsSurrounded)
			assert.GreaterOrEqual(t, w.IsolationRisk, 0.5)
			assert.InDelta(t, tc.isolation, w.IsolationRisk, 1e-9)
			assert.Equal(t, 4, w.EscapeRoutes)
			assert.Zero(t, w.ThreatLevel)
			assert.Empty(t, w.NearbyMen)
		})
	}
}

func TestNotAloneHasNoIsolationRisk(t *testing.T) {
	persons := []models.Person{
		personAt(models.GenderWoman, 100, 100),
		personAt(models.GenderWoman, 150, 100),
	}
	ga := AnalyzeGroups(persons, 640, 480, defaultScoring())
	require.Len(t, ga.Women, 2)
	for _, w := range ga.Women {
		assert.False(t, w.IsAlone)
		assert.Equal(t, 1, w.NearbyPeople)
		assert.Zero(t, w.IsolationRisk)
	}
}

func TestSurroundedWoman(t *testing.T) {
	persons := []models.Person{
		personAt(models.GenderWoman, 300, 300),
		personAt(models.GenderMan, 400, 300),
		personAt(models.GenderMan, 300, 400),
		personAt(models.GenderMan, 200, 300),
	}
	ga := AnalyzeGroups(persons, 640, 640, defaultScoring())

	require.Len(t, ga.Women, 1)
	w := ga.Women[0]
	assert.True(t, w.IsSurrounded)
	assert.False(t, w.IsAlone)
	assert.Len(t, w.NearbyMen, 3)
	assert.InDelta(t, 0.6, w.ThreatLevel, 1e-9)
	assert.False(t, w.ImmediateDanger)
}

func TestSurroundingRadiusIsInclusive(t *testing.T) {
	cfg := defaultScoring()
	persons := []models.Person{
		personAt(models.GenderWoman, 300, 300),
		personAt(models.GenderMan, 450, 300),
		personAt(models.GenderMan, 300, 150),
	}
	ga := AnalyzeGroups(persons, 640, 640, cfg)
	assert.True(t, ga.Women[0].IsSurrounded)

	persons[2] = personAt(models.GenderMan, 300, 149)
	ga = AnalyzeGroups(persons, 640, 640, cfg)
	assert.False(t, ga.Women[0].IsSurrounded)
	assert.Len(t, ga.Women[0].NearbyMen, 2, "still inside the nearby radius")
}

func TestArmedNearbyManForcesThreat(t *testing.T) {
	armed := personAt(models.GenderMan, 460, 300)
	armed.HasHazard = true
	persons := []models.Person{personAt(models.GenderWoman, 300, 300), armed}

	ga := AnalyzeGroups(persons, 640, 640, defaultScoring())
	w := ga.Women[0]
	assert.False(t, w.IsSurrounded)
	assert.True(t, w.ImmediateDanger)
	assert.Equal(t, 1.0, w.ThreatLevel)
	require.Len(t, w.NearbyMen, 1)
	assert.True(t, w.NearbyMen[0].HasHazard)
}

func TestArmedManOutsideRadiusIsIgnored(t *testing.T) {
	armed := personAt(models.GenderMan, 600, 600)
	armed.HasHazard = true
	persons := []models.Person{personAt(models.GenderWoman, 100, 100), armed}

	w := AnalyzeGroups(persons, 640, 640, defaultScoring()).Women[0]
	assert.False(t, w.ImmediateDanger)
	assert.True(t, w.IsAlone)
}

func TestEscapeRoutesBlocked(t *testing.T) {
	wall := models.Person{ID: "wall", BBox: models.BoundingBox{X1: 330, Y1: 0, X2: 640, Y2: 480}, Gender: models.GenderUnknown}
	persons := []models.Person{personAt(models.GenderWoman, 320, 240), wall}

	w := AnalyzeGroups(persons, 640, 480, defaultScoring()).Women[0]
	assert.Equal(t, 3, w.EscapeRoutes)
}

func TestGroupRisk(t *testing.T) {
	cfg := defaultScoring()

	t.Run("lone woman among three men", func(t *testing.T) {
		persons := []models.Person{
			personAt(models.GenderWoman, 50, 50),
			personAt(models.GenderMan, 300, 50),
			personAt(models.GenderMan, 400, 50),
			personAt(models.GenderMan, 500, 50),
		}
		g := AnalyzeGroups(persons, 640, 480, cfg).Group
		assert.Equal(t, 3.0, g.MaleToFemaleRatio)
		assert.InDelta(t, 0.6, g.RatioRisk, 1e-9)
		assert.Equal(t, 1.5, g.LoneWomanRisk)
		assert.InDelta(t, 2.1, g.Total(), 1e-9)
	})

	t.Run("balanced", func(t *testing.T) {
		persons := []models.Person{
			personAt(models.GenderWoman, 50, 50),
			personAt(models.GenderWoman, 150, 50),
			personAt(models.GenderMan, 300, 50),
			personAt(models.GenderMan, 400, 50),
		}
		g := AnalyzeGroups(persons, 640, 480, cfg).Group
		assert.Equal(t, 1.0, g.MaleToFemaleRatio)
		assert.Zero(t, g.Total())
	})

	t.Run("ratio of exactly two adds nothing", func(t *testing.T) {
		persons := []models.Person{
			personAt(models.GenderWoman, 50, 50),
			personAt(models.GenderMan, 300, 50),
			personAt(models.GenderMan, 400, 50),
		}
		g := AnalyzeGroups(persons, 640, 480, cfg).Group
		assert.Zero(t, g.RatioRisk)
		assert.Equal(t, 1.5, g.LoneWomanRisk)
	})

	t.Run("no women", func(t *testing.T) {
		persons := []models.Person{personAt(models.GenderMan, 300, 50)}
		ga := AnalyzeGroups(persons, 640, 480, cfg)
		assert.Empty(t, ga.Women)
		assert.Zero(t, ga.Group.Total())
	})
}

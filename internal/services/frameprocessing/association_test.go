package frameprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"safety-worker-go/internal/models"
)

func hazardAt(label string, cx, cy float64) models.HazardObject {
	box := boxAt(cx, cy, 20, 20)
	return models.HazardObject{BBox: box, Confidence: 0.8, ClassLabel: label, Center: box.Center()}
}

func TestAssociateDistanceBoundary(t *testing.T) {
	cfg := defaultScoring()
	person := models.Person{ID: "p", BBox: models.BoundingBox{X1: 0, Y1: 0, X2: 100, Y2: 100}}

	t.Run("exactly 100px associates", func(t *testing.T) {
		persons := []models.Person{person}
		Associate(persons, []models.HazardObject{hazardAt("knife", 150, 50)}, cfg)
		require.True(t, persons[0].HasHazard)
		require.Len(t, persons[0].NearbyHazards, 1)
		assert.Equal(t, models.NearbyHazard{Type: "knife", Confidence: 0.8, Distance: 100}, persons[0].NearbyHazards[0])
	})

	t.Run("101px does not associate", func(t *testing.T) {
		persons := []models.Person{person}
		Associate(persons, []models.HazardObject{hazardAt("knife", 151, 50)}, cfg)
		assert.False(t, persons[0].HasHazard)
		assert.Empty(t, persons[0].NearbyHazards)
	})
}

func TestAssociateCentreInsideBox(t *testing.T) {
	persons := []models.Person{{ID: "big", BBox: models.BoundingBox{X1: 0, Y1: 0, X2: 1000, Y2: 1000}}}
	Associate(persons, []models.HazardObject{hazardAt("gun", 950, 950)}, defaultScoring())

	require.True(t, persons[0].HasHazard)
	assert.Greater(t, persons[0].NearbyHazards[0].Distance, 100.0)
}

func TestAssociateManyToMany(t *testing.T) {
	persons := []models.Person{
		personAt(models.GenderMan, 100, 100),
		personAt(models.GenderWoman, 160, 100),
		personAt(models.GenderMan, 600, 600),
	}
	hazards := []models.HazardObject{hazardAt("knife", 130, 100), hazardAt("club", 110, 110)}

	Associate(persons, hazards, defaultScoring())

	assert.Len(t, persons[0].NearbyHazards, 2)
	assert.Len(t, persons[1].NearbyHazards, 2)
	assert.False(t, persons[2].HasHazard)
}

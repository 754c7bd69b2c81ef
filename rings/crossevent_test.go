package rings

import (
	"testing"

	"github.com/Berikbol/ring-system/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dualEventCompetitor(id, age int, formsCat, sparringCat int, formsPool string) models.Competitor {
	c := models.Competitor{
		ID: id, FirstName: "C", LastName: "N", Age: age, Gender: "male",
		Forms:    models.EventEntry{Division: "Black Belt", Competing: true, CategoryID: &formsCat},
		Sparring: models.EventEntry{Division: "Black Belt", Competing: true, CategoryID: &sparringCat},
	}
	if formsPool != "" {
		pool := formsPool
		c.Forms.Pool = &pool
	}
	return c
}

func TestMapSparringFollowsFormsRing(t *testing.T) {
	categories := []models.Category{
		{ID: 1, Division: "Black Belt", Event: models.EventForms, Name: "Youth Forms", NumPools: 2},
		{ID: 2, Division: "Black Belt", Event: models.EventSparring, Name: "Youth Sparring", NumPools: 2},
	}
	competitors := []models.Competitor{
		dualEventCompetitor(1, 9, 1, 2, "P1"),
		dualEventCompetitor(2, 10, 1, 2, "P2"),
		dualEventCompetitor(3, 11, 1, 2, "P1"),
	}
	formsRings := []models.CompetitionRing{
		{ID: 1, Division: "Black Belt", CategoryID: 1, RingName: "PR1", Event: models.EventForms, Name: "Youth Forms_P1", CompetitorIDs: []int{1, 3}},
		{ID: 2, Division: "Black Belt", CategoryID: 1, RingName: "PR2", Event: models.EventForms, Name: "Youth Forms_P2", CompetitorIDs: []int{2}},
	}

	result := MapSparringToForms(categories, competitors, formsRings)
	require.Len(t, result.Rings, 2)
	assert.Zero(t, result.Unassigned)

	// Спарринг наследует физический ринг пула форм.
	assert.Equal(t, "PR1", result.Rings[0].RingName)
	assert.Equal(t, []int{1, 3}, result.Rings[0].CompetitorIDs)
	assert.Equal(t, models.EventSparring, result.Rings[0].Event)
	assert.Equal(t, "PR2", result.Rings[1].RingName)

	for _, c := range result.Competitors {
		require.NotNil(t, c.Sparring.Pool)
		assert.Equal(t, *c.Forms.Pool, *c.Sparring.Pool)
	}
}

func TestMapSparringSkipsCompetitorsWithoutPrerequisites(t *testing.T) {
	categories := []models.Category{
		{ID: 1, Division: "Black Belt", Event: models.EventForms, Name: "Youth Forms", NumPools: 1},
		{ID: 2, Division: "Black Belt", Event: models.EventSparring, Name: "Youth Sparring", NumPools: 1},
	}

	// id=1 полный; id=2 без спарринг-категории; id=3 вовсе без спарринга.
	full := dualEventCompetitor(1, 9, 1, 2, "P1")
	noSparringCat := dualEventCompetitor(2, 10, 1, 2, "P1")
	noSparringCat.Sparring.CategoryID = nil
	formsOnly := dualEventCompetitor(3, 11, 1, 2, "P1")
	formsOnly.Sparring = models.EventEntry{Division: models.DivisionNotCompeting}

	competitors := []models.Competitor{full, noSparringCat, formsOnly}
	formsRings := []models.CompetitionRing{
		{ID: 1, Division: "Black Belt", CategoryID: 1, RingName: "PR1", Event: models.EventForms, Name: "Youth Forms_P1", CompetitorIDs: []int{1, 2, 3}},
	}

	result := MapSparringToForms(categories, competitors, formsRings)
	require.Len(t, result.Rings, 1)
	assert.Equal(t, []int{1}, result.Rings[0].CompetitorIDs)

	// Без категории — остаётся без пула и попадает в счётчик.
	assert.Equal(t, 1, result.Unassigned)
}

func TestMapSparringIgnoresNonFormsRings(t *testing.T) {
	categories := []models.Category{
		{ID: 2, Division: "Black Belt", Event: models.EventSparring, Name: "Youth Sparring", NumPools: 1},
	}
	competitors := []models.Competitor{dualEventCompetitor(1, 9, 1, 2, "P1")}
	strayRings := []models.CompetitionRing{
		{ID: 1, CategoryID: 2, RingName: "PR9", Event: models.EventSparring, Name: "Youth Sparring_P1", CompetitorIDs: []int{1}},
	}

	result := MapSparringToForms(categories, competitors, strayRings)
	assert.Empty(t, result.Rings)
	assert.Equal(t, 1, result.Unassigned)
}

func TestStripEventSuffix(t *testing.T) {
	assert.Equal(t, "Black Belt_P2", stripEventSuffix("Black Belt Forms_P2"))
	assert.Equal(t, "Youth_P1", stripEventSuffix("Youth-Forms_P1"))
	assert.Equal(t, "Adults", stripEventSuffix("Adults Forms"))
	assert.Equal(t, "Plain_P1", stripEventSuffix("Plain_P1"))
}

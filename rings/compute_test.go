package rings

import (
	"testing"

	"github.com/Berikbol/ring-system/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assignedCompetitor(id, categoryID int, pool string) models.Competitor {
	cat, p := categoryID, pool
	return models.Competitor{
		ID: id, FirstName: "C", LastName: "N", Age: 10, Gender: "male",
		Forms: models.EventEntry{Division: "Black Belt", Competing: true, CategoryID: &cat, Pool: &p},
	}
}

func TestComputeRingsGroupsByCategoryAndPool(t *testing.T) {
	categories := []models.Category{
		{ID: 1, Division: "Black Belt", Event: models.EventForms, Name: "Youth"},
	}
	competitors := []models.Competitor{
		assignedCompetitor(1, 1, "P1"),
		assignedCompetitor(2, 1, "P2"),
		assignedCompetitor(3, 1, "P1"),
	}
	mappings := []models.PhysicalRingMapping{
		{ID: 1, Division: "Black Belt", CategoryName: "Youth", Pool: "P1", RingName: "PR1"},
		{ID: 2, Division: "Black Belt", CategoryName: "Youth", Pool: "P2", RingName: "PR2"},
	}

	computed := ComputeRings(competitors, categories, mappings)
	require.Len(t, computed, 2)

	assert.Equal(t, "Youth_P1", computed[0].Name)
	assert.Equal(t, "PR1", computed[0].RingName)
	assert.Equal(t, []int{1, 3}, computed[0].CompetitorIDs)
	assert.Equal(t, "PR2", computed[1].RingName)
}

func TestComputeRingsSparringSharesFormsRing(t *testing.T) {
	categories := []models.Category{
		{ID: 1, Division: "Black Belt", Event: models.EventForms, Name: "Youth Forms"},
		{ID: 2, Division: "Black Belt", Event: models.EventSparring, Name: "Youth Sparring"},
	}
	c := assignedCompetitor(1, 1, "P1")
	sparringCat, sparringPool := 2, "P1"
	c.Sparring = models.EventEntry{Division: "Black Belt", Competing: true, CategoryID: &sparringCat, Pool: &sparringPool}

	mappings := []models.PhysicalRingMapping{
		{ID: 1, Division: "Black Belt", CategoryName: "Youth Forms", Pool: "P1", RingName: "PR3"},
	}

	computed := ComputeRings([]models.Competitor{c}, categories, mappings)
	require.Len(t, computed, 2)

	var sparringRing *models.CompetitionRing
	for i := range computed {
		if computed[i].Event == models.EventSparring {
			sparringRing = &computed[i]
		}
	}
	require.NotNil(t, sparringRing)
	// Спарринг отображается на физический ринг пула форм участника.
	assert.Equal(t, "PR3", sparringRing.RingName)
}

func TestComputeRingsIsPure(t *testing.T) {
	categories := []models.Category{
		{ID: 1, Division: "Black Belt", Event: models.EventForms, Name: "Youth"},
	}
	competitors := []models.Competitor{assignedCompetitor(1, 1, "P1")}

	first := ComputeRings(competitors, categories, nil)
	second := ComputeRings(competitors, categories, nil)
	assert.Equal(t, first, second)

	// Входные аргументы не мутируются.
	assert.Equal(t, "P1", *competitors[0].Forms.Pool)
	require.NotNil(t, competitors[0].Forms.CategoryID)
}

func TestComputeRingsSkipsStaleCategoryReference(t *testing.T) {
	competitors := []models.Competitor{assignedCompetitor(1, 99, "P1")}
	computed := ComputeRings(competitors, nil, nil)
	assert.Empty(t, computed)
}

func TestComputeWarningsCountsUnassignedSparring(t *testing.T) {
	d := models.Dataset{
		Competitors: []models.Competitor{
			{ID: 1, Sparring: models.EventEntry{Division: "Black Belt", Competing: true}},
			{ID: 2, Sparring: models.EventEntry{Division: models.DivisionNotCompeting}},
		},
		Config: models.TournamentConfig{RingsPerDivision: map[string]int{}},
	}
	w := ComputeWarnings(d)
	assert.Equal(t, 1, w.SparringUnassigned)
	assert.Empty(t, w.Oversubscribed)
}

func TestComputeWarningsFlagsOversubscribedDivisions(t *testing.T) {
	d := models.Dataset{
		Categories: []models.Category{
			{ID: 1, Division: "Black Belt", Event: models.EventForms, NumPools: 3},
			{ID: 2, Division: "Black Belt", Event: models.EventForms, NumPools: 2},
			{ID: 3, Division: "Color Belt", Event: models.EventForms, NumPools: 1},
			{ID: 4, Division: "Black Belt", Event: models.EventSparring, NumPools: 9},
		},
		Config: models.TournamentConfig{RingsPerDivision: map[string]int{
			"Black Belt": 4,
			"Color Belt": 1,
		}},
	}

	w := ComputeWarnings(d)
	require.Len(t, w.Oversubscribed, 1)
	assert.Equal(t, "Black Belt", w.Oversubscribed[0].Division)
	assert.Equal(t, 5, w.Oversubscribed[0].PoolsRequired)
	assert.Equal(t, 4, w.Oversubscribed[0].RingsConfigured)
}

package rings

import (
	"testing"

	"github.com/Berikbol/ring-system/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func formsCompetitor(id, age int, division string) models.Competitor {
	return models.Competitor{
		ID:        id,
		FirstName: "C",
		LastName:  "N",
		Age:       age,
		Gender:    "male",
		Forms:     models.EventEntry{Division: division, Competing: true},
	}
}

func poolOf(t *testing.T, competitors []models.Competitor, id int) string {
	t.Helper()
	for _, c := range competitors {
		if c.ID == id {
			require.NotNil(t, c.Forms.Pool, "competitor %d has no forms pool", id)
			return *c.Forms.Pool
		}
	}
	t.Fatalf("competitor %d not found", id)
	return ""
}

func TestAssignRingsRoundRobinsAgeOrder(t *testing.T) {
	ages := []int{9, 10, 10, 11, 12, 13, 14}
	competitors := make([]models.Competitor, 0, len(ages))
	ids := make([]int, 0, len(ages))
	for i, age := range ages {
		competitors = append(competitors, formsCompetitor(i+1, age, "Black Belt"))
		ids = append(ids, i+1)
	}
	cat := models.Category{
		ID: 1, Division: "Black Belt", Event: models.EventForms,
		Name: "Youth Forms", NumPools: 3, CompetitorIDs: ids,
	}

	result, err := AssignRings(cat, competitors, []string{"PR1", "PR2", "PR3"}, models.EventForms)
	require.NoError(t, err)
	require.Len(t, result.Rings, 3)

	// Возрастной порядок: 9,10,10,11,12,13,14; index%3.
	assert.Equal(t, []int{1, 4, 7}, result.Rings[0].CompetitorIDs) // ages 9, 11, 14
	assert.Equal(t, []int{2, 5}, result.Rings[1].CompetitorIDs)    // ages 10, 12
	assert.Equal(t, []int{3, 6}, result.Rings[2].CompetitorIDs)    // ages 10, 13

	assert.Equal(t, "P1", poolOf(t, result.Competitors, 1))
	assert.Equal(t, "P2", poolOf(t, result.Competitors, 2))
	assert.Equal(t, "P3", poolOf(t, result.Competitors, 3))
	assert.Equal(t, "P1", poolOf(t, result.Competitors, 7))

	assert.Equal(t, "Youth Forms_P1", result.Rings[0].Name)
	assert.Equal(t, "PR1", result.Rings[0].RingName)
}

func TestAssignRingsStableForEqualAges(t *testing.T) {
	competitors := []models.Competitor{
		formsCompetitor(10, 12, "Color Belt"),
		formsCompetitor(20, 12, "Color Belt"),
		formsCompetitor(30, 12, "Color Belt"),
	}
	cat := models.Category{
		ID: 1, Division: "Color Belt", Event: models.EventForms,
		Name: "Adults", NumPools: 2, CompetitorIDs: []int{10, 20, 30},
	}

	result, err := AssignRings(cat, competitors, []string{"PR1", "PR2"}, models.EventForms)
	require.NoError(t, err)

	// Равные возрасты сохраняют исходный порядок списка.
	assert.Equal(t, []int{10, 30}, result.Rings[0].CompetitorIDs)
	assert.Equal(t, []int{20}, result.Rings[1].CompetitorIDs)
}

func TestAssignRingsCapacityShortfall(t *testing.T) {
	cat := models.Category{
		ID: 1, Division: "Black Belt", Event: models.EventForms,
		Name: "Youth Forms", NumPools: 3, CompetitorIDs: []int{1},
	}
	competitors := []models.Competitor{formsCompetitor(1, 9, "Black Belt")}

	_, err := AssignRings(cat, competitors, []string{"PR1", "PR2"}, models.EventForms)
	var capErr *CapacityError
	require.ErrorAs(t, err, &capErr)
	assert.Equal(t, "Black Belt", capErr.Division)
	assert.Equal(t, 3, capErr.Required)
	assert.Equal(t, 2, capErr.Available)

	// Участники не тронуты.
	assert.Nil(t, competitors[0].Forms.Pool)
}

func TestAssignRingsEmptyCategoryIsNoop(t *testing.T) {
	cat := models.Category{
		ID: 1, Division: "Black Belt", Event: models.EventForms,
		Name: "Empty", NumPools: 2,
	}
	competitors := []models.Competitor{formsCompetitor(1, 9, "Black Belt")}

	result, err := AssignRings(cat, competitors, []string{"PR1", "PR2"}, models.EventForms)
	require.NoError(t, err)
	assert.Empty(t, result.Rings)
	assert.Nil(t, result.Competitors[0].Forms.Pool)
}

func TestAssignRingsReassignOverwritesPools(t *testing.T) {
	competitors := []models.Competitor{
		formsCompetitor(1, 9, "Black Belt"),
		formsCompetitor(2, 10, "Black Belt"),
	}
	cat := models.Category{
		ID: 1, Division: "Black Belt", Event: models.EventForms,
		Name: "Youth", NumPools: 2, CompetitorIDs: []int{1, 2},
	}

	first, err := AssignRings(cat, competitors, []string{"PR1", "PR2"}, models.EventForms)
	require.NoError(t, err)
	assert.Equal(t, "P2", poolOf(t, first.Competitors, 2))

	// Сужаем до одного пула и перезапускаем: прежние метки перезаписаны.
	cat.NumPools = 1
	second, err := AssignRings(cat, first.Competitors, []string{"PR1", "PR2"}, models.EventForms)
	require.NoError(t, err)
	assert.Equal(t, "P1", poolOf(t, second.Competitors, 1))
	assert.Equal(t, "P1", poolOf(t, second.Competitors, 2))
	require.Len(t, second.Rings, 1)
	assert.Equal(t, []int{1, 2}, second.Rings[0].CompetitorIDs)
}

func TestAssignAllCategoriesFiltersByDivision(t *testing.T) {
	competitors := []models.Competitor{
		formsCompetitor(1, 9, "Black Belt"),
		formsCompetitor(2, 10, "Color Belt"),
	}
	categories := []models.Category{
		{ID: 1, Division: "Black Belt", Event: models.EventForms, Name: "BB", NumPools: 1, CompetitorIDs: []int{1}},
		{ID: 2, Division: "Color Belt", Event: models.EventForms, Name: "CB", NumPools: 1, CompetitorIDs: []int{2}},
	}
	cfg := models.TournamentConfig{RingsPerDivision: map[string]int{"Black Belt": 2, "Color Belt": 2}}

	updated, assigned, err := AssignAllCategories(categories, competitors, cfg, "Black Belt", models.EventForms)
	require.NoError(t, err)
	require.Len(t, assigned, 1)
	assert.Equal(t, "BB_P1", assigned[0].Name)

	assert.Equal(t, "P1", poolOf(t, updated, 1))
	for _, c := range updated {
		if c.ID == 2 {
			assert.Nil(t, c.Forms.Pool, "other division must stay untouched")
		}
	}
}

func TestAssignAllCategoriesPropagatesCapacityError(t *testing.T) {
	competitors := []models.Competitor{formsCompetitor(1, 9, "Black Belt")}
	categories := []models.Category{
		{ID: 1, Division: "Black Belt", Event: models.EventForms, Name: "BB", NumPools: 3, CompetitorIDs: []int{1}},
	}
	cfg := models.TournamentConfig{RingsPerDivision: map[string]int{"Black Belt": 1}}

	_, _, err := AssignAllCategories(categories, competitors, cfg, "", models.EventForms)
	var capErr *CapacityError
	require.ErrorAs(t, err, &capErr)
	assert.Equal(t, 3, capErr.Required)
	assert.Equal(t, 1, capErr.Available)
}

func TestAssignAllCategoriesSkipsOtherEvent(t *testing.T) {
	competitors := []models.Competitor{formsCompetitor(1, 9, "Black Belt")}
	categories := []models.Category{
		{ID: 1, Division: "Black Belt", Event: models.EventSparring, Name: "BB Sparring", NumPools: 5, CompetitorIDs: []int{1}},
	}
	cfg := models.TournamentConfig{RingsPerDivision: map[string]int{"Black Belt": 1}}

	_, assigned, err := AssignAllCategories(categories, competitors, cfg, "", models.EventForms)
	require.NoError(t, err)
	assert.Empty(t, assigned)
}

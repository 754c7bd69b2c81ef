package rings

import (
	"sort"

	"github.com/Berikbol/ring-system/models"
)

// AssignResult carries the outcome of one assignment pass: the competitor
// slice with pool labels written in place, and the rings produced.
type AssignResult struct {
	Competitors []models.Competitor
	Rings       []models.CompetitionRing
}

// AssignRings распределяет участников категории по пулам: сортировка по
// возрасту (стабильная, при равенстве сохраняется исходный порядок), затем
// раскладка index % numPools по первым numPools рингам. Самый младший идёт
// в P1, следующий в P2 и так далее по кругу — возрастной перекос
// размазывается по пулам равномерно, а не скапливается по краям.
//
// Повторный вызов для той же категории деструктивен: членство пулов
// пересчитывается с нуля и прежние метки перезаписываются.
func AssignRings(category models.Category, competitors []models.Competitor, availableRings []string, event models.EventType) (AssignResult, error) {
	numPools := category.NumPools
	if numPools < 1 {
		numPools = 1
	}
	if len(availableRings) < numPools {
		return AssignResult{}, &CapacityError{
			Division:  category.Division,
			Category:  category.Name,
			Required:  numPools,
			Available: len(availableRings),
		}
	}

	inCategory := make(map[int]bool, len(category.CompetitorIDs))
	for _, id := range category.CompetitorIDs {
		inCategory[id] = true
	}
	members := make([]int, 0, len(category.CompetitorIDs))
	for i, c := range competitors {
		if inCategory[c.ID] {
			members = append(members, i)
		}
	}
	if len(members) == 0 {
		// Nothing to distribute; callers treat this as a no-op, not an error.
		return AssignResult{Competitors: competitors}, nil
	}

	sort.SliceStable(members, func(a, b int) bool {
		return competitors[members[a]].Age < competitors[members[b]].Age
	})

	poolMembers := make([][]int, numPools)
	for k, idx := range members {
		p := k % numPools
		label := models.PoolLabel(p)
		entry := competitors[idx].Entry(event)
		entry.Pool = &label
		poolMembers[p] = append(poolMembers[p], competitors[idx].ID)
	}

	ringsOut := make([]models.CompetitionRing, 0, numPools)
	for p := 0; p < numPools; p++ {
		ringsOut = append(ringsOut, models.CompetitionRing{
			ID:            p + 1,
			Division:      category.Division,
			CategoryID:    category.ID,
			RingName:      availableRings[p],
			Event:         event,
			Name:          category.Name + "_" + models.PoolLabel(p),
			CompetitorIDs: poolMembers[p],
		})
	}
	return AssignResult{Competitors: competitors, Rings: ringsOut}, nil
}

// AssignAllCategories прогоняет AssignRings по всем категориям события
// (при division == "" — по всем дивизионам), протягивая обновлённый список
// спортсменов через каждый шаг, чтобы поздние категории видели ранние
// назначения. При первой же ошибке ёмкости возвращается ошибка, а частично
// обновлённый срез отбрасывается вызывающей стороной.
func AssignAllCategories(categories []models.Category, competitors []models.Competitor, cfg models.TournamentConfig, division string, event models.EventType) ([]models.Competitor, []models.CompetitionRing, error) {
	updated := competitors
	var allRings []models.CompetitionRing
	for _, cat := range categories {
		if cat.Event != event {
			continue
		}
		if division != "" && cat.Division != division {
			continue
		}
		available := DefaultRingNames(cfg.RingsPerDivision[cat.Division])
		result, err := AssignRings(cat, updated, available, event)
		if err != nil {
			return nil, nil, err
		}
		updated = result.Competitors
		allRings = append(allRings, result.Rings...)
	}
	return updated, allRings, nil
}

package rings

import (
	"strings"

	"github.com/Berikbol/ring-system/models"
)

// CrossEventResult — результат проекции спарринга на ринги форм.
type CrossEventResult struct {
	Competitors []models.Competitor
	Rings       []models.CompetitionRing

	// Unassigned counts sparring competitors left without a pool: either no
	// sparring category was assigned or they hold no forms pool to follow.
	// The caller surfaces this as an operator warning; it never blocks.
	Unassigned int
}

type sparringKey struct {
	categoryID int
	formsPool  string
}

// MapSparringToForms помещает каждого спарринг-спортсмена на тот же
// физический ринг, где проходит его пул по формам, не запуская заново
// алгоритм распределения с контролем ёмкости. Формы ведут, спарринг
// следует: физические ринги делятся между событиями по времени, поэтому
// спарринг никогда не занимает ресурс независимо от форм.
//
// Спортсмены со спарринг-флагом, но без спарринг-категории или без пула по
// формам, молча пропускаются (это не ошибка).
func MapSparringToForms(categories []models.Category, competitors []models.Competitor, formsRings []models.CompetitionRing) CrossEventResult {
	catByID := make(map[int]models.Category, len(categories))
	for _, cat := range categories {
		catByID[cat.ID] = cat
	}
	indexByID := make(map[int]int, len(competitors))
	for i, c := range competitors {
		indexByID[c.ID] = i
	}

	order := make([]sparringKey, 0)
	groups := make(map[sparringKey]*models.CompetitionRing)

	for _, ring := range formsRings {
		if ring.Event != models.EventForms {
			continue // defensive: never let a stray sparring ring drive placement
		}
		for _, id := range ring.CompetitorIDs {
			idx, ok := indexByID[id]
			if !ok {
				continue
			}
			comp := &competitors[idx]
			if !comp.Sparring.IsCompeting() {
				continue
			}
			if comp.Sparring.CategoryID == nil || comp.Forms.Pool == nil {
				continue
			}
			sparringCat, ok := catByID[*comp.Sparring.CategoryID]
			if !ok {
				continue
			}

			formsPool := *comp.Forms.Pool
			comp.Sparring.Pool = &formsPool

			key := sparringKey{categoryID: sparringCat.ID, formsPool: formsPool}
			group, ok := groups[key]
			if !ok {
				group = &models.CompetitionRing{
					Division:   sparringCat.Division,
					CategoryID: sparringCat.ID,
					RingName:   ring.RingName,
					Event:      models.EventSparring,
					Name:       stripEventSuffix(ring.Name),
				}
				groups[key] = group
				order = append(order, key)
			}
			group.CompetitorIDs = append(group.CompetitorIDs, id)
		}
	}

	result := CrossEventResult{Competitors: competitors}
	for i, key := range order {
		ring := groups[key]
		ring.ID = i + 1
		result.Rings = append(result.Rings, *ring)
	}
	for _, c := range competitors {
		if c.Sparring.IsCompeting() && c.Sparring.Pool == nil {
			result.Unassigned++
		}
	}
	return result
}

// stripEventSuffix убирает суффикс типа события из имени ринга форм:
// "Black Belt Forms_P2" -> "Black Belt_P2".
func stripEventSuffix(ringName string) string {
	catPart := ringName
	poolPart := ""
	if i := strings.LastIndex(ringName, "_"); i >= 0 {
		catPart, poolPart = ringName[:i], ringName[i:]
	}
	for _, suffix := range []string{" Forms", "-Forms", "_Forms", "Forms"} {
		if strings.HasSuffix(catPart, suffix) {
			catPart = strings.TrimSuffix(catPart, suffix)
			break
		}
	}
	return catPart + poolPart
}

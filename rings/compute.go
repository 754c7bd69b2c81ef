package rings

import (
	"github.com/Berikbol/ring-system/models"
)

type ringKey struct {
	categoryID int
	pool       string
	event      models.EventType
}

// ComputeRings выводит текущий набор соревновательных рингов из состояния.
// Чистая функция: не мутирует аргументы и при одинаковых входах всегда даёт
// эквивалентный результат. Вызывается на каждое чтение, поэтому всё
// индексируется за один проход — без квадратичных сканов.
func ComputeRings(competitors []models.Competitor, categories []models.Category, mappings []models.PhysicalRingMapping) []models.CompetitionRing {
	catByID := make(map[int]models.Category, len(categories))
	for _, cat := range categories {
		catByID[cat.ID] = cat
	}
	ringNames := make(map[string]string, len(mappings))
	for _, m := range mappings {
		ringNames[m.CategoryName+"\x00"+m.Pool] = m.RingName
	}

	order := make([]ringKey, 0)
	groups := make(map[ringKey][]int)

	collect := func(c models.Competitor, event models.EventType) {
		entry := c.Forms
		if event == models.EventSparring {
			entry = c.Sparring
		}
		if entry.CategoryID == nil || entry.Pool == nil {
			return
		}
		key := ringKey{categoryID: *entry.CategoryID, pool: *entry.Pool, event: event}
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], c.ID)
	}

	for _, c := range competitors {
		collect(c, models.EventForms)
		collect(c, models.EventSparring)
	}

	formsRingName := func(c models.Competitor) string {
		if c.Forms.CategoryID == nil || c.Forms.Pool == nil {
			return ""
		}
		cat, ok := catByID[*c.Forms.CategoryID]
		if !ok {
			return ""
		}
		return ringNames[cat.Name+"\x00"+*c.Forms.Pool]
	}
	compByID := make(map[int]models.Competitor, len(competitors))
	for _, c := range competitors {
		compByID[c.ID] = c
	}

	result := make([]models.CompetitionRing, 0, len(order))
	for i, key := range order {
		cat, ok := catByID[key.categoryID]
		if !ok {
			continue // stale category reference, nothing to render
		}
		members := groups[key]
		ring := models.CompetitionRing{
			ID:            i + 1,
			Division:      cat.Division,
			CategoryID:    cat.ID,
			Event:         key.event,
			Name:          cat.Name + "_" + key.pool,
			CompetitorIDs: append([]int(nil), members...),
		}
		switch key.event {
		case models.EventForms:
			ring.RingName = ringNames[cat.Name+"\x00"+key.pool]
		case models.EventSparring:
			// Sparring time-shares the physical ring bound to the members'
			// forms pool; it never claims a resource of its own.
			for _, id := range members {
				if name := formsRingName(compByID[id]); name != "" {
					ring.RingName = name
					break
				}
			}
		}
		result = append(result, ring)
	}
	return result
}

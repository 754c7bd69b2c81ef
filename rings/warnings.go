package rings

import (
	"sort"

	"github.com/Berikbol/ring-system/models"
)

// DivisionOverrun — дивизион, чей суммарный спрос на пулы превышает число
// настроенных физических рингов. Мягкий инвариант: только предупреждение.
type DivisionOverrun struct {
	Division        string `json:"division"`
	PoolsRequired   int    `json:"pools_required"`
	RingsConfigured int    `json:"rings_configured"`
}

// ValidationWarnings — счётчики, которые оператор должен увидеть перед
// запуском распределения. Они никогда не блокируют операцию.
type ValidationWarnings struct {
	SparringUnassigned int               `json:"sparring_unassigned"`
	Oversubscribed     []DivisionOverrun `json:"oversubscribed_divisions"`
}

// ComputeWarnings считает предупреждения по текущему набору данных.
func ComputeWarnings(d models.Dataset) ValidationWarnings {
	var w ValidationWarnings
	for _, c := range d.Competitors {
		if c.Sparring.IsCompeting() && c.Sparring.CategoryID == nil {
			w.SparringUnassigned++
		}
	}

	demand := make(map[string]int)
	for _, cat := range d.Categories {
		if cat.Event != models.EventForms {
			continue
		}
		numPools := cat.NumPools
		if numPools < 1 {
			numPools = 1
		}
		demand[cat.Division] += numPools
	}
	for division, required := range demand {
		configured := d.Config.RingsPerDivision[division]
		if required > configured {
			w.Oversubscribed = append(w.Oversubscribed, DivisionOverrun{
				Division:        division,
				PoolsRequired:   required,
				RingsConfigured: configured,
			})
		}
	}
	sort.Slice(w.Oversubscribed, func(a, b int) bool {
		return w.Oversubscribed[a].Division < w.Oversubscribed[b].Division
	})
	return w
}

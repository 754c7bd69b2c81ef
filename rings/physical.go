package rings

import (
	"fmt"
	"sort"

	"github.com/Berikbol/ring-system/models"
)

// PoolUnit — одна строка "категория-пул" дивизиона, подлежащая привязке к
// физическому рингу.
type PoolUnit struct {
	Division     string
	CategoryName string
	Pool         string
	MinAge       int
	MaxAge       int
}

var ringColors = []string{"red", "blue", "green", "orange", "purple", "teal", "yellow", "pink"}

// DefaultRingNames returns the plain sequential ring names PR1..PRn.
func DefaultRingNames(count int) []string {
	names := make([]string, 0, count)
	for i := 0; i < count; i++ {
		names = append(names, fmt.Sprintf("PR%d", i+1))
	}
	return names
}

// AutoAssignPhysicalRings привязывает строки "категория-пул" одного
// дивизиона к именованным физическим рингам.
//
// Если строк не больше, чем рингов, привязка последовательная: строка i —
// ринг PR(i+1), без суффикса. При переполнении применяется парная схема:
// строки группируются в последовательные пары по индексу, пара p занимает
// ринг (p mod resourceCount)+1, первая строка пары получает суффикс "a",
// вторая — "b". Для 5 строк и 2 рингов это даёт ровно
// PR1a, PR1b, PR2a, PR2b, PR1a.
//
// Схема рассчитана максимум на двукратное переполнение: спрос от трёх
// строк на ринг — неподдерживаемая конфигурация, а не повод
// экстраполировать суффиксы.
func AutoAssignPhysicalRings(units []PoolUnit, resourceCount int) ([]models.PhysicalRingMapping, error) {
	if resourceCount < 1 {
		division := ""
		if len(units) > 0 {
			division = units[0].Division
		}
		return nil, &CapacityError{Division: division, Required: len(units), Available: resourceCount}
	}
	if len(units) >= 3*resourceCount {
		return nil, &CapacityError{
			Division:  units[0].Division,
			Required:  len(units),
			Available: 3*resourceCount - 1,
		}
	}

	mappings := make([]models.PhysicalRingMapping, 0, len(units))
	for i, unit := range units {
		var ringName string
		var resource int
		if len(units) <= resourceCount {
			resource = i + 1
			ringName = fmt.Sprintf("PR%d", resource)
		} else {
			pair := i / 2
			resource = pair%resourceCount + 1
			suffix := "a"
			if i%2 == 1 {
				suffix = "b"
			}
			ringName = fmt.Sprintf("PR%d%s", resource, suffix)
		}
		mappings = append(mappings, models.PhysicalRingMapping{
			ID:           i + 1,
			Division:     unit.Division,
			CategoryName: unit.CategoryName,
			Pool:         unit.Pool,
			RingName:     ringName,
			Order:        i + 1,
			Color:        ringColors[(resource-1)%len(ringColors)],
		})
	}
	return mappings, nil
}

// BuildPoolUnits собирает возрастно-упорядоченный список строк
// "категория-пул" по категориям форм одного дивизиона.
func BuildPoolUnits(categories []models.Category, division string) []PoolUnit {
	filtered := make([]models.Category, 0, len(categories))
	for _, cat := range categories {
		if cat.Event != models.EventForms || cat.Division != division {
			continue
		}
		filtered = append(filtered, cat)
	}
	sort.SliceStable(filtered, func(a, b int) bool {
		if filtered[a].MinAge != filtered[b].MinAge {
			return filtered[a].MinAge < filtered[b].MinAge
		}
		if filtered[a].MaxAge != filtered[b].MaxAge {
			return filtered[a].MaxAge < filtered[b].MaxAge
		}
		return filtered[a].Name < filtered[b].Name
	})

	units := make([]PoolUnit, 0)
	for _, cat := range filtered {
		numPools := cat.NumPools
		if numPools < 1 {
			numPools = 1
		}
		for p := 0; p < numPools; p++ {
			units = append(units, PoolUnit{
				Division:     division,
				CategoryName: cat.Name,
				Pool:         models.PoolLabel(p),
				MinAge:       cat.MinAge,
				MaxAge:       cat.MaxAge,
			})
		}
	}
	return units
}

package models

import "fmt"

// Category — судейская группа спортсменов внутри дивизиона и типа
// соревнования. NumPools задаёт, сколько физических рингов нужно группе.
type Category struct {
	ID       int       `json:"id"`
	Division string    `json:"division"`
	Event    EventType `json:"event"`
	Gender   string    `json:"gender,omitempty"` // empty means mixed
	MinAge   int       `json:"min_age"`
	MaxAge   int       `json:"max_age"`
	Name     string    `json:"name"`
	NumPools int       `json:"num_pools"`

	CompetitorIDs []int `json:"competitor_ids"`
}

// Matches reports whether a competitor fits the category's demographic
// filter. The division comparison is done by the caller against the
// competitor's event entry.
func (c Category) Matches(comp Competitor) bool {
	if c.Gender != "" && c.Gender != comp.Gender {
		return false
	}
	if comp.Age < c.MinAge {
		return false
	}
	if c.MaxAge > 0 && comp.Age > c.MaxAge {
		return false
	}
	return true
}

// PoolLabel возвращает метку пула по индексу (0-based): P1, P2, ...
func PoolLabel(index int) string {
	return fmt.Sprintf("P%d", index+1)
}

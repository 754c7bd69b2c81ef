package models

// EventType представляет тип соревнования, в котором участвует спортсмен.
type EventType string

const (
	EventForms    EventType = "forms"
	EventSparring EventType = "sparring"
)

// DivisionNotCompeting is the sentinel division value for a competitor who
// is not entered in an event at all.
const DivisionNotCompeting = "not competing"

// EventEntry — участие спортсмена в одном типе соревнования.
// Pool и CategoryID заполняются движком распределения, RankOrder — оператором.
type EventEntry struct {
	Division   string  `json:"division"`
	Competing  bool    `json:"competing"`
	CategoryID *int    `json:"category_id,omitempty"`
	Pool       *string `json:"pool,omitempty"` // e.g. "P1"
	RankOrder  *int    `json:"rank_order,omitempty"`

	// AltRing is only meaningful for sparring: 'a', 'b' or empty.
	AltRing string `json:"alt_ring,omitempty"`
}

// IsCompeting reports whether the entry represents real participation.
func (e EventEntry) IsCompeting() bool {
	return e.Competing && e.Division != "" && e.Division != DivisionNotCompeting
}

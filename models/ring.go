package models

// PhysicalRingMapping binds one category pool to a named physical ring.
// Несколько пулов могут делить один физический ринг (oversubscription),
// но пара (CategoryName, Pool) внутри маппинга уникальна.
type PhysicalRingMapping struct {
	ID           int    `json:"id"`
	Division     string `json:"division"`
	CategoryName string `json:"category_name"`
	Pool         string `json:"pool"`
	RingName     string `json:"ring_name"`
	Order        int    `json:"order"`
	Color        string `json:"color,omitempty"`

	// ManualOverride marks a mapping whose ring name was typed in by the
	// operator. It survives re-renders until the next explicit auto-assign.
	ManualOverride bool `json:"manual_override,omitempty"`
}

// CompetitionRing — производное представление одного пула: группа
// спортсменов одной категории, закреплённая за физическим рингом.
// Никогда не сохраняется: пересчитывается из состояния на каждое чтение.
type CompetitionRing struct {
	ID         int       `json:"id"`
	Division   string    `json:"division"`
	CategoryID int       `json:"category_id"`
	RingName   string    `json:"ring_name"`
	Event      EventType `json:"event"`
	Name       string    `json:"name"` // "<CategoryName>_<Pool>"

	CompetitorIDs []int `json:"competitor_ids"`
}

package models

// TournamentConfig — параметры турнира, не относящиеся к спортсменам.
type TournamentConfig struct {
	Name string `json:"name"`

	// RingsPerDivision is the number of physical rings configured for each
	// division. Pool demand above this count is surfaced as a warning, it
	// is never enforced at write time.
	RingsPerDivision map[string]int `json:"rings_per_division"`
}

// Dataset — полный денормализованный набор данных турнира. Живой экземпляр
// один на процесс; чекпоинты и история undo хранят его глубокие копии.
type Dataset struct {
	Competitors  []Competitor          `json:"competitors"`
	Categories   []Category            `json:"categories"`
	RingMappings []PhysicalRingMapping `json:"ring_mappings"`
	Config       TournamentConfig      `json:"config"`
}

// Clone returns a deep copy of the dataset. Nothing mutable is shared
// between the receiver and the copy: later mutation of one can never be
// observed through the other. Every snapshot boundary (checkpoint, undo,
// redo) must go through Clone.
func (d Dataset) Clone() Dataset {
	out := Dataset{
		Competitors:  make([]Competitor, len(d.Competitors)),
		Categories:   make([]Category, len(d.Categories)),
		RingMappings: make([]PhysicalRingMapping, len(d.RingMappings)),
		Config: TournamentConfig{
			Name: d.Config.Name,
		},
	}
	for i, c := range d.Competitors {
		c.Forms = cloneEntry(c.Forms)
		c.Sparring = cloneEntry(c.Sparring)
		out.Competitors[i] = c
	}
	for i, cat := range d.Categories {
		ids := make([]int, len(cat.CompetitorIDs))
		copy(ids, cat.CompetitorIDs)
		cat.CompetitorIDs = ids
		out.Categories[i] = cat
	}
	copy(out.RingMappings, d.RingMappings)
	if d.Config.RingsPerDivision != nil {
		out.Config.RingsPerDivision = make(map[string]int, len(d.Config.RingsPerDivision))
		for k, v := range d.Config.RingsPerDivision {
			out.Config.RingsPerDivision[k] = v
		}
	}
	return out
}

func cloneEntry(e EventEntry) EventEntry {
	if e.CategoryID != nil {
		id := *e.CategoryID
		e.CategoryID = &id
	}
	if e.Pool != nil {
		pool := *e.Pool
		e.Pool = &pool
	}
	if e.RankOrder != nil {
		rank := *e.RankOrder
		e.RankOrder = &rank
	}
	return e
}

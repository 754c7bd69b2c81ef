package models

// AdultAge is the normalized value for the "18 and older" roster entry.
const AdultAge = 18

// Competitor представляет спортсмена. Идентификатор присваивается при
// импорте ростера и больше никогда не меняется — все правки выполняются
// по месту, без пересоздания записи.
type Competitor struct {
	ID        int    `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Age       int    `json:"age"` // AdultAge means "18 and older"
	Gender    string `json:"gender"`
	HeightCM  int    `json:"height_cm,omitempty"`
	WeightKG  int    `json:"weight_kg,omitempty"`
	School    string `json:"school,omitempty"`

	Forms    EventEntry `json:"forms"`
	Sparring EventEntry `json:"sparring"`
}

// Entry returns a pointer to the participation record for the given event.
// Returns nil for an unknown event type.
func (c *Competitor) Entry(event EventType) *EventEntry {
	switch event {
	case EventForms:
		return &c.Forms
	case EventSparring:
		return &c.Sparring
	}
	return nil
}

// FullName собирает отображаемое имя спортсмена.
func (c Competitor) FullName() string {
	if c.FirstName == "" {
		return c.LastName
	}
	if c.LastName == "" {
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}

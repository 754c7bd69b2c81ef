package rings

import "fmt"

// CapacityError is returned when a category or division demands more
// physical resources than are available. The dataset is never modified
// when this error is raised.
type CapacityError struct {
	Division  string
	Category  string
	Required  int
	Available int
}

func (e *CapacityError) Error() string {
	if e.Category != "" {
		return fmt.Sprintf("category %q requires %d pools but only %d rings are available in division %q",
			e.Category, e.Required, e.Available, e.Division)
	}
	return fmt.Sprintf("division %q requires %d pool slots but only %d rings are available",
		e.Division, e.Required, e.Available)
}

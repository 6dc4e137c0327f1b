package booking

import "staybcn/internal/domain/catalog"

// GuestCount splits the party into adults and children; the split only matters
// for presentation, every rule below works off the total.
type GuestCount struct {
	Adults   int
	Children int
}

func (g GuestCount) Total() int {
	return g.Adults + g.Children
}

// Fits reports whether the party fits the unit's capacity. Exceeding capacity is
// a soft validation failure that blocks confirmation, not a hard error.
func Fits(unit catalog.Unit, guests GuestCount) bool {
	return guests.Total() <= unit.Capacity
}

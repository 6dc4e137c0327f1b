package availability

import (
	"time"

	"staybcn/internal/domain/catalog"
	"staybcn/internal/domain/shared/daterange"
)

// IsBlocked reports whether the given calendar date is blocked for the unit.
// The presentation layer uses this to disable individual calendar cells.
func IsBlocked(unit catalog.Unit, date time.Time) bool {
	d := daterange.Day(date)
	for _, blocked := range unit.BlockedDates {
		if blocked.Equal(d) {
			return true
		}
	}
	return false
}

// RangeAvailable reports whether no stay date in [CheckIn, CheckOut) is blocked.
// A unit with no blocked dates is always fully available.
func RangeAvailable(unit catalog.Unit, rng daterange.DateRange) bool {
	if len(unit.BlockedDates) == 0 {
		return true
	}
	for _, blocked := range unit.BlockedDates {
		if rng.Contains(blocked) {
			return false
		}
	}
	return true
}

package booking

import (
	"errors"
	"time"

	"staybcn/internal/domain/shared/daterange"
)

var (
	ErrCheckInInPast = errors.New("booking: check-in date is in the past")
	ErrEmptyStay     = errors.New("booking: check-out must be after check-in")
)

// ValidateDateRange enforces structural validity of a stay range against a
// reference instant: check-out strictly after check-in, check-in today or
// later. Availability is a separate concern checked by the availability package.
func ValidateDateRange(rng daterange.DateRange, now time.Time) error {
	if !rng.CheckOut.After(rng.CheckIn) {
		return ErrEmptyStay
	}
	if rng.CheckIn.Before(daterange.Day(now)) {
		return ErrCheckInInPast
	}
	return nil
}

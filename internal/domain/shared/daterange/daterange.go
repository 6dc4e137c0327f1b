package daterange

import (
	"errors"
	"time"
)

var (
	ErrMissingDates  = errors.New("daterange: both check-in and check-out are required")
	ErrInvertedRange = errors.New("daterange: check-out must be after check-in")
)

// DateRange is a [CheckIn, CheckOut) pair of calendar dates. Both endpoints are
// normalized to midnight UTC so day arithmetic never depends on wall-clock time.
type DateRange struct {
	CheckIn  time.Time
	CheckOut time.Time
}

// Day strips the time component, anchoring the value to midnight UTC.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// New builds a range from raw timestamps, rejecting missing or inverted
// endpoints. A same-day range is representable — Nights floors it to one so a
// selection in progress still prices — but booking validation rejects it.
func New(checkIn, checkOut time.Time) (DateRange, error) {
	if checkIn.IsZero() || checkOut.IsZero() {
		return DateRange{}, ErrMissingDates
	}
	in := Day(checkIn)
	out := Day(checkOut)
	if out.Before(in) {
		return DateRange{}, ErrInvertedRange
	}
	return DateRange{CheckIn: in, CheckOut: out}, nil
}

// Nights counts the calendar nights in the range, floored at one. The floor is a
// pricing policy: a same-day range still charges a single night rather than zero.
func (r DateRange) Nights() int {
	n := int(r.CheckOut.Sub(r.CheckIn).Hours() / 24)
	if n < 1 {
		return 1
	}
	return n
}

// Days yields every stay date from check-in inclusive to check-out exclusive.
func (r DateRange) Days() []time.Time {
	days := make([]time.Time, 0, r.Nights())
	for d := r.CheckIn; d.Before(r.CheckOut); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// Contains reports whether the given calendar date falls inside [CheckIn, CheckOut).
func (r DateRange) Contains(date time.Time) bool {
	d := Day(date)
	return !d.Before(r.CheckIn) && d.Before(r.CheckOut)
}

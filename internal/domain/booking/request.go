package booking

import (
	"strings"
	"time"

	"staybcn/internal/domain/catalog"
)

// Contact holds the visitor's free-text contact fields. Phone and notes are
// optional; name and email are required for confirmation.
type Contact struct {
	Name  string
	Email string
	Phone string
	Notes string
}

func (c Contact) Complete() bool {
	return strings.TrimSpace(c.Name) != "" && strings.TrimSpace(c.Email) != ""
}

// Request is the mutable booking draft a session owns. CheckIn/CheckOut stay raw
// (zero means unset) so a half-picked range is representable; a validated
// daterange.DateRange is derived from them on every recompute.
type Request struct {
	Unit          *catalog.Unit
	CheckIn       time.Time
	CheckOut      time.Time
	Guests        GuestCount
	CityTaxRate   float64
	Contact       Contact
	RulesAccepted bool
}

// snapshot deep-copies the draft so a Confirmation can never be mutated through
// the live session afterwards.
func (r Request) snapshot() Request {
	clone := r
	if r.Unit != nil {
		unit := *r.Unit
		unit.Images = append([]string(nil), r.Unit.Images...)
		unit.BlockedDates = append([]time.Time(nil), r.Unit.BlockedDates...)
		clone.Unit = &unit
	}
	return clone
}

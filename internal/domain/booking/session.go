package booking

import (
	"errors"
	"strings"
	"time"

	"staybcn/internal/domain/availability"
	"staybcn/internal/domain/catalog"
	"staybcn/internal/domain/pricing"
	"staybcn/internal/domain/shared/daterange"
)

var ErrSessionConfirmed = errors.New("booking: session already confirmed, reset to start a new booking")

type State string

const (
	StateSelecting State = "SELECTING"
	StateConfirmed State = "CONFIRMED"
)

// Derived is the recomputed read model returned after every draft change.
type Derived struct {
	Nights      int
	Price       pricing.PriceBreakdown
	Confirmable bool
	Violations  []Violation
}

// SelectionPatch is a partial update of the draft; nil fields are left unchanged.
type SelectionPatch struct {
	Unit          *catalog.Unit
	CheckIn       *time.Time
	CheckOut      *time.Time
	Adults        *int
	Children      *int
	CityTaxRate   *float64
	Name          *string
	Email         *string
	Phone         *string
	Notes         *string
	RulesAccepted *bool
}

// Session orchestrates the booking flow for one visitor. It exclusively owns its
// draft and recomputes nights, price, and confirmability after every change.
// Sessions are not safe for concurrent use; callers serialize access.
type Session struct {
	state        State
	draft        Request
	derived      Derived
	confirmation *Confirmation
}

// NewSession opens a session in Selecting with the defaults the booking page
// starts from: a stay from tomorrow for three nights, two adults, the supplied
// city tax rate. No unit is selected yet.
func NewSession(now time.Time, cityTaxRate float64) *Session {
	s := &Session{state: StateSelecting}
	s.draft = seedDraft(now, cityTaxRate)
	s.recompute(now)
	return s
}

func seedDraft(now time.Time, cityTaxRate float64) Request {
	today := daterange.Day(now)
	return Request{
		CheckIn:     today.AddDate(0, 0, 1),
		CheckOut:    today.AddDate(0, 0, 4),
		Guests:      GuestCount{Adults: 2},
		CityTaxRate: cityTaxRate,
	}
}

func (s *Session) State() State { return s.state }

// Draft returns a copy of the current request draft.
func (s *Session) Draft() Request { return s.draft.snapshot() }

// Derived returns the results of the latest recompute.
func (s *Session) Derived() Derived { return s.derived }

// Confirmation returns the booking confirmation once the session is confirmed.
func (s *Session) Confirmation() (*Confirmation, bool) {
	return s.confirmation, s.confirmation != nil
}

// UpdateSelection applies a partial draft change and recomputes derived state.
// Confirmed sessions are terminal for their request and reject further edits.
func (s *Session) UpdateSelection(patch SelectionPatch, now time.Time) (Derived, error) {
	if s.state == StateConfirmed {
		return s.derived, ErrSessionConfirmed
	}
	if patch.Unit != nil {
		unit := *patch.Unit
		s.draft.Unit = &unit
	}
	if patch.CheckIn != nil {
		s.draft.CheckIn = *patch.CheckIn
	}
	if patch.CheckOut != nil {
		s.draft.CheckOut = *patch.CheckOut
	}
	if patch.Adults != nil {
		s.draft.Guests.Adults = *patch.Adults
	}
	if patch.Children != nil {
		s.draft.Guests.Children = *patch.Children
	}
	if patch.CityTaxRate != nil {
		s.draft.CityTaxRate = *patch.CityTaxRate
	}
	if patch.Name != nil {
		s.draft.Contact.Name = *patch.Name
	}
	if patch.Email != nil {
		s.draft.Contact.Email = *patch.Email
	}
	if patch.Phone != nil {
		s.draft.Contact.Phone = *patch.Phone
	}
	if patch.Notes != nil {
		s.draft.Contact.Notes = *patch.Notes
	}
	if patch.RulesAccepted != nil {
		s.draft.RulesAccepted = *patch.RulesAccepted
	}
	s.recompute(now)
	return s.derived, nil
}

// Confirm re-runs every check and, only if all pass, issues the confirmation and
// transitions to Confirmed. On failure the session stays in Selecting with the
// violated conditions surfaced. Confirming an already confirmed session returns
// the existing confirmation untouched.
func (s *Session) Confirm(now time.Time) (*Confirmation, error) {
	if s.state == StateConfirmed {
		return s.confirmation, nil
	}
	s.recompute(now)
	if !s.derived.Confirmable {
		return nil, &ValidationError{Violations: append([]Violation(nil), s.derived.Violations...)}
	}
	conf := &Confirmation{
		Code:        GenerateCode(s.draft.Unit.ID),
		ConfirmedAt: now.UTC(),
		Request:     s.draft.snapshot(),
		Price:       s.derived.Price,
	}
	s.confirmation = conf
	s.state = StateConfirmed
	return conf, nil
}

// Reset starts a fresh Selecting draft for a new booking, keeping the selected
// unit and tax rate. An issued Confirmation is detached, never mutated.
func (s *Session) Reset(now time.Time) {
	unit := s.draft.Unit
	s.draft = seedDraft(now, s.draft.CityTaxRate)
	s.draft.Unit = unit
	s.confirmation = nil
	s.state = StateSelecting
	s.recompute(now)
}

// recompute rebuilds the derived read model from the draft. It is the single
// place the confirmable predicate is defined; Confirm reuses it unchanged.
func (s *Session) recompute(now time.Time) {
	d := Derived{}

	rng, rngErr := daterange.New(s.draft.CheckIn, s.draft.CheckOut)
	switch {
	case errors.Is(rngErr, daterange.ErrMissingDates):
		d.Violations = append(d.Violations, ViolationDatesMissing)
	case errors.Is(rngErr, daterange.ErrInvertedRange):
		d.Violations = append(d.Violations, ViolationDatesInverted)
	case rngErr == nil:
		d.Nights = rng.Nights()
		switch err := ValidateDateRange(rng, now); {
		case errors.Is(err, ErrEmptyStay):
			d.Violations = append(d.Violations, ViolationDatesInverted)
		case errors.Is(err, ErrCheckInInPast):
			d.Violations = append(d.Violations, ViolationCheckInPast)
		}
	}

	if s.draft.Unit == nil {
		d.Violations = append(d.Violations, ViolationUnitUnselected)
	} else {
		if rngErr == nil && !availability.RangeAvailable(*s.draft.Unit, rng) {
			d.Violations = append(d.Violations, ViolationRangeUnavailable)
		}
		if !Fits(*s.draft.Unit, s.draft.Guests) {
			d.Violations = append(d.Violations, ViolationCapacityExceeded)
		}
		if d.Nights >= 1 && s.draft.CityTaxRate >= 0 && s.draft.Guests.Total() >= 0 {
			price, err := pricing.Compute(*s.draft.Unit, d.Nights, s.draft.Guests.Total(), s.draft.CityTaxRate)
			if err == nil {
				d.Price = price
			}
		}
	}

	if s.draft.Guests.Adults < 1 {
		d.Violations = append(d.Violations, ViolationAdultsRequired)
	}
	if strings.TrimSpace(s.draft.Contact.Name) == "" {
		d.Violations = append(d.Violations, ViolationNameRequired)
	}
	if strings.TrimSpace(s.draft.Contact.Email) == "" {
		d.Violations = append(d.Violations, ViolationEmailRequired)
	}
	if !s.draft.RulesAccepted {
		d.Violations = append(d.Violations, ViolationRulesNotAccepted)
	}

	d.Confirmable = len(d.Violations) == 0
	s.derived = d
}

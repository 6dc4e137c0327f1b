package bookingflow

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"staybcn/internal/domain/booking"
	"staybcn/internal/domain/catalog"
)

var (
	ErrSessionNotFound = errors.New("bookingflow: session not found")
	ErrStoreRequired   = errors.New("bookingflow: session store required")
)

// SessionStore keeps live booking sessions. Update serializes all mutation of a
// session, which is how the single-writer ownership of a draft survives a
// concurrent HTTP surface.
type SessionStore interface {
	Create(ctx context.Context, session *booking.Session) (string, error)
	View(ctx context.Context, id string, fn func(*booking.Session) error) error
	Update(ctx context.Context, id string, fn func(*booking.Session) error) error
}

// Notifier receives confirmed bookings for downstream delivery (e.g. a broker
// topic an email worker consumes). Failures are logged, never surfaced to the
// visitor: the confirmation already happened.
type Notifier interface {
	BookingConfirmed(ctx context.Context, conf booking.Confirmation) error
}

// NopNotifier is used when no broker is configured.
type NopNotifier struct{}

func (NopNotifier) BookingConfirmed(context.Context, booking.Confirmation) error { return nil }

// Service orchestrates catalog lookups, session state, and confirmation
// notifications for the HTTP layer.
type Service struct {
	Catalog        catalog.Catalog
	Sessions       SessionStore
	Notifier       Notifier
	DefaultCityTax float64
	Logger         *slog.Logger
	Now            func() time.Time
}

// SessionView is a point-in-time copy of one session for rendering.
type SessionView struct {
	ID           string
	State        booking.State
	Draft        booking.Request
	Derived      booking.Derived
	Confirmation *booking.Confirmation
}

// SelectionInput mirrors booking.SelectionPatch with the unit referenced by id;
// nil fields are left unchanged.
type SelectionInput struct {
	UnitID        *string
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

// BookingInput is the one-shot request shape: a full draft confirmed in a
// single call, with no session kept afterwards.
type BookingInput struct {
	UnitID        string
	CheckIn       time.Time
	CheckOut      time.Time
	Adults        int
	Children      int
	CityTaxRate   float64
	Name          string
	Email         string
	Phone         string
	Notes         string
	RulesAccepted bool
}

// OpenSession starts a new booking session preselecting the first catalog unit,
// matching how the booking page opens.
func (s *Service) OpenSession(ctx context.Context) (SessionView, error) {
	if s.Sessions == nil {
		return SessionView{}, ErrStoreRequired
	}
	now := s.now()
	session := booking.NewSession(now, s.DefaultCityTax)

	units, err := s.Catalog.List(ctx)
	if err != nil {
		return SessionView{}, err
	}
	if len(units) > 0 {
		unit := units[0]
		if _, err := session.UpdateSelection(booking.SelectionPatch{Unit: &unit}, now); err != nil {
			return SessionView{}, err
		}
	}

	id, err := s.Sessions.Create(ctx, session)
	if err != nil {
		return SessionView{}, err
	}
	return viewOf(id, session), nil
}

// Session returns the current state of one session.
func (s *Service) Session(ctx context.Context, id string) (SessionView, error) {
	var view SessionView
	err := s.Sessions.View(ctx, id, func(session *booking.Session) error {
		view = viewOf(id, session)
		return nil
	})
	return view, err
}

// UpdateSelection applies a partial draft change and returns the recomputed state.
func (s *Service) UpdateSelection(ctx context.Context, id string, input SelectionInput) (SessionView, error) {
	patch, err := s.resolvePatch(ctx, input)
	if err != nil {
		return SessionView{}, err
	}
	now := s.now()
	var view SessionView
	err = s.Sessions.Update(ctx, id, func(session *booking.Session) error {
		if _, err := session.UpdateSelection(patch, now); err != nil {
			return err
		}
		view = viewOf(id, session)
		return nil
	})
	return view, err
}

// Confirm attempts the Selecting -> Confirmed transition for a session.
func (s *Service) Confirm(ctx context.Context, id string) (booking.Confirmation, error) {
	now := s.now()
	var conf booking.Confirmation
	alreadyConfirmed := false
	err := s.Sessions.Update(ctx, id, func(session *booking.Session) error {
		alreadyConfirmed = session.State() == booking.StateConfirmed
		result, err := session.Confirm(now)
		if err != nil {
			return err
		}
		conf = *result
		return nil
	})
	if err != nil {
		return booking.Confirmation{}, err
	}
	if !alreadyConfirmed {
		s.notify(ctx, conf)
	}
	return conf, nil
}

// ResetSession discards the current draft (and any confirmation) and starts a
// fresh Selecting state for the same visitor.
func (s *Service) ResetSession(ctx context.Context, id string) (SessionView, error) {
	now := s.now()
	var view SessionView
	err := s.Sessions.Update(ctx, id, func(session *booking.Session) error {
		session.Reset(now)
		view = viewOf(id, session)
		return nil
	})
	return view, err
}

// Book runs a complete request through a throwaway session, so the one-shot
// surface shares the exact validation path of the interactive one.
func (s *Service) Book(ctx context.Context, input BookingInput) (booking.Confirmation, error) {
	unit, err := s.Catalog.ByID(ctx, catalog.UnitID(input.UnitID))
	if err != nil {
		return booking.Confirmation{}, err
	}
	now := s.now()
	session := booking.NewSession(now, input.CityTaxRate)
	patch := booking.SelectionPatch{
		Unit:          &unit,
		CheckIn:       &input.CheckIn,
		CheckOut:      &input.CheckOut,
		Adults:        &input.Adults,
		Children:      &input.Children,
		Name:          &input.Name,
		Email:         &input.Email,
		Phone:         &input.Phone,
		Notes:         &input.Notes,
		RulesAccepted: &input.RulesAccepted,
	}
	if _, err := session.UpdateSelection(patch, now); err != nil {
		return booking.Confirmation{}, err
	}
	conf, err := session.Confirm(now)
	if err != nil {
		return booking.Confirmation{}, err
	}
	s.notify(ctx, *conf)
	return *conf, nil
}

func (s *Service) resolvePatch(ctx context.Context, input SelectionInput) (booking.SelectionPatch, error) {
	patch := booking.SelectionPatch{
		CheckIn:       input.CheckIn,
		CheckOut:      input.CheckOut,
		Adults:        input.Adults,
		Children:      input.Children,
		CityTaxRate:   input.CityTaxRate,
		Name:          input.Name,
		Email:         input.Email,
		Phone:         input.Phone,
		Notes:         input.Notes,
		RulesAccepted: input.RulesAccepted,
	}
	if input.UnitID != nil {
		unit, err := s.Catalog.ByID(ctx, catalog.UnitID(*input.UnitID))
		if err != nil {
			return booking.SelectionPatch{}, err
		}
		patch.Unit = &unit
	}
	return patch, nil
}

func (s *Service) notify(ctx context.Context, conf booking.Confirmation) {
	notifier := s.Notifier
	if notifier == nil {
		notifier = NopNotifier{}
	}
	if err := notifier.BookingConfirmed(ctx, conf); err != nil && s.Logger != nil {
		s.Logger.Error("confirmation notification failed", "code", conf.Code, "error", err)
	}
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func viewOf(id string, session *booking.Session) SessionView {
	view := SessionView{
		ID:      id,
		State:   session.State(),
		Draft:   session.Draft(),
		Derived: session.Derived(),
	}
	if conf, ok := session.Confirmation(); ok {
		view.Confirmation = conf
	}
	return view
}

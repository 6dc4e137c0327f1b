package dto

import (
	"time"

	"staybcn/internal/domain/booking"
	"staybcn/internal/domain/pricing"
)

type PriceBreakdown struct {
	Nights      int     `json:"nights"`
	NightlyRate float64 `json:"nightly_rate"`
	BaseAmount  float64 `json:"base_amount"`
	CleaningFee float64 `json:"cleaning_fee"`
	CityTaxRate float64 `json:"city_tax_rate"`
	TaxAmount   float64 `json:"tax_amount"`
	Total       float64 `json:"total"`
}

type Violation struct {
	Code  string `json:"code"`
	Class string `json:"class"`
}

type Derived struct {
	Nights        int            `json:"nights"`
	Breakdown     PriceBreakdown `json:"breakdown"`
	IsConfirmable bool           `json:"is_confirmable"`
	Violations    []Violation    `json:"violations"`
}

type Draft struct {
	UnitID        string  `json:"unit_id,omitempty"`
	CheckIn       string  `json:"check_in,omitempty"`
	CheckOut      string  `json:"check_out,omitempty"`
	Adults        int     `json:"adults"`
	Children      int     `json:"children"`
	CityTaxRate   float64 `json:"city_tax_rate"`
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	Phone         string  `json:"phone,omitempty"`
	Notes         string  `json:"notes,omitempty"`
	RulesAccepted bool    `json:"rules_accepted"`
}

type Session struct {
	ID           string        `json:"id"`
	State        string        `json:"state"`
	Draft        Draft         `json:"draft"`
	Derived      Derived       `json:"derived"`
	Confirmation *Confirmation `json:"confirmation,omitempty"`
}

type Confirmation struct {
	Code        string         `json:"code"`
	ConfirmedAt time.Time      `json:"confirmed_at"`
	UnitID      string         `json:"unit_id"`
	UnitTitle   string         `json:"unit_title"`
	CheckIn     string         `json:"check_in"`
	CheckOut    string         `json:"check_out"`
	Adults      int            `json:"adults"`
	Children    int            `json:"children"`
	Name        string         `json:"name"`
	Email       string         `json:"email"`
	Phone       string         `json:"phone,omitempty"`
	Notes       string         `json:"notes,omitempty"`
	Price       PriceBreakdown `json:"price"`
}

func MapPriceBreakdown(p pricing.PriceBreakdown) PriceBreakdown {
	return PriceBreakdown{
		Nights:      p.Nights,
		NightlyRate: p.NightlyRate,
		BaseAmount:  p.BaseAmount,
		CleaningFee: p.CleaningFee,
		CityTaxRate: p.CityTaxRate,
		TaxAmount:   p.TaxAmount,
		Total:       p.Total,
	}
}

func MapDerived(d booking.Derived) Derived {
	violations := make([]Violation, 0, len(d.Violations))
	for _, v := range d.Violations {
		violations = append(violations, Violation{Code: string(v), Class: v.Class()})
	}
	return Derived{
		Nights:        d.Nights,
		Breakdown:     MapPriceBreakdown(d.Price),
		IsConfirmable: d.Confirmable,
		Violations:    violations,
	}
}

func MapDraft(r booking.Request) Draft {
	draft := Draft{
		Adults:        r.Guests.Adults,
		Children:      r.Guests.Children,
		CityTaxRate:   r.CityTaxRate,
		Name:          r.Contact.Name,
		Email:         r.Contact.Email,
		Phone:         r.Contact.Phone,
		Notes:         r.Contact.Notes,
		RulesAccepted: r.RulesAccepted,
	}
	if r.Unit != nil {
		draft.UnitID = string(r.Unit.ID)
	}
	if !r.CheckIn.IsZero() {
		draft.CheckIn = r.CheckIn.Format(dateLayout)
	}
	if !r.CheckOut.IsZero() {
		draft.CheckOut = r.CheckOut.Format(dateLayout)
	}
	return draft
}

func MapConfirmation(c booking.Confirmation) Confirmation {
	conf := Confirmation{
		Code:        c.Code,
		ConfirmedAt: c.ConfirmedAt,
		CheckIn:     c.Request.CheckIn.Format(dateLayout),
		CheckOut:    c.Request.CheckOut.Format(dateLayout),
		Adults:      c.Request.Guests.Adults,
		Children:    c.Request.Guests.Children,
		Name:        c.Request.Contact.Name,
		Email:       c.Request.Contact.Email,
		Phone:       c.Request.Contact.Phone,
		Notes:       c.Request.Contact.Notes,
		Price:       MapPriceBreakdown(c.Price),
	}
	if c.Request.Unit != nil {
		conf.UnitID = string(c.Request.Unit.ID)
		conf.UnitTitle = c.Request.Unit.Title
	}
	return conf
}

func MapSession(id string, state booking.State, draft booking.Request, derived booking.Derived, confirmation *booking.Confirmation) Session {
	s := Session{
		ID:      id,
		State:   string(state),
		Draft:   MapDraft(draft),
		Derived: MapDerived(derived),
	}
	if confirmation != nil {
		mapped := MapConfirmation(*confirmation)
		s.Confirmation = &mapped
	}
	return s
}

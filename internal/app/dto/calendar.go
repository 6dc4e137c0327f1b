package dto

import (
	"time"

	"staybcn/internal/domain/availability"
	"staybcn/internal/domain/catalog"
	"staybcn/internal/domain/shared/daterange"
)

type CalendarDay struct {
	Date    string `json:"date"`
	Blocked bool   `json:"blocked"`
}

type Calendar struct {
	UnitID string        `json:"unit_id"`
	From   string        `json:"from"`
	To     string        `json:"to"`
	Days   []CalendarDay `json:"days"`
}

// MapCalendar renders per-day availability for [from, to), the shape the
// presentation layer needs to disable calendar cells.
func MapCalendar(unit catalog.Unit, from, to time.Time) Calendar {
	rng := daterange.DateRange{CheckIn: daterange.Day(from), CheckOut: daterange.Day(to)}
	stay := rng.Days()
	days := make([]CalendarDay, 0, len(stay))
	for _, d := range stay {
		days = append(days, CalendarDay{
			Date:    d.Format(dateLayout),
			Blocked: availability.IsBlocked(unit, d),
		})
	}
	return Calendar{
		UnitID: string(unit.ID),
		From:   rng.CheckIn.Format(dateLayout),
		To:     rng.CheckOut.Format(dateLayout),
		Days:   days,
	}
}

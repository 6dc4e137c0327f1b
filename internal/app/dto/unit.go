package dto

import (
	"staybcn/internal/domain/catalog"
)

const dateLayout = "2006-01-02"

type Unit struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	TitleEN      string   `json:"title_en"`
	DisplayTitle string   `json:"display_title"`
	NightlyRate  float64  `json:"nightly_rate"`
	CleaningFee  float64  `json:"cleaning_fee"`
	Capacity     int      `json:"capacity"`
	Bedrooms     int      `json:"bedrooms"`
	SofaBed      bool     `json:"sofa_bed"`
	Terrace      bool     `json:"terrace"`
	Images       []string `json:"images"`
	BlockedDates []string `json:"blocked_dates"`
}

type UnitCollection struct {
	Items []Unit `json:"items"`
}

// MapUnit renders a unit, resolving the display title for the requested
// language (empty falls back to the default Spanish title).
func MapUnit(u catalog.Unit, lang string) Unit {
	blocked := make([]string, 0, len(u.BlockedDates))
	for _, d := range u.BlockedDates {
		blocked = append(blocked, d.Format(dateLayout))
	}
	return Unit{
		ID:           string(u.ID),
		Title:        u.Title,
		TitleEN:      u.TitleEN,
		DisplayTitle: u.LocalizedTitle(lang),
		NightlyRate:  u.NightlyRate,
		CleaningFee:  u.CleaningFee,
		Capacity:     u.Capacity,
		Bedrooms:     u.Bedrooms,
		SofaBed:      u.SofaBed,
		Terrace:      u.Terrace,
		Images:       append([]string(nil), u.Images...),
		BlockedDates: blocked,
	}
}

func MapUnitCollection(units []catalog.Unit, lang string) UnitCollection {
	items := make([]Unit, 0, len(units))
	for _, u := range units {
		items = append(items, MapUnit(u, lang))
	}
	return UnitCollection{Items: items}
}

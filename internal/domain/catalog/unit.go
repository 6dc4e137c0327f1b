package catalog

import (
	"context"
	"errors"
	"strings"
	"time"

	"staybcn/internal/domain/shared/daterange"
)

var (
	ErrUnitNotFound  = errors.New("catalog: unit not found")
	ErrIDRequired    = errors.New("catalog: id is required")
	ErrTitleRequired = errors.New("catalog: title is required")
	ErrNightlyRate   = errors.New("catalog: nightly rate must be positive")
	ErrCleaningFee   = errors.New("catalog: cleaning fee must be non-negative")
	ErrCapacityLimit = errors.New("catalog: capacity must be at least 1")
	ErrBedroomsLimit = errors.New("catalog: bedrooms must be non-negative")
)

type UnitID string

// Unit is a single rentable apartment. Units are populated once at startup and
// shared read-only between sessions; the constructor copies every slice so a
// stored Unit can never be mutated through a caller's reference.
type Unit struct {
	ID           UnitID
	Title        string
	TitleEN      string
	NightlyRate  float64
	CleaningFee  float64
	Capacity     int
	Bedrooms     int
	SofaBed      bool
	Terrace      bool
	Images       []string
	BlockedDates []time.Time
}

// Catalog is the read-only unit registry. List preserves insertion order.
type Catalog interface {
	List(ctx context.Context) ([]Unit, error)
	ByID(ctx context.Context, id UnitID) (Unit, error)
}

type CreateUnitParams struct {
	ID           UnitID
	Title        string
	TitleEN      string
	NightlyRate  float64
	CleaningFee  float64
	Capacity     int
	Bedrooms     int
	SofaBed      bool
	Terrace      bool
	Images       []string
	BlockedDates []time.Time
}

func NewUnit(params CreateUnitParams) (Unit, error) {
	if strings.TrimSpace(string(params.ID)) == "" {
		return Unit{}, ErrIDRequired
	}
	if strings.TrimSpace(params.Title) == "" {
		return Unit{}, ErrTitleRequired
	}
	if params.NightlyRate <= 0 {
		return Unit{}, ErrNightlyRate
	}
	if params.CleaningFee < 0 {
		return Unit{}, ErrCleaningFee
	}
	if params.Capacity < 1 {
		return Unit{}, ErrCapacityLimit
	}
	if params.Bedrooms < 0 {
		return Unit{}, ErrBedroomsLimit
	}

	titleEN := strings.TrimSpace(params.TitleEN)
	if titleEN == "" {
		titleEN = strings.TrimSpace(params.Title)
	}
	blocked := make([]time.Time, 0, len(params.BlockedDates))
	for _, d := range params.BlockedDates {
		blocked = append(blocked, daterange.Day(d))
	}

	return Unit{
		ID:           params.ID,
		Title:        strings.TrimSpace(params.Title),
		TitleEN:      titleEN,
		NightlyRate:  params.NightlyRate,
		CleaningFee:  params.CleaningFee,
		Capacity:     params.Capacity,
		Bedrooms:     params.Bedrooms,
		SofaBed:      params.SofaBed,
		Terrace:      params.Terrace,
		Images:       append([]string(nil), params.Images...),
		BlockedDates: blocked,
	}, nil
}

// LocalizedTitle picks the display title for a two-letter language code,
// falling back to the default (Spanish) title.
func (u Unit) LocalizedTitle(lang string) string {
	if strings.EqualFold(lang, "en") {
		return u.TitleEN
	}
	return u.Title
}

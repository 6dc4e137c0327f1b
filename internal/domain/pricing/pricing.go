package pricing

import (
	"errors"

	"staybcn/internal/domain/catalog"
)

var (
	ErrNightsRange = errors.New("pricing: nights must be at least 1")
	ErrNegativeTax = errors.New("pricing: city tax rate cannot be negative")
	ErrGuestsRange = errors.New("pricing: guests cannot be negative")
)

// PriceBreakdown itemizes a stay quote. Amounts are plain decimal values with no
// intermediate rounding; currency formatting belongs to the presentation layer.
type PriceBreakdown struct {
	Nights      int
	NightlyRate float64
	BaseAmount  float64
	CleaningFee float64
	CityTaxRate float64
	TaxAmount   float64
	Total       float64
}

// Compute derives the full breakdown for a unit and stay. Pure and deterministic:
// base = nights x rate, tax = nights x rate-per-person x guests,
// total = base + cleaning fee + tax.
func Compute(unit catalog.Unit, nights int, guests int, cityTaxRate float64) (PriceBreakdown, error) {
	if nights < 1 {
		return PriceBreakdown{}, ErrNightsRange
	}
	if guests < 0 {
		return PriceBreakdown{}, ErrGuestsRange
	}
	if cityTaxRate < 0 {
		return PriceBreakdown{}, ErrNegativeTax
	}

	base := float64(nights) * unit.NightlyRate
	tax := float64(nights) * cityTaxRate * float64(guests)
	return PriceBreakdown{
		Nights:      nights,
		NightlyRate: unit.NightlyRate,
		BaseAmount:  base,
		CleaningFee: unit.CleaningFee,
		CityTaxRate: cityTaxRate,
		TaxAmount:   tax,
		Total:       base + unit.CleaningFee + tax,
	}, nil
}

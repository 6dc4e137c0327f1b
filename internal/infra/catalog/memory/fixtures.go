package memory

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	domaincatalog "staybcn/internal/domain/catalog"
)

const fixtureDateLayout = "2006-01-02"

type unitFixture struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	TitleEN      string   `json:"title_en"`
	NightlyRate  float64  `json:"nightly_rate"`
	CleaningFee  float64  `json:"cleaning_fee"`
	Capacity     int      `json:"capacity"`
	Bedrooms     int      `json:"bedrooms"`
	SofaBed      bool     `json:"sofa_bed"`
	Terrace      bool     `json:"terrace"`
	Images       []string `json:"images"`
	BlockedDates []string `json:"blocked_dates"`
}

// LoadFixtures populates the catalog from a JSON fixtures file. A missing file
// is not fatal: the server starts with an empty catalog and logs the skip.
func (c *Catalog) LoadFixtures(path string, logger *slog.Logger) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Info("unit fixtures file not found, skipping", "path", path)
			return nil
		}
		return fmt.Errorf("read fixtures: %w", err)
	}

	var fixtures []unitFixture
	if err := json.Unmarshal(data, &fixtures); err != nil {
		return fmt.Errorf("decode fixtures: %w", err)
	}

	for _, fx := range fixtures {
		blocked := make([]time.Time, 0, len(fx.BlockedDates))
		skip := false
		for _, raw := range fx.BlockedDates {
			d, err := time.Parse(fixtureDateLayout, raw)
			if err != nil {
				logger.Error("fixture blocked date invalid", "unit_id", fx.ID, "date", raw, "error", err)
				skip = true
				break
			}
			blocked = append(blocked, d)
		}
		if skip {
			continue
		}

		unit, err := domaincatalog.NewUnit(domaincatalog.CreateUnitParams{
			ID:           domaincatalog.UnitID(fx.ID),
			Title:        fx.Title,
			TitleEN:      fx.TitleEN,
			NightlyRate:  fx.NightlyRate,
			CleaningFee:  fx.CleaningFee,
			Capacity:     fx.Capacity,
			Bedrooms:     fx.Bedrooms,
			SofaBed:      fx.SofaBed,
			Terrace:      fx.Terrace,
			Images:       fx.Images,
			BlockedDates: blocked,
		})
		if err != nil {
			logger.Error("fixture invalid", "unit_id", fx.ID, "error", err)
			continue
		}
		c.Add(unit)
		logger.Info("unit fixture imported", "unit_id", unit.ID)
	}
	return nil
}

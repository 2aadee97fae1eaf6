package models

import (
	"encoding/json"
	"math"

	"github.com/turtacn/cadetops/pkg/constants"
)

// DaysUntilEmpty is a depletion horizon that may be infinite (no consumption).
type DaysUntilEmpty struct {
	days     float64
	infinite bool
}

// FiniteDays returns a finite horizon.
func FiniteDays(days float64) DaysUntilEmpty {
	return DaysUntilEmpty{days: days}
}

// NeverEmpty returns the infinite horizon.
func NeverEmpty() DaysUntilEmpty {
	return DaysUntilEmpty{infinite: true}
}

// Days returns the horizon and false when it is infinite.
func (d DaysUntilEmpty) Days() (float64, bool) {
	return d.days, !d.infinite
}

// IsInfinite reports whether the item never runs out at the current rate.
func (d DaysUntilEmpty) IsInfinite() bool {
	return d.infinite
}

// MarshalJSON renders an infinite horizon as "stable", never as a number.
func (d DaysUntilEmpty) MarshalJSON() ([]byte, error) {
	if d.infinite {
		return []byte(`"stable"`), nil
	}
	return json.Marshal(math.Round(d.days*10) / 10)
}

// ForecastResult is the depletion forecast for one inventory item.
type ForecastResult struct {
	ItemID          string                   `json:"itemId"`
	ItemName        string                   `json:"itemName,omitempty"`
	DaysUntilEmpty  DaysUntilEmpty           `json:"daysUntilEmpty"`
	ForecastBucket  constants.ForecastBucket `json:"forecastBucket"`
	Color           string                   `json:"color"`
	ConfidenceScore int                      `json:"confidenceScore"`
	ReorderQuantity float64                  `json:"reorderQuantity,omitempty"`
	Recommendations []string                 `json:"recommendations"`
}

package models

// InventoryItemRecord is a stock item as delivered by the data-access layer.
// The usage fields are produced upstream (seasonality and trend already applied).
type InventoryItemRecord struct {
	ID               string   `json:"id" validate:"required"`
	Name             string   `json:"name,omitempty"`
	Category         string   `json:"category,omitempty"`
	Quantity         *float64 `json:"quantity" validate:"required,min=0"`
	Threshold        *float64 `json:"threshold,omitempty" validate:"omitempty,min=0"`
	UsageRate        *float64 `json:"usageRate,omitempty" validate:"omitempty,min=0"`
	UsageHistoryDays *int     `json:"usageHistoryDays,omitempty" validate:"omitempty,min=0"`
	UsageVariation   *float64 `json:"usageVariation,omitempty" validate:"omitempty,min=0"`
	ConfidenceScore  *float64 `json:"confidenceScore,omitempty"`

	decodeErr error
}

// UsageSignal is the historical consumption backing a forecast.
type UsageSignal struct {
	// Rate is consumption in units per day.
	Rate float64
	// HistoryDays is how many days of usage history back Rate.
	HistoryDays int
	// Variation is the coefficient of variation of daily usage; lower is more consistent.
	Variation float64
	// Confidence is an upstream-provided confidence score, when one was supplied.
	Confidence *float64
}

// InventoryItem is a validated stock item. Usage is nil when no usage signal exists.
type InventoryItem struct {
	ID        string
	Name      string
	Category  string
	Quantity  float64
	Threshold float64
	Usage     *UsageSignal
}

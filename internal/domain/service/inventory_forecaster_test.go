package service_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/turtacn/cadetops/internal/domain/models"
	"github.com/turtacn/cadetops/internal/domain/service"
	"github.com/turtacn/cadetops/pkg/constants"
	"github.com/turtacn/cadetops/pkg/errors"
)

func item(quantity, threshold float64, usage *models.UsageSignal) models.InventoryItem {
	return models.InventoryItem{ID: "item-1", Name: "Blankets", Quantity: quantity, Threshold: threshold, Usage: usage}
}

func TestInventoryForecaster_Buckets(t *testing.T) {
	f := service.NewInventoryForecaster(service.DefaultPolicy().Inventory)

	tests := []struct {
		name       string
		item       models.InventoryItem
		wantBucket constants.ForecastBucket
		wantColor  string
		wantRecs   []string
		wantOrder  float64
	}{
		{
			name:       "below threshold with no consumption is still immediate",
			item:       item(5, 10, &models.UsageSignal{Rate: 0, HistoryDays: 30}),
			wantBucket: constants.ForecastImmediate,
			wantColor:  "red",
			wantRecs:   []string{"Reorder now", "Order at least 5 units to cover 30 days"},
			wantOrder:  5,
		},
		{
			name:       "below threshold with heavy consumption",
			item:       item(5, 10, &models.UsageSignal{Rate: 50, HistoryDays: 30}),
			wantBucket: constants.ForecastImmediate,
			wantColor:  "red",
			wantRecs:   []string{"Reorder now", "Order at least 1505 units to cover 30 days"},
			wantOrder:  1505,
		},
		{
			name:       "runs out inside the horizon",
			item:       item(100, 20, &models.UsageSignal{Rate: 10, HistoryDays: 30}),
			wantBucket: constants.ForecastSoon,
			wantColor:  "yellow",
			wantRecs:   []string{"Schedule reorder within 8 days", "Order at least 220 units to cover 30 days"},
			wantOrder:  220,
		},
		{
			name:       "hits threshold within a day",
			item:       item(25, 20, &models.UsageSignal{Rate: 10, HistoryDays: 30}),
			wantBucket: constants.ForecastSoon,
			wantColor:  "yellow",
			wantRecs:   []string{"Schedule reorder today", "Order at least 295 units to cover 30 days"},
			wantOrder:  295,
		},
		{
			name:       "plenty of stock",
			item:       item(100, 10, &models.UsageSignal{Rate: 1, HistoryDays: 30}),
			wantBucket: constants.ForecastStable,
			wantColor:  "green",
			wantRecs:   []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := f.Forecast(tt.item)
			require.Nil(t, err)
			assert.Equal(t, tt.wantBucket, res.ForecastBucket)
			assert.Equal(t, tt.wantColor, res.Color)
			assert.Equal(t, tt.wantRecs, res.Recommendations)
			assert.Equal(t, tt.wantOrder, res.ReorderQuantity)
		})
	}
}

func TestInventoryForecaster_ImmediateRegardlessOfRate(t *testing.T) {
	f := service.NewInventoryForecaster(service.DefaultPolicy().Inventory)
	for _, rate := range []float64{0, 0.001, 1, 1000} {
		res, err := f.Forecast(item(5, 10, &models.UsageSignal{Rate: rate}))
		require.Nil(t, err)
		assert.Equal(t, constants.ForecastImmediate, res.ForecastBucket, "rate %v", rate)
	}
}

func TestInventoryForecaster_InfiniteHorizon(t *testing.T) {
	f := service.NewInventoryForecaster(service.DefaultPolicy().Inventory)

	res, err := f.Forecast(item(100, 10, &models.UsageSignal{Rate: 0, HistoryDays: 10}))
	require.Nil(t, err)
	assert.True(t, res.DaysUntilEmpty.IsInfinite())
	assert.Equal(t, constants.ForecastStable, res.ForecastBucket)
	assert.Empty(t, res.Recommendations)

	raw, merr := json.Marshal(res.DaysUntilEmpty)
	require.NoError(t, merr)
	assert.Equal(t, `"stable"`, string(raw))
}

func TestInventoryForecaster_FiniteHorizonJSON(t *testing.T) {
	raw, err := json.Marshal(models.FiniteDays(12.345))
	require.NoError(t, err)
	assert.Equal(t, `12.3`, string(raw))
}

func TestInventoryForecaster_MissingUsageIsInsufficientData(t *testing.T) {
	f := service.NewInventoryForecaster(service.DefaultPolicy().Inventory)

	_, err := f.Forecast(item(5, 10, nil))
	require.NotNil(t, err)
	assert.True(t, errors.IsInsufficientData(err))
}

func TestInventoryForecaster_Confidence(t *testing.T) {
	f := service.NewInventoryForecaster(service.DefaultPolicy().Inventory)

	tests := []struct {
		name  string
		usage models.UsageSignal
		want  int
	}{
		{name: "no history", usage: models.UsageSignal{Rate: 1}, want: 0},
		{name: "half history, perfectly consistent", usage: models.UsageSignal{Rate: 1, HistoryDays: 15}, want: 50},
		{name: "full history, perfectly consistent", usage: models.UsageSignal{Rate: 1, HistoryDays: 30}, want: 100},
		{name: "history saturates", usage: models.UsageSignal{Rate: 1, HistoryDays: 365}, want: 100},
		{name: "full history, noisy", usage: models.UsageSignal{Rate: 1, HistoryDays: 30, Variation: 1}, want: 50},
		{name: "injected", usage: models.UsageSignal{Rate: 1, Confidence: floatPtr(72.4)}, want: 72},
		{name: "injected above range", usage: models.UsageSignal{Rate: 1, Confidence: floatPtr(140)}, want: 100},
		{name: "injected below range", usage: models.UsageSignal{Rate: 1, Confidence: floatPtr(-5)}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, f.Confidence(tt.usage))
		})
	}
}

func TestInventoryForecaster_ConfidenceMonotonic(t *testing.T) {
	f := service.NewInventoryForecaster(service.DefaultPolicy().Inventory)

	for _, variation := range []float64{0, 0.25, 1, 3} {
		prev := -1
		for days := 0; days <= 60; days += 3 {
			c := f.Confidence(models.UsageSignal{Rate: 1, HistoryDays: days, Variation: variation})
			assert.GreaterOrEqual(t, c, prev)
			prev = c
		}
	}
	for days := 0; days <= 60; days += 10 {
		prev := 101
		for _, variation := range []float64{0, 0.1, 0.5, 1, 2} {
			c := f.Confidence(models.UsageSignal{Rate: 1, HistoryDays: days, Variation: variation})
			assert.LessOrEqual(t, c, prev)
			prev = c
		}
	}
}

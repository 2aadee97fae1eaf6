package service

import (
	"fmt"
	"math"

	"github.com/turtacn/cadetops/internal/domain/models"
	"github.com/turtacn/cadetops/pkg/constants"
	"github.com/turtacn/cadetops/pkg/errors"
	"github.com/turtacn/cadetops/pkg/utils"
)

// InventoryForecaster projects depletion and restock urgency for stock items.
// The usage rate is consumed as delivered; seasonality and trend are applied upstream.
// InventoryForecaster 预测库存物品的耗尽时间和补货紧急程度。使用率按上游提供的值使用。
type InventoryForecaster struct {
	policy InventoryPolicy
}

// NewInventoryForecaster creates a new InventoryForecaster.
// NewInventoryForecaster 创建一个新的 InventoryForecaster。
func NewInventoryForecaster(policy InventoryPolicy) *InventoryForecaster {
	return &InventoryForecaster{policy: policy}
}

// Forecast produces the depletion forecast for one item. Items without a usage signal
// get no forecast and an insufficient_data error instead.
// Forecast 为单个物品生成耗尽预测。没有使用信号的物品不生成预测，而是返回 insufficient_data 错误。
func (f *InventoryForecaster) Forecast(item models.InventoryItem) (models.ForecastResult, errors.DomainError) {
	if item.Usage == nil {
		return models.ForecastResult{}, errors.ErrInsufficientData("inventory item "+item.ID, "no usage history")
	}
	usage := item.Usage

	days := models.NeverEmpty()
	if usage.Rate > 0 {
		days = models.FiniteDays(item.Quantity / usage.Rate)
	}
	bucket := f.Bucket(item.Quantity, item.Threshold, days)

	result := models.ForecastResult{
		ItemID:          item.ID,
		ItemName:        item.Name,
		DaysUntilEmpty:  days,
		ForecastBucket:  bucket,
		Color:           bucket.Color(),
		ConfidenceScore: f.Confidence(*usage),
		Recommendations: []string{},
	}
	if bucket == constants.ForecastStable {
		return result, nil
	}

	result.ReorderQuantity = f.ReorderQuantity(item)
	switch bucket {
	case constants.ForecastImmediate:
		result.Recommendations = append(result.Recommendations, "Reorder now")
	case constants.ForecastSoon:
		// Soon implies a positive rate
		lead := int(math.Floor((item.Quantity - item.Threshold) / usage.Rate))
		if lead < 1 {
			result.Recommendations = append(result.Recommendations, "Schedule reorder today")
		} else {
			result.Recommendations = append(result.Recommendations, fmt.Sprintf("Schedule reorder within %d days", lead))
		}
	}
	if result.ReorderQuantity > 0 {
		result.Recommendations = append(result.Recommendations,
			fmt.Sprintf("Order at least %.0f units to cover %.0f days", result.ReorderQuantity, f.policy.ReorderCoverDays))
	}
	return result, nil
}

// Bucket classifies restock urgency. Stock at or below threshold is always Immediate.
// Bucket 对补货紧急程度分类。库存不高于阈值时总是 Immediate。
func (f *InventoryForecaster) Bucket(quantity, threshold float64, days models.DaysUntilEmpty) constants.ForecastBucket {
	if quantity <= threshold {
		return constants.ForecastImmediate
	}
	if d, finite := days.Days(); finite && d <= f.policy.SoonHorizonDays {
		return constants.ForecastSoon
	}
	return constants.ForecastStable
}

// Confidence returns the injected confidence when present, otherwise a score that rises with
// history length up to the full-confidence horizon and falls with usage variation.
// Confidence 有注入值时返回注入值，否则返回随历史长度上升、随使用波动下降的分数。
func (f *InventoryForecaster) Confidence(usage models.UsageSignal) int {
	if usage.Confidence != nil {
		return int(math.Round(utils.ClampFloat(*usage.Confidence, 0, 100)))
	}
	coverage := utils.ClampFloat(float64(usage.HistoryDays)/float64(f.policy.FullConfidenceDays), 0, 1)
	consistency := 1 / (1 + math.Max(usage.Variation, 0))
	return utils.ClampInt(int(math.Round(100*coverage*consistency)), 0, 100)
}

// ReorderQuantity is the amount that restores the threshold buffer plus the cover period of usage.
// ReorderQuantity 是恢复阈值缓冲并覆盖补货周期用量所需的数量。
func (f *InventoryForecaster) ReorderQuantity(item models.InventoryItem) float64 {
	var rate float64
	if item.Usage != nil {
		rate = item.Usage.Rate
	}
	need := rate*f.policy.ReorderCoverDays + item.Threshold - item.Quantity
	if need <= 0 {
		return 0
	}
	return math.Ceil(need)
}

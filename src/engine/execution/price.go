package execution

import (
	"fmt"
	"math"

	"github.com/quantfold/ordersim/src/engine/models"
)

// resolveOrderPrice maps sentinel order prices onto the bar envelope:
// -Inf resolves to the open, +Inf to the close. Finite prices pass through.
// With no price area supplied the sentinels resolve to NaN and the order is
// ignored downstream.
func resolveOrderPrice(price float64, area models.PriceArea) float64 {
	if math.IsInf(price, -1) {
		return area.Open
	}
	if math.IsInf(price, 1) {
		return area.Close
	}
	return price
}

// checkPriceArea enforces that the slippage-adjusted execution price stays
// within [low, high]. A non-nil result (always paired with a non-nil error)
// means the violation mode demands a hard failure.
func checkPriceArea(price float64, area models.PriceArea, mode models.PriceAreaViolationMode) (float64, *models.OrderResult, error) {
	if mode == models.PriceAreaViolationModeIgnore {
		return price, nil, nil
	}
	if !math.IsNaN(area.High) && price > area.High {
		if mode == models.PriceAreaViolationModeCap {
			return area.High, nil, nil
		}
		res := models.NewRejectedResult(models.StatusInfoAboveHighPrice)
		return price, &res, fmt.Errorf("%w: %f > %f", models.ErrPriceAboveHigh, price, area.High)
	}
	if !math.IsNaN(area.Low) && price < area.Low {
		if mode == models.PriceAreaViolationModeCap {
			return area.Low, nil, nil
		}
		res := models.NewRejectedResult(models.StatusInfoBelowLowPrice)
		return price, &res, fmt.Errorf("%w: %f < %f", models.ErrPriceBelowLow, price, area.Low)
	}
	return price, nil, nil
}

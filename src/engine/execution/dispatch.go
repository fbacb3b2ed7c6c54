package execution

import (
	"math"

	"github.com/quantfold/ordersim/src/engine/models"
)

// buy dispatches a positive-size order to the correct primitive based on the
// current position sign. A buy against a short position covers first and,
// when the direction allows both sides, reverses into a long with the
// remainder. size must be positive.
func buy(acc models.AccountState, size, price float64, o models.Order) (models.OrderResult, models.AccountState) {
	// the max-size cap bounds the combined fill, not each reversal leg
	if !math.IsNaN(o.MaxSize) && size > o.MaxSize {
		size = o.MaxSize
	}

	if acc.Position >= 0 {
		if o.Direction == models.DirectionShortOnly {
			return models.NewIgnoredResult(models.StatusInfoNoOpenPosition), acc
		}
		return longBuy(acc, size, price, o)
	}

	posAbs := -acc.Position
	if o.Direction == models.DirectionShortOnly || size <= posAbs {
		return shortBuy(acc, size, price, o)
	}

	// reversal: cover the whole short, then open a long with the remainder.
	// partial policy is applied to the combined fill, not per leg.
	leg := o
	leg.AllowPartial = true
	coverRes, midAcc := shortBuy(acc, posAbs, price, leg)
	if coverRes.Status != models.OrderStatusFilled {
		return coverRes, acc
	}
	if coverRes.Size < posAbs {
		if !o.AllowPartial {
			return models.NewRejectedResult(models.StatusInfoFinalSizeBelowRequested), acc
		}
		return coverRes, midAcc
	}

	openLeg := leg
	openLeg.FixedFees = 0 // fixed fees are charged once per order
	openRes, newAcc := longBuy(midAcc, size-posAbs, price, openLeg)
	if openRes.Status != models.OrderStatusFilled {
		if !o.AllowPartial {
			return models.NewRejectedResult(models.StatusInfoFinalSizeBelowRequested), acc
		}
		return coverRes, midAcc
	}

	total := coverRes.Size + openRes.Size
	if !o.AllowPartial && !math.IsInf(size, 1) && total < size {
		return models.NewRejectedResult(models.StatusInfoFinalSizeBelowRequested), acc
	}
	return models.NewFilledResult(total, price, coverRes.Fees+openRes.Fees, models.OrderSideBuy), newAcc
}

// sell mirrors buy: a sell against a long position closes first and, when
// allowed, reverses into a short with the remainder. size must be positive.
func sell(acc models.AccountState, size, price float64, o models.Order) (models.OrderResult, models.AccountState) {
	if !math.IsNaN(o.MaxSize) && size > o.MaxSize {
		size = o.MaxSize
	}

	if acc.Position <= 0 {
		if o.Direction == models.DirectionLongOnly {
			return models.NewIgnoredResult(models.StatusInfoNoOpenPosition), acc
		}
		return shortSell(acc, size, price, o)
	}

	if o.Direction == models.DirectionLongOnly || size <= acc.Position {
		return longSell(acc, size, price, o)
	}

	leg := o
	leg.AllowPartial = true
	closeRes, midAcc := longSell(acc, acc.Position, price, leg)
	if closeRes.Status != models.OrderStatusFilled {
		return closeRes, acc
	}
	if closeRes.Size < acc.Position {
		if !o.AllowPartial {
			return models.NewRejectedResult(models.StatusInfoFinalSizeBelowRequested), acc
		}
		return closeRes, midAcc
	}

	openLeg := leg
	openLeg.FixedFees = 0
	openRes, newAcc := shortSell(midAcc, size-acc.Position, price, openLeg)
	if openRes.Status != models.OrderStatusFilled {
		if !o.AllowPartial {
			return models.NewRejectedResult(models.StatusInfoFinalSizeBelowRequested), acc
		}
		return closeRes, midAcc
	}

	total := closeRes.Size + openRes.Size
	if !o.AllowPartial && !math.IsInf(size, 1) && total < size {
		return models.NewRejectedResult(models.StatusInfoFinalSizeBelowRequested), acc
	}
	return models.NewFilledResult(total, price, closeRes.Fees+openRes.Fees, models.OrderSideSell), newAcc
}

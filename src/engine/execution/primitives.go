// Package execution turns a single order request plus a ledger snapshot into
// an order result and a new snapshot. Failure is side-effect-free: an ignored
// or rejected order always returns the input state unchanged.
package execution

import (
	"math"

	"github.com/quantfold/ordersim/src/engine/models"
)

// finalizeSize reduces a positive requested fill to what the ledger allows
// and applies the max-size cap, granularity rounding and the partial-fill
// policy. limit is the affordability or position bound. The returned result
// is only meaningful when ok is false.
func finalizeSize(requested, limit float64, o models.Order) (size float64, res models.OrderResult, ok bool) {
	size = requested
	if !math.IsNaN(o.MaxSize) && size > o.MaxSize {
		size = o.MaxSize
	}
	if size > limit {
		size = limit
	}
	if math.IsInf(size, 1) {
		// an unbounded fill can only come from infinite leverage
		return 0, models.NewRejectedResult(models.StatusInfoInvalidLeverage), false
	}
	if !math.IsNaN(o.SizeGranularity) {
		// the epsilon absorbs steps that are not exactly representable,
		// e.g. 3.3 at granularity 0.1
		size = math.Floor(size/o.SizeGranularity+1e-9) * o.SizeGranularity
	}
	if size <= 0 {
		if limit <= 0 {
			return 0, models.NewRejectedResult(models.StatusInfoNotEnoughCash), false
		}
		return 0, models.NewIgnoredResult(models.StatusInfoSizeZero), false
	}
	if !math.IsNaN(o.MinSize) && size < o.MinSize {
		return 0, models.NewIgnoredResult(models.StatusInfoMinSizeNotReached), false
	}
	if !o.AllowPartial && !math.IsInf(requested, 1) && size < requested {
		return 0, models.NewRejectedResult(models.StatusInfoFinalSizeBelowRequested), false
	}
	return size, models.OrderResult{}, true
}

// longBuy spends cash, optionally borrowed under leverage, to increase a
// long position. Own cash spent on the purchase moves into LockedCash for as
// long as any of the purchase was financed by debt.
func longBuy(acc models.AccountState, size, price float64, o models.Order) (models.OrderResult, models.AccountState) {
	lev := o.Leverage
	availableCash := acc.FreeCash - o.FixedFees
	if availableCash <= 0 {
		return models.NewRejectedResult(models.StatusInfoNotEnoughCash), acc
	}

	var maxNotional float64
	if o.LeverageMode == models.LeverageModeEager {
		// eager borrowing requires an explicit finite leverage
		if math.IsInf(lev, 1) {
			return models.NewRejectedResult(models.StatusInfoInvalidLeverage), acc
		}
		maxNotional = availableCash / (1/(1+lev) + o.Fees)
	} else {
		if math.IsInf(lev, 1) {
			if o.Fees > 0 {
				maxNotional = availableCash / o.Fees
			} else {
				maxNotional = math.Inf(1)
			}
		} else {
			maxNotional = availableCash * lev / (1 + o.Fees*lev)
		}
	}

	finalSize, res, ok := finalizeSize(size, maxNotional/price, o)
	if !ok {
		return res, acc
	}

	notional := finalSize * price
	totalFees := notional*o.Fees + o.FixedFees

	var own, borrowed float64
	if o.LeverageMode == models.LeverageModeEager {
		// borrow exactly lev dollars per dollar of committed cash
		own = notional / (1 + lev)
		borrowed = notional - own
	} else {
		freeAfterFees := acc.FreeCash - totalFees
		if notional <= freeAfterFees {
			own, borrowed = notional, 0
		} else {
			// borrow only the shortfall
			own = freeAfterFees
			borrowed = notional - freeAfterFees
		}
	}

	newAcc := acc
	newAcc.Cash -= own + totalFees
	newAcc.FreeCash -= own + totalFees
	newAcc.Position += finalSize
	if borrowed > 0 {
		newAcc.Debt += borrowed
		newAcc.LockedCash += own
	}

	return models.NewFilledResult(finalSize, price, totalFees, models.OrderSideBuy), newAcc
}

// longSell reduces an existing long position, releasing debt and locked cash
// proportionally to the fraction of the position closed.
func longSell(acc models.AccountState, size, price float64, o models.Order) (models.OrderResult, models.AccountState) {
	if acc.Position <= 0 {
		return models.NewIgnoredResult(models.StatusInfoNoOpenPosition), acc
	}

	limit := acc.Position

	// a close returning less per share than the debt it repays draws the
	// difference from free cash, which must not go negative on a single order
	releasePerShare := price * (1 - o.Fees)
	consumePerShare := acc.Debt / acc.Position
	if consumePerShare > releasePerShare {
		affordable := (acc.FreeCash - o.FixedFees) / (consumePerShare - releasePerShare)
		if affordable < 0 {
			affordable = 0
		}
		if affordable < limit {
			limit = affordable
		}
	}

	finalSize, res, ok := finalizeSize(size, limit, o)
	if !ok {
		return res, acc
	}

	notional := finalSize * price
	totalFees := notional*o.Fees + o.FixedFees
	proceeds := notional - totalFees

	fraction := finalSize / acc.Position
	releasedDebt := acc.Debt * fraction
	releasedLocked := acc.LockedCash * fraction

	newAcc := acc
	newAcc.Cash += proceeds - releasedDebt
	newAcc.FreeCash += proceeds - releasedDebt
	newAcc.Debt -= releasedDebt
	newAcc.LockedCash -= releasedLocked
	newAcc.Position -= finalSize

	return models.NewFilledResult(finalSize, price, totalFees, models.OrderSideSell), newAcc
}

// shortSell increases a short position by borrowing shares and selling them
// at market. The full sale value becomes debt, own collateral worth
// notional/leverage moves out of free cash into LockedCash, and the sale
// proceeds are credited to cash without ever becoming free.
func shortSell(acc models.AccountState, size, price float64, o models.Order) (models.OrderResult, models.AccountState) {
	lev := o.Leverage
	availableCash := acc.FreeCash - o.FixedFees
	if availableCash <= 0 {
		return models.NewRejectedResult(models.StatusInfoNotEnoughCash), acc
	}

	var collateralRate float64
	if !math.IsInf(lev, 1) {
		collateralRate = 1 / lev
	}
	var maxNotional float64
	if collateralRate+o.Fees > 0 {
		maxNotional = availableCash / (collateralRate + o.Fees)
	} else {
		maxNotional = math.Inf(1)
	}

	finalSize, res, ok := finalizeSize(size, maxNotional/price, o)
	if !ok {
		return res, acc
	}

	notional := finalSize * price
	totalFees := notional*o.Fees + o.FixedFees
	collateral := notional * collateralRate

	newAcc := acc
	newAcc.Cash += notional - totalFees
	newAcc.FreeCash -= collateral + totalFees
	newAcc.Debt += notional
	newAcc.LockedCash += collateral
	newAcc.Position -= finalSize

	return models.NewFilledResult(finalSize, price, totalFees, models.OrderSideSell), newAcc
}

// shortBuy reduces an existing short position. Debt and locked cash are
// released proportionally to the fraction covered; the spread between the
// released debt and the cash spent is the realized P&L and lands in free
// cash together with the released collateral.
func shortBuy(acc models.AccountState, size, price float64, o models.Order) (models.OrderResult, models.AccountState) {
	if acc.Position >= 0 {
		return models.NewIgnoredResult(models.StatusInfoNoOpenPosition), acc
	}

	posAbs := -acc.Position
	limit := posAbs

	// a cover paying more per share than it releases draws the difference
	// from free cash, which must not go negative on a single order
	costPerShare := price * (1 + o.Fees)
	releasePerShare := (acc.Debt + acc.LockedCash) / posAbs
	if costPerShare > releasePerShare {
		affordable := (acc.FreeCash - o.FixedFees) / (costPerShare - releasePerShare)
		if affordable < 0 {
			affordable = 0
		}
		if affordable < limit {
			limit = affordable
		}
	}

	finalSize, res, ok := finalizeSize(size, limit, o)
	if !ok {
		return res, acc
	}

	notional := finalSize * price
	totalFees := notional*o.Fees + o.FixedFees
	spent := notional + totalFees

	fraction := finalSize / posAbs
	releasedDebt := acc.Debt * fraction
	releasedLocked := acc.LockedCash * fraction

	newAcc := acc
	newAcc.Cash -= spent
	newAcc.FreeCash += releasedLocked + releasedDebt - spent
	newAcc.Debt -= releasedDebt
	newAcc.LockedCash -= releasedLocked
	newAcc.Position += finalSize

	return models.NewFilledResult(finalSize, price, totalFees, models.OrderSideBuy), newAcc
}

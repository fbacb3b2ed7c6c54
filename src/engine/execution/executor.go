package execution

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/quantfold/ordersim/src/engine/models"
)

// ExecuteOrder runs the full execution pipeline for one order:
// validate -> resolve price -> convert size -> dispatch to a ledger
// primitive. Every stage can short-circuit to a terminal ignored or rejected
// outcome without touching the input state. A returned error is a hard
// validation failure and must abort the run; soft outcomes are carried in
// the result status.
//
// rng drives reject-probability fault injection and may be nil to disable it.
func ExecuteOrder(st models.ExecState, o models.Order, area models.PriceArea, rng *rand.Rand) (models.OrderResult, models.ExecState, error) {
	if err := o.Validate(); err != nil {
		return models.NewRejectedResult(models.StatusInfoNone), st, err
	}

	if math.IsNaN(o.Size) {
		return models.NewIgnoredResult(models.StatusInfoSizeNaN), st, nil
	}

	if o.RejectProb > 0 && rng != nil && rng.Float64() < o.RejectProb {
		return rejected(st, o, models.NewRejectedResult(models.StatusInfoRandomRejection))
	}

	price := resolveOrderPrice(o.Price, area)
	if math.IsNaN(price) {
		return models.NewIgnoredResult(models.StatusInfoNoPrice), st, nil
	}

	size, info := ConvertSize(o.Size, o.SizeType, st)
	if info != models.StatusInfoNone {
		return rejected(st, o, models.NewRejectedResult(info))
	}
	if size == 0 {
		return models.NewIgnoredResult(models.StatusInfoSizeZero), st, nil
	}

	// a one-sided direction with nothing to reduce has nothing to do
	if size > 0 && o.Direction == models.DirectionShortOnly && st.Position >= 0 {
		return models.NewIgnoredResult(models.StatusInfoNoOpenPosition), st, nil
	}
	if size < 0 && o.Direction == models.DirectionLongOnly && st.Position <= 0 {
		return models.NewIgnoredResult(models.StatusInfoNoOpenPosition), st, nil
	}

	// slippage always worsens the price for the taker
	if size > 0 {
		price *= 1 + o.Slippage
	} else {
		price *= 1 - o.Slippage
	}

	price, vioRes, vioErr := checkPriceArea(price, area, o.PriceAreaVioMode)
	if vioRes != nil {
		return *vioRes, st, vioErr
	}

	var res models.OrderResult
	var newAcc models.AccountState
	if size > 0 {
		res, newAcc = buy(st.AccountState, size, price, o)
	} else {
		res, newAcc = sell(st.AccountState, -size, price, o)
	}

	if res.Status == models.OrderStatusRejected {
		return rejected(st, o, res)
	}
	if res.Status != models.OrderStatusFilled {
		return res, st, nil
	}
	return res, st.WithAccount(newAcc), nil
}

// rejected applies the raise-on-reject policy to a soft rejection.
func rejected(st models.ExecState, o models.Order, res models.OrderResult) (models.OrderResult, models.ExecState, error) {
	if o.RaiseOnReject {
		return res, st, fmt.Errorf("%w: %s", models.ErrOrderRejected, res.StatusInfo)
	}
	return res, st, nil
}

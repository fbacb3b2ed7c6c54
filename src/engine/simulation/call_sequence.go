package simulation

import (
	"math"

	"github.com/quantfold/ordersim/src/engine/execution"
	"github.com/quantfold/ordersim/src/engine/models"
)

// approxOrderValue estimates the net free-cash flow of a column's pending
// order before anything executes: positive consumes the group's cash,
// negative releases it. The estimate only needs to rank orders, so it
// ignores fees, slippage and partial fills.
func approxOrderValue(st models.ExecState, o models.Order) float64 {
	size, info := execution.ConvertSize(o.Size, o.SizeType, st)
	if info != models.StatusInfoNone || size == 0 || math.IsNaN(size) {
		return 0
	}

	valPrice := st.ValPrice
	pos := st.Position

	if size > 0 {
		if pos >= 0 {
			return size * valPrice
		}
		posAbs := -pos
		cover := math.Min(size, posAbs)
		est := cover*valPrice - (st.Debt+st.LockedCash)*cover/posAbs
		if size > posAbs {
			est += (size - posAbs) * valPrice
		}
		return est
	}

	sizeAbs := -size
	collateralRate := 0.0
	if !math.IsInf(o.Leverage, 1) {
		collateralRate = 1 / o.Leverage
	}
	if pos <= 0 {
		return sizeAbs * valPrice * collateralRate
	}
	closeQty := math.Min(sizeAbs, pos)
	est := st.Debt*closeQty/pos - closeQty*valPrice
	if sizeAbs > pos {
		est += (sizeAbs - pos) * valPrice * collateralRate
	}
	return est
}

// insertArgsort stable-sorts values ascending with an insertion sort,
// carrying idxs along. Group sizes are small and mostly presorted, which is
// exactly where insertion sort wins.
func insertArgsort(values []float64, idxs []int) {
	for i := 1; i < len(values); i++ {
		v, id := values[i], idxs[i]
		j := i - 1
		for j >= 0 && values[j] > v {
			values[j+1] = values[j]
			idxs[j+1] = idxs[j]
			j--
		}
		values[j+1] = v
		idxs[j+1] = id
	}
}

package models

import "math"

// AccountState is an immutable snapshot of a ledger. Transitions return a new
// value; the previous snapshot is never mutated.
//
// Cash counts every dollar held, including the locked portion. FreeCash is
// what can still be committed to new or larger positions and equals Cash
// whenever no leverage or shorting is active.
type AccountState struct {
	Cash       float64 `json:"cash"`
	Position   float64 `json:"position"`
	Debt       float64 `json:"debt"`
	LockedCash float64 `json:"locked_cash"`
	FreeCash   float64 `json:"free_cash"`
}

func NewAccountState(cash float64) AccountState {
	return AccountState{
		Cash:     cash,
		FreeCash: cash,
	}
}

// TotalValue marks the account to market at valPrice. For long positions the
// borrowed principal is still owed and is subtracted; for short positions the
// share liability is already carried by the negative position term, Debt only
// memoizes the entry value used for proportional release.
func (a AccountState) TotalValue(valPrice float64) float64 {
	value := a.Cash + a.Position*valPrice
	if a.Position > 0 {
		value -= a.Debt
	}
	return value
}

// LeverageRatio returns Debt / LockedCash, the effective leverage multiplier
// of the currently open position, or zero when no cash is locked.
func (a AccountState) LeverageRatio() float64 {
	if a.LockedCash == 0 {
		return 0
	}
	return a.Debt / a.LockedCash
}

// IsFlat reports whether the account holds no position.
func (a AccountState) IsFlat() bool {
	return a.Position == 0
}

// ExecState is the AccountState extended with the valuation inputs an order
// needs for sizing decisions. It is rebuilt at the start of each time step
// and refreshed after every fill within the step.
type ExecState struct {
	AccountState
	ValPrice float64 `json:"val_price"`
	Value    float64 `json:"value"`
}

func NewExecState(a AccountState, valPrice float64) ExecState {
	return ExecState{
		AccountState: a,
		ValPrice:     valPrice,
		Value:        a.TotalValue(valPrice),
	}
}

// WithAccount returns the exec state rebased on a new account snapshot,
// revaluing at the same valuation price.
func (s ExecState) WithAccount(a AccountState) ExecState {
	return NewExecState(a, s.ValPrice)
}

// HasValidValPrice reports whether the valuation price can be divided by.
func (s ExecState) HasValidValPrice() bool {
	return s.ValPrice > 0 && !math.IsInf(s.ValPrice, 1) && !math.IsNaN(s.ValPrice)
}

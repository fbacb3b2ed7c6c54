package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAccountState(t *testing.T) {
	t.Run("new account holds only free cash", func(t *testing.T) {
		acc := NewAccountState(100)

		assert.Equal(t, 100.0, acc.Cash)
		assert.Equal(t, 100.0, acc.FreeCash)
		assert.Equal(t, 0.0, acc.Position)
		assert.Equal(t, 0.0, acc.Debt)
		assert.Equal(t, 0.0, acc.LockedCash)
		assert.True(t, acc.IsFlat())
	})

	t.Run("cash equals free cash without leverage or shorting", func(t *testing.T) {
		acc := NewAccountState(250)
		assert.Equal(t, acc.Cash, acc.FreeCash)
	})

	t.Run("total value of a plain long", func(t *testing.T) {
		acc := AccountState{Cash: 85, Position: 1, FreeCash: 85}
		assert.Equal(t, 100.0, acc.TotalValue(15))
	})

	t.Run("total value of a leveraged long subtracts debt", func(t *testing.T) {
		acc := AccountState{Cash: 0, Position: 10, Debt: 50, LockedCash: 100, FreeCash: 0}
		assert.Equal(t, 100.0, acc.TotalValue(15))
	})

	t.Run("total value of a short carries the liability in the position term", func(t *testing.T) {
		// a short opened at 15 and still marked at 15 is worth its collateral
		acc := AccountState{Cash: 300, Position: -10, Debt: 150, LockedCash: 150, FreeCash: 0}
		assert.Equal(t, 150.0, acc.TotalValue(15))
	})

	t.Run("leverage ratio", func(t *testing.T) {
		acc := AccountState{Debt: 100, LockedCash: 50}
		assert.Equal(t, 2.0, acc.LeverageRatio())

		assert.Equal(t, 0.0, AccountState{}.LeverageRatio())
	})
}

func TestExecState(t *testing.T) {
	t.Run("values the account at the valuation price", func(t *testing.T) {
		st := NewExecState(AccountState{Cash: 85, Position: 1, FreeCash: 85}, 15)

		assert.Equal(t, 15.0, st.ValPrice)
		assert.Equal(t, 100.0, st.Value)
		assert.True(t, st.HasValidValPrice())
	})

	t.Run("rebasing revalues at the same price", func(t *testing.T) {
		st := NewExecState(NewAccountState(100), 15)
		st2 := st.WithAccount(AccountState{Cash: 85, Position: 1, FreeCash: 85})

		assert.Equal(t, 100.0, st2.Value)
		assert.Equal(t, 15.0, st2.ValPrice)
	})

	t.Run("zero and negative valuation prices are invalid", func(t *testing.T) {
		assert.False(t, NewExecState(NewAccountState(100), 0).HasValidValPrice())
		assert.False(t, NewExecState(NewAccountState(100), -1).HasValidValPrice())
	})
}

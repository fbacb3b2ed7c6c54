package models

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultOrder(t *testing.T) {
	o := DefaultOrder()

	assert.True(t, math.IsNaN(o.Size))
	assert.True(t, math.IsInf(o.Price, 1))
	assert.Equal(t, SizeTypeAmount, o.SizeType)
	assert.Equal(t, DirectionBoth, o.Direction)
	assert.Equal(t, LeverageModeLazy, o.LeverageMode)
	assert.Equal(t, PriceAreaViolationModeIgnore, o.PriceAreaVioMode)
	assert.Equal(t, 1.0, o.Leverage)
	assert.True(t, o.AllowPartial)
	assert.False(t, o.RaiseOnReject)
	assert.True(t, math.IsNaN(o.MinSize))
	assert.True(t, math.IsNaN(o.MaxSize))
	assert.True(t, math.IsNaN(o.SizeGranularity))

	assert.NoError(t, o.Validate())
}

func TestOrderStatusIsFilled(t *testing.T) {
	assert.True(t, OrderStatusFilled.IsFilled())
	assert.False(t, OrderStatusIgnored.IsFilled())
	assert.False(t, OrderStatusRejected.IsFilled())
}

func TestOrderValidate(t *testing.T) {
	t.Run("accepts a plain order", func(t *testing.T) {
		o := NewOrder(1, 15)
		assert.NoError(t, o.Validate())
	})

	t.Run("rejects negative size granularity", func(t *testing.T) {
		o := NewOrder(1, 15)
		o.SizeGranularity = -1
		assert.ErrorIs(t, o.Validate(), ErrInvalidSizeGranularity)
	})

	t.Run("rejects NaN price", func(t *testing.T) {
		o := NewOrder(1, math.NaN())
		assert.Error(t, o.Validate())
	})

	t.Run("rejects invalid enum values", func(t *testing.T) {
		o := NewOrder(1, 15)
		o.SizeType = SizeType("bogus")
		assert.Error(t, o.Validate())

		o = NewOrder(1, 15)
		o.Direction = Direction("sideways")
		assert.Error(t, o.Validate())

		o = NewOrder(1, 15)
		o.LeverageMode = LeverageMode("maybe")
		assert.Error(t, o.Validate())

		o = NewOrder(1, 15)
		o.PriceAreaVioMode = PriceAreaViolationMode("shrug")
		assert.Error(t, o.Validate())
	})

	t.Run("rejects negative fees and slippage", func(t *testing.T) {
		o := NewOrder(1, 15)
		o.Fees = -0.01
		assert.ErrorIs(t, o.Validate(), ErrInvalidFees)

		o = NewOrder(1, 15)
		o.FixedFees = -1
		assert.ErrorIs(t, o.Validate(), ErrInvalidFixedFees)

		o = NewOrder(1, 15)
		o.Slippage = -0.01
		assert.ErrorIs(t, o.Validate(), ErrInvalidSlippage)
	})

	t.Run("rejects out-of-range reject probability", func(t *testing.T) {
		o := NewOrder(1, 15)
		o.RejectProb = 1.5
		assert.ErrorIs(t, o.Validate(), ErrInvalidRejectProb)
	})

	t.Run("rejects non-positive leverage", func(t *testing.T) {
		o := NewOrder(1, 15)
		o.Leverage = 0
		assert.ErrorIs(t, o.Validate(), ErrInvalidLeverage)
	})
}

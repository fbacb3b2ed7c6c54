package models

import (
	"fmt"
	"math"
)

// Order is a declarative request to change a position. It carries no state;
// executing an order against an ExecState produces an OrderResult and a new
// state.
//
// Size carries the side: positive buys, negative sells. An infinite size
// means "as much as the ledger allows". Price may be -Inf (use the bar open)
// or +Inf (use the bar close). MinSize, MaxSize and SizeGranularity are NaN
// when unset.
type Order struct {
	Size             float64
	Price            float64
	SizeType         SizeType
	Direction        Direction
	Fees             float64
	FixedFees        float64
	Slippage         float64
	MinSize          float64
	MaxSize          float64
	SizeGranularity  float64
	Leverage         float64
	LeverageMode     LeverageMode
	RejectProb       float64
	PriceAreaVioMode PriceAreaViolationMode
	AllowPartial     bool
	RaiseOnReject    bool
	Log              bool
}

// NewOrder returns an order with the given size and price and every optional
// field at its default. Callers override only the fields they need.
func NewOrder(size, price float64) Order {
	o := DefaultOrder()
	o.Size = size
	o.Price = price
	return o
}

func DefaultOrder() Order {
	return Order{
		Size:             math.NaN(),
		Price:            math.Inf(1),
		SizeType:         SizeTypeAmount,
		Direction:        DirectionBoth,
		MinSize:          math.NaN(),
		MaxSize:          math.NaN(),
		SizeGranularity:  math.NaN(),
		Leverage:         1,
		LeverageMode:     LeverageModeLazy,
		PriceAreaVioMode: PriceAreaViolationModeIgnore,
		AllowPartial:     true,
	}
}

// Validate checks the order for caller programming errors. A failure here is
// a hard validation failure that aborts the run, not a market condition.
func (o Order) Validate() error {
	if err := o.SizeType.Validate(); err != nil {
		return err
	}
	if err := o.Direction.Validate(); err != nil {
		return err
	}
	if err := o.LeverageMode.Validate(); err != nil {
		return err
	}
	if err := o.PriceAreaVioMode.Validate(); err != nil {
		return err
	}
	if math.IsNaN(o.Fees) || math.IsInf(o.Fees, 0) || o.Fees < 0 {
		return ErrInvalidFees
	}
	if math.IsNaN(o.FixedFees) || math.IsInf(o.FixedFees, 0) || o.FixedFees < 0 {
		return ErrInvalidFixedFees
	}
	if math.IsNaN(o.Slippage) || math.IsInf(o.Slippage, 0) || o.Slippage < 0 {
		return ErrInvalidSlippage
	}
	if !math.IsNaN(o.MinSize) && o.MinSize < 0 {
		return ErrInvalidMinSize
	}
	if !math.IsNaN(o.MaxSize) && o.MaxSize <= 0 {
		return ErrInvalidMaxSize
	}
	if !math.IsNaN(o.SizeGranularity) && o.SizeGranularity <= 0 {
		return ErrInvalidSizeGranularity
	}
	if math.IsNaN(o.Leverage) || o.Leverage <= 0 {
		return ErrInvalidLeverage
	}
	if math.IsNaN(o.RejectProb) || o.RejectProb < 0 || o.RejectProb > 1 {
		return ErrInvalidRejectProb
	}
	if math.IsNaN(o.Price) {
		return fmt.Errorf("order price must not be NaN")
	}
	return nil
}

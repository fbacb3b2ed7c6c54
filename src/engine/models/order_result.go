package models

import "math"

// OrderResult is the outcome of executing a single order. Size is the filled
// magnitude; the side carries the sign. Unfilled results have NaN size,
// price and fees and no side.
type OrderResult struct {
	Size       float64     `json:"size"`
	Price      float64     `json:"price"`
	Fees       float64     `json:"fees"`
	Side       OrderSide   `json:"side"`
	Status     OrderStatus `json:"status"`
	StatusInfo StatusInfo  `json:"status_info"`
}

func NewFilledResult(size, price, fees float64, side OrderSide) OrderResult {
	return OrderResult{
		Size:   size,
		Price:  price,
		Fees:   fees,
		Side:   side,
		Status: OrderStatusFilled,
	}
}

func NewIgnoredResult(info StatusInfo) OrderResult {
	return OrderResult{
		Size:       math.NaN(),
		Price:      math.NaN(),
		Fees:       math.NaN(),
		Side:       OrderSideNone,
		Status:     OrderStatusIgnored,
		StatusInfo: info,
	}
}

func NewRejectedResult(info StatusInfo) OrderResult {
	return OrderResult{
		Size:       math.NaN(),
		Price:      math.NaN(),
		Fees:       math.NaN(),
		Side:       OrderSideNone,
		Status:     OrderStatusRejected,
		StatusInfo: info,
	}
}

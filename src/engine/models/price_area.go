package models

import "math"

// PriceArea is the open/high/low/close envelope of the current bar. It is
// used only to resolve sentinel order prices and to validate or clamp the
// final execution price.
type PriceArea struct {
	Open  float64 `json:"open"`
	High  float64 `json:"high"`
	Low   float64 `json:"low"`
	Close float64 `json:"close"`
}

// NaNPriceArea stands for "no price area supplied". Sentinel order prices
// cannot be resolved against it and such orders are ignored.
var NaNPriceArea = PriceArea{
	Open:  math.NaN(),
	High:  math.NaN(),
	Low:   math.NaN(),
	Close: math.NaN(),
}

func NewPriceArea(open, high, low, close float64) PriceArea {
	return PriceArea{
		Open:  open,
		High:  high,
		Low:   low,
		Close: close,
	}
}

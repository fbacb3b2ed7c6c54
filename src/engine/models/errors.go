package models

import "fmt"

var (
	ErrInvalidSizeGranularity = fmt.Errorf("size granularity must be positive")
	ErrInvalidFees            = fmt.Errorf("fees must be finite and non-negative")
	ErrInvalidFixedFees       = fmt.Errorf("fixed fees must be finite and non-negative")
	ErrInvalidSlippage        = fmt.Errorf("slippage must be finite and non-negative")
	ErrInvalidMinSize         = fmt.Errorf("min size must be non-negative")
	ErrInvalidMaxSize         = fmt.Errorf("max size must be positive")
	ErrInvalidLeverage        = fmt.Errorf("leverage must be positive")
	ErrInvalidRejectProb      = fmt.Errorf("reject probability must be between 0 and 1")
	ErrPriceAboveHigh         = fmt.Errorf("execution price is above the bar high")
	ErrPriceBelowLow          = fmt.Errorf("execution price is below the bar low")
	ErrOrderRejected          = fmt.Errorf("order rejected")
	ErrRecordBufferFull       = fmt.Errorf("order record buffer capacity exceeded")
	ErrLogBufferFull          = fmt.Errorf("log record buffer capacity exceeded")
)

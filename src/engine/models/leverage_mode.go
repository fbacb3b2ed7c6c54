package models

import "fmt"

// LeverageMode controls how much cash a long buy borrows.
type LeverageMode string

const (
	// LeverageModeLazy borrows only the shortfall between the requested
	// notional and the available free cash.
	LeverageModeLazy LeverageMode = "lazy"
	// LeverageModeEager borrows the specified multiple of committed cash
	// regardless of sufficiency.
	LeverageModeEager LeverageMode = "eager"
)

func (m LeverageMode) Validate() error {
	switch m {
	case LeverageModeLazy, LeverageModeEager:
		return nil
	default:
		return fmt.Errorf("invalid leverage mode: %s", m)
	}
}

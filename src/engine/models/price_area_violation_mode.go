package models

import "fmt"

// PriceAreaViolationMode decides what happens when the adjusted execution
// price falls outside the bar's low/high envelope.
type PriceAreaViolationMode string

const (
	PriceAreaViolationModeIgnore PriceAreaViolationMode = "ignore"
	PriceAreaViolationModeCap    PriceAreaViolationMode = "cap"
	PriceAreaViolationModeError  PriceAreaViolationMode = "error"
)

func (m PriceAreaViolationMode) Validate() error {
	switch m {
	case PriceAreaViolationModeIgnore, PriceAreaViolationModeCap, PriceAreaViolationModeError:
		return nil
	default:
		return fmt.Errorf("invalid price area violation mode: %s", m)
	}
}

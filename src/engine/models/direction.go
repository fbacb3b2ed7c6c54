package models

import "fmt"

// Direction bounds which position signs an order is allowed to produce.
type Direction string

const (
	DirectionLongOnly  Direction = "long_only"
	DirectionShortOnly Direction = "short_only"
	DirectionBoth      Direction = "both"
)

func (d Direction) Validate() error {
	switch d {
	case DirectionLongOnly, DirectionShortOnly, DirectionBoth:
		return nil
	default:
		return fmt.Errorf("invalid direction: %s", d)
	}
}

package models

import "fmt"

// SizeType declares how Order.Size should be interpreted before execution.
type SizeType string

const (
	// SizeTypeAmount is a raw signed share delta.
	SizeTypeAmount SizeType = "amount"
	// SizeTypeValue is a signed cash value, converted using the valuation price.
	SizeTypeValue SizeType = "value"
	// SizeTypePercent is a signed fraction of the current total value.
	SizeTypePercent SizeType = "percent"
	// SizeTypeTargetAmount is the desired final share count.
	SizeTypeTargetAmount SizeType = "target_amount"
	// SizeTypeTargetValue is the desired final position value.
	SizeTypeTargetValue SizeType = "target_value"
	// SizeTypeTargetPercent is the desired final position value as a fraction
	// of the current total value.
	SizeTypeTargetPercent SizeType = "target_percent"
)

func (t SizeType) Validate() error {
	switch t {
	case SizeTypeAmount, SizeTypeValue, SizeTypePercent, SizeTypeTargetAmount, SizeTypeTargetValue, SizeTypeTargetPercent:
		return nil
	default:
		return fmt.Errorf("invalid size type: %s", t)
	}
}

// RequiresValPrice reports whether converting this size type needs a valid
// valuation price.
func (t SizeType) RequiresValPrice() bool {
	return t != SizeTypeAmount && t != SizeTypeTargetAmount
}

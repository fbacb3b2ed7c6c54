package models

// StatusInfo is the enumerated reason code attached to an ignored or
// rejected order result.
type StatusInfo string

const (
	StatusInfoNone                    StatusInfo = ""
	StatusInfoSizeNaN                 StatusInfo = "size_nan"
	StatusInfoSizeZero                StatusInfo = "size_zero"
	StatusInfoNoPrice                 StatusInfo = "no_price"
	StatusInfoValPriceInvalid         StatusInfo = "val_price_invalid"
	StatusInfoNotEnoughCash           StatusInfo = "not_enough_cash"
	StatusInfoNoOpenPosition          StatusInfo = "no_open_position"
	StatusInfoMinSizeNotReached       StatusInfo = "min_size_not_reached"
	StatusInfoFinalSizeBelowRequested StatusInfo = "final_size_below_requested"
	StatusInfoAboveHighPrice          StatusInfo = "above_high_price"
	StatusInfoBelowLowPrice           StatusInfo = "below_low_price"
	StatusInfoInvalidLeverage         StatusInfo = "invalid_leverage"
	StatusInfoRandomRejection         StatusInfo = "random_rejection"
)

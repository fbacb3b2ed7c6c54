package models

// LogRecord captures the full before/request/after triple of an order
// evaluation, filled or not. It exists for audits and test oracles; the
// reconstruction layer never needs it.
type LogRecord struct {
	ID        int         `json:"id"`
	Col       int         `json:"col"`
	Idx       int         `json:"idx"`
	PreState  ExecState   `json:"pre_state"`
	Order     Order       `json:"order"`
	PriceArea PriceArea   `json:"price_area"`
	PostState ExecState   `json:"post_state"`
	Result    OrderResult `json:"result"`
}

package models

// OrderRecord is the persisted trace of one filled order. ID is monotonic
// per column; the record stream alone is sufficient to replay the full
// ledger history.
type OrderRecord struct {
	ID    int       `json:"id"`
	Col   int       `json:"col"`
	Idx   int       `json:"idx"`
	Size  float64   `json:"size"`
	Price float64   `json:"price"`
	Fees  float64   `json:"fees"`
	Side  OrderSide `json:"side"`
}

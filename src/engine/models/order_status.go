package models

type OrderStatus string

const (
	OrderStatusFilled   OrderStatus = "filled"
	OrderStatusIgnored  OrderStatus = "ignored"
	OrderStatusRejected OrderStatus = "rejected"
)

func (status OrderStatus) IsFilled() bool {
	return status == OrderStatusFilled
}

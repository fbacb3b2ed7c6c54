package models

type OrderSide string

const (
	OrderSideNone OrderSide = ""
	OrderSideBuy  OrderSide = "buy"
	OrderSideSell OrderSide = "sell"
)

package domain

import "time"

// CartItem is a single product line in a buyer's cart.
type CartItem struct {
	ID              string
	BuyerID         string
	ProductID       string
	OrderedQuantity int
	CreatedAt       time.Time
}

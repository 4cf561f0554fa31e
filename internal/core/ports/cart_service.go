package ports

import (
	"context"

	"github.com/shopfront/shop-api/internal/core/domain"
)

// AddCartItemInput is the payload for CartService.AddItem.
type AddCartItemInput struct {
	BuyerID        string
	ProductID      string
	OrderQuantity  int
	IdempotencyKey string
}

// CartService defines use-case operations for a buyer's cart.
type CartService interface {
	AddItem(ctx context.Context, input AddCartItemInput) (*domain.CartItem, error)
	RemoveItem(ctx context.Context, buyerID, itemID string) error
	Flush(ctx context.Context, buyerID string) (int64, error)
	List(ctx context.Context, buyerID string) ([]*domain.CartItem, error)
}

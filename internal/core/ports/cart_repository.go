package ports

import (
	"context"

	"github.com/shopfront/shop-api/internal/core/domain"
)

// CartRepository defines persistence operations for cart lines.
type CartRepository interface {
	Create(ctx context.Context, item *domain.CartItem) (*domain.CartItem, error)
	// FindByID returns domain.ErrCartItemNotFound when absent.
	FindByID(ctx context.Context, id string) (*domain.CartItem, error)
	// Delete returns domain.ErrCartItemNotFound when nothing was removed.
	Delete(ctx context.Context, id string) error
	DeleteByBuyer(ctx context.Context, buyerID string) (int64, error)
	ListByBuyer(ctx context.Context, buyerID string) ([]*domain.CartItem, error)
}

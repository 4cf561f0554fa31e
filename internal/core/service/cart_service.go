package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/shopfront/shop-api/internal/api/metrics"
	"github.com/shopfront/shop-api/internal/core/access"
	"github.com/shopfront/shop-api/internal/core/domain"
	"github.com/shopfront/shop-api/internal/core/ports"
)

type CartService struct {
	carts    ports.CartRepository
	products ports.ProductRepository
	dedup    RequestDeduper
	logger   zerolog.Logger
}

func NewCartService(carts ports.CartRepository, products ports.ProductRepository, dedup RequestDeduper, logger zerolog.Logger) *CartService {
	return &CartService{carts: carts, products: products, dedup: dedup, logger: logger}
}

// AddItem puts a product line into the buyer's cart. The order quantity may
// not exceed the product's stock; nothing is written when it does.
func (s *CartService) AddItem(ctx context.Context, in ports.AddCartItemInput) (*domain.CartItem, error) {
	product, err := s.products.FindByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}

	if in.OrderQuantity > product.Quantity {
		return nil, domain.ErrInsufficientStock
	}

	scope := "cart:" + in.BuyerID
	if err := claimOnce(ctx, s.dedup, s.logger, scope, in.IdempotencyKey); err != nil {
		return nil, err
	}

	item, err := s.carts.Create(ctx, &domain.CartItem{
		BuyerID:         in.BuyerID,
		ProductID:       product.ID,
		OrderedQuantity: in.OrderQuantity,
		CreatedAt:       time.Now().UTC(),
	})
	if err != nil {
		releaseClaim(ctx, s.dedup, s.logger, scope, in.IdempotencyKey)
		return nil, fmt.Errorf("add cart item: %w", err)
	}

	metrics.CartItemsAddedTotal.Inc()
	s.logger.Info().Str("cart_id", item.ID).Str("buyer_id", in.BuyerID).Str("product_id", product.ID).Msg("cart item added")
	return item, nil
}

// RemoveItem deletes one cart line. Existence is checked before ownership.
func (s *CartService) RemoveItem(ctx context.Context, buyerID, itemID string) error {
	item, err := s.carts.FindByID(ctx, itemID)
	if err != nil {
		return err
	}
	if !access.CheckOwnership(buyerID, item.BuyerID) {
		metrics.OwnershipDenialsTotal.WithLabelValues("cart_item").Inc()
		s.logger.Warn().Str("cart_id", itemID).Str("principal_id", buyerID).Msg("ownership check failed")
		return domain.ErrNotCartOwner
	}
	if err := s.carts.Delete(ctx, itemID); err != nil {
		return fmt.Errorf("remove cart item: %w", err)
	}
	return nil
}

// Flush removes every line of the buyer's cart and returns how many went.
func (s *CartService) Flush(ctx context.Context, buyerID string) (int64, error) {
	n, err := s.carts.DeleteByBuyer(ctx, buyerID)
	if err != nil {
		return 0, fmt.Errorf("flush cart: %w", err)
	}
	s.logger.Info().Str("buyer_id", buyerID).Int64("removed", n).Msg("cart cleared")
	return n, nil
}

func (s *CartService) List(ctx context.Context, buyerID string) ([]*domain.CartItem, error) {
	return s.carts.ListByBuyer(ctx, buyerID)
}

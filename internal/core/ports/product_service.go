package ports

import (
	"context"

	"github.com/shopfront/shop-api/internal/core/domain"
)

// ProductInput carries the writable product fields from the transport layer.
type ProductInput struct {
	Name         string
	Brand        string
	Price        float64
	Quantity     int
	Category     string
	FreeShipping bool
	Description  string
	Image        string
}

// CreateProductInput is the payload for ProductService.Create.
type CreateProductInput struct {
	Product        ProductInput
	SellerID       string
	IdempotencyKey string
}

// ProductService defines use-case operations for products. Mutations take the
// acting principal's id and check ownership before writing.
type ProductService interface {
	Create(ctx context.Context, input CreateProductInput) (*domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context) ([]*domain.Product, error)
	Update(ctx context.Context, principalID, id string, input ProductInput) (*domain.Product, error)
	Delete(ctx context.Context, principalID, id string) error
	ListBySeller(ctx context.Context, sellerID string, page ProductPage) ([]SellerProductView, error)
	ListForBuyer(ctx context.Context, page ProductPage) ([]BuyerProductView, error)
}

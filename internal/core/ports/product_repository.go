package ports

import (
	"context"
	"math"

	"github.com/shopfront/shop-api/internal/core/domain"
)

// ProductPage carries offset/limit pagination for product listings.
type ProductPage struct {
	Page       int    // 1-based
	Limit      int    // rows per page
	SearchText string // optional, case-insensitive match on name
}

// Skip returns the number of rows to skip for the page, saturating at
// math.MaxInt64.
func (p ProductPage) Skip() int64 {
	if p.Page <= 1 || p.Limit <= 0 {
		return 0
	}
	pages, limit := int64(p.Page-1), int64(p.Limit)
	if pages > math.MaxInt64/limit {
		return math.MaxInt64
	}
	return pages * limit
}

// SellerProductView is the projection returned by seller listings.
type SellerProductView struct {
	ID          string
	Name        string
	Brand       string
	Price       float64
	Image       string
	Description string // truncated to 200 characters
}

// BuyerProductView is the projection returned by buyer listings.
type BuyerProductView struct {
	ID           string
	Name         string
	Brand        string
	Price        float64
	FreeShipping bool
}

// ProductRepository defines persistence operations for products.
type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) (*domain.Product, error)
	// FindByID returns domain.ErrProductNotFound when absent.
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	// Update applies patch to the product. It never touches seller_id.
	Update(ctx context.Context, id string, patch domain.ProductPatch) error
	// Delete returns domain.ErrProductNotFound when nothing was removed.
	Delete(ctx context.Context, id string) error
	ListAll(ctx context.Context) ([]*domain.Product, error)
	ListBySeller(ctx context.Context, sellerID string, page ProductPage) ([]SellerProductView, error)
	ListForBuyer(ctx context.Context, page ProductPage) ([]BuyerProductView, error)
}

package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/shopfront/shop-api/internal/api/metrics"
	"github.com/shopfront/shop-api/internal/core/access"
	"github.com/shopfront/shop-api/internal/core/domain"
	"github.com/shopfront/shop-api/internal/core/ports"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

type ProductService struct {
	repo   ports.ProductRepository
	dedup  RequestDeduper
	logger zerolog.Logger
}

func NewProductService(repo ports.ProductRepository, dedup RequestDeduper, logger zerolog.Logger) *ProductService {
	return &ProductService{repo: repo, dedup: dedup, logger: logger}
}

// Create stores a new product owned by input.SellerID.
func (s *ProductService) Create(ctx context.Context, input ports.CreateProductInput) (*domain.Product, error) {
	scope := "product:" + input.SellerID
	if err := claimOnce(ctx, s.dedup, s.logger, scope, input.IdempotencyKey); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	p := &domain.Product{
		SellerID:  input.SellerID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	applyProductInput(p, input.Product)

	created, err := s.repo.Create(ctx, p)
	if err != nil {
		releaseClaim(ctx, s.dedup, s.logger, scope, input.IdempotencyKey)
		s.logger.Error().Err(err).Msg("failed to create product")
		return nil, fmt.Errorf("create product: %w", err)
	}

	metrics.ProductsCreatedTotal.WithLabelValues(created.Category).Inc()
	s.logger.Info().Str("product_id", created.ID).Str("seller_id", created.SellerID).Msg("product created")
	return created, nil
}

func (s *ProductService) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ProductService) List(ctx context.Context) ([]*domain.Product, error) {
	return s.repo.ListAll(ctx)
}

// Update replaces the writable fields of a product. The product must exist
// (domain.ErrProductNotFound) and belong to principalID
// (domain.ErrNotProductOwner) before anything is written.
func (s *ProductService) Update(ctx context.Context, principalID, id string, input ports.ProductInput) (*domain.Product, error) {
	p, err := s.loadOwned(ctx, principalID, id)
	if err != nil {
		return nil, err
	}

	applyProductInput(p, input)
	p.UpdatedAt = time.Now().UTC()

	patch := domain.ProductPatch{
		Name:         p.Name,
		Brand:        p.Brand,
		Price:        p.Price,
		Quantity:     p.Quantity,
		Category:     p.Category,
		FreeShipping: p.FreeShipping,
		Description:  p.Description,
		Image:        p.Image,
	}
	if err := s.repo.Update(ctx, id, patch); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}

	s.logger.Info().Str("product_id", id).Str("seller_id", principalID).Msg("product edited")
	return p, nil
}

// Delete removes a product owned by principalID. Deleting an already removed
// product yields domain.ErrProductNotFound.
func (s *ProductService) Delete(ctx context.Context, principalID, id string) error {
	if _, err := s.loadOwned(ctx, principalID, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	s.logger.Info().Str("product_id", id).Str("seller_id", principalID).Msg("product deleted")
	return nil
}

func (s *ProductService) ListBySeller(ctx context.Context, sellerID string, page ports.ProductPage) ([]ports.SellerProductView, error) {
	page = normalizePage(page)
	page.SearchText = strings.TrimSpace(page.SearchText)
	return s.repo.ListBySeller(ctx, sellerID, page)
}

func (s *ProductService) ListForBuyer(ctx context.Context, page ports.ProductPage) ([]ports.BuyerProductView, error) {
	page = normalizePage(page)
	page.SearchText = ""
	return s.repo.ListForBuyer(ctx, page)
}

// loadOwned fetches the product, then checks it belongs to principalID.
func (s *ProductService) loadOwned(ctx context.Context, principalID, id string) (*domain.Product, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !access.CheckOwnership(principalID, p.SellerID) {
		metrics.OwnershipDenialsTotal.WithLabelValues("product").Inc()
		s.logger.Warn().Str("product_id", id).Str("principal_id", principalID).Msg("ownership check failed")
		return nil, domain.ErrNotProductOwner
	}
	return p, nil
}

func applyProductInput(p *domain.Product, in ports.ProductInput) {
	p.Name = strings.TrimSpace(in.Name)
	p.Brand = strings.TrimSpace(in.Brand)
	p.Price = in.Price
	p.Quantity = in.Quantity
	p.Category = strings.TrimSpace(in.Category)
	p.FreeShipping = in.FreeShipping
	p.Description = strings.TrimSpace(in.Description)
	p.Image = strings.TrimSpace(in.Image)
}

func normalizePage(p ports.ProductPage) ports.ProductPage {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit <= 0 {
		p.Limit = defaultPageLimit
	}
	if p.Limit > maxPageLimit {
		p.Limit = maxPageLimit
	}
	return p
}

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopfront/shop-api/internal/core/domain"
	"github.com/shopfront/shop-api/internal/core/ports"
)

const (
	buyerA = "64b7f0c2a1b2c3d4e5f60720"
	buyerB = "64b7f0c2a1b2c3d4e5f60721"
)

func newCartFixture(t *testing.T) (*CartService, *stubCartRepo, *domain.Product) {
	t.Helper()
	products := newStubProductRepo()
	p := seedProduct(t, NewProductService(products, nil, discardLogger), sellerA)
	carts := newStubCartRepo()
	return NewCartService(carts, products, newStubDeduper(), discardLogger), carts, p
}

func TestCartService_AddItem_Success(t *testing.T) {
	svc, carts, p := newCartFixture(t)

	item, err := svc.AddItem(context.Background(), ports.AddCartItemInput{BuyerID: buyerA, ProductID: p.ID, OrderQuantity: 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if item.BuyerID != buyerA || item.ProductID != p.ID || item.OrderedQuantity != 5 {
		t.Errorf("unexpected item: %+v", item)
	}
	if len(carts.byID) != 1 {
		t.Errorf("expected 1 cart line, got %d", len(carts.byID))
	}
}

func TestCartService_AddItem_ExceedsStock(t *testing.T) {
	svc, carts, p := newCartFixture(t)

	_, err := svc.AddItem(context.Background(), ports.AddCartItemInput{BuyerID: buyerA, ProductID: p.ID, OrderQuantity: 6})
	if !errors.Is(err, domain.ErrInsufficientStock) || !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}
	if len(carts.byID) != 0 {
		t.Errorf("no cart line may be created, got %d", len(carts.byID))
	}
}

func TestCartService_AddItem_ProductNotFound(t *testing.T) {
	svc, _, _ := newCartFixture(t)

	_, err := svc.AddItem(context.Background(), ports.AddCartItemInput{BuyerID: buyerA, ProductID: "000000000000000000000000", OrderQuantity: 1})
	if !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestCartService_AddItem_IdempotencyReplay(t *testing.T) {
	svc, carts, p := newCartFixture(t)
	in := ports.AddCartItemInput{BuyerID: buyerA, ProductID: p.ID, OrderQuantity: 1, IdempotencyKey: "k"}

	if _, err := svc.AddItem(context.Background(), in); err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	if _, err := svc.AddItem(context.Background(), in); !errors.Is(err, domain.ErrDuplicateRequest) {
		t.Fatalf("expected ErrDuplicateRequest, got %v", err)
	}

	// The same key from another buyer is a different request.
	in.BuyerID = buyerB
	if _, err := svc.AddItem(context.Background(), in); err != nil {
		t.Fatalf("other buyer add failed: %v", err)
	}
	if len(carts.byID) != 2 {
		t.Errorf("expected 2 cart lines, got %d", len(carts.byID))
	}
}

func TestCartService_AddItem_RetryAfterRepoError(t *testing.T) {
	svc, carts, p := newCartFixture(t)
	in := ports.AddCartItemInput{BuyerID: buyerA, ProductID: p.ID, OrderQuantity: 1, IdempotencyKey: "k"}

	carts.createErr = errors.New("db unavailable")
	if _, err := svc.AddItem(context.Background(), in); err == nil {
		t.Fatal("expected first add to fail")
	}

	carts.createErr = nil
	if _, err := svc.AddItem(context.Background(), in); err != nil {
		t.Fatalf("retry with the same key failed: %v", err)
	}
	if len(carts.byID) != 1 {
		t.Errorf("expected 1 cart line, got %d", len(carts.byID))
	}
}

func TestCartService_RemoveItem(t *testing.T) {
	svc, carts, p := newCartFixture(t)
	item, _ := svc.AddItem(context.Background(), ports.AddCartItemInput{BuyerID: buyerA, ProductID: p.ID, OrderQuantity: 1})

	if err := svc.RemoveItem(context.Background(), buyerB, item.ID); !errors.Is(err, domain.ErrNotCartOwner) {
		t.Fatalf("expected ErrNotCartOwner, got %v", err)
	}
	if carts.deletes != 0 {
		t.Fatal("non-owner must not delete")
	}

	if err := svc.RemoveItem(context.Background(), buyerA, item.ID); err != nil {
		t.Fatalf("owner remove failed: %v", err)
	}
	if err := svc.RemoveItem(context.Background(), buyerA, item.ID); !errors.Is(err, domain.ErrCartItemNotFound) {
		t.Fatalf("expected ErrCartItemNotFound on second remove, got %v", err)
	}
}

func TestCartService_FlushAndList(t *testing.T) {
	svc, carts, p := newCartFixture(t)
	for _, buyer := range []string{buyerA, buyerA, buyerB} {
		if _, err := svc.AddItem(context.Background(), ports.AddCartItemInput{BuyerID: buyer, ProductID: p.ID, OrderQuantity: 1}); err != nil {
			t.Fatal(err)
		}
	}

	items, err := svc.List(context.Background(), buyerA)
	if err != nil || len(items) != 2 {
		t.Fatalf("expected 2 items for buyer A, got %d (%v)", len(items), err)
	}

	n, err := svc.Flush(context.Background(), buyerA)
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("expected 2 removed, got %d", n)
	}
	if len(carts.byID) != 1 {
		t.Errorf("other buyer's line must remain, got %d lines", len(carts.byID))
	}
}

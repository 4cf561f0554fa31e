package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/shopfront/shop-api/internal/core/domain"
	"github.com/shopfront/shop-api/internal/core/ports"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubAccountRepo struct {
	users   map[string]*domain.User
	nextID  int
	findErr error
}

func newStubAccountRepo() *stubAccountRepo {
	return &stubAccountRepo{users: make(map[string]*domain.User)}
}

func (r *stubAccountRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.users[user.Email]; exists {
		return nil, domain.ErrUserExists
	}
	r.nextID++
	clone := *user
	clone.ID = fmt.Sprintf("%024x", r.nextID)
	r.users[clone.Email] = &clone
	out := clone
	return &out, nil
}

func (r *stubAccountRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	u, ok := r.users[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

type stubProductRepo struct {
	byID      map[string]*domain.Product
	nextID    int
	createErr error
	updates   int
	deletes   int
	lastPage  ports.ProductPage
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{byID: make(map[string]*domain.Product)}
}

func (r *stubProductRepo) Create(_ context.Context, p *domain.Product) (*domain.Product, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.nextID++
	clone := *p
	clone.ID = fmt.Sprintf("%024x", 0x100+r.nextID)
	r.byID[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id string) (*domain.Product, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubProductRepo) Update(_ context.Context, id string, patch domain.ProductPatch) error {
	p, ok := r.byID[id]
	if !ok {
		return domain.ErrProductNotFound
	}
	r.updates++
	p.Name, p.Brand, p.Price, p.Quantity = patch.Name, patch.Brand, patch.Price, patch.Quantity
	p.Category, p.FreeShipping, p.Description, p.Image = patch.Category, patch.FreeShipping, patch.Description, patch.Image
	return nil
}

func (r *stubProductRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrProductNotFound
	}
	r.deletes++
	delete(r.byID, id)
	return nil
}

func (r *stubProductRepo) ListAll(_ context.Context) ([]*domain.Product, error) {
	out := make([]*domain.Product, 0, len(r.byID))
	for _, p := range r.byID {
		clone := *p
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubProductRepo) ListBySeller(_ context.Context, sellerID string, page ports.ProductPage) ([]ports.SellerProductView, error) {
	r.lastPage = page
	var out []ports.SellerProductView
	for _, p := range r.byID {
		if p.SellerID != sellerID {
			continue
		}
		if page.SearchText != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(page.SearchText)) {
			continue
		}
		out = append(out, ports.SellerProductView{ID: p.ID, Name: p.Name})
	}
	return out, nil
}

func (r *stubProductRepo) ListForBuyer(_ context.Context, page ports.ProductPage) ([]ports.BuyerProductView, error) {
	r.lastPage = page
	out := make([]ports.BuyerProductView, 0, len(r.byID))
	for _, p := range r.byID {
		out = append(out, ports.BuyerProductView{ID: p.ID, Name: p.Name})
	}
	return out, nil
}

type stubCartRepo struct {
	byID      map[string]*domain.CartItem
	nextID    int
	deletes   int
	createErr error
}

func newStubCartRepo() *stubCartRepo {
	return &stubCartRepo{byID: make(map[string]*domain.CartItem)}
}

func (r *stubCartRepo) Create(_ context.Context, item *domain.CartItem) (*domain.CartItem, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.nextID++
	clone := *item
	clone.ID = fmt.Sprintf("%024x", 0x200+r.nextID)
	r.byID[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubCartRepo) FindByID(_ context.Context, id string) (*domain.CartItem, error) {
	item, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrCartItemNotFound
	}
	clone := *item
	return &clone, nil
}

func (r *stubCartRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrCartItemNotFound
	}
	r.deletes++
	delete(r.byID, id)
	return nil
}

func (r *stubCartRepo) DeleteByBuyer(_ context.Context, buyerID string) (int64, error) {
	var n int64
	for id, item := range r.byID {
		if item.BuyerID == buyerID {
			delete(r.byID, id)
			n++
		}
	}
	return n, nil
}

func (r *stubCartRepo) ListByBuyer(_ context.Context, buyerID string) ([]*domain.CartItem, error) {
	var out []*domain.CartItem
	for _, item := range r.byID {
		if item.BuyerID == buyerID {
			clone := *item
			out = append(out, &clone)
		}
	}
	return out, nil
}

type stubDeduper struct {
	seen     map[string]bool
	claimErr error
	releases int
}

func newStubDeduper() *stubDeduper {
	return &stubDeduper{seen: make(map[string]bool)}
}

func (d *stubDeduper) Claim(_ context.Context, scope, key string) (bool, error) {
	if d.claimErr != nil {
		return false, d.claimErr
	}
	k := scope + ":" + key
	if d.seen[k] {
		return false, nil
	}
	d.seen[k] = true
	return true, nil
}

func (d *stubDeduper) Release(_ context.Context, scope, key string) error {
	d.releases++
	delete(d.seen, scope+":"+key)
	return nil
}

package api

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/shopfront/shop-api/internal/core/domain"
	"github.com/shopfront/shop-api/internal/core/ports"
)

// memStore backs all three repositories for router tests.
type memStore struct {
	mu       sync.Mutex
	seq      int
	users    map[string]*domain.User
	products map[string]*domain.Product
	carts    map[string]*domain.CartItem
	claims   map[string]bool
}

func newMemStore() *memStore {
	return &memStore{
		users:    make(map[string]*domain.User),
		products: make(map[string]*domain.Product),
		carts:    make(map[string]*domain.CartItem),
		claims:   make(map[string]bool),
	}
}

func (s *memStore) nextID() string {
	s.seq++
	return fmt.Sprintf("%024x", 0xabc000+s.seq)
}

// --- accounts ---

type memAccounts struct{ *memStore }

func (r memAccounts) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r memAccounts) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.Email]; ok {
		return nil, domain.ErrUserExists
	}
	clone := *u
	clone.ID = r.nextID()
	r.users[clone.Email] = &clone
	out := clone
	return &out, nil
}

// --- products ---

type memProducts struct{ *memStore }

func (r memProducts) Create(_ context.Context, p *domain.Product) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *p
	clone.ID = r.nextID()
	r.products[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r memProducts) FindByID(_ context.Context, id string) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	clone := *p
	return &clone, nil
}

func (r memProducts) Update(_ context.Context, id string, patch domain.ProductPatch) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return domain.ErrProductNotFound
	}
	p.Name, p.Brand, p.Price, p.Quantity = patch.Name, patch.Brand, patch.Price, patch.Quantity
	p.Category, p.FreeShipping, p.Description, p.Image = patch.Category, patch.FreeShipping, patch.Description, patch.Image
	return nil
}

func (r memProducts) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(r.products, id)
	return nil
}

func (r memProducts) sorted() []*domain.Product {
	out := make([]*domain.Product, 0, len(r.products))
	for _, p := range r.products {
		clone := *p
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r memProducts) ListAll(_ context.Context) ([]*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sorted(), nil
}

func paginate[T any](items []T, page ports.ProductPage) []T {
	skip := int(page.Skip())
	if skip >= len(items) {
		return []T{}
	}
	end := min(skip+page.Limit, len(items))
	return items[skip:end]
}

func (r memProducts) ListBySeller(_ context.Context, sellerID string, page ports.ProductPage) ([]ports.SellerProductView, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var views []ports.SellerProductView
	for _, p := range r.sorted() {
		if p.SellerID != sellerID {
			continue
		}
		if page.SearchText != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(page.SearchText)) {
			continue
		}
		desc := []rune(p.Description)
		if len(desc) > 200 {
			desc = desc[:200]
		}
		views = append(views, ports.SellerProductView{
			ID: p.ID, Name: p.Name, Brand: p.Brand, Price: p.Price, Image: p.Image, Description: string(desc),
		})
	}
	return paginate(views, page), nil
}

func (r memProducts) ListForBuyer(_ context.Context, page ports.ProductPage) ([]ports.BuyerProductView, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var views []ports.BuyerProductView
	for _, p := range r.sorted() {
		views = append(views, ports.BuyerProductView{
			ID: p.ID, Name: p.Name, Brand: p.Brand, Price: p.Price, FreeShipping: p.FreeShipping,
		})
	}
	return paginate(views, page), nil
}

// --- carts ---

type memCarts struct{ *memStore }

func (r memCarts) Create(_ context.Context, it *domain.CartItem) (*domain.CartItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *it
	clone.ID = r.nextID()
	r.carts[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r memCarts) FindByID(_ context.Context, id string) (*domain.CartItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	it, ok := r.carts[id]
	if !ok {
		return nil, domain.ErrCartItemNotFound
	}
	clone := *it
	return &clone, nil
}

func (r memCarts) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.carts[id]; !ok {
		return domain.ErrCartItemNotFound
	}
	delete(r.carts, id)
	return nil
}

func (r memCarts) DeleteByBuyer(_ context.Context, buyerID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, it := range r.carts {
		if it.BuyerID == buyerID {
			delete(r.carts, id)
			n++
		}
	}
	return n, nil
}

func (r memCarts) ListByBuyer(_ context.Context, buyerID string) ([]*domain.CartItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.CartItem
	for _, it := range r.carts {
		if it.BuyerID == buyerID {
			clone := *it
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// --- idempotency ---

type memDeduper struct{ *memStore }

func (d memDeduper) Claim(_ context.Context, scope, key string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	k := scope + ":" + key
	if d.claims[k] {
		return false, nil
	}
	d.claims[k] = true
	return true, nil
}

func (d memDeduper) Release(_ context.Context, scope, key string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.claims, scope+":"+key)
	return nil
}

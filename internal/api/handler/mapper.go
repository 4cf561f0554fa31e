package handler

import (
	"github.com/shopfront/shop-api/internal/core/domain"
	"github.com/shopfront/shop-api/internal/core/ports"
)

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
}

func toProductResponse(p *domain.Product) productResponse {
	return productResponse{
		ID:           p.ID,
		Name:         p.Name,
		Brand:        p.Brand,
		Price:        p.Price,
		Quantity:     p.Quantity,
		Category:     p.Category,
		FreeShipping: p.FreeShipping,
		Description:  p.Description,
		Image:        p.Image,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func toProductResponses(ps []*domain.Product) []productResponse {
	out := make([]productResponse, len(ps))
	for i, p := range ps {
		out[i] = toProductResponse(p)
	}
	return out
}

func toSellerProductResponses(vs []ports.SellerProductView) []sellerProductResponse {
	out := make([]sellerProductResponse, len(vs))
	for i, v := range vs {
		out[i] = sellerProductResponse{
			ID:          v.ID,
			Name:        v.Name,
			Brand:       v.Brand,
			Price:       v.Price,
			Image:       v.Image,
			Description: v.Description,
		}
	}
	return out
}

func toBuyerProductResponses(vs []ports.BuyerProductView) []buyerProductResponse {
	out := make([]buyerProductResponse, len(vs))
	for i, v := range vs {
		out[i] = buyerProductResponse{
			ID:           v.ID,
			Name:         v.Name,
			Brand:        v.Brand,
			Price:        v.Price,
			FreeShipping: v.FreeShipping,
		}
	}
	return out
}

func toCartItemResponse(it *domain.CartItem) cartItemResponse {
	return cartItemResponse{
		ID:              it.ID,
		ProductID:       it.ProductID,
		OrderedQuantity: it.OrderedQuantity,
		CreatedAt:       it.CreatedAt,
	}
}

func toCartItemResponses(items []*domain.CartItem) []cartItemResponse {
	out := make([]cartItemResponse, len(items))
	for i, it := range items {
		out[i] = toCartItemResponse(it)
	}
	return out
}

package handler

import (
	"strings"
	"time"

	"github.com/shopfront/shop-api/internal/core/domain"
	"github.com/shopfront/shop-api/internal/core/ports"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error   string                  `json:"error"`
	Details []domain.FieldViolation `json:"details,omitempty"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// --- Users ---

type registerRequest struct {
	FirstName string `json:"firstName" validate:"required,max=25"`
	LastName  string `json:"lastName"  validate:"required,max=25"`
	Email     string `json:"email"     validate:"required,email,max=55"`
	Password  string `json:"password"  validate:"required,min=8,max=64"`
	Role      string `json:"role"      validate:"required,oneof=buyer seller"`
}

func (r *registerRequest) normalize() {
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Role = strings.ToLower(strings.TrimSpace(r.Role))
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (r *loginRequest) normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

type userResponse struct {
	ID        string    `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

type registerResponse struct {
	Message string       `json:"message"`
	User    userResponse `json:"user"`
}

type loginResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    userResponse `json:"user"`
}

// --- Products ---

type productRequest struct {
	Name         string   `json:"name"         validate:"required,max=55"`
	Brand        string   `json:"brand"        validate:"required,max=55"`
	Price        *float64 `json:"price"        validate:"required,gte=0"`
	Quantity     int      `json:"quantity"     validate:"required,min=1"`
	Category     string   `json:"category"     validate:"required,category"`
	FreeShipping bool     `json:"freeShipping"`
	Description  string   `json:"description"  validate:"required,min=10,max=1000"`
	Image        string   `json:"image"        validate:"omitempty,url,max=2048"`
}

func (r *productRequest) normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Brand = strings.TrimSpace(r.Brand)
	r.Category = strings.ToLower(strings.TrimSpace(r.Category))
	r.Description = strings.TrimSpace(r.Description)
	r.Image = strings.TrimSpace(r.Image)
}

func (r *productRequest) toInput() ports.ProductInput {
	var price float64
	if r.Price != nil {
		price = *r.Price
	}
	return ports.ProductInput{
		Name:         r.Name,
		Brand:        r.Brand,
		Price:        price,
		Quantity:     r.Quantity,
		Category:     r.Category,
		FreeShipping: r.FreeShipping,
		Description:  r.Description,
		Image:        r.Image,
	}
}

type pageRequest struct {
	Page       int    `json:"page"       validate:"required,min=1,max=100000"`
	Limit      int    `json:"limit"      validate:"required,min=1,max=100"`
	SearchText string `json:"searchText" validate:"omitempty,max=55"`
}

func (r *pageRequest) normalize() {
	r.SearchText = strings.TrimSpace(r.SearchText)
}

func (r *pageRequest) toPage() ports.ProductPage {
	return ports.ProductPage{Page: r.Page, Limit: r.Limit, SearchText: r.SearchText}
}

// productResponse never carries the seller id.
type productResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Brand        string    `json:"brand"`
	Price        float64   `json:"price"`
	Quantity     int       `json:"quantity"`
	Category     string    `json:"category"`
	FreeShipping bool      `json:"freeShipping"`
	Description  string    `json:"description"`
	Image        string    `json:"image,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type productEnvelope struct {
	Message string          `json:"message"`
	Product productResponse `json:"product"`
}

type productListResponse struct {
	Message  string            `json:"message"`
	Products []productResponse `json:"products"`
}

type sellerProductResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Brand       string  `json:"brand"`
	Price       float64 `json:"price"`
	Image       string  `json:"image,omitempty"`
	Description string  `json:"description"`
}

type sellerListResponse struct {
	Message  string                  `json:"message"`
	Products []sellerProductResponse `json:"products"`
}

type buyerProductResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Brand        string  `json:"brand"`
	Price        float64 `json:"price"`
	FreeShipping bool    `json:"freeShipping"`
}

type buyerListResponse struct {
	Message  string                 `json:"message"`
	Products []buyerProductResponse `json:"products"`
}

// --- Cart ---

type addCartItemRequest struct {
	ProductID     string `json:"productId"     validate:"required,objectid"`
	OrderQuantity int    `json:"orderQuantity" validate:"required,min=1"`
}

func (r *addCartItemRequest) normalize() {
	r.ProductID = strings.ToLower(strings.TrimSpace(r.ProductID))
}

type cartItemResponse struct {
	ID              string    `json:"id"`
	ProductID       string    `json:"productId"`
	OrderedQuantity int       `json:"orderedQuantity"`
	CreatedAt       time.Time `json:"createdAt"`
}

type cartItemEnvelope struct {
	Message string           `json:"message"`
	Item    cartItemResponse `json:"item"`
}

type cartListResponse struct {
	Message string             `json:"message"`
	Items   []cartItemResponse `json:"items"`
}

type flushCartResponse struct {
	Message string `json:"message"`
	Deleted int64  `json:"deleted"`
}

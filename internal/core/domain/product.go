package domain

import "time"

// Categories accepted for a product.
var ProductCategories = []string{
	"grocery",
	"electronics",
	"electrical",
	"clothing",
	"kitchen",
	"kids",
	"laundry",
	"furniture",
	"sports",
	"pharmaceuticals",
	"cosmetics",
	"books",
}

// Product is a listing owned by exactly one seller.
type Product struct {
	ID           string
	Name         string
	Brand        string
	Price        float64
	Quantity     int
	Category     string
	FreeShipping bool
	SellerID     string
	Description  string
	Image        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ProductPatch holds the mutable fields of a product. SellerID is absent on
// purpose: ownership is never transferred.
type ProductPatch struct {
	Name         string
	Brand        string
	Price        float64
	Quantity     int
	Category     string
	FreeShipping bool
	Description  string
	Image        string
}

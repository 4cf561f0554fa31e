package ports

import (
	"context"

	"github.com/shopfront/shop-api/internal/core/domain"
)

// RegisterInput carries the fields needed to create an account.
type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Role      domain.Role
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}

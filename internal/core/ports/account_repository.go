package ports

import (
	"context"

	"github.com/shopfront/shop-api/internal/core/domain"
)

// AccountRepository defines persistence for registered accounts.
type AccountRepository interface {
	// FindByEmail returns domain.ErrUserNotFound when no account has the email.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// Create returns domain.ErrUserExists when the email is already taken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}

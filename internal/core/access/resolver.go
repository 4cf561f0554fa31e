package access

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopfront/shop-api/internal/core/domain"
	"github.com/shopfront/shop-api/internal/core/ports"
)

// IdentityResolver maps a verified email to its stored account.
type IdentityResolver struct {
	accounts ports.AccountRepository
}

func NewIdentityResolver(accounts ports.AccountRepository) *IdentityResolver {
	return &IdentityResolver{accounts: accounts}
}

// Resolve never reports whether the email exists: an unknown identity is
// domain.ErrUnauthenticated. Store failures are returned wrapped.
func (r *IdentityResolver) Resolve(ctx context.Context, email string) (*domain.User, error) {
	user, err := r.accounts.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUnauthenticated
		}
		return nil, fmt.Errorf("resolve identity: %w", err)
	}
	return user, nil
}

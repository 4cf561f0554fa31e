package access

import (
	"context"

	"github.com/shopfront/shop-api/internal/core/domain"
)

// Principal is the identity bound to a request after authentication.
type Principal struct {
	ID    string
	Email string
	Role  domain.Role
}

// Owns reports whether ownerID refers to this principal.
func (p *Principal) Owns(ownerID any) bool {
	if p == nil {
		return false
	}
	return CheckOwnership(p.ID, ownerID)
}

type principalKey struct{}

// WithPrincipal returns a copy of ctx carrying p.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFrom returns the principal bound by WithPrincipal, if any.
func PrincipalFrom(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(*Principal)
	return p, ok && p != nil
}

package access

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/shopfront/shop-api/internal/core/domain"
	"github.com/shopfront/shop-api/internal/core/ports"
)

// Authenticator chains the credential verifier, the identity resolver and the
// role gate.
type Authenticator struct {
	tokens   *Tokens
	resolver *IdentityResolver
	log      zerolog.Logger
}

func NewAuthenticator(tokens *Tokens, accounts ports.AccountRepository, log zerolog.Logger) *Authenticator {
	return &Authenticator{
		tokens:   tokens,
		resolver: NewIdentityResolver(accounts),
		log:      log,
	}
}

// Authenticate resolves the principal behind an Authorization header value.
// Every credential failure is domain.ErrUnauthenticated; the failing stage is
// only logged.
func (a *Authenticator) Authenticate(ctx context.Context, header string) (*Principal, error) {
	raw, ok := BearerToken(header)
	if !ok {
		a.reject("header", nil)
		return nil, domain.ErrUnauthenticated
	}

	claims, err := a.tokens.Verify(raw)
	if err != nil {
		a.reject("token", err)
		return nil, domain.ErrUnauthenticated
	}

	user, err := a.resolver.Resolve(ctx, claims.Email)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthenticated) {
			a.reject("identity", nil)
		}
		return nil, err
	}

	return &Principal{ID: user.ID, Email: user.Email, Role: user.Role}, nil
}

// AuthenticateWithRole is Authenticate followed by an exact role match.
// A mismatch yields domain.ErrRoleMismatch and no principal.
func (a *Authenticator) AuthenticateWithRole(ctx context.Context, header string, role domain.Role) (*Principal, error) {
	p, err := a.Authenticate(ctx, header)
	if err != nil {
		return nil, err
	}
	if p.Role != role {
		a.log.Debug().Str("email", p.Email).Str("role", string(p.Role)).Str("required", string(role)).Msg("role gate rejected")
		return nil, domain.ErrRoleMismatch
	}
	return p, nil
}

func (a *Authenticator) reject(stage string, err error) {
	a.log.Debug().Err(err).Str("stage", stage).Msg("authentication rejected")
}

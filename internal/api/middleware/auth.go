package middleware

import (
	"context"
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/shopfront/shop-api/internal/api/metrics"
	"github.com/shopfront/shop-api/internal/core/access"
	"github.com/shopfront/shop-api/internal/core/domain"
)

// Authenticator turns an Authorization header into a principal.
type Authenticator interface {
	Authenticate(ctx context.Context, header string) (*access.Principal, error)
	AuthenticateWithRole(ctx context.Context, header string, role domain.Role) (*access.Principal, error)
}

// RequireUser admits any authenticated user and binds the principal to the
// request context.
func RequireUser(auth Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			p, err := auth.Authenticate(req.Context(), req.Header.Get(echo.HeaderAuthorization))
			if err != nil {
				recordRejection(err, "any")
				return err
			}
			bindPrincipal(c, p)
			return next(c)
		}
	}
}

func bindPrincipal(c echo.Context, p *access.Principal) {
	req := c.Request()
	c.SetRequest(req.WithContext(access.WithPrincipal(req.Context(), p)))
}

func recordRejection(err error, role string) {
	reason := "internal"
	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		reason = "unauthenticated"
	case errors.Is(err, domain.ErrRoleMismatch):
		reason = "role_mismatch"
	}
	metrics.AuthRejectionsTotal.WithLabelValues(reason, role).Inc()
}

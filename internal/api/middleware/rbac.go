package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/shopfront/shop-api/internal/core/domain"
)

// RequireRole admits only users whose role equals role exactly. On a
// mismatch the request stops with domain.ErrRoleMismatch and no principal
// is bound.
func RequireRole(auth Authenticator, role domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			p, err := auth.AuthenticateWithRole(req.Context(), req.Header.Get(echo.HeaderAuthorization), role)
			if err != nil {
				recordRejection(err, string(role))
				return err
			}
			bindPrincipal(c, p)
			return next(c)
		}
	}
}

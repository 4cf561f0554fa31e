package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shopfront/shop-api/internal/core/access"
	"github.com/shopfront/shop-api/internal/core/domain"
)

const headerIdempotencyKey = "Idempotency-Key"

// currentPrincipal returns the principal bound by the auth middleware. Its
// absence means the route was registered without a guard.
func currentPrincipal(c echo.Context) (*access.Principal, error) {
	p, ok := access.PrincipalFrom(c.Request().Context())
	if !ok || p.ID == "" {
		return nil, domain.ErrUnauthenticated
	}
	return p, nil
}

// pathObjectID reads a path parameter that must be a mongo id.
func pathObjectID(c echo.Context, name string) (string, error) {
	id := strings.ToLower(strings.TrimSpace(c.Param(name)))
	if !primitive.IsValidObjectID(id) {
		return "", echo.NewHTTPError(http.StatusBadRequest, "invalid mongo id")
	}
	return id, nil
}

// bindAndValidate decodes the JSON body into req and runs its schema.
func bindAndValidate(c echo.Context, req interface{ normalize() }) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	req.normalize()
	return c.Validate(req)
}

func idempotencyKey(c echo.Context) string {
	return strings.TrimSpace(c.Request().Header.Get(headerIdempotencyKey))
}

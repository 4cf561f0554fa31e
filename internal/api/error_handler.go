package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/shopfront/shop-api/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error   string                  `json:"error"`
	Details []domain.FieldViolation `json:"details,omitempty"`
}

// ErrorOptions tunes the status mapping.
type ErrorOptions struct {
	// LegacyRoleStatus answers role mismatches with 401 instead of 403.
	LegacyRoleStatus bool
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger, opts ErrorOptions) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		resp := errorResponse{}
		var code int
		code, resp.Error = resolveError(err, opts, log, c)

		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			resp.Details = ve.Violations
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, resp)
	}
}

func resolveError(err error, opts ErrorOptions, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, bad ids, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors → deterministic HTTP codes. Specific forbidden
	// variants come before the generic ErrForbidden.
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized, "unauthorized"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid credentials"
	case errors.Is(err, domain.ErrRoleMismatch):
		if opts.LegacyRoleStatus {
			return http.StatusUnauthorized, "unauthorized"
		}
		return http.StatusForbidden, "access forbidden"
	case errors.Is(err, domain.ErrNotProductOwner):
		return http.StatusForbidden, "you are not the owner of the product"
	case errors.Is(err, domain.ErrNotCartOwner):
		return http.StatusForbidden, "you are not the owner of this cart item"
	case errors.Is(err, domain.ErrInsufficientStock):
		return http.StatusForbidden, "product is outnumbered"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "access forbidden"
	case errors.Is(err, domain.ErrProductNotFound):
		return http.StatusNotFound, "product does not exist"
	case errors.Is(err, domain.ErrCartItemNotFound):
		return http.StatusNotFound, "cart item not found"
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "user not found"
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict, "user already exists"
	case errors.Is(err, domain.ErrDuplicateRequest):
		return http.StatusConflict, "duplicate request"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}

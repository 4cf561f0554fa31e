package api

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/shopfront/shop-api/internal/core/domain"
)

func TestHTTPErrorHandler_Mapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		legacy bool
		code   int
		msg    string
	}{
		{"unauthenticated", domain.ErrUnauthenticated, false, http.StatusUnauthorized, "unauthorized"},
		{"invalid credentials", domain.ErrInvalidCredentials, false, http.StatusUnauthorized, "invalid credentials"},
		{"role mismatch", domain.ErrRoleMismatch, false, http.StatusForbidden, "access forbidden"},
		{"role mismatch legacy", domain.ErrRoleMismatch, true, http.StatusUnauthorized, "unauthorized"},
		{"not product owner", domain.ErrNotProductOwner, false, http.StatusForbidden, "you are not the owner of the product"},
		{"not product owner legacy", domain.ErrNotProductOwner, true, http.StatusForbidden, "you are not the owner of the product"},
		{"not cart owner", domain.ErrNotCartOwner, false, http.StatusForbidden, "you are not the owner of this cart item"},
		{"insufficient stock", domain.ErrInsufficientStock, false, http.StatusForbidden, "product is outnumbered"},
		{"wrapped not found", fmt.Errorf("delete product: %w", domain.ErrProductNotFound), false, http.StatusNotFound, "product does not exist"},
		{"cart item not found", domain.ErrCartItemNotFound, false, http.StatusNotFound, "cart item not found"},
		{"user exists", domain.ErrUserExists, false, http.StatusConflict, "user already exists"},
		{"duplicate", domain.ErrDuplicateRequest, false, http.StatusConflict, "duplicate request"},
		{"echo error", echo.NewHTTPError(http.StatusBadRequest, "invalid mongo id"), false, http.StatusBadRequest, "invalid mongo id"},
		{"unknown", errors.New("mongo exploded"), false, http.StatusInternalServerError, "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			NewHTTPErrorHandler(zerolog.Nop(), ErrorOptions{LegacyRoleStatus: tt.legacy})(tt.err, c)

			if rec.Code != tt.code {
				t.Fatalf("expected %d, got %d", tt.code, rec.Code)
			}
			if !strings.Contains(rec.Body.String(), `"error":"`+tt.msg+`"`) {
				t.Fatalf("unexpected body: %s", rec.Body.String())
			}
		})
	}
}

func TestHTTPErrorHandler_ValidationDetails(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/", nil), rec)

	err := &domain.ValidationError{Violations: []domain.FieldViolation{
		{Field: "price", Message: "price is required"},
		{Field: "name", Message: "name is required"},
	}}
	NewHTTPErrorHandler(zerolog.Nop(), ErrorOptions{})(err, c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `"error":"price is required; name is required"`) {
		t.Fatalf("unexpected error message: %s", body)
	}
	if !strings.Contains(body, `"field":"price"`) {
		t.Fatalf("missing details: %s", body)
	}
}

func TestHTTPErrorHandler_LogsUnexpectedOnly(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)
	h := NewHTTPErrorHandler(log, ErrorOptions{})

	e := echo.New()
	h(domain.ErrProductNotFound, e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder()))
	if buf.Len() != 0 {
		t.Fatalf("known errors must not be logged: %s", buf.String())
	}

	h(errors.New("boom"), e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder()))
	if !strings.Contains(buf.String(), "boom") {
		t.Fatalf("expected cause in log, got %s", buf.String())
	}
}

func TestHTTPErrorHandler_SkipsCommittedResponse(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	_ = c.String(http.StatusOK, "done")

	NewHTTPErrorHandler(zerolog.Nop(), ErrorOptions{})(domain.ErrForbidden, c)

	if rec.Code != http.StatusOK || rec.Body.String() != "done" {
		t.Fatalf("committed response was overwritten: %d %s", rec.Code, rec.Body.String())
	}
}

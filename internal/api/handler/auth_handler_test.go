package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/shopfront/shop-api/internal/core/domain"
	"github.com/shopfront/shop-api/internal/core/ports"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, in ports.RegisterInput) (*domain.User, error)
	loginFn    func(ctx context.Context, email, password string) (string, *domain.User, error)
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, email, password)
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

func TestAuthHandler_Register_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
			if in.Email != "alice@example.com" || in.Role != domain.RoleSeller || in.FirstName != "Alice" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.User{ID: "u1", FirstName: in.FirstName, Email: in.Email, Role: in.Role, PasswordHash: "hash"}, nil
		},
	}
	handler := NewAuthHandler(stub)

	req := jsonRequest(http.MethodPost, "/user/register",
		`{"firstName":" Alice ","lastName":"Doe","email":"Alice@Example.com","password":"supersecret","role":"seller"}`)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "hash") {
		t.Fatalf("password hash leaked: %s", rec.Body.String())
	}

	var resp registerResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.User.ID != "u1" || resp.User.Role != "seller" {
		t.Fatalf("unexpected user: %+v", resp.User)
	}
}

func TestAuthHandler_Register_ValidationFailure(t *testing.T) {
	e := newTestEcho()
	handler := NewAuthHandler(&stubAuthService{
		registerFn: func(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
			t.Fatal("service must not be called")
			return nil, nil
		},
	})

	req := jsonRequest(http.MethodPost, "/user/register",
		`{"firstName":"A","lastName":"B","email":"not-an-email","password":"short","role":"admin"}`)
	c := e.NewContext(req, httptest.NewRecorder())

	err := handler.Register(c)
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected validation error, got %v", err)
	}

	fields := map[string]bool{}
	for _, v := range ve.Violations {
		fields[v.Field] = true
	}
	for _, f := range []string{"email", "password", "role"} {
		if !fields[f] {
			t.Errorf("expected violation for %s, got %+v", f, ve.Violations)
		}
	}
}

func TestAuthHandler_Register_InvalidPayload(t *testing.T) {
	e := newTestEcho()
	handler := NewAuthHandler(&stubAuthService{})

	req := jsonRequest(http.MethodPost, "/user/register", `{"firstName":`)
	c := e.NewContext(req, httptest.NewRecorder())

	err := handler.Register(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestAuthHandler_Register_PassesServiceError(t *testing.T) {
	e := newTestEcho()
	handler := NewAuthHandler(&stubAuthService{
		registerFn: func(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
			return nil, domain.ErrUserExists
		},
	})

	req := jsonRequest(http.MethodPost, "/user/register",
		`{"firstName":"A","lastName":"B","email":"a@b.com","password":"supersecret","role":"buyer"}`)
	c := e.NewContext(req, httptest.NewRecorder())

	if err := handler.Register(c); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	e := newTestEcho()
	handler := NewAuthHandler(&stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (string, *domain.User, error) {
			if email != "a@b.com" || password != "supersecret" {
				t.Fatalf("unexpected credentials: %s %s", email, password)
			}
			return "tok", &domain.User{ID: "u1", Email: email, Role: domain.RoleBuyer}, nil
		},
	})

	req := jsonRequest(http.MethodPost, "/user/login", `{"email":" A@B.com ","password":"supersecret"}`)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp loginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Token != "tok" || resp.User.Email != "a@b.com" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	e := newTestEcho()
	handler := NewAuthHandler(&stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (string, *domain.User, error) {
			return "", nil, domain.ErrInvalidCredentials
		},
	})

	req := jsonRequest(http.MethodPost, "/user/login", `{"email":"a@b.com","password":"wrong"}`)
	c := e.NewContext(req, httptest.NewRecorder())

	if err := handler.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

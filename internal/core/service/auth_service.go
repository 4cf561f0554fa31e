package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/shopfront/shop-api/internal/core/domain"
	"github.com/shopfront/shop-api/internal/core/ports"
)

// TokenIssuer signs access tokens for an account email.
type TokenIssuer interface {
	Issue(email string) (string, error)
}

// AuthService implements registration and login.
type AuthService struct {
	repo   ports.AccountRepository
	tokens TokenIssuer
	cost   int
	log    zerolog.Logger
}

func NewAuthService(repo ports.AccountRepository, tokens TokenIssuer, log zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, tokens: tokens, cost: bcrypt.DefaultCost, log: log}
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" || !in.Role.Valid() {
		return nil, domain.ErrInvalidCredentials
	}

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Email:        email,
		PasswordHash: string(hash),
		Role:         in.Role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", created.ID).Str("role", string(created.Role)).Msg("user registered")
	return created, nil
}

// Login never reveals whether the email exists: both an unknown email and a
// wrong password yield domain.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.Email)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

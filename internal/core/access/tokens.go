package access

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/shopfront/shop-api/internal/core/domain"
)

const defaultTokenTTL = 24 * time.Hour

// TokenConfig is the process-wide signing configuration. It is built once at
// startup from config.Config and handed to NewTokens.
type TokenConfig struct {
	Secret []byte
	TTL    time.Duration
	Issuer string
}

// Claims is the session claim carried by an access token.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Tokens issues and verifies HS256 access tokens.
type Tokens struct {
	cfg TokenConfig
	now func() time.Time
}

func NewTokens(cfg TokenConfig) (*Tokens, error) {
	if len(cfg.Secret) == 0 {
		return nil, errors.New("access: token secret is empty")
	}
	if cfg.TTL <= 0 {
		cfg.TTL = defaultTokenTTL
	}
	return &Tokens{cfg: cfg, now: time.Now}, nil
}

// Issue signs a token for the given account email.
func (t *Tokens) Issue(email string) (string, error) {
	now := t.now()
	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    t.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.cfg.TTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.cfg.Secret)
}

// Verify checks signature, algorithm and expiry of raw. Every failure wraps
// domain.ErrUnauthenticated.
func (t *Tokens) Verify(raw string) (*Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(t.now),
	}
	if t.cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(t.cfg.Issuer))
	}

	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return t.cfg.Secret, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnauthenticated, err)
	}
	if !tkn.Valid || claims.Email == "" {
		return nil, fmt.Errorf("%w: token carries no identity", domain.ErrUnauthenticated)
	}
	return claims, nil
}

// BearerToken extracts the token from an Authorization header value. Only the
// exact two-part form "Bearer <token>" is accepted.
func BearerToken(header string) (string, bool) {
	parts := strings.Split(header, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

package config

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"

	"github.com/shopfront/shop-api/internal/core/access"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Auth  AuthConfig
	HTTP  HTTPConfig
	Mongo MongoConfig
	Redis RedisConfig
}

type AuthConfig struct {
	JWTSecret string        `env:"JWT_SECRET"`
	JWTTTL    time.Duration `env:"JWT_TTL,    default=24h"`
	JWTIssuer string        `env:"JWT_ISSUER"`
	// LegacyRoleStatus answers role mismatches with 401 instead of 403.
	LegacyRoleStatus bool `env:"AUTH_LEGACY_ROLE_STATUS, default=false"`
}

type HTTPConfig struct {
	CORSAllowedOrigins []string      `env:"CORS_ALLOWED_ORIGINS, default=*"`
	IdempotencyTTL     time.Duration `env:"IDEMPOTENCY_TTL,      default=24h"`
	ShutdownTimeout    time.Duration `env:"SHUTDOWN_TIMEOUT,     default=10s"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=shop"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.Auth.JWTSecret) == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.Auth.JWTTTL <= 0 {
		return errors.New("JWT_TTL must be positive")
	}
	return nil
}

// IsProduction reports whether the service runs with ENV=production.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// TokenConfig builds the signing configuration handed to access.NewTokens.
func (c *Config) TokenConfig() access.TokenConfig {
	return access.TokenConfig{
		Secret: []byte(c.Auth.JWTSecret),
		TTL:    c.Auth.JWTTTL,
		Issuer: c.Auth.JWTIssuer,
	}
}

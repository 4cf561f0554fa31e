package api

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/shopfront/shop-api/docs"
	"github.com/shopfront/shop-api/internal/api/handler"
	"github.com/shopfront/shop-api/internal/api/middleware"
	"github.com/shopfront/shop-api/internal/core/access"
	"github.com/shopfront/shop-api/internal/core/domain"
	"github.com/shopfront/shop-api/internal/core/ports"
	"github.com/shopfront/shop-api/internal/core/service"
	mongorepo "github.com/shopfront/shop-api/internal/infrastructure/db/mongo"
	redisstore "github.com/shopfront/shop-api/internal/infrastructure/db/redis"
	"github.com/shopfront/shop-api/internal/pkg/config"
)

const metricsSubsystem = "shop"

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) (*echo.Echo, error) {
	idem := redisstore.NewIdempotencyStore(rdb, cfg.HTTP.IdempotencyTTL)

	e, err := newServer(serverDeps{
		accounts: mongorepo.NewAccountRepository(db),
		products: mongorepo.NewProductRepository(db),
		carts:    mongorepo.NewCartRepository(db),
		dedup:    idem,
		health: map[string]handler.Pinger{
			"mongodb": handler.PingerFunc(func(ctx context.Context) error {
				return db.Client().Ping(ctx, nil)
			}),
			"redis": idem,
		},
		cfg: cfg,
		log: log,
	})
	if err != nil {
		return nil, err
	}

	// Registered here only: promauto collectors are process-wide.
	e.Use(echoprometheus.NewMiddleware(metricsSubsystem))
	e.GET("/metrics", echoprometheus.NewHandler())

	return e, nil
}

type serverDeps struct {
	accounts ports.AccountRepository
	products ports.ProductRepository
	carts    ports.CartRepository
	dedup    service.RequestDeduper
	health   map[string]handler.Pinger
	cfg      *config.Config
	log      zerolog.Logger
}

func newServer(d serverDeps) (*echo.Echo, error) {
	tokens, err := access.NewTokens(d.cfg.TokenConfig())
	if err != nil {
		return nil, fmt.Errorf("token config: %w", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.log, ErrorOptions{LegacyRoleStatus: d.cfg.Auth.LegacyRoleStatus})

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(middleware.RequestLogger(d.log))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: d.cfg.HTTP.CORSAllowedOrigins,
		AllowHeaders: []string{
			echo.HeaderOrigin,
			echo.HeaderContentType,
			echo.HeaderAccept,
			echo.HeaderAuthorization,
			"Idempotency-Key",
		},
	}))

	// --- Dependencies ---
	authn := access.NewAuthenticator(tokens, d.accounts, d.log)
	authService := service.NewAuthService(d.accounts, tokens, d.log)
	productService := service.NewProductService(d.products, d.dedup, d.log)
	cartService := service.NewCartService(d.carts, d.products, d.dedup, d.log)

	authHandler := handler.NewAuthHandler(authService)
	productHandler := handler.NewProductHandler(productService)
	cartHandler := handler.NewCartHandler(cartService)
	healthHandler := handler.NewHealthHandler(d.health)

	anyUser := middleware.RequireUser(authn)
	seller := middleware.RequireRole(authn, domain.RoleSeller)
	buyer := middleware.RequireRole(authn, domain.RoleBuyer)

	// --- User routes ---
	user := e.Group("/user")
	user.POST("/register", authHandler.Register)
	user.POST("/login", authHandler.Login)

	// --- Product routes ---
	product := e.Group("/product")
	product.GET("/list", productHandler.List, anyUser)
	product.GET("/detail/:id", productHandler.Detail, anyUser)
	product.POST("/add", productHandler.Add, seller)
	product.DELETE("/delete/:id", productHandler.Delete, seller)
	product.PUT("/edit/:id", productHandler.Edit, seller)
	product.POST("/seller/list", productHandler.SellerList, seller)
	product.POST("/buyer/list", productHandler.BuyerList, buyer)

	// --- Cart routes (buyers only) ---
	cart := e.Group("/cart", buyer)
	cart.POST("/add/item", cartHandler.AddItem)
	cart.DELETE("/flush", cartHandler.Flush)
	cart.DELETE("/item/delete/:id", cartHandler.RemoveItem)
	cart.GET("/list", cartHandler.List)

	// --- Health probes (no auth required) ---
	e.GET("/health", healthHandler.Liveness)        // liveness  – is the process alive?
	e.GET("/health/ready", healthHandler.Readiness) // readiness – are dependencies up?

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e, nil
}

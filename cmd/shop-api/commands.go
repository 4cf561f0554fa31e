package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/shopfront/shop-api/internal/api"
	"github.com/shopfront/shop-api/internal/infrastructure/db/mongo"
	"github.com/shopfront/shop-api/internal/infrastructure/db/redis"
	"github.com/shopfront/shop-api/internal/pkg/config"
	"github.com/shopfront/shop-api/pkg/logger"
)

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the HTTP API",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "skip-indexes",
				Usage: "Do not create MongoDB indexes at startup",
			},
		},
		Action: serve,
	}
}

func ensureIndexesCommand() *cli.Command {
	return &cli.Command{
		Name:   "ensure-indexes",
		Usage:  "Create the MongoDB indexes and exit",
		Action: ensureIndexes,
	}
}

func setup(ctx context.Context) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "shop-api",
	})
	return cfg, logger.Get(), nil
}

func serve(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, log, err := setup(ctx)
	if err != nil {
		return err
	}

	client, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect")
		}
	}()

	if !c.Bool("skip-indexes") {
		if err := mongo.EnsureIndexes(ctx, db); err != nil {
			return err
		}
	}

	rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		return err
	}
	defer rdb.Close()

	e, err := api.NewRouter(db, rdb, cfg, log)
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("version", c.App.Version).Msg("http server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}

func ensureIndexes(c *cli.Context) error {
	cfg, log, err := setup(c.Context)
	if err != nil {
		return err
	}

	client, db, err := mongo.Connect(c.Context, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer client.Disconnect(context.Background())

	if err := mongo.EnsureIndexes(c.Context, db); err != nil {
		return err
	}
	log.Info().Str("database", cfg.Mongo.Database).Msg("indexes ensured")
	return nil
}

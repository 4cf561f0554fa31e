// Package main is the entry point of the shop API.
//
// @title                       Shop API
// @version                     1.0
// @description                 Marketplace backend: accounts, seller catalogue and buyer carts.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the JWT.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

// Build information, set via ldflags.
var version = "dev"

func main() {
	// A missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "shop-api",
		Usage:   "Marketplace HTTP API",
		Version: version,
		Commands: []*cli.Command{
			serveCommand(),
			ensureIndexesCommand(),
		},
		DefaultCommand: "serve",
	}
}

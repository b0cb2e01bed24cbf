// Package main is the entry point for the POS checkout service.
//
// @title           POS Checkout Service API
// @version         1.0.0
// @description     API for supermarket register sessions: barcode scanning,
//
//	cart management, UOM and batch selection, coupons, and order holds.
//
// @termsOfService  http://swagger.io/terms/
//
// @contact.name   API Support
// @contact.email  support@example.com
// @contact.url    https://github.com/guttosm/pos-checkout-service
//
// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT
//
// @host      localhost:8080
// @BasePath  /
//
// @securityDefinitions.apikey  ApiKeyAuth
// @in                          header
// @name                        X-API-Key
// @description                 API key for kiosk deployments. Required if authentication is enabled without cashier accounts.
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Cashier JWT, prefixed with "Bearer ".
//
// @tag.name        Sessions
// @tag.description Register session and cart operations
//
// @tag.name        Catalog
// @tag.description Item catalog browsing and lookups
//
// @tag.name        Auth
// @tag.description Cashier authentication endpoints
//
// @tag.name        Health
// @tag.description Health check endpoints
package main

import (
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/guttosm/pos-checkout-service/config"
	"github.com/guttosm/pos-checkout-service/internal/app"
)

func main() {
	// Missing .env files are fine; everything falls back to real env vars.
	_ = godotenv.Load()

	cfg := config.Load()

	router, cleanup, err := app.InitializeApp(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize application")
	}
	defer cleanup()

	server := app.NewServer(router, cfg.Server.Port)
	if err := server.Run(); err != nil {
		log.Fatal().Err(err).Msg("Server error")
	}
}

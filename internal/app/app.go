// Package app provides application initialization and dependency injection.
package app

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/pos-checkout-service/config"
	"github.com/guttosm/pos-checkout-service/internal/http"
)

// InitializeApp creates and wires all application dependencies. The
// returned cleanup stops background services and closes the database;
// call it on shutdown.
func InitializeApp(cfg config.Config) (*gin.Engine, func(), error) {
	// Initialize logger first (needed by other components)
	InitializeLogger()

	dbComponents, err := InitializeDatabase(cfg.Database)
	if err != nil {
		return nil, nil, err
	}

	serviceComponents, err := InitializeServices(cfg, dbComponents)
	if err != nil {
		dbComponents.Close(context.Background())
		return nil, nil, err
	}

	routerComponents := InitializeRouter(serviceComponents, dbComponents, cfg)

	engine := http.NewRouter(
		routerComponents.Handler,
		routerComponents.CatalogHandler,
		routerComponents.HealthHandler,
		routerComponents.Config,
	)

	cleanup := func() {
		serviceComponents.Shutdown()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		dbComponents.Close(ctx)
	}

	return engine, cleanup, nil
}

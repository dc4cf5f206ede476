package app

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/intradaypulse/config"
	"github.com/guttosm/intradaypulse/internal/api"
	"github.com/guttosm/intradaypulse/internal/logger"
)

// InitializeApp sets up all application dependencies and returns
// a fully configured Gin router, a cleanup function for graceful shutdown,
// and any error encountered during initialization.
//
// Responsibilities:
//   - Builds the Alpha Vantage client and the intraday service.
//   - Creates the HTTP handler layer to handle requests.
//   - Configures the Gin router with all API routes.
//   - Registers health and readiness probes (ready only with an API key).
//   - Provides a cleanup function that releases pooled upstream connections.
//
// Returns:
//   - *gin.Engine: the configured Gin HTTP router.
//   - func(): cleanup function to be executed on shutdown.
//   - error: any initialization error that occurred.
func InitializeApp() (*gin.Engine, func(), error) {
	// Load global configuration
	cfg := config.AppConfig

	svc, client, err := NewIntradayService(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize intraday service: %w", err)
	}

	if cfg.AlphaVantage.APIKey == "" {
		logger.L().Warn().Msg("ALPHAVANTAGE_API_KEY is not set; intraday requests will be rejected until it is configured")
	}

	// Initialize HTTP handler layer (service to HTTP mapping)
	handler := api.NewHandler(svc)

	// Setup Gin router with routes
	router := api.NewRouter(handler, api.RouterOptions{
		RequestTimeout:     cfg.Server.RequestTimeout,
		RateLimitPerMinute: cfg.Server.RateLimitPerMinute,
	})

	// Register health and readiness probes
	healthHandler := api.NewHealthHandler(credentialCheck(cfg))
	healthHandler.Register(router)

	// Cleanup resources on shutdown
	cleanup := func() {
		client.CloseIdleConnections()
	}

	return router, cleanup, nil
}

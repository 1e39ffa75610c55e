// Package handler provides initialization logic for the inbound HTTP
// transport adapter used by the application. The package exposes a Handlers
// struct bundling the transport handler so it can be started uniformly by
// the application's main entrypoint.
package handler

import (
	"github.com/filevault/filevault/internal/config"
	"github.com/filevault/filevault/internal/handler/http"
	"github.com/filevault/filevault/internal/logger"
	"github.com/filevault/filevault/internal/service"
)

// Handlers groups all initialized inbound transport handlers. The main
// application uses this structure to start the appropriate servers based on
// configuration.
type Handlers struct {
	// HTTP contains the initialized HTTP handler if HTTP is enabled in the
	// configuration. If HTTP is disabled, this field remains nil.
	HTTP *http.Handler
}

// NewHandlers constructs the Handlers bundle from the provided service layer,
// server configuration, and logger.
//
// Behavior:
//   - If cfg.HTTPAddress is non-empty, an HTTP handler is created.
//   - If it is empty, the function returns errNoHandlersAreCreated.
//
// This ensures the application fails fast if misconfigured such that no
// inbound transport is enabled.
func NewHandlers(services *service.Services, cfg config.Server, appCfg config.App, rateLimitCfg config.RateLimit, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	handlers := &Handlers{}

	if cfg.HTTPAddress != "" {
		handlers.HTTP = http.NewHandler(services, appCfg, rateLimitCfg, logger)
	}

	if handlers.HTTP == nil {
		return nil, errNoHandlersAreCreated
	}

	return handlers, nil
}

package http

import (
	"github.com/filevault/filevault/internal/abuselimiter"
	"github.com/filevault/filevault/internal/config"
	"github.com/filevault/filevault/internal/logger"
	"github.com/filevault/filevault/internal/service"
	"github.com/filevault/filevault/internal/validators"
)

// Handler is the root HTTP handler that wires together all route groups
// and middleware chains for the REST API.
//
// It holds references to the application's service layer and a structured
// logger so that every sub-handler and middleware can access business logic
// and emit consistent, context-enriched log entries.
//
// Handler is constructed once at application startup via [NewHandler] and
// its routes are registered by the setup methods defined in routes.go.
// It is not safe to copy a Handler after construction.
type Handler struct {
	// services provides access to all application business-logic operations.
	// Sub-handlers delegate domain work (authentication, file management,
	// sharing, etc.) exclusively through this interface.
	services *service.Services

	// logger is the structured logger used by the handler and all middleware
	// for request-scoped and diagnostic log output.
	logger *logger.Logger

	// cfg holds the application-level settings needed by the auth and CSRF
	// middleware (JWT secret, cookie attributes, CORS allow-list, ...).
	cfg config.App

	// validator checks request payloads before they reach the service layer.
	validator validators.Validator

	// shareLimiter enforces the public-share password attempt window and
	// failure backoff, keyed by (client IP, share token).
	shareLimiter *abuselimiter.Limiter
}

// NewHandler constructs a [Handler] with the provided service container,
// application config, and logger, and returns a pointer to the initialised
// instance.
//
// The logger is used immediately to emit a debug-level startup message and
// is stored for use by all route handlers and middleware registered on this
// Handler.
//
// Parameters:
//   - services: the application service layer; must not be nil.
//   - cfg: application-level settings (JWT secret, cookie domain, CORS allow-list).
//   - rateLimitCfg: the public-share abuse limiter's window and cap settings.
//   - logger: structured logger for request tracing and diagnostics; must not be nil.
func NewHandler(services *service.Services, cfg config.App, rateLimitCfg config.RateLimit, logger *logger.Logger) *Handler {
	logger.Debug().Msg("http handler created")
	limiter := abuselimiter.New(rateLimitCfg.TTL, rateLimitCfg.Max)
	go limiter.Run()

	return &Handler{
		services:     services,
		logger:       logger,
		cfg:          cfg,
		validator:    validators.NewRequestValidator(),
		shareLimiter: limiter,
	}
}

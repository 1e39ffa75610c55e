// Package http implements the HTTP transport layer of the application.
// It provides middleware, route handlers, and request/response utilities
// for the REST API. Authentication, CSRF, logging, tracing, and
// compression concerns are all handled at this layer before
// requests are forwarded to the service layer.
package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/filevault/filevault/internal/logger"
	"github.com/filevault/filevault/internal/service"
	"github.com/filevault/filevault/internal/utils"
)

// auth is an HTTP middleware that enforces cookie-based session
// authentication.
//
// It reads the signed JWT from the [sessionCookieName] HttpOnly cookie,
// validates it via [service.AuthService.ParseToken], and — on success —
// stores the authenticated user's ID in the request context under
// [utils.UserIDCtxKey] before delegating to the next handler.
//
// The middleware rejects requests with HTTP 401 Unauthorized when the
// cookie is absent, or when the token it carries is expired or otherwise
// invalid. All rejection events are logged using the context-scoped logger
// obtained via [logger.FromRequest].
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		cookie, err := r.Cookie(sessionCookieName)
		if err != nil || cookie.Value == "" {
			log.Debug().Msg("missing session cookie")
			writeError(w, r, service.ErrTokenIsExpiredOrInvalid)
			return
		}

		ctx := r.Context()
		token, err := h.services.AuthService.ParseToken(ctx, cookie.Value)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrTokenIsExpiredOrInvalid):
				log.Debug().Err(err).Msg("session token expired or invalid")
			default:
				log.Err(err).Msg("error occurred during parsing session token")
			}
			writeError(w, r, service.ErrTokenIsExpiredOrInvalid)
			return
		}

		// Store the authenticated user's ID in the context so that downstream
		// handlers can retrieve it without re-parsing the token.
		ctx = context.WithValue(ctx, utils.UserIDCtxKey, token.UserID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

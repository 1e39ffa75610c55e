// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/filevault/filevault/internal/service"
	"github.com/filevault/filevault/internal/utils"
	"github.com/filevault/filevault/models"
)

// requireRole returns a middleware that rejects callers whose role does not
// meet or outrank minRole in the owner > admin > user hierarchy. It must be
// chained after [Handler.auth], which populates the user ID in context.
func (h *Handler) requireRole(minRole models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := utils.GetUserIDFromContext(r.Context())
			if !ok {
				writeError(w, r, service.ErrUnauthorized)
				return
			}

			user, err := h.services.AuthService.GetUser(r.Context(), userID)
			if err != nil {
				writeError(w, r, err)
				return
			}

			if user.Role != minRole && !user.Role.Outranks(minRole) {
				writeError(w, r, service.ErrUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(r.Context()))
		})
	}
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/filevault/filevault/internal/utils"
	"github.com/filevault/filevault/models"
)

type createInvitationRequest struct {
	Email string      `json:"email,omitempty"`
	Role  models.Role `json:"role"`
}

// createInvitation handles POST /invites.
func (h *Handler) createInvitation(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	var req createInvitationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, r, http.StatusBadRequest, map[string]string{"error": "invalid data provided"})
		return
	}
	if req.Role == "" {
		req.Role = models.RoleUser
	}

	invitation, err := h.services.InvitationService.CreateInvitation(r.Context(), userID, req.Email, req.Role)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, invitation)
}

// listInvitations handles GET /invites.
func (h *Handler) listInvitations(w http.ResponseWriter, r *http.Request) {
	invitations, err := h.services.InvitationService.ListInvitations(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, invitations)
}

// revokeInvitation handles DELETE /invites/{id}.
func (h *Handler) revokeInvitation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt64(w, r, "id")
	if !ok {
		return
	}

	if err := h.services.InvitationService.RevokeInvitation(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// validateInvitation handles GET /invites/validate/{token}, letting the
// registration form check a token before the user fills it in.
func (h *Handler) validateInvitation(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	invitation, valid, err := h.services.InvitationService.ValidateInvitation(r.Context(), token)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if !valid {
		writeJSON(w, r, http.StatusOK, map[string]bool{"valid": false})
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]any{
		"valid": true,
		"email": invitation.Email,
		"role":  invitation.Role,
	})
}

type acceptInvitationRequest struct {
	Token    string `json:"token"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// acceptInvitation handles POST /invites/accept, registering the invited
// user in one step.
func (h *Handler) acceptInvitation(w http.ResponseWriter, r *http.Request) {
	var req acceptInvitationRequest
	if err := decodeJSON(r, &req); err != nil || req.Token == "" || req.Email == "" || req.Password == "" {
		writeJSON(w, r, http.StatusBadRequest, map[string]string{"error": "invalid data provided"})
		return
	}

	user, err := h.services.AuthService.RegisterUser(r.Context(), req.Email, req.Password, req.Token)
	if err != nil {
		writeError(w, r, err)
		return
	}

	h.issueSession(w, r, user)
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/filevault/filevault/internal/logger"
	"github.com/filevault/filevault/internal/utils"
	"github.com/filevault/filevault/internal/validators"
	"github.com/filevault/filevault/models"
)

type registerRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	InviteToken string `json:"invite_token,omitempty"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

type profileUpdateRequest struct {
	DisplayName string `json:"display_name"`
	AvatarURL   string `json:"avatar_url,omitempty"`
}

// userResponse strips sensitive fields before a user account is rendered to
// the client that owns it.
func userResponse(u models.User) map[string]any {
	return map[string]any{
		"id":           u.UserID,
		"email":        u.Email,
		"display_name": u.DisplayName,
		"avatar_url":   u.AvatarURL,
		"role":         u.Role,
		"quota_bytes":  u.QuotaBytes,
		"used_bytes":   u.UsedBytes,
		"created_at":   u.CreatedAt,
	}
}

// register handles POST /auth/register.
func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, r, http.StatusBadRequest, map[string]string{"error": "invalid data provided"})
		return
	}

	ctx := r.Context()
	if err := h.validator.Validate(ctx, validators.CredentialsRequest{Email: req.Email, Password: req.Password}); err != nil {
		writeJSON(w, r, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	user, err := h.services.AuthService.RegisterUser(ctx, req.Email, req.Password, req.InviteToken)
	if err != nil {
		writeError(w, r, err)
		return
	}

	h.issueSession(w, r, user)
}

// login handles POST /auth/login.
func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil || req.Email == "" || req.Password == "" {
		writeJSON(w, r, http.StatusBadRequest, map[string]string{"error": "invalid data provided"})
		return
	}

	ctx := r.Context()
	user, err := h.services.AuthService.Login(ctx, req.Email, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	h.issueSession(w, r, user)
}

// issueSession mints a session JWT for user, sets the jid cookie, and
// writes the account as the response body.
func (h *Handler) issueSession(w http.ResponseWriter, r *http.Request, user models.User) {
	ctx := r.Context()
	token, err := h.services.AuthService.CreateToken(ctx, user)
	if err != nil {
		writeError(w, r, err)
		return
	}

	h.setSessionCookie(w, token.SignedString, int(h.cfg.TokenDuration.Seconds()))
	writeJSON(w, r, http.StatusOK, userResponse(user))
}

// logout handles POST /auth/logout. It clears the jid cookie regardless of
// whether one was present.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	h.clearSessionCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

// me handles GET /auth/me, returning the authenticated account.
func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, r, http.StatusUnauthorized, map[string]string{"error": "not authenticated"})
		return
	}

	user, err := h.services.AuthService.GetUser(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, userResponse(user))
}

// updateProfile handles PATCH /auth/profile.
func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, r, http.StatusUnauthorized, map[string]string{"error": "not authenticated"})
		return
	}

	var req profileUpdateRequest
	if err := decodeJSON(r, &req); err != nil || req.DisplayName == "" {
		writeJSON(w, r, http.StatusBadRequest, map[string]string{"error": "invalid data provided"})
		return
	}

	user, err := h.services.AuthService.UpdateProfile(r.Context(), userID, req.DisplayName, req.AvatarURL)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, userResponse(user))
}

// changePassword handles POST /auth/change-password.
func (h *Handler) changePassword(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, r, http.StatusUnauthorized, map[string]string{"error": "not authenticated"})
		return
	}

	var req changePasswordRequest
	if err := decodeJSON(r, &req); err != nil || req.NewPassword == "" {
		writeJSON(w, r, http.StatusBadRequest, map[string]string{"error": "invalid data provided"})
		return
	}

	if err := h.services.AuthService.ChangePassword(r.Context(), userID, req.OldPassword, req.NewPassword); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

// forgotPassword handles POST /auth/forgot-password.
//
// The response is intentionally identical whether or not the email exists,
// to avoid leaking account existence to an unauthenticated caller.
func (h *Handler) forgotPassword(w http.ResponseWriter, r *http.Request) {
	var req forgotPasswordRequest
	if err := decodeJSON(r, &req); err != nil || req.Email == "" {
		writeJSON(w, r, http.StatusBadRequest, map[string]string{"error": "invalid data provided"})
		return
	}

	if err := h.services.AuthService.RequestPasswordReset(r.Context(), req.Email); err != nil {
		logger.FromRequest(r).Err(err).Msg("error requesting password reset")
	}

	w.WriteHeader(http.StatusAccepted)
}

type resetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

// resetPassword handles POST /auth/reset-password. Reset tokens are minted
// and emailed out of band by forgotPassword; this endpoint only consumes
// one.
func (h *Handler) resetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if err := decodeJSON(r, &req); err != nil || req.Token == "" || req.NewPassword == "" {
		writeJSON(w, r, http.StatusBadRequest, map[string]string{"error": "invalid data provided"})
		return
	}

	if err := h.services.AuthService.ResetPassword(r.Context(), req.Token, req.NewPassword); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// setupStatus handles GET /auth/setup-status, reporting whether the
// instance still needs its first (owner) account created.
func (h *Handler) setupStatus(w http.ResponseWriter, r *http.Request) {
	needsSetup, err := h.services.AuthService.NeedsSetup(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]bool{
		"needs_setup":         needsSetup,
		"public_registration": h.cfg.PublicRegistration,
	})
}

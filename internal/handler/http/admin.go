// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/filevault/filevault/internal/config"
	"github.com/filevault/filevault/internal/utils"
	"github.com/filevault/filevault/models"
)

// listUsers handles GET /admin/users and GET /storage/users.
func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.services.AuthService.ListUsers(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	responses := make([]map[string]any, 0, len(users))
	for _, u := range users {
		responses = append(responses, userResponse(u))
	}

	writeJSON(w, r, http.StatusOK, responses)
}

// getStorageUser handles GET /storage/users/{id}, returning a single
// account's usage and quota figures.
func (h *Handler) getStorageUser(w http.ResponseWriter, r *http.Request) {
	targetID, ok := pathInt64(w, r, "id")
	if !ok {
		return
	}

	user, err := h.services.AuthService.GetUser(r.Context(), targetID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, userResponse(user))
}

type updateUserRoleRequest struct {
	Role models.Role `json:"role"`
}

// updateUserRole handles PUT /admin/users/{id}.
func (h *Handler) updateUserRole(w http.ResponseWriter, r *http.Request) {
	targetID, ok := pathInt64(w, r, "id")
	if !ok {
		return
	}

	var req updateUserRoleRequest
	if err := decodeJSON(r, &req); err != nil || req.Role == "" {
		writeJSON(w, r, http.StatusBadRequest, map[string]string{"error": "invalid data provided"})
		return
	}

	updated, err := h.services.AuthService.UpdateUserRole(r.Context(), targetID, req.Role)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, userResponse(updated))
}

// deleteUser handles DELETE /admin/users/{id}.
func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	targetID, ok := pathInt64(w, r, "id")
	if !ok {
		return
	}

	if err := h.services.AuthService.DeleteUser(r.Context(), targetID); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type updateQuotaRequest struct {
	QuotaBytes int64 `json:"quota_bytes"`
}

// updateUserQuota handles PATCH /storage/users/{id}/quota.
func (h *Handler) updateUserQuota(w http.ResponseWriter, r *http.Request) {
	targetID, ok := pathInt64(w, r, "id")
	if !ok {
		return
	}

	var req updateQuotaRequest
	if err := decodeJSON(r, &req); err != nil || req.QuotaBytes < 0 {
		writeJSON(w, r, http.StatusBadRequest, map[string]string{"error": "invalid data provided"})
		return
	}

	updated, err := h.services.AuthService.SetUserQuota(r.Context(), targetID, req.QuotaBytes)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, userResponse(updated))
}

// storageOverview handles GET /storage/overview, returning the aggregate
// free-space figure for the backing blob volume.
func (h *Handler) storageOverview(w http.ResponseWriter, r *http.Request) {
	free, err := h.services.Blobs.FreeBytes()
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]uint64{"free_bytes": free})
}

// me-scoped settings handlers below operate on the admin-configurable
// key/value bag.

type settingRequest struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// getSetting handles GET /settings?key=....
func (h *Handler) getSetting(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		writeJSON(w, r, http.StatusBadRequest, map[string]string{"error": "key is required"})
		return
	}

	value := h.services.SettingService.GetSetting(r.Context(), key, "")
	writeJSON(w, r, http.StatusOK, map[string]string{"key": key, "value": value})
}

// listSettings handles GET /settings/all.
func (h *Handler) listSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.services.SettingService.ListSettings(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, settings)
}

// putSetting handles PUT /settings.
func (h *Handler) putSetting(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	var req settingRequest
	if err := decodeJSON(r, &req); err != nil || req.Key == "" {
		writeJSON(w, r, http.StatusBadRequest, map[string]string{"error": "invalid data provided"})
		return
	}

	if err := h.services.SettingService.SetSetting(r.Context(), req.Key, req.Value, userID); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type smtpSettingsResponse struct {
	Enabled  bool   `json:"enabled"`
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Username string `json:"username"`
	From     string `json:"from"`
}

// getSMTPSettings handles GET /settings/smtp. The configured password is
// never echoed back to the client.
func (h *Handler) getSMTPSettings(w http.ResponseWriter, r *http.Request) {
	cfg := h.services.SettingService.GetSMTPSettings(r.Context())
	writeJSON(w, r, http.StatusOK, smtpSettingsResponse{
		Enabled:  cfg.Enabled,
		Host:     cfg.Host,
		Port:     cfg.Port,
		Username: cfg.Username,
		From:     cfg.From,
	})
}

type putSMTPSettingsRequest struct {
	Enabled  bool   `json:"enabled"`
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Username string `json:"username"`
	Password string `json:"password"`
	From     string `json:"from"`
}

// putSMTPSettings handles PUT /settings/smtp, persisting the new SMTP
// configuration and reconfiguring the live mail transport to use it.
func (h *Handler) putSMTPSettings(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	var req putSMTPSettingsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, r, http.StatusBadRequest, map[string]string{"error": "invalid data provided"})
		return
	}

	cfg := config.Mail{
		Enabled:  req.Enabled,
		Host:     req.Host,
		Port:     req.Port,
		Username: req.Username,
		Password: req.Password,
		From:     req.From,
	}

	if err := h.services.SettingService.SetSMTPSettings(r.Context(), cfg, userID); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type testSMTPSettingsRequest struct {
	To string `json:"to"`
}

// testSMTPSettings handles POST /settings/smtp/test, sending a test email
// through the currently configured transport.
func (h *Handler) testSMTPSettings(w http.ResponseWriter, r *http.Request) {
	var req testSMTPSettingsRequest
	if err := decodeJSON(r, &req); err != nil || req.To == "" {
		writeJSON(w, r, http.StatusBadRequest, map[string]string{"error": "invalid data provided"})
		return
	}

	if err := h.services.SettingService.TestSMTPSettings(r.Context(), req.To); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

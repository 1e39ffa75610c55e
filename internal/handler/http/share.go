// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/filevault/filevault/internal/abuselimiter"
	"github.com/filevault/filevault/internal/utils"
	"github.com/filevault/filevault/internal/validators"
	"github.com/filevault/filevault/models"
)

// errThrottled signals that resolveThrottled already wrote a 429 response
// and the caller should stop without writing another.
var errThrottled = errors.New("public share request throttled")

type createShareRequest struct {
	Kind           string     `json:"kind"` // "private" or "public"
	RecipientEmail string     `json:"recipient_email,omitempty"`
	Password       string     `json:"password,omitempty"`
	ExpiresAt      *time.Time `json:"expires_at,omitempty"`
}

// createShare handles POST /files/{id}/share.
func (h *Handler) createShare(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())
	fileID, ok := pathInt64(w, r, "id")
	if !ok {
		return
	}

	var req createShareRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, r, http.StatusBadRequest, map[string]string{"error": "invalid data provided"})
		return
	}

	if err := h.validator.Validate(r.Context(), validators.ShareRequest{Kind: req.Kind, RecipientEmail: req.RecipientEmail}); err != nil {
		writeJSON(w, r, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	switch req.Kind {
	case "private":
		share, err := h.services.ShareService.CreatePrivateShare(r.Context(), userID, fileID, req.RecipientEmail)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusCreated, share)
	case "public":
		share, err := h.services.ShareService.CreatePublicShare(r.Context(), userID, fileID, req.Password, req.ExpiresAt)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusCreated, share)
	}
}

// listSharesForFile handles GET /files/{id}/shares.
func (h *Handler) listSharesForFile(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())
	fileID, ok := pathInt64(w, r, "id")
	if !ok {
		return
	}

	shares, err := h.services.ShareService.ListSharesForFile(r.Context(), userID, fileID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, shares)
}

// listSharesReceived handles GET /files/shared.
func (h *Handler) listSharesReceived(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	shares, err := h.services.ShareService.ListSharesReceived(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, shares)
}

// revokeShare handles DELETE /files/shares/{shareId}.
func (h *Handler) revokeShare(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())
	shareID, ok := pathInt64(w, r, "shareId")
	if !ok {
		return
	}

	if err := h.services.ShareService.RevokeShare(r.Context(), userID, shareID); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// listPublicShares handles GET /files/public-shares.
func (h *Handler) listPublicShares(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	shares, err := h.services.ShareService.ListPublicShares(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, shares)
}

// listPrivateShares handles GET /files/private-shares.
func (h *Handler) listPrivateShares(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	shares, err := h.services.ShareService.ListPrivateShares(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, shares)
}

type updatePublicShareSettingsRequest struct {
	Password      *string    `json:"password,omitempty"`
	ClearPassword bool       `json:"clear_password,omitempty"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty"`
	ClearExpiry   bool       `json:"clear_expiry,omitempty"`
}

// updateSharePublicSettings handles PATCH /files/shares/{shareId}/public-settings.
func (h *Handler) updateSharePublicSettings(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())
	shareID, ok := pathInt64(w, r, "shareId")
	if !ok {
		return
	}

	var req updatePublicShareSettingsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, r, http.StatusBadRequest, map[string]string{"error": "invalid data provided"})
		return
	}

	share, err := h.services.ShareService.UpdatePublicShareSettings(r.Context(), userID, shareID, req.Password, req.ClearPassword, req.ExpiresAt, req.ClearExpiry)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, share)
}

// downloadPrivateShare handles GET /files/shares/{shareId}/download, letting
// the recipient of a private share stream the shared file's content without
// needing direct ownership of it.
func (h *Handler) downloadPrivateShare(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())
	shareID, ok := pathInt64(w, r, "shareId")
	if !ok {
		return
	}

	meta, err := h.services.ShareService.GetPrivateShareFile(r.Context(), userID, shareID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", meta.MimeType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+meta.Name+`"`)
	if _, err := h.services.ShareService.DownloadPrivateShare(r.Context(), userID, shareID, w); err != nil {
		writeError(w, r, err)
	}
}

// resolvePublicShare handles GET /public/share/{token}, returning the
// share's metadata without streaming content.
func (h *Handler) resolvePublicShare(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	password := r.Header.Get("X-Share-Password")

	share, file, err := h.resolveThrottled(w, r, token, password)
	if err != nil {
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]any{"share": share, "file": file})
}

// downloadPublicShare handles GET /public/share/{token}/download.
func (h *Handler) downloadPublicShare(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	password := r.Header.Get("X-Share-Password")

	share, file, err := h.resolveThrottled(w, r, token, password)
	if err != nil {
		return
	}

	if file.IsFolder {
		w.Header().Set("Content-Type", "application/zip")
		w.Header().Set("Content-Disposition", `attachment; filename="`+file.Name+`.zip"`)
		if err := h.services.FileService.DownloadFolderArchive(r.Context(), share.OwnerID, file.ID, w); err != nil {
			writeError(w, r, err)
		}
		return
	}

	w.Header().Set("Content-Type", file.MimeType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+file.Name+`"`)
	if _, err := h.services.FileService.DownloadFile(r.Context(), share.OwnerID, file.ID, w); err != nil {
		writeError(w, r, err)
	}
}

// resolveThrottled wraps ShareService.ResolvePublicShare with the abuse
// limiter when the caller presents a password: the attempt is admitted
// against the (ip, token) window and backoff before verification, and the
// outcome is recorded against the same key afterward. Requests that omit a
// password (probing a share's existence/metadata) are not throttled here.
//
// On any rejection — by the limiter or by ResolvePublicShare itself — the
// response has already been written and the returned error is non-nil,
// signalling the caller to stop.
func (h *Handler) resolveThrottled(w http.ResponseWriter, r *http.Request, token, password string) (models.Share, models.File, error) {
	if password == "" {
		share, file, err := h.services.ShareService.ResolvePublicShare(r.Context(), token, password)
		if err != nil {
			writeError(w, r, err)
		}
		return share, file, err
	}

	ip := utils.ClientIP(r)
	if allowed, wait := h.shareLimiter.Attempt(ip, token); !allowed {
		writeJSON(w, r, http.StatusTooManyRequests, map[string]string{"error": abuselimiter.ErrTooManyAttempts(wait).Error()})
		return models.Share{}, models.File{}, errThrottled
	}

	share, file, err := h.services.ShareService.ResolvePublicShare(r.Context(), token, password)
	if rejected, wait := h.shareLimiter.RecordResult(ip, token, err == nil); rejected {
		writeJSON(w, r, http.StatusTooManyRequests, map[string]string{"error": abuselimiter.ErrBlocked(wait).Error()})
		return models.Share{}, models.File{}, errThrottled
	}

	if err != nil {
		writeError(w, r, err)
		return models.Share{}, models.File{}, err
	}

	return share, file, nil
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/filevault/filevault/internal/service"
	"github.com/filevault/filevault/internal/utils"
	"github.com/filevault/filevault/internal/validators"
	"github.com/filevault/filevault/models"
)

const maxUploadBytes = 1 << 30 // 1 GiB

// pathInt64 parses a chi URL parameter as an int64, writing a 400 response
// and returning ok=false if it is missing or malformed.
func pathInt64(w http.ResponseWriter, r *http.Request, param string) (int64, bool) {
	v, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
	if err != nil {
		writeJSON(w, r, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return 0, false
	}
	return v, true
}

// queryParentID parses the optional "parent_id" query parameter.
func queryParentID(r *http.Request) *int64 {
	raw := r.URL.Query().Get("parent_id")
	if raw == "" {
		return nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil
	}
	return &id
}

type createFileRequest struct {
	Name               string `json:"name"`
	ParentID           *int64 `json:"parent_id,omitempty"`
	IsFolder           bool   `json:"is_folder"`
	MimeType           string `json:"mime_type,omitempty"`
	ContentHash        string `json:"content_hash,omitempty"`
	SkipDuplicateCheck bool   `json:"skip_duplicate_check,omitempty"`
}

// listFiles handles GET /files.
func (h *Handler) listFiles(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	files, err := h.services.FileService.ListFolder(r.Context(), models.FileListRequest{
		UserID:   userID,
		ParentID: queryParentID(r),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, files)
}

// listTrash handles GET /files/trash.
func (h *Handler) listTrash(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	files, err := h.services.FileService.ListTrash(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, files)
}

// createFile handles POST /files. Folders are created complete in one step.
// Regular files are created as a pending-upload row awaiting a follow-up
// PUT /files/{id}/upload; if content_hash names existing, dedup-eligible
// content and skip_duplicate_check is false, a 409 is returned instead,
// carrying up to 10 existing matches.
func (h *Handler) createFile(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	var req createFileRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, r, http.StatusBadRequest, map[string]string{"error": "invalid data provided"})
		return
	}

	if err := h.validator.Validate(r.Context(), validators.NameRequest{Name: req.Name, ParentID: req.ParentID, MimeType: req.MimeType}, validators.FieldName, validators.FieldParentID, validators.FieldMimeType); err != nil {
		writeJSON(w, r, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	file, err := h.services.FileService.CreateFile(r.Context(), userID, req.ParentID, req.Name, req.MimeType, req.IsFolder, req.ContentHash, req.SkipDuplicateCheck)
	if err != nil {
		var dup *service.DuplicateContentError
		if errors.As(err, &dup) {
			writeJSON(w, r, http.StatusConflict, map[string]any{"error": "duplicate content detected", "matches": dup.Matches})
			return
		}
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, file)
}

// uploadContent handles PUT /files/{id}/upload, a multipart/form-data
// upload with a single "file" part that fills in a pending-upload row's
// blob and crypto material.
func (h *Handler) uploadContent(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())
	fileID, ok := pathInt64(w, r, "id")
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeJSON(w, r, http.StatusRequestEntityTooLarge, map[string]string{"error": "upload exceeds the maximum allowed size"})
		return
	}

	part, _, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, r, http.StatusBadRequest, map[string]string{"error": "missing file part"})
		return
	}
	defer part.Close()

	file, err := h.services.FileService.UploadContent(r.Context(), userID, fileID, part)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, file)
}

// downloadFile handles GET /files/{id}/download, streaming a regular
// file's decrypted content or a folder as a ZIP archive.
func (h *Handler) downloadFile(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())
	fileID, ok := pathInt64(w, r, "id")
	if !ok {
		return
	}

	meta, err := h.services.FileService.GetFile(r.Context(), userID, fileID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if meta.IsFolder {
		w.Header().Set("Content-Type", "application/zip")
		w.Header().Set("Content-Disposition", `attachment; filename="`+meta.Name+`.zip"`)
		if err := h.services.FileService.DownloadFolderArchive(r.Context(), userID, fileID, w); err != nil {
			writeError(w, r, err)
		}
		return
	}

	w.Header().Set("Content-Type", meta.MimeType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+meta.Name+`"`)
	if _, err := h.services.FileService.DownloadFile(r.Context(), userID, fileID, w); err != nil {
		writeError(w, r, err)
	}
}

type renameRequest struct {
	Name string `json:"name"`
}

// renameFile handles PATCH /files/{id}.
func (h *Handler) renameFile(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())
	fileID, ok := pathInt64(w, r, "id")
	if !ok {
		return
	}

	var req renameRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, r, http.StatusBadRequest, map[string]string{"error": "invalid data provided"})
		return
	}

	if err := h.validator.Validate(r.Context(), validators.NameRequest{Name: req.Name}, validators.FieldName); err != nil {
		writeJSON(w, r, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	file, err := h.services.FileService.RenameFile(r.Context(), userID, fileID, req.Name)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, file)
}

type moveRequest struct {
	ParentID *int64 `json:"parent_id"`
}

// moveFile handles PATCH /files/{id}/move.
func (h *Handler) moveFile(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())
	fileID, ok := pathInt64(w, r, "id")
	if !ok {
		return
	}

	var req moveRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, r, http.StatusBadRequest, map[string]string{"error": "invalid data provided"})
		return
	}

	file, err := h.services.FileService.MoveFile(r.Context(), userID, fileID, req.ParentID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, file)
}

// trashFile handles DELETE /files/{id}.
func (h *Handler) trashFile(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())
	fileID, ok := pathInt64(w, r, "id")
	if !ok {
		return
	}

	if err := h.services.FileService.TrashFile(r.Context(), userID, fileID); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// restoreFile handles POST /files/{id}/restore.
func (h *Handler) restoreFile(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())
	fileID, ok := pathInt64(w, r, "id")
	if !ok {
		return
	}

	if err := h.services.FileService.RestoreFile(r.Context(), userID, fileID); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// deleteFilePermanently handles DELETE /files/{id}/permanent.
func (h *Handler) deleteFilePermanently(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())
	fileID, ok := pathInt64(w, r, "id")
	if !ok {
		return
	}

	if err := h.services.FileService.DeleteFilePermanently(r.Context(), userID, fileID); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type bulkDeleteRequest struct {
	IDs []int64 `json:"ids"`
}

// bulkDeleteFiles handles DELETE /files/bulk.
func (h *Handler) bulkDeleteFiles(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	var req bulkDeleteRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, r, http.StatusBadRequest, map[string]string{"error": "invalid data provided"})
		return
	}

	if err := h.validator.Validate(r.Context(), validators.IDsRequest{IDs: req.IDs}); err != nil {
		writeJSON(w, r, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	if err := h.services.FileService.BatchDelete(r.Context(), models.BatchDeleteRequest{UserID: userID, IDs: req.IDs}); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// emptyTrash handles DELETE /files/trash/empty: permanently deletes every
// entry currently in the caller's trash.
func (h *Handler) emptyTrash(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	trashed, err := h.services.FileService.ListTrash(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var firstErr error
	for _, f := range trashed {
		if err := h.services.FileService.DeleteFilePermanently(r.Context(), userID, f.ID); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if firstErr != nil {
		writeError(w, r, firstErr)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type checkDuplicateRequest struct {
	ContentHash string `json:"content_hash"`
}

// checkDuplicate handles POST /files/check-duplicate, letting a client
// probe whether content it is about to upload is already stored, so it can
// skip re-uploading the bytes.
func (h *Handler) checkDuplicate(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	var req checkDuplicateRequest
	if err := decodeJSON(r, &req); err != nil || req.ContentHash == "" {
		writeJSON(w, r, http.StatusBadRequest, map[string]string{"error": "invalid data provided"})
		return
	}

	existing, found, err := h.services.FileService.FindDuplicate(r.Context(), userID, req.ContentHash)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if !found {
		writeJSON(w, r, http.StatusOK, map[string]bool{"duplicate": false})
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]any{"duplicate": true, "file": existing})
}

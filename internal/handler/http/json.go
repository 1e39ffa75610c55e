// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"net/http"

	"github.com/filevault/filevault/internal/logger"
)

// writeJSON encodes v as JSON and writes it to w with the given status code.
// Encoding failures are logged but cannot be reported to the client since
// the status line may already have been flushed.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.FromRequest(r).Err(err).Msg("error encoding JSON response")
	}
}

// writeError writes a JSON error envelope derived from err via
// [responseFromError].
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	resp := responseFromError(err)
	writeJSON(w, r, resp.status, map[string]string{"error": resp.message})
}

// decodeJSON decodes the request body into dst, rejecting unknown fields.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

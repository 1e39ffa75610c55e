// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "net/http"

// sessionCookieName is the name of the HttpOnly cookie carrying the signed
// session JWT.
const sessionCookieName = "jid"

// setSessionCookie writes the jid session cookie with the attributes
// required for a browser-based session: HttpOnly, SameSite=Strict, and
// Secure. The server is expected to sit behind a TLS-terminating proxy in
// any deployment that isn't local development.
func (h *Handler) setSessionCookie(w http.ResponseWriter, token string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		Domain:   h.cfg.CookieDomain,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})
}

// clearSessionCookie deletes the jid cookie by writing a replacement with
// matching attributes and a negative MaxAge.
func (h *Handler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		Domain:   h.cfg.CookieDomain,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})
}

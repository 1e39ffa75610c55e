// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/filevault/filevault/internal/logger"
)

// safeMethods lists the HTTP methods exempt from origin verification.
var safeMethods = map[string]bool{
	http.MethodGet:     true,
	http.MethodHead:    true,
	http.MethodOptions: true,
}

// csrf is an HTTP middleware that defends the cookie-authenticated session
// against cross-site request forgery.
//
// For any non-safe method (anything other than GET/HEAD/OPTIONS) on a
// request that carries the [sessionCookieName] cookie, the middleware
// requires an Origin or Referer header whose origin is present in the
// configured allow-list (Handler.cfg.CORSOrigins, a comma-separated list).
// Requests failing this check are rejected with HTTP 403.
//
// Requests with no session cookie (e.g. public share downloads, login,
// registration) are never subject to this check — they carry no ambient
// credential for an attacker to ride.
func (h *Handler) csrf(next http.Handler) http.Handler {
	allowed := parseOriginAllowList(h.cfg.CORSOrigins)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if safeMethods[r.Method] {
			next.ServeHTTP(w, r)
			return
		}

		if _, err := r.Cookie(sessionCookieName); err != nil {
			next.ServeHTTP(w, r)
			return
		}

		origin := r.Header.Get("Origin")
		if origin == "" {
			origin = refererOrigin(r.Header.Get("Referer"))
		}

		if origin == "" || !allowed[origin] {
			logger.FromRequest(r).Warn().Str("origin", origin).Msg("csrf check failed")
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// parseOriginAllowList splits a comma-separated origin list into a lookup
// set, trimming whitespace around each entry.
func parseOriginAllowList(raw string) map[string]bool {
	allowed := make(map[string]bool)
	for _, origin := range strings.Split(raw, ",") {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			allowed[origin] = true
		}
	}
	return allowed
}

// refererOrigin extracts the scheme://host[:port] portion of a Referer
// header value, returning "" if it cannot be parsed.
func refererOrigin(referer string) string {
	if referer == "" {
		return ""
	}
	u, err := url.Parse(referer)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}

// Package http implements the HTTP transport layer of the application.
// It provides middleware, route handlers, and request/response utilities
// for the REST API. Authentication, CSRF, logging, tracing, and
// compression concerns are all handled at this layer before
// requests are forwarded to the service layer.
package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/filevault/filevault/models"
)

// Init constructs and returns a fully configured [chi.Mux] router that
// serves all API endpoints of the application.
//
// # Global middleware
//
// Every request passes through the following middleware chain in order:
//   - [middleware.Recoverer] — catches panics in handlers, logs the stack
//     trace, and returns HTTP 500 to the client so the server stays alive.
//   - [Handler.withTraceID] — resolves or generates a trace ID and stores
//     an enriched logger in the request context for structured tracing.
//   - withLogging — emits a structured access-log entry after each request.
//   - withGZip — transparently decompresses gzip-encoded request bodies and
//     compresses response bodies for clients that advertise gzip support.
//   - [Handler.csrf] — rejects unsafe-method requests that carry the jid
//     session cookie but lack an Origin/Referer header whose origin is in
//     the configured CORSOrigins allow-list.
//
// # Route groups
//
// All routes are nested under the "/api/v1" prefix:
//
//	/api/v1/auth           — registration, login, session, and profile management.
//	/api/v1/files          — encrypted file and folder operations (requires session).
//	/api/v1/public/share    — token-addressable public share resolution (no session).
//	/api/v1/invites        — registration invitation lifecycle.
//	/api/v1/admin/users    — owner/admin user management.
//	/api/v1/storage        — storage usage overview and per-user quota control.
//	/api/v1/settings       — admin-configurable key/value settings bag.
//	/api/v1/version        — server metadata (public).
//
// # Method-not-allowed behaviour
//
// [CheckHTTPMethod] is registered as the MethodNotAllowed handler. It
// overrides chi's default HTTP 405 response and returns HTTP 404 instead,
// preventing callers from discovering which HTTP methods are supported on
// a given route through error-code enumeration.
func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer, h.withTraceID, withLogging, withGZip, h.csrf)

	router.Route("/api/v1", func(api chi.Router) {

		api.Route("/auth", func(auth chi.Router) {
			auth.Get("/setup-status", h.setupStatus)
			auth.Post("/register", h.register)
			auth.Post("/login", h.login)
			auth.Post("/logout", h.logout)
			auth.Post("/forgot-password", h.forgotPassword)
			auth.Post("/reset-password", h.resetPassword)

			auth.Group(func(protected chi.Router) {
				protected.Use(h.auth)
				protected.Get("/me", h.me)
				protected.Patch("/profile", h.updateProfile)
				protected.Post("/change-password", h.changePassword)
			})
		})

		api.Route("/files", func(files chi.Router) {
			files.Use(h.auth)

			files.Get("/", h.listFiles)
			files.Post("/", h.createFile)
			files.Get("/trash", h.listTrash)
			files.Delete("/trash/empty", h.emptyTrash)
			files.Delete("/bulk", h.bulkDeleteFiles)
			files.Post("/check-duplicate", h.checkDuplicate)
			files.Get("/shared", h.listSharesReceived)
			files.Get("/public-shares", h.listPublicShares)
			files.Get("/private-shares", h.listPrivateShares)

			files.Route("/{id}", func(file chi.Router) {
				file.Get("/download", h.downloadFile)
				file.Put("/upload", h.uploadContent)
				file.Patch("/", h.renameFile)
				file.Patch("/move", h.moveFile)
				file.Delete("/", h.trashFile)
				file.Post("/restore", h.restoreFile)
				file.Delete("/permanent", h.deleteFilePermanently)

				file.Post("/share", h.createShare)
				file.Get("/shares", h.listSharesForFile)
			})

			files.Route("/shares/{shareId}", func(share chi.Router) {
				share.Delete("/", h.revokeShare)
				share.Patch("/public-settings", h.updateSharePublicSettings)
				share.Get("/download", h.downloadPrivateShare)
			})
		})

		api.Route("/public/share", func(public chi.Router) {
			public.Get("/{token}", h.resolvePublicShare)
			public.Get("/{token}/download", h.downloadPublicShare)
		})

		api.Route("/invites", func(invites chi.Router) {
			invites.Post("/accept", h.acceptInvitation)
			invites.Get("/validate/{token}", h.validateInvitation)

			invites.Group(func(protected chi.Router) {
				protected.Use(h.auth, h.requireRole(models.RoleAdmin))
				protected.Post("/", h.createInvitation)
				protected.Get("/", h.listInvitations)
				protected.Delete("/{id}", h.revokeInvitation)
			})
		})

		api.Route("/admin/users", func(admin chi.Router) {
			admin.Use(h.auth, h.requireRole(models.RoleAdmin))
			admin.Get("/", h.listUsers)
			admin.Put("/{id}", h.updateUserRole)
			admin.Delete("/{id}", h.deleteUser)
		})

		api.Route("/storage", func(storage chi.Router) {
			storage.Use(h.auth, h.requireRole(models.RoleAdmin))
			storage.Get("/overview", h.storageOverview)
			storage.Get("/users", h.listUsers)
			storage.Get("/users/{id}", h.getStorageUser)
			storage.Patch("/users/{id}/quota", h.updateUserQuota)
		})

		api.Route("/settings", func(settings chi.Router) {
			settings.Use(h.auth, h.requireRole(models.RoleAdmin))
			settings.Get("/", h.getSetting)
			settings.Get("/all", h.listSettings)
			settings.Put("/", h.putSetting)
			settings.Get("/smtp", h.getSMTPSettings)
			settings.Put("/smtp", h.putSMTPSettings)
			settings.Post("/smtp/test", h.testSMTPSettings)
		})

		api.Route("/version", func(version chi.Router) {
			version.Get("/", h.getServerVersion)
		})
	})

	// Replace chi's default 405 Method Not Allowed with 404 Not Found so that
	// callers cannot enumerate supported HTTP methods through error codes.
	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}

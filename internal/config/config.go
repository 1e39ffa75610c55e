// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// filevault application. It aggregates all sub-configurations and is
// populated by merging values from environment variables, command-line
// flags, and an optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as cryptographic keys,
	// token parameters, and the application version.
	App App `envPrefix:"APP_"`

	// Storage holds configuration for all persistence backends, including
	// the relational database and the encrypted blob store.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds network address and timeout settings for the HTTP server.
	Server Server `envPrefix:"SERVER_"`

	// Mail holds configuration for the outbound SMTP transport used for
	// invitation and password-reset notifications.
	Mail Mail `envPrefix:"MAIL_"`

	// RateLimit holds the public-share abuse-limiter's window and cap
	// settings.
	RateLimit RateLimit `envPrefix:"RATE_LIMIT_"`

	// Invite holds invitation-token lifecycle settings.
	Invite Invite `envPrefix:"INVITE_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged in, filling only the
	// fields left zero by environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// Storage groups the configuration for all storage backends used by the
// application.
type Storage struct {
	// DB holds the relational database connection settings.
	DB DB `envPrefix:"DB_"`

	// Files holds the file-system settings for the encrypted blob store.
	Files Files `envPrefix:"FILES_"`
}

// App holds application-level configuration values that control security,
// token lifecycle, and versioning.
type App struct {
	// JWTSecret signs and verifies session JWTs (HS256). Must be at least
	// 32 characters; the application refuses to start otherwise.
	// Env: APP_JWT_SECRET
	JWTSecret string `env:"JWT_SECRET"`

	// TokenIssuer is the "iss" claim embedded in every issued JWT token.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration specifies how long a session JWT remains valid after
	// issuance. Matches the jid cookie's Max-Age.
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// FileEncryptionMasterKey is the base64 encoding of the 32-byte
	// process-wide key-encryption key (KEK) used to wrap every file's DEK.
	// Env: APP_FILE_ENCRYPTION_MASTER_KEY
	FileEncryptionMasterKey string `env:"FILE_ENCRYPTION_MASTER_KEY"`

	// CookieDomain scopes the jid session cookie's Domain attribute.
	// Env: APP_COOKIE_DOMAIN
	CookieDomain string `env:"COOKIE_DOMAIN"`

	// FrontendURL is the base URL of the companion web client, used to
	// build links in invitation and password-reset emails.
	// Env: APP_FRONTEND_URL
	FrontendURL string `env:"FRONTEND_URL"`

	// CORSOrigins is the comma-separated allow-list of origins permitted
	// to make cross-origin requests and checked by the CSRF middleware.
	// Env: APP_CORS_ORIGIN
	CORSOrigins string `env:"CORS_ORIGIN"`

	// TrustProxy indicates whether X-Forwarded-* headers should be trusted
	// when determining the caller's IP (used by the abuse limiter).
	// Env: APP_TRUST_PROXY
	TrustProxy bool `env:"TRUST_PROXY"`

	// PublicRegistration, when true, allows the /auth/register endpoint to
	// accept new users without a valid invitation (still gated after the
	// first bootstrap owner is created). Default is invite-only.
	// Env: APP_PUBLIC_REGISTRATION
	PublicRegistration bool `env:"PUBLIC_REGISTRATION"`

	// Version is the semantic version string of the running application
	// (e.g. "1.2.3"). Exposed via the /api/v1/version endpoint.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Server holds network and timeout settings for the inbound HTTP transport.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens,
	// in "host:port" format (e.g. ":4000").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single inbound
	// request before the server cancels it.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// DB holds connection settings for the relational metadata store.
type DB struct {
	// DSN is the PostgreSQL Data Source Name (connection string) used to
	// open the database connection, taken verbatim from
	// STORAGE_DB_DATABASE_URI (or the matching flag or JSON field). The
	// config builder does not assemble a DSN from the Host, Port, User,
	// Password and Name fields below.
	DSN string `env:"DATABASE_URI"`

	Host     string `env:"DATABASE_HOST"`
	Port     int    `env:"DATABASE_PORT"`
	User     string `env:"DATABASE_USER"`
	Password string `env:"DATABASE_PASSWORD"`
	Name     string `env:"DATABASE_NAME"`
}

// Files holds file-system settings for the encrypted blob store.
type Files struct {
	// BinaryDataDir is the root directory under which per-owner blob
	// directories (and their .trash subdirectories) are created.
	// Env: STORAGE_FILES_BINARY_DATA_DIR
	BinaryDataDir string `env:"BINARY_DATA_DIR"`
}

// Mail holds SMTP transport settings for invitation and password-reset
// notifications.
type Mail struct {
	// Enabled gates whether the mail transport is wired at all; when false,
	// invite/reset flows still function but no email is sent.
	// Env: MAIL_EMAIL_ENABLED
	Enabled bool `env:"EMAIL_ENABLED"`

	Host     string `env:"SMTP_HOST"`
	Port     int    `env:"SMTP_PORT"`
	Username string `env:"SMTP_USERNAME"`
	Password string `env:"SMTP_PASSWORD"`
	From     string `env:"SMTP_FROM"`
}

// RateLimit holds the public-share abuse-limiter's window and cap settings.
type RateLimit struct {
	// TTL is the fixed window duration over which attempts are counted.
	// Env: RATE_LIMIT_TTL
	TTL time.Duration `env:"TTL"`

	// Max is the number of password attempts allowed per (ip, token) pair
	// within the window before the caller is rate-limited.
	// Env: RATE_LIMIT_MAX
	Max int `env:"MAX"`
}

// Invite holds invitation-token lifecycle settings.
type Invite struct {
	// TokenTTLHours is how long an invitation token remains redeemable.
	// Env: INVITE_TOKEN_TTL_HOURS
	TokenTTLHours int `env:"TOKEN_TTL_HOURS"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (earliest source wins for a given field; later sources and defaults only
// fill in what remains zero):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//  4. Built-in defaults
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		withDefaults().
		build()
}

package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid at startup.
var (
	// ErrMissingJWTSecret indicates APP_JWT_SECRET is unset or shorter than
	// 32 characters.
	ErrMissingJWTSecret = errors.New("jwt secret must be at least 32 characters")

	// ErrMissingFileEncryptionMasterKey indicates
	// APP_FILE_ENCRYPTION_MASTER_KEY is unset or does not decode to exactly
	// 32 bytes.
	ErrMissingFileEncryptionMasterKey = errors.New("file encryption master key must be base64 of 32 bytes")

	// ErrInvalidStorageConfigs indicates invalid database connection settings.
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
)

package service

import (
	"errors"

	"github.com/filevault/filevault/models"
)

var (
	// ErrInvalidDataProvided is returned when the caller supplies a request
	// object that fails basic structural or semantic validation (e.g.
	// missing required fields, malformed values).
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrWrongPassword is returned by the authentication service when the
	// supplied password does not match the stored credential hash for the
	// given user.
	ErrWrongPassword = errors.New("wrong password")

	// ErrTokenIsExpiredOrInvalid is returned when a JWT cannot be trusted —
	// either because it has expired or because its signature/claims are
	// invalid.
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired/invalid")

	// ErrTokenCreationFailed is returned when signing a new JWT fails.
	ErrTokenCreationFailed = errors.New("failed to create token")

	// ErrUnauthorized is returned when the authenticated caller attempts to
	// read or modify a resource that does not belong to them and that their
	// role does not entitle them to.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrRegistrationDisabled is returned when a registration attempt
	// arrives without a valid invitation while public registration is off.
	ErrRegistrationDisabled = errors.New("public registration is disabled, an invitation is required")

	// ErrInvitationInvalid is returned when a registration request supplies
	// an invitation token that does not exist, has expired, has already
	// been redeemed, or is scoped to a different email address.
	ErrInvitationInvalid = errors.New("invitation is invalid or has expired")

	// ErrQuotaExceeded is returned when an upload would push the owner's UsedBytes past
	// QuotaBytes.
	ErrQuotaExceeded = errors.New("storage quota exceeded")

	// ErrInsufficientStorage is returned when the configured blob storage
	// volume does not have enough free disk space to accept an upload,
	// independent of the user's own quota.
	ErrInsufficientStorage = errors.New("insufficient free storage space")

	// ErrNotAFolder is returned when the kind of the target does not fit the
	// operation: a folder archive is requested for a regular file, or content
	// is uploaded to or downloaded from a folder.
	ErrNotAFolder = errors.New("target is not a folder")

	// ErrCannotMoveIntoSelf is returned when a move operation would make a
	// folder its own descendant, creating a cycle.
	ErrCannotMoveIntoSelf = errors.New("cannot move a folder into itself or one of its descendants")

	// ErrShareExpired is returned when a public share's token is resolved
	// after its ExpiresAt has passed.
	ErrShareExpired = errors.New("share has expired")

	// ErrSharePasswordRequired is returned when a public share has a
	// password set and the caller did not supply one.
	ErrSharePasswordRequired = errors.New("share requires a password")

	// ErrShareWrongPassword is returned when a supplied public-share
	// password does not match the stored hash.
	ErrShareWrongPassword = errors.New("wrong share password")

	// ErrVersionIsNotSpecified is returned at startup when config.App.Version
	// is empty, so the application fails fast rather than serving an empty
	// version string.
	ErrVersionIsNotSpecified = errors.New("application version is not specified")

	// ErrResetTokenInvalid is returned when a password-reset token does not
	// exist, has already been consumed, or has expired.
	ErrResetTokenInvalid = errors.New("reset token is invalid or has expired")

	// ErrAlreadyUploaded is returned when UploadContent targets a file
	// record that already carries a storage path.
	ErrAlreadyUploaded = errors.New("file content has already been uploaded")

	// ErrQuotaBelowUsage is returned when an admin attempts to set a user's
	// quota below that user's current used_bytes.
	ErrQuotaBelowUsage = errors.New("quota cannot be set below the user's current usage")

	// ErrQuotaExceedsFreeSpace is returned when an admin attempts to set a
	// user's quota above used_bytes plus the volume's current free space.
	ErrQuotaExceedsFreeSpace = errors.New("quota cannot exceed the user's current usage plus available free space")

	// ErrRoleCannotInviteAbove is returned when an inviter attempts to
	// create an invitation for a role that outranks their own.
	ErrRoleCannotInviteAbove = errors.New("cannot invite a role that outranks your own")

	// ErrShareNotPublic is returned when an operation that only applies to
	// public shares (e.g. updating password/expiry settings) targets a
	// private share.
	ErrShareNotPublic = errors.New("share is not a public share")
)

// DuplicateContentError is returned by [FileService.CreateFile] when
// skipDuplicateCheck is false and one or more existing records already
// carry the submitted content hash. Matches holds up to 10 of them so the
// caller can decide whether to link, rename, or resubmit with
// skipDuplicateCheck set.
type DuplicateContentError struct {
	Matches []models.File
}

func (e *DuplicateContentError) Error() string {
	return "duplicate content detected"
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used across the
// filevault server handlers and middleware.
//
// All Msg* constants are human-readable message strings that are written into
// HTTP response bodies or log entries to describe the outcome of an operation.
// Keeping them in one place ensures consistent wording throughout the API.
package app

const (
	// MsgInvalidDataProvided is returned when the request body cannot be
	// decoded or fails basic validation (e.g. missing required fields).
	MsgInvalidDataProvided = "invalid data provided"

	// MsgInvalidLoginPassword is returned when the supplied email/password
	// combination does not match any existing account.
	MsgInvalidLoginPassword = "invalid email/password"

	// MsgInternalServerError is returned when an unexpected server-side
	// failure occurs that the client cannot resolve.
	MsgInternalServerError = "internal server error"

	// MsgTokenIsExpiredOrInvalid is returned when a session JWT is either
	// expired or cannot be verified (e.g. wrong signature).
	MsgTokenIsExpiredOrInvalid = "token is expired or invalid"

	// MsgAccessDenied is returned when the authenticated caller attempts to
	// access or modify a resource that does not belong to them, or that
	// their role does not entitle them to.
	MsgAccessDenied = "access denied"

	// MsgVersionIsNotSpecified is returned at startup when no application
	// version has been configured.
	MsgVersionIsNotSpecified = "application version is not specified"

	// MsgEmailAlreadyExists is returned when a registration attempt is
	// rejected because the requested email is already in use.
	MsgEmailAlreadyExists = "email already exists"

	// MsgUserNotFound is returned when an operation targets a user account
	// that does not exist.
	MsgUserNotFound = "user not found"

	// MsgFileNotFound is returned when a read, rename, move, or delete
	// operation targets a file or folder that does not exist for the
	// current user.
	MsgFileNotFound = "file not found"

	// MsgFileNameConflict is returned when creating, renaming, or moving a
	// file would collide with an existing sibling of the same name.
	MsgFileNameConflict = "a file with that name already exists in this folder"

	// MsgFolderNotEmpty is returned when a permanent delete targets a
	// folder that still has children.
	MsgFolderNotEmpty = "folder is not empty"

	// MsgNotAFolder is returned when an operation that requires a folder
	// target is given a regular file ID.
	MsgNotAFolder = "target is not a folder"

	// MsgCannotMoveIntoSelf is returned when a move would make a folder its
	// own descendant.
	MsgCannotMoveIntoSelf = "cannot move a folder into itself or one of its descendants"

	// MsgShareNotFound is returned when an operation targets a share that
	// does not exist.
	MsgShareNotFound = "share not found"

	// MsgShareExpired is returned when a public share's token is resolved
	// after its expiry has passed.
	MsgShareExpired = "share has expired"

	// MsgSharePasswordRequired is returned when a public share requires a
	// password that the caller did not supply.
	MsgSharePasswordRequired = "share requires a password"

	// MsgShareWrongPassword is returned when a supplied public-share
	// password does not match the stored hash.
	MsgShareWrongPassword = "wrong share password"

	// MsgInvitationInvalid is returned when a registration request supplies
	// an invitation token that does not exist, has expired, has already
	// been redeemed, or is scoped to a different email address.
	MsgInvitationInvalid = "invitation is invalid or has expired"

	// MsgRegistrationDisabled is returned when a registration attempt
	// arrives without a valid invitation while public registration is off.
	MsgRegistrationDisabled = "public registration is disabled, an invitation is required"

	// MsgResetTokenInvalid is returned when a password-reset token does not
	// exist, has already been consumed, or has expired.
	MsgResetTokenInvalid = "reset token is invalid or has expired"

	// MsgQuotaExceeded is returned when an upload would push the owner's
	// usage past their storage quota.
	MsgQuotaExceeded = "storage quota exceeded"

	// MsgInsufficientStorage is returned when the backing storage volume
	// lacks enough free disk space to accept an upload.
	MsgInsufficientStorage = "insufficient free storage space"

	// MsgSettingNotFound is returned when a query targets a settings key
	// with no stored value.
	MsgSettingNotFound = "setting not found"

	// MsgDuplicateContent is returned when a pre-upload create request
	// matches existing content and the caller did not opt out of the
	// duplicate check.
	MsgDuplicateContent = "duplicate content detected"

	// MsgAlreadyUploaded is returned when an upload targets a file record
	// that already has content.
	MsgAlreadyUploaded = "file content has already been uploaded"

	// MsgQuotaBelowUsage is returned when an admin attempts to set a user's
	// quota below their current usage.
	MsgQuotaBelowUsage = "quota cannot be set below the user's current usage"

	// MsgQuotaExceedsFreeSpace is returned when an admin attempts to set a
	// user's quota above what the backing volume could ever satisfy.
	MsgQuotaExceedsFreeSpace = "quota cannot exceed the user's current usage plus available free space"

	// MsgRoleCannotInviteAbove is returned when an inviter attempts to mint
	// an invitation for a role that outranks their own.
	MsgRoleCannotInviteAbove = "cannot invite a role that outranks your own"

	// MsgShareNotPublic is returned when a public-only share operation
	// targets a private share.
	MsgShareNotPublic = "share is not a public share"
)

// Package store provides data-access abstractions and repository implementations
// for persisting and querying application domain objects (users, files, shares,
// invitations, settings).
//
// It defines repository interfaces, concrete PostgreSQL-backed implementations,
// query builders, error classification, and sentinel errors used across
// the storage layer.
package store

import (
	"context"
	"time"

	"github.com/filevault/filevault/models"
)

// UserRepository defines the database access contract for user accounts.
type UserRepository interface {
	// CreateUser persists a new user record and returns the created entity
	// with server-assigned fields (e.g. ID, CreatedAt) populated.
	// Returns [ErrEmailAlreadyExists] if the email is already taken.
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// FindUserByEmail retrieves a user record by email.
	// Returns [ErrUserNotFound] if no matching, non-deleted record exists.
	FindUserByEmail(ctx context.Context, email string) (models.User, error)

	// FindUserByID retrieves a user record by its primary key.
	// Returns [ErrUserNotFound] if no matching, non-deleted record exists.
	FindUserByID(ctx context.Context, userID int64) (models.User, error)

	// ListUsers returns every non-deleted user account, ordered by ID.
	// Intended for the admin user-management surface.
	ListUsers(ctx context.Context) ([]models.User, error)

	// UpdateUser persists mutable fields of user (display name, avatar,
	// role, quota) identified by UserID.
	UpdateUser(ctx context.Context, user models.User) error

	// UpdatePassword overwrites the stored password hash for userID.
	UpdatePassword(ctx context.Context, userID int64, passwordHash string) error

	// AdjustUsedBytes atomically adds delta (which may be negative) to the
	// user's UsedBytes counter and returns the resulting total.
	AdjustUsedBytes(ctx context.Context, userID int64, delta int64) (int64, error)

	// DeleteUser soft-deletes the user account identified by userID by setting
	// its deleted_at timestamp.
	DeleteUser(ctx context.Context, userID int64) error
}

// FileRepository defines the database access contract for files and folders.
type FileRepository interface {
	// CreateFile inserts a new file or folder row and returns it with
	// server-assigned fields populated. Returns [ErrFileNameConflict] if a
	// live sibling with the same name already exists under the same parent.
	CreateFile(ctx context.Context, file models.File) (models.File, error)

	// GetFile retrieves a single file/folder by ID. Returns
	// [ErrFileNotFound] if it does not exist or is not owned by ownerID.
	GetFile(ctx context.Context, ownerID, fileID int64) (models.File, error)

	// ListChildren returns the live (non-trashed) children of parentID
	// owned by ownerID. A nil parentID lists the root level.
	ListChildren(ctx context.Context, ownerID int64, parentID *int64) ([]models.File, error)

	// ListTrashed returns every trashed file/folder owned by ownerID.
	ListTrashed(ctx context.Context, ownerID int64) ([]models.File, error)

	// FindByContentHash looks up a live, non-trashed file owned by ownerID
	// with a matching content hash, for upload deduplication. Returns
	// [ErrFileNotFound] if none exists.
	FindByContentHash(ctx context.Context, ownerID int64, contentHash string) (models.File, error)

	// FindMatchesByContentHash returns up to limit live, non-trashed files
	// owned by ownerID with a matching content hash, most recent first.
	FindMatchesByContentHash(ctx context.Context, ownerID int64, contentHash string, limit uint64) ([]models.File, error)

	// CompleteUpload fills in the blob and crypto fields of a pending-upload
	// file row (one created with no storage_path), identified by fileID and
	// owned by ownerID. Returns [ErrFileNotFound] if it does not exist or is
	// not pending.
	CompleteUpload(ctx context.Context, ownerID, fileID int64, sizeBytes int64, contentHash, storagePath string, wrappedDEK, iv []byte) (models.File, error)

	// RenameFile updates the Name of fileID, owned by ownerID. Returns
	// [ErrFileNameConflict] on a name collision with a live sibling.
	RenameFile(ctx context.Context, ownerID, fileID int64, name string) error

	// MoveFile updates the ParentID of fileID, owned by ownerID. Returns
	// [ErrFileNameConflict] on a name collision in the destination folder.
	MoveFile(ctx context.Context, ownerID, fileID int64, newParentID *int64) error

	// TrashFile soft-deletes fileID (and, for folders, is expected to be
	// called once per descendant by the service layer) by setting
	// DeletedAt to now.
	TrashFile(ctx context.Context, ownerID, fileID int64) error

	// RestoreFile clears DeletedAt on fileID, returning it to its former
	// parent. Returns [ErrFileNameConflict] if a live sibling now occupies
	// the same name.
	RestoreFile(ctx context.Context, ownerID, fileID int64) error

	// DeleteFilePermanently removes the row entirely. Returns
	// [ErrFolderNotEmpty] if fileID is a folder with remaining children.
	DeleteFilePermanently(ctx context.Context, ownerID, fileID int64) error

	// CountReferencesToStoragePath counts how many live file rows (across
	// all owners) still reference storagePath, used to decide whether the
	// underlying blob can be physically deleted during deduplication
	// cleanup.
	CountReferencesToStoragePath(ctx context.Context, storagePath string) (int64, error)
}

// ShareRepository defines the database access contract for private and
// public shares.
type ShareRepository interface {
	// CreateShare inserts a new share row and returns it with
	// server-assigned fields populated.
	CreateShare(ctx context.Context, share models.Share) (models.Share, error)

	// GetShareByID retrieves a share by its primary key, scoped to the
	// owner that created it. Returns [ErrShareNotFound] otherwise.
	GetShareByID(ctx context.Context, ownerID, shareID int64) (models.Share, error)

	// GetShareByToken retrieves a public share by its token, regardless of
	// owner. Returns [ErrShareNotFound] if no share has that token.
	GetShareByToken(ctx context.Context, token string) (models.Share, error)

	// ListSharesForFile returns every share (private and public) attached
	// to fileID, owned by ownerID.
	ListSharesForFile(ctx context.Context, ownerID, fileID int64) ([]models.Share, error)

	// ListSharesReceivedBy returns every private share whose RecipientID is
	// recipientID.
	ListSharesReceivedBy(ctx context.Context, recipientID int64) ([]models.Share, error)

	// GetShareForRecipient retrieves a private share by its primary key,
	// scoped to the recipient it was granted to. Returns [ErrShareNotFound]
	// otherwise.
	GetShareForRecipient(ctx context.Context, recipientID, shareID int64) (models.Share, error)

	// ListSharesByOwnerAndKind returns every share of the given kind owned
	// by ownerID, across all of their files.
	ListSharesByOwnerAndKind(ctx context.Context, ownerID int64, kind models.ShareKind) ([]models.Share, error)

	// UpdateSharePublicSettings overwrites the password hash and expiry of
	// a public share identified by shareID, owned by ownerID. Returns
	// [ErrShareNotFound] if it does not exist or is not a public share.
	UpdateSharePublicSettings(ctx context.Context, ownerID, shareID int64, passwordHash string, expiresAt *time.Time) (models.Share, error)

	// RevokeShare deletes the share row identified by shareID, owned by
	// ownerID. Returns [ErrShareNotFound] if it does not exist.
	RevokeShare(ctx context.Context, ownerID, shareID int64) error
}

// InvitationRepository defines the database access contract for
// registration invitations.
type InvitationRepository interface {
	// CreateInvitation inserts a new invitation row and returns it with
	// server-assigned fields populated.
	CreateInvitation(ctx context.Context, invitation models.Invitation) (models.Invitation, error)

	// GetInvitationByToken retrieves an invitation by its token. Returns
	// [ErrInvitationNotFound] if no invitation has that token.
	GetInvitationByToken(ctx context.Context, token string) (models.Invitation, error)

	// ListInvitations returns every invitation, most recent first.
	ListInvitations(ctx context.Context) ([]models.Invitation, error)

	// RedeemInvitation marks the invitation identified by token as redeemed
	// by redeemedByID. Returns [ErrInvitationAlreadyRedeemed] if it was
	// already used.
	RedeemInvitation(ctx context.Context, token string, redeemedByID int64) error

	// RevokeInvitation deletes the unredeemed invitation identified by id.
	// Returns [ErrInvitationNotFound] if it does not exist or has already
	// been redeemed.
	RevokeInvitation(ctx context.Context, id int64) error
}

// SettingRepository defines the database access contract for the
// admin-configurable key/value settings bag.
type SettingRepository interface {
	// GetSetting retrieves a single setting by key. Returns
	// [ErrSettingNotFound] if no value has been stored for it.
	GetSetting(ctx context.Context, key string) (models.Setting, error)

	// ListSettings returns every stored setting.
	ListSettings(ctx context.Context) ([]models.Setting, error)

	// UpsertSetting creates or overwrites the value of setting.Key.
	UpsertSetting(ctx context.Context, setting models.Setting) error
}

// ErrorClassificator defines a strategy for categorizing errors produced
// by persistence layers (e.g. PostgreSQL driver errors) into well-known
// application-level classifications.
//
// Implementations inspect the underlying driver error (error codes, types)
// and return a corresponding [ErrorClassification] value that higher layers
// can switch on without coupling to a specific database driver.
type ErrorClassificator interface {
	// Classify maps an error into a predefined [ErrorClassification] enum.
	// If the error is not recognized, the implementation should return
	// a generic/unknown classification rather than panicking.
	Classify(err error) ErrorClassification
}

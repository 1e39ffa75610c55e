// Package service defines the core business logic interfaces and service
// implementations for the filevault application.
//
// The package is organized around five primary domains:
//   - Authentication: registration (invite-gated or public), login, password
//     changes, and JWT token lifecycle.
//   - Files: folder/file creation, encrypted upload/download, rename, move,
//     trash/restore, permanent delete, and upload deduplication.
//   - Shares: private (user-to-user) and public (token-addressable) shares.
//   - Invitations: minting and redeeming single-use registration tokens.
//   - Settings: the admin-configurable key/value bag.
//
// All service interfaces accept a context.Context as the first argument to
// support cancellation, deadlines, and request-scoped values (e.g. user ID).
package service

import (
	"context"
	"io"
	"time"

	"github.com/filevault/filevault/internal/config"
	"github.com/filevault/filevault/models"
)

// AuthService defines the contract for user authentication and JWT token
// management.
type AuthService interface {
	// RegisterUser creates a new user account for email/password. If
	// inviteToken is empty, registration only succeeds when public
	// registration is enabled; otherwise inviteToken must name a valid,
	// unredeemed invitation. If no account exists yet, the call always
	// succeeds and creates the owner account regardless of inviteToken or
	// the public-registration setting.
	RegisterUser(ctx context.Context, email, password, inviteToken string) (models.User, error)

	// NeedsSetup reports whether no account exists yet, i.e. whether the
	// next registration will bootstrap the owner account.
	NeedsSetup(ctx context.Context) (bool, error)

	// Login verifies email/password against the stored account.
	// Returns [ErrWrongPassword] both for an unknown email and for a wrong
	// password.
	Login(ctx context.Context, email, password string) (models.User, error)

	// ChangePassword verifies oldPassword against the stored hash for
	// userID, then replaces it with the hash of newPassword.
	ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword string) error

	// GetUser returns the account identified by userID.
	GetUser(ctx context.Context, userID int64) (models.User, error)

	// ListUsers returns every account, ordered by ID. Intended for the
	// admin user-management and storage-overview surfaces.
	ListUsers(ctx context.Context) ([]models.User, error)

	// SetUserQuota overwrites the storage quota ceiling of userID. Returns
	// [ErrQuotaBelowUsage] or [ErrQuotaExceedsFreeSpace] if quotaBytes is
	// out of the range the account's current usage and the backing
	// volume's free space allow.
	SetUserQuota(ctx context.Context, userID, quotaBytes int64) (models.User, error)

	// UpdateUserRole overwrites the role of userID. Intended for
	// administrative user management.
	UpdateUserRole(ctx context.Context, userID int64, role models.Role) (models.User, error)

	// DeleteUser soft-deletes the account identified by userID.
	DeleteUser(ctx context.Context, userID int64) error

	// UpdateProfile overwrites the mutable, non-sensitive profile fields
	// (display name, avatar URL) of userID.
	UpdateProfile(ctx context.Context, userID int64, displayName, avatarURL string) (models.User, error)

	// RequestPasswordReset issues a single-use, 1-hour reset token for the
	// account identified by email and emails it via the configured
	// transport. It does not report whether the account exists: callers
	// should show the caller the same response regardless of the outcome.
	RequestPasswordReset(ctx context.Context, email string) error

	// ResetPassword consumes token and, if it is valid and unexpired,
	// replaces the bound account's password hash with newPassword. Returns
	// [ErrResetTokenInvalid] otherwise.
	ResetPassword(ctx context.Context, token, newPassword string) error

	// CreateToken issues a signed JWT for the given user.
	CreateToken(ctx context.Context, user models.User) (models.Token, error)

	// ParseToken validates and parses the raw JWT string tokenString.
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// FileService defines the contract for managing encrypted files and folders
// on behalf of authenticated users.
type FileService interface {
	// CreateFolder creates a new, empty folder under parentID (nil for
	// root) owned by ownerID.
	CreateFolder(ctx context.Context, ownerID int64, parentID *int64, name string) (models.File, error)

	// CreateFile creates a new row under parentID (nil for root) owned by
	// ownerID. Folders are created complete in one step. Regular files are
	// created as a pending-upload row (no blob or crypto material) awaiting
	// a follow-up UploadContent call, unless contentHash names an existing,
	// dedup-eligible match: then, depending on skipDuplicateCheck, the call
	// either fails with [*DuplicateContentError] or links the new row
	// straight onto the matched blob.
	CreateFile(ctx context.Context, ownerID int64, parentID *int64, name, mimeType string, isFolder bool, contentHash string, skipDuplicateCheck bool) (models.File, error)

	// FindDuplicate looks up a live file owned by ownerID with the given
	// content hash, for a client to probe before attempting a create.
	FindDuplicate(ctx context.Context, ownerID int64, contentHash string) (models.File, bool, error)

	// UploadContent reads content fully, computing its SHA-256 hash, and
	// fills in the blob and crypto fields of the pending-upload row fileID
	// (owned by ownerID). Content is encrypted under a fresh DEK and
	// streamed to the blob store.
	//
	// Returns [ErrAlreadyUploaded] if fileID already carries content,
	// [ErrQuotaExceeded] if the upload would exceed ownerID's quota, or
	// [ErrInsufficientStorage] if the volume lacks free space.
	UploadContent(ctx context.Context, ownerID, fileID int64, content io.Reader) (models.File, error)

	// DownloadFile streams the decrypted content of fileID (owned by
	// ownerID) to dst and returns the file's metadata.
	DownloadFile(ctx context.Context, ownerID, fileID int64, dst io.Writer) (models.File, error)

	// DownloadFolderArchive streams a ZIP archive of folderID's entire live
	// subtree (decrypted) to dst.
	DownloadFolderArchive(ctx context.Context, ownerID, folderID int64, dst io.Writer) error

	// GetFile returns the metadata for a single file/folder.
	GetFile(ctx context.Context, ownerID, fileID int64) (models.File, error)

	// ListFolder returns the live children matching req.
	ListFolder(ctx context.Context, req models.FileListRequest) ([]models.File, error)

	// ListTrash returns every trashed file/folder owned by ownerID.
	ListTrash(ctx context.Context, ownerID int64) ([]models.File, error)

	// RenameFile renames fileID.
	RenameFile(ctx context.Context, ownerID, fileID int64, newName string) (models.File, error)

	// MoveFile reparents fileID under newParentID (nil for root). Returns
	// [ErrCannotMoveIntoSelf] if newParentID is fileID or one of its
	// descendants.
	MoveFile(ctx context.Context, ownerID, fileID int64, newParentID *int64) (models.File, error)

	// TrashFile soft-deletes fileID and, if it is a folder, every live
	// descendant.
	TrashFile(ctx context.Context, ownerID, fileID int64) error

	// RestoreFile un-trashes fileID.
	RestoreFile(ctx context.Context, ownerID, fileID int64) error

	// DeleteFilePermanently removes fileID (and, if empty, frees its blob
	// once no other file row references it) beyond recovery. Returns
	// [ErrFolderNotEmpty]-classed errors if fileID is a non-empty folder.
	DeleteFilePermanently(ctx context.Context, ownerID, fileID int64) error

	// BatchDelete trashes every ID in req.IDs owned by req.UserID,
	// collecting and returning the first error encountered while
	// continuing to process the remaining IDs.
	BatchDelete(ctx context.Context, req models.BatchDeleteRequest) error
}

// ShareService defines the contract for creating and resolving private and
// public shares of a file.
type ShareService interface {
	// CreatePrivateShare grants recipientEmail access to fileID.
	CreatePrivateShare(ctx context.Context, ownerID, fileID int64, recipientEmail string) (models.Share, error)

	// CreatePublicShare mints a new token-addressable share for fileID.
	// password, when non-empty, is hashed and required on resolution.
	// expiresAt, when non-nil, is the share's hard expiry.
	CreatePublicShare(ctx context.Context, ownerID, fileID int64, password string, expiresAt *time.Time) (models.Share, error)

	// ResolvePublicShare looks up a public share by token, verifying
	// password (if the share requires one) and expiry, and returns the
	// share alongside the file it targets.
	ResolvePublicShare(ctx context.Context, token, password string) (models.Share, models.File, error)

	// ListSharesForFile lists every share (private and public) on fileID,
	// owned by ownerID.
	ListSharesForFile(ctx context.Context, ownerID, fileID int64) ([]models.Share, error)

	// ListSharesReceived lists every private share granted to recipientID.
	ListSharesReceived(ctx context.Context, recipientID int64) ([]models.Share, error)

	// ListPublicShares lists every public share owned by ownerID, across
	// all of their files.
	ListPublicShares(ctx context.Context, ownerID int64) ([]models.Share, error)

	// ListPrivateShares lists every private share owned by ownerID (i.e.
	// shares they granted to others), across all of their files.
	ListPrivateShares(ctx context.Context, ownerID int64) ([]models.Share, error)

	// UpdatePublicShareSettings overwrites a public share's password and
	// expiry. clearPassword removes any existing password instead of
	// keeping it; otherwise, a non-nil password replaces it. clearExpiry
	// removes any existing expiry instead of keeping it; otherwise, a
	// non-nil expiresAt replaces it. Returns [ErrShareNotPublic] if shareID
	// names a private share.
	UpdatePublicShareSettings(ctx context.Context, ownerID, shareID int64, password *string, clearPassword bool, expiresAt *time.Time, clearExpiry bool) (models.Share, error)

	// GetPrivateShareFile returns the metadata of the file backing shareID,
	// on behalf of the recipient it was granted to, without streaming its
	// content. Callers use this to set response headers before calling
	// DownloadPrivateShare. Returns [store.ErrShareNotFound] if shareID does
	// not exist or was not granted to recipientID.
	GetPrivateShareFile(ctx context.Context, recipientID, shareID int64) (models.File, error)

	// DownloadPrivateShare streams the decrypted content of the file
	// backing shareID to dst, on behalf of the recipient it was granted to.
	// Returns [store.ErrShareNotFound] if shareID does not exist or was not
	// granted to recipientID.
	DownloadPrivateShare(ctx context.Context, recipientID, shareID int64, dst io.Writer) (models.File, error)

	// RevokeShare deletes shareID, owned by ownerID.
	RevokeShare(ctx context.Context, ownerID, shareID int64) error
}

// InvitationService defines the contract for minting and redeeming
// single-use registration invitations.
type InvitationService interface {
	// CreateInvitation mints a new invitation on behalf of invitedByID.
	// email, when set, restricts redemption to that address. Returns
	// [ErrRoleCannotInviteAbove] if role outranks invitedByID's own role.
	CreateInvitation(ctx context.Context, invitedByID int64, email string, role models.Role) (models.Invitation, error)

	// ListInvitations returns every invitation, most recent first.
	ListInvitations(ctx context.Context) ([]models.Invitation, error)

	// ValidateInvitation reports whether token names a currently redeemable
	// invitation (exists, unexpired, unredeemed), alongside the invitation
	// itself if found.
	ValidateInvitation(ctx context.Context, token string) (models.Invitation, bool, error)

	// RevokeInvitation deletes the unredeemed invitation identified by id.
	// Returns [store.ErrInvitationNotFound] if it does not exist or has
	// already been redeemed.
	RevokeInvitation(ctx context.Context, id int64) error
}

// SettingService defines the contract for the admin-configurable key/value
// settings bag.
type SettingService interface {
	// GetSetting returns the stored value for key, or defaultValue if no
	// value has been set.
	GetSetting(ctx context.Context, key, defaultValue string) string

	// ListSettings returns every stored setting.
	ListSettings(ctx context.Context) ([]models.Setting, error)

	// SetSetting stores value under key on behalf of updatedBy.
	SetSetting(ctx context.Context, key, value string, updatedBy int64) error

	// GetSMTPSettings assembles the current SMTP configuration from the
	// settings bag, falling back to the process's startup configuration for
	// any key that has never been overridden.
	GetSMTPSettings(ctx context.Context) config.Mail

	// SetSMTPSettings persists cfg's fields into the settings bag on behalf
	// of updatedBy and reconfigures the live mail transport to use them
	// immediately.
	SetSMTPSettings(ctx context.Context, cfg config.Mail, updatedBy int64) error

	// TestSMTPSettings sends a test email to "to" using the currently
	// configured SMTP transport, to let an admin verify settings work
	// before relying on them.
	TestSMTPSettings(ctx context.Context, to string) error
}

// AppInfoService defines the contract for exposing application-level
// metadata.
type AppInfoService interface {
	// GetAppVersion returns the current semantic version string of the
	// running application (e.g. "1.2.3" or "dev").
	GetAppVersion(ctx context.Context) string
}

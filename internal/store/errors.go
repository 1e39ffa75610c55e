package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrEmailAlreadyExists is returned when an attempt to register a new
	// user fails because the email is already taken.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrUserNotFound is returned when a query expected to match a user
	// record produces an empty result set.
	ErrUserNotFound = errors.New("user not found")

	// ErrFileNotFound is returned when a query or update targets a file or
	// folder that does not exist (or is not visible to the caller).
	ErrFileNotFound = errors.New("file not found")

	// ErrFileNameConflict is returned when creating or renaming a file would
	// collide with an existing sibling of the same name under the same
	// parent.
	ErrFileNameConflict = errors.New("a file with that name already exists in this folder")

	// ErrFolderNotEmpty is returned when a permanent delete targets a
	// folder that still has children.
	ErrFolderNotEmpty = errors.New("folder is not empty")

	// ErrShareNotFound is returned when a query targets a share (by ID or
	// token) that does not exist or is outside the owner, recipient or kind
	// filter of the query. Expiry is not checked by the store.
	ErrShareNotFound = errors.New("share not found")

	// ErrShareTokenConflict is returned on the astronomically unlikely event
	// of a generated public-share token colliding with an existing one.
	ErrShareTokenConflict = errors.New("share token already exists")

	// ErrInvitationNotFound is returned when a query targets an invitation
	// token that does not exist.
	ErrInvitationNotFound = errors.New("invitation not found")

	// ErrInvitationAlreadyRedeemed is returned when attempting to redeem an
	// invitation that has already been used.
	ErrInvitationAlreadyRedeemed = errors.New("invitation already redeemed")

	// ErrSettingNotFound is returned when a query targets a setting key that
	// has no stored value.
	ErrSettingNotFound = errors.New("setting not found")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")
)
